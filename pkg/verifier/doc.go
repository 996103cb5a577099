// Copyright (C) 2025 SAGE-X Project
//
// This file is part of sage-did-go.
//
// sage-did-go is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// sage-did-go is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with sage-did-go.  If not, see <https://www.gnu.org/licenses/>.

// Package verifier checks envelope signatures against the keys declared in a
// DID document.
//
// # Key Sets
//
// A KeySet indexes the keys of the document being submitted. Signatures are
// always resolved against the new document, for creation and modification
// alike:
//
//	keys := verifier.NewKeySet(env.Document().Keys)
//	key, ok := keys.Select("did:corda:tcn:...#keys-1")
//
// # Signature Verification
//
// The DefaultSignatureVerifier looks up both suite labels in a
// cryptosuite.Registry and verifies the signature with the material of the
// key it names:
//
//	v := verifier.NewDefaultSignatureVerifier(cryptosuite.Default())
//	ok, err := v.Verify(env.RawDocument(), sig, keys)
//
// The outcomes are:
//
//   - (true, nil): the signature verifies
//   - (false, nil): it does not, including when the signature and key suites
//     belong to different schemes
//   - UnknownKeyReference error: sig.KeyID is not in the set
//   - UnsupportedSuite error: a label is not registered
//
// # Security Considerations
//
//   - A signature is judged only against the key it names, never against
//     another key that happens to match
//   - The payload is the received document bytes; re-encoding the parsed
//     document would break otherwise valid signatures
package verifier
