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

// Package signer produces signed instructions for DID registry requests.
//
// # Key Pairs
//
// A KeyPair is a private key bound to the key id it is declared under:
//
//	kp, err := signer.GenerateEd25519(id + "#keys-1")
//	entry := signer.PublicKeyEntry(kp, id)   // protocol.PublicKey for the document
//
// Ed25519, secp256k1 and RSA key pairs are provided; their labels match the
// suites registered by cryptosuite.Default.
//
// # Signing an Instruction
//
// Every key signs the exact document bytes that will be submitted:
//
//	raw, _ := protocol.NewDocumentBuilder(id).
//	    WithCreated(time.Now()).
//	    WithPublicKey(entry).
//	    Bytes()
//
//	s := signer.NewDefaultInstructionSigner()
//	instruction, err := s.Sign(ctx, "create", raw, kp)
//
// # Key Rotation
//
// An update that adds a key must be signed by the new key and by at least
// one key that was already declared, unchanged, in the current document:
//
//	instruction, err := s.Sign(ctx, "update", newRaw, oldKey, newKey)
//
// # Custom Signing Options
//
//	opts := &signer.SigningOptions{
//	    Encoding:    signer.EncodingMultibase,
//	    RelativeIDs: true,
//	}
//	instruction, err := s.SignWithOptions(ctx, "update", raw, opts, kp)
//
// # Security Considerations
//
//   - Never re-encode the document between signing and submitting
//   - Keep private keys secure and never transmit them
package signer
