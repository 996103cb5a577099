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

// Package cryptosuite provides the pluggable signature schemes used to check
// envelope signatures.
//
// A Registry maps the labels found in documents ("Ed25519VerificationKey2018")
// and instructions ("Ed25519Signature2018") to a Suite:
//
//	registry := cryptosuite.Default()
//	suite, err := registry.Lookup("Ed25519Signature2018")
//	if err != nil {
//	    // *did.Error of kind KindUnsupportedSuite
//	}
//	ok := suite.Verify(message, publicKey, signature)
//
// # Supported Schemes
//
//   - Ed25519 (raw 32-byte keys)
//   - ECDSA secp256k1 over SHA-256 (SEC1 keys, DER or r||s signatures)
//   - RSA PKCS#1 v1.5 over SHA-256 (PKIX DER keys)
//
// New schemes are added with Register and never require changes to the
// validation engine:
//
//	registry.Register(mySuite, "MyKey2024", "MySignature2024")
//
// Verification is deterministic and performs no I/O.
package cryptosuite
