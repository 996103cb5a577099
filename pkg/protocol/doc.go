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

// Package protocol defines the JSON wire format of DID documents and
// instructions.
//
// # Documents
//
// Use the DocumentBuilder for a fluent API to create documents:
//
//	raw, err := protocol.NewDocumentBuilder("did:corda:tcn:6f9c2a4e-...").
//	    WithCreated(time.Now()).
//	    WithPublicKey(protocol.PublicKey{
//	        ID:              "did:corda:tcn:6f9c2a4e-...#keys-1",
//	        Type:            "Ed25519VerificationKey2018",
//	        Controller:      "did:corda:tcn:6f9c2a4e-...",
//	        PublicKeyBase58: base58.Encode(pub),
//	    }).
//	    Bytes()
//
// The returned bytes are the exact payload every signature covers. Never
// re-encode a document after signing it.
//
// # Instructions
//
// An instruction names the action and carries one signature per key:
//
//	{
//	  "action": "update",
//	  "signatures": [
//	    {"id": "did:corda:tcn:...#keys-1", "type": "Ed25519Signature2018", "signatureBase58": "..."}
//	  ]
//	}
//
// # Material Encodings
//
// Key material may be given as publicKeyBase58, publicKeyHex,
// publicKeyBase64 or publicKeyMultibase (base58btc, "z" prefix); signatures
// use the matching signature* fields. Exactly one encoding per entry.
package protocol
