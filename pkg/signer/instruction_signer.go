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

package signer

import (
	"context"
)

// InstructionSigner produces signed instructions for registry requests
type InstructionSigner interface {
	// Sign signs rawDocument with every key and returns the instruction JSON
	// using base58 signature encoding
	Sign(ctx context.Context, action string, rawDocument []byte, keys ...KeyPair) ([]byte, error)

	// SignWithOptions signs with custom options
	SignWithOptions(ctx context.Context, action string, rawDocument []byte, opts *SigningOptions, keys ...KeyPair) ([]byte, error)
}

// Signature encodings
const (
	EncodingBase58    = "base58"
	EncodingHex       = "hex"
	EncodingBase64    = "base64"
	EncodingMultibase = "multibase"
)

// SigningOptions contains options for signing instructions
type SigningOptions struct {
	// Encoding selects the signature material field (EncodingBase58 if empty)
	Encoding string

	// RelativeIDs writes signature ids as "#fragment" instead of full URIs
	RelativeIDs bool
}
