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

// Package sagedid provides version information for sage-did-go.
package sagedid

const (
	// Version is the current version of sage-did-go
	Version = "0.3.0"

	// DocumentContext is the JSON-LD context of the DID documents this
	// release validates
	DocumentContext = "https://w3id.org/did/v1"

	// DIDMethod is the DID method accepted by default
	DIDMethod = "corda"
)
