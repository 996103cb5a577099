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

package did

import (
	"strings"

	"github.com/google/uuid"
)

const (
	// Scheme is the fixed prefix of every identifier
	Scheme = "did"

	// MethodCorda is the default DID method served by the registry
	MethodCorda = "corda"

	// canonical hyphenated UUID length, e.g. 8-4-4-4-12
	uuidLength = 36
)

// Identifier is a parsed DID of the form did:<method>:<network>:<uuid>.
// The zero value is not a valid identifier.
type Identifier struct {
	Method  string
	Network string
	ID      uuid.UUID
}

// String returns the canonical form of the identifier
func (i Identifier) String() string {
	return Scheme + ":" + i.Method + ":" + i.Network + ":" + i.ID.String()
}

// IsZero reports whether the identifier was never parsed
func (i Identifier) IsZero() bool {
	return i.Method == "" && i.Network == "" && i.ID == uuid.Nil
}

// Policy restricts the methods and networks accepted by the parser
type Policy struct {
	// Methods lists the accepted DID methods (e.g. "corda")
	Methods []string

	// Networks lists the accepted network segments (e.g. "tcn")
	Networks []string
}

// DefaultPolicy accepts the corda method on its public networks
var DefaultPolicy = Policy{
	Methods:  []string{MethodCorda},
	Networks: []string{"tcn", "tcn-uat", "testnet"},
}

// Parse parses s using DefaultPolicy
func Parse(s string) (Identifier, error) {
	return DefaultPolicy.Parse(s)
}

// Parse splits s on ':' and validates every segment. Any deviation yields a
// Format error for the "identifier" field.
func (p Policy) Parse(s string) (Identifier, error) {
	parts := strings.Split(s, ":")
	if len(parts) != 4 || parts[0] != Scheme {
		return Identifier{}, NewFormatError("identifier")
	}

	method, network, rawID := parts[1], parts[2], parts[3]
	if !contains(p.Methods, method) || !contains(p.Networks, network) {
		return Identifier{}, NewFormatError("identifier")
	}

	// uuid.Parse also accepts urn and braced forms; only the hyphenated form is valid here
	if len(rawID) != uuidLength {
		return Identifier{}, NewFormatError("identifier")
	}
	id, err := uuid.Parse(rawID)
	if err != nil {
		return Identifier{}, NewFormatError("identifier")
	}

	return Identifier{Method: method, Network: network, ID: id}, nil
}

// Accepts reports whether the policy would accept the given identifier
func (p Policy) Accepts(id Identifier) bool {
	return contains(p.Methods, id.Method) && contains(p.Networks, id.Network)
}

func contains(values []string, v string) bool {
	for _, candidate := range values {
		if candidate == v {
			return true
		}
	}
	return false
}
