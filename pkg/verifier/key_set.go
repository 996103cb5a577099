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

package verifier

import (
	"github.com/sage-x-project/sage-did-go/pkg/envelope"
)

// KeySet indexes the keys of one document by id
type KeySet struct {
	order []string
	keys  map[string]envelope.PublicKey
}

// NewKeySet builds a set from a document's keys. Later duplicates replace
// earlier ones; the parser rejects duplicates before this is reached.
func NewKeySet(keys []envelope.PublicKey) *KeySet {
	s := &KeySet{keys: make(map[string]envelope.PublicKey, len(keys))}
	for _, k := range keys {
		if _, exists := s.keys[k.ID]; !exists {
			s.order = append(s.order, k.ID)
		}
		s.keys[k.ID] = k
	}
	return s
}

// Select returns the key with the given id
func (s *KeySet) Select(id string) (envelope.PublicKey, bool) {
	k, ok := s.keys[id]
	return k, ok
}

// Contains reports whether id is declared
func (s *KeySet) Contains(id string) bool {
	_, ok := s.keys[id]
	return ok
}

// IDs returns key ids in declaration order
func (s *KeySet) IDs() []string {
	return append([]string(nil), s.order...)
}

// Len returns the number of keys
func (s *KeySet) Len() int {
	return len(s.order)
}
