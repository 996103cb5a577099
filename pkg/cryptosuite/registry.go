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

package cryptosuite

import (
	"sort"
	"sync"

	"github.com/sage-x-project/sage-did-go/pkg/did"
)

// Suite is a named signature scheme
type Suite interface {
	// Name identifies the scheme; key and signature labels of the same
	// scheme resolve to suites with the same name
	Name() string

	// Verify reports whether signature is valid for message under key.
	// Malformed keys or signatures are reported as not verified.
	Verify(message, key, signature []byte) bool
}

// Registry maps suite labels, as they appear in documents and instructions,
// to verification suites
type Registry struct {
	mu     sync.RWMutex
	suites map[string]Suite
}

// NewRegistry creates an empty registry
func NewRegistry() *Registry {
	return &Registry{suites: make(map[string]Suite)}
}

// Default returns a registry with Ed25519, secp256k1 and RSA registered
// under their key and signature labels
func Default() *Registry {
	r := NewRegistry()
	r.Register(Ed25519(), Ed25519VerificationKey2018, Ed25519Signature2018)
	r.Register(Secp256k1(), EcdsaSecp256k1VerificationKey2019, EcdsaSecp256k1Signature2019)
	r.Register(RSA(), RsaVerificationKey2018, RsaSignature2018)
	return r
}

// Register binds every label to suite, replacing earlier bindings
func (r *Registry) Register(suite Suite, labels ...string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, label := range labels {
		r.suites[label] = suite
	}
}

// Lookup resolves a label. Unknown labels yield an UnsupportedSuite error.
func (r *Registry) Lookup(label string) (Suite, error) {
	r.mu.RLock()
	suite, ok := r.suites[label]
	r.mu.RUnlock()
	if !ok {
		return nil, did.NewUnsupportedSuiteError(label)
	}
	return suite, nil
}

// Labels returns every registered label in sorted order
func (r *Registry) Labels() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	labels := make([]string, 0, len(r.suites))
	for label := range r.suites {
		labels = append(labels, label)
	}
	sort.Strings(labels)
	return labels
}

// SuiteFunc adapts a plain verification function to Suite
type SuiteFunc struct {
	SuiteName string
	Fn        func(message, key, signature []byte) bool
}

func (f SuiteFunc) Name() string { return f.SuiteName }

func (f SuiteFunc) Verify(message, key, signature []byte) bool {
	return f.Fn(message, key, signature)
}
