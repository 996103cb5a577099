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
	"github.com/sage-x-project/sage-did-go/pkg/cryptosuite"
	"github.com/sage-x-project/sage-did-go/pkg/did"
	"github.com/sage-x-project/sage-did-go/pkg/envelope"
)

// DefaultSignatureVerifier implements SignatureVerifier on top of a
// cryptosuite.Registry
type DefaultSignatureVerifier struct {
	registry *cryptosuite.Registry
}

// NewDefaultSignatureVerifier creates a verifier. A nil registry means
// cryptosuite.Default().
func NewDefaultSignatureVerifier(registry *cryptosuite.Registry) *DefaultSignatureVerifier {
	if registry == nil {
		registry = cryptosuite.Default()
	}
	return &DefaultSignatureVerifier{registry: registry}
}

// Verify checks sig over raw with the material of the key it names. raw is
// passed to the suite untouched.
func (v *DefaultSignatureVerifier) Verify(raw []byte, sig envelope.Signature, keys *KeySet) (bool, error) {
	key, ok := keys.Select(sig.KeyID)
	if !ok {
		return false, did.NewUnknownKeyReferenceError(sig.KeyID)
	}

	keySuite, err := v.registry.Lookup(key.Suite)
	if err != nil {
		return false, err
	}
	sigSuite, err := v.registry.Lookup(sig.Suite)
	if err != nil {
		return false, err
	}

	// an Ed25519 signature never verifies against an RSA key, whatever the bytes
	if keySuite.Name() != sigSuite.Name() {
		return false, nil
	}

	return keySuite.Verify(raw, key.Material, sig.Material), nil
}
