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

// SignatureVerifier checks one signature against the key it names
type SignatureVerifier interface {
	// Verify resolves sig.KeyID in keys and verifies sig over raw.
	// An unresolvable key id yields an UnknownKeyReference error; unknown
	// suite labels yield an UnsupportedSuite error. A signature that does
	// not verify is reported as (false, nil).
	Verify(raw []byte, sig envelope.Signature, keys *KeySet) (bool, error)
}
