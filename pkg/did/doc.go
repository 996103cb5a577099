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

// Package did defines DID identifiers, the rejection kinds produced while
// judging envelopes, and the lifecycle status of a recorded document.
//
// # Identifiers
//
// An identifier has the form did:<method>:<network>:<uuid>:
//
//	id, err := did.Parse("did:corda:tcn:6f9c2a4e-35f7-4a3b-9a0e-2f8b9d1c7e55")
//	if err != nil {
//	    // err is a *did.Error of kind KindFormat for field "identifier"
//	}
//
// The accepted methods and networks come from a Policy:
//
//	policy := did.Policy{Methods: []string{"corda"}, Networks: []string{"tcn"}}
//	id, err := policy.Parse(raw)
//
// # Errors
//
// Every rejection is a *did.Error tagged with an ErrorKind. Use errors.Is
// with the sentinels to branch on the kind:
//
//	if errors.Is(err, did.ErrKeyRotationIntegrity) {
//	    // the update did not carry a signature from a retained key
//	}
package did
