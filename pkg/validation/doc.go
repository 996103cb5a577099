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

// Package validation decides whether a DID envelope is authorized.
//
// # Creation
//
//	engine := validation.NewEngine(nil)
//	outcome := engine.ValidateCreation(env)
//	if !outcome.Accepted() {
//	    return outcome.Err() // *did.Error
//	}
//
// Checks, in order: the document id equals the target, the action is
// create, every key has a signature, every signature verifies, no signature
// names an undeclared key.
//
// # Modification
//
// Updates and deletions are validated against the document currently held
// by the ledger and its status:
//
//	outcome := engine.ValidateUpdate(env, current, did.StatusValid)
//	outcome := engine.ValidateDeletion(env, current, did.StatusValid)
//
// Checks, in order:
//
//  1. The current document is not deleted
//  2. The target, new document and current document ids agree
//  3. The action matches the call site
//  4. Every added key carries a verifying signature
//  5. Every signature naming a declared key verifies
//  6. At least one signature comes from a retained key
//  7. No signature names an undeclared key
//
// A retained key is declared in both documents with the same id, suite and
// material. Changing the material behind an existing id makes it an added
// key, so it cannot vouch for itself.
//
// # Outcomes
//
// The engine never returns errors for rejections; an Outcome carries the
// *did.Error:
//
//	if kind, rejected := outcome.Kind(); rejected && kind == did.KindKeyRotationIntegrity {
//	    ...
//	}
//
// The engine performs no I/O and keeps nothing between calls. Identical
// inputs always produce identical outcomes.
package validation
