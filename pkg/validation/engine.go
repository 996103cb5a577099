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

package validation

import (
	"errors"

	"github.com/sage-x-project/sage-did-go/pkg/did"
	"github.com/sage-x-project/sage-did-go/pkg/envelope"
	"github.com/sage-x-project/sage-did-go/pkg/verifier"
)

// Engine decides whether an envelope is well-formed and authorized. It holds
// no mutable state and is safe for concurrent use.
type Engine struct {
	verifier verifier.SignatureVerifier
}

// NewEngine creates an engine. A nil verifier means a
// verifier.DefaultSignatureVerifier over cryptosuite.Default().
func NewEngine(v verifier.SignatureVerifier) *Engine {
	if v == nil {
		v = verifier.NewDefaultSignatureVerifier(nil)
	}
	return &Engine{verifier: v}
}

// ValidateCreation checks an envelope creating a new identifier. Every
// declared key must carry exactly one verifying signature.
func (e *Engine) ValidateCreation(env *envelope.Envelope) Outcome {
	doc := env.Document()
	inst := env.Instruction()

	if doc.ID != env.TargetID() {
		return Reject(did.NewDidMismatchError())
	}
	if inst.Action != envelope.ActionCreate {
		return Reject(did.NewActionMismatchError(envelope.ActionCreate.String(), inst.Action.String()))
	}

	s, rejection := e.newSession(env, doc, inst)
	if rejection != nil {
		return Reject(rejection)
	}

	for _, key := range doc.Keys {
		if _, ok := s.signatures[key.ID]; !ok {
			return Reject(did.NewMissingSignatureError(key.ID))
		}
	}

	if rejection := s.verifyDeclared(); rejection != nil {
		return Reject(rejection)
	}

	if rejection := s.unknownReferences(); rejection != nil {
		return Reject(rejection)
	}

	return Accept()
}

// ValidateUpdate is ValidateModification for ActionUpdate
func (e *Engine) ValidateUpdate(env *envelope.Envelope, current *envelope.Document, status did.Status) Outcome {
	return e.ValidateModification(env, current, status, envelope.ActionUpdate)
}

// ValidateDeletion is ValidateModification for ActionDelete
func (e *Engine) ValidateDeletion(env *envelope.Envelope, current *envelope.Document, status did.Status) Outcome {
	return e.ValidateModification(env, current, status, envelope.ActionDelete)
}

// ValidateModification checks an envelope replacing current, the document
// the ledger holds for the target. want is the action the call site expects.
//
// A key is retained when the current document declares the same id with the
// same suite and material; any other key of the new document is added and
// must sign. At least one signature must come from a retained key.
func (e *Engine) ValidateModification(env *envelope.Envelope, current *envelope.Document, status did.Status, want envelope.Action) Outcome {
	if status == did.StatusDeleted {
		return Reject(did.NewDidAlreadyDeletedError())
	}
	if current == nil {
		return Reject(did.NewNotFoundError(env.TargetID().String()))
	}

	doc := env.Document()
	inst := env.Instruction()

	if doc.ID != env.TargetID() || current.ID != env.TargetID() {
		return Reject(did.NewDidMismatchError())
	}
	if inst.Action != want {
		return Reject(did.NewActionMismatchError(want.String(), inst.Action.String()))
	}

	retained := make(map[string]struct{}, len(doc.Keys))
	var added []envelope.PublicKey
	for _, key := range doc.Keys {
		if prior, ok := current.Key(key.ID); ok && prior.Equal(key) {
			retained[key.ID] = struct{}{}
			continue
		}
		added = append(added, key)
	}

	s, rejection := e.newSession(env, doc, inst)
	if rejection != nil {
		return Reject(rejection)
	}

	for _, key := range added {
		if _, ok := s.signatures[key.ID]; !ok {
			return Reject(did.NewMissingSignatureError(key.ID))
		}
		if rejection := s.verify(key.ID); rejection != nil {
			return Reject(rejection)
		}
	}

	if rejection := s.verifyDeclared(); rejection != nil {
		return Reject(rejection)
	}

	// every declared signature verified above, so presence is enough
	anchored := false
	for _, sig := range inst.Signatures {
		if _, ok := retained[sig.KeyID]; ok {
			anchored = true
			break
		}
	}
	if !anchored {
		return Reject(did.NewKeyRotationIntegrityError())
	}

	if rejection := s.unknownReferences(); rejection != nil {
		return Reject(rejection)
	}

	return Accept()
}

// session memoizes verification results for one call
type session struct {
	verifier   verifier.SignatureVerifier
	raw        []byte
	keys       *verifier.KeySet
	order      []envelope.Signature
	signatures map[string]envelope.Signature
	results    map[string]*did.Error
}

func (e *Engine) newSession(env *envelope.Envelope, doc envelope.Document, inst envelope.Instruction) (*session, *did.Error) {
	s := &session{
		verifier:   e.verifier,
		raw:        env.RawDocument(),
		keys:       verifier.NewKeySet(doc.Keys),
		order:      inst.Signatures,
		signatures: make(map[string]envelope.Signature, len(inst.Signatures)),
		results:    make(map[string]*did.Error, len(inst.Signatures)),
	}
	for _, sig := range inst.Signatures {
		if _, dup := s.signatures[sig.KeyID]; dup {
			return nil, did.NewFormatError("signatures.id")
		}
		s.signatures[sig.KeyID] = sig
	}
	return s, nil
}

// verify checks the signature naming keyID, which must be declared
func (s *session) verify(keyID string) *did.Error {
	if rejection, done := s.results[keyID]; done {
		return rejection
	}

	var rejection *did.Error
	ok, err := s.verifier.Verify(s.raw, s.signatures[keyID], s.keys)
	switch {
	case err != nil:
		if !errors.As(err, &rejection) {
			rejection = did.NewInvalidSignatureError(keyID)
		}
	case !ok:
		rejection = did.NewInvalidSignatureError(keyID)
	}

	s.results[keyID] = rejection
	return rejection
}

// verifyDeclared verifies, in instruction order, every signature naming a
// declared key
func (s *session) verifyDeclared() *did.Error {
	for _, sig := range s.order {
		if !s.keys.Contains(sig.KeyID) {
			continue
		}
		if rejection := s.verify(sig.KeyID); rejection != nil {
			return rejection
		}
	}
	return nil
}

func (s *session) unknownReferences() *did.Error {
	for _, sig := range s.order {
		if !s.keys.Contains(sig.KeyID) {
			return did.NewUnknownKeyReferenceError(sig.KeyID)
		}
	}
	return nil
}
