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

package envelope

import (
	"bytes"
	"strings"
	"time"

	"github.com/sage-x-project/sage-did-go/pkg/did"
	"github.com/sage-x-project/sage-did-go/pkg/protocol"
)

// Action is the operation an instruction authorizes
type Action int

const (
	ActionCreate Action = iota + 1
	ActionUpdate
	ActionDelete
)

// String returns the action name used in rejection messages
func (a Action) String() string {
	switch a {
	case ActionCreate:
		return "Create"
	case ActionUpdate:
		return "Update"
	case ActionDelete:
		return "Delete"
	default:
		return "Unknown"
	}
}

// Wire returns the lower-case action as it appears in instruction JSON
func (a Action) Wire() string {
	switch a {
	case ActionCreate:
		return protocol.ActionCreate
	case ActionUpdate:
		return protocol.ActionUpdate
	case ActionDelete:
		return protocol.ActionDelete
	default:
		return ""
	}
}

// ParseAction accepts the wire names case-insensitively
func ParseAction(s string) (Action, bool) {
	switch strings.ToLower(s) {
	case protocol.ActionCreate:
		return ActionCreate, true
	case protocol.ActionUpdate:
		return ActionUpdate, true
	case protocol.ActionDelete:
		return ActionDelete, true
	default:
		return 0, false
	}
}

// PublicKey is a key entry declared by a document
type PublicKey struct {
	ID         string
	Suite      string
	Controller did.Identifier
	Material   []byte
}

// Equal reports whether two entries declare the same key. Controllers are not
// compared since they do not affect verification.
func (k PublicKey) Equal(other PublicKey) bool {
	return k.ID == other.ID && k.Suite == other.Suite && bytes.Equal(k.Material, other.Material)
}

// Document is a parsed DID document. Keys keep their declared order.
type Document struct {
	Context string
	ID      did.Identifier
	Created time.Time
	Updated *time.Time
	Keys    []PublicKey
}

// Key looks up a key by id
func (d *Document) Key(id string) (PublicKey, bool) {
	for _, k := range d.Keys {
		if k.ID == id {
			return k, true
		}
	}
	return PublicKey{}, false
}

// Signature is one signature entry of an instruction
type Signature struct {
	KeyID    string
	Suite    string
	Material []byte
}

// Instruction is a parsed instruction
type Instruction struct {
	Action     Action
	Signatures []Signature
}

// Envelope pairs a target identifier with a document and the instruction
// authorizing it. It is immutable; accessors return copies.
type Envelope struct {
	targetID    did.Identifier
	raw         []byte
	document    Document
	instruction Instruction
}

// TargetID returns the identifier the request is addressed to
func (e *Envelope) TargetID() did.Identifier { return e.targetID }

// RawDocument returns the document exactly as received
func (e *Envelope) RawDocument() []byte {
	return bytes.Clone(e.raw)
}

// Document returns the parsed document
func (e *Envelope) Document() Document {
	doc := e.document
	doc.Keys = append([]PublicKey(nil), e.document.Keys...)
	return doc
}

// Instruction returns the parsed instruction
func (e *Envelope) Instruction() Instruction {
	inst := e.instruction
	inst.Signatures = append([]Signature(nil), e.instruction.Signatures...)
	return inst
}

// New assembles an envelope from already parsed parts. raw is copied.
func New(targetID did.Identifier, raw []byte, document Document, instruction Instruction) *Envelope {
	return &Envelope{
		targetID:    targetID,
		raw:         bytes.Clone(raw),
		document:    document,
		instruction: instruction,
	}
}
