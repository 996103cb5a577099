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
	"encoding/json"
	"strings"
	"time"

	"github.com/sage-x-project/sage-did-go/pkg/did"
	"github.com/sage-x-project/sage-did-go/pkg/protocol"
)

// Parser turns raw request parts into an Envelope
type Parser struct {
	policy did.Policy
}

// NewParser creates a parser accepting identifiers allowed by policy
func NewParser(policy did.Policy) *Parser {
	return &Parser{policy: policy}
}

// DefaultParser uses did.DefaultPolicy
func DefaultParser() *Parser {
	return NewParser(did.DefaultPolicy)
}

// ParseIdentifier checks s against the parser's identifier policy
func (p *Parser) ParseIdentifier(s string) (did.Identifier, error) {
	return p.policy.Parse(s)
}

// Parse decodes and checks the target identifier, the document and the
// instruction. Failures are *did.Error values of kind KindFormat naming the
// offending field. The document bytes are retained verbatim.
func (p *Parser) Parse(targetID, document, instruction string) (*Envelope, error) {
	target, err := p.policy.Parse(targetID)
	if err != nil {
		return nil, err
	}

	raw := []byte(document)
	doc, err := p.ParseDocument(raw)
	if err != nil {
		return nil, err
	}

	inst, err := p.ParseInstruction(instruction, target)
	if err != nil {
		return nil, err
	}

	return &Envelope{
		targetID:    target,
		raw:         raw,
		document:    *doc,
		instruction: *inst,
	}, nil
}

// ParseDocument decodes a document on its own, as done for the current
// document returned by the ledger
func (p *Parser) ParseDocument(raw []byte) (*Document, error) {
	var wire protocol.Document
	if err := json.Unmarshal(raw, &wire); err != nil {
		return nil, did.NewFormatError("document")
	}

	if wire.Context.Primary() == "" {
		return nil, did.NewFormatError("@context")
	}

	if wire.ID == "" {
		return nil, did.NewFormatError("id")
	}
	id, err := p.policy.Parse(wire.ID)
	if err != nil {
		return nil, did.NewFormatError("id")
	}

	doc := &Document{
		Context: wire.Context.Primary(),
		ID:      id,
	}

	if wire.Created != "" {
		created, err := time.Parse(time.RFC3339, wire.Created)
		if err != nil {
			return nil, did.NewFormatError("created")
		}
		doc.Created = created
	}
	if wire.Updated != "" {
		updated, err := time.Parse(time.RFC3339, wire.Updated)
		if err != nil {
			return nil, did.NewFormatError("updated")
		}
		doc.Updated = &updated
	}

	if len(wire.PublicKey) == 0 {
		return nil, did.NewFormatError("publicKey")
	}

	seen := make(map[string]struct{}, len(wire.PublicKey))
	for _, wk := range wire.PublicKey {
		key, err := p.parseKey(wk, id)
		if err != nil {
			return nil, err
		}
		if _, dup := seen[key.ID]; dup {
			return nil, did.NewFormatError("publicKey.id")
		}
		seen[key.ID] = struct{}{}
		doc.Keys = append(doc.Keys, key)
	}

	return doc, nil
}

func (p *Parser) parseKey(wk protocol.PublicKey, owner did.Identifier) (PublicKey, error) {
	keyID, ok := resolveKeyURI(wk.ID, owner)
	if !ok {
		return PublicKey{}, did.NewFormatError("publicKey.id")
	}
	if wk.Type == "" {
		return PublicKey{}, did.NewFormatError("publicKey.type")
	}
	if wk.Controller == "" {
		return PublicKey{}, did.NewFormatError("publicKey.controller")
	}
	controller, err := p.policy.Parse(wk.Controller)
	if err != nil {
		return PublicKey{}, did.NewFormatError("publicKey.controller")
	}

	material, err := encodedMaterial{
		base58:    wk.PublicKeyBase58,
		hex:       wk.PublicKeyHex,
		base64:    wk.PublicKeyBase64,
		multibase: wk.PublicKeyMultibase,
	}.decode()
	if err != nil || len(material) == 0 {
		return PublicKey{}, did.NewFormatError("publicKey.material")
	}

	return PublicKey{
		ID:         keyID,
		Suite:      wk.Type,
		Controller: controller,
		Material:   material,
	}, nil
}

// ParseInstruction decodes an instruction. Relative signature ids are
// resolved against target.
func (p *Parser) ParseInstruction(instruction string, target did.Identifier) (*Instruction, error) {
	var wire protocol.Instruction
	if err := json.Unmarshal([]byte(instruction), &wire); err != nil {
		return nil, did.NewFormatError("instruction")
	}

	if wire.Action == "" {
		return nil, did.NewFormatError("action")
	}
	action, ok := ParseAction(wire.Action)
	if !ok {
		return nil, did.NewFormatError("action")
	}

	// absent or null; an empty array is well-formed
	if wire.Signatures == nil {
		return nil, did.NewFormatError("signatures")
	}

	inst := &Instruction{Action: action, Signatures: make([]Signature, 0, len(wire.Signatures))}
	seen := make(map[string]struct{}, len(wire.Signatures))
	for _, ws := range wire.Signatures {
		keyID, ok := resolveKeyURI(ws.ID, target)
		if !ok {
			return nil, did.NewFormatError("signatures.id")
		}
		if _, dup := seen[keyID]; dup {
			return nil, did.NewFormatError("signatures.id")
		}
		seen[keyID] = struct{}{}

		if ws.Type == "" {
			return nil, did.NewFormatError("signatures.type")
		}

		material, err := encodedMaterial{
			base58:    ws.SignatureBase58,
			hex:       ws.SignatureHex,
			base64:    ws.SignatureBase64,
			multibase: ws.SignatureMultibase,
		}.decode()
		if err != nil || len(material) == 0 {
			return nil, did.NewFormatError("signatures.material")
		}

		inst.Signatures = append(inst.Signatures, Signature{
			KeyID:    keyID,
			Suite:    ws.Type,
			Material: material,
		})
	}

	return inst, nil
}

// resolveKeyURI requires a non-empty fragment and expands "#frag" against base
func resolveKeyURI(raw string, base did.Identifier) (string, bool) {
	if strings.ContainsAny(raw, " \t\r\n") {
		return "", false
	}
	hash := strings.IndexByte(raw, '#')
	if hash < 0 || hash == len(raw)-1 {
		return "", false
	}
	if hash == 0 {
		return base.String() + raw, true
	}
	return raw, true
}
