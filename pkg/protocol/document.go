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

package protocol

import (
	"encoding/json"
	"errors"
	"time"
)

// ContextV1 is the JSON-LD context of DID documents served by the registry
const ContextV1 = "https://w3id.org/did/v1"

// Actions carried by instructions
const (
	ActionCreate = "create"
	ActionUpdate = "update"
	ActionDelete = "delete"
)

// Document is the wire form of a DID document.
// Fields not listed here are tolerated and survive in the raw bytes.
type Document struct {
	// Context is the JSON-LD context, a string or an array of strings
	Context Context `json:"@context"`

	// ID is the DID the document describes
	ID string `json:"id"`

	// Created and Updated are RFC 3339 timestamps
	Created string `json:"created,omitempty"`
	Updated string `json:"updated,omitempty"`

	// PublicKey lists the keys asserted by the document
	PublicKey []PublicKey `json:"publicKey"`
}

// PublicKey is the wire form of a key entry. Exactly one material field must be set.
type PublicKey struct {
	ID         string `json:"id"`
	Type       string `json:"type"`
	Controller string `json:"controller"`

	PublicKeyBase58    string `json:"publicKeyBase58,omitempty"`
	PublicKeyHex       string `json:"publicKeyHex,omitempty"`
	PublicKeyBase64    string `json:"publicKeyBase64,omitempty"`
	PublicKeyMultibase string `json:"publicKeyMultibase,omitempty"`
}

// Instruction is the wire form of a signed instruction
type Instruction struct {
	Action     string      `json:"action"`
	Signatures []Signature `json:"signatures"`
}

// Signature is the wire form of a signature entry. ID names the key it
// authenticates; exactly one material field must be set.
type Signature struct {
	ID   string `json:"id"`
	Type string `json:"type"`

	SignatureBase58    string `json:"signatureBase58,omitempty"`
	SignatureHex       string `json:"signatureHex,omitempty"`
	SignatureBase64    string `json:"signatureBase64,omitempty"`
	SignatureMultibase string `json:"signatureMultibase,omitempty"`
}

// Context holds one or more JSON-LD context URIs
type Context []string

// UnmarshalJSON accepts a single string or an array of strings
func (c *Context) UnmarshalJSON(data []byte) error {
	var single string
	if err := json.Unmarshal(data, &single); err == nil {
		*c = Context{single}
		return nil
	}

	var many []string
	if err := json.Unmarshal(data, &many); err != nil {
		return errors.New("@context must be a string or an array of strings")
	}
	*c = many
	return nil
}

// MarshalJSON emits a plain string for a single context
func (c Context) MarshalJSON() ([]byte, error) {
	if len(c) == 1 {
		return json.Marshal(c[0])
	}
	return json.Marshal([]string(c))
}

// Primary returns the first context, or "" when none is set
func (c Context) Primary() string {
	if len(c) == 0 {
		return ""
	}
	return c[0]
}

// DocumentBuilder helps construct DID documents with a fluent API
type DocumentBuilder struct {
	doc *Document
}

// NewDocumentBuilder starts a document for the given DID using ContextV1
func NewDocumentBuilder(id string) *DocumentBuilder {
	return &DocumentBuilder{
		doc: &Document{
			Context: Context{ContextV1},
			ID:      id,
		},
	}
}

// WithContext replaces the JSON-LD context
func (b *DocumentBuilder) WithContext(contexts ...string) *DocumentBuilder {
	b.doc.Context = append(Context{}, contexts...)
	return b
}

// WithCreated sets the creation timestamp
func (b *DocumentBuilder) WithCreated(t time.Time) *DocumentBuilder {
	b.doc.Created = t.UTC().Format(time.RFC3339)
	return b
}

// WithUpdated sets the update timestamp
func (b *DocumentBuilder) WithUpdated(t time.Time) *DocumentBuilder {
	b.doc.Updated = t.UTC().Format(time.RFC3339)
	return b
}

// WithPublicKey appends a key entry
func (b *DocumentBuilder) WithPublicKey(key PublicKey) *DocumentBuilder {
	b.doc.PublicKey = append(b.doc.PublicKey, key)
	return b
}

// Build returns the constructed document
func (b *DocumentBuilder) Build() *Document {
	return b.doc
}

// Bytes serializes the document. The result is what signers sign and what
// must be submitted unchanged.
func (b *DocumentBuilder) Bytes() ([]byte, error) {
	return json.MarshalIndent(b.doc, "", "  ")
}
