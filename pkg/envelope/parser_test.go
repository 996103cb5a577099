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
	"crypto/ed25519"
	"crypto/rand"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"fmt"
	"testing"

	"github.com/mr-tron/base58"
	"github.com/sage-x-project/sage-did-go/pkg/did"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testDID = "did:corda:tcn:77ccbf5e-4ddd-4092-b813-ac06084a3eb0"

func newKey(t *testing.T) ed25519.PublicKey {
	t.Helper()
	pub, _, err := ed25519.GenerateKey(rand.Reader)
	require.NoError(t, err)
	return pub
}

func documentJSON(keyID, material string) string {
	return fmt.Sprintf(`{
  "@context": "https://w3id.org/did/v1",
  "id": %q,
  "created": "1970-01-01T00:00:00Z",
  "publicKey": [
    {"id": %q, "type": "Ed25519VerificationKey2018", "controller": %q, %s}
  ]
}`, testDID, keyID, testDID, material)
}

func instructionJSON(action, sigID string) string {
	return fmt.Sprintf(`{"action": %q, "signatures": [{"id": %q, "type": "Ed25519Signature2018", "signatureBase58": "3yZe7d"}]}`, action, sigID)
}

func requireFormatError(t *testing.T, err error, field string) {
	t.Helper()
	require.Error(t, err)
	var derr *did.Error
	require.True(t, errors.As(err, &derr), "expected *did.Error, got %T", err)
	assert.Equal(t, did.KindFormat, derr.Kind)
	assert.Equal(t, field, derr.Subject)
}

func TestParse_Valid(t *testing.T) {
	pub := newKey(t)
	doc := documentJSON(testDID+"#keys-1", fmt.Sprintf(`"publicKeyBase58": %q`, base58.Encode(pub)))
	inst := instructionJSON("create", testDID+"#keys-1")

	env, err := DefaultParser().Parse(testDID, doc, inst)
	require.NoError(t, err)

	assert.Equal(t, testDID, env.TargetID().String())
	assert.Equal(t, []byte(doc), env.RawDocument())

	parsed := env.Document()
	assert.Equal(t, "https://w3id.org/did/v1", parsed.Context)
	assert.Equal(t, testDID, parsed.ID.String())
	assert.Equal(t, int64(0), parsed.Created.Unix())
	assert.Nil(t, parsed.Updated)
	require.Len(t, parsed.Keys, 1)
	assert.Equal(t, testDID+"#keys-1", parsed.Keys[0].ID)
	assert.Equal(t, "Ed25519VerificationKey2018", parsed.Keys[0].Suite)
	assert.Equal(t, []byte(pub), parsed.Keys[0].Material)

	instruction := env.Instruction()
	assert.Equal(t, ActionCreate, instruction.Action)
	require.Len(t, instruction.Signatures, 1)
	assert.Equal(t, testDID+"#keys-1", instruction.Signatures[0].KeyID)
}

func TestParse_RawDocumentIsVerbatim(t *testing.T) {
	pub := newKey(t)
	// unusual spacing and an extra field must survive untouched
	doc := "{\n\"@context\":[\"https://w3id.org/did/v1\"],   \"id\":\"" + testDID + "\",\"service\":[]," +
		"\"publicKey\":[{\"id\":\"#keys-1\",\"type\":\"Ed25519VerificationKey2018\",\"controller\":\"" + testDID +
		"\",\"publicKeyBase58\":\"" + base58.Encode(pub) + "\"}]}\n"

	env, err := DefaultParser().Parse(testDID, doc, instructionJSON("create", "#keys-1"))
	require.NoError(t, err)

	assert.Equal(t, doc, string(env.RawDocument()))
	assert.Equal(t, testDID+"#keys-1", env.Document().Keys[0].ID, "relative key id resolves against the document id")
	assert.Equal(t, testDID+"#keys-1", env.Instruction().Signatures[0].KeyID, "relative signature id resolves against the target")
}

func TestParse_AccessorsReturnCopies(t *testing.T) {
	pub := newKey(t)
	doc := documentJSON("#keys-1", fmt.Sprintf(`"publicKeyBase58": %q`, base58.Encode(pub)))
	env, err := DefaultParser().Parse(testDID, doc, instructionJSON("create", "#keys-1"))
	require.NoError(t, err)

	raw := env.RawDocument()
	raw[0] = 'X'
	assert.Equal(t, byte('{'), env.RawDocument()[0])

	keys := env.Document().Keys
	keys[0].ID = "mutated"
	assert.Equal(t, testDID+"#keys-1", env.Document().Keys[0].ID)

	sigs := env.Instruction().Signatures
	sigs[0].KeyID = "mutated"
	assert.Equal(t, testDID+"#keys-1", env.Instruction().Signatures[0].KeyID)
}

func TestParse_MaterialEncodings(t *testing.T) {
	pub := newKey(t)

	tests := []struct {
		name     string
		material string
	}{
		{"base58", fmt.Sprintf(`"publicKeyBase58": %q`, base58.Encode(pub))},
		{"hex", fmt.Sprintf(`"publicKeyHex": %q`, hex.EncodeToString(pub))},
		{"base64 padded", fmt.Sprintf(`"publicKeyBase64": %q`, base64.StdEncoding.EncodeToString(pub))},
		{"base64 url", fmt.Sprintf(`"publicKeyBase64": %q`, base64.RawURLEncoding.EncodeToString(pub))},
		{"multibase", fmt.Sprintf(`"publicKeyMultibase": %q`, "z"+base58.Encode(pub))},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env, err := DefaultParser().Parse(testDID, documentJSON("#keys-1", tt.material), instructionJSON("create", "#keys-1"))
			require.NoError(t, err)
			assert.Equal(t, []byte(pub), env.Document().Keys[0].Material)
		})
	}
}

func TestParse_DocumentFormatErrors(t *testing.T) {
	material := fmt.Sprintf(`"publicKeyBase58": %q`, base58.Encode(newKey(t)))
	validKey := fmt.Sprintf(`{"id": "#keys-1", "type": "Ed25519VerificationKey2018", "controller": %q, %s}`, testDID, material)

	tests := []struct {
		name  string
		doc   string
		field string
	}{
		{"not json", `{"@context":`, "document"},
		{"wrong type", `{"@context": "x", "id": 5}`, "document"},
		{"missing context", fmt.Sprintf(`{"id": %q, "publicKey": [%s]}`, testDID, validKey), "@context"},
		{"empty context array", fmt.Sprintf(`{"@context": [], "id": %q, "publicKey": [%s]}`, testDID, validKey), "@context"},
		{"missing id", fmt.Sprintf(`{"@context": "c", "publicKey": [%s]}`, validKey), "id"},
		{"bad id", fmt.Sprintf(`{"@context": "c", "id": "did:web:example.com", "publicKey": [%s]}`, validKey), "id"},
		{"bad created", fmt.Sprintf(`{"@context": "c", "id": %q, "created": "yesterday", "publicKey": [%s]}`, testDID, validKey), "created"},
		{"bad updated", fmt.Sprintf(`{"@context": "c", "id": %q, "updated": "1970-01-01", "publicKey": [%s]}`, testDID, validKey), "updated"},
		{"no keys", fmt.Sprintf(`{"@context": "c", "id": %q, "publicKey": []}`, testDID), "publicKey"},
		{"absent keys", fmt.Sprintf(`{"@context": "c", "id": %q}`, testDID), "publicKey"},
		{"key without id", `{"@context": "c", "id": "` + testDID + `", "publicKey": [{"type": "t", "controller": "` + testDID + `", ` + material + `}]}`, "publicKey.id"},
		{"key without fragment", `{"@context": "c", "id": "` + testDID + `", "publicKey": [{"id": "` + testDID + `", "type": "t", "controller": "` + testDID + `", ` + material + `}]}`, "publicKey.id"},
		{"key with empty fragment", `{"@context": "c", "id": "` + testDID + `", "publicKey": [{"id": "#", "type": "t", "controller": "` + testDID + `", ` + material + `}]}`, "publicKey.id"},
		{"key without type", `{"@context": "c", "id": "` + testDID + `", "publicKey": [{"id": "#k", "controller": "` + testDID + `", ` + material + `}]}`, "publicKey.type"},
		{"key without controller", `{"@context": "c", "id": "` + testDID + `", "publicKey": [{"id": "#k", "type": "t", ` + material + `}]}`, "publicKey.controller"},
		{"key with bad controller", `{"@context": "c", "id": "` + testDID + `", "publicKey": [{"id": "#k", "type": "t", "controller": "bob", ` + material + `}]}`, "publicKey.controller"},
		{"key without material", `{"@context": "c", "id": "` + testDID + `", "publicKey": [{"id": "#k", "type": "t", "controller": "` + testDID + `"}]}`, "publicKey.material"},
		{"key with two materials", `{"@context": "c", "id": "` + testDID + `", "publicKey": [{"id": "#k", "type": "t", "controller": "` + testDID + `", "publicKeyHex": "00", ` + material + `}]}`, "publicKey.material"},
		{"key with bad base58", `{"@context": "c", "id": "` + testDID + `", "publicKey": [{"id": "#k", "type": "t", "controller": "` + testDID + `", "publicKeyBase58": "0OIl"}]}`, "publicKey.material"},
		{"key with bad multibase", `{"@context": "c", "id": "` + testDID + `", "publicKey": [{"id": "#k", "type": "t", "controller": "` + testDID + `", "publicKeyMultibase": "f00"}]}`, "publicKey.material"},
		{"duplicate key ids", fmt.Sprintf(`{"@context": "c", "id": %q, "publicKey": [%s, %s]}`, testDID, validKey, validKey), "publicKey.id"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DefaultParser().Parse(testDID, tt.doc, instructionJSON("create", "#keys-1"))
			requireFormatError(t, err, tt.field)
		})
	}
}

func TestParse_InstructionFormatErrors(t *testing.T) {
	doc := documentJSON("#keys-1", fmt.Sprintf(`"publicKeyBase58": %q`, base58.Encode(newKey(t))))

	tests := []struct {
		name  string
		inst  string
		field string
	}{
		{"not json", `[`, "instruction"},
		{"missing action", `{"signatures": []}`, "action"},
		{"unknown action", `{"action": "rotate", "signatures": []}`, "action"},
		{"missing signatures", `{"action": "create"}`, "signatures"},
		{"null signatures", `{"action": "create", "signatures": null}`, "signatures"},
		{"signature without id", `{"action": "create", "signatures": [{"type": "t", "signatureHex": "00"}]}`, "signatures.id"},
		{"signature without type", `{"action": "create", "signatures": [{"id": "#keys-1", "signatureHex": "00"}]}`, "signatures.type"},
		{"signature without material", `{"action": "create", "signatures": [{"id": "#keys-1", "type": "t"}]}`, "signatures.material"},
		{"signature with bad hex", `{"action": "create", "signatures": [{"id": "#keys-1", "type": "t", "signatureHex": "zz"}]}`, "signatures.material"},
		{"duplicate signature ids", `{"action": "create", "signatures": [{"id": "#keys-1", "type": "t", "signatureHex": "00"}, {"id": "` + testDID + `#keys-1", "type": "t", "signatureHex": "01"}]}`, "signatures.id"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DefaultParser().Parse(testDID, doc, tt.inst)
			requireFormatError(t, err, tt.field)
		})
	}
}

func TestParse_EmptySignatureListIsWellFormed(t *testing.T) {
	doc := documentJSON("#keys-1", fmt.Sprintf(`"publicKeyBase58": %q`, base58.Encode(newKey(t))))

	env, err := DefaultParser().Parse(testDID, doc, `{"action": "CREATE", "signatures": []}`)
	require.NoError(t, err)
	assert.Equal(t, ActionCreate, env.Instruction().Action)
	assert.Empty(t, env.Instruction().Signatures)
}

func TestParse_TargetIdentifier(t *testing.T) {
	doc := documentJSON("#keys-1", fmt.Sprintf(`"publicKeyBase58": %q`, base58.Encode(newKey(t))))

	_, err := DefaultParser().Parse("did:corda:tcn:not-a-uuid", doc, instructionJSON("create", "#keys-1"))
	requireFormatError(t, err, "identifier")

	_, err = DefaultParser().Parse("did:corda:mainnet:77ccbf5e-4ddd-4092-b813-ac06084a3eb0", doc, instructionJSON("create", "#keys-1"))
	requireFormatError(t, err, "identifier")

	custom := NewParser(did.Policy{Methods: []string{"corda"}, Networks: []string{"tcn", "mainnet"}})
	_, err = custom.Parse("did:corda:mainnet:77ccbf5e-4ddd-4092-b813-ac06084a3eb0", doc, instructionJSON("create", "#keys-1"))
	require.NoError(t, err, "document and target may differ; the engine checks that")

	id, err := custom.ParseIdentifier("did:corda:mainnet:77ccbf5e-4ddd-4092-b813-ac06084a3eb0")
	require.NoError(t, err)
	assert.Equal(t, "mainnet", id.Network)
	_, err = DefaultParser().ParseIdentifier("did:corda:mainnet:77ccbf5e-4ddd-4092-b813-ac06084a3eb0")
	requireFormatError(t, err, "identifier")
}

func TestAction(t *testing.T) {
	for _, a := range []Action{ActionCreate, ActionUpdate, ActionDelete} {
		parsed, ok := ParseAction(a.Wire())
		require.True(t, ok)
		assert.Equal(t, a, parsed)
	}
	assert.Equal(t, "Update", ActionUpdate.String())
	assert.Equal(t, "delete", ActionDelete.Wire())

	_, ok := ParseAction("")
	assert.False(t, ok)
}

func TestPublicKey_Equal(t *testing.T) {
	a := PublicKey{ID: "k", Suite: "s", Material: []byte{1, 2}}
	assert.True(t, a.Equal(PublicKey{ID: "k", Suite: "s", Material: []byte{1, 2}}))
	assert.False(t, a.Equal(PublicKey{ID: "k", Suite: "s", Material: []byte{1, 3}}))
	assert.False(t, a.Equal(PublicKey{ID: "k", Suite: "t", Material: []byte{1, 2}}))
	assert.False(t, a.Equal(PublicKey{ID: "j", Suite: "s", Material: []byte{1, 2}}))
}
