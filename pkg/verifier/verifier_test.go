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
	"testing"

	"github.com/sage-x-project/sage-did-go/pkg/cryptosuite"
	"github.com/sage-x-project/sage-did-go/pkg/did"
	"github.com/sage-x-project/sage-did-go/pkg/envelope"
	"github.com/sage-x-project/sage-did-go/pkg/signer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testDID = "did:corda:tcn:77ccbf5e-4ddd-4092-b813-ac06084a3eb0"

var rawDocument = []byte(`{"@context": "https://w3id.org/did/v1", "id": "` + testDID + `"}`)

func declare(kp signer.KeyPair) envelope.PublicKey {
	return envelope.PublicKey{ID: kp.KeyID(), Suite: kp.KeyType(), Material: kp.PublicKey()}
}

func sign(t *testing.T, kp signer.KeyPair, keyID string, payload []byte) envelope.Signature {
	t.Helper()
	material, err := kp.Sign(payload)
	require.NoError(t, err)
	return envelope.Signature{KeyID: keyID, Suite: kp.SignatureType(), Material: material}
}

func generate(t *testing.T, keyID string) signer.KeyPair {
	t.Helper()
	kp, err := signer.GenerateEd25519(keyID)
	require.NoError(t, err)
	return kp
}

func TestKeySet(t *testing.T) {
	k1 := envelope.PublicKey{ID: testDID + "#keys-1", Suite: "s"}
	k2 := envelope.PublicKey{ID: testDID + "#keys-2", Suite: "s"}

	set := NewKeySet([]envelope.PublicKey{k1, k2})

	assert.Equal(t, 2, set.Len())
	assert.Equal(t, []string{k1.ID, k2.ID}, set.IDs())
	assert.True(t, set.Contains(k2.ID))
	assert.False(t, set.Contains(testDID+"#keys-3"))

	got, ok := set.Select(k1.ID)
	require.True(t, ok)
	assert.Equal(t, k1, got)

	_, ok = set.Select("")
	assert.False(t, ok)

	ids := set.IDs()
	ids[0] = "mutated"
	assert.Equal(t, k1.ID, set.IDs()[0])
}

func TestDefaultSignatureVerifier_Verify(t *testing.T) {
	k1 := generate(t, testDID+"#keys-1")
	keys := NewKeySet([]envelope.PublicKey{declare(k1)})
	v := NewDefaultSignatureVerifier(nil)

	ok, err := v.Verify(rawDocument, sign(t, k1, k1.KeyID(), rawDocument), keys)

	require.NoError(t, err)
	assert.True(t, ok)
}

func TestDefaultSignatureVerifier_OperatesOnRawBytes(t *testing.T) {
	k1 := generate(t, testDID+"#keys-1")
	keys := NewKeySet([]envelope.PublicKey{declare(k1)})
	v := NewDefaultSignatureVerifier(nil)

	// same JSON value with different whitespace is a different payload
	reformatted := []byte(`{"@context":"https://w3id.org/did/v1","id":"` + testDID + `"}`)
	ok, err := v.Verify(reformatted, sign(t, k1, k1.KeyID(), rawDocument), keys)

	require.NoError(t, err)
	assert.False(t, ok)
}

func TestDefaultSignatureVerifier_JudgedAgainstNamedKeyOnly(t *testing.T) {
	k1 := generate(t, testDID+"#keys-1")
	k2 := generate(t, testDID+"#keys-2")
	keys := NewKeySet([]envelope.PublicKey{declare(k1), declare(k2)})
	v := NewDefaultSignatureVerifier(nil)

	// produced by k1 but labelled as k2
	ok, err := v.Verify(rawDocument, sign(t, k1, k2.KeyID(), rawDocument), keys)

	require.NoError(t, err)
	assert.False(t, ok)
}

func TestDefaultSignatureVerifier_UnknownKey(t *testing.T) {
	k1 := generate(t, testDID+"#keys-1")
	keys := NewKeySet([]envelope.PublicKey{declare(k1)})
	v := NewDefaultSignatureVerifier(nil)

	_, err := v.Verify(rawDocument, sign(t, k1, testDID+"#keys-9", rawDocument), keys)

	require.Error(t, err)
	assert.ErrorIs(t, err, did.ErrUnknownKeyReference)
	assert.Contains(t, err.Error(), "#keys-9")
}

func TestDefaultSignatureVerifier_UnsupportedSuites(t *testing.T) {
	k1 := generate(t, testDID+"#keys-1")
	v := NewDefaultSignatureVerifier(nil)

	t.Run("key suite", func(t *testing.T) {
		key := declare(k1)
		key.Suite = "Bls12381G2Key2020"
		_, err := v.Verify(rawDocument, sign(t, k1, k1.KeyID(), rawDocument), NewKeySet([]envelope.PublicKey{key}))
		assert.ErrorIs(t, err, did.ErrUnsupportedSuite)
	})

	t.Run("signature suite", func(t *testing.T) {
		sig := sign(t, k1, k1.KeyID(), rawDocument)
		sig.Suite = "BbsBlsSignature2020"
		_, err := v.Verify(rawDocument, sig, NewKeySet([]envelope.PublicKey{declare(k1)}))
		assert.ErrorIs(t, err, did.ErrUnsupportedSuite)
	})
}

func TestDefaultSignatureVerifier_SchemeMismatch(t *testing.T) {
	ed := generate(t, testDID+"#keys-1")
	keys := NewKeySet([]envelope.PublicKey{declare(ed)})
	v := NewDefaultSignatureVerifier(nil)

	sig := sign(t, ed, ed.KeyID(), rawDocument)
	sig.Suite = cryptosuite.RsaSignature2018

	ok, err := v.Verify(rawDocument, sig, keys)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestDefaultSignatureVerifier_CustomRegistry(t *testing.T) {
	registry := cryptosuite.NewRegistry()
	registry.Register(cryptosuite.SuiteFunc{
		SuiteName: "prefix",
		Fn: func(message, key, signature []byte) bool {
			return string(signature) == string(key)+string(message[:1])
		},
	}, "PrefixKey", "PrefixSignature")

	keys := NewKeySet([]envelope.PublicKey{{ID: testDID + "#keys-1", Suite: "PrefixKey", Material: []byte("k")}})
	v := NewDefaultSignatureVerifier(registry)

	ok, err := v.Verify(rawDocument, envelope.Signature{KeyID: testDID + "#keys-1", Suite: "PrefixSignature", Material: []byte("k{")}, keys)
	require.NoError(t, err)
	assert.True(t, ok)

	_, err = v.Verify(rawDocument, envelope.Signature{KeyID: testDID + "#keys-1", Suite: cryptosuite.Ed25519Signature2018, Material: []byte("k{")}, keys)
	assert.ErrorIs(t, err, did.ErrUnsupportedSuite)
}

func TestDefaultSignatureVerifier_AllSchemes(t *testing.T) {
	k1, err := signer.GenerateSecp256k1(testDID + "#keys-1")
	require.NoError(t, err)
	k2, err := signer.GenerateRSA(testDID+"#keys-2", 2048)
	require.NoError(t, err)

	keys := NewKeySet([]envelope.PublicKey{declare(k1), declare(k2)})
	v := NewDefaultSignatureVerifier(cryptosuite.Default())

	for _, kp := range []signer.KeyPair{k1, k2} {
		ok, err := v.Verify(rawDocument, sign(t, kp, kp.KeyID(), rawDocument), keys)
		require.NoError(t, err)
		assert.True(t, ok, kp.KeyType())
	}
}

func BenchmarkDefaultSignatureVerifier_Verify(b *testing.B) {
	kp, _ := signer.GenerateEd25519(testDID + "#keys-1")
	material, _ := kp.Sign(rawDocument)
	sig := envelope.Signature{KeyID: kp.KeyID(), Suite: kp.SignatureType(), Material: material}
	keys := NewKeySet([]envelope.PublicKey{declare(kp)})
	v := NewDefaultSignatureVerifier(nil)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = v.Verify(rawDocument, sig, keys)
	}
}
