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

package cryptosuite

import (
	"crypto"
	"crypto/ed25519"
	"crypto/rand"
	"crypto/rsa"
	"crypto/sha256"
	"crypto/x509"
	"testing"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"
	"github.com/decred/dcrd/dcrec/secp256k1/v4/ecdsa"
	"github.com/sage-x-project/sage-did-go/pkg/did"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var message = []byte(`{"@context":"https://w3id.org/did/v1"}`)

func TestDefault_LookupKnownLabels(t *testing.T) {
	registry := Default()

	for _, label := range []string{
		Ed25519VerificationKey2018, Ed25519Signature2018,
		EcdsaSecp256k1VerificationKey2019, EcdsaSecp256k1Signature2019,
		RsaVerificationKey2018, RsaSignature2018,
	} {
		suite, err := registry.Lookup(label)
		require.NoError(t, err, label)
		assert.NotNil(t, suite)
	}

	keySuite, _ := registry.Lookup(Ed25519VerificationKey2018)
	sigSuite, _ := registry.Lookup(Ed25519Signature2018)
	assert.Equal(t, keySuite.Name(), sigSuite.Name())
	assert.Len(t, registry.Labels(), 6)
}

func TestRegistry_LookupUnknown(t *testing.T) {
	registry := NewRegistry()

	_, err := registry.Lookup("Bls12381G2Key2020")

	require.Error(t, err)
	assert.ErrorIs(t, err, did.ErrUnsupportedSuite)
	assert.Contains(t, err.Error(), "Bls12381G2Key2020")
}

func TestRegistry_RegisterCustomSuite(t *testing.T) {
	registry := NewRegistry()
	registry.Register(SuiteFunc{
		SuiteName: "always",
		Fn:        func(message, key, signature []byte) bool { return true },
	}, "AlwaysKey", "AlwaysSignature")

	suite, err := registry.Lookup("AlwaysSignature")
	require.NoError(t, err)
	assert.Equal(t, "always", suite.Name())
	assert.True(t, suite.Verify(nil, nil, nil))
}

func TestEd25519_Verify(t *testing.T) {
	pub, priv, err := ed25519.GenerateKey(rand.Reader)
	require.NoError(t, err)
	otherPub, _, err := ed25519.GenerateKey(rand.Reader)
	require.NoError(t, err)

	sig := ed25519.Sign(priv, message)
	suite := Ed25519()

	assert.True(t, suite.Verify(message, pub, sig))
	assert.False(t, suite.Verify(message, otherPub, sig), "wrong key")
	assert.False(t, suite.Verify(append([]byte("x"), message...), pub, sig), "tampered message")
	assert.False(t, suite.Verify(message, pub[:16], sig), "short key")
	assert.False(t, suite.Verify(message, pub, sig[:10]), "short signature")
}

func TestSecp256k1_Verify(t *testing.T) {
	priv, err := secp256k1.GeneratePrivateKey()
	require.NoError(t, err)
	other, err := secp256k1.GeneratePrivateKey()
	require.NoError(t, err)

	digest := sha256.Sum256(message)
	sig := ecdsa.Sign(priv, digest[:]).Serialize()
	suite := Secp256k1()

	assert.True(t, suite.Verify(message, priv.PubKey().SerializeCompressed(), sig))
	assert.True(t, suite.Verify(message, priv.PubKey().SerializeUncompressed(), sig))
	assert.False(t, suite.Verify(message, other.PubKey().SerializeCompressed(), sig))
	assert.False(t, suite.Verify(message, []byte{0x02, 0x01}, sig), "malformed key")
	assert.False(t, suite.Verify(message, priv.PubKey().SerializeCompressed(), []byte{0x30, 0x00}), "malformed signature")
}

func TestRSA_Verify(t *testing.T) {
	priv, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)
	der, err := x509.MarshalPKIXPublicKey(&priv.PublicKey)
	require.NoError(t, err)

	digest := sha256.Sum256(message)
	sig, err := rsa.SignPKCS1v15(rand.Reader, priv, crypto.SHA256, digest[:])
	require.NoError(t, err)
	suite := RSA()

	assert.True(t, suite.Verify(message, der, sig))
	assert.False(t, suite.Verify([]byte("other"), der, sig))
	assert.False(t, suite.Verify(message, []byte("not der"), sig))

	edPub, _, _ := ed25519.GenerateKey(rand.Reader)
	edDER, err := x509.MarshalPKIXPublicKey(edPub)
	require.NoError(t, err)
	assert.False(t, suite.Verify(message, edDER, sig), "non-RSA PKIX key")
}

func TestVerify_Deterministic(t *testing.T) {
	pub, priv, _ := ed25519.GenerateKey(rand.Reader)
	sig := ed25519.Sign(priv, message)
	suite := Ed25519()

	for i := 0; i < 5; i++ {
		assert.True(t, suite.Verify(message, pub, sig))
	}
}

func BenchmarkEd25519Verify(b *testing.B) {
	pub, priv, _ := ed25519.GenerateKey(rand.Reader)
	sig := ed25519.Sign(priv, message)
	suite := Ed25519()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = suite.Verify(message, pub, sig)
	}
}

func BenchmarkSecp256k1Verify(b *testing.B) {
	priv, _ := secp256k1.GeneratePrivateKey()
	digest := sha256.Sum256(message)
	sig := ecdsa.Sign(priv, digest[:]).Serialize()
	pub := priv.PubKey().SerializeCompressed()
	suite := Secp256k1()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = suite.Verify(message, pub, sig)
	}
}
