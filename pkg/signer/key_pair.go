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

package signer

import (
	"crypto"
	"crypto/ed25519"
	"crypto/rand"
	"crypto/rsa"
	"crypto/sha256"
	"crypto/x509"
	"fmt"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"
	"github.com/decred/dcrd/dcrec/secp256k1/v4/ecdsa"
	"github.com/mr-tron/base58"
	"github.com/sage-x-project/sage-did-go/pkg/cryptosuite"
	"github.com/sage-x-project/sage-did-go/pkg/protocol"
)

// KeyPair is a private key bound to the id it is declared under in a document
type KeyPair interface {
	// KeyID is the key URI, e.g. did:corda:tcn:...#keys-1
	KeyID() string

	// KeyType is the label used in the document's publicKey entry
	KeyType() string

	// SignatureType is the label used in the instruction's signature entry
	SignatureType() string

	// PublicKey returns the public material as it is declared in documents
	PublicKey() []byte

	// Sign signs message with the private key
	Sign(message []byte) ([]byte, error)
}

// PublicKeyEntry renders kp as a document key entry with base58 material
func PublicKeyEntry(kp KeyPair, controller string) protocol.PublicKey {
	return protocol.PublicKey{
		ID:              kp.KeyID(),
		Type:            kp.KeyType(),
		Controller:      controller,
		PublicKeyBase58: base58.Encode(kp.PublicKey()),
	}
}

type ed25519KeyPair struct {
	keyID string
	priv  ed25519.PrivateKey
}

// NewEd25519KeyPair wraps an existing Ed25519 private key
func NewEd25519KeyPair(keyID string, priv ed25519.PrivateKey) KeyPair {
	return &ed25519KeyPair{keyID: keyID, priv: priv}
}

// GenerateEd25519 creates a fresh Ed25519 key pair
func GenerateEd25519(keyID string) (KeyPair, error) {
	_, priv, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		return nil, fmt.Errorf("generate ed25519 key: %w", err)
	}
	return NewEd25519KeyPair(keyID, priv), nil
}

func (k *ed25519KeyPair) KeyID() string         { return k.keyID }
func (k *ed25519KeyPair) KeyType() string       { return cryptosuite.Ed25519VerificationKey2018 }
func (k *ed25519KeyPair) SignatureType() string { return cryptosuite.Ed25519Signature2018 }

func (k *ed25519KeyPair) PublicKey() []byte {
	return append([]byte(nil), k.priv.Public().(ed25519.PublicKey)...)
}

func (k *ed25519KeyPair) Sign(message []byte) ([]byte, error) {
	return ed25519.Sign(k.priv, message), nil
}

type secp256k1KeyPair struct {
	keyID string
	priv  *secp256k1.PrivateKey
}

// NewSecp256k1KeyPair wraps an existing secp256k1 private key
func NewSecp256k1KeyPair(keyID string, priv *secp256k1.PrivateKey) KeyPair {
	return &secp256k1KeyPair{keyID: keyID, priv: priv}
}

// GenerateSecp256k1 creates a fresh secp256k1 key pair
func GenerateSecp256k1(keyID string) (KeyPair, error) {
	priv, err := secp256k1.GeneratePrivateKey()
	if err != nil {
		return nil, fmt.Errorf("generate secp256k1 key: %w", err)
	}
	return NewSecp256k1KeyPair(keyID, priv), nil
}

func (k *secp256k1KeyPair) KeyID() string   { return k.keyID }
func (k *secp256k1KeyPair) KeyType() string { return cryptosuite.EcdsaSecp256k1VerificationKey2019 }
func (k *secp256k1KeyPair) SignatureType() string {
	return cryptosuite.EcdsaSecp256k1Signature2019
}

// PublicKey returns the compressed SEC1 encoding
func (k *secp256k1KeyPair) PublicKey() []byte {
	return k.priv.PubKey().SerializeCompressed()
}

// Sign returns a DER signature over SHA-256 of message
func (k *secp256k1KeyPair) Sign(message []byte) ([]byte, error) {
	digest := sha256.Sum256(message)
	return ecdsa.Sign(k.priv, digest[:]).Serialize(), nil
}

type rsaKeyPair struct {
	keyID string
	priv  *rsa.PrivateKey
	der   []byte
}

// NewRSAKeyPair wraps an existing RSA private key
func NewRSAKeyPair(keyID string, priv *rsa.PrivateKey) (KeyPair, error) {
	der, err := x509.MarshalPKIXPublicKey(&priv.PublicKey)
	if err != nil {
		return nil, fmt.Errorf("marshal rsa public key: %w", err)
	}
	return &rsaKeyPair{keyID: keyID, priv: priv, der: der}, nil
}

// GenerateRSA creates a fresh RSA key pair of the given size
func GenerateRSA(keyID string, bits int) (KeyPair, error) {
	priv, err := rsa.GenerateKey(rand.Reader, bits)
	if err != nil {
		return nil, fmt.Errorf("generate rsa key: %w", err)
	}
	return NewRSAKeyPair(keyID, priv)
}

func (k *rsaKeyPair) KeyID() string         { return k.keyID }
func (k *rsaKeyPair) KeyType() string       { return cryptosuite.RsaVerificationKey2018 }
func (k *rsaKeyPair) SignatureType() string { return cryptosuite.RsaSignature2018 }

// PublicKey returns the PKIX DER encoding
func (k *rsaKeyPair) PublicKey() []byte {
	return append([]byte(nil), k.der...)
}

func (k *rsaKeyPair) Sign(message []byte) ([]byte, error) {
	digest := sha256.Sum256(message)
	return rsa.SignPKCS1v15(rand.Reader, k.priv, crypto.SHA256, digest[:])
}
