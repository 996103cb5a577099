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
	"crypto/rsa"
	"crypto/sha256"
	"crypto/x509"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"
	"github.com/decred/dcrd/dcrec/secp256k1/v4/ecdsa"
)

// Key and signature labels
const (
	Ed25519VerificationKey2018 = "Ed25519VerificationKey2018"
	Ed25519Signature2018       = "Ed25519Signature2018"

	EcdsaSecp256k1VerificationKey2019 = "EcdsaSecp256k1VerificationKey2019"
	EcdsaSecp256k1Signature2019       = "EcdsaSecp256k1Signature2019"

	RsaVerificationKey2018 = "RsaVerificationKey2018"
	RsaSignature2018       = "RsaSignature2018"
)

// Scheme names
const (
	SchemeEd25519   = "ed25519"
	SchemeSecp256k1 = "ecdsa-secp256k1-sha256"
	SchemeRSA       = "rsa-pkcs1v15-sha256"
)

// compact r||s encoding length for secp256k1 signatures
const secp256k1CompactLen = 64

type ed25519Suite struct{}

// Ed25519 verifies raw 32-byte Ed25519 public keys
func Ed25519() Suite { return ed25519Suite{} }

func (ed25519Suite) Name() string { return SchemeEd25519 }

func (ed25519Suite) Verify(message, key, signature []byte) bool {
	if len(key) != ed25519.PublicKeySize || len(signature) != ed25519.SignatureSize {
		return false
	}
	return ed25519.Verify(ed25519.PublicKey(key), message, signature)
}

type secp256k1Suite struct{}

// Secp256k1 verifies ECDSA signatures over SHA-256 of the message. Keys are
// SEC1 encoded (compressed or uncompressed); signatures are DER or 64-byte r||s.
func Secp256k1() Suite { return secp256k1Suite{} }

func (secp256k1Suite) Name() string { return SchemeSecp256k1 }

func (secp256k1Suite) Verify(message, key, signature []byte) bool {
	pubKey, err := secp256k1.ParsePubKey(key)
	if err != nil {
		return false
	}

	sig, ok := parseSecp256k1Signature(signature)
	if !ok {
		return false
	}

	digest := sha256.Sum256(message)
	return sig.Verify(digest[:], pubKey)
}

func parseSecp256k1Signature(raw []byte) (*ecdsa.Signature, bool) {
	if len(raw) == secp256k1CompactLen {
		var r, s secp256k1.ModNScalar
		if overflow := r.SetByteSlice(raw[:32]); overflow {
			return nil, false
		}
		if overflow := s.SetByteSlice(raw[32:]); overflow {
			return nil, false
		}
		return ecdsa.NewSignature(&r, &s), true
	}

	sig, err := ecdsa.ParseDERSignature(raw)
	if err != nil {
		return nil, false
	}
	return sig, true
}

type rsaSuite struct{}

// RSA verifies PKCS#1 v1.5 SHA-256 signatures against PKIX DER public keys
func RSA() Suite { return rsaSuite{} }

func (rsaSuite) Name() string { return SchemeRSA }

func (rsaSuite) Verify(message, key, signature []byte) bool {
	parsed, err := x509.ParsePKIXPublicKey(key)
	if err != nil {
		return false
	}
	pubKey, ok := parsed.(*rsa.PublicKey)
	if !ok {
		return false
	}

	digest := sha256.Sum256(message)
	return rsa.VerifyPKCS1v15(pubKey, crypto.SHA256, digest[:], signature) == nil
}
