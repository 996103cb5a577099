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
	"context"
	"encoding/base64"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/mr-tron/base58"
	"github.com/sage-x-project/sage-did-go/pkg/envelope"
	"github.com/sage-x-project/sage-did-go/pkg/protocol"
)

// DefaultInstructionSigner implements InstructionSigner
type DefaultInstructionSigner struct{}

// NewDefaultInstructionSigner creates a new DefaultInstructionSigner
func NewDefaultInstructionSigner() *DefaultInstructionSigner {
	return &DefaultInstructionSigner{}
}

// Sign signs rawDocument with every key using default options
func (s *DefaultInstructionSigner) Sign(ctx context.Context, action string, rawDocument []byte, keys ...KeyPair) ([]byte, error) {
	return s.SignWithOptions(ctx, action, rawDocument, nil, keys...)
}

// SignWithOptions signs rawDocument with every key. Keys are signed in the
// order given and appear in that order in the instruction.
func (s *DefaultInstructionSigner) SignWithOptions(ctx context.Context, action string, rawDocument []byte, opts *SigningOptions, keys ...KeyPair) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	if _, ok := envelope.ParseAction(action); !ok {
		return nil, fmt.Errorf("unknown action %q", action)
	}
	if len(rawDocument) == 0 {
		return nil, fmt.Errorf("document cannot be empty")
	}

	if opts == nil {
		opts = &SigningOptions{}
	}

	inst := protocol.Instruction{
		Action:     strings.ToLower(action),
		Signatures: make([]protocol.Signature, 0, len(keys)),
	}

	for _, kp := range keys {
		if kp == nil {
			return nil, fmt.Errorf("key pair cannot be nil")
		}

		raw, err := kp.Sign(rawDocument)
		if err != nil {
			return nil, fmt.Errorf("failed to sign with %s: %w", kp.KeyID(), err)
		}

		sig := protocol.Signature{ID: kp.KeyID(), Type: kp.SignatureType()}
		if opts.RelativeIDs {
			if i := strings.IndexByte(sig.ID, '#'); i > 0 {
				sig.ID = sig.ID[i:]
			}
		}
		if err := encodeSignature(&sig, raw, opts.Encoding); err != nil {
			return nil, err
		}
		inst.Signatures = append(inst.Signatures, sig)
	}

	out, err := json.Marshal(inst)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal instruction: %w", err)
	}
	return out, nil
}

func encodeSignature(sig *protocol.Signature, raw []byte, encoding string) error {
	switch encoding {
	case "", EncodingBase58:
		sig.SignatureBase58 = base58.Encode(raw)
	case EncodingHex:
		sig.SignatureHex = hex.EncodeToString(raw)
	case EncodingBase64:
		sig.SignatureBase64 = base64.StdEncoding.EncodeToString(raw)
	case EncodingMultibase:
		sig.SignatureMultibase = "z" + base58.Encode(raw)
	default:
		return fmt.Errorf("unknown signature encoding %q", encoding)
	}
	return nil
}
