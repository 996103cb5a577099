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

package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/sage-x-project/sage-did-go/pkg/envelope"
	"github.com/sage-x-project/sage-did-go/pkg/ledger"
	"github.com/sage-x-project/sage-did-go/pkg/protocol"
	"github.com/sage-x-project/sage-did-go/pkg/registry"
	"github.com/sage-x-project/sage-did-go/pkg/signer"
)

var (
	instructions = signer.NewDefaultInstructionSigner()
	parser       = envelope.DefaultParser()
)

func document(id string, created time.Time, keys ...signer.KeyPair) []byte {
	b := protocol.NewDocumentBuilder(id).WithCreated(created)
	for _, kp := range keys {
		b.WithPublicKey(signer.PublicKeyEntry(kp, id))
	}
	raw, err := b.Bytes()
	if err != nil {
		log.Fatalf("Failed to build document: %v", err)
	}
	return raw
}

func envelopeFor(ctx context.Context, id, action string, raw []byte, keys ...signer.KeyPair) *envelope.Envelope {
	inst, err := instructions.Sign(ctx, action, raw, keys...)
	if err != nil {
		log.Fatalf("Failed to sign instruction: %v", err)
	}
	env, err := parser.Parse(id, string(raw), string(inst))
	if err != nil {
		log.Fatalf("Failed to parse envelope: %v", err)
	}
	return env
}

func report(step string, res registry.Result, err error) {
	if err != nil {
		fmt.Printf("   %s: rejected (%v)\n", step, err)
		return
	}
	fmt.Printf("   %s: accepted, transaction %s\n", step, res.TransactionID)
}

func main() {
	fmt.Println("SAGE DID Go - Key Rotation Example")
	fmt.Println("==================================")

	ctx := context.Background()
	svc := registry.NewService(ledger.NewMemory())
	defer svc.Close()

	id := "did:corda:tcn:" + uuid.NewString()
	created := time.Now()

	ed, err := signer.GenerateEd25519(id + "#keys-1")
	if err != nil {
		log.Fatalf("Failed to generate Ed25519 key: %v", err)
	}
	secp, err := signer.GenerateSecp256k1(id + "#keys-2")
	if err != nil {
		log.Fatalf("Failed to generate secp256k1 key: %v", err)
	}
	rsa, err := signer.GenerateRSA(id+"#keys-3", 2048)
	if err != nil {
		log.Fatalf("Failed to generate RSA key: %v", err)
	}

	fmt.Println("\n1. Creating DID with an Ed25519 key...")
	res, err := svc.Create(ctx, envelopeFor(ctx, id, protocol.ActionCreate, document(id, created, ed), ed))
	report("create", res, err)

	fmt.Println("\n2. Adding a secp256k1 key, signed by both keys...")
	twoKeys := document(id, created, ed, secp)
	res, err = svc.Update(ctx, envelopeFor(ctx, id, protocol.ActionUpdate, twoKeys, ed, secp))
	report("add key", res, err)

	fmt.Println("\n3. Replacing every key with an RSA key signed only by itself...")
	takeover := document(id, created, rsa)
	res, err = svc.Update(ctx, envelopeFor(ctx, id, protocol.ActionUpdate, takeover, rsa))
	report("takeover", res, err)

	fmt.Println("\n4. Rotating Ed25519 out for RSA, approved by the retained secp256k1 key...")
	rotated := document(id, created, secp, rsa)
	res, err = svc.Update(ctx, envelopeFor(ctx, id, protocol.ActionUpdate, rotated, secp, rsa))
	report("rotate", res, err)

	fmt.Println("\n5. Deleting the DID...")
	res, err = svc.Delete(ctx, envelopeFor(ctx, id, protocol.ActionDelete, rotated, rsa))
	report("delete", res, err)

	fmt.Println("\n6. Attempting to revive it...")
	res, err = svc.Update(ctx, envelopeFor(ctx, id, protocol.ActionUpdate, rotated, secp, rsa))
	report("update after delete", res, err)

	fmt.Println("\n✅ Example completed!")
}
