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
	"errors"
	"fmt"
	"log"
	"net/http/httptest"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/sage-x-project/sage-did-go/pkg/client"
	"github.com/sage-x-project/sage-did-go/pkg/ledger"
	"github.com/sage-x-project/sage-did-go/pkg/protocol"
	"github.com/sage-x-project/sage-did-go/pkg/registry"
	"github.com/sage-x-project/sage-did-go/pkg/server"
	"github.com/sage-x-project/sage-did-go/pkg/signer"
)

func main() {
	fmt.Println("SAGE DID Go - Simple Client Example")
	fmt.Println("===================================")

	ctx := context.Background()

	// Use a running registry when REGISTRY_URL is set, otherwise start one in process
	baseURL := os.Getenv("REGISTRY_URL")
	if baseURL == "" {
		svc := registry.NewService(ledger.NewMemory())
		defer svc.Close()
		srv := httptest.NewServer(server.NewRouter(server.NewHandler(svc, nil, nil)))
		defer srv.Close()
		baseURL = srv.URL
	}
	fmt.Printf("   Registry: %s\n", baseURL)

	// Generate an identifier and its first key
	fmt.Println("\n1. Generating DID and key pair...")
	id := "did:corda:tcn:" + uuid.NewString()
	keyPair, err := signer.GenerateEd25519(id + "#keys-1")
	if err != nil {
		log.Fatalf("Failed to generate key pair: %v", err)
	}
	fmt.Printf("   DID: %s\n", id)
	fmt.Printf("   Key: %s (%s)\n", keyPair.KeyID(), keyPair.KeyType())

	// Build the document
	fmt.Println("\n2. Building DID document...")
	document, err := protocol.NewDocumentBuilder(id).
		WithCreated(time.Now()).
		WithPublicKey(signer.PublicKeyEntry(keyPair, id)).
		Bytes()
	if err != nil {
		log.Fatalf("Failed to build document: %v", err)
	}
	fmt.Println(string(document))

	// Sign and create
	fmt.Println("\n3. Creating DID...")
	c := client.New(baseURL, nil)
	res, err := c.SignAndSubmit(ctx, protocol.ActionCreate, id, document, keyPair)
	if err != nil {
		var apiErr *client.APIError
		if errors.As(err, &apiErr) {
			log.Fatalf("Registry rejected the DID: %s (%s)", apiErr.Code, apiErr.Message)
		}
		log.Fatalf("Failed to create DID: %v", err)
	}
	fmt.Printf("   Transaction: %s\n", res.TransactionID)

	// Fetch it back
	fmt.Println("\n4. Fetching DID document...")
	fetched, err := c.Fetch(ctx, id)
	if err != nil {
		log.Fatalf("Failed to fetch DID: %v", err)
	}
	fmt.Printf("   Identical to submitted document: %v\n", string(fetched) == string(document))

	fmt.Println("\n✅ Example completed!")
}
