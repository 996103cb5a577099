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

// Package client provides an HTTP client for the DID registry.
//
// # Basic Usage
//
//	c := client.New("http://localhost:8080", nil)
//
//	kp, _ := signer.GenerateEd25519(id + "#keys-1")
//	doc, _ := protocol.NewDocumentBuilder(id).
//	    WithCreated(time.Now()).
//	    WithPublicKey(signer.PublicKeyEntry(kp, id)).
//	    Bytes()
//
//	res, err := c.SignAndSubmit(ctx, protocol.ActionCreate, id, doc, kp)
//	if err != nil {
//	    var apiErr *client.APIError
//	    if errors.As(err, &apiErr) {
//	        log.Printf("rejected: %s", apiErr.Code)
//	    }
//	}
//
// Create, Update and Delete send pre-signed instructions. Fetch returns the
// current document bytes as they were submitted.
package client
