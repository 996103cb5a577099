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

package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"

	"github.com/sage-x-project/sage-did-go/pkg/protocol"
	"github.com/sage-x-project/sage-did-go/pkg/signer"
)

// Result is a recorded submission as reported by the registry
type Result struct {
	DID           string `json:"did"`
	TransactionID string `json:"transactionId"`
	Action        string `json:"action"`
	Status        string `json:"status"`
}

// APIError is a non-2xx response from the registry
type APIError struct {
	StatusCode int
	Code       string
	Message    string
}

func (e *APIError) Error() string {
	if e.Code == "" {
		return fmt.Sprintf("registry returned %d", e.StatusCode)
	}
	return fmt.Sprintf("registry returned %d %s: %s", e.StatusCode, e.Code, e.Message)
}

// Client talks to a DID registry over HTTP
type Client struct {
	baseURL    string
	httpClient *http.Client
	signer     signer.InstructionSigner
}

// New creates a client for the registry at baseURL.
// If httpClient is nil, http.DefaultClient is used
func New(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
		signer:     signer.NewDefaultInstructionSigner(),
	}
}

// Create submits a new DID document
func (c *Client) Create(ctx context.Context, id string, document, instruction []byte) (*Result, error) {
	return c.submit(ctx, http.MethodPut, id, document, instruction)
}

// Update replaces the document of id
func (c *Client) Update(ctx context.Context, id string, document, instruction []byte) (*Result, error) {
	return c.submit(ctx, http.MethodPost, id, document, instruction)
}

// Delete deactivates id. The document must be the current one.
func (c *Client) Delete(ctx context.Context, id string, document, instruction []byte) (*Result, error) {
	return c.submit(ctx, http.MethodDelete, id, document, instruction)
}

// SignAndSubmit signs document with keys for action and submits it with
// the matching method
func (c *Client) SignAndSubmit(ctx context.Context, action, id string, document []byte, keys ...signer.KeyPair) (*Result, error) {
	instruction, err := c.signer.Sign(ctx, action, document, keys...)
	if err != nil {
		return nil, fmt.Errorf("failed to sign instruction: %w", err)
	}

	switch strings.ToLower(action) {
	case protocol.ActionCreate:
		return c.Create(ctx, id, document, instruction)
	case protocol.ActionUpdate:
		return c.Update(ctx, id, document, instruction)
	default:
		return c.Delete(ctx, id, document, instruction)
	}
}

// Fetch returns the current document of id exactly as it was submitted
func (c *Client) Fetch(ctx context.Context, id string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint(id), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create GET request: %w", err)
	}

	body, err := c.do(req)
	if err != nil {
		return nil, err
	}
	return body, nil
}

func (c *Client) submit(ctx context.Context, method, id string, document, instruction []byte) (*Result, error) {
	body := &bytes.Buffer{}
	mw := multipart.NewWriter(body)
	if err := mw.WriteField("document", string(document)); err != nil {
		return nil, fmt.Errorf("failed to encode document: %w", err)
	}
	if err := mw.WriteField("instruction", string(instruction)); err != nil {
		return nil, fmt.Errorf("failed to encode instruction: %w", err)
	}
	if err := mw.Close(); err != nil {
		return nil, fmt.Errorf("failed to encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.endpoint(id), body)
	if err != nil {
		return nil, fmt.Errorf("failed to create %s request: %w", method, err)
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	respBody, err := c.do(req)
	if err != nil {
		return nil, err
	}

	var envelope struct {
		Status string `json:"status"`
		Data   Result `json:"data"`
	}
	if err := json.Unmarshal(respBody, &envelope); err != nil {
		return nil, fmt.Errorf("failed to parse registry response: %w", err)
	}
	return &envelope.Data, nil
}

func (c *Client) do(req *http.Request) ([]byte, error) {
	if err := req.Context().Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("HTTP request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		apiErr := &APIError{StatusCode: resp.StatusCode}
		var payload struct {
			Code    string `json:"code"`
			Message string `json:"message"`
		}
		if json.Unmarshal(body, &payload) == nil {
			apiErr.Code = payload.Code
			apiErr.Message = payload.Message
		}
		return nil, apiErr
	}
	return body, nil
}

func (c *Client) endpoint(id string) string {
	return c.baseURL + "/" + url.PathEscape(id)
}
