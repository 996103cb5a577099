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

package server

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/sage-x-project/sage-did-go/pkg/did"
	"github.com/sage-x-project/sage-did-go/pkg/envelope"
	"github.com/sage-x-project/sage-did-go/pkg/ledger"
	"github.com/sage-x-project/sage-did-go/pkg/registry"
	"github.com/sage-x-project/sage-did-go/pkg/version"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubRegistry fails or panics on every call
type stubRegistry struct {
	err   error
	panic bool
}

func (s stubRegistry) do() (registry.Result, error) {
	if s.panic {
		panic("registry exploded")
	}
	return registry.Result{}, s.err
}

func (s stubRegistry) Create(ctx context.Context, env *envelope.Envelope) (registry.Result, error) {
	return s.do()
}

func (s stubRegistry) Update(ctx context.Context, env *envelope.Envelope) (registry.Result, error) {
	return s.do()
}

func (s stubRegistry) Delete(ctx context.Context, env *envelope.Envelope) (registry.Result, error) {
	return s.do()
}

func (s stubRegistry) Fetch(ctx context.Context, id did.Identifier) ([]byte, error) {
	_, err := s.do()
	return nil, err
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestRouter(t *testing.T, reg Registry) http.Handler {
	t.Helper()
	return NewRouter(NewHandler(reg, nil, quietLogger()))
}

func newRegistryRouter(t *testing.T) http.Handler {
	t.Helper()
	svc := registry.NewService(ledger.NewMemory(), registry.WithLogger(quietLogger()))
	t.Cleanup(svc.Close)
	return newTestRouter(t, svc)
}

func send(t *testing.T, router http.Handler, method string, document, instruction []byte) *httptest.ResponseRecorder {
	t.Helper()
	body, contentType := multipartBody(t, false, map[string][]byte{
		"document":    document,
		"instruction": instruction,
	})
	req := httptest.NewRequest(method, "/"+testDID, body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func fetch(router http.Handler, target string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/"+target, nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) apiError {
	t.Helper()
	var body apiError
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body), rec.Body.String())
	assert.Equal(t, "error", body.Status)
	return body
}

func TestRouter_Lifecycle(t *testing.T) {
	router := newRegistryRouter(t)
	k1 := newKeyPair(t, "keys-1")
	k2 := newKeyPair(t, "keys-2")

	document, instruction := signedParts(t, "create", k1)
	rec := send(t, router, http.MethodPut, document, instruction)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var created struct {
		Status string             `json:"status"`
		Data   submissionResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	assert.Equal(t, "success", created.Status)
	assert.Equal(t, testDID, created.Data.DID)
	assert.Equal(t, "create", created.Data.Action)
	assert.Equal(t, "VALID", created.Data.Status)
	assert.NotEmpty(t, created.Data.TransactionID)
	assert.NotEmpty(t, rec.Header().Get("X-Request-Id"))

	rec = fetch(router, testDID)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.Equal(t, document, rec.Body.Bytes())

	// duplicate creation
	rec = send(t, router, http.MethodPut, document, instruction)
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "CONFLICT", decodeError(t, rec).Code)

	// rotation without the retained key
	rotated, rotatedInst := signedParts(t, "update", k2)
	rec = send(t, router, http.MethodPost, rotated, rotatedInst)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "KEY_ROTATION_INTEGRITY", decodeError(t, rec).Code)

	updated, updatedInst := signedParts(t, "update", k1, k2)
	rec = send(t, router, http.MethodPost, updated, updatedInst)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	_, deleteInst := signedParts(t, "delete", k1, k2)
	rec = send(t, router, http.MethodDelete, updated, deleteInst)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = fetch(router, testDID)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "DID_ALREADY_DELETED", decodeError(t, rec).Code)

	rec = send(t, router, http.MethodPut, document, instruction)
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "DID_ALREADY_DELETED", decodeError(t, rec).Code)

	rec = send(t, router, http.MethodPost, updated, updatedInst)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "DID_ALREADY_DELETED", decodeError(t, rec).Code)
}

func TestRouter_ModifyUnknown(t *testing.T) {
	router := newRegistryRouter(t)
	k1 := newKeyPair(t, "keys-1")

	document, instruction := signedParts(t, "update", k1)
	rec := send(t, router, http.MethodPost, document, instruction)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "NOT_FOUND", decodeError(t, rec).Code)

	rec = fetch(router, testDID)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "NOT_FOUND", decodeError(t, rec).Code)
}

func TestRouter_FetchMalformedIdentifier(t *testing.T) {
	router := newRegistryRouter(t)

	rec := fetch(router, "did:corda:tcn:not-a-uuid")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "FORMAT_ERROR", decodeError(t, rec).Code)
}

func TestRouter_ActionMismatch(t *testing.T) {
	router := newRegistryRouter(t)
	k1 := newKeyPair(t, "keys-1")

	document, instruction := signedParts(t, "update", k1)
	rec := send(t, router, http.MethodPut, document, instruction)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	body := decodeError(t, rec)
	assert.Equal(t, "ACTION_MISMATCH", body.Code)
	assert.Contains(t, body.Message, "Create")
}

func TestRouter_InternalErrorsAreOpaque(t *testing.T) {
	router := newTestRouter(t, stubRegistry{err: errors.New("connection refused to 10.0.0.7")})

	rec := fetch(router, testDID)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	body := decodeError(t, rec)
	assert.Equal(t, "INTERNAL_ERROR", body.Code)
	assert.NotContains(t, body.Message, "10.0.0.7")
}

func TestRouter_RecoversPanics(t *testing.T) {
	router := newTestRouter(t, stubRegistry{panic: true})
	k1 := newKeyPair(t, "keys-1")

	document, instruction := signedParts(t, "create", k1)
	rec := send(t, router, http.MethodPut, document, instruction)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "INTERNAL_ERROR", decodeError(t, rec).Code)
}

func TestRouter_HealthAndVersion(t *testing.T) {
	router := newTestRouter(t, stubRegistry{})

	rec := fetch(router, "healthz")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"success","message":"ok"}`, rec.Body.String())

	rec = fetch(router, "version")
	require.Equal(t, http.StatusOK, rec.Code)
	var body struct {
		Data version.Info `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, version.Version, body.Data.Version)
}

func TestRouter_PreservesRequestID(t *testing.T) {
	router := newTestRouter(t, stubRegistry{})

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set("X-Request-Id", "req-42")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, "req-42", rec.Header().Get("X-Request-Id"))
}
