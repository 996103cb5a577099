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
	"net/http"

	"github.com/sage-x-project/sage-did-go/pkg/envelope"
	"github.com/sage-x-project/sage-did-go/pkg/registry"
)

type submissionResponse struct {
	DID           string `json:"did"`
	TransactionID string `json:"transactionId"`
	Action        string `json:"action"`
	Status        string `json:"status"`
}

type submitFunc func(ctx context.Context, env *envelope.Envelope) (registry.Result, error)

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	h.submit(w, r, OperationCreate, h.registry.Create)
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	h.submit(w, r, OperationModify, h.registry.Update)
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	h.submit(w, r, OperationModify, h.registry.Delete)
}

func (h *Handler) submit(w http.ResponseWriter, r *http.Request, op Operation, fn submitFunc) {
	env, ok := EnvelopeFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
		return
	}

	res, err := fn(r.Context(), env)
	if err != nil {
		h.writeFailure(w, r, op, err)
		return
	}

	writeSuccess(w, http.StatusOK, submissionResponse{
		DID:           res.DID,
		TransactionID: res.TransactionID,
		Action:        res.Action.Wire(),
		Status:        res.Status.String(),
	})
}

func (h *Handler) fetch(w http.ResponseWriter, r *http.Request) {
	id, err := h.parser.ParseIdentifier(targetFromRequest(r))
	if err != nil {
		h.writeFailure(w, r, OperationFetch, err)
		return
	}

	raw, err := h.registry.Fetch(r.Context(), id)
	if err != nil {
		h.writeFailure(w, r, OperationFetch, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(raw)
}

func (h *Handler) writeFailure(w http.ResponseWriter, r *http.Request, op Operation, err error) {
	status, code, msg := MapError(op, err)
	if status >= http.StatusInternalServerError {
		h.logger.ErrorContext(r.Context(), "request failed",
			"module", "server",
			"layer", "http",
			"operation", r.Method,
			"outcome", "failure",
			"request_id", RequestIDFromContext(r.Context()),
			"error", err,
		)
	}
	writeError(w, status, code, msg)
}
