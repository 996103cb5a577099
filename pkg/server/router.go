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
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/sage-x-project/sage-did-go/pkg/did"
	"github.com/sage-x-project/sage-did-go/pkg/envelope"
	"github.com/sage-x-project/sage-did-go/pkg/registry"
	"github.com/sage-x-project/sage-did-go/pkg/version"
)

// Registry is the service behind the HTTP routes
type Registry interface {
	Create(ctx context.Context, env *envelope.Envelope) (registry.Result, error)
	Update(ctx context.Context, env *envelope.Envelope) (registry.Result, error)
	Delete(ctx context.Context, env *envelope.Envelope) (registry.Result, error)
	Fetch(ctx context.Context, id did.Identifier) ([]byte, error)
}

// Handler serves the registry over HTTP
type Handler struct {
	registry   Registry
	parser     *envelope.Parser
	middleware *EnvelopeMiddleware
	logger     *slog.Logger
}

// NewHandler creates a handler. A nil parser means envelope.DefaultParser()
// and a nil logger means slog.Default().
func NewHandler(reg Registry, parser *envelope.Parser, logger *slog.Logger) *Handler {
	if parser == nil {
		parser = envelope.DefaultParser()
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{
		registry:   reg,
		parser:     parser,
		middleware: NewEnvelopeMiddleware(parser),
		logger:     logger,
	}
}

// Middleware exposes the envelope middleware for configuration
func (h *Handler) Middleware() *EnvelopeMiddleware {
	return h.middleware
}

// NewRouter mounts the registry routes
func NewRouter(handler *Handler) http.Handler {
	r := chi.NewRouter()
	r.Use(requestIDMiddleware)
	r.Use(recoverMiddleware(handler.logger))
	r.Use(loggingMiddleware(handler.logger))

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) { writeMessage(w, http.StatusOK, "ok") })
	r.Get("/version", func(w http.ResponseWriter, _ *http.Request) { writeSuccess(w, http.StatusOK, version.Get()) })

	r.Get("/{did}", handler.fetch)
	r.Group(func(r chi.Router) {
		r.Use(handler.middleware.Wrap)
		r.Put("/{did}", handler.create)
		r.Post("/{did}", handler.update)
		r.Delete("/{did}", handler.delete)
	})
	return r
}
