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
	"net/url"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/sage-x-project/sage-did-go/pkg/envelope"
)

type contextKey string

const (
	envelopeKey  contextKey = "envelope"
	requestIDKey contextKey = "request_id"
)

// ErrorHandler handles envelope parsing errors
type ErrorHandler func(w http.ResponseWriter, r *http.Request, err error)

// EnvelopeMiddleware parses the envelope carried by mutating requests
type EnvelopeMiddleware struct {
	parser       *envelope.Parser
	maxBodyBytes int64
	errorHandler ErrorHandler
}

// NewEnvelopeMiddleware creates a middleware using parser; nil means
// envelope.DefaultParser()
func NewEnvelopeMiddleware(parser *envelope.Parser) *EnvelopeMiddleware {
	if parser == nil {
		parser = envelope.DefaultParser()
	}
	return &EnvelopeMiddleware{
		parser:       parser,
		maxBodyBytes: DefaultMaxBodyBytes,
		errorHandler: defaultErrorHandler,
	}
}

// SetErrorHandler sets a custom error handler
func (m *EnvelopeMiddleware) SetErrorHandler(handler ErrorHandler) {
	m.errorHandler = handler
}

// SetMaxBodyBytes bounds the size of a request body
func (m *EnvelopeMiddleware) SetMaxBodyBytes(n int64) {
	if n > 0 {
		m.maxBodyBytes = n
	}
}

// Wrap wraps an HTTP handler with envelope parsing. The target identifier
// is the {did} route parameter.
func (m *EnvelopeMiddleware) Wrap(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodPut, http.MethodPost, http.MethodDelete:
		default:
			next.ServeHTTP(w, r)
			return
		}

		parts, err := readParts(r, m.maxBodyBytes)
		if err != nil {
			m.errorHandler(w, r, err)
			return
		}

		env, err := m.parser.Parse(targetFromRequest(r), parts.document, parts.instruction)
		if err != nil {
			m.errorHandler(w, r, err)
			return
		}

		ctx := context.WithValue(r.Context(), envelopeKey, env)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// EnvelopeFromContext extracts the parsed envelope from request context
func EnvelopeFromContext(ctx context.Context) (*envelope.Envelope, bool) {
	env, ok := ctx.Value(envelopeKey).(*envelope.Envelope)
	return env, ok
}

// RequestIDFromContext returns the request id assigned by the router
func RequestIDFromContext(ctx context.Context) string {
	if s, ok := ctx.Value(requestIDKey).(string); ok {
		return s
	}
	return ""
}

func targetFromRequest(r *http.Request) string {
	raw := chi.URLParam(r, "did")
	if s, err := url.PathUnescape(raw); err == nil {
		return s
	}
	return raw
}

func defaultErrorHandler(w http.ResponseWriter, r *http.Request, err error) {
	status, code, msg := MapError(OperationCreate, err)
	writeError(w, status, code, msg)
}

func requestIDMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		reqID := r.Header.Get("X-Request-Id")
		if reqID == "" {
			reqID = uuid.NewString()
		}
		w.Header().Set("X-Request-Id", reqID)
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), requestIDKey, reqID)))
	})
}

func recoverMiddleware(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rec := recover(); rec != nil {
					logger.ErrorContext(r.Context(), "panic recovered",
						"module", "server",
						"request_id", RequestIDFromContext(r.Context()),
						"panic", rec,
					)
					writeError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

func loggingMiddleware(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(rec, r)

			outcome := "success"
			if rec.status >= http.StatusBadRequest {
				outcome = "failure"
			}
			logger.InfoContext(r.Context(), "request completed",
				"module", "server",
				"layer", "http",
				"operation", r.Method+" "+r.URL.Path,
				"outcome", outcome,
				"status", rec.status,
				"request_id", RequestIDFromContext(r.Context()),
				"duration_ms", time.Since(start).Milliseconds(),
			)
		})
	}
}
