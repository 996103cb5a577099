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
	"encoding/json"
	"errors"
	"net/http"

	"github.com/sage-x-project/sage-did-go/pkg/did"
	"github.com/sage-x-project/sage-did-go/pkg/ledger"
)

type apiError struct {
	Status  string `json:"status"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, statusCode int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeSuccess(w http.ResponseWriter, statusCode int, data any) {
	writeJSON(w, statusCode, map[string]any{
		"status": "success",
		"data":   data,
	})
}

func writeMessage(w http.ResponseWriter, statusCode int, message string) {
	writeJSON(w, statusCode, map[string]any{
		"status":  "success",
		"message": message,
	})
}

func writeError(w http.ResponseWriter, statusCode int, code, message string) {
	writeJSON(w, statusCode, apiError{
		Status:  "error",
		Code:    code,
		Message: message,
	})
}

// Operation selects the error mapping of a route
type Operation int

const (
	OperationCreate Operation = iota
	OperationModify
	OperationFetch
)

// MapError returns the status code, error code and message reported for err
func MapError(op Operation, err error) (int, string, string) {
	if errors.Is(err, ledger.ErrConflict) {
		return http.StatusConflict, "CONFLICT", "identifier already exists"
	}

	kind, ok := did.KindOf(err)
	if !ok {
		return http.StatusInternalServerError, "INTERNAL_ERROR", "internal server error"
	}

	switch kind {
	case did.KindDidAlreadyDeleted:
		if op == OperationCreate {
			return http.StatusConflict, kind.String(), err.Error()
		}
		return http.StatusNotFound, kind.String(), err.Error()
	case did.KindNotFound:
		return http.StatusNotFound, kind.String(), err.Error()
	default:
		return http.StatusBadRequest, kind.String(), err.Error()
	}
}
