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

// Package server exposes the DID registry over HTTP.
//
// # Routes
//
//	PUT    /{did}   create
//	POST   /{did}   update
//	DELETE /{did}   delete
//	GET    /{did}   current document, as submitted
//	GET    /healthz liveness
//	GET    /version build information
//
// Mutating requests carry two parts, "document" and "instruction", as
// multipart form fields, multipart files or url-encoded values:
//
//	curl -X PUT http://localhost:8080/did:corda:tcn:77ccbf5e-4ddd-4092-b813-ac06084a3eb0 \
//	    -F document=@document.json -F instruction=@instruction.json
//
// # Envelope Middleware
//
// EnvelopeMiddleware reads both parts and parses them against the {did}
// route parameter. Handlers retrieve the result with EnvelopeFromContext.
// Parse failures are reported through the ErrorHandler, which can be
// replaced:
//
//	h := server.NewHandler(svc, nil, logger)
//	h.Middleware().SetErrorHandler(func(w http.ResponseWriter, r *http.Request, err error) {
//	    http.Error(w, err.Error(), http.StatusBadRequest)
//	})
//	http.ListenAndServe(":8080", server.NewRouter(h))
//
// # Errors
//
// Failures are JSON bodies of the form
//
//	{"status":"error","code":"MISSING_SIGNATURE","message":"missing signature for key: ..."}
//
// Rejections map to 400. A deleted identifier maps to 409 on create and 404
// otherwise; an identifier that already exists maps to 409 on create.
package server
