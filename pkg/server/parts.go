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
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"net/url"

	"github.com/sage-x-project/sage-did-go/pkg/did"
)

// DefaultMaxBodyBytes bounds the request body of a mutating request
const DefaultMaxBodyBytes int64 = 1 << 20

const (
	partDocument    = "document"
	partInstruction = "instruction"
)

type envelopeParts struct {
	document    string
	instruction string
}

// readParts extracts the document and instruction parts from a multipart
// form (fields or files) or an url-encoded body
func readParts(r *http.Request, limit int64) (envelopeParts, error) {
	mediaType, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if err != nil {
		return envelopeParts{}, did.NewFormatError(partDocument)
	}

	r.Body = http.MaxBytesReader(nil, r.Body, limit)

	var values func(name string) (string, bool, error)
	switch mediaType {
	case "multipart/form-data":
		if err := r.ParseMultipartForm(limit); err != nil {
			return envelopeParts{}, did.NewFormatError(partDocument)
		}
		values = func(name string) (string, bool, error) {
			return multipartValue(r.MultipartForm, name)
		}
	case "application/x-www-form-urlencoded":
		// ParseForm skips the body of DELETE requests
		body, err := io.ReadAll(r.Body)
		if err != nil {
			return envelopeParts{}, did.NewFormatError(partDocument)
		}
		form, err := url.ParseQuery(string(body))
		if err != nil {
			return envelopeParts{}, did.NewFormatError(partDocument)
		}
		values = func(name string) (string, bool, error) {
			if !form.Has(name) {
				return "", false, nil
			}
			return form.Get(name), true, nil
		}
	default:
		return envelopeParts{}, did.NewFormatError(partDocument)
	}

	var parts envelopeParts
	for _, p := range []struct {
		name string
		dst  *string
	}{
		{partDocument, &parts.document},
		{partInstruction, &parts.instruction},
	} {
		v, ok, err := values(p.name)
		if err != nil || !ok {
			return envelopeParts{}, did.NewFormatError(p.name)
		}
		*p.dst = v
	}
	return parts, nil
}

func multipartValue(form *multipart.Form, name string) (string, bool, error) {
	if vs := form.Value[name]; len(vs) > 0 {
		return vs[0], true, nil
	}
	files := form.File[name]
	if len(files) == 0 {
		return "", false, nil
	}
	f, err := files[0].Open()
	if err != nil {
		return "", false, err
	}
	defer f.Close()
	data, err := io.ReadAll(f)
	if err != nil {
		return "", false, err
	}
	return string(data), true, nil
}
