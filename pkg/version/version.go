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

// Package version reports build and protocol version information.
package version

import (
	"runtime"

	sagedid "github.com/sage-x-project/sage-did-go"
)

// Commit is set at build time with -ldflags "-X .../pkg/version.Commit=<sha>"
var Commit = "unknown"

const (
	// Version mirrors the module release
	Version = sagedid.Version

	// DocumentContext is the accepted DID document context
	DocumentContext = sagedid.DocumentContext

	// DIDMethod is the DID method accepted by default
	DIDMethod = sagedid.DIDMethod
)

// Info contains detailed version information
type Info struct {
	Version         string `json:"version"`
	Commit          string `json:"commit"`
	DocumentContext string `json:"documentContext"`
	DIDMethod       string `json:"didMethod"`
	GoVersion       string `json:"goVersion"`
}

// Get returns the version information of the running binary
func Get() Info {
	return Info{
		Version:         Version,
		Commit:          Commit,
		DocumentContext: DocumentContext,
		DIDMethod:       DIDMethod,
		GoVersion:       runtime.Version(),
	}
}
