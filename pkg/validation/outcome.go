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

package validation

import (
	"github.com/sage-x-project/sage-did-go/pkg/did"
)

// Outcome is either accepted or rejected with a tagged error
type Outcome struct {
	rejection *did.Error
}

// Accept returns an accepted outcome
func Accept() Outcome {
	return Outcome{}
}

// Reject returns an outcome rejected with err. It panics on a nil err.
func Reject(err *did.Error) Outcome {
	if err == nil {
		panic("validation: Reject called with nil error")
	}
	return Outcome{rejection: err}
}

// Accepted reports whether the envelope passed every check
func (o Outcome) Accepted() bool {
	return o.rejection == nil
}

// Rejection returns the reason for a rejected outcome, nil when accepted
func (o Outcome) Rejection() *did.Error {
	return o.rejection
}

// Err returns the rejection as an error, nil when accepted
func (o Outcome) Err() error {
	if o.rejection == nil {
		return nil
	}
	return o.rejection
}

// Kind returns the rejection kind; ok is false when accepted
func (o Outcome) Kind() (kind did.ErrorKind, ok bool) {
	if o.rejection == nil {
		return 0, false
	}
	return o.rejection.Kind, true
}

func (o Outcome) String() string {
	if o.rejection == nil {
		return "Accepted"
	}
	return "Rejected(" + o.rejection.Kind.String() + ": " + o.rejection.Error() + ")"
}
