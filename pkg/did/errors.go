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

package did

import (
	"errors"
	"fmt"
)

// ErrorKind classifies why an envelope was rejected
type ErrorKind int

const (
	KindFormat ErrorKind = iota + 1
	KindUnsupportedSuite
	KindDidMismatch
	KindActionMismatch
	KindUnknownKeyReference
	KindMissingSignature
	KindInvalidSignature
	KindKeyRotationIntegrity
	KindDidAlreadyDeleted
	KindNotFound
)

var kindNames = map[ErrorKind]string{
	KindFormat:               "FORMAT_ERROR",
	KindUnsupportedSuite:     "UNSUPPORTED_SUITE",
	KindDidMismatch:          "DID_MISMATCH",
	KindActionMismatch:       "ACTION_MISMATCH",
	KindUnknownKeyReference:  "UNKNOWN_KEY_REFERENCE",
	KindMissingSignature:     "MISSING_SIGNATURE",
	KindInvalidSignature:     "INVALID_SIGNATURE",
	KindKeyRotationIntegrity: "KEY_ROTATION_INTEGRITY",
	KindDidAlreadyDeleted:    "DID_ALREADY_DELETED",
	KindNotFound:             "NOT_FOUND",
}

// String returns the stable upper-case code of the kind
func (k ErrorKind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("ErrorKind(%d)", int(k))
}

// Error is a tagged rejection. Subject carries the field name, suite label or
// key id the rejection refers to; Expected and Actual are only set for action
// mismatches.
type Error struct {
	Kind     ErrorKind
	Subject  string
	Expected string
	Actual   string
}

func (e *Error) Error() string {
	switch e.Kind {
	case KindFormat:
		return "malformed " + e.Subject
	case KindUnsupportedSuite:
		return "unsupported crypto suite: " + e.Subject
	case KindDidMismatch:
		return "document id does not match target identifier"
	case KindActionMismatch:
		return fmt.Sprintf("instruction action mismatch: expected %s, got %s", e.Expected, e.Actual)
	case KindUnknownKeyReference:
		return "signature references unknown key: " + e.Subject
	case KindMissingSignature:
		return "missing signature for key: " + e.Subject
	case KindInvalidSignature:
		return "invalid signature for key: " + e.Subject
	case KindKeyRotationIntegrity:
		return "no signature from a retained key approves the change"
	case KindDidAlreadyDeleted:
		return "identifier has been deleted"
	case KindNotFound:
		return "identifier not found"
	}
	return e.Kind.String()
}

// Is matches any *Error of the same kind, so callers can write
// errors.Is(err, did.ErrMissingSignature) regardless of the subject.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind
}

// Sentinels for errors.Is
var (
	ErrFormat               = &Error{Kind: KindFormat}
	ErrUnsupportedSuite     = &Error{Kind: KindUnsupportedSuite}
	ErrDidMismatch          = &Error{Kind: KindDidMismatch}
	ErrActionMismatch       = &Error{Kind: KindActionMismatch}
	ErrUnknownKeyReference  = &Error{Kind: KindUnknownKeyReference}
	ErrMissingSignature     = &Error{Kind: KindMissingSignature}
	ErrInvalidSignature     = &Error{Kind: KindInvalidSignature}
	ErrKeyRotationIntegrity = &Error{Kind: KindKeyRotationIntegrity}
	ErrDidAlreadyDeleted    = &Error{Kind: KindDidAlreadyDeleted}
	ErrNotFound             = &Error{Kind: KindNotFound}
)

func NewFormatError(field string) *Error {
	return &Error{Kind: KindFormat, Subject: field}
}

func NewUnsupportedSuiteError(suite string) *Error {
	return &Error{Kind: KindUnsupportedSuite, Subject: suite}
}

func NewDidMismatchError() *Error {
	return &Error{Kind: KindDidMismatch}
}

func NewActionMismatchError(expected, actual string) *Error {
	return &Error{Kind: KindActionMismatch, Expected: expected, Actual: actual}
}

func NewUnknownKeyReferenceError(keyID string) *Error {
	return &Error{Kind: KindUnknownKeyReference, Subject: keyID}
}

func NewMissingSignatureError(keyID string) *Error {
	return &Error{Kind: KindMissingSignature, Subject: keyID}
}

func NewInvalidSignatureError(keyID string) *Error {
	return &Error{Kind: KindInvalidSignature, Subject: keyID}
}

func NewKeyRotationIntegrityError() *Error {
	return &Error{Kind: KindKeyRotationIntegrity}
}

func NewDidAlreadyDeletedError() *Error {
	return &Error{Kind: KindDidAlreadyDeleted}
}

func NewNotFoundError(id string) *Error {
	return &Error{Kind: KindNotFound, Subject: id}
}

// KindOf extracts the kind of a wrapped *Error
func KindOf(err error) (ErrorKind, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind, true
	}
	return 0, false
}
