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

package ledger

import (
	"context"
	"errors"
	"time"

	"github.com/sage-x-project/sage-did-go/pkg/did"
	"github.com/sage-x-project/sage-did-go/pkg/envelope"
)

var (
	// ErrNotFound is returned when no document is recorded for an identifier
	ErrNotFound = errors.New("ledger: identifier not found")

	// ErrConflict is returned when a create targets an identifier that is already recorded
	ErrConflict = errors.New("ledger: identifier already recorded")
)

// Record is the current state of one identifier
type Record struct {
	ID            did.Identifier
	Document      []byte // exactly as submitted
	Status        did.Status
	TransactionID string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// Receipt describes an accepted submission
type Receipt struct {
	TransactionID string
	ID            did.Identifier
	Action        envelope.Action
	Status        did.Status
	RecordedAt    time.Time
}

// Ledger stores accepted envelopes. Submit is only called for envelopes the
// validation engine accepted; the action of the envelope's instruction
// decides whether a record is created or replaced.
type Ledger interface {
	// Lookup returns the current record; ErrNotFound when absent
	Lookup(ctx context.Context, id did.Identifier) (Record, error)

	// Submit records env under status. A create on a recorded identifier
	// fails with ErrConflict; an update or delete of an unknown identifier
	// fails with ErrNotFound.
	Submit(ctx context.Context, env *envelope.Envelope, status did.Status) (Receipt, error)
}

// Locker serializes work on one identifier across concurrent requests
type Locker interface {
	// Acquire blocks until the lock for id is held or ctx is done. The
	// returned release function must be called exactly once.
	Acquire(ctx context.Context, id did.Identifier) (release func(), err error)
}
