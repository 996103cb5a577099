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
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sage-x-project/sage-did-go/pkg/did"
	"github.com/sage-x-project/sage-did-go/pkg/envelope"
)

// Memory is an in-process Ledger for tests and single-node deployments
type Memory struct {
	mu      sync.RWMutex
	records map[did.Identifier]Record
	now     func() time.Time
}

// NewMemory creates an empty in-memory ledger
func NewMemory() *Memory {
	return &Memory{
		records: make(map[did.Identifier]Record),
		now:     func() time.Time { return time.Now().UTC() },
	}
}

// Lookup returns a copy of the current record
func (m *Memory) Lookup(ctx context.Context, id did.Identifier) (Record, error) {
	if err := ctx.Err(); err != nil {
		return Record{}, err
	}

	m.mu.RLock()
	rec, ok := m.records[id]
	m.mu.RUnlock()
	if !ok {
		return Record{}, ErrNotFound
	}

	rec.Document = append([]byte(nil), rec.Document...)
	return rec, nil
}

// Submit records the envelope
func (m *Memory) Submit(ctx context.Context, env *envelope.Envelope, status did.Status) (Receipt, error) {
	if err := ctx.Err(); err != nil {
		return Receipt{}, err
	}

	id := env.TargetID()
	action := env.Instruction().Action
	now := m.now()

	m.mu.Lock()
	defer m.mu.Unlock()

	prior, exists := m.records[id]
	switch {
	case action == envelope.ActionCreate && exists:
		return Receipt{}, ErrConflict
	case action != envelope.ActionCreate && !exists:
		return Receipt{}, ErrNotFound
	}

	rec := Record{
		ID:            id,
		Document:      env.RawDocument(),
		Status:        status,
		TransactionID: uuid.NewString(),
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if exists {
		rec.CreatedAt = prior.CreatedAt
	}
	m.records[id] = rec

	return Receipt{
		TransactionID: rec.TransactionID,
		ID:            id,
		Action:        action,
		Status:        status,
		RecordedAt:    now,
	}, nil
}

// Len returns the number of recorded identifiers
func (m *Memory) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.records)
}
