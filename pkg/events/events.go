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

// Package events publishes notifications about accepted DID submissions.
// Delivery is best effort: the registry logs publication failures and never
// fails a request because of them.
package events

import (
	"context"
	"encoding/json"
	"time"
)

// Event types
const (
	TypeCreated = "did.created"
	TypeUpdated = "did.updated"
	TypeDeleted = "did.deleted"
)

// Publisher delivers one event. key groups events of the same identifier.
type Publisher interface {
	Publish(ctx context.Context, eventType string, payload []byte, key string) error
}

// Payload is the JSON body of every event
type Payload struct {
	DID           string    `json:"did"`
	Action        string    `json:"action"`
	Status        string    `json:"status"`
	TransactionID string    `json:"transactionId"`
	OccurredAt    time.Time `json:"occurredAt"`
}

// Encode marshals the payload
func (p Payload) Encode() ([]byte, error) {
	return json.Marshal(p)
}

// TypeFor maps an instruction action to its event type
func TypeFor(action string) string {
	switch action {
	case "create":
		return TypeCreated
	case "delete":
		return TypeDeleted
	default:
		return TypeUpdated
	}
}
