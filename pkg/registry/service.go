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

package registry

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/sage-x-project/sage-did-go/pkg/did"
	"github.com/sage-x-project/sage-did-go/pkg/envelope"
	"github.com/sage-x-project/sage-did-go/pkg/events"
	"github.com/sage-x-project/sage-did-go/pkg/ledger"
	"github.com/sage-x-project/sage-did-go/pkg/validation"
)

// Result describes an accepted request
type Result struct {
	DID           string
	TransactionID string
	Action        envelope.Action
	Status        did.Status
}

// Service validates envelopes and records the accepted ones
type Service struct {
	ledger     ledger.Ledger
	locker     ledger.Locker
	engine     *validation.Engine
	parser     *envelope.Parser
	dispatcher *Dispatcher
	publisher  events.Publisher
	logger     *slog.Logger
	now        func() time.Time
}

// Option configures a Service
type Option func(*Service)

// WithLocker replaces the in-process identifier locker
func WithLocker(l ledger.Locker) Option { return func(s *Service) { s.locker = l } }

// WithEngine replaces the default validation engine
func WithEngine(e *validation.Engine) Option { return func(s *Service) { s.engine = e } }

// WithParser sets the parser used for stored documents
func WithParser(p *envelope.Parser) Option { return func(s *Service) { s.parser = p } }

// WithDispatcher replaces the submission dispatcher
func WithDispatcher(d *Dispatcher) Option { return func(s *Service) { s.dispatcher = d } }

// WithPublisher sets the event publisher
func WithPublisher(p events.Publisher) Option { return func(s *Service) { s.publisher = p } }

// WithLogger sets the logger
func WithLogger(l *slog.Logger) Option { return func(s *Service) { s.logger = l } }

// NewService creates a registry service over l
func NewService(l ledger.Ledger, opts ...Option) *Service {
	s := &Service{
		ledger: l,
		now:    func() time.Time { return time.Now().UTC() },
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.locker == nil {
		s.locker = ledger.NewMemoryLocker()
	}
	if s.engine == nil {
		s.engine = validation.NewEngine(nil)
	}
	if s.parser == nil {
		s.parser = envelope.DefaultParser()
	}
	if s.dispatcher == nil {
		s.dispatcher = NewDispatcher(64)
	}
	if s.logger == nil {
		s.logger = slog.Default()
	}
	if s.publisher == nil {
		s.publisher = events.NewLoggingPublisher(s.logger)
	}
	return s
}

// Close drains pending submissions
func (s *Service) Close() {
	s.dispatcher.Close()
}

// Create records a new identifier. An identifier that is already recorded
// yields ledger.ErrConflict, or a DidAlreadyDeleted error once deleted.
func (s *Service) Create(ctx context.Context, env *envelope.Envelope) (Result, error) {
	id := env.TargetID()
	release, err := s.locker.Acquire(ctx, id)
	if err != nil {
		return Result{}, fmt.Errorf("lock %s: %w", id, err)
	}
	defer release()

	rec, err := s.ledger.Lookup(ctx, id)
	switch {
	case err == nil && rec.Status == did.StatusDeleted:
		return Result{}, did.NewDidAlreadyDeletedError()
	case err == nil:
		return Result{}, ledger.ErrConflict
	case !errors.Is(err, ledger.ErrNotFound):
		return Result{}, fmt.Errorf("lookup %s: %w", id, err)
	}

	if outcome := s.engine.ValidateCreation(env); !outcome.Accepted() {
		s.logRejection(ctx, "create", id, outcome)
		return Result{}, outcome.Err()
	}

	return s.submit(ctx, env, did.StatusValid)
}

// Update replaces the document of a recorded identifier
func (s *Service) Update(ctx context.Context, env *envelope.Envelope) (Result, error) {
	return s.modify(ctx, env, envelope.ActionUpdate, did.StatusValid)
}

// Delete marks a recorded identifier as deleted
func (s *Service) Delete(ctx context.Context, env *envelope.Envelope) (Result, error) {
	return s.modify(ctx, env, envelope.ActionDelete, did.StatusDeleted)
}

func (s *Service) modify(ctx context.Context, env *envelope.Envelope, action envelope.Action, status did.Status) (Result, error) {
	id := env.TargetID()
	release, err := s.locker.Acquire(ctx, id)
	if err != nil {
		return Result{}, fmt.Errorf("lock %s: %w", id, err)
	}
	defer release()

	rec, err := s.ledger.Lookup(ctx, id)
	if errors.Is(err, ledger.ErrNotFound) {
		return Result{}, did.NewNotFoundError(id.String())
	}
	if err != nil {
		return Result{}, fmt.Errorf("lookup %s: %w", id, err)
	}

	var current *envelope.Document
	if rec.Status != did.StatusDeleted {
		current, err = s.parser.ParseDocument(rec.Document)
		if err != nil {
			return Result{}, fmt.Errorf("stored document of %s is unreadable: %v", id, err)
		}
	}

	if outcome := s.engine.ValidateModification(env, current, rec.Status, action); !outcome.Accepted() {
		s.logRejection(ctx, action.Wire(), id, outcome)
		return Result{}, outcome.Err()
	}

	return s.submit(ctx, env, status)
}

func (s *Service) submit(ctx context.Context, env *envelope.Envelope, status did.Status) (Result, error) {
	task := func(ctx context.Context) (ledger.Receipt, error) {
		return s.ledger.Submit(ctx, env, status)
	}

	// the lock is held until the submission lands, whatever happens to ctx
	r := <-s.dispatcher.Dispatch(ctx, task)
	if r.Err != nil {
		return Result{}, r.Err
	}
	res := Result{
		DID:           r.Receipt.ID.String(),
		TransactionID: r.Receipt.TransactionID,
		Action:        r.Receipt.Action,
		Status:        r.Receipt.Status,
	}

	s.logger.InfoContext(ctx, "submission recorded",
		"module", "registry",
		"operation", res.Action.Wire(),
		"outcome", "success",
		"did", res.DID,
		"transaction_id", res.TransactionID,
	)
	s.publish(ctx, res)
	return res, nil
}

func (s *Service) publish(ctx context.Context, res Result) {
	payload, err := events.Payload{
		DID:           res.DID,
		Action:        res.Action.Wire(),
		Status:        res.Status.String(),
		TransactionID: res.TransactionID,
		OccurredAt:    s.now(),
	}.Encode()
	if err == nil {
		err = s.publisher.Publish(ctx, events.TypeFor(res.Action.Wire()), payload, res.DID)
	}
	if err != nil {
		s.logger.WarnContext(ctx, "event publication failed",
			"module", "registry",
			"operation", "publish",
			"outcome", "failure",
			"did", res.DID,
			"error", err,
		)
	}
}

// Fetch returns the current document exactly as it was submitted
func (s *Service) Fetch(ctx context.Context, id did.Identifier) ([]byte, error) {
	rec, err := s.ledger.Lookup(ctx, id)
	if errors.Is(err, ledger.ErrNotFound) {
		return nil, did.NewNotFoundError(id.String())
	}
	if err != nil {
		return nil, fmt.Errorf("lookup %s: %w", id, err)
	}
	if rec.Status == did.StatusDeleted {
		return nil, did.NewDidAlreadyDeletedError()
	}
	return rec.Document, nil
}

func (s *Service) logRejection(ctx context.Context, operation string, id did.Identifier, outcome validation.Outcome) {
	kind, _ := outcome.Kind()
	s.logger.InfoContext(ctx, "envelope rejected",
		"module", "registry",
		"operation", operation,
		"outcome", "rejected",
		"did", id.String(),
		"reason", kind.String(),
	)
}
