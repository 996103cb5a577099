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
	"sync"

	"github.com/sage-x-project/sage-did-go/pkg/ledger"
)

// ErrDispatcherClosed is returned for tasks dispatched after Close
var ErrDispatcherClosed = errors.New("registry: dispatcher closed")

// Task is one ledger submission
type Task func(ctx context.Context) (ledger.Receipt, error)

// TaskResult is delivered once a task has run
type TaskResult struct {
	Receipt ledger.Receipt
	Err     error
}

type job struct {
	ctx    context.Context
	task   Task
	result chan TaskResult
}

// Dispatcher runs ledger submissions one at a time on a single worker
// goroutine, in the order they were dispatched
type Dispatcher struct {
	mu     sync.RWMutex
	closed bool
	jobs   chan job
	done   chan struct{}
}

// NewDispatcher starts the worker. queue is the number of tasks that may
// wait before Dispatch blocks.
func NewDispatcher(queue int) *Dispatcher {
	if queue < 0 {
		queue = 0
	}
	d := &Dispatcher{
		jobs: make(chan job, queue),
		done: make(chan struct{}),
	}
	go d.run()
	return d
}

func (d *Dispatcher) run() {
	defer close(d.done)
	for j := range d.jobs {
		receipt, err := j.task(j.ctx)
		j.result <- TaskResult{Receipt: receipt, Err: err}
	}
}

// Dispatch queues task and returns a channel that receives exactly one
// TaskResult. Once queued, the task runs to completion even if ctx is canceled;
// cancellation only aborts waiting for a queue slot.
func (d *Dispatcher) Dispatch(ctx context.Context, task Task) <-chan TaskResult {
	result := make(chan TaskResult, 1)

	d.mu.RLock()
	defer d.mu.RUnlock()
	if d.closed {
		result <- TaskResult{Err: ErrDispatcherClosed}
		return result
	}

	select {
	case d.jobs <- job{ctx: context.WithoutCancel(ctx), task: task, result: result}:
	case <-ctx.Done():
		result <- TaskResult{Err: ctx.Err()}
	}
	return result
}

// Close stops accepting tasks and waits for queued ones to finish
func (d *Dispatcher) Close() {
	d.mu.Lock()
	if !d.closed {
		d.closed = true
		close(d.jobs)
	}
	d.mu.Unlock()
	<-d.done
}
