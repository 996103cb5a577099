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

// Package redislock implements ledger.Locker on Redis so that several
// registry instances serialize work on the same identifier.
package redislock

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/sage-x-project/sage-did-go/pkg/did"
)

const keyPrefix = "did:lock:"

// deletes the key only while it still holds our token
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// Options tune lock behaviour
type Options struct {
	// TTL bounds how long a crashed holder can block an identifier
	TTL time.Duration

	// RetryMin and RetryMax bound the wait between acquisition attempts
	RetryMin time.Duration
	RetryMax time.Duration
}

// DefaultOptions suits submissions that complete within a few seconds
var DefaultOptions = Options{
	TTL:      30 * time.Second,
	RetryMin: 10 * time.Millisecond,
	RetryMax: 250 * time.Millisecond,
}

// Locker is a Redis-backed ledger.Locker using SET NX PX
type Locker struct {
	client redis.UniversalClient
	opts   Options
}

// New creates a locker; zero option fields take DefaultOptions values
func New(client redis.UniversalClient, opts Options) *Locker {
	if opts.TTL <= 0 {
		opts.TTL = DefaultOptions.TTL
	}
	if opts.RetryMin <= 0 {
		opts.RetryMin = DefaultOptions.RetryMin
	}
	if opts.RetryMax < opts.RetryMin {
		opts.RetryMax = max(DefaultOptions.RetryMax, opts.RetryMin)
	}
	return &Locker{client: client, opts: opts}
}

// Connect initializes a Redis client from URL or host:port input
func Connect(_ context.Context, redisURL string) (*redis.Client, error) {
	if strings.HasPrefix(redisURL, "redis://") || strings.HasPrefix(redisURL, "rediss://") {
		opt, err := redis.ParseURL(redisURL)
		if err != nil {
			return nil, fmt.Errorf("parse redis url: %w", err)
		}
		return redis.NewClient(opt), nil
	}
	return redis.NewClient(&redis.Options{Addr: redisURL}), nil
}

// Acquire retries SET NX until it wins or ctx is done
func (l *Locker) Acquire(ctx context.Context, id did.Identifier) (func(), error) {
	key := lockKey(id)
	token := uuid.NewString()
	wait := l.opts.RetryMin

	for {
		ok, err := l.client.SetNX(ctx, key, token, l.opts.TTL).Result()
		if err != nil {
			return nil, fmt.Errorf("acquire lock %s: %w", id, err)
		}
		if ok {
			return l.releaser(key, token), nil
		}

		timer := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}
		wait = nextWait(wait, l.opts.RetryMax)
	}
}

func (l *Locker) releaser(key, token string) func() {
	var once sync.Once
	return func() {
		once.Do(func() { l.release(key, token) })
	}
}

func (l *Locker) release(key, token string) {
	// the request context may already be canceled; release regardless
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := releaseScript.Run(ctx, l.client, []string{key}, token).Err(); err != nil {
		slog.Default().WarnContext(ctx, "lock release failed",
			"module", "redislock",
			"layer", "adapter",
			"operation", "release",
			"outcome", "failure",
			"key", key,
			"error", err,
		)
	}
}

func lockKey(id did.Identifier) string {
	return keyPrefix + id.String()
}

func nextWait(current, limit time.Duration) time.Duration {
	next := current * 2
	if next > limit {
		return limit
	}
	return next
}
