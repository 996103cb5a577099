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

// Package registry accepts DID envelopes on behalf of a ledger.
//
// A Service serializes work per identifier through a ledger.Locker, runs
// the validation engine against the currently recorded document, and hands
// accepted envelopes to a single-worker Dispatcher for submission. Accepted
// submissions are announced through an events.Publisher.
//
//	svc := registry.NewService(ledger.NewMemory())
//	defer svc.Close()
//	res, err := svc.Create(ctx, env)
package registry
