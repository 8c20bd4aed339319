// SPDX-License-Identifier: MIT

// Package source selects the schedule backend. Backends form a closed
// enumeration mapped at compile time to constructors of the common Source
// contract; there is no dynamic loading by config string beyond this table.
package source

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"schedsync/internal/config"
	"schedsync/internal/gsheet"
	"schedsync/internal/ratelimit"
	"schedsync/internal/schedule"
)

// Kind names one schedule backend.
type Kind string

const (
	// KindGSheet ingests from the remote spreadsheet API.
	KindGSheet Kind = "gsheet"
	// KindFS reads a pre-normalized schedule document from disk.
	KindFS Kind = "fs"
)

// Source lists the normalized sessions of one event.
type Source interface {
	Sessions(ctx context.Context) ([]schedule.Session, error)
}

// Factory builds a backend from its opaque config bag.
type Factory func(data config.Data, queue *ratelimit.Queue) (Source, error)

var registry = map[Kind]Factory{
	KindGSheet: func(data config.Data, queue *ratelimit.Queue) (Source, error) {
		return gsheet.NewService(data, queue)
	},
	KindFS: func(data config.Data, _ *ratelimit.Queue) (Source, error) {
		return newFS(data)
	},
}

// ErrUnknownKind marks a schedule type outside the registry.
var ErrUnknownKind = errors.New("source: unknown schedule backend")

// New builds the backend selected by the schedule config.
func New(sched config.Schedule, queue *ratelimit.Queue) (Source, error) {
	factory, ok := registry[Kind(sched.Type)]
	if !ok {
		return nil, fmt.Errorf("%w: %q (known: %v)", ErrUnknownKind, sched.Type, Kinds())
	}
	return factory(sched.Config, queue)
}

// Kinds lists the registered backend kinds in stable order.
func Kinds() []Kind {
	kinds := make([]Kind, 0, len(registry))
	for k := range registry {
		kinds = append(kinds, k)
	}
	sort.Slice(kinds, func(i, j int) bool { return kinds[i] < kinds[j] })
	return kinds
}

// SessionsForStage filters the backend's sessions down to one stage.
func SessionsForStage(ctx context.Context, src Source, stageID string) ([]schedule.Session, error) {
	sessions, err := src.Sessions(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]schedule.Session, 0, len(sessions))
	for _, s := range sessions {
		if s.Stage.ID == stageID {
			out = append(out, s)
		}
	}
	return out, nil
}

// ErrNoSession indicates a session ID the backend does not know.
var ErrNoSession = errors.New("source: no such session")

// SessionByID finds one session by its slug.
func SessionByID(ctx context.Context, src Source, id string) (*schedule.Session, error) {
	sessions, err := src.Sessions(ctx)
	if err != nil {
		return nil, err
	}
	for i := range sessions {
		if sessions[i].ID == id {
			return &sessions[i], nil
		}
	}
	return nil, fmt.Errorf("%w: %q", ErrNoSession, id)
}
