// SPDX-License-Identifier: MIT

package source

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"schedsync/internal/config"
	"schedsync/internal/log"
	"schedsync/internal/metrics"
	"schedsync/internal/schedule"
)

// fsSource serves a pre-normalized schedule document from the local
// filesystem. Useful for archived events and offline development.
type fsSource struct {
	path string
}

// ErrFSPath indicates a missing "path" key in the fs backend config.
var ErrFSPath = errors.New("source: fs backend requires a config path")

func newFS(data config.Data) (Source, error) {
	path := data.String("path")
	if path == "" {
		return nil, ErrFSPath
	}
	return &fsSource{path: path}, nil
}

func (f *fsSource) Sessions(ctx context.Context) ([]schedule.Session, error) {
	logger := log.WithComponentFromContext(ctx, "source.fs")

	raw, err := os.ReadFile(f.path)
	if err != nil {
		return nil, fmt.Errorf("read schedule document %s: %w", f.path, err)
	}

	var all []schedule.Session
	if err := json.Unmarshal(raw, &all); err != nil {
		return nil, fmt.Errorf("parse schedule document %s: %w", f.path, err)
	}

	// Apply the same row-level leniency as the remote pipeline: records
	// violating the session invariants are dropped, not run-fatal.
	sessions := make([]schedule.Session, 0, len(all))
	for i, s := range all {
		if s.ID == "" || s.End <= s.Start {
			logger.Warn().
				Str("event", "fs.record_dropped").
				Int("record", i).
				Str("id", s.ID).
				Msg("dropping schedule record violating session invariants")
			metrics.RecordRowDropped("invalid_record")
			continue
		}
		sessions = append(sessions, s)
	}

	logger.Info().
		Str("event", "fs.loaded").
		Str("path", f.path).
		Int("sessions", len(sessions)).
		Msg("schedule document loaded")

	return sessions, nil
}
