// SPDX-License-Identifier: MIT

package gsheet

import (
	"context"
	"fmt"
	"strings"
	"time"

	"schedsync/internal/config"
	"schedsync/internal/log"
	"schedsync/internal/ratelimit"
	"schedsync/internal/schedule"
)

// defaultTabPrefix selects the tabs that carry schedule rows; the day of
// each tab is encoded in its name suffix ("... - 15 July").
const defaultTabPrefix = "Presentation Schedule"

// Service assembles the normalized schedule from the remote spreadsheet.
// It is the gsheet implementation of the source.Source contract.
type Service struct {
	client       *Client
	layout       schedule.RowLayout
	tabPrefix    string
	year         int
	loc          *time.Location
	speakerRange string
	sessionRange string
}

// NewService reads the backend settings from the environment and the opaque
// config bag. Recognized bag keys: layout, year, timezone, tab_prefix,
// speaker_range, session_range; everything else is ignored.
func NewService(data config.Data, queue *ratelimit.Queue) (*Service, error) {
	cfg, err := ConfigFromEnv()
	if err != nil {
		return nil, err
	}
	return newService(cfg, data, queue)
}

// newService is separated for easier testing against a mock API.
func newService(cfg Config, data config.Data, queue *ratelimit.Queue) (*Service, error) {
	client, err := New(cfg, queue)
	if err != nil {
		return nil, err
	}

	layout, err := schedule.LayoutByName(data.String("layout"))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfiguration, err)
	}

	loc := time.UTC
	if tz := data.String("timezone"); tz != "" {
		loc, err = time.LoadLocation(tz)
		if err != nil {
			return nil, fmt.Errorf("%w: timezone %q: %v", ErrConfiguration, tz, err)
		}
	}

	s := &Service{
		client:       client,
		layout:       layout,
		tabPrefix:    data.String("tab_prefix"),
		year:         data.Int("year", time.Now().Year()),
		loc:          loc,
		speakerRange: data.String("speaker_range"),
		sessionRange: data.String("session_range"),
	}
	if s.tabPrefix == "" {
		s.tabPrefix = defaultTabPrefix
	}
	if s.speakerRange == "" {
		s.speakerRange = layout.SpeakerRange()
	}
	if s.sessionRange == "" {
		s.sessionRange = layout.SessionRange()
	}
	return s, nil
}

// Speakers builds the de-duplicated speaker directory across all schedule
// tabs. Identity is the exact raw name token, shared with the session rows.
func (s *Service) Speakers(ctx context.Context) ([]schedule.Speaker, error) {
	tabs, err := s.scheduleTabs(ctx)
	if err != nil {
		return nil, err
	}

	var matrix [][]string
	for _, tab := range tabs {
		rows, err := s.client.Values(ctx, tab, s.speakerRange)
		if err != nil {
			return nil, err
		}
		matrix = append(matrix, rows...)
	}
	return schedule.ResolveSpeakers(matrix), nil
}

// Stages returns the stage directory for the run.
func (s *Service) Stages(ctx context.Context) ([]schedule.Stage, error) {
	return schedule.ResolveStages(), nil
}

// Sessions runs the full ingestion: tabs, speaker and stage directories,
// then the per-row transform over every schedule tab, in source row order.
// Malformed rows are dropped; structural failures abort the run.
func (s *Service) Sessions(ctx context.Context) ([]schedule.Session, error) {
	logger := log.WithComponentFromContext(ctx, "gsheet")
	logger.Info().
		Str("event", "ingest.start").
		Str("layout", s.layout.Name()).
		Msg("starting schedule ingestion")

	tabs, err := s.scheduleTabs(ctx)
	if err != nil {
		return nil, err
	}

	speakers, err := s.Speakers(ctx)
	if err != nil {
		return nil, err
	}
	stages, err := s.Stages(ctx)
	if err != nil {
		return nil, err
	}

	speakerIdx := schedule.SpeakerIndex(speakers)
	stageIdx := schedule.StageIndex(stages)

	var sessions []schedule.Session
	droppedTotal := 0

	for _, tab := range tabs {
		day, err := schedule.DayFromTabName(tab, s.tabPrefix, s.year, s.loc)
		if err != nil {
			logger.Warn().
				Err(err).
				Str("event", "ingest.tab_skipped").
				Str("tab", tab).
				Msg("skipping tab without a parseable day")
			continue
		}

		rows, err := s.client.Values(ctx, tab, s.sessionRange)
		if err != nil {
			return nil, err
		}

		builder := schedule.NewBuilder(s.layout, day, speakerIdx, stageIdx, logger)
		kept, dropped := schedule.Partition(builder.BuildRows(rows))

		for _, d := range dropped {
			logger.Debug().
				Str("event", "ingest.row_dropped").
				Str("tab", tab).
				Int("row", d.Row).
				Str("reason", d.Reason).
				Msg("row dropped")
		}
		droppedTotal += len(dropped)
		sessions = append(sessions, kept...)
	}

	logger.Info().
		Str("event", "ingest.done").
		Int("sessions", len(sessions)).
		Int("speakers", len(speakers)).
		Int("tabs", len(tabs)).
		Int("rows_dropped", droppedTotal).
		Msg("schedule ingestion completed")

	return sessions, nil
}

// scheduleTabs lists the remote tabs and keeps the ones carrying schedule
// rows. Zero remote tabs is run-fatal; zero matching tabs just means an
// empty schedule.
func (s *Service) scheduleTabs(ctx context.Context) ([]string, error) {
	names, err := s.client.TabNames(ctx)
	if err != nil {
		return nil, err
	}

	var tabs []string
	for _, name := range names {
		if strings.Contains(name, s.tabPrefix) {
			tabs = append(tabs, name)
		}
	}
	return tabs, nil
}
