// SPDX-License-Identifier: MIT

package schedule

import (
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"schedsync/internal/metrics"
	"schedsync/internal/slug"
)

// Drop reasons attached to RowError and the rows_dropped_total metric.
const (
	DropReasonStage  = "stage_missing"
	DropReasonTime   = "malformed_time"
	DropReasonWindow = "empty_window"
)

// Builder turns raw session rows into Session records against the speaker
// and stage directories of one ingestion run. It is safe to discard after
// the run; nothing is shared across runs.
type Builder struct {
	layout   RowLayout
	day      time.Time
	speakers map[string]Speaker
	stages   map[string]Stage
	log      zerolog.Logger
}

// NewBuilder wires a row builder for one day tab. day is the event day at
// midnight in the event's location.
func NewBuilder(layout RowLayout, day time.Time, speakers map[string]Speaker, stages map[string]Stage, logger zerolog.Logger) *Builder {
	return &Builder{
		layout:   layout,
		day:      day,
		speakers: speakers,
		stages:   stages,
		log:      logger,
	}
}

// BuildRow transforms one source row. Rows whose title slugifies to empty
// are silently excluded (neither session nor error); rows with a missing
// stage or unparseable times are dropped with a RowError. A speaker
// reference that resolves to nothing only drops that slot, never the row.
func (b *Builder) BuildRow(idx int, row []string) RowResult {
	raw := b.layout.ParseRow(row)

	id := slug.Make(raw.Title)
	if id == "" {
		return RowResult{}
	}

	speakers := b.resolveRefs(idx, raw.SpeakerRefs)

	stage, ok := b.stages[slug.Make(MainStageName)]
	if !ok {
		b.log.Error().
			Str("event", "row.stage_missing").
			Int("row", idx).
			Str("title", raw.Title).
			Msg("no stage found for row")
		metrics.RecordRowDropped(DropReasonStage)
		return RowResult{Err: &RowError{Row: idx, Reason: DropReasonStage}}
	}

	start, end, err := Window(b.day, raw.Start, raw.Duration)
	if err != nil {
		b.log.Warn().
			Err(err).
			Str("event", "row.malformed_time").
			Int("row", idx).
			Str("title", raw.Title).
			Msg("dropping row with unparseable time window")
		metrics.RecordRowDropped(DropReasonTime)
		return RowResult{Err: &RowError{Row: idx, Reason: DropReasonTime, Err: err}}
	}

	// Sessions must satisfy End > Start; a zero or negative duration token
	// parses fine but cannot produce a real window.
	if end <= start {
		b.log.Warn().
			Str("event", "row.empty_window").
			Int("row", idx).
			Str("title", raw.Title).
			Str("start", raw.Start).
			Str("duration", raw.Duration).
			Msg("dropping row with empty or negative time window")
		metrics.RecordRowDropped(DropReasonWindow)
		return RowResult{Err: &RowError{
			Row:    idx,
			Reason: DropReasonWindow,
			Err:    fmt.Errorf("%w: window %s + %s is empty or negative", ErrMalformedRow, raw.Start, raw.Duration),
		}}
	}

	description := raw.Description
	if description == "" {
		description = DescriptionPlaceholder
	}

	var video *string
	if v := strings.TrimSpace(raw.Video); v != "" {
		video = &v
	}

	return RowResult{Session: &Session{
		ID:          id,
		Name:        strings.TrimSpace(raw.Title),
		Description: description,
		Start:       start,
		End:         end,
		Stage:       stage,
		Speakers:    speakers,
		Video:       video,
	}}
}

// resolveRefs joins speaker reference tokens against the run directory.
// Blank slots are skipped; unknown tokens are logged and dropped (lenient
// policy), keeping the row alive.
func (b *Builder) resolveRefs(idx int, refs []string) []Speaker {
	speakers := make([]Speaker, 0, len(refs))
	for _, ref := range refs {
		ref = strings.TrimSpace(ref)
		if ref == "" {
			continue
		}
		sp, ok := b.speakers[ref]
		if !ok {
			b.log.Warn().
				Str("event", "row.speaker_unresolved").
				Int("row", idx).
				Str("speaker", ref).
				Msg("no speaker found for reference, dropping slot")
			continue
		}
		speakers = append(speakers, sp)
	}
	return speakers
}

// BuildRows runs BuildRow over a fetched range in source order.
func (b *Builder) BuildRows(rows [][]string) []RowResult {
	results := make([]RowResult, 0, len(rows))
	for i, row := range rows {
		results = append(results, b.BuildRow(i, row))
	}
	return results
}

// DayFromTabName derives the event day from a schedule tab name of the form
// "<prefix> - <day> <month>", e.g. "Presentation Schedule - 15 July".
func DayFromTabName(tab, prefix string, year int, loc *time.Location) (time.Time, error) {
	token := strings.TrimSpace(strings.TrimPrefix(tab, prefix))
	token = strings.TrimSpace(strings.TrimPrefix(token, "-"))

	parsed, err := time.ParseInLocation("2 January", token, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("tab %q: unparseable day token %q: %w", tab, token, err)
	}
	return time.Date(year, parsed.Month(), parsed.Day(), 0, 0, 0, 0, loc), nil
}
