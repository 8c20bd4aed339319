// SPDX-License-Identifier: MIT

package gsheet

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"schedsync/internal/config"
	"schedsync/internal/ratelimit"
)

// row builds a 2023-layout session row: time, five speaker slots, title,
// coordinator, duration, video.
func row(start, talk, duration string, speakers ...string) []any {
	r := []any{start, "", "", "", "", "", talk, "", duration, ""}
	for i, s := range speakers {
		if i < 5 {
			r[1+i] = s
		}
	}
	return r
}

func testService(t *testing.T, m *mockSheet, data config.Data) *Service {
	t.Helper()
	srv := m.server()
	t.Cleanup(srv.Close)

	svc, err := newService(Config{
		SheetID:  "sheet-1",
		APIKey:   "test-key",
		BaseURL:  srv.URL,
		CacheDir: t.TempDir(),
	}, data, ratelimit.NewQueue(0))
	require.NoError(t, err)
	return svc
}

func TestSessions_EndToEnd(t *testing.T) {
	const tab = "Presentation Schedule - 15 July"
	m := &mockSheet{
		TabNames: []string{"Notes", tab},
		Ranges: map[string][][]any{
			tab + "!B3:F": {{"Alice", "Bob"}},
			tab + "!A3:K": {
				row("09:45", "Opening Keynote", "00:30", "Alice", "Bob"),
				row("10:15", "", "00:30", "Alice"), // blank title: excluded
			},
		},
	}
	svc := testService(t, m, config.Data{"year": int64(2023)})

	sessions, err := svc.Sessions(context.Background())
	require.NoError(t, err)
	require.Len(t, sessions, 1, "only the well-formed row survives")

	s := sessions[0]
	assert.Equal(t, "opening-keynote", s.ID)
	assert.Equal(t, "Opening Keynote", s.Name)
	assert.Equal(t, "main-stage", s.Stage.ID)
	assert.Equal(t, int64(1800), s.End-s.Start)

	wantStart := time.Date(2023, time.July, 15, 9, 45, 0, 0, time.UTC).Unix()
	assert.Equal(t, wantStart, s.Start)

	require.Len(t, s.Speakers, 2)
	assert.Equal(t, "Alice", s.Speakers[0].ID)
	assert.Equal(t, "Bob", s.Speakers[1].ID)
}

func TestSessions_UnresolvedSpeakerDropsSlotOnly(t *testing.T) {
	const tab = "Presentation Schedule - 15 July"
	m := &mockSheet{
		TabNames: []string{tab},
		Ranges: map[string][][]any{
			tab + "!B3:F": {{"Alice"}},
			tab + "!A3:K": {
				row("09:00", "Panel", "01:00", "Alice", "Ghost"),
			},
		},
	}
	svc := testService(t, m, config.Data{"year": int64(2023)})

	sessions, err := svc.Sessions(context.Background())
	require.NoError(t, err)
	require.Len(t, sessions, 1, "unresolved reference must not drop the row")

	require.Len(t, sessions[0].Speakers, 1)
	assert.Equal(t, "Alice", sessions[0].Speakers[0].ID)
}

func TestSessions_NoMatchingTabsYieldsEmptySchedule(t *testing.T) {
	m := &mockSheet{TabNames: []string{"Notes", "Budget"}}
	svc := testService(t, m, nil)

	sessions, err := svc.Sessions(context.Background())
	require.NoError(t, err)
	assert.Empty(t, sessions)
}

func TestSessions_ZeroTabsIsRunFatal(t *testing.T) {
	m := &mockSheet{}
	svc := testService(t, m, nil)

	_, err := svc.Sessions(context.Background())
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSessions_RemoteFailureAbortsRun(t *testing.T) {
	m := &mockSheet{Status: 500}
	svc := testService(t, m, nil)

	_, err := svc.Sessions(context.Background())
	assert.ErrorIs(t, err, ErrFetch)
}

func TestSessions_UnparseableTabDaySkipsTab(t *testing.T) {
	const badTab = "Presentation Schedule - Sometime"
	const goodTab = "Presentation Schedule - 16 July"
	m := &mockSheet{
		TabNames: []string{badTab, goodTab},
		Ranges: map[string][][]any{
			badTab + "!B3:F":  {},
			goodTab + "!B3:F": {},
			goodTab + "!A3:K": {
				row("11:00", "Found Talk", "00:45"),
			},
		},
	}
	svc := testService(t, m, config.Data{"year": int64(2023)})

	sessions, err := svc.Sessions(context.Background())
	require.NoError(t, err)
	require.Len(t, sessions, 1)
	assert.Equal(t, "found-talk", sessions[0].ID)
}

func TestSpeakers_DedupedAcrossTabs(t *testing.T) {
	m := &mockSheet{
		TabNames: []string{
			"Presentation Schedule - 15 July",
			"Presentation Schedule - 16 July",
		},
		Tabs: map[string][][]any{
			"Presentation Schedule - 15 July": {{"Alice", "Bob"}},
			"Presentation Schedule - 16 July": {{"Bob", "Carol"}},
		},
	}
	svc := testService(t, m, nil)

	speakers, err := svc.Speakers(context.Background())
	require.NoError(t, err)

	ids := make([]string, 0, len(speakers))
	for _, s := range speakers {
		ids = append(ids, s.ID)
	}
	assert.Equal(t, []string{"Alice", "Bob", "Carol"}, ids)
}

func TestStages_SingleSyntheticStage(t *testing.T) {
	m := &mockSheet{TabNames: []string{"x"}}
	svc := testService(t, m, nil)

	stages, err := svc.Stages(context.Background())
	require.NoError(t, err)
	require.Len(t, stages, 1)
	assert.Equal(t, "main-stage", stages[0].ID)
}

func TestNewService_BadLayout(t *testing.T) {
	srv := (&mockSheet{}).server()
	t.Cleanup(srv.Close)

	_, err := newService(Config{SheetID: "s", APIKey: "k", BaseURL: srv.URL},
		config.Data{"layout": "1999"}, ratelimit.NewQueue(0))
	assert.ErrorIs(t, err, ErrConfiguration)
}

func TestNewService_BadTimezone(t *testing.T) {
	srv := (&mockSheet{}).server()
	t.Cleanup(srv.Close)

	_, err := newService(Config{SheetID: "s", APIKey: "k", BaseURL: srv.URL},
		config.Data{"timezone": "Mars/Olympus"}, ratelimit.NewQueue(0))
	assert.ErrorIs(t, err, ErrConfiguration)
}

func TestNewService_RangeOverrides(t *testing.T) {
	srv := (&mockSheet{}).server()
	t.Cleanup(srv.Close)

	svc, err := newService(Config{SheetID: "s", APIKey: "k", BaseURL: srv.URL},
		config.Data{"speaker_range": "C3:D", "session_range": "A3:Z"}, ratelimit.NewQueue(0))
	require.NoError(t, err)
	assert.Equal(t, "C3:D", svc.speakerRange)
	assert.Equal(t, "A3:Z", svc.sessionRange)
}
