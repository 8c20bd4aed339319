// SPDX-License-Identifier: MIT

package schedule

import "fmt"

// RawSession is the layout-independent view of one session row, before any
// time, speaker or stage resolution.
type RawSession struct {
	Title       string
	Start       string   // time-of-day "HH:MM"
	Duration    string   // "HH:MM"
	SpeakerRefs []string // raw name tokens, blanks included, at most 5 slots
	Description string
	Video       string
}

// RowLayout assigns positional meaning to the columns of one historical
// sheet format. New formats add a layout here; the time/speaker/stage
// resolution logic never changes with them.
type RowLayout interface {
	// Name identifies the layout in config and logs.
	Name() string
	// SpeakerRange is the default cell range holding speaker names.
	SpeakerRange() string
	// SessionRange is the default cell range holding session rows.
	SessionRange() string
	// ParseRow maps one raw row onto RawSession. Missing trailing columns
	// read as empty; validation happens in the builder.
	ParseRow(row []string) RawSession
}

// col reads a cell tolerating short rows, since the remote API trims
// trailing empty cells from each row.
func col(row []string, i int) string {
	if i < 0 || i >= len(row) {
		return ""
	}
	return row[i]
}

// layout2023 is the current format: time, five speaker columns, title, an
// unused coordinator column, duration and an optional video reference.
type layout2023 struct{}

func (layout2023) Name() string         { return "2023" }
func (layout2023) SpeakerRange() string { return "B3:F" }
func (layout2023) SessionRange() string { return "A3:K" }

func (layout2023) ParseRow(row []string) RawSession {
	return RawSession{
		Title:    col(row, 6),
		Start:    col(row, 0),
		Duration: col(row, 8),
		SpeakerRefs: []string{
			col(row, 1), col(row, 2), col(row, 3), col(row, 4), col(row, 5),
		},
		Video: col(row, 9),
	}
}

// layout2022 carried a description column and only three speaker slots.
type layout2022 struct{}

func (layout2022) Name() string         { return "2022" }
func (layout2022) SpeakerRange() string { return "E3:G" }
func (layout2022) SessionRange() string { return "A3:H" }

func (layout2022) ParseRow(row []string) RawSession {
	return RawSession{
		Title:       col(row, 2),
		Start:       col(row, 0),
		Duration:    col(row, 1),
		SpeakerRefs: []string{col(row, 4), col(row, 5), col(row, 6)},
		Description: col(row, 3),
		Video:       col(row, 7),
	}
}

// layout2021 is the original single-speaker format.
type layout2021 struct{}

func (layout2021) Name() string         { return "2021" }
func (layout2021) SpeakerRange() string { return "D3:D" }
func (layout2021) SessionRange() string { return "A3:E" }

func (layout2021) ParseRow(row []string) RawSession {
	return RawSession{
		Title:       col(row, 0),
		Start:       col(row, 1),
		Duration:    col(row, 2),
		SpeakerRefs: []string{col(row, 3)},
		Video:       col(row, 4),
	}
}

var layouts = map[string]RowLayout{
	"2021": layout2021{},
	"2022": layout2022{},
	"2023": layout2023{},
}

// DefaultLayoutName selects the current sheet format.
const DefaultLayoutName = "2023"

// LayoutByName returns the layout registered under name; the empty name
// selects the default layout.
func LayoutByName(name string) (RowLayout, error) {
	if name == "" {
		name = DefaultLayoutName
	}
	l, ok := layouts[name]
	if !ok {
		return nil, fmt.Errorf("unknown row layout %q", name)
	}
	return l, nil
}
