// SPDX-License-Identifier: MIT

// Package schedule holds the normalized schedule model and the row
// transforms that produce it from raw spreadsheet matrices.
package schedule

// Stream is a playback descriptor attached to a stage.
type Stream struct {
	ID string `json:"id"`
}

// Stage is a physical or virtual venue sessions run on. ID is a slug and
// unique within one ingestion run.
type Stage struct {
	ID     string   `json:"id"`
	Name   string   `json:"name"`
	Stream []Stream `json:"stream"`
}

// Speaker is one presenter. ID is the raw name token exactly as it appears
// in the source sheet; session rows reference speakers by that token, so it
// acts as the join key and is deliberately not slugified.
type Speaker struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Session is one scheduled talk. Start and End are unix seconds and always
// satisfy End > Start; ID is the slug of the title and is never empty.
// Video serializes as null, not a missing key, when no recording exists.
type Session struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Start       int64     `json:"start"`
	End         int64     `json:"end"`
	Stage       Stage     `json:"stage"`
	Speakers    []Speaker `json:"speakers"`
	Video       *string   `json:"video"`
}

// DescriptionPlaceholder fills Session.Description when the source sheet
// carries no description column or an empty cell.
const DescriptionPlaceholder = "Placeholder..."
