// SPDX-License-Identifier: MIT

package schedule

import (
	"errors"
	"fmt"
)

// ErrMalformedRow marks row-scoped parse failures. Rows failing with it are
// dropped from the run; it never aborts a batch.
var ErrMalformedRow = errors.New("schedule: malformed row")

// RowError records why one source row was dropped during normalization.
type RowError struct {
	Row    int    // zero-based index within the fetched range
	Reason string // short machine-friendly drop reason, used as metric label
	Err    error
}

func (e *RowError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("row %d dropped (%s): %v", e.Row, e.Reason, e.Err)
	}
	return fmt.Sprintf("row %d dropped (%s)", e.Row, e.Reason)
}

func (e *RowError) Unwrap() error {
	return e.Err
}

// RowResult is the outcome of transforming one source row: either a built
// session or the reason the row was dropped. Exactly one field is set,
// except for silently excluded rows (blank title) where both are nil.
type RowResult struct {
	Session *Session
	Err     *RowError
}

// Partition splits per-row results into the kept sessions, in input order,
// and the drop records.
func Partition(results []RowResult) ([]Session, []*RowError) {
	kept := make([]Session, 0, len(results))
	var dropped []*RowError
	for _, r := range results {
		switch {
		case r.Session != nil:
			kept = append(kept, *r.Session)
		case r.Err != nil:
			dropped = append(dropped, r.Err)
		}
	}
	return kept, dropped
}
