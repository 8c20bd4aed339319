// SPDX-License-Identifier: MIT

package gsheet

import (
	"errors"
	"fmt"
)

var (
	// Sentinel errors for errors.Is checks at the boundary.

	// ErrConfiguration means the sheet ID or API key is missing; raised
	// before any network call.
	ErrConfiguration = errors.New("gsheet: missing configuration")
	// ErrFetch means the remote call failed or returned an unexpected
	// shape. Fatal to the ingestion run, never retried.
	ErrFetch = errors.New("gsheet: remote fetch failed")
	// ErrNotFound means a required remote lookup came back empty.
	ErrNotFound = errors.New("gsheet: not found")
)

// APIError wraps the sentinel errors with remote call context.
type APIError struct {
	Sentinel  error
	Operation string
	Status    int
	Body      string
	Err       error
}

func (e *APIError) Error() string {
	msg := fmt.Sprintf("gsheet: %s: %v", e.Operation, e.Sentinel)
	if e.Status > 0 {
		msg = fmt.Sprintf("%s (HTTP %d)", msg, e.Status)
	}
	if e.Body != "" {
		msg = fmt.Sprintf("%s: %s", msg, e.Body)
	}
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

func (e *APIError) Unwrap() error {
	return e.Sentinel
}
