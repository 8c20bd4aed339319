// SPDX-License-Identifier: MIT

package schedule

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ParseClock splits an "HH:MM" time-of-day or duration string into its hour
// and minute parts. Non-numeric parts are a malformed-row condition.
func ParseClock(s string) (hours, minutes int, err error) {
	parts := strings.SplitN(strings.TrimSpace(s), ":", 2)
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("%w: clock value %q", ErrMalformedRow, s)
	}
	hours, err = strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return 0, 0, fmt.Errorf("%w: clock hours in %q", ErrMalformedRow, s)
	}
	minutes, err = strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return 0, 0, fmt.Errorf("%w: clock minutes in %q", ErrMalformedRow, s)
	}
	return hours, minutes, nil
}

// AddClock adds a duration to a start time-of-day and formats the result.
// Minute overflow carries into hours; hours are NOT wrapped at the day
// boundary, so "23:40" + "01:00" yields "24:40". Sessions are assumed never
// to cross midnight in wall-clock display; the absolute instants from Window
// stay correct either way. Keep this in sync with TestAddClock_NoDayWrap
// before changing the policy.
func AddClock(start, duration string) (string, error) {
	sh, sm, err := ParseClock(start)
	if err != nil {
		return "", err
	}
	dh, dm, err := ParseClock(duration)
	if err != nil {
		return "", err
	}

	m := sm + dm
	h := sh + dh + m/60
	m %= 60

	return fmt.Sprintf("%02d:%02d", h, m), nil
}

// Window computes the absolute start and end instants of a session from the
// event day, the start time-of-day and the duration. Both are unix seconds.
// The end instant is derived by literal hour/minute addition on the start
// instant, so windows that cross midnight land on the next day correctly.
func Window(day time.Time, start, duration string) (int64, int64, error) {
	sh, sm, err := ParseClock(start)
	if err != nil {
		return 0, 0, err
	}
	dh, dm, err := ParseClock(duration)
	if err != nil {
		return 0, 0, err
	}

	startAt := time.Date(day.Year(), day.Month(), day.Day(), sh, sm, 0, 0, day.Location())
	endAt := startAt.Add(time.Duration(dh)*time.Hour + time.Duration(dm)*time.Minute)

	return startAt.Unix(), endAt.Unix(), nil
}
