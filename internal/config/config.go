// SPDX-License-Identifier: MIT

// Package config loads the event configuration and environment settings.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/pelletier/go-toml/v2"
)

// Data is the opaque, backend-specific configuration bag. The ingestion core
// passes it through to the active backend unchanged; only backend-declared
// keys are ever read from it.
type Data map[string]any

// String returns the string value for key, or "" when absent or not a string.
func (d Data) String(key string) string {
	if v, ok := d[key].(string); ok {
		return v
	}
	return ""
}

// Int returns the integer value for key, or def when absent or unparseable.
// TOML decodes integers as int64; string values are parsed for convenience.
func (d Data) Int(key string, def int) int {
	switch v := d[key].(type) {
	case int64:
		return int(v)
	case int:
		return v
	case string:
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return def
}

// Schedule selects and configures one schedule backend.
type Schedule struct {
	Version int    `toml:"version" json:"version"`
	Type    string `toml:"type" json:"type"`
	Config  Data   `toml:"config" json:"config"`
}

// Event is the top-level event configuration document.
type Event struct {
	Name     string   `toml:"name" json:"name"`
	Schedule Schedule `toml:"schedule" json:"schedule"`
}

// ErrNoSchedule indicates an event config without a schedule backend.
var ErrNoSchedule = errors.New("config: event has no schedule backend configured")

// LoadEvent reads and decodes the event configuration file at path.
func LoadEvent(path string) (*Event, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read event config %s: %w", path, err)
	}

	var ev Event
	if err := toml.Unmarshal(raw, &ev); err != nil {
		return nil, fmt.Errorf("parse event config %s: %w", path, err)
	}
	if ev.Schedule.Type == "" {
		return nil, ErrNoSchedule
	}
	return &ev, nil
}
