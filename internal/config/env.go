// SPDX-License-Identifier: MIT

package config

import (
	"os"

	"schedsync/internal/log"
)

// Environment variable names consumed by the gsheet backend.
const (
	EnvSheetID = "SCHEDSYNC_SHEET_ID"
	EnvAPIKey  = "GOOGLE_API_KEY"
	EnvDataDir = "SCHEDSYNC_DATA"
)

// ParseString reads a string from an environment variable or returns the
// default value. The chosen source is logged for observability.
func ParseString(key, defaultValue string) string {
	logger := log.WithComponent("config")
	if value, exists := os.LookupEnv(key); exists && value != "" {
		logger.Debug().
			Str("key", key).
			Str("source", "environment").
			Msg("using environment variable")
		return value
	}
	logger.Debug().
		Str("key", key).
		Str("default", defaultValue).
		Str("source", "default").
		Msg("using default value")
	return defaultValue
}
