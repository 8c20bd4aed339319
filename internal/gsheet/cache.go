// SPDX-License-Identifier: MIT

package gsheet

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/renameio/v2"
)

// writeRangeCache mirrors a fetched matrix into one JSON file per logical
// range name. The cache is advisory (a debugging artifact, never read back
// by the pipeline) and is overwritten on every successful fetch. The write
// is atomic so a concurrent reader never sees a half-written file.
func writeRangeCache(dir, rangeSpec string, matrix [][]string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create cache dir: %w", err)
	}

	data, err := json.Marshal(matrix)
	if err != nil {
		return fmt.Errorf("marshal range %s: %w", rangeSpec, err)
	}

	path := filepath.Join(dir, cacheFileName(rangeSpec))
	if err := renameio.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write range cache %s: %w", path, err)
	}
	return nil
}

// cacheFileName derives the cache file name from the logical range name.
// The colon of an "A3:K" spec is kept readable rather than escaped.
func cacheFileName(rangeSpec string) string {
	name := strings.ReplaceAll(rangeSpec, string(filepath.Separator), "-")
	return name + ".json"
}
