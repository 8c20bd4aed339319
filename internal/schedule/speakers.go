// SPDX-License-Identifier: MIT

package schedule

import "strings"

// ResolveSpeakers flattens a raw speaker cell matrix into the de-duplicated
// speaker directory. Blank cells are dropped, duplicates collapse onto the
// first occurrence, and output order follows first appearance in the input.
// Speaker IDs keep the exact raw token because session rows join on it.
func ResolveSpeakers(matrix [][]string) []Speaker {
	seen := make(map[string]struct{})
	var speakers []Speaker

	for _, row := range matrix {
		for _, cell := range row {
			name := strings.TrimSpace(cell)
			if name == "" {
				continue
			}
			if _, ok := seen[name]; ok {
				continue
			}
			seen[name] = struct{}{}
			speakers = append(speakers, Speaker{ID: name, Name: name})
		}
	}

	return speakers
}

// SpeakerIndex keys speakers by ID for the per-row join.
func SpeakerIndex(speakers []Speaker) map[string]Speaker {
	idx := make(map[string]Speaker, len(speakers))
	for _, s := range speakers {
		idx[s.ID] = s
	}
	return idx
}
