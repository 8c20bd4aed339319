// SPDX-License-Identifier: MIT

package schedule

import "schedsync/internal/slug"

// MainStageName is the display name of the single synthetic stage.
const MainStageName = "Main stage"

// mainStageStreamID is the placeholder playback descriptor for the main
// stage. TODO: replace with the stream ID from the streaming backend once
// stages move into the sheet.
const mainStageStreamID = "0e577125-8b01-45bd-b058-c6f2731f73f9"

// ResolveStages returns the stage directory for the run. The current sheets
// carry no stage column, so exactly one synthetic main stage exists; this is
// the extension point for future multi-stage sheets.
func ResolveStages() []Stage {
	return []Stage{
		{
			ID:     slug.Make(MainStageName),
			Name:   MainStageName,
			Stream: []Stream{{ID: mainStageStreamID}},
		},
	}
}

// StageIndex keys stages by slug for the per-row lookup.
func StageIndex(stages []Stage) map[string]Stage {
	idx := make(map[string]Stage, len(stages))
	for _, s := range stages {
		idx[s.ID] = s
	}
	return idx
}
