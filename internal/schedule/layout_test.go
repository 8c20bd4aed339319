// SPDX-License-Identifier: MIT

package schedule

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLayoutByName(t *testing.T) {
	for _, name := range []string{"2021", "2022", "2023"} {
		l, err := LayoutByName(name)
		require.NoError(t, err)
		assert.Equal(t, name, l.Name())
	}

	l, err := LayoutByName("")
	require.NoError(t, err)
	assert.Equal(t, DefaultLayoutName, l.Name())

	_, err = LayoutByName("2019")
	assert.Error(t, err)
}

func TestLayout2023_ParseRow(t *testing.T) {
	l, err := LayoutByName("2023")
	require.NoError(t, err)

	row := []string{"10:00", "Alice", "Bob", "", "", "", "Opening Keynote", "EM1", "00:30", "https://example.org/v/1"}
	raw := l.ParseRow(row)

	assert.Equal(t, "Opening Keynote", raw.Title)
	assert.Equal(t, "10:00", raw.Start)
	assert.Equal(t, "00:30", raw.Duration)
	assert.Equal(t, []string{"Alice", "Bob", "", "", ""}, raw.SpeakerRefs)
	assert.Equal(t, "https://example.org/v/1", raw.Video)
	assert.Empty(t, raw.Description, "2023 sheets carry no description column")
}

func TestLayout2022_ParseRow(t *testing.T) {
	l, err := LayoutByName("2022")
	require.NoError(t, err)

	row := []string{"14:15", "01:00", "Rollup Panel", "Deep dive", "Carol", "Dan", "", "vid-7"}
	raw := l.ParseRow(row)

	assert.Equal(t, "Rollup Panel", raw.Title)
	assert.Equal(t, "14:15", raw.Start)
	assert.Equal(t, "01:00", raw.Duration)
	assert.Equal(t, []string{"Carol", "Dan", ""}, raw.SpeakerRefs)
	assert.Equal(t, "Deep dive", raw.Description)
	assert.Equal(t, "vid-7", raw.Video)
}

func TestLayout2021_ParseRow(t *testing.T) {
	l, err := LayoutByName("2021")
	require.NoError(t, err)

	row := []string{"Closing Words", "18:00", "00:15", "Erin"}
	raw := l.ParseRow(row)

	assert.Equal(t, "Closing Words", raw.Title)
	assert.Equal(t, "18:00", raw.Start)
	assert.Equal(t, "00:15", raw.Duration)
	assert.Equal(t, []string{"Erin"}, raw.SpeakerRefs)
	assert.Empty(t, raw.Video, "missing trailing columns read as empty")
}

func TestParseRow_ShortRow(t *testing.T) {
	// The remote API trims trailing empty cells; a bare time cell must not
	// panic any layout.
	for _, name := range []string{"2021", "2022", "2023"} {
		l, err := LayoutByName(name)
		require.NoError(t, err)
		assert.NotPanics(t, func() { l.ParseRow([]string{"10:00"}) }, "layout %s", name)
		assert.NotPanics(t, func() { l.ParseRow(nil) }, "layout %s", name)
	}
}
