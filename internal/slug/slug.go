// SPDX-License-Identifier: MIT

// Package slug derives canonical identifiers from free-text titles and names.
package slug

import (
	"strings"
	"unicode"
)

// Make converts free text into a lowercase, dash-separated identifier.
// Example: "Opening Keynote: Scaling L2s!" → "opening-keynote-scaling-l2s".
//
// An empty result means the input carried no identifier-worthy characters;
// callers treat that as "not a real session/stage", so unlike typical
// slugifiers there is no fallback placeholder.
func Make(text string) string {
	s := strings.ToLower(text)

	// Fold the accented characters that show up in speaker and talk names.
	replacer := strings.NewReplacer(
		"ä", "ae",
		"ö", "oe",
		"ü", "ue",
		"ß", "ss",
		"à", "a",
		"á", "a",
		"â", "a",
		"è", "e",
		"é", "e",
		"ê", "e",
		"ì", "i",
		"í", "i",
		"î", "i",
		"ò", "o",
		"ó", "o",
		"ô", "o",
		"ù", "u",
		"ú", "u",
		"û", "u",
		"ç", "c",
		"ñ", "n",
	)
	s = replacer.Replace(s)

	var b strings.Builder
	lastWasDash := false
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z' || unicode.IsDigit(r):
			b.WriteRune(r)
			lastWasDash = false
		case !lastWasDash:
			b.WriteRune('-')
			lastWasDash = true
		}
	}

	return strings.Trim(b.String(), "-")
}
