package engine

import "strings"

// NormalizeLines splits raw OCR text into trimmed, non-empty lines with
// their original order preserved. This is the shared substrate for every
// strategy; empty input yields an empty slice, never an error.
func NormalizeLines(text string) []string {
	raw := strings.Split(text, "\n")
	lines := make([]string, 0, len(raw))
	for _, ln := range raw {
		ln = strings.TrimSpace(ln)
		if ln == "" {
			continue
		}
		lines = append(lines, ln)
	}
	return lines
}
