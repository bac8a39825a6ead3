package pagecrawler

import "strings"

// minLineTokens is the token count a line must exceed to be kept.
const minLineTokens = 3

// bannedLineSubstrings mark a line as site chrome regardless of length.
var bannedLineSubstrings = []string{"menu", "navigation", "skip to content"}

// FilterLines drops short lines and lines that look like navigation, then
// rejoins the survivors with newlines.
//
// A line is kept only if it has more than three whitespace-delimited tokens
// and does not contain "menu", "navigation" or "skip to content" in any case.
func FilterLines(text string) string {
	lines := strings.Split(text, "\n")
	kept := make([]string, 0, len(lines))
	for _, line := range lines {
		if keepLine(line) {
			kept = append(kept, line)
		}
	}
	return strings.Join(kept, "\n")
}

func keepLine(line string) bool {
	if len(strings.Fields(line)) <= minLineTokens {
		return false
	}
	lower := strings.ToLower(line)
	for _, banned := range bannedLineSubstrings {
		if strings.Contains(lower, banned) {
			return false
		}
	}
	return true
}

// NormalizeLines collapses runs of whitespace within each line to a single
// space, trims the line, and drops lines left empty.
func NormalizeLines(text string) string {
	lines := strings.Split(text, "\n")
	out := lines[:0]
	for _, line := range lines {
		if line = strings.Join(strings.Fields(line), " "); line != "" {
			out = append(out, line)
		}
	}
	return strings.Join(out, "\n")
}
