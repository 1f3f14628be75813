package codegen

import (
	"regexp"
	"strings"
)

// ansiEscape matches a single-byte escape or a CSI sequence
var ansiEscape = regexp.MustCompile(`\x1b(?:[@-Z\\-_]|\[[0-?]*[ -/]*[@-~])`)

// lineSpace is the ASCII whitespace set trimmed from each line, including
// the information separators 0x1C-0x1F.
const lineSpace = " \t\n\v\f\r\x1c\x1d\x1e\x1f"

// Normalize cleans raw provider output: non-ASCII characters are dropped,
// line endings become "\n", ANSI escapes are removed and every line is
// trimmed. Normalize(Normalize(x)) == Normalize(x).
func Normalize(raw string) string {
	if raw == "" {
		return ""
	}

	var sb strings.Builder
	sb.Grow(len(raw))
	for _, r := range raw {
		if r < 128 {
			sb.WriteRune(r)
		}
	}
	text := sb.String()

	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")

	// Removing one escape can expose another (ESC ESC A B)
	for {
		stripped := ansiEscape.ReplaceAllString(text, "")
		if stripped == text {
			break
		}
		text = stripped
	}

	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = strings.Trim(line, lineSpace)
	}

	return strings.Trim(strings.Join(lines, "\n"), lineSpace)
}
