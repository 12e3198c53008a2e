package sentiment

import (
	"strings"
	"unicode/utf8"
)

// Lines splits lyrics into the lines worth scoring. Line-break tags are
// dropped, and so are blank or one-character lines and annotations such
// as "[Chorus]".
func Lines(text string) []string {
	text = strings.ReplaceAll(text, "<br/>", "")
	text = strings.ReplaceAll(text, "\r\n", "\n")

	var lines []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if utf8.RuneCountInString(line) < 2 || strings.HasPrefix(line, "[") {
			continue
		}
		lines = append(lines, line)
	}
	return lines
}
