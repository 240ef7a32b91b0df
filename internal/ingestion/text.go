// Package ingestion loads resume text from files and links and normalizes it for evaluation.
package ingestion

import (
	"regexp"
	"strings"
)

var (
	innerSpace  = regexp.MustCompile(`[ \t\f\v\x{00A0}]+`)
	blankLines  = regexp.MustCompile(`\n{3,}`)
	bulletMarks = []string{"- ", "* ", "• ", "· ", "– "}
)

// CleanText normalizes line endings and whitespace while keeping the layout
// the skill extractor relies on: headings, bullets and section breaks.
func CleanText(content string) string {
	if content == "" {
		return ""
	}

	content = strings.ReplaceAll(content, "\r\n", "\n")
	content = strings.ReplaceAll(content, "\r", "\n")
	content = strings.ReplaceAll(content, "\u200b", "")

	lines := strings.Split(content, "\n")
	for i, line := range lines {
		lines[i] = cleanLine(line)
	}

	result := blankLines.ReplaceAllString(strings.Join(lines, "\n"), "\n\n")
	return strings.TrimSpace(result)
}

// cleanLine collapses inner runs of spaces and keeps leading indentation for bullets
func cleanLine(line string) string {
	line = strings.TrimRight(line, " \t\u00a0")
	trimmed := strings.TrimLeft(line, " \t\u00a0")
	if trimmed == "" {
		return ""
	}

	if strings.HasPrefix(trimmed, "#") {
		return innerSpace.ReplaceAllString(trimmed, " ")
	}

	body := innerSpace.ReplaceAllString(trimmed, " ")
	if isBulletLine(trimmed) {
		indent := len(line) - len(trimmed)
		return strings.Repeat(" ", indent) + body
	}
	return body
}

// isBulletLine checks if a line is a bullet list item
func isBulletLine(line string) bool {
	for _, mark := range bulletMarks {
		if strings.HasPrefix(line, mark) {
			return true
		}
	}
	return false
}
