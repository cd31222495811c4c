package parser

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/starford/obi/internal/models"
)

const maxHeadingLevel = 6

// ExtractHeadings returns the ATX headings of body in document order.
// Line numbers are 1-based and relative to body.
func ExtractHeadings(body string) []models.Heading {
	headings := []models.Heading{}
	for i, line := range strings.Split(body, "\n") {
		if level, text, ok := parseHeading(line); ok {
			headings = append(headings, models.Heading{Level: level, Text: text, Line: i + 1})
		}
	}
	return headings
}

// parseHeading recognises "#{1,6}<space>text". Hash runs without a following
// space, runs longer than six, and headings with no text are rejected.
func parseHeading(line string) (int, string, bool) {
	line = strings.TrimSuffix(line, "\r")

	level := 0
	for level < len(line) && line[level] == '#' {
		level++
	}
	if level == 0 || level > maxHeadingLevel {
		return 0, "", false
	}

	rest := line[level:]
	r, size := utf8.DecodeRuneInString(rest)
	if size == 0 || !unicode.IsSpace(r) {
		return 0, "", false
	}

	text := strings.TrimSpace(rest)
	if text == "" {
		return 0, "", false
	}
	return level, text, true
}
