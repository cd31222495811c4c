package parser

import (
	"strings"
	"unicode"
)

// ExtractSection returns the part of body that belongs to the heading whose
// text equals heading exactly: the heading line itself plus every following
// line up to, but excluding, the next heading of the same or a higher level.
// The boolean is false when no such heading exists.
func ExtractSection(body, heading string) (string, bool) {
	var captured []string
	capturing := false
	captureLevel := 0

	for _, line := range strings.Split(body, "\n") {
		level, text, isHeading := parseHeading(line)

		if capturing {
			if isHeading && level <= captureLevel {
				break
			}
			captured = append(captured, line)
			continue
		}

		if isHeading && text == heading {
			capturing = true
			captureLevel = level
			captured = append(captured, line)
		}
	}

	if len(captured) == 0 {
		return "", false
	}
	return strings.TrimRightFunc(strings.Join(captured, "\n"), unicode.IsSpace), true
}
