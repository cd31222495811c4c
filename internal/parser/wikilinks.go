package parser

import "strings"

// ExtractWikiLinks returns deduplicated wiki-link targets from body in
// first-occurrence order. Aliases ([[Target|Alias]]) are dropped and targets
// are trimmed; blank targets are skipped.
func ExtractWikiLinks(body string) []string {
	seen := make(map[string]struct{})
	out := []string{}

	for i := 0; i < len(body); {
		raw, next, ok := scanWikiLink(body, i)
		if !ok {
			i++
			continue
		}
		i = next

		target := strings.TrimSpace(raw)
		if target == "" {
			continue
		}
		if _, dup := seen[target]; dup {
			continue
		}
		seen[target] = struct{}{}
		out = append(out, target)
	}
	return out
}

// scanWikiLink tries to read "[[target]]" or "[[target|alias]]" starting at
// s[i]. Target and alias must be non-empty; the target may not contain ']' or
// '|', the alias may not contain ']'. It returns the raw target and the index
// just past the closing brackets.
func scanWikiLink(s string, i int) (string, int, bool) {
	if !strings.HasPrefix(s[i:], "[[") {
		return "", 0, false
	}

	start := i + 2
	j := start
	for j < len(s) && s[j] != ']' && s[j] != '|' {
		j++
	}
	if j == start || j == len(s) {
		return "", 0, false
	}
	target := s[start:j]

	if s[j] == '|' {
		aliasStart := j + 1
		j = aliasStart
		for j < len(s) && s[j] != ']' {
			j++
		}
		if j == aliasStart {
			return "", 0, false
		}
	}

	if !strings.HasPrefix(s[j:], "]]") {
		return "", 0, false
	}
	return target, j + 2, true
}
