package storage

import "strings"

// IsIgnored reports whether the slash-separated relative path is excluded by
// any pattern. A pattern (trailing "/" ignored) matches when it equals the
// first path segment, is a directory prefix of the path, or equals the path.
// Partial segment names never match: "templates" does not hide
// "my-templates/x.md".
func IsIgnored(rel string, patterns []string) bool {
	first, _, _ := strings.Cut(rel, "/")
	for _, p := range patterns {
		clean := strings.TrimSuffix(p, "/")
		if first == clean || rel == clean || strings.HasPrefix(rel, clean+"/") {
			return true
		}
	}
	return false
}
