package parser

import (
	"fmt"
	"strings"
	"unicode"

	"gopkg.in/yaml.v3"
)

const fence = "---"

// ExtractFrontmatter separates the leading YAML block (between --- fences)
// from the Markdown body. The returned map is never nil.
//
// Malformed input never fails: a missing closing fence, invalid YAML or a
// block that is not a mapping all yield an empty map and the full content as
// body.
func ExtractFrontmatter(content string) (map[string]any, string) {
	empty := map[string]any{}
	if !strings.HasPrefix(content, fence) {
		return empty, content
	}

	end := strings.Index(content[len(fence):], "\n"+fence)
	if end < 0 {
		return empty, content
	}
	end += len(fence)

	// The block starts on the line after the opening fence.
	start := strings.IndexByte(content[len(fence):], '\n') + len(fence) + 1
	block := ""
	if start <= end {
		block = content[start:end]
	}
	body := strings.TrimLeftFunc(content[end+1+len(fence):], unicode.IsSpace)

	var decoded any
	if err := yaml.Unmarshal([]byte(block), &decoded); err != nil {
		return empty, content
	}

	switch v := decoded.(type) {
	case nil:
		return empty, body
	case map[string]any, map[any]any:
		return normalizeValue(v).(map[string]any), body
	default:
		return empty, content
	}
}

// normalizeValue converts every mapping below v to map[string]any, so
// frontmatter with non-string keys (e.g. "1: a") stays JSON-encodable.
func normalizeValue(v any) any {
	switch t := v.(type) {
	case map[string]any:
		for k, val := range t {
			t[k] = normalizeValue(val)
		}
		return t
	case map[any]any:
		m := make(map[string]any, len(t))
		for k, val := range t {
			m[fmt.Sprint(k)] = normalizeValue(val)
		}
		return m
	case []any:
		for i, val := range t {
			t[i] = normalizeValue(val)
		}
		return t
	default:
		return v
	}
}
