// Package parser extracts frontmatter, headings, sections and wiki-links from
// Markdown notes and resolves wiki-link targets to vault paths.
//
// Only the syntax obi needs is recognised: a leading YAML block between ---
// fences, ATX headings and [[target]] / [[target|alias]] links. Everything
// else is opaque body text.
package parser

import "github.com/starford/obi/internal/models"

// Parse builds a ParsedNote from the raw bytes of the note at path.
// It never fails; malformed frontmatter degrades to an empty map.
func Parse(path string, data []byte) *models.ParsedNote {
	fm, body := ExtractFrontmatter(string(data))
	return &models.ParsedNote{
		Path:          path,
		Frontmatter:   fm,
		Body:          body,
		OutgoingLinks: ExtractWikiLinks(body),
		Headings:      ExtractHeadings(body),
	}
}
