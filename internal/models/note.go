// Package models defines the domain types for obi.
package models

// NoteExt is the file extension every vault note carries.
const NoteExt = ".md"

// Heading is an ATX heading found in a note body.
type Heading struct {
	Level int    `json:"level" yaml:"level"`
	Text  string `json:"text" yaml:"text"`
	Line  int    `json:"line" yaml:"line"` // 1-based, relative to the body
}

// ParsedNote represents a parsed Markdown file in the vault.
type ParsedNote struct {
	Path          string         `json:"path" yaml:"path"`
	Frontmatter   map[string]any `json:"frontmatter" yaml:"frontmatter"`
	Body          string         `json:"body" yaml:"body"`
	OutgoingLinks []string       `json:"outgoing_links" yaml:"outgoing_links"` // raw targets, first-occurrence order
	Headings      []Heading      `json:"headings" yaml:"headings"`
}

// Title returns the frontmatter "title" string, or nil when absent.
func (n *ParsedNote) Title() *string {
	return n.stringField("title")
}

// Type returns the frontmatter "type" string, or nil when absent.
func (n *ParsedNote) Type() *string {
	return n.stringField("type")
}

// Tags returns the string members of the frontmatter "tags" array.
func (n *ParsedNote) Tags() []string {
	out := []string{}
	raw, ok := n.Frontmatter["tags"].([]any)
	if !ok {
		return out
	}
	for _, item := range raw {
		if s, ok := item.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

func (n *ParsedNote) stringField(key string) *string {
	if s, ok := n.Frontmatter[key].(string); ok {
		return &s
	}
	return nil
}

// Links holds the link neighbourhood of a single note.
type Links struct {
	Path     string   `json:"path" yaml:"path"`
	Outgoing []string `json:"outgoing" yaml:"outgoing"`
	Incoming []string `json:"incoming" yaml:"incoming"`
	TwoHop   []string `json:"two_hop" yaml:"two_hop"`
}
