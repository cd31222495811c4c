package parser

import (
	"strings"

	"github.com/starford/obi/internal/models"
)

// Resolver maps wiki-link targets onto vault note paths the way Obsidian
// does: exact path first, then by file name.
type Resolver struct {
	paths  map[string]struct{}
	byName map[string][]string // file name -> paths, in note-list order
}

// NewResolver indexes notes, which should be the vault's sorted note paths.
// The order of notes decides which candidate wins an ambiguous file name.
func NewResolver(notes []string) *Resolver {
	r := &Resolver{
		paths:  make(map[string]struct{}, len(notes)),
		byName: make(map[string][]string, len(notes)),
	}
	for _, n := range notes {
		r.paths[n] = struct{}{}
		name := fileName(n)
		r.byName[name] = append(r.byName[name], n)
	}
	return r
}

// Resolve returns the note path target refers to, or false when it cannot
// be resolved. The result is always one of the indexed paths.
//
// When several notes share the target's file name, the first one whose path
// ends with the target wins. A bare file name matches every candidate, so an
// ambiguous [[index]] resolves to the first index.md in list order.
func (r *Resolver) Resolve(target string) (string, bool) {
	withExt := WithExt(target)
	if _, ok := r.paths[withExt]; ok {
		return withExt, true
	}

	matches := r.byName[fileName(withExt)]
	switch len(matches) {
	case 0:
		return "", false
	case 1:
		return matches[0], true
	}
	for _, m := range matches {
		if strings.HasSuffix(m, withExt) {
			return m, true
		}
	}
	return "", false
}

// ResolveWikiLink resolves a single target against notes.
func ResolveWikiLink(target string, notes []string) (string, bool) {
	return NewResolver(notes).Resolve(target)
}

// WithExt appends the note extension to target unless it is already there.
func WithExt(target string) string {
	if strings.HasSuffix(target, models.NoteExt) {
		return target
	}
	return target + models.NoteExt
}

func fileName(p string) string {
	return p[strings.LastIndexByte(p, '/')+1:]
}
