// Package graph assembles the vault-wide wiki-link graph and answers
// outgoing, incoming and two-hop queries over it.
package graph

import (
	"fmt"
	"sort"

	"golang.org/x/sync/errgroup"

	"github.com/starford/obi/internal/models"
	"github.com/starford/obi/internal/parser"
	"github.com/starford/obi/internal/storage"
)

// Graph maps a note path to the sorted, deduplicated set of note paths its
// wiki-links resolve to. Unresolved links are absent. Every listed note has
// an entry, possibly empty.
type Graph map[string][]string

// ParseAll reads and parses every path concurrently, one goroutine per
// note. The result is index-aligned with paths. Any read failure fails the
// whole call; there is no partial result.
func ParseAll(store storage.Reader, paths []string) ([]*models.ParsedNote, error) {
	notes := make([]*models.ParsedNote, len(paths))

	var g errgroup.Group
	for i, p := range paths {
		g.Go(func() error {
			data, err := store.Read(p)
			if err != nil {
				return fmt.Errorf("graph: parse %s: %w", p, err)
			}
			notes[i] = parser.Parse(p, data)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return notes, nil
}

// Build parses every note in paths and resolves its outgoing links against
// paths. paths should be the vault's full sorted note list: its order breaks
// ties between notes sharing a file name.
func Build(store storage.Reader, paths []string) (Graph, error) {
	notes, err := ParseAll(store, paths)
	if err != nil {
		return nil, err
	}
	return FromNotes(notes, paths), nil
}

// FromNotes resolves the outgoing links of already parsed notes.
func FromNotes(notes []*models.ParsedNote, paths []string) Graph {
	resolver := parser.NewResolver(paths)
	g := make(Graph, len(notes))
	for _, n := range notes {
		seen := make(map[string]struct{}, len(n.OutgoingLinks))
		targets := []string{}
		for _, link := range n.OutgoingLinks {
			resolved, ok := resolver.Resolve(link)
			if !ok {
				continue
			}
			if _, dup := seen[resolved]; dup {
				continue
			}
			seen[resolved] = struct{}{}
			targets = append(targets, resolved)
		}
		sort.Strings(targets)
		g[n.Path] = targets
	}
	return g
}
