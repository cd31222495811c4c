package noteservice

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/starford/obi/internal/models"
)

const defaultRecentLimit = 10

// Map returns the folder tree with recursive note counts and every note's
// title, type and size.
func (s *Service) Map(_ context.Context) (*models.MapResult, error) {
	folders, err := s.store.Folders()
	if err != nil {
		return nil, err
	}
	notes, err := s.parseAll()
	if err != nil {
		return nil, err
	}

	counts := make(map[string]int, len(folders))
	for _, n := range notes {
		parts := strings.Split(n.Path, "/")
		for i := 1; i < len(parts); i++ {
			counts[strings.Join(parts[:i], "/")]++
		}
	}

	res := &models.MapResult{
		Vault:   s.vault,
		Folders: make([]models.FolderEntry, 0, len(folders)),
		Files:   make([]models.FileEntry, 0, len(notes)),
	}
	for _, f := range folders {
		res.Folders = append(res.Folders, models.FolderEntry{Path: f, FileCount: counts[f]})
	}
	for _, n := range notes {
		res.Files = append(res.Files, models.FileEntry{
			Path:      n.Path,
			Title:     n.Title(),
			Type:      n.Type(),
			WordCount: wordCount(n.Body),
			SizeBytes: len(n.Body),
		})
	}
	return res, nil
}

// List returns the notes below folder ("" or "." for the whole vault).
func (s *Service) List(_ context.Context, folder string) (*models.ListResult, error) {
	folder = strings.TrimSuffix(folder, "/")
	if folder == "" {
		folder = "."
	}

	paths, err := s.store.List()
	if err != nil {
		return nil, err
	}
	if folder != "." {
		filtered := paths[:0:0]
		for _, p := range paths {
			if strings.HasPrefix(p, folder+"/") {
				filtered = append(filtered, p)
			}
		}
		paths = filtered
	}

	notes, err := s.parseAllPaths(paths)
	if err != nil {
		return nil, err
	}

	res := &models.ListResult{
		Vault:   s.vault,
		Folder:  folder,
		Entries: make([]models.ListEntry, 0, len(notes)),
	}
	for _, n := range notes {
		res.Entries = append(res.Entries, models.ListEntry{
			Path:      n.Path,
			Title:     n.Title(),
			Type:      n.Type(),
			Tags:      n.Tags(),
			WordCount: wordCount(n.Body),
			SizeBytes: len(n.Body),
		})
	}
	return res, nil
}

// Query returns the notes whose frontmatter matches every filter.
func (s *Service) Query(_ context.Context, filters map[string]string) (*models.QueryResult, error) {
	notes, err := s.parseAll()
	if err != nil {
		return nil, err
	}
	if filters == nil {
		filters = map[string]string{}
	}
	res := &models.QueryResult{
		Vault:   s.vault,
		Filters: filters,
		Results: []models.QueryEntry{},
	}
	for _, n := range notes {
		if MatchesFilters(n.Frontmatter, filters) {
			res.Results = append(res.Results, models.QueryEntry{Path: n.Path, Frontmatter: n.Frontmatter})
		}
	}
	return res, nil
}

// MatchesFilters reports whether frontmatter satisfies all filters (AND).
// The "tag" key matches against the "tags" array; array fields match when
// any element does; other values are compared by their string form.
func MatchesFilters(frontmatter map[string]any, filters map[string]string) bool {
	for key, want := range filters {
		if key == "tag" {
			if !containsString(frontmatter["tags"], want) {
				return false
			}
			continue
		}
		value, ok := frontmatter[key]
		if !ok {
			return false
		}
		if arr, isArr := value.([]any); isArr {
			matched := false
			for _, v := range arr {
				if fmt.Sprint(v) == want {
					matched = true
					break
				}
			}
			if !matched {
				return false
			}
			continue
		}
		if fmt.Sprint(value) != want {
			return false
		}
	}
	return true
}

func containsString(v any, want string) bool {
	arr, ok := v.([]any)
	if !ok {
		return false
	}
	for _, item := range arr {
		if s, ok := item.(string); ok && s == want {
			return true
		}
	}
	return false
}

// Search finds lines containing term, case-insensitively, across the raw
// content of every note.
func (s *Service) Search(_ context.Context, term string) (*models.SearchResult, error) {
	paths, err := s.store.List()
	if err != nil {
		return nil, err
	}
	lower := strings.ToLower(term)
	res := &models.SearchResult{Vault: s.vault, Term: term, Matches: []models.SearchMatch{}}

	// Paths are sorted, so matches come out ordered by path then line.
	for _, p := range paths {
		data, err := s.store.Read(p)
		if err != nil {
			return nil, err
		}
		for i, line := range strings.Split(string(data), "\n") {
			if strings.Contains(strings.ToLower(line), lower) {
				res.Matches = append(res.Matches, models.SearchMatch{
					Path: p,
					Line: i + 1,
					Text: strings.TrimSpace(line),
				})
			}
		}
	}
	return res, nil
}

// Recent returns up to limit notes ordered by frontmatter updated_at,
// newest first; notes without it sort last. limit <= 0 means the default.
func (s *Service) Recent(_ context.Context, limit int) (*models.RecentResult, error) {
	if limit <= 0 {
		limit = defaultRecentLimit
	}
	notes, err := s.parseAll()
	if err != nil {
		return nil, err
	}

	entries := make([]models.RecentEntry, 0, len(notes))
	for _, n := range notes {
		entries = append(entries, models.RecentEntry{
			Path:      n.Path,
			Title:     n.Title(),
			UpdatedAt: stringPtr(n.Frontmatter["updated_at"]),
		})
	}
	sort.SliceStable(entries, func(i, j int) bool {
		a, b := entries[i].UpdatedAt, entries[j].UpdatedAt
		switch {
		case a == nil:
			return false
		case b == nil:
			return true
		default:
			return *a > *b
		}
	})
	if len(entries) > limit {
		entries = entries[:limit]
	}
	return &models.RecentResult{Vault: s.vault, Entries: entries}, nil
}

// Unread returns notes whose frontmatter has read: false.
func (s *Service) Unread(_ context.Context) (*models.UnreadResult, error) {
	notes, err := s.parseAll()
	if err != nil {
		return nil, err
	}
	res := &models.UnreadResult{Vault: s.vault, Entries: []models.QueryEntry{}}
	for _, n := range notes {
		if read, ok := n.Frontmatter["read"].(bool); ok && !read {
			res.Entries = append(res.Entries, models.QueryEntry{Path: n.Path, Frontmatter: n.Frontmatter})
		}
	}
	return res, nil
}

func stringPtr(v any) *string {
	if s, ok := v.(string); ok {
		return &s
	}
	return nil
}
