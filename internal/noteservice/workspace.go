package noteservice

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"os"
	"path"
	"sort"
	"strings"

	"github.com/starford/obi/internal/models"
)

const obsidianDir = ".obsidian"

// readObsidianJSON decodes a file from the vault's .obsidian folder. ok is
// false when it is missing or not valid JSON.
func (s *Service) readObsidianJSON(name string, v any) (bool, error) {
	data, err := s.store.Read(path.Join(obsidianDir, name))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return false, nil
		}
		return false, err
	}
	if err := json.Unmarshal(data, v); err != nil {
		s.logger.Debug("obsidian settings ignored", slog.String("file", name), slog.String("error", err.Error()))
		return false, nil
	}
	return true, nil
}

// Schema returns the declared property types and the types and tags used
// across all notes.
func (s *Service) Schema(_ context.Context) (*models.SchemaResult, error) {
	var typesJSON struct {
		Types map[string]any `json:"types"`
	}
	if _, err := s.readObsidianJSON("types.json", &typesJSON); err != nil {
		return nil, err
	}

	res := &models.SchemaResult{
		Vault:      s.vault,
		Properties: make([]models.PropertyDef, 0, len(typesJSON.Types)),
	}
	for name, typ := range typesJSON.Types {
		if t, ok := typ.(string); ok {
			res.Properties = append(res.Properties, models.PropertyDef{Name: name, Type: t})
		}
	}
	sort.Slice(res.Properties, func(i, j int) bool {
		return res.Properties[i].Name < res.Properties[j].Name
	})

	notes, err := s.parseAll()
	if err != nil {
		return nil, err
	}
	types := map[string]struct{}{}
	tags := map[string]struct{}{}
	for _, n := range notes {
		if t := n.Type(); t != nil && *t != "" {
			types[*t] = struct{}{}
		}
		for _, tag := range n.Tags() {
			if tag != "" {
				tags[tag] = struct{}{}
			}
		}
	}
	res.TypesInUse = sortedKeys(types)
	res.TagsInUse = sortedKeys(tags)
	return res, nil
}

func sortedKeys(set map[string]struct{}) []string {
	out := make([]string, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// workspaceNode is a split, tab group or leaf of Obsidian's workspace layout.
type workspaceNode struct {
	ID    string `json:"id"`
	Type  string `json:"type"`
	State struct {
		Type  string `json:"type"`
		State struct {
			File  string  `json:"file"`
			Query *string `json:"query"`
		} `json:"state"`
	} `json:"state"`
	Children []*workspaceNode `json:"children"`
}

type workspaceLeaf struct {
	id   string
	file string
}

func (n *workspaceNode) leaves(out []workspaceLeaf) []workspaceLeaf {
	if n == nil {
		return out
	}
	if n.Type == "leaf" && n.State.State.File != "" {
		out = append(out, workspaceLeaf{id: n.ID, file: n.State.State.File})
	}
	for _, c := range n.Children {
		out = c.leaves(out)
	}
	return out
}

// search returns the query of the first search leaf that has one.
func (n *workspaceNode) search() *string {
	if n == nil {
		return nil
	}
	if n.Type == "leaf" && n.State.Type == "search" {
		return n.State.State.Query
	}
	for _, c := range n.Children {
		if q := c.search(); q != nil {
			return q
		}
	}
	return nil
}

// Context returns the workspace state Obsidian last saved: the active file,
// open tabs, recent notes and the sidebar search query.
func (s *Service) Context(_ context.Context) (*models.ContextResult, error) {
	res := &models.ContextResult{
		Vault:       s.vault,
		RecentFiles: []string{},
		OpenTabs:    []string{},
	}

	var ws struct {
		Main          *workspaceNode `json:"main"`
		Left          *workspaceNode `json:"left"`
		Right         *workspaceNode `json:"right"`
		Active        string         `json:"active"`
		LastOpenFiles []string       `json:"lastOpenFiles"`
	}
	ok, err := s.readObsidianJSON("workspace.json", &ws)
	if err != nil || !ok {
		return res, err
	}

	for _, leaf := range ws.Main.leaves(nil) {
		res.OpenTabs = append(res.OpenTabs, leaf.file)
		if res.ActiveFile == nil && ws.Active != "" && leaf.id == ws.Active {
			res.ActiveFile = &leaf.file
		}
	}
	for _, f := range ws.LastOpenFiles {
		if strings.HasSuffix(f, models.NoteExt) {
			res.RecentFiles = append(res.RecentFiles, f)
		}
	}
	res.LastSearch = ws.Left.search()
	if res.LastSearch == nil {
		res.LastSearch = ws.Right.search()
	}
	return res, nil
}
