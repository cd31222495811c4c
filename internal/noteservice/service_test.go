package noteservice

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/starford/obi/internal/apperr"
	"github.com/starford/obi/internal/testutil"
)

var testNotes = map[string]string{
	"index.md": "---\ntitle: Home\ntype: hub\ntags: [start, hub]\nupdated_at: \"2024-03-01\"\n---\n\n# Home\n\nSee [[dora/index]] and [[ghost]].\n",
	"dora/index.md": "---\ntitle: Dora\ntype: tool\ntags: [ai]\nstatus: active\nread: false\nupdated_at: \"2024-05-01\"\n---\n" +
		"# Dora\n\n## Stack\n\n- Go\n\n### Sub-detail\n\nExtra.\n\n## Architecture\n\nSee [[architecture]].\n",
	"dora/architecture.md": "# Architecture\n\nShares [[utils]].\n",
	"shared/utils.md":      "---\nread: true\n---\nUtility HELPERS live here.\n",
	"templates/tool.md":    "[[index]]",
}

func testService(t *testing.T) *Service {
	t.Helper()
	_, store := testutil.TestVault(t, testNotes)
	return NewService("test", store, nil)
}

func TestRead(t *testing.T) {
	svc := testService(t)
	res, err := svc.Read(context.Background(), "dora/index", "")
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if res.Path != "dora/index.md" || res.Vault != "test" {
		t.Errorf("result = %+v", res)
	}
	if res.Frontmatter["title"] != "Dora" {
		t.Errorf("frontmatter = %v", res.Frontmatter)
	}
	if !reflect.DeepEqual(res.OutgoingLinks, []string{"architecture"}) {
		t.Errorf("outgoing = %v", res.OutgoingLinks)
	}
	// templates/ is not ignored by this store, so it links to index.md but
	// not to dora/index.md.
	if !reflect.DeepEqual(res.IncomingLinks, []string{"index.md"}) {
		t.Errorf("incoming = %v", res.IncomingLinks)
	}
}

func TestReadSection(t *testing.T) {
	svc := testService(t)
	res, err := svc.Read(context.Background(), "dora/index.md", "Stack")
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if res.Body != "## Stack\n\n- Go\n\n### Sub-detail\n\nExtra." {
		t.Errorf("body = %q", res.Body)
	}
}

func TestReadSectionNotFound(t *testing.T) {
	svc := testService(t)
	_, err := svc.Read(context.Background(), "dora/index", "Nope")
	var e *apperr.Error
	if !errors.As(err, &e) || e.Code != apperr.CodeSectionNotFound {
		t.Fatalf("err = %v, want SECTION_NOT_FOUND", err)
	}
	if e.Data["path"] != "dora/index.md" || e.Data["section"] != "Nope" {
		t.Errorf("data = %v", e.Data)
	}
}

func TestNoteNotFound(t *testing.T) {
	svc := testService(t)
	ctx := context.Background()
	if _, err := svc.Read(ctx, "missing", ""); !errors.Is(err, apperr.ErrNoteNotFound) {
		t.Errorf("Read err = %v", err)
	}
	if _, err := svc.TOC(ctx, "missing"); !errors.Is(err, apperr.ErrNoteNotFound) {
		t.Errorf("TOC err = %v", err)
	}
	if _, err := svc.Links(ctx, "missing"); !errors.Is(err, apperr.ErrNoteNotFound) {
		t.Errorf("Links err = %v", err)
	}
}

func TestTOC(t *testing.T) {
	svc := testService(t)
	res, err := svc.TOC(context.Background(), "dora/index")
	if err != nil {
		t.Fatal(err)
	}
	if len(res.Headings) != 4 || res.Headings[1].Text != "Stack" || res.Headings[1].Line != 3 {
		t.Errorf("headings = %+v", res.Headings)
	}
}

func TestLinks(t *testing.T) {
	svc := testService(t)
	res, err := svc.Links(context.Background(), "dora/index")
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(res.Outgoing, []string{"dora/architecture.md"}) {
		t.Errorf("outgoing = %v", res.Outgoing)
	}
	if !reflect.DeepEqual(res.Incoming, []string{"index.md"}) {
		t.Errorf("incoming = %v", res.Incoming)
	}
	// shared/utils.md via the outgoing neighbour; templates/tool.md links
	// to the incoming neighbour and is not a two-hop connection.
	if !reflect.DeepEqual(res.TwoHop, []string{"shared/utils.md"}) {
		t.Errorf("two-hop = %v", res.TwoHop)
	}
}

func TestSection(t *testing.T) {
	svc := testService(t)
	got, err := svc.Section(context.Background(), "dora/index", "Architecture")
	if err != nil {
		t.Fatal(err)
	}
	if got != "## Architecture\n\nSee [[architecture]]." {
		t.Errorf("section = %q", got)
	}
}

func TestMap(t *testing.T) {
	svc := testService(t)
	res, err := svc.Map(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	counts := map[string]int{}
	for _, f := range res.Folders {
		counts[f.Path] = f.FileCount
	}
	want := map[string]int{"dora": 2, "shared": 1, "templates": 1}
	if !reflect.DeepEqual(counts, want) {
		t.Errorf("folder counts = %v, want %v", counts, want)
	}
	if len(res.Files) != 5 {
		t.Fatalf("files = %d", len(res.Files))
	}
	first := res.Files[0]
	if first.Path != "dora/architecture.md" || first.Title != nil || first.WordCount != 4 {
		t.Errorf("first file = %+v", first)
	}
}

func TestList(t *testing.T) {
	svc := testService(t)
	res, err := svc.List(context.Background(), "dora/")
	if err != nil {
		t.Fatal(err)
	}
	if res.Folder != "dora" || len(res.Entries) != 2 {
		t.Fatalf("result = %+v", res)
	}
	e := res.Entries[1]
	if e.Path != "dora/index.md" || *e.Title != "Dora" || *e.Type != "tool" || !reflect.DeepEqual(e.Tags, []string{"ai"}) {
		t.Errorf("entry = %+v", e)
	}

	all, err := svc.List(context.Background(), "")
	if err != nil {
		t.Fatal(err)
	}
	if all.Folder != "." || len(all.Entries) != 5 {
		t.Errorf("whole vault list = %+v", all)
	}
}

func TestQuery(t *testing.T) {
	svc := testService(t)
	res, err := svc.Query(context.Background(), map[string]string{"type": "tool", "tag": "ai"})
	if err != nil {
		t.Fatal(err)
	}
	if len(res.Results) != 1 || res.Results[0].Path != "dora/index.md" {
		t.Errorf("results = %+v", res.Results)
	}
}

func TestMatchesFilters(t *testing.T) {
	fm := map[string]any{
		"type":    "tool",
		"status":  "active",
		"tags":    []any{"ai", "devtools"},
		"aliases": []any{"foo", "bar"},
		"read":    false,
		"count":   42,
	}
	cases := []struct {
		filters map[string]string
		want    bool
	}{
		{map[string]string{"type": "tool"}, true},
		{map[string]string{"type": "app"}, false},
		{map[string]string{"tag": "ai"}, true},
		{map[string]string{"tag": "billing"}, false},
		{map[string]string{"type": "tool", "tag": "ai"}, true},
		{map[string]string{"type": "app", "tag": "ai"}, false},
		{map[string]string{"aliases": "foo"}, true},
		{map[string]string{"aliases": "baz"}, false},
		{map[string]string{"read": "false"}, true},
		{map[string]string{"count": "42"}, true},
		{map[string]string{"missing": "x"}, false},
		{map[string]string{}, true},
	}
	for _, tc := range cases {
		if got := MatchesFilters(fm, tc.filters); got != tc.want {
			t.Errorf("MatchesFilters(%v) = %v, want %v", tc.filters, got, tc.want)
		}
	}
	if MatchesFilters(map[string]any{"type": "tool"}, map[string]string{"tag": "ai"}) {
		t.Error("tag filter without tags array must not match")
	}
}

func TestSearch(t *testing.T) {
	svc := testService(t)
	res, err := svc.Search(context.Background(), "helpers")
	if err != nil {
		t.Fatal(err)
	}
	if len(res.Matches) != 1 {
		t.Fatalf("matches = %+v", res.Matches)
	}
	m := res.Matches[0]
	if m.Path != "shared/utils.md" || m.Line != 4 || m.Text != "Utility HELPERS live here." {
		t.Errorf("match = %+v", m)
	}
}

func TestRecent(t *testing.T) {
	svc := testService(t)
	res, err := svc.Recent(context.Background(), 3)
	if err != nil {
		t.Fatal(err)
	}
	var paths []string
	for _, e := range res.Entries {
		paths = append(paths, e.Path)
	}
	want := []string{"dora/index.md", "index.md", "dora/architecture.md"}
	if !reflect.DeepEqual(paths, want) {
		t.Errorf("recent = %v, want %v", paths, want)
	}
}

func TestUnread(t *testing.T) {
	svc := testService(t)
	res, err := svc.Unread(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if len(res.Entries) != 1 || res.Entries[0].Path != "dora/index.md" {
		t.Errorf("unread = %+v", res.Entries)
	}
}

func TestVaults(t *testing.T) {
	root := testutil.TestVaults(t, map[string]map[string]string{
		"work": {
			"a.md":                     "a",
			"drafts/b.md":              "b",
			"tpl/t.md":                 "t",
			".obsidian/templates.json": `{"folder": "tpl"}`,
		},
		"home": {"x.md": "x"},
	})
	res, err := Vaults(context.Background(), root, "work", map[string][]string{"work": {"drafts"}})
	if err != nil {
		t.Fatal(err)
	}
	if res.DefaultVault == nil || *res.DefaultVault != "work" {
		t.Errorf("default = %v", res.DefaultVault)
	}
	counts := map[string]int{}
	for _, v := range res.Vaults {
		counts[v.Name] = v.NoteCount
	}
	if !reflect.DeepEqual(counts, map[string]int{"home": 1, "work": 1}) {
		t.Errorf("counts = %v", counts)
	}
}
