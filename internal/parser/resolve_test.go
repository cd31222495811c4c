package parser

import "testing"

var vaultNotes = []string{
	"index.md",
	"dora/index.md",
	"dora/architecture.md",
	"residue/index.md",
	"shared/utils.md",
}

func TestResolveWikiLink(t *testing.T) {
	cases := []struct {
		target string
		want   string
		ok     bool
	}{
		{"dora/index", "dora/index.md", true},
		{"dora/index.md", "dora/index.md", true},
		{"architecture", "dora/architecture.md", true},
		{"utils", "shared/utils.md", true},
		{"ghost", "", false},
		// Ambiguous bare name resolves to the first match in list order.
		{"index", "index.md", true},
		// Partial directory hint.
		{"x/residue/index", "", false},
	}
	for _, tc := range cases {
		got, ok := ResolveWikiLink(tc.target, vaultNotes)
		if got != tc.want || ok != tc.ok {
			t.Errorf("Resolve(%q) = (%q, %v), want (%q, %v)", tc.target, got, ok, tc.want, tc.ok)
		}
	}
}

func TestResolver_PartialHintDisambiguates(t *testing.T) {
	notes := []string{"a/b/page.md", "c/d/page.md"}
	r := NewResolver(notes)
	if got, ok := r.Resolve("d/page"); !ok || got != "c/d/page.md" {
		t.Errorf("Resolve(d/page) = (%q, %v)", got, ok)
	}
	if _, ok := r.Resolve("z/page"); ok {
		t.Error("hint matching no candidate must be unresolved")
	}
}

func TestResolver_AmbiguousFollowsListOrder(t *testing.T) {
	notes := []string{"b/note.md", "a/note.md"}
	if got, _ := ResolveWikiLink("note", notes); got != "b/note.md" {
		t.Errorf("got %q, want first in list order", got)
	}
}

func TestResolver_ResultIsAlwaysANote(t *testing.T) {
	r := NewResolver(vaultNotes)
	set := make(map[string]bool, len(vaultNotes))
	for _, n := range vaultNotes {
		set[n] = true
	}
	for _, target := range []string{"index", "Index", "dora", "dora/", "architecture.md", "shared/utils", "", "residue/index"} {
		if got, ok := r.Resolve(target); ok && !set[got] {
			t.Errorf("Resolve(%q) = %q, not a vault note", target, got)
		}
	}
}

func TestWithExt(t *testing.T) {
	if WithExt("a") != "a.md" || WithExt("a.md") != "a.md" {
		t.Error("WithExt did not normalise")
	}
}
