package graph

import (
	"errors"
	"os"
	"reflect"
	"testing"

	"github.com/starford/obi/internal/testutil"
)

func TestOutgoingIncoming(t *testing.T) {
	g := Graph{
		"a.md": {"c.md", "b.md"},
		"b.md": {"a.md"},
		"c.md": {},
		"d.md": {"a.md"},
	}
	if got := g.Outgoing("a.md"); !reflect.DeepEqual(got, []string{"b.md", "c.md"}) {
		t.Errorf("outgoing = %v", got)
	}
	if got := g.Incoming("a.md"); !reflect.DeepEqual(got, []string{"b.md", "d.md"}) {
		t.Errorf("incoming = %v", got)
	}
	if got := g.Outgoing("missing.md"); got == nil || len(got) != 0 {
		t.Errorf("outgoing of unknown note = %#v, want empty", got)
	}
}

func TestIncomingExcludesSelfLink(t *testing.T) {
	g := Graph{"a.md": {"a.md"}}
	if got := g.Incoming("a.md"); len(got) != 0 {
		t.Errorf("incoming = %v, want empty", got)
	}
}

func TestTwoHop(t *testing.T) {
	// p -> n, n -> x, m -> n, q -> p, q -> y, z -> q
	g := Graph{
		"p.md": {"n.md"},
		"n.md": {"x.md"},
		"m.md": {"n.md"},
		"q.md": {"p.md", "y.md"},
		"z.md": {"q.md"},
		"x.md": {},
		"y.md": {},
	}
	got := g.TwoHop("p.md")
	// x: target of outgoing neighbour; m: links into outgoing neighbour;
	// y: target of incoming neighbour. z links into the incoming neighbour
	// and is intentionally not reached.
	want := []string{"m.md", "x.md", "y.md"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("two-hop = %v, want %v", got, want)
	}
}

func TestTwoHopExcludesDirect(t *testing.T) {
	g := Graph{
		"p.md": {"a.md", "b.md"},
		"a.md": {"b.md", "p.md", "c.md"},
		"b.md": {"a.md"},
		"c.md": {"p.md"},
	}
	links := g.Query("p.md")
	direct := map[string]bool{"p.md": true}
	for _, n := range append(links.Outgoing, links.Incoming...) {
		direct[n] = true
	}
	for _, n := range links.TwoHop {
		if direct[n] {
			t.Errorf("two-hop contains direct connection %q: %+v", n, links)
		}
	}
}

func TestBuild(t *testing.T) {
	_, store := testutil.TestVault(t, map[string]string{
		"index.md":             "[[dora/index]] [[ghost]] [[shared/utils|u]]",
		"dora/index.md":        "back to [[index]] and [[architecture]] and [[architecture.md]]",
		"dora/architecture.md": "# Arch\n[[utils]]",
		"shared/utils.md":      "no links",
	})
	paths, err := store.List()
	if err != nil {
		t.Fatal(err)
	}

	g, err := Build(store, paths)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	want := Graph{
		"index.md":             {"dora/index.md", "shared/utils.md"},
		"dora/index.md":        {"dora/architecture.md", "index.md"},
		"dora/architecture.md": {"shared/utils.md"},
		"shared/utils.md":      {},
	}
	if !reflect.DeepEqual(g, want) {
		t.Errorf("graph = %v, want %v", g, want)
	}

	links := g.Query("index.md")
	if !reflect.DeepEqual(links.Incoming, []string{"dora/index.md"}) {
		t.Errorf("incoming = %v", links.Incoming)
	}
	if !reflect.DeepEqual(links.TwoHop, []string{"dora/architecture.md"}) {
		t.Errorf("two-hop = %v", links.TwoHop)
	}
}

func TestBuildIsIdempotent(t *testing.T) {
	_, store := testutil.TestVault(t, map[string]string{
		"a.md": "[[b]] [[c]]",
		"b.md": "[[c]]",
		"c.md": "[[a]]",
	})
	paths, _ := store.List()
	first, err := Build(store, paths)
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 5; i++ {
		again, err := Build(store, paths)
		if err != nil {
			t.Fatal(err)
		}
		if !reflect.DeepEqual(first, again) {
			t.Fatalf("build %d differs: %v vs %v", i, first, again)
		}
	}
}

func TestBuildFailsOnUnreadableNote(t *testing.T) {
	_, store := testutil.TestVault(t, map[string]string{"a.md": "[[b]]"})
	_, err := Build(store, []string{"a.md", "vanished.md"})
	if err == nil {
		t.Fatal("expected build to fail")
	}
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("err = %v, want wrapped os.ErrNotExist", err)
	}
}

func TestParseAllKeepsOrder(t *testing.T) {
	_, store := testutil.TestVault(t, map[string]string{
		"a.md": "# A",
		"b.md": "# B",
		"c.md": "# C",
	})
	notes, err := ParseAll(store, []string{"c.md", "a.md", "b.md"})
	if err != nil {
		t.Fatal(err)
	}
	for i, want := range []string{"c.md", "a.md", "b.md"} {
		if notes[i].Path != want {
			t.Errorf("notes[%d] = %q, want %q", i, notes[i].Path, want)
		}
	}
}
