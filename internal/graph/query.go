package graph

import (
	"slices"
	"sort"

	"github.com/starford/obi/internal/models"
)

// Outgoing returns the notes p links to, sorted.
func (g Graph) Outgoing(p string) []string {
	out := slices.Clone(g[p])
	if out == nil {
		return []string{}
	}
	sort.Strings(out)
	return out
}

// Incoming returns every other note that links to p, sorted.
func (g Graph) Incoming(p string) []string {
	out := []string{}
	for q, targets := range g {
		if q != p && slices.Contains(targets, p) {
			out = append(out, q)
		}
	}
	sort.Strings(out)
	return out
}

// TwoHop returns notes reachable through exactly one intermediate note,
// excluding p and its direct neighbours.
//
// The walk is asymmetric. From each outgoing neighbour n it
// collects both n's targets and the notes linking to n; from each incoming
// neighbour it collects only that neighbour's targets. Notes linking to an
// incoming neighbour are not included.
func (g Graph) TwoHop(p string) []string {
	outgoing := g.Outgoing(p)
	incoming := g.Incoming(p)

	direct := map[string]struct{}{p: {}}
	for _, n := range outgoing {
		direct[n] = struct{}{}
	}
	for _, n := range incoming {
		direct[n] = struct{}{}
	}

	hops := make(map[string]struct{})
	add := func(n string) {
		if _, ok := direct[n]; !ok {
			hops[n] = struct{}{}
		}
	}

	for _, n := range outgoing {
		for _, hop := range g[n] {
			add(hop)
		}
		for m, targets := range g {
			if m != p && slices.Contains(targets, n) {
				add(m)
			}
		}
	}
	for _, n := range incoming {
		for _, hop := range g[n] {
			add(hop)
		}
	}

	out := make([]string, 0, len(hops))
	for n := range hops {
		out = append(out, n)
	}
	sort.Strings(out)
	return out
}

// Query returns the full link neighbourhood of p.
func (g Graph) Query(p string) models.Links {
	return models.Links{
		Path:     p,
		Outgoing: g.Outgoing(p),
		Incoming: g.Incoming(p),
		TwoHop:   g.TwoHop(p),
	}
}
