package framegraph

import (
	"sort"
	"strings"

	"github.com/jacoelho/sdf/errors"
)

// Validate resolves every edge target and walks every vertex toward the
// sink, collecting all unresolved-reference and cycle defects across the
// whole graph. It never stops at the first defect and never repairs the
// graph. The report is computed once and is safe for concurrent callers.
func (g *Graph) Validate() errors.DiagnosticList {
	g.validateOnce.Do(func() {
		g.defects = g.validate()
	})
	return g.defects
}

func (g *Graph) validate() errors.DiagnosticList {
	var diags errors.DiagnosticList

	if g.sinkDangling {
		d := errors.Newf(errors.ErrUnresolvedReference, g.scope,
			"canonical link %q does not exist in scope %q", g.sink.Name, g.scope)
		d.Target = g.sink.Name
		diags = append(diags, d)
	}

	// Pass 1: every edge target must name a vertex of the scope.
	for _, name := range g.order {
		v := g.vertices[name]
		if v.target == "" {
			continue
		}
		if !g.Exists(v.target) {
			d := errors.Newf(errors.ErrUnresolvedReference, g.scope,
				"%s %q of %s %q does not resolve in scope %q",
				g.kind.edgeName(), v.target, v.kind, v.name, g.scope)
			d.Source = v.name
			d.Target = v.target
			diags = append(diags, d)
		}
	}

	// Pass 2: every walk must terminate without revisiting a vertex.
	// Walks are bounded by the vertex count; exceeding the bound is
	// itself a cycle. Distinct cycles are reported once.
	seen := make(map[string]bool)
	for _, name := range g.order {
		cycle := g.walkForCycle(name)
		if len(cycle) == 0 {
			continue
		}
		key := cycleKey(cycle)
		if seen[key] {
			continue
		}
		seen[key] = true

		d := errors.Newf(errors.ErrCycle, g.scope,
			"%s graph cycle: %s", g.kind.edgeName(), strings.Join(cycle, " -> "))
		d.Source = cycle[0]
		d.Path = cycle
		diags = append(diags, d)
	}

	return diags
}

// walkForCycle follows edges from start and returns the cycle it runs
// into, or nil when the walk terminates. Dangling edges end the walk;
// pass 1 already reported them.
func (g *Graph) walkForCycle(start string) []string {
	visited := make(map[string]int)
	path := []string{}
	cur := start

	for hops := 0; hops <= len(g.order); hops++ {
		if at, ok := visited[cur]; ok {
			return append(path[at:], cur)
		}
		visited[cur] = len(path)
		path = append(path, cur)

		v, ok := g.vertices[cur]
		if !ok || v.target == "" {
			return nil
		}
		cur = v.target
	}
	// Bound exceeded without revisiting a recorded vertex.
	return path
}

// cycleKey canonicalizes a cycle path so the same loop reached from
// different starting vertices is reported once.
func cycleKey(cycle []string) string {
	members := make([]string, 0, len(cycle))
	seen := make(map[string]bool, len(cycle))
	for _, name := range cycle {
		if !seen[name] {
			seen[name] = true
			members = append(members, name)
		}
	}
	sort.Strings(members)
	return strings.Join(members, "\x00")
}
