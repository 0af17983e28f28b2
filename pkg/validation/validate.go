package validation

import (
	"iter"
	"slices"
	"strings"

	"github.com/matzehuels/uccalint/pkg/passage"
)

// Validate returns a lazy sequence of the structural violations in p.
//
// Diagnostics are produced in three phases: terminal checks in layer
// order, top-level checks over the structural heads, then a depth-first
// walk from the heads that runs the unit rule battery once per reachable
// unit and reports every cycle it closes. The order is deterministic for a
// given passage. The consumer may stop ranging at any point; no further
// work is done once it does.
//
// Validate never mutates p and never panics on malformed input. A nil
// passage yields nothing.
func Validate(p *passage.Passage, opts Options) iter.Seq[Diagnostic] {
	return func(yield func(Diagnostic) bool) {
		if p == nil {
			return
		}
		emit := func(ds []Diagnostic) bool {
			for _, d := range ds {
				if !yield(d) {
					return false
				}
			}
			return true
		}

		for _, id := range p.Terminals() {
			n, ok := p.Node(id)
			if !ok {
				continue
			}
			if !emit(checkTerminal(newNodeView(p, n))) {
				return
			}
		}

		heads := p.Heads()
		hasLinkage := false
		for _, id := range heads {
			n, ok := p.Node(id)
			if !ok {
				continue
			}
			if n.Tag == passage.NodeTagLinkage {
				hasLinkage = true
			}
			if !emit(checkHead(newNodeView(p, n))) {
				return
			}
		}

		c := &checker{linkage: opts.Linkage && hasLinkage, multigraph: opts.Multigraph}
		walk(p, heads, func(n *passage.Node) bool {
			return emit(c.check(newNodeView(p, n)))
		}, func(cycle []string) bool {
			last := cycle[len(cycle)-1]
			return yield(newDiagnostic(RuleCycle, last, "Detected cycle (%s)", strings.Join(cycle, "->")))
		})
	}
}

// IsValid reports whether p has no violations. It stops at the first one.
func IsValid(p *passage.Passage, opts Options) bool {
	for range Validate(p, opts) {
		return false
	}
	return true
}

// frame is one level of the walk: the nodes to visit and how far along
// them the walk has got.
type frame struct {
	ids  []string
	next int
}

// walk performs an iterative depth-first traversal starting from roots.
// visit is called once per reachable non-terminal node in pre-order;
// cycle is called with the current path plus the repeated node whenever an
// edge leads back onto the path. Already-visited nodes are not descended
// into again. Either callback returning false ends the walk.
func walk(p *passage.Passage, roots []string, visit func(*passage.Node) bool, cycle func([]string) bool) {
	visited := make(map[string]bool)
	onPath := make(map[string]bool)
	var path []string
	stack := []frame{{ids: roots}}

	for len(stack) > 0 {
		top := &stack[len(stack)-1]
		if top.next >= len(top.ids) {
			stack = stack[:len(stack)-1]
			// Every frame but the first was pushed for a node on the path.
			if len(path) > 0 {
				delete(onPath, path[len(path)-1])
				path = path[:len(path)-1]
			}
			continue
		}
		id := top.ids[top.next]
		top.next++

		if onPath[id] {
			if !cycle(append(slices.Clone(path), id)) {
				return
			}
			continue
		}
		if visited[id] {
			continue
		}
		visited[id] = true

		n, ok := p.Node(id)
		if !ok || n.IsTerminal() {
			continue
		}
		if !visit(n) {
			return
		}
		path = append(path, id)
		onPath[id] = true
		stack = append(stack, frame{ids: p.Children(id)})
	}
}
