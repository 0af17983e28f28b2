package validation

import (
	"fmt"
	"strings"

	"github.com/matzehuels/uccalint/pkg/passage"
)

// nodeView caches what the rules need to know about one node: its edges in
// both directions, indexed by tag.
type nodeView struct {
	p    *passage.Passage
	node *passage.Node
	id   string

	in, out  []*passage.Edge
	incoming TagIndex
	outgoing TagIndex
}

func newNodeView(p *passage.Passage, n *passage.Node) *nodeView {
	v := &nodeView{
		p:    p,
		node: n,
		id:   displayID(n),
		in:   p.Incoming(n.ID),
		out:  p.Outgoing(n.ID),
	}
	v.incoming = IndexEdges(v.in)
	v.outgoing = IndexEdges(v.out)
	return v
}

// displayID renders a node ID, qualified by its tree ID when present.
func displayID(n *passage.Node) string {
	if n.TreeID == "" {
		return n.ID
	}
	return n.ID + ", " + n.TreeID
}

func (v *nodeView) inTags() passage.TagSet  { return v.incoming.Tags() }
func (v *nodeView) outTags() passage.TagSet { return v.outgoing.Tags() }

func (v *nodeView) text() string { return v.p.Text(v.node.ID) }

// describe renders the node ID followed by the text it spans.
func (v *nodeView) describe() string {
	text := v.text()
	if text == "" {
		return v.id
	}
	return fmt.Sprintf("%s %q", v.id, text)
}

func (v *nodeView) child(e *passage.Edge) *passage.Node {
	n, _ := v.p.Node(e.Child)
	return n
}

// childrenWith returns the IDs of children reached through edges carrying
// any tag in s, one entry per edge.
func (v *nodeView) childrenWith(s passage.TagSet) string {
	var ids []string
	for _, e := range v.out {
		if !e.TagSet().Intersect(s).Empty() {
			ids = append(ids, e.Child)
		}
	}
	return strings.Join(ids, ", ")
}

func (v *nodeView) diag(rule Rule, format string, args ...any) Diagnostic {
	return newDiagnostic(rule, v.node.ID, format, args...)
}

func joinEdges(edges []*passage.Edge) string {
	parts := make([]string, len(edges))
	for i, e := range edges {
		parts[i] = e.String()
	}
	return strings.Join(parts, ", ")
}

func joinParents(edges []*passage.Edge) string {
	parts := make([]string, len(edges))
	for i, e := range edges {
		parts[i] = e.Parent
	}
	return strings.Join(parts, ", ")
}

func joinChildren(edges []*passage.Edge) string {
	parts := make([]string, len(edges))
	for i, e := range edges {
		parts[i] = e.Child
	}
	return strings.Join(parts, ", ")
}
