package nodelink

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/matzehuels/uccalint/pkg/passage"
)

// Options configures node-link diagram rendering.
type Options struct {
	// NodeIDs labels otherwise unlabelled units with their ID.
	NodeIDs bool

	// Highlight lists node IDs to draw in red, typically the nodes a
	// validation run reported.
	Highlight []string
}

// ToDOT converts a passage to Graphviz DOT format.
// The resulting DOT string can be rendered using [RenderSVG], [RenderPDF], or [RenderPNG].
//
// Terminals are labelled with their text and laid out on one rank in
// position order. Implicit units read IMPLICIT, linkage units are gray and
// remaining units are small black circles unless [Options.NodeIDs] is set.
// Edges are labelled with their tags joined by "|"; remote edges are dashed.
func ToDOT(p *passage.Passage, opts Options) string {
	highlight := make(map[string]bool, len(opts.Highlight))
	for _, id := range opts.Highlight {
		highlight[id] = true
	}

	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  rankdir=TB;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [fontsize=14];\n")
	buf.WriteString("  edge [fontsize=10];\n")
	buf.WriteString("  ranksep=0.5;\n")
	buf.WriteString("  nodesep=0.3;\n")
	buf.WriteString("\n")

	for _, id := range p.Units() {
		n, _ := p.Node(id)
		attrs := unitAttrs(n, opts.NodeIDs)
		if highlight[id] {
			attrs = append(attrs, "color=red", "penwidth=2")
		}
		fmt.Fprintf(&buf, "  %q [%s];\n", id, strings.Join(attrs, ", "))
	}

	terms := p.Terminals()
	if len(terms) > 0 {
		buf.WriteString("\n  subgraph terminals {\n    rank=same;\n")
		for _, id := range terms {
			n, _ := p.Node(id)
			attrs := []string{"shape=plaintext", fmt.Sprintf("label=%q", n.Text)}
			if highlight[id] {
				attrs = append(attrs, "fontcolor=red")
			}
			fmt.Fprintf(&buf, "    %q [%s];\n", id, strings.Join(attrs, ", "))
		}
		for i := 1; i < len(terms); i++ {
			fmt.Fprintf(&buf, "    %q -> %q [style=invis];\n", terms[i-1], terms[i])
		}
		buf.WriteString("  }\n")
	}

	buf.WriteString("\n")
	for _, e := range p.Edges() {
		attrs := []string{fmt.Sprintf("label=%q", edgeLabel(e))}
		if e.Remote {
			attrs = append(attrs, "style=dashed")
		}
		fmt.Fprintf(&buf, "  %q -> %q [%s];\n", e.Parent, e.Child, strings.Join(attrs, ", "))
	}

	buf.WriteString("}\n")
	return buf.String()
}

func unitAttrs(n *passage.Node, nodeIDs bool) []string {
	switch {
	case n.Implicit:
		return []string{"shape=plaintext", `label="IMPLICIT"`}
	case n.Tag == passage.NodeTagLinkage:
		return []string{"shape=circle", "style=filled", "fillcolor=gray", "color=gray", fmt.Sprintf("label=%q", idLabel(n, nodeIDs))}
	case nodeIDs:
		return []string{"shape=circle", fmt.Sprintf("label=%q", n.ID)}
	default:
		return []string{"shape=circle", "style=filled", "fillcolor=black", "width=0.15", `label=""`}
	}
}

func idLabel(n *passage.Node, nodeIDs bool) string {
	if nodeIDs {
		return n.ID
	}
	return ""
}

func edgeLabel(e *passage.Edge) string {
	tags := make([]string, len(e.Tags))
	for i, t := range e.Tags {
		tags[i] = t.String()
	}
	return strings.Join(tags, "|")
}
