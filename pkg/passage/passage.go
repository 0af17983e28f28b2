package passage

import (
	"errors"
	"fmt"
	"slices"
	"strings"
)

var (
	// ErrInvalidNodeID is returned by [Passage.AddNode] when the node ID is empty.
	ErrInvalidNodeID = errors.New("node ID must not be empty")

	// ErrDuplicateNodeID is returned by [Passage.AddNode] when a node with the
	// same ID already exists in the passage.
	ErrDuplicateNodeID = errors.New("duplicate node ID")

	// ErrUnknownLayer is returned by [Passage.AddNode] when the node names a
	// layer the passage does not own.
	ErrUnknownLayer = errors.New("unknown layer")

	// ErrUnknownParentNode is returned by [Passage.AddEdge] when the parent
	// does not exist.
	ErrUnknownParentNode = errors.New("unknown parent node")

	// ErrUnknownChildNode is returned by [Passage.AddEdge] when the child
	// does not exist.
	ErrUnknownChildNode = errors.New("unknown child node")

	// ErrUnknownNode is returned by [Passage.AddHead] and the builder helpers
	// when a referenced node does not exist.
	ErrUnknownNode = errors.New("unknown node")

	// ErrTerminalParent is returned when an edge would leave a terminal.
	// Terminals are leaves by construction.
	ErrTerminalParent = errors.New("terminal cannot have children")

	// ErrNoTags is returned by the builder helpers when an edge is requested
	// without any relation tag.
	ErrNoTags = errors.New("edge needs at least one tag")

	// ErrUnknownEdgeTag is returned by [ParseEdgeTag] for abbreviations
	// outside the closed tag set.
	ErrUnknownEdgeTag = errors.New("unknown edge tag")
)

// Layer IDs of the two layers every passage owns.
const (
	TerminalLayerID   = "0"
	StructuralLayerID = "1"
)

// RootID is the ID of the structural root unit created by [New].
const RootID = StructuralLayerID + ".1"

// Metadata stores arbitrary key-value pairs attached to a node.
type Metadata map[string]any

// Node is a terminal or a structural unit. Terminals carry Text and
// Position; units carry Implicit. TreeID names a secondary structural
// context (e.g. a tree the unit was projected from) and is empty when the
// unit has none.
type Node struct {
	ID       string
	Layer    string
	Tag      NodeTag
	Text     string
	Position int
	Implicit bool
	TreeID   string
	Meta     Metadata
}

// IsTerminal reports whether the node lives in the terminal layer.
func (n *Node) IsTerminal() bool { return n.Layer == TerminalLayerID }

// Edge is a non-owning parent→child record. Tags are kept in the order they
// were given; use [Edge.TagSet] for set semantics.
type Edge struct {
	Parent string
	Child  string
	Tags   []EdgeTag
	Remote bool
}

// TagSet returns the edge's tags as a set.
func (e *Edge) TagSet() TagSet { return NewTagSet(e.Tags...) }

// HasTag reports whether t is one of the edge's tags.
func (e *Edge) HasTag(t EdgeTag) bool { return slices.Contains(e.Tags, t) }

// String renders the edge as "parent->child".
func (e *Edge) String() string { return e.Parent + "->" + e.Child }

// TagString renders the tags as "P+T". Bundled tags keep their given order.
func (e *Edge) TagString() string {
	names := make([]string, len(e.Tags))
	for i, t := range e.Tags {
		names[i] = t.String()
	}
	return strings.Join(names, "+")
}

// Layer partitions a passage's nodes by granularity. Nodes keep insertion
// order; heads are the layer's top-level units.
type Layer struct {
	ID    string
	nodes []string
	heads []string
}

// All returns the IDs of every node in the layer in insertion order.
func (l *Layer) All() []string { return l.nodes }

// Heads returns the IDs of the layer's top-level units.
func (l *Layer) Heads() []string { return l.heads }

// Passage is an arena of nodes addressed by ID plus the edges between them.
// Construction enforces referential integrity only; grammar-level
// well-formedness is checked by the validation package.
//
// The zero value is not usable - use [New]. A Passage is not safe for
// concurrent mutation; concurrent readers are fine once construction ends.
type Passage struct {
	ID string

	layers   map[string]*Layer
	nodes    map[string]*Node
	edges    []*Edge
	outgoing map[string][]*Edge
	incoming map[string][]*Edge
	next     map[string]int
}

// New creates a passage owning an empty terminal layer and a structural
// layer holding the root unit [RootID], registered as the first head.
func New(id string) *Passage {
	p := newEmpty(id)
	_ = p.AddNode(Node{ID: RootID, Layer: StructuralLayerID, Tag: NodeTagFoundational})
	_ = p.AddHead(RootID)
	return p
}

// NewEmpty creates a passage with both layers but no nodes. It is meant for
// importers that supply every node, the root included.
func NewEmpty(id string) *Passage { return newEmpty(id) }

func newEmpty(id string) *Passage {
	return &Passage{
		ID: id,
		layers: map[string]*Layer{
			TerminalLayerID:   {ID: TerminalLayerID},
			StructuralLayerID: {ID: StructuralLayerID},
		},
		nodes:    make(map[string]*Node),
		outgoing: make(map[string][]*Edge),
		incoming: make(map[string][]*Edge),
		next:     make(map[string]int),
	}
}

// AddNode adds n to its layer. The layer must be one the passage owns.
// Meta is initialised to an empty map when nil.
func (p *Passage) AddNode(n Node) error {
	if n.ID == "" {
		return ErrInvalidNodeID
	}
	if _, exists := p.nodes[n.ID]; exists {
		return fmt.Errorf("%w: %s", ErrDuplicateNodeID, n.ID)
	}
	l, ok := p.layers[n.Layer]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownLayer, n.Layer)
	}
	if n.Meta == nil {
		n.Meta = Metadata{}
	}
	node := &n
	p.nodes[n.ID] = node
	l.nodes = append(l.nodes, n.ID)
	p.next[n.Layer]++
	return nil
}

// AddEdge adds a parent→child edge between two existing nodes. It accepts
// empty tag lists, duplicate parallel edges and cycles so that the
// validator can report them. Tags are copied.
func (p *Passage) AddEdge(e Edge) error {
	parent, ok := p.nodes[e.Parent]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownParentNode, e.Parent)
	}
	if _, ok := p.nodes[e.Child]; !ok {
		return fmt.Errorf("%w: %s", ErrUnknownChildNode, e.Child)
	}
	if parent.IsTerminal() {
		return fmt.Errorf("%w: %s", ErrTerminalParent, e.Parent)
	}
	e.Tags = slices.Clone(e.Tags)
	edge := &e
	p.edges = append(p.edges, edge)
	p.outgoing[e.Parent] = append(p.outgoing[e.Parent], edge)
	p.incoming[e.Child] = append(p.incoming[e.Child], edge)
	return nil
}

// AddHead registers an existing structural unit as a head. Registering the
// same unit twice is a no-op.
func (p *Passage) AddHead(id string) error {
	n, ok := p.nodes[id]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownNode, id)
	}
	l := p.layers[n.Layer]
	if !slices.Contains(l.heads, id) {
		l.heads = append(l.heads, id)
	}
	return nil
}

// Layer returns the layer with the given ID, or nil.
func (p *Passage) Layer(id string) *Layer { return p.layers[id] }

// Node returns the node with the given ID and true, or nil and false.
func (p *Passage) Node(id string) (*Node, bool) {
	n, ok := p.nodes[id]
	return n, ok
}

// IsTerminal reports whether id names a terminal. Unknown IDs are not terminals.
func (p *Passage) IsTerminal(id string) bool {
	n, ok := p.nodes[id]
	return ok && n.IsTerminal()
}

// Heads returns the structural layer's head IDs.
func (p *Passage) Heads() []string { return p.layers[StructuralLayerID].heads }

// Terminals returns the terminal IDs in layer order.
func (p *Passage) Terminals() []string { return p.layers[TerminalLayerID].nodes }

// Units returns the structural unit IDs in layer order.
func (p *Passage) Units() []string { return p.layers[StructuralLayerID].nodes }

// Outgoing returns the node's outgoing edges in insertion order. The slice
// is a read-only view.
func (p *Passage) Outgoing(id string) []*Edge { return p.outgoing[id] }

// Incoming returns the node's incoming edges in insertion order. The slice
// is a read-only view.
func (p *Passage) Incoming(id string) []*Edge { return p.incoming[id] }

// Children returns the child IDs of the node's outgoing edges, one entry per
// edge, so parallel edges produce repeated IDs.
func (p *Passage) Children(id string) []string {
	out := p.outgoing[id]
	children := make([]string, len(out))
	for i, e := range out {
		children[i] = e.Child
	}
	return children
}

// Edges returns every edge in insertion order.
func (p *Passage) Edges() []*Edge { return slices.Clone(p.edges) }

// NodeCount returns the number of nodes in the passage.
func (p *Passage) NodeCount() int { return len(p.nodes) }

// EdgeCount returns the number of edges in the passage.
func (p *Passage) EdgeCount() int { return len(p.edges) }

// Text returns the surface text a node spans: its own text for a terminal,
// otherwise the texts of the terminals reachable through primary edges,
// ordered by position and joined by spaces. Cycles are tolerated.
func (p *Passage) Text(id string) string {
	n, ok := p.nodes[id]
	if !ok {
		return ""
	}
	if n.IsTerminal() {
		return n.Text
	}

	var terms []*Node
	seen := map[string]bool{id: true}
	stack := []string{id}
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for _, e := range p.outgoing[cur] {
			if e.Remote || seen[e.Child] {
				continue
			}
			seen[e.Child] = true
			child := p.nodes[e.Child]
			if child.IsTerminal() {
				terms = append(terms, child)
			} else {
				stack = append(stack, e.Child)
			}
		}
	}

	slices.SortStableFunc(terms, func(a, b *Node) int { return a.Position - b.Position })
	words := make([]string, len(terms))
	for i, t := range terms {
		words[i] = t.Text
	}
	return strings.Join(words, " ")
}
