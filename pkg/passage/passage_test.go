package passage

import (
	"errors"
	"slices"
	"testing"
)

func TestNewCreatesRoot(t *testing.T) {
	p := New("p")

	if got := p.Heads(); !slices.Equal(got, []string{RootID}) {
		t.Errorf("Heads() = %v, want [%s]", got, RootID)
	}
	root, ok := p.Node(RootID)
	if !ok {
		t.Fatal("root node missing")
	}
	if root.Tag != NodeTagFoundational {
		t.Errorf("root.Tag = %v, want %v", root.Tag, NodeTagFoundational)
	}
	if p.NodeCount() != 1 || p.EdgeCount() != 0 {
		t.Errorf("counts = %d/%d, want 1/0", p.NodeCount(), p.EdgeCount())
	}
}

func TestAddNodeErrors(t *testing.T) {
	p := New("p")

	tests := []struct {
		name string
		node Node
		want error
	}{
		{"empty id", Node{Layer: StructuralLayerID}, ErrInvalidNodeID},
		{"duplicate", Node{ID: RootID, Layer: StructuralLayerID}, ErrDuplicateNodeID},
		{"unknown layer", Node{ID: "2.1", Layer: "2"}, ErrUnknownLayer},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := p.AddNode(tt.node); !errors.Is(err, tt.want) {
				t.Errorf("AddNode() error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestAddEdgeErrors(t *testing.T) {
	p := New("p")
	term, _ := p.AddTerminal("a", false)

	tests := []struct {
		name string
		edge Edge
		want error
	}{
		{"unknown parent", Edge{Parent: "1.9", Child: RootID}, ErrUnknownParentNode},
		{"unknown child", Edge{Parent: RootID, Child: "1.9"}, ErrUnknownChildNode},
		{"terminal parent", Edge{Parent: term.ID, Child: RootID}, ErrTerminalParent},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := p.AddEdge(tt.edge); !errors.Is(err, tt.want) {
				t.Errorf("AddEdge() error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestAddEdgeAllowsMalformedStructure(t *testing.T) {
	p := New("p")
	u, _ := p.AddFNode("", TagParallelScene)

	// Cycle, parallel edge and an empty tag list are all accepted.
	if err := p.AddEdge(Edge{Parent: u.ID, Child: RootID, Tags: []EdgeTag{TagCenter}, Remote: true}); err != nil {
		t.Fatalf("cycle edge: %v", err)
	}
	if err := p.AddEdge(Edge{Parent: RootID, Child: u.ID, Tags: []EdgeTag{TagParallelScene}}); err != nil {
		t.Fatalf("parallel edge: %v", err)
	}
	if err := p.AddEdge(Edge{Parent: RootID, Child: u.ID}); err != nil {
		t.Fatalf("untagged edge: %v", err)
	}
	if got := len(p.Incoming(u.ID)); got != 3 {
		t.Errorf("len(Incoming) = %d, want 3", got)
	}
	if got := p.Children(RootID); !slices.Equal(got, []string{u.ID, u.ID, u.ID}) {
		t.Errorf("Children(root) = %v", got)
	}
}

func TestAddEdgeCopiesTags(t *testing.T) {
	p := New("p")
	u, _ := p.AddFNode("", TagParallelScene)
	tags := []EdgeTag{TagParticipant}
	_ = p.AddEdge(Edge{Parent: RootID, Child: u.ID, Tags: tags, Remote: true})
	tags[0] = TagTime

	in := p.Incoming(u.ID)
	if got := in[len(in)-1].Tags[0]; got != TagParticipant {
		t.Errorf("stored tag = %v, want A", got)
	}
}

func TestBuilderIDsAndPositions(t *testing.T) {
	p := New("p")
	a, _ := p.AddTerminal("a", false)
	b, _ := p.AddTerminal(".", true)
	u, _ := p.AddFNode("", TagParallelScene)

	if a.ID != "0.1" || b.ID != "0.2" {
		t.Errorf("terminal IDs = %s, %s", a.ID, b.ID)
	}
	if a.Position != 1 || b.Position != 2 {
		t.Errorf("positions = %d, %d", a.Position, b.Position)
	}
	if b.Tag != NodeTagPunct {
		t.Errorf("b.Tag = %v, want %v", b.Tag, NodeTagPunct)
	}
	if u.ID != "1.2" {
		t.Errorf("unit ID = %s, want 1.2", u.ID)
	}
	if _, err := p.AddFNode(""); !errors.Is(err, ErrNoTags) {
		t.Errorf("AddFNode() without tags error = %v, want %v", err, ErrNoTags)
	}
	if _, err := p.AddFNode("1.99", TagCenter); !errors.Is(err, ErrUnknownNode) {
		t.Errorf("AddFNode() unknown parent error = %v, want %v", err, ErrUnknownNode)
	}
}

func TestAddPunctAndLinkage(t *testing.T) {
	p := New("p")
	dot, _ := p.AddTerminal(".", true)
	h1, _ := p.AddFNode("", TagParallelScene)
	h2, _ := p.AddFNode("", TagParallelScene)
	l, _ := p.AddFNode("", TagLinker)

	pu, err := p.AddPunct(RootID, dot.ID)
	if err != nil {
		t.Fatalf("AddPunct() error = %v", err)
	}
	if pu.Tag != NodeTagPunctuation {
		t.Errorf("punct unit tag = %v", pu.Tag)
	}
	if got := p.Children(pu.ID); !slices.Equal(got, []string{dot.ID}) {
		t.Errorf("punct children = %v", got)
	}

	lkg, err := p.AddLinkage(l.ID, h1.ID, h2.ID)
	if err != nil {
		t.Fatalf("AddLinkage() error = %v", err)
	}
	if !slices.Contains(p.Heads(), lkg.ID) {
		t.Errorf("linkage %s not registered as head: %v", lkg.ID, p.Heads())
	}
	out := p.Outgoing(lkg.ID)
	if len(out) != 3 || !out[0].HasTag(TagLinkRelation) || !out[2].HasTag(TagLinkArgument) {
		t.Errorf("linkage edges = %v", out)
	}
}

func TestText(t *testing.T) {
	p := New("p")
	john, _ := p.AddTerminal("John", false)
	came, _ := p.AddTerminal("came", false)
	h, _ := p.AddFNode("", TagParallelScene)
	pr, _ := p.AddFNode(h.ID, TagProcess)
	a, _ := p.AddFNode(h.ID, TagParticipant)
	// Attach out of order; Text sorts by position.
	_ = p.Attach(pr.ID, came.ID)
	_ = p.Attach(a.ID, john.ID)
	// Remote edges and cycles are not followed twice.
	_ = p.AddRemote(pr.ID, a.ID, TagParticipant)
	_ = p.AddRemote(a.ID, h.ID, TagCenter)

	if got := p.Text(h.ID); got != "John came" {
		t.Errorf("Text(h) = %q, want %q", got, "John came")
	}
	if got := p.Text(pr.ID); got != "came" {
		t.Errorf("Text(p) = %q, want %q", got, "came")
	}
	if got := p.Text(john.ID); got != "John" {
		t.Errorf("Text(terminal) = %q", got)
	}
	if got := p.Text("1.99"); got != "" {
		t.Errorf("Text(unknown) = %q, want empty", got)
	}
}

func TestEdgeFormatting(t *testing.T) {
	e := Edge{Parent: "1.2", Child: "1.3", Tags: []EdgeTag{TagParticipant, TagTime}}
	if got := e.String(); got != "1.2->1.3" {
		t.Errorf("String() = %q", got)
	}
	if got := e.TagString(); got != "A+T" {
		t.Errorf("TagString() = %q", got)
	}
	if !e.TagSet().Has(TagTime) {
		t.Error("TagSet() missing T")
	}
}
