package validation

import (
	"fmt"
	"testing"

	"github.com/matzehuels/uccalint/pkg/passage"
)

// newFixture returns a passage with n terminals. Terminals at position
// firstPunct and later are punctuation.
func newFixture(t *testing.T, n, firstPunct int) (*passage.Passage, []*passage.Node) {
	t.Helper()
	p := passage.New("test")
	terms := make([]*passage.Node, n)
	for i := range terms {
		pos := i + 1
		punct := pos >= firstPunct
		text := fmt.Sprintf("w%d", pos)
		if punct {
			text = "."
		}
		term, err := p.AddTerminal(text, punct)
		if err != nil {
			t.Fatalf("AddTerminal() error = %v", err)
		}
		terms[i] = term
	}
	return p, terms
}

// attach links terms[i] to units[i] for as many units as are given.
func attach(t *testing.T, p *passage.Passage, terms []*passage.Node, units ...*passage.Node) {
	t.Helper()
	for i, u := range units {
		if err := p.Attach(u.ID, terms[i].ID); err != nil {
			t.Fatalf("Attach(%s, %s) error = %v", u.ID, terms[i].ID, err)
		}
	}
}

// fnode adds a unit under parent ("" for the root) and fails the test on error.
func fnode(t *testing.T, p *passage.Passage, parent *passage.Node, tags ...passage.EdgeTag) *passage.Node {
	t.Helper()
	id := ""
	if parent != nil {
		id = parent.ID
	}
	n, err := p.AddFNode(id, tags...)
	if err != nil {
		t.Fatalf("AddFNode(%q) error = %v", id, err)
	}
	return n
}

func unaryPunct(t *testing.T) *passage.Passage {
	p, terms := newFixture(t, 3, 3)
	h1 := fnode(t, p, nil, passage.TagParallelScene)
	p1 := fnode(t, p, h1, passage.TagProcess)
	a1 := fnode(t, p, h1, passage.TagParticipant)
	if _, err := p.AddPunct(h1.ID, terms[2].ID); err != nil {
		t.Fatal(err)
	}
	attach(t, p, terms, p1, a1)
	return p
}

func binaryPunct(t *testing.T) *passage.Passage {
	p, terms := newFixture(t, 4, 3)
	h1 := fnode(t, p, nil, passage.TagParallelScene)
	p1 := fnode(t, p, h1, passage.TagProcess)
	a1 := fnode(t, p, h1, passage.TagParticipant)
	u, err := p.AddPunct(h1.ID, terms[2].ID)
	if err != nil {
		t.Fatal(err)
	}
	if err := p.Attach(u.ID, terms[3].ID); err != nil {
		t.Fatal(err)
	}
	attach(t, p, terms, p1, a1)
	return p
}

func unaryPunctUnderFN(t *testing.T) *passage.Passage {
	p, terms := newFixture(t, 3, 3)
	h1 := fnode(t, p, nil, passage.TagParallelScene)
	p1 := fnode(t, p, h1, passage.TagProcess)
	a1 := fnode(t, p, h1, passage.TagParticipant)
	attach(t, p, terms, p1, a1, h1)
	return p
}

func punctUnderUnanalyzableFN(t *testing.T) *passage.Passage {
	p, terms := newFixture(t, 3, 2)
	h1 := fnode(t, p, nil, passage.TagParallelScene)
	p1 := fnode(t, p, h1, passage.TagProcess)
	attach(t, p, terms, p1, p1, p1)
	return p
}

func forbidChildOfP(t *testing.T) *passage.Passage {
	p, terms := newFixture(t, 5, 5)
	h1 := fnode(t, p, nil, passage.TagParallelScene)
	p1 := fnode(t, p, h1, passage.TagProcess)
	a1 := fnode(t, p, h1, passage.TagParticipant)
	g1 := fnode(t, p, p1, passage.TagGround)
	d1 := fnode(t, p, p1, passage.TagAdverbial)
	attach(t, p, terms, p1, a1, g1, d1)
	return p
}

func forbidChildOfS(t *testing.T) *passage.Passage {
	p, terms := newFixture(t, 4, 4)
	h1 := fnode(t, p, nil, passage.TagParallelScene)
	s1 := fnode(t, p, h1, passage.TagState)
	a1 := fnode(t, p, h1, passage.TagParticipant)
	h2 := fnode(t, p, s1, passage.TagParallelScene)
	attach(t, p, terms, s1, a1, h2)
	return p
}

func forbidChildOfF(t *testing.T) *passage.Passage {
	p, terms := newFixture(t, 6, 6)
	h1 := fnode(t, p, nil, passage.TagParallelScene)
	p1 := fnode(t, p, h1, passage.TagProcess)
	f1 := fnode(t, p, h1, passage.TagFunction)
	a1 := fnode(t, p, h1, passage.TagParticipant)
	t1 := fnode(t, p, f1, passage.TagTime)
	s1 := fnode(t, p, f1, passage.TagState)
	attach(t, p, terms, f1, a1, p1, t1, s1)
	return p
}

func forbidChildOfG(t *testing.T) *passage.Passage {
	p, terms := newFixture(t, 3, 3)
	h1 := fnode(t, p, nil, passage.TagParallelScene)
	g1 := fnode(t, p, h1, passage.TagGround)
	h2 := fnode(t, p, g1, passage.TagParallelScene)
	attach(t, p, terms, g1, h2)
	return p
}

func forbidChildOfH(t *testing.T) *passage.Passage {
	p, terms := newFixture(t, 3, 3)
	h1 := fnode(t, p, nil, passage.TagParallelScene)
	l1 := fnode(t, p, h1, passage.TagLinker)
	h2 := fnode(t, p, h1, passage.TagParallelScene)
	s1 := fnode(t, p, h2, passage.TagState)
	a1 := fnode(t, p, h2, passage.TagParticipant)
	attach(t, p, terms, l1, s1, a1)
	return p
}

func forbidDescendantOfP(t *testing.T) *passage.Passage {
	p, terms := newFixture(t, 6, 7)
	h1 := fnode(t, p, nil, passage.TagParallelScene)
	p1 := fnode(t, p, h1, passage.TagProcess)
	a1 := fnode(t, p, h1, passage.TagParticipant)
	c1 := fnode(t, p, p1, passage.TagCenter)
	e1 := fnode(t, p, p1, passage.TagElaborator)
	h2 := fnode(t, p, c1, passage.TagParallelScene)
	c2 := fnode(t, p, e1, passage.TagCenter)
	s2 := fnode(t, p, c2, passage.TagState)
	a2 := fnode(t, p, c2, passage.TagParticipant)
	attach(t, p, terms, a1, e1, a2, s2, h2, e1)
	return p
}

func forbidSiblingOfLH(t *testing.T) *passage.Passage {
	p, terms := newFixture(t, 6, 6)
	h1 := fnode(t, p, nil, passage.TagParallelScene)
	p1 := fnode(t, p, h1, passage.TagProcess)
	h2 := fnode(t, p, h1, passage.TagParallelScene)
	l1 := fnode(t, p, h1, passage.TagLinker)
	attach(t, p, terms, p1, h2, l1)
	return p
}

func forbidSiblingOfS(t *testing.T) *passage.Passage {
	p, terms := newFixture(t, 6, 6)
	h1 := fnode(t, p, nil, passage.TagParallelScene)
	s1 := fnode(t, p, h1, passage.TagState)
	h2 := fnode(t, p, h1, passage.TagParallelScene)
	l1 := fnode(t, p, h1, passage.TagLinker)
	attach(t, p, terms, s1, h2, l1)
	return p
}

func forbidSiblingOfD(t *testing.T) *passage.Passage {
	p, terms := newFixture(t, 6, 6)
	h1 := fnode(t, p, nil, passage.TagParallelScene)
	d1 := fnode(t, p, h1, passage.TagAdverbial)
	s1 := fnode(t, p, h1, passage.TagState)
	h2 := fnode(t, p, h1, passage.TagParallelScene)
	l1 := fnode(t, p, h1, passage.TagLinker)
	attach(t, p, terms, d1, s1, h2, l1)
	return p
}

// siblingPair builds a scene whose children are tagged first and second.
func siblingPair(first, second passage.EdgeTag) func(t *testing.T) *passage.Passage {
	return func(t *testing.T) *passage.Passage {
		p, terms := newFixture(t, 6, 6)
		h1 := fnode(t, p, nil, passage.TagParallelScene)
		a := fnode(t, p, h1, first)
		b := fnode(t, p, h1, second)
		attach(t, p, terms, a, b)
		return p
	}
}

func forbidSiblingOfAT(t *testing.T) *passage.Passage {
	p, terms := newFixture(t, 6, 6)
	h1 := fnode(t, p, nil, passage.TagParallelScene)
	p1 := fnode(t, p, h1, passage.TagProcess)
	a1 := fnode(t, p, h1, passage.TagParticipant)
	t1 := fnode(t, p, h1, passage.TagTime)
	n1 := fnode(t, p, h1, passage.TagConnector)
	e1 := fnode(t, p, h1, passage.TagElaborator)
	c1 := fnode(t, p, h1, passage.TagCenter)
	attach(t, p, terms, p1, a1, t1, n1, e1, c1)
	return p
}

func requireSiblingOfEQN(t *testing.T) *passage.Passage {
	p, terms := newFixture(t, 6, 6)
	h1 := fnode(t, p, nil, passage.TagParallelScene)
	e1 := fnode(t, p, h1, passage.TagElaborator)
	q1 := fnode(t, p, h1, passage.TagQuantifier)
	n1 := fnode(t, p, h1, passage.TagConnector)
	attach(t, p, terms, e1, q1, n1)
	return p
}

func requireSiblingOfL(t *testing.T) *passage.Passage {
	p, terms := newFixture(t, 6, 6)
	l1 := fnode(t, p, nil, passage.TagLinker)
	attach(t, p, terms, l1)
	return p
}

func requireSiblingOfAT(t *testing.T) *passage.Passage {
	p, terms := newFixture(t, 6, 6)
	h1 := fnode(t, p, nil, passage.TagParallelScene)
	a1 := fnode(t, p, h1, passage.TagParticipant)
	t1 := fnode(t, p, h1, passage.TagTime)
	attach(t, p, terms, a1, t1)
	return p
}

func uniqueUnderParent(t *testing.T) *passage.Passage {
	p, terms := newFixture(t, 6, 6)
	h1 := fnode(t, p, nil, passage.TagParallelScene)
	p1 := fnode(t, p, h1, passage.TagProcess)
	p2 := fnode(t, p, h1, passage.TagProcess)
	a1 := fnode(t, p, h1, passage.TagParticipant)
	attach(t, p, terms, a1, p1, p2)
	return p
}

func forbidRemote(t *testing.T) *passage.Passage {
	p, terms := newFixture(t, 7, 8)
	h1 := fnode(t, p, nil, passage.TagParallelScene)
	h2 := fnode(t, p, nil, passage.TagParallelScene)
	l1 := fnode(t, p, nil, passage.TagLinker)
	p1 := fnode(t, p, h1, passage.TagProcess)
	p2 := fnode(t, p, h2, passage.TagProcess)
	a1 := fnode(t, p, h1, passage.TagParticipant)
	a2 := fnode(t, p, h1, passage.TagParticipant)
	r1 := fnode(t, p, h1, passage.TagRelator)
	if err := p.AddRemote(h2.ID, r1.ID, passage.TagRelator); err != nil {
		t.Fatal(err)
	}
	attach(t, p, terms, l1, a2, a1, p1, p2, r1)
	return p
}

func forbidAtTopLevel(t *testing.T) *passage.Passage {
	p, terms := newFixture(t, 1, 1)
	g1 := fnode(t, p, nil, passage.TagGround)
	attach(t, p, terms, g1)
	return p
}

func forbidChildrenOfUNAAndAlone(t *testing.T) *passage.Passage {
	p, _ := newFixture(t, 1, 1)
	h1 := fnode(t, p, nil, passage.TagParallelScene)
	u1 := fnode(t, p, h1, passage.TagUnanalyzable)
	fnode(t, p, u1, passage.TagState)
	fnode(t, p, u1, passage.TagParticipant)
	return p
}

func emptyPassage(t *testing.T) *passage.Passage {
	return passage.New("empty")
}

// linkedScenes builds "John came and left" with both scenes joined by a
// linkage unit.
func linkedScenes(t *testing.T) *passage.Passage {
	p := passage.New("linked")
	var terms []*passage.Node
	for _, w := range []string{"John", "came", "and", "left"} {
		term, err := p.AddTerminal(w, false)
		if err != nil {
			t.Fatal(err)
		}
		terms = append(terms, term)
	}
	h1 := fnode(t, p, nil, passage.TagParallelScene)
	a1 := fnode(t, p, h1, passage.TagParticipant)
	p1 := fnode(t, p, h1, passage.TagProcess)
	l1 := fnode(t, p, nil, passage.TagLinker)
	h2 := fnode(t, p, nil, passage.TagParallelScene)
	p2 := fnode(t, p, h2, passage.TagProcess)
	attach(t, p, terms, a1, p1, l1, p2)
	if _, err := p.AddLinkage(l1.ID, h1.ID, h2.ID); err != nil {
		t.Fatal(err)
	}
	return p
}

func implicitWithChildren(t *testing.T) *passage.Passage {
	p, terms := newFixture(t, 2, 3)
	h1 := fnode(t, p, nil, passage.TagParallelScene)
	p1 := fnode(t, p, h1, passage.TagProcess)
	a1, err := p.AddImplicit(h1.ID, passage.TagParticipant)
	if err != nil {
		t.Fatal(err)
	}
	attach(t, p, terms, p1, a1)
	return p
}

// sharedChild hangs one unit under two scenes through primary edges tagged tag.
func sharedChild(tag passage.EdgeTag) func(t *testing.T) *passage.Passage {
	return func(t *testing.T) *passage.Passage {
		p, terms := newFixture(t, 3, 4)
		h1 := fnode(t, p, nil, passage.TagParallelScene)
		h2 := fnode(t, p, nil, passage.TagParallelScene)
		p1 := fnode(t, p, h1, passage.TagProcess)
		p2 := fnode(t, p, h2, passage.TagProcess)
		x := fnode(t, p, h1, tag)
		if err := p.AddEdge(passage.Edge{Parent: h2.ID, Child: x.ID, Tags: []passage.EdgeTag{tag}}); err != nil {
			t.Fatal(err)
		}
		attach(t, p, terms, p1, p2, x)
		return p
	}
}

func remoteOnlyParent(t *testing.T) *passage.Passage {
	p, terms := newFixture(t, 2, 3)
	h1 := fnode(t, p, nil, passage.TagParallelScene)
	p1 := fnode(t, p, h1, passage.TagProcess)
	a1 := &passage.Node{ID: "1.9", Layer: passage.StructuralLayerID, Tag: passage.NodeTagFoundational}
	if err := p.AddNode(*a1); err != nil {
		t.Fatal(err)
	}
	if err := p.AddRemote(h1.ID, a1.ID, passage.TagParticipant); err != nil {
		t.Fatal(err)
	}
	attach(t, p, terms, p1, a1)
	return p
}

func punctEdgeToUnit(t *testing.T) *passage.Passage {
	p, terms := newFixture(t, 2, 3)
	h1 := fnode(t, p, nil, passage.TagParallelScene)
	p1 := fnode(t, p, h1, passage.TagProcess)
	u1 := fnode(t, p, h1, passage.TagPunctuation)
	attach(t, p, terms, p1, u1)
	return p
}

func terminalUnderRoot(t *testing.T) *passage.Passage {
	p, terms := newFixture(t, 2, 3)
	h1 := fnode(t, p, nil, passage.TagParallelScene)
	p1 := fnode(t, p, h1, passage.TagProcess)
	attach(t, p, terms, p1)
	if err := p.Attach(passage.RootID, terms[1].ID); err != nil {
		t.Fatal(err)
	}
	return p
}

func linkageArgumentUnderUnit(t *testing.T) *passage.Passage {
	p, terms := newFixture(t, 2, 3)
	h1 := fnode(t, p, nil, passage.TagParallelScene)
	p1 := fnode(t, p, h1, passage.TagProcess)
	a1 := fnode(t, p, h1, passage.TagLinkArgument)
	attach(t, p, terms, p1, a1)
	return p
}

func linkageWithParticipant(t *testing.T) *passage.Passage {
	p := linkedScenes(t)
	lkg := p.Heads()[1]
	h1 := p.Outgoing(passage.RootID)[0].Child
	if err := p.AddEdge(passage.Edge{Parent: lkg, Child: h1, Tags: []passage.EdgeTag{passage.TagParticipant}}); err != nil {
		t.Fatal(err)
	}
	return p
}
