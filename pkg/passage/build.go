package passage

import "fmt"

// nextID returns the first free "<layer>.<n>" identifier.
func (p *Passage) nextID(layer string) string {
	n := p.next[layer] + 1
	for {
		id := fmt.Sprintf("%s.%d", layer, n)
		if _, taken := p.nodes[id]; !taken {
			return id
		}
		n++
	}
}

// AddTerminal appends a terminal to the terminal layer. Its position is its
// 1-based index in the layer.
func (p *Passage) AddTerminal(text string, punct bool) (*Node, error) {
	tag := NodeTagWord
	if punct {
		tag = NodeTagPunct
	}
	n := Node{
		ID:       p.nextID(TerminalLayerID),
		Layer:    TerminalLayerID,
		Tag:      tag,
		Text:     text,
		Position: len(p.Terminals()) + 1,
	}
	if err := p.AddNode(n); err != nil {
		return nil, err
	}
	return p.nodes[n.ID], nil
}

// AddFNode creates a foundational unit under parent with the given tags. An
// empty parent attaches the unit to the root.
func (p *Passage) AddFNode(parent string, tags ...EdgeTag) (*Node, error) {
	return p.addUnit(parent, NodeTagFoundational, false, tags)
}

// AddImplicit creates an implicit foundational unit under parent.
func (p *Passage) AddImplicit(parent string, tags ...EdgeTag) (*Node, error) {
	return p.addUnit(parent, NodeTagFoundational, true, tags)
}

// AddPunct wraps terminal in a punctuation unit attached to parent with a U edge.
func (p *Passage) AddPunct(parent, terminal string) (*Node, error) {
	if _, ok := p.nodes[terminal]; !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownNode, terminal)
	}
	u, err := p.addUnit(parent, NodeTagPunctuation, false, []EdgeTag{TagPunctuation})
	if err != nil {
		return nil, err
	}
	if err := p.AddEdge(Edge{Parent: u.ID, Child: terminal, Tags: []EdgeTag{TagTerminal}}); err != nil {
		return nil, err
	}
	return u, nil
}

// AddRemote adds a remote edge from parent to an existing child.
func (p *Passage) AddRemote(parent, child string, tags ...EdgeTag) error {
	if len(tags) == 0 {
		return ErrNoTags
	}
	return p.AddEdge(Edge{Parent: parent, Child: child, Tags: tags, Remote: true})
}

// AddLinkage creates a linkage unit relating relation to args and registers
// it as a head.
func (p *Passage) AddLinkage(relation string, args ...string) (*Node, error) {
	if _, ok := p.nodes[relation]; !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownNode, relation)
	}
	n := Node{ID: p.nextID(StructuralLayerID), Layer: StructuralLayerID, Tag: NodeTagLinkage}
	if err := p.AddNode(n); err != nil {
		return nil, err
	}
	if err := p.AddEdge(Edge{Parent: n.ID, Child: relation, Tags: []EdgeTag{TagLinkRelation}}); err != nil {
		return nil, err
	}
	for _, arg := range args {
		if err := p.AddEdge(Edge{Parent: n.ID, Child: arg, Tags: []EdgeTag{TagLinkArgument}}); err != nil {
			return nil, err
		}
	}
	if err := p.AddHead(n.ID); err != nil {
		return nil, err
	}
	return p.nodes[n.ID], nil
}

// Attach hangs terminals under parent with Terminal edges. Punctuation
// terminals are attached as-is; use [Passage.AddPunct] to wrap them.
func (p *Passage) Attach(parent string, terminals ...string) error {
	for _, id := range terminals {
		if err := p.AddEdge(Edge{Parent: parent, Child: id, Tags: []EdgeTag{TagTerminal}}); err != nil {
			return err
		}
	}
	return nil
}

func (p *Passage) addUnit(parent string, tag NodeTag, implicit bool, tags []EdgeTag) (*Node, error) {
	if len(tags) == 0 {
		return nil, ErrNoTags
	}
	if parent == "" {
		parent = RootID
	}
	if _, ok := p.nodes[parent]; !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownNode, parent)
	}
	n := Node{ID: p.nextID(StructuralLayerID), Layer: StructuralLayerID, Tag: tag, Implicit: implicit}
	if err := p.AddNode(n); err != nil {
		return nil, err
	}
	if err := p.AddEdge(Edge{Parent: parent, Child: n.ID, Tags: tags}); err != nil {
		return nil, err
	}
	return p.nodes[n.ID], nil
}
