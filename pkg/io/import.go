package io

import (
	"encoding/json"
	"io"
	"os"

	"github.com/matzehuels/uccalint/pkg/errors"
	"github.com/matzehuels/uccalint/pkg/passage"
)

type document struct {
	ID    string   `json:"id"`
	Nodes []node   `json:"nodes"`
	Edges []edge   `json:"edges"`
	Heads []string `json:"heads,omitempty"`
}

type node struct {
	ID       string           `json:"id"`
	Layer    string           `json:"layer"`
	Tag      string           `json:"tag"`
	Text     string           `json:"text,omitempty"`
	Position int              `json:"position,omitempty"`
	Implicit bool             `json:"implicit,omitempty"`
	TreeID   string           `json:"tree_id,omitempty"`
	Meta     passage.Metadata `json:"meta,omitempty"`
}

type edge struct {
	Parent string   `json:"parent"`
	Child  string   `json:"child"`
	Tags   []string `json:"tags"`
	Remote bool     `json:"remote,omitempty"`
}

// ReadJSON decodes a JSON passage from r.
//
// The input must be a JSON object with "nodes" and "edges" arrays:
//
//	{
//	  "id": "120",
//	  "nodes": [{"id": "0.1", "layer": "0", "tag": "Word", "text": "John", "position": 1},
//	            {"id": "1.1", "layer": "1", "tag": "FN"}],
//	  "edges": [{"parent": "1.1", "child": "0.1", "tags": ["Terminal"]}]
//	}
//
// When "heads" is omitted, every structural unit without incoming edges
// becomes a head, in node order.
//
// ReadJSON returns an error if:
//   - The JSON is malformed (INVALID_FORMAT)
//   - A node or edge carries an unknown tag (INVALID_TAG)
//   - A node ID is malformed or duplicated, a layer is unknown, or an edge
//     or head references an unknown node (INVALID_PASSAGE)
//
// Structural rule violations such as cycles, orphans or empty tag lists
// are not errors; they are left for the validator to report.
//
// ReadJSON does not close r.
func ReadJSON(r io.Reader) (*passage.Passage, error) {
	var doc document
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode passage")
	}
	return fromDocument(doc)
}

// ImportJSON reads a JSON file at path and returns the decoded passage.
//
// ImportJSON returns FILE_NOT_FOUND if the file does not exist, and the
// same errors as [ReadJSON] otherwise.
func ImportJSON(path string) (*passage.Passage, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "open %s", path)
		}
		return nil, errors.Wrap(errors.ErrCodeInvalidPath, err, "open %s", path)
	}
	defer f.Close()
	return ReadJSON(f)
}

func fromDocument(doc document) (*passage.Passage, error) {
	if doc.ID != "" {
		if err := errors.ValidatePassageID(doc.ID); err != nil {
			return nil, err
		}
	}

	p := passage.NewEmpty(doc.ID)
	for _, n := range doc.Nodes {
		if err := errors.ValidateNodeID(n.ID); err != nil {
			return nil, err
		}
		tag := passage.NodeTag(n.Tag)
		if !tag.Valid() {
			return nil, errors.New(errors.ErrCodeInvalidTag, "node %s: unknown tag %q", n.ID, n.Tag)
		}
		nd := passage.Node{
			ID:       n.ID,
			Layer:    n.Layer,
			Tag:      tag,
			Text:     n.Text,
			Position: n.Position,
			Implicit: n.Implicit,
			TreeID:   n.TreeID,
			Meta:     n.Meta,
		}
		if err := p.AddNode(nd); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidPassage, err, "node %s", n.ID)
		}
	}

	for _, e := range doc.Edges {
		tags := make([]passage.EdgeTag, 0, len(e.Tags))
		for _, s := range e.Tags {
			t, err := passage.ParseEdgeTag(s)
			if err != nil {
				return nil, errors.Wrap(errors.ErrCodeInvalidTag, err, "edge %s->%s", e.Parent, e.Child)
			}
			tags = append(tags, t)
		}
		ed := passage.Edge{Parent: e.Parent, Child: e.Child, Tags: tags, Remote: e.Remote}
		if err := p.AddEdge(ed); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidPassage, err, "edge %s->%s", e.Parent, e.Child)
		}
	}

	heads := doc.Heads
	if heads == nil {
		for _, id := range p.Units() {
			if len(p.Incoming(id)) == 0 {
				heads = append(heads, id)
			}
		}
	}
	for _, id := range heads {
		if p.IsTerminal(id) {
			return nil, errors.New(errors.ErrCodeInvalidPassage, "head %s is a terminal", id)
		}
		if err := p.AddHead(id); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidPassage, err, "head %s", id)
		}
	}

	return p, nil
}
