package io

import (
	"bytes"
	"encoding/json"
	"io"
	"os"

	"github.com/matzehuels/uccalint/pkg/errors"
	"github.com/matzehuels/uccalint/pkg/passage"
)

func toDocument(p *passage.Passage) document {
	doc := document{
		ID:    p.ID,
		Nodes: make([]node, 0, p.NodeCount()),
		Heads: append([]string(nil), p.Heads()...),
	}
	for _, layer := range []string{passage.TerminalLayerID, passage.StructuralLayerID} {
		for _, id := range p.Layer(layer).All() {
			n, _ := p.Node(id)
			nd := node{
				ID:       n.ID,
				Layer:    n.Layer,
				Tag:      string(n.Tag),
				Text:     n.Text,
				Position: n.Position,
				Implicit: n.Implicit,
				TreeID:   n.TreeID,
			}
			if len(n.Meta) > 0 {
				nd.Meta = n.Meta
			}
			doc.Nodes = append(doc.Nodes, nd)
		}
	}

	edges := p.Edges()
	doc.Edges = make([]edge, len(edges))
	for i, e := range edges {
		tags := make([]string, len(e.Tags))
		for j, t := range e.Tags {
			tags[j] = t.String()
		}
		doc.Edges[i] = edge{Parent: e.Parent, Child: e.Child, Tags: tags, Remote: e.Remote}
	}
	return doc
}

// WriteJSON encodes a passage as indented JSON and writes it to w.
// The output can be re-imported with [ReadJSON].
func WriteJSON(p *passage.Passage, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(toDocument(p)); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "encode passage")
	}
	return nil
}

// ExportJSON writes a passage to a JSON file at path.
// This is a convenience wrapper around [WriteJSON] for file-based output.
func ExportJSON(p *passage.Passage, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInvalidPath, err, "create %s", path)
	}
	defer f.Close()
	return WriteJSON(p, f)
}

// Marshal returns the compact canonical encoding of p. Two passages with
// the same nodes, edges and heads in the same order marshal identically,
// which makes the result suitable for content hashing.
func Marshal(p *passage.Passage) ([]byte, error) {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(toDocument(p)); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "encode passage")
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}
