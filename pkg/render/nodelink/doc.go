// Package nodelink renders passages as node-link diagrams.
//
// # Overview
//
// A passage is drawn top to bottom: units as small circles, terminals as
// plain text along the bottom rank in sentence order, and edges labelled
// with their tags. Remote edges are dashed.
//
// # Usage
//
// Convert a passage to DOT format, then render to SVG:
//
//	dot := nodelink.ToDOT(p, nodelink.Options{NodeIDs: true})
//	svg, err := nodelink.RenderSVG(ctx, dot)
//
// Nodes reported by a validation run can be emphasised:
//
//	var ids []string
//	for d := range validation.Validate(p, validation.DefaultOptions()) {
//	    ids = append(ids, d.Node)
//	}
//	dot := nodelink.ToDOT(p, nodelink.Options{Highlight: ids})
//
// For PDF or PNG output, use [RenderPDF] or [RenderPNG].
//
// # Dependencies
//
// This package uses [github.com/goccy/go-graphviz] for in-process SVG
// rendering. PDF and PNG conversion requires librsvg (rsvg-convert).
package nodelink
