// Package render provides visualization output for passages.
//
// # Overview
//
// Diagrams are produced as SVG by the [nodelink] subpackage. This package
// holds the format conversions shared by every renderer.
//
// # Format Conversion
//
// The [ToPDF] and [ToPNG] functions convert any SVG to other formats using
// the external rsvg-convert tool (from librsvg). When the tool is missing
// they return an UNSUPPORTED error.
//
//	dot := nodelink.ToDOT(p, nodelink.Options{})
//	svg, err := nodelink.RenderSVG(ctx, dot)
//	pdf, err := render.ToPDF(ctx, svg)
//
// [nodelink]: github.com/matzehuels/uccalint/pkg/render/nodelink
package render
