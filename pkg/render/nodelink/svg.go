package nodelink

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/uccalint/pkg/render"
)

// RenderSVG lays out a DOT graph with the embedded Graphviz engine and
// returns a scalable SVG document.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("start graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse dot: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("layout: %w", err)
	}
	return fitSVG(buf.Bytes()), nil
}

// RenderPDF renders DOT to SVG and converts it with rsvg-convert.
func RenderPDF(ctx context.Context, dot string) ([]byte, error) {
	svg, err := RenderSVG(ctx, dot)
	if err != nil {
		return nil, err
	}
	return render.ToPDF(ctx, svg)
}

// RenderPNG renders DOT to SVG and rasterizes it at the given zoom.
func RenderPNG(ctx context.Context, dot string, zoom float64) ([]byte, error) {
	svg, err := RenderSVG(ctx, dot)
	if err != nil {
		return nil, err
	}
	return render.ToPNG(ctx, svg, zoom)
}

var (
	svgOpenRe = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// fitSVG replaces Graphviz's point-sized root element with one sized in
// user units from the viewBox, so browsers scale the diagram.
func fitSVG(svg []byte) []byte {
	m := viewBoxRe.FindSubmatch(svg)
	if m == nil {
		return svg
	}
	w, errW := strconv.ParseFloat(string(m[3]), 64)
	h, errH := strconv.ParseFloat(string(m[4]), 64)
	if errW != nil || errH != nil || w <= 0 || h <= 0 {
		return svg
	}
	root := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`, w, h, w, h)
	return svgOpenRe.ReplaceAll(svg, []byte(root))
}
