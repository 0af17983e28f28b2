package pipeline

import (
	"context"
	"time"

	"github.com/matzehuels/uccalint/pkg/errors"
	"github.com/matzehuels/uccalint/pkg/observability"
	"github.com/matzehuels/uccalint/pkg/passage"
	"github.com/matzehuels/uccalint/pkg/render/nodelink"
	"github.com/matzehuels/uccalint/pkg/validation"
)

// Render draws p as a node-link diagram in the requested format. Rendered
// artifacts are cached by passage hash and render options.
func (r *Runner) Render(ctx context.Context, p *passage.Passage, opts RenderOptions) (data []byte, err error) {
	if p == nil {
		return nil, errors.New(errors.ErrCodeInvalidInput, "nil passage")
	}
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	hooks := observability.Validation()
	hooks.OnRenderStart(ctx, p.ID, opts.Format)
	start := time.Now()
	defer func() {
		hooks.OnRenderComplete(ctx, p.ID, opts.Format, time.Since(start), err)
	}()

	var highlight []string
	if opts.Highlight {
		rep := Report{Diagnostics: validation.Collect(validation.Validate(p, opts.Validation))}
		highlight = rep.Nodes()
	}

	hash, err := Hash(p)
	if err != nil {
		return nil, err
	}
	key := r.Keyer.ArtifactKey(hash, opts.ArtifactKeyOpts(highlight))
	if cached, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
		observability.Cache().OnCacheHit(ctx, "artifact")
		return cached, nil
	}
	observability.Cache().OnCacheMiss(ctx, "artifact")

	dot := nodelink.ToDOT(p, nodelink.Options{NodeIDs: opts.NodeIDs, Highlight: highlight})
	switch opts.Format {
	case FormatDOT:
		data = []byte(dot)
	case FormatSVG:
		data, err = nodelink.RenderSVG(ctx, dot)
	case FormatPDF:
		data, err = nodelink.RenderPDF(ctx, dot)
	case FormatPNG:
		data, err = nodelink.RenderPNG(ctx, dot, opts.Scale)
	}
	if err != nil {
		return nil, err
	}

	if err := r.Cache.Set(ctx, key, data, r.TTL); err == nil {
		observability.Cache().OnCacheSet(ctx, "artifact", len(data))
	}
	r.Logger.Info("rendered passage",
		"passage", p.ID,
		"format", opts.Format,
		"highlighted", len(highlight),
		"bytes", len(data))
	return data, nil
}
