// Package pipeline runs validation and rendering with caching, persistence
// and observability hooks. Both the CLI and the HTTP server go through a
// [Runner] so that cache keys and report shapes stay identical.
package pipeline

import (
	"fmt"
	"time"

	"github.com/matzehuels/uccalint/pkg/cache"
	"github.com/matzehuels/uccalint/pkg/errors"
	"github.com/matzehuels/uccalint/pkg/store"
	"github.com/matzehuels/uccalint/pkg/validation"
)

// Output formats for [Runner.Render].
const (
	FormatDOT = "dot"
	FormatSVG = "svg"
	FormatPNG = "png"
	FormatPDF = "pdf"
)

// ValidFormats is the set of supported render formats.
var ValidFormats = map[string]bool{
	FormatDOT: true,
	FormatSVG: true,
	FormatPNG: true,
	FormatPDF: true,
}

// ValidateFormat checks that a format is supported.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errors.New(errors.ErrCodeInvalidInput, "invalid format: %q (must be one of: dot, svg, png, pdf)", format)
	}
	return nil
}

// =============================================================================
// Options
// =============================================================================

// Options configures a validation run.
type Options struct {
	Validation validation.Options `json:"validation"`

	// MaxDiagnostics caps the report. Zero reports everything.
	MaxDiagnostics int `json:"max_diagnostics,omitempty"`

	// Refresh bypasses the cache lookup; the fresh report is still stored.
	Refresh bool `json:"refresh,omitempty"`
}

// DefaultOptions returns the validator defaults with no cap.
func DefaultOptions() Options {
	return Options{Validation: validation.DefaultOptions()}
}

// Validate checks option ranges.
func (o Options) Validate() error {
	if o.MaxDiagnostics < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "max diagnostics must not be negative: %d", o.MaxDiagnostics)
	}
	return nil
}

// ReportKeyOpts returns the cache key options for this run.
func (o Options) ReportKeyOpts() cache.ReportKeyOpts {
	return cache.ReportKeyOpts{
		Linkage:        o.Validation.Linkage,
		Multigraph:     o.Validation.Multigraph,
		MaxDiagnostics: o.MaxDiagnostics,
	}
}

// RenderOptions configures [Runner.Render].
type RenderOptions struct {
	Format  string  `json:"format"`
	NodeIDs bool    `json:"node_ids,omitempty"`
	Scale   float64 `json:"scale,omitempty"`

	// Highlight draws the nodes named by diagnostics in red. Validation runs
	// with the Validation options.
	Highlight  bool               `json:"highlight,omitempty"`
	Validation validation.Options `json:"validation"`
}

// Validate fills defaults and checks the format.
func (o *RenderOptions) Validate() error {
	if o.Format == "" {
		o.Format = FormatSVG
	}
	if o.Scale <= 0 {
		o.Scale = 2
	}
	return ValidateFormat(o.Format)
}

// ArtifactKeyOpts returns the cache key options for a render highlighting
// the given nodes. Scale only affects raster output.
func (o RenderOptions) ArtifactKeyOpts(highlight []string) cache.ArtifactKeyOpts {
	k := cache.ArtifactKeyOpts{
		Format:    o.Format,
		NodeIDs:   o.NodeIDs,
		Highlight: highlight,
	}
	if o.Format == FormatPNG {
		k.Scale = o.Scale
	}
	return k
}

// =============================================================================
// Report
// =============================================================================

// Report is the outcome of validating one passage.
type Report struct {
	ID          string                  `json:"id"`
	PassageID   string                  `json:"passage_id"`
	Hash        string                  `json:"hash"`
	Valid       bool                    `json:"valid"`
	Diagnostics []validation.Diagnostic `json:"diagnostics"`

	// Truncated is set when MaxDiagnostics cut the list short.
	Truncated bool `json:"truncated,omitempty"`

	// Cached is set when the diagnostics came from the cache.
	Cached bool `json:"cached"`

	Options   validation.Options `json:"options"`
	Duration  time.Duration      `json:"duration_ns"`
	CreatedAt time.Time          `json:"created_at"`
}

// Nodes returns the distinct node IDs named by diagnostics, in report order.
func (r *Report) Nodes() []string {
	seen := make(map[string]bool)
	var out []string
	for _, d := range r.Diagnostics {
		if d.Node == "" || seen[d.Node] {
			continue
		}
		seen[d.Node] = true
		out = append(out, d.Node)
	}
	return out
}

// Summary returns a one-line description.
func (r *Report) Summary() string {
	if r.Valid {
		return fmt.Sprintf("%s: valid", r.PassageID)
	}
	more := ""
	if r.Truncated {
		more = "+"
	}
	return fmt.Sprintf("%s: %d%s diagnostics", r.PassageID, len(r.Diagnostics), more)
}

// Record converts the report for persistence.
func (r *Report) Record() *store.Record {
	return &store.Record{
		ID:          r.ID,
		PassageID:   r.PassageID,
		Hash:        r.Hash,
		Valid:       r.Valid,
		Truncated:   r.Truncated,
		Options:     r.Options,
		Diagnostics: r.Diagnostics,
		CreatedAt:   r.CreatedAt,
	}
}
