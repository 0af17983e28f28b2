// Package cli implements the uccalint command-line interface.
//
// # Commands
//
//   - validate: Check passage files and print diagnostics (exit status 1 if any)
//   - render: Draw a passage as DOT, SVG, PDF or PNG, optionally highlighting diagnostics
//   - browse: Step through diagnostics interactively
//   - serve: Run the HTTP API
//   - cache: Manage the local report cache
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging, which also
// surfaces validation and cache events. Loggers are passed through
// context.Context.
package cli

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"
)

// newLogger writes timestamped ("15:04:05.00") log lines to w at level and above.
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

// progress logs how long a command took, e.g. "Validated 3 passages (1.2s)".
type progress struct {
	logger *log.Logger
	start  time.Time
}

func newProgress(l *log.Logger) *progress {
	return &progress{logger: l, start: time.Now()}
}

func (p *progress) done(msg string) {
	p.logger.Infof("%s (%s)", msg, time.Since(p.start).Round(time.Millisecond))
}

type ctxKey int

const loggerKey ctxKey = 0

func withLogger(ctx context.Context, l *log.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, l)
}

// loggerFromContext returns the command logger, or log.Default() outside a
// command.
func loggerFromContext(ctx context.Context) *log.Logger {
	if l, ok := ctx.Value(loggerKey).(*log.Logger); ok {
		return l
	}
	return log.Default()
}

// logHooks reports validation and cache events at debug level.
type logHooks struct {
	logger *log.Logger
}

func (h *logHooks) OnValidateStart(_ context.Context, passageID string, nodes int) {
	h.logger.Debug("validating", "passage", passageID, "nodes", nodes)
}

func (h *logHooks) OnValidateComplete(_ context.Context, passageID string, diagnostics int, d time.Duration, err error) {
	if err != nil {
		h.logger.Debug("validation failed", "passage", passageID, "error", err)
		return
	}
	h.logger.Debug("validated", "passage", passageID, "diagnostics", diagnostics, "duration", d)
}

func (h *logHooks) OnRenderStart(_ context.Context, passageID, format string) {
	h.logger.Debug("rendering", "passage", passageID, "format", format)
}

func (h *logHooks) OnRenderComplete(_ context.Context, passageID, format string, d time.Duration, err error) {
	h.logger.Debug("rendered", "passage", passageID, "format", format, "duration", d, "error", err)
}

func (h *logHooks) OnCacheHit(_ context.Context, kind string) {
	h.logger.Debug("cache hit", "kind", kind)
}

func (h *logHooks) OnCacheMiss(_ context.Context, kind string) {
	h.logger.Debug("cache miss", "kind", kind)
}

func (h *logHooks) OnCacheSet(_ context.Context, kind string, size int) {
	h.logger.Debug("cache set", "kind", kind, "bytes", size)
}
