// Package observability lets callers observe validation runs, rendering,
// cache traffic and API requests without the libraries depending on a
// metrics or tracing backend.
//
// Hooks are process-wide. Register them once at startup; libraries fetch
// the current set on every event:
//
//	observability.SetValidationHooks(myHooks)
//
//	hooks := observability.Validation()
//	hooks.OnValidateStart(ctx, p.ID, p.NodeCount())
//
// Unregistered categories use the Noop implementations.
package observability

import (
	"context"
	"sync/atomic"
	"time"
)

// =============================================================================
// Validation Hooks
// =============================================================================

// ValidationHooks receives pipeline events. diagnostics is the number of
// diagnostics in the finished report.
type ValidationHooks interface {
	OnValidateStart(ctx context.Context, passageID string, nodeCount int)
	OnValidateComplete(ctx context.Context, passageID string, diagnostics int, duration time.Duration, err error)
	OnRenderStart(ctx context.Context, passageID, format string)
	OnRenderComplete(ctx context.Context, passageID, format string, duration time.Duration, err error)
}

// =============================================================================
// Cache Hooks
// =============================================================================

// CacheHooks receives cache events. kind is "report" or "artifact".
type CacheHooks interface {
	OnCacheHit(ctx context.Context, kind string)
	OnCacheMiss(ctx context.Context, kind string)
	OnCacheSet(ctx context.Context, kind string, size int)
}

// =============================================================================
// HTTP Hooks
// =============================================================================

// HTTPHooks receives API server events. OnError fires only for server
// faults (5xx), not for rejected input.
type HTTPHooks interface {
	OnRequest(ctx context.Context, method, path string)
	OnResponse(ctx context.Context, method, path string, status int, duration time.Duration)
	OnError(ctx context.Context, method, path string, err error)
}

// =============================================================================
// No-op Implementations
// =============================================================================

type NoopValidationHooks struct{}

func (NoopValidationHooks) OnValidateStart(context.Context, string, int) {}
func (NoopValidationHooks) OnValidateComplete(context.Context, string, int, time.Duration, error) {
}
func (NoopValidationHooks) OnRenderStart(context.Context, string, string) {}
func (NoopValidationHooks) OnRenderComplete(context.Context, string, string, time.Duration, error) {
}

type NoopCacheHooks struct{}

func (NoopCacheHooks) OnCacheHit(context.Context, string)      {}
func (NoopCacheHooks) OnCacheMiss(context.Context, string)     {}
func (NoopCacheHooks) OnCacheSet(context.Context, string, int) {}

type NoopHTTPHooks struct{}

func (NoopHTTPHooks) OnRequest(context.Context, string, string)                      {}
func (NoopHTTPHooks) OnResponse(context.Context, string, string, int, time.Duration) {}
func (NoopHTTPHooks) OnError(context.Context, string, string, error)                 {}

// =============================================================================
// Registry
// =============================================================================

// slot holds the registered hooks of one category.
type slot[H any] struct {
	p    atomic.Pointer[H]
	noop H
}

func (s *slot[H]) get() H {
	if h := s.p.Load(); h != nil {
		return *h
	}
	return s.noop
}

// set registers h; a nil h is ignored.
func (s *slot[H]) set(h H) {
	if any(h) == nil {
		return
	}
	s.p.Store(&h)
}

var (
	validationSlot = slot[ValidationHooks]{noop: NoopValidationHooks{}}
	cacheSlot      = slot[CacheHooks]{noop: NoopCacheHooks{}}
	httpSlot       = slot[HTTPHooks]{noop: NoopHTTPHooks{}}
)

func SetValidationHooks(h ValidationHooks) { validationSlot.set(h) }
func SetCacheHooks(h CacheHooks)           { cacheSlot.set(h) }
func SetHTTPHooks(h HTTPHooks)             { httpSlot.set(h) }

// Validation returns the hooks for validation and render events.
func Validation() ValidationHooks { return validationSlot.get() }

// Cache returns the hooks for cache lookups and writes.
func Cache() CacheHooks { return cacheSlot.get() }

// HTTP returns the hooks for API requests.
func HTTP() HTTPHooks { return httpSlot.get() }

// Reset restores the no-op hooks in every category.
func Reset() {
	validationSlot.p.Store(nil)
	cacheSlot.p.Store(nil)
	httpSlot.p.Store(nil)
}
