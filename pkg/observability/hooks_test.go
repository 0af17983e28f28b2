package observability

import (
	"context"
	"sync"
	"testing"
	"time"
)

type countingHooks struct {
	NoopValidationHooks
	NoopCacheHooks

	mu     sync.Mutex
	starts int
	hits   map[string]int
}

func (h *countingHooks) OnValidateStart(context.Context, string, int) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.starts++
}

func (h *countingHooks) OnCacheHit(_ context.Context, kind string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.hits == nil {
		h.hits = map[string]int{}
	}
	h.hits[kind]++
}

func TestDefaultsAreNoop(t *testing.T) {
	Reset()
	ctx := context.Background()

	if _, ok := Validation().(NoopValidationHooks); !ok {
		t.Errorf("Validation() = %T, want NoopValidationHooks", Validation())
	}
	if _, ok := Cache().(NoopCacheHooks); !ok {
		t.Errorf("Cache() = %T, want NoopCacheHooks", Cache())
	}
	if _, ok := HTTP().(NoopHTTPHooks); !ok {
		t.Errorf("HTTP() = %T, want NoopHTTPHooks", HTTP())
	}

	Validation().OnValidateComplete(ctx, "120", 3, time.Millisecond, nil)
	Validation().OnRenderComplete(ctx, "120", "svg", time.Millisecond, nil)
	Cache().OnCacheSet(ctx, "report", 1024)
	HTTP().OnResponse(ctx, "POST", "/api/v1/validate", 200, time.Millisecond)
	HTTP().OnError(ctx, "POST", "/api/v1/validate", nil)
}

func TestRegisterAndReset(t *testing.T) {
	t.Cleanup(Reset)
	ctx := context.Background()

	h := &countingHooks{}
	SetValidationHooks(h)
	SetCacheHooks(h)
	SetHTTPHooks(NoopHTTPHooks{})

	Validation().OnValidateStart(ctx, "120", 4)
	Cache().OnCacheHit(ctx, "report")
	Cache().OnCacheHit(ctx, "report")
	Cache().OnCacheHit(ctx, "artifact")

	if h.starts != 1 {
		t.Errorf("starts = %d, want 1", h.starts)
	}
	if h.hits["report"] != 2 || h.hits["artifact"] != 1 {
		t.Errorf("hits = %v, want report:2 artifact:1", h.hits)
	}

	SetValidationHooks(nil)
	if Validation() != ValidationHooks(h) {
		t.Error("SetValidationHooks(nil) replaced the registered hooks")
	}

	Reset()
	if _, ok := Cache().(NoopCacheHooks); !ok {
		t.Errorf("after Reset, Cache() = %T", Cache())
	}
}

func TestConcurrentAccess(t *testing.T) {
	t.Cleanup(Reset)
	h := &countingHooks{}

	var wg sync.WaitGroup
	for i := range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if i%2 == 0 {
				SetValidationHooks(h)
			}
			Validation().OnValidateStart(context.Background(), "p", 1)
		}()
	}
	wg.Wait()
}
