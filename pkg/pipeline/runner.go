package pipeline

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/matzehuels/uccalint/pkg/cache"
	"github.com/matzehuels/uccalint/pkg/errors"
	uccaio "github.com/matzehuels/uccalint/pkg/io"
	"github.com/matzehuels/uccalint/pkg/observability"
	"github.com/matzehuels/uccalint/pkg/passage"
	"github.com/matzehuels/uccalint/pkg/store"
	"github.com/matzehuels/uccalint/pkg/validation"
)

// Runner executes validation and rendering with caching.
//
// The Runner holds no per-run state; multiple goroutines can share one.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger

	// Store persists every fresh or cached report when non-nil.
	Store store.ReportStore

	// TTL is the cache lifetime of reports and artifacts.
	TTL time.Duration
}

// NewRunner creates a runner with the given cache and keyer.
// A nil keyer uses [cache.DefaultKeyer]; a nil cache disables caching.
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
		TTL:    cache.TTLReport,
	}
}

// Hash returns the content hash of a passage's canonical encoding.
func Hash(p *passage.Passage) (string, error) {
	data, err := uccaio.Marshal(p)
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeInternal, err, "encode passage %s", p.ID)
	}
	return cache.Hash(data), nil
}

// Validate checks p and returns its report. Structural problems are
// diagnostics in the report; the error is reserved for bad options and
// infrastructure failures.
func (r *Runner) Validate(ctx context.Context, p *passage.Passage, opts Options) (rep *Report, err error) {
	if p == nil {
		return nil, errors.New(errors.ErrCodeInvalidInput, "nil passage")
	}
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	hooks := observability.Validation()
	hooks.OnValidateStart(ctx, p.ID, p.NodeCount())
	start := time.Now()
	defer func() {
		n := 0
		if rep != nil {
			n = len(rep.Diagnostics)
		}
		hooks.OnValidateComplete(ctx, p.ID, n, time.Since(start), err)
	}()

	hash, err := Hash(p)
	if err != nil {
		return nil, err
	}
	key := r.Keyer.ReportKey(hash, opts.ReportKeyOpts())

	if !opts.Refresh {
		if cached, ok := r.lookup(ctx, key); ok {
			cached.ID = uuid.NewString()
			cached.Cached = true
			cached.Duration = time.Since(start)
			cached.CreatedAt = time.Now().UTC()
			r.persist(ctx, cached)
			r.Logger.Debug("report from cache", "report", cached.Summary())
			return cached, nil
		}
	}

	seq := validation.Validate(p, opts.Validation)
	var diags []validation.Diagnostic
	truncated := false
	if opts.MaxDiagnostics > 0 {
		diags, truncated = validation.First(seq, opts.MaxDiagnostics)
	} else {
		diags = validation.Collect(seq)
	}
	if diags == nil {
		diags = []validation.Diagnostic{}
	}

	rep = &Report{
		ID:          uuid.NewString(),
		PassageID:   p.ID,
		Hash:        hash,
		Valid:       len(diags) == 0,
		Diagnostics: diags,
		Truncated:   truncated,
		Options:     opts.Validation,
		Duration:    time.Since(start),
		CreatedAt:   time.Now().UTC(),
	}

	r.Logger.Info("validated passage",
		"passage", p.ID,
		"nodes", p.NodeCount(),
		"diagnostics", len(diags),
		"truncated", truncated,
		"duration", rep.Duration)

	r.save(ctx, key, rep)
	r.persist(ctx, rep)
	return rep, nil
}

func (r *Runner) lookup(ctx context.Context, key string) (*Report, bool) {
	data, hit, err := r.Cache.Get(ctx, key)
	if err != nil {
		r.Logger.Warn("cache lookup failed", "error", err)
		return nil, false
	}
	if !hit {
		observability.Cache().OnCacheMiss(ctx, "report")
		return nil, false
	}
	var rep Report
	if err := json.Unmarshal(data, &rep); err != nil {
		r.Logger.Warn("discarding corrupt cached report", "error", err)
		_ = r.Cache.Delete(ctx, key)
		return nil, false
	}
	observability.Cache().OnCacheHit(ctx, "report")
	return &rep, true
}

func (r *Runner) save(ctx context.Context, key string, rep *Report) {
	data, err := json.Marshal(rep)
	if err != nil {
		return
	}
	if err := r.Cache.Set(ctx, key, data, r.TTL); err != nil {
		r.Logger.Warn("cache store failed", "error", err)
		return
	}
	observability.Cache().OnCacheSet(ctx, "report", len(data))
}

func (r *Runner) persist(ctx context.Context, rep *Report) {
	if r.Store == nil {
		return
	}
	if err := r.Store.Save(ctx, rep.Record()); err != nil {
		r.Logger.Warn("persist report failed", "report", rep.ID, "error", err)
	}
}

// Close releases the cache and the store.
func (r *Runner) Close() error {
	var errs []error
	if r.Cache != nil {
		errs = append(errs, r.Cache.Close())
	}
	if r.Store != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		errs = append(errs, r.Store.Close(ctx))
	}
	return stderrors.Join(errs...)
}
