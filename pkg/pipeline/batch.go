package pipeline

import (
	"context"
	"sync"

	uccaio "github.com/matzehuels/uccalint/pkg/io"
)

const workers = 8

// FileResult is the outcome for one file of a batch.
type FileResult struct {
	Path   string
	Report *Report
	Err    error
}

// ValidateFiles imports and validates every path using a fixed worker pool.
// Results are returned in input order. A failure on one file does not stop
// the others; cancelling ctx marks unprocessed files with ctx.Err().
func (r *Runner) ValidateFiles(ctx context.Context, paths []string, opts Options) []FileResult {
	results := make([]FileResult, len(paths))
	jobs := make(chan int)

	var wg sync.WaitGroup
	for range min(workers, len(paths)) {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				results[i] = r.validateFile(ctx, paths[i], opts)
			}
		}()
	}

	for i := range paths {
		jobs <- i
	}
	close(jobs)
	wg.Wait()
	return results
}

func (r *Runner) validateFile(ctx context.Context, path string, opts Options) FileResult {
	res := FileResult{Path: path}
	if err := ctx.Err(); err != nil {
		res.Err = err
		return res
	}
	p, err := uccaio.ImportJSON(path)
	if err != nil {
		res.Err = err
		return res
	}
	res.Report, res.Err = r.Validate(ctx, p, opts)
	return res
}
