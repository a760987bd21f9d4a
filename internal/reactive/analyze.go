package reactive

import (
	"context"
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"

	"prism/internal/env"
	"prism/internal/hir"
)

// AnalyzeAll validates and analyzes many functions against one immutable
// environment snapshot. Analyses of different functions are independent, so
// they run in parallel up to jobs goroutines (GOMAXPROCS when jobs <= 0).
// The first failure cancels the remaining work.
func AnalyzeAll(ctx context.Context, environ *env.Environment, fns []*hir.Func, jobs int) ([]*Result, error) {
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	results := make([]*Result, len(fns))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, max(len(fns), 1)))

	for i, fn := range fns {
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}

			if err := hir.Validate(fn); err != nil {
				return fmt.Errorf("function %s: %w", fn.Name, err)
			}
			res, err := Infer(fn, environ)
			if err != nil {
				return fmt.Errorf("function %s: %w", fn.Name, err)
			}
			results[i] = res
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
