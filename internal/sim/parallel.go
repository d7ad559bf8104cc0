package sim

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/san-kum/algoviz/internal/algorithms"
	"github.com/san-kum/algoviz/internal/input"
)

// Job is one generation in an ensemble. Metrics must not be shared between
// jobs.
type Job struct {
	Generator algorithms.Generator
	Input     input.Input
	Metrics   []Metric
}

// GenerateAll runs every job concurrently and returns results in job order.
// The first failure cancels the rest.
func GenerateAll(ctx context.Context, jobs []Job) ([]*Result, error) {
	results := make([]*Result, len(jobs))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, job := range jobs {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			res, err := Generate(job.Generator, job.Input, job.Metrics)
			if err != nil {
				return err
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
