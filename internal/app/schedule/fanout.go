package schedule

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// gather runs fn for each of n slots concurrently and flattens the results
// in slot order, so the output is stable regardless of completion order. Any
// failing slot fails the whole call; no partial result is returned.
func gather(ctx context.Context, n int, fn func(ctx context.Context, i int) ([]Program, error)) ([]Program, error) {
	results := make([][]Program, n)

	g, ctx := errgroup.WithContext(ctx)
	for i := 0; i < n; i++ {
		i := i
		g.Go(func() error {
			programs, err := fn(ctx, i)
			if err != nil {
				return err
			}
			results[i] = programs
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var programs []Program
	for _, r := range results {
		programs = append(programs, r...)
	}
	return programs, nil
}
