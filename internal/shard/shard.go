// Package shard splits index ranges across workers.
//
// Every caller writes into a buffer indexed by shard number, so results
// can be concatenated in shard order regardless of which worker finished
// first.
package shard

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// Range is a half-open range of indices.
type Range struct {
	Start int
	End   int
}

// Len returns the number of indices in the range.
func (r Range) Len() int {
	return r.End - r.Start
}

// Ranges splits n indices into at most k contiguous ranges of near-equal
// size. Zero indices yield no ranges; k below 1 is treated as 1.
func Ranges(n, k int) []Range {
	if n <= 0 {
		return nil
	}
	if k < 1 {
		k = 1
	}
	if k > n {
		k = n
	}

	ranges := make([]Range, 0, k)
	size := n / k
	rem := n % k
	start := 0
	for i := 0; i < k; i++ {
		end := start + size
		if i < rem {
			end++
		}
		ranges = append(ranges, Range{Start: start, End: end})
		start = end
	}
	return ranges
}

// Run calls fn once per range concurrently and waits for all of them.
// The context passed to fn is cancelled when any call fails or when ctx
// is cancelled. fn receives the shard number so it can write to its own
// buffer.
func Run(ctx context.Context, n, k int, fn func(ctx context.Context, shard int, r Range) error) error {
	return RunLimit(ctx, n, k, k, fn)
}

// RunLimit is Run with at most limit ranges in flight at once. A limit
// below 1 means no limit.
func RunLimit(ctx context.Context, n, k, limit int, fn func(ctx context.Context, shard int, r Range) error) error {
	ranges := Ranges(n, k)

	g, gctx := errgroup.WithContext(ctx)
	if limit > 0 {
		g.SetLimit(limit)
	}
	for i, r := range ranges {
		g.Go(func() error {
			return fn(gctx, i, r)
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}
	return ctx.Err()
}
