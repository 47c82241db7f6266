package metrics

import (
	"context"
	"runtime"
	"strings"
	"sync"

	"github.com/rotisserie/eris"
	"golang.org/x/sync/errgroup"

	"github.com/sells-group/adreport/internal/model"
)

// AggregateParallel computes the same output as Aggregate by reducing
// contiguous partitions of the input concurrently and merging the per-group
// sums before ratios are derived. Sum and count reduction is commutative and
// associative, so the merge is exact. workers <= 0 uses GOMAXPROCS.
func AggregateParallel(ctx context.Context, records []model.CampaignRecord, dims []Dimension, opts Options, workers int) ([]AggregateRow, error) {
	if len(dims) == 0 {
		return nil, eris.New("metrics: at least one grouping dimension is required")
	}
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	if workers > len(records) {
		workers = len(records)
	}
	if workers <= 1 {
		return Aggregate(records, dims, opts)
	}

	chunk := (len(records) + workers - 1) / workers

	g, _ := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	var mu sync.Mutex
	partials := make([][]*group, 0, workers)

	for start := 0; start < len(records); start += chunk {
		end := start + chunk
		if end > len(records) {
			end = len(records)
		}
		start, end := start, end
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return eris.Wrap(err, "metrics: parallel aggregate cancelled")
			}
			part := reduce(records[start:end], start, dims, opts.Filter)
			mu.Lock()
			partials = append(partials, part)
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return finish(mergeGroups(partials), opts)
}

// mergeGroups combines per-partition sums for identical key tuples. The
// merged firstIdx is the minimum across partitions, preserving the
// first-encountered tie-break order of the sequential reduction.
func mergeGroups(partials [][]*group) []*group {
	var merged []*group
	index := make(map[string]*group)

	for _, part := range partials {
		for _, pg := range part {
			key := strings.Join(pg.key, keySep)
			g, ok := index[key]
			if !ok {
				g = &group{key: pg.key, firstIdx: pg.firstIdx}
				index[key] = g
				merged = append(merged, g)
				g.count = pg.count
				g.cost = pg.cost
				g.impressions = pg.impressions
				g.clicks = pg.clicks
				g.signups = pg.signups
				continue
			}
			if pg.firstIdx < g.firstIdx {
				g.firstIdx = pg.firstIdx
			}
			g.count += pg.count
			g.cost += pg.cost
			g.impressions += pg.impressions
			g.clicks += pg.clicks
			g.signups += pg.signups
		}
	}
	return merged
}
