// internal/pipeline/pipeline.go
package pipeline

import (
	"context"
	"sync/atomic"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"golang.org/x/sync/errgroup"

	"heredity/internal/engine"
	"heredity/internal/metrics"
	"heredity/internal/pedigree"
	"heredity/internal/probs"
	"heredity/internal/telemetry"
)

// shards per worker; a few more than one keeps uneven shards from idling workers
const shardsPerThread = 4

// Config controls the inference pipeline.
type Config struct {
	Threads        int              // number of worker goroutines (>=1)
	MaxIndividuals int              // enumerator size limit; 0 = engine default
	Metrics        metrics.Recorder // optional
}

// Stats summarises one run.
type Stats struct {
	Individuals  int
	GeneSpace    uint64
	TraitSubsets int
	Rejected     uint64
	Scored       uint64
	Shards       int
	Elapsed      time.Duration
}

// Result is a normalised posterior plus run statistics.
type Result struct {
	Posterior *engine.Posterior
	Stats     Stats
}

// Run scores every evidence-consistent candidate for pd and returns the
// normalised posterior. It returns the first error encountered (including
// context cancellation).
func Run(ctx context.Context, cfg Config, t probs.Tables, pd *pedigree.Pedigree) (res Result, err error) {
	if cfg.Threads < 1 {
		cfg.Threads = 1
	}
	rec := cfg.Metrics
	if rec == nil {
		rec = (*metrics.Run)(nil)
	}
	start := time.Now()

	ctx, span := telemetry.Tracer("pipeline").Start(ctx, "pipeline.Run")
	defer func() {
		res.Stats.Elapsed = time.Since(start)
		rec.Done(res.Stats.Elapsed, err)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}()

	rec.Individuals(pd.Len())
	res.Stats.Individuals = pd.Len()

	en, err := engine.NewEnumerator(pd, cfg.MaxIndividuals)
	if err != nil {
		return res, err
	}
	res.Stats.GeneSpace = en.GeneSpace()
	res.Stats.TraitSubsets = en.TraitSubsets()
	res.Stats.Rejected = en.Rejected()
	rec.Plan(en.GeneSpace(), en.TraitSubsets(), en.Rejected())
	span.SetAttributes(
		attribute.Int("heredity.individuals", pd.Len()),
		attribute.Int64("heredity.gene_space", int64(en.GeneSpace())),
		attribute.Int("heredity.trait_subsets", en.TraitSubsets()),
	)

	ranges := Split(en.GeneSpace(), cfg.Threads*shardsPerThread)
	res.Stats.Shards = len(ranges)
	partials := make([]*engine.Posterior, len(ranges))
	var scored atomic.Uint64

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(cfg.Threads)
	for i, r := range ranges {
		g.Go(func() error {
			shardStart := time.Now()
			sc := engine.NewScorer(t, pd)
			if err := en.Walk(gctx, r.Lo, r.Hi, sc.Visit); err != nil {
				return err
			}
			partials[i] = sc.Posterior()
			scored.Add(sc.Scored)
			rec.Scored(sc.Scored)
			rec.Shard(time.Since(shardStart))
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return res, err
	}
	if err := ctx.Err(); err != nil {
		return res, err
	}
	res.Stats.Scored = scored.Load()

	post := engine.NewPosterior(pd)
	for _, p := range partials {
		if err := post.Merge(p); err != nil {
			return res, err
		}
	}
	if err := post.Normalize(); err != nil {
		return res, err
	}
	res.Posterior = post
	span.SetAttributes(attribute.Int64("heredity.scored", int64(res.Stats.Scored)))
	return res, nil
}

// Range is a half-open interval of gene labeling indices.
type Range struct{ Lo, Hi uint64 }

// Split cuts [0, total) into at most n contiguous, near-equal ranges.
func Split(total uint64, n int) []Range {
	if n < 1 {
		n = 1
	}
	if uint64(n) > total {
		n = int(total)
	}
	if n == 0 {
		return nil
	}
	out := make([]Range, 0, n)
	step, extra := total/uint64(n), total%uint64(n)
	lo := uint64(0)
	for i := 0; i < n; i++ {
		hi := lo + step
		if uint64(i) < extra {
			hi++
		}
		out = append(out, Range{Lo: lo, Hi: hi})
		lo = hi
	}
	return out
}
