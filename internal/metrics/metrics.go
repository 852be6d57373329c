// Package metrics exposes per-run inference counters through a private
// Prometheus registry. Nothing is served; the registry can be dumped to a
// node-exporter textfile after the run.
package metrics

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Recorder is what the pipeline reports into. A nil *Run is valid and drops
// everything.
type Recorder interface {
	Individuals(n int)
	Plan(geneSpace uint64, traitSubsets int, rejected uint64)
	Scored(n uint64)
	Shard(d time.Duration)
	Done(d time.Duration, err error)
}

// Run holds the collectors for one inference run.
type Run struct {
	reg *prometheus.Registry

	individuals  prometheus.Gauge
	geneSpace    prometheus.Gauge
	traitSubsets prometheus.Gauge
	rejected     prometheus.Counter
	scored       prometheus.Counter
	shards       prometheus.Histogram
	duration     prometheus.Histogram
	runs         *prometheus.CounterVec
}

// New registers a fresh set of collectors.
func New() *Run {
	r := &Run{
		reg: prometheus.NewRegistry(),
		individuals: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "heredity", Name: "pedigree_individuals",
			Help: "Individuals in the pedigree being scored.",
		}),
		geneSpace: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "heredity", Name: "gene_labelings",
			Help: "Gene labelings enumerated (3^n).",
		}),
		traitSubsets: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "heredity", Name: "trait_subsets",
			Help: "Trait subsets consistent with the evidence.",
		}),
		rejected: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "heredity", Name: "trait_subsets_rejected_total",
			Help: "Trait subsets dropped because they contradict known evidence.",
		}),
		scored: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "heredity", Name: "candidates_scored_total",
			Help: "Candidate assignments scored.",
		}),
		shards: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "heredity", Name: "shard_duration_seconds",
			Help:    "Wall time per enumeration shard.",
			Buckets: prometheus.ExponentialBuckets(0.001, 4, 10),
		}),
		duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "heredity", Name: "inference_duration_seconds",
			Help:    "Wall time of a whole inference run.",
			Buckets: prometheus.ExponentialBuckets(0.001, 4, 10),
		}),
		runs: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "heredity", Name: "runs_total",
			Help: "Inference runs by outcome.",
		}, []string{"status"}),
	}
	r.reg.MustRegister(r.individuals, r.geneSpace, r.traitSubsets, r.rejected,
		r.scored, r.shards, r.duration, r.runs)
	return r
}

// Registry exposes the underlying registry, mainly for tests.
func (r *Run) Registry() *prometheus.Registry { return r.reg }

func (r *Run) Individuals(n int) {
	if r == nil {
		return
	}
	r.individuals.Set(float64(n))
}

func (r *Run) Plan(geneSpace uint64, traitSubsets int, rejected uint64) {
	if r == nil {
		return
	}
	r.geneSpace.Set(float64(geneSpace))
	r.traitSubsets.Set(float64(traitSubsets))
	r.rejected.Add(float64(rejected))
}

func (r *Run) Scored(n uint64) {
	if r == nil {
		return
	}
	r.scored.Add(float64(n))
}

func (r *Run) Shard(d time.Duration) {
	if r == nil {
		return
	}
	r.shards.Observe(d.Seconds())
}

func (r *Run) Done(d time.Duration, err error) {
	if r == nil {
		return
	}
	r.duration.Observe(d.Seconds())
	status := "ok"
	if err != nil {
		status = "error"
	}
	r.runs.WithLabelValues(status).Inc()
}

// WriteFile dumps the registry in text exposition format.
func (r *Run) WriteFile(path string) error {
	if err := prometheus.WriteToTextfile(path, r.reg); err != nil {
		return fmt.Errorf("write metrics: %w", err)
	}
	return nil
}
