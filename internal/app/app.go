// internal/app/app.go
package app

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"heredity/internal/cli"
	"heredity/internal/config"
	"heredity/internal/engine"
	"heredity/internal/logging"
	"heredity/internal/metrics"
	"heredity/internal/pedigree"
	"heredity/internal/pipeline"
	"heredity/internal/probs"
	"heredity/internal/runutil"
	"heredity/internal/telemetry"
	"heredity/internal/version"
	"heredity/internal/writers"
)

// Exit codes.
const (
	ExitOK        = 0
	ExitUsage     = 2 // bad flags, unreadable or invalid input
	ExitFailure   = 3 // inference or output failure
	ExitCancelled = 130
)

// RunContext is the whole CLI: parse argv, load, infer, write.
func RunContext(parent context.Context, argv []string, stdout, stderr io.Writer) int {
	env, err := config.Load()
	if err != nil {
		_, _ = fmt.Fprintln(stderr, err)
		return ExitUsage
	}
	return RunWithEnv(parent, argv, env, stdout, stderr)
}

// RunWithEnv is RunContext with explicit environment defaults.
func RunWithEnv(parent context.Context, argv []string, env config.Env, stdout, stderr io.Writer) int {
	outw := bufio.NewWriter(stdout)
	defer func() { _ = outw.Flush() }()

	fs := cli.NewFlagSet("heredity")
	fs.SetOutput(io.Discard)

	opts, err := cli.ParseArgs(fs, argv, env)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			fs.SetOutput(outw)
			fs.Usage()
			return flushed(outw, stderr, ExitOK)
		}
		_, _ = fmt.Fprintln(stderr, err)
		fs.SetOutput(stderr)
		fs.Usage()
		return ExitUsage
	}

	if opts.Version {
		_, _ = fmt.Fprintf(outw, "heredity version %s\n", version.Version)
		return flushed(outw, stderr, ExitOK)
	}

	log, err := logging.Configure(logging.Options{Level: opts.LogLevel, JSON: opts.LogJSON, Out: stderr})
	if err != nil {
		_, _ = fmt.Fprintln(stderr, err)
		return ExitUsage
	}

	shutdown, err := telemetry.Setup(parent, opts.OtelEndpoint)
	if err != nil {
		log.WithError(err).Warn("tracing disabled")
	}
	defer func() {
		if err := shutdown(context.Background()); err != nil {
			log.WithError(err).Warn("flush traces")
		}
	}()

	ctx, span := telemetry.Tracer("app").Start(parent, "heredity")
	defer span.End()

	tables := probs.Default()
	if opts.Tables != "" {
		if tables, err = probs.LoadYAML(opts.Tables); err != nil {
			log.WithError(err).Error("load probability tables")
			return ExitUsage
		}
	}

	pd, source, err := loadPedigree(ctx, opts)
	if err != nil {
		log.WithError(err).Error("load pedigree")
		return ExitUsage
	}

	threads := runutil.EffectiveThreads(opts.Threads)
	log.WithFields(logrus.Fields{
		"source":      source,
		"individuals": pd.Len(),
		"founders":    pd.Founders(),
		"evidence":    pd.Evidence(),
		"threads":     threads,
	}).Info("pedigree loaded")
	for _, w := range runutil.PlanWarnings(pd.Len(), pd.Evidence(), threads) {
		log.Warn(w)
	}

	var rec *metrics.Run
	if opts.MetricsFile != "" {
		rec = metrics.New()
	}
	res, err := pipeline.Run(ctx, pipeline.Config{
		Threads:        threads,
		MaxIndividuals: opts.MaxIndividuals,
		Metrics:        rec,
	}, tables, pd)
	if rec != nil {
		if werr := rec.WriteFile(opts.MetricsFile); werr != nil {
			log.WithError(werr).Warn("metrics not written")
		}
	}
	if err != nil {
		switch {
		case errors.Is(err, context.Canceled):
			return ExitCancelled
		case errors.Is(err, engine.ErrPedigreeTooLarge):
			log.WithError(err).Error("inference refused")
			return ExitUsage
		}
		log.WithError(err).Error("inference failed")
		return ExitFailure
	}
	log.WithFields(logrus.Fields{
		"scored":  res.Stats.Scored,
		"shards":  res.Stats.Shards,
		"elapsed": res.Stats.Elapsed,
	}).Info("inference complete")

	runID := opts.RunID
	if runID == "" {
		runID = uuid.NewString()
	}
	werr := writers.Write(opts.Output, outw, writers.Report{
		RunID:     runID,
		Source:    source,
		Scored:    res.Stats.Scored,
		Marginals: res.Posterior.Marginals(),
		Precision: opts.Precision,
		Header:    opts.Header,
		Sort:      opts.Sort,
	})
	if writers.IsBrokenPipe(werr) {
		return ExitOK
	} else if werr != nil {
		log.WithError(werr).Error("write output")
		return ExitFailure
	}
	return flushed(outw, stderr, ExitOK)
}

// Run is RunContext with a background context.
func Run(argv []string, stdout, stderr io.Writer) int {
	return RunContext(context.Background(), argv, stdout, stderr)
}

func loadPedigree(ctx context.Context, opts cli.Options) (*pedigree.Pedigree, string, error) {
	if opts.SQLite != "" {
		pd, err := pedigree.LoadSQLite(ctx, opts.SQLite, opts.Table)
		return pd, opts.SQLite + "#" + opts.Table, err
	}
	pd, err := pedigree.LoadCSV(opts.DataFile)
	return pd, opts.DataFile, err
}

// flushed flushes outw and maps the result to an exit code.
func flushed(outw *bufio.Writer, stderr io.Writer, code int) int {
	if err := outw.Flush(); writers.IsBrokenPipe(err) {
		return ExitOK
	} else if err != nil {
		_, _ = fmt.Fprintln(stderr, err)
		return ExitFailure
	}
	return code
}
