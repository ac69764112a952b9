// Package app wires the configuration, the pipeline and the stream loop of the rangler
// command line.
package app

import (
	"context"
	"fmt"
	"io"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/askiada/rangler/internal/config"
	"github.com/askiada/rangler/internal/logger"
	"github.com/askiada/rangler/pkg/pipeline"
	"github.com/askiada/rangler/pkg/pipeline/drawer"
	"github.com/askiada/rangler/pkg/pipeline/measure"
	"github.com/askiada/rangler/pkg/pipeline/model"
	"github.com/askiada/rangler/pkg/progress"
	"github.com/askiada/rangler/pkg/runner"
	"github.com/askiada/rangler/pkg/stream"
)

// Exit codes returned by Run.
const (
	ExitOK      = 0
	ExitRuntime = 1
	ExitUsage   = 2
)

// Run executes the command line with args, without the program name, and returns the exit
// code. Lines are read from stdin and written to stdout. Logs, errors and usage go to stderr.
func Run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	cfg, tokens, err := config.Load(args)
	if err != nil {
		if errors.Is(err, config.ErrHelp) {
			fmt.Fprint(stderr, Usage())

			return ExitOK
		}
		printError(stderr, err)

		return ExitUsage
	}

	log := logger.New(cfg.Log, stderr).With().Str("run_id", uuid.NewString()).Logger()

	var msr measure.Measure
	opts := []model.PipelineOption{}
	if cfg.Measure {
		msr = measure.NewDefaultMeasure()
		opts = append(opts, measure.PipelineMeasure(msr))
	}
	if cfg.DrawFile != "" {
		opts = append(opts, drawer.PipelineDrawer(drawer.NewDOTDrawer(cfg.DrawFile), msr))
	}

	pipe, err := pipeline.New(tokens, opts...)
	if err != nil {
		code := buildExitCode(err)
		if code == ExitUsage {
			log.Debug().Err(err).Msg("invalid commands")
		} else {
			log.Error().Err(err).Msg("unable to prepare pipeline options")
		}
		printError(stderr, err)

		return code
	}

	if pipe.Len() == 0 {
		log.Warn().Msg("no command given, lines are copied unchanged")
	}

	err = run(ctx, cfg, pipe, stdin, stdout, log)
	if err != nil {
		log.Error().Err(err).Msg("run failed")
		printError(stderr, err)

		return ExitRuntime
	}

	if msr != nil {
		logMeasure(log, pipe, msr)
	}

	if cfg.DrawFile != "" {
		log.Info().Str("file", cfg.DrawFile).Msg("pipeline drawn")
	}

	return ExitOK
}

// buildExitCode maps an error returned by pipeline.New to an exit code. Invalid command
// tokens are usage errors, failing options are runtime errors.
func buildExitCode(err error) int {
	if pipeline.IsConstructionError(err) {
		return ExitUsage
	}

	return ExitRuntime
}

func run(ctx context.Context, cfg *config.Config, pipe *pipeline.Pipeline, stdin io.Reader, stdout io.Writer,
	log zerolog.Logger,
) error {
	observers := []progress.Observer{progress.NewLogObserver(log)}

	g, gctx := errgroup.WithContext(ctx)

	var server *metricsServer
	if cfg.MetricsAddr != "" {
		reg := newMetricsRegistry()
		observers = append(observers, progress.NewPrometheusObserver(reg))

		var err error

		server, err = listenMetrics(cfg.MetricsAddr, reg, log)
		if err != nil {
			return err
		}
		server.start(g)
	}

	g.Go(func() error {
		if server != nil {
			defer server.stop()
		}

		_, err := runner.Run(gctx,
			runner.Config{
				ProgressInterval: cfg.ProgressInterval,
				Observer:         progress.Multi(observers...),
			},
			pipe,
			stream.NewLineSource(stdin, cfg.ReadBufferSize),
			stream.NewSink(stdout, cfg.WriteBufferSize),
		)

		return err
	})

	return g.Wait()
}

func logMeasure(log zerolog.Logger, pipe *pipeline.Pipeline, msr measure.Measure) {
	for _, step := range pipe.Steps() {
		mt := msr.GetMetric(step.Details().Name)
		if mt == nil {
			continue
		}

		log.Info().
			Str("step", step.Details().Name).
			Int64("lines", mt.Total()).
			Int64("dropped", mt.Dropped()).
			Dur("avg", mt.AVGDuration()).
			Msg("step measure")
	}

	if end := msr.GetMetric(model.EndStep.Name); end != nil {
		log.Info().Dur("total", end.GetTotalDuration()).Msg("pipeline measure")
	}
}
