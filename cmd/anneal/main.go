// Command anneal approximates an input image by simulated annealing over
// translucent rectangles or triangles and writes the result to an output
// image.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/lemmaandrew/anneal-image/internal/anneal"
	"github.com/lemmaandrew/anneal-image/internal/codec"
	"github.com/lemmaandrew/anneal-image/internal/config"
	"github.com/lemmaandrew/anneal-image/internal/cost"
	"github.com/lemmaandrew/anneal-image/internal/logging"
	"github.com/lemmaandrew/anneal-image/internal/raster"
	"github.com/lemmaandrew/anneal-image/internal/telemetry"
)

func main() {
	opts := parseFlags()
	if err := opts.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Invalid arguments: %v\n", err)
		flag.Usage()
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	logger, err := logging.NewLogger(&logging.Config{
		Level:  cfg.Logging.Level,
		Output: cfg.Logging.Output,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	runLogger := logger.WithField("tool", "anneal")

	target, err := codec.Decode(opts.Input)
	if err != nil {
		runLogger.Fatal("Failed to read input image", map[string]interface{}{
			"path":  opts.Input,
			"error": err.Error(),
		})
	}

	kind := raster.Rectangle
	if opts.Triangle {
		kind = raster.Triangle
	}
	workers := 0
	if opts.Multithreading {
		workers = cfg.Workers()
	}

	// Progress contract: one temperature line per completed iteration.
	observer := anneal.Observer(func(_ int, temperature, _ float64) {
		fmt.Printf("temperature: %v\n", temperature)
	})

	metrics := telemetry.NewMetrics()
	if cfg.Telemetry.Addr != "" {
		srv := telemetry.NewServer(cfg.Telemetry.Addr, metrics, runLogger)
		srv.Start()
		defer func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = srv.Shutdown(ctx)
		}()
	}
	observer = metrics.Observer(observer)

	scheduler, err := anneal.NewScheduler(anneal.Config{
		Target:        target,
		ShapeKind:     kind,
		CoolingFactor: opts.Alpha,
		SampleSize:    opts.Sample,
		SamplePolicy:  cost.SampleEachEval,
		Workers:       workers,
		RandomSeed:    opts.Seed,
		Observer:      observer,
	}, logging.NewZapLogger(runLogger))
	if err != nil {
		runLogger.Fatal("Invalid run configuration", map[string]interface{}{
			"error": err.Error(),
		})
	}

	result, err := scheduler.Run(context.Background())
	if err != nil {
		runLogger.Fatal("Run failed", map[string]interface{}{
			"error": err.Error(),
		})
	}
	metrics.RecordResult(result)

	stats := result.Stats()
	runLogger.Info("Run complete", map[string]interface{}{
		"iterations":      result.Iterations,
		"shapes":          len(result.Shapes),
		"final_cost":      result.FinalCost,
		"acceptance_rate": stats.AcceptanceRate,
		"mean_cost":       stats.MeanCost,
		"cost_stddev":     stats.CostStdDev,
		"elapsed_seconds": result.Elapsed.Seconds(),
	})

	if err := codec.Encode(opts.Output, result.Canvas); err != nil {
		runLogger.Fatal("Failed to write output image", map[string]interface{}{
			"path":  opts.Output,
			"error": err.Error(),
		})
	}
}

func parseFlags() *config.Options {
	opts := &config.Options{}
	flag.StringVar(&opts.Input, "input", "", "input image path (required)")
	flag.StringVar(&opts.Output, "output", "", "output image path (required)")
	flag.Float64Var(&opts.Alpha, "alpha", 0.999, "cooling factor per iteration, in (0,1)")
	flag.BoolVar(&opts.Triangle, "triangle", false, "draw triangles instead of rectangles")
	flag.IntVar(&opts.Sample, "sample", 0, "sampled cost mode with this many pixels (0 = full)")
	flag.BoolVar(&opts.Multithreading, "multithreading", false, "evaluate cost across worker goroutines")
	flag.Int64Var(&opts.Seed, "seed", 0, "random seed (0 = derive from time)")
	flag.Parse()
	return opts
}
