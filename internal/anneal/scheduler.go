package anneal

import (
	"context"
	"math"
	"math/rand"
	"time"

	"go.uber.org/zap"

	"github.com/lemmaandrew/anneal-image/internal/cost"
	"github.com/lemmaandrew/anneal-image/internal/raster"
)

// Scheduler owns the working canvas, the committed shape sequence and the
// temperature, and runs the annealing state machine to termination. All
// mutable state is confined to the coordinating goroutine; the evaluator's
// workers only ever read the candidate and target buffers.
type Scheduler struct {
	cfg     Config
	rng     *rand.Rand
	factory *raster.ShapeFactory
	eval    cost.Evaluator

	// Committed state. canvas is always the in-order composite of shapes.
	canvas  *raster.Buffer
	shapes  []raster.Shape
	scratch *raster.Buffer

	logger *zap.Logger
}

// NewScheduler validates the configuration and prepares a run.
func NewScheduler(cfg Config, logger *zap.Logger) (*Scheduler, error) {
	if cfg.Target == nil {
		return nil, NewError("target image is required").
			WithComponent("scheduler").WithOperation("NewScheduler")
	}
	if cfg.Target.W < 1 || cfg.Target.H < 1 {
		return nil, NewErrorf("target image has empty dimensions %dx%d", cfg.Target.W, cfg.Target.H).
			WithComponent("scheduler").WithOperation("NewScheduler")
	}
	// A 1-pixel-wide or -tall canvas admits only collinear vertex triples,
	// so the triangle factory could never produce a valid shape.
	if cfg.ShapeKind == raster.Triangle && (cfg.Target.W < 2 || cfg.Target.H < 2) {
		return nil, NewErrorf("triangle shapes need a canvas of at least 2x2, got %dx%d",
			cfg.Target.W, cfg.Target.H).
			WithComponent("scheduler").WithOperation("NewScheduler")
	}
	if cfg.CoolingFactor == 0 {
		cfg.CoolingFactor = DefaultCoolingFactor
	}
	if cfg.CoolingFactor <= 0 || cfg.CoolingFactor >= 1 {
		return nil, NewErrorf("cooling factor must be in (0,1), got %v", cfg.CoolingFactor).
			WithComponent("scheduler").WithOperation("NewScheduler")
	}
	if cfg.InitialTemperature == 0 {
		cfg.InitialTemperature = DefaultInitialTemperature
	}
	if cfg.FinalTemperature == 0 {
		cfg.FinalTemperature = DefaultFinalTemperature
	}
	if cfg.InitialTemperature <= cfg.FinalTemperature {
		return nil, NewErrorf("initial temperature %v must exceed final temperature %v",
			cfg.InitialTemperature, cfg.FinalTemperature).
			WithComponent("scheduler").WithOperation("NewScheduler")
	}
	if cfg.SampleSize < 0 {
		return nil, NewErrorf("sample size must be non-negative, got %d", cfg.SampleSize).
			WithComponent("scheduler").WithOperation("NewScheduler")
	}
	if cfg.MutateProbability == 0 {
		cfg.MutateProbability = 0.5
	}
	if cfg.MutateProbability < 0 || cfg.MutateProbability > 1 {
		return nil, NewErrorf("mutate probability must be in [0,1], got %v", cfg.MutateProbability).
			WithComponent("scheduler").WithOperation("NewScheduler")
	}
	if cfg.MutationIntensity == 0 {
		cfg.MutationIntensity = raster.MutationIntensity
	}
	if cfg.MutationIntensity < 0 || cfg.MutationIntensity > 1 {
		return nil, NewErrorf("mutation intensity must be in (0,1], got %v", cfg.MutationIntensity).
			WithComponent("scheduler").WithOperation("NewScheduler")
	}

	seed := cfg.RandomSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))

	var sampler *cost.Sampler
	if cfg.SampleSize > 0 {
		sampler = cost.NewSampler(cfg.SampleSize, cfg.Target.W*cfg.Target.H, cfg.SamplePolicy, rng)
	}
	var eval cost.Evaluator
	if cfg.Workers > 1 {
		eval = cost.NewParallel(cfg.Workers, sampler)
	} else {
		eval = cost.NewSerial(sampler)
	}

	if logger == nil {
		logger = zap.NewNop()
	}

	return &Scheduler{
		cfg:     cfg,
		rng:     rng,
		factory: raster.NewShapeFactory(cfg.ShapeKind, cfg.Target.W, cfg.Target.H, rng),
		eval:    eval,
		canvas:  raster.NewBuffer(cfg.Target.W, cfg.Target.H),
		scratch: raster.NewBuffer(cfg.Target.W, cfg.Target.H),
		logger:  logger.Named("scheduler"),
	}, nil
}

// Run executes the annealing loop to the temperature floor and returns the
// final committed state. The only early exit is context cancellation.
func (s *Scheduler) Run(ctx context.Context) (*Result, error) {
	temperature := s.cfg.InitialTemperature
	currentCost := s.eval.Cost(s.canvas, s.cfg.Target)

	s.logger.Info("starting run",
		zap.Int("width", s.cfg.Target.W),
		zap.Int("height", s.cfg.Target.H),
		zap.String("shape", s.cfg.ShapeKind.String()),
		zap.Float64("cooling_factor", s.cfg.CoolingFactor),
		zap.Int("sample_size", s.cfg.SampleSize),
		zap.Int("workers", s.cfg.Workers),
		zap.Float64("initial_cost", currentCost),
	)

	start := time.Now()
	iteration := 0
	accepted := 0
	var history []float64

	for temperature >= s.cfg.FinalTemperature {
		select {
		case <-ctx.Done():
			return nil, WrapError(ctx.Err(), "run interrupted").
				WithComponent("scheduler").WithOperation("Run")
		default:
		}

		// Proposing: new shape or a refinement of a committed one,
		// rendered onto a copy of the committed canvas.
		shape := s.propose()
		raster.Composite(s.scratch, s.canvas, shape)

		// Evaluating.
		candidateCost := s.eval.Cost(s.scratch, s.cfg.Target)
		delta := candidateCost - currentCost

		// Deciding.
		if s.accept(delta, temperature) {
			s.canvas, s.scratch = s.scratch, s.canvas
			s.shapes = append(s.shapes, shape)
			currentCost = candidateCost
			accepted++
		}

		// Cooling.
		temperature *= s.cfg.CoolingFactor
		iteration++
		history = append(history, currentCost)
		if s.cfg.Observer != nil {
			s.cfg.Observer(iteration, temperature, currentCost)
		}
	}

	elapsed := time.Since(start)
	s.logger.Info("run finished",
		zap.Int("iterations", iteration),
		zap.Int("accepted", accepted),
		zap.Float64("final_cost", currentCost),
		zap.Duration("elapsed", elapsed),
	)

	return &Result{
		Canvas:      s.canvas.Clone(),
		Shapes:      append([]raster.Shape(nil), s.shapes...),
		FinalCost:   currentCost,
		Iterations:  iteration,
		Accepted:    accepted,
		Elapsed:     elapsed,
		CostHistory: history,
	}, nil
}

// propose picks the next candidate shape. Mutation refines a random
// committed shape; the result is painted on top of the canvas, so on
// acceptance it is appended like any other shape and the canvas remains
// the exact in-order composite of the sequence.
func (s *Scheduler) propose() raster.Shape {
	if len(s.shapes) > 0 && s.rng.Float64() < s.cfg.MutateProbability {
		base := s.shapes[s.rng.Intn(len(s.shapes))]
		return s.factory.Mutate(base, s.cfg.MutationIntensity)
	}
	return s.factory.Random()
}

// accept applies the Metropolis criterion: non-worsening moves always pass,
// worsening moves pass with probability exp(-delta/T) against a fresh
// uniform draw.
func (s *Scheduler) accept(delta, temperature float64) bool {
	if delta <= 0 {
		return true
	}
	return s.rng.Float64() < math.Exp(-delta/temperature)
}
