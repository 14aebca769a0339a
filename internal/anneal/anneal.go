// Package anneal drives the simulated-annealing loop that approximates a
// target image by stacking translucent shapes: propose a shape, render a
// candidate canvas, score it, apply the Metropolis test, cool, repeat until
// the temperature floor is crossed.
package anneal

import (
	"time"

	"github.com/lemmaandrew/anneal-image/internal/cost"
	"github.com/lemmaandrew/anneal-image/internal/raster"
)

// Default temperature schedule. The run terminates once the temperature
// cools below FinalTemperature.
const (
	DefaultInitialTemperature = 1000.0
	DefaultFinalTemperature   = 0.001
	DefaultCoolingFactor      = 0.999
)

// Observer receives one notification per completed iteration with the
// just-cooled temperature and the committed cost. It is a notification
// sink: the scheduler ignores anything it does.
type Observer func(iteration int, temperature, currentCost float64)

// Config configures one annealing run.
type Config struct {
	// Target is the reference image. Never mutated during the run.
	Target *raster.Buffer

	// ShapeKind fixes the primitive for the whole run.
	ShapeKind raster.ShapeKind

	// CoolingFactor multiplies the temperature each iteration.
	// Must lie strictly inside (0, 1).
	CoolingFactor float64

	// InitialTemperature and FinalTemperature bound the schedule.
	// Zero values select the defaults above.
	InitialTemperature float64
	FinalTemperature   float64

	// SampleSize enables sampled cost evaluation over this many pixels.
	// Zero means full-pixel mode.
	SampleSize int

	// SamplePolicy selects when the sample subset is redrawn.
	SamplePolicy cost.SamplePolicy

	// Workers routes cost evaluation through the parallel evaluator when
	// greater than 1. The decision sequence is identical either way.
	Workers int

	// MutateProbability is the chance a proposal refines an existing
	// committed shape instead of adding a new one. Zero selects 0.5.
	// Until a first shape is committed every proposal is an addition.
	MutateProbability float64

	// MutationIntensity bounds a single mutation step relative to the
	// canvas dimensions and the color range. Zero selects
	// raster.MutationIntensity.
	MutationIntensity float64

	// RandomSeed makes the run reproducible. Zero derives a seed from
	// the current time.
	RandomSeed int64

	// Observer, if non-nil, is invoked once per iteration.
	Observer Observer
}

// Result is the outcome of a completed run.
type Result struct {
	// Canvas is the final committed buffer.
	Canvas *raster.Buffer

	// Shapes is the committed sequence in paint (acceptance) order.
	Shapes []raster.Shape

	// FinalCost is the committed cost at termination.
	FinalCost float64

	// Iterations is the total number of propose/evaluate/decide cycles.
	Iterations int

	// Accepted counts proposals that were committed.
	Accepted int

	// Elapsed is the wall-clock duration of the run.
	Elapsed time.Duration

	// CostHistory holds the committed cost after every iteration.
	CostHistory []float64
}
