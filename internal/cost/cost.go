// Package cost measures the dissimilarity between a candidate canvas and the
// target image. Evaluation runs in full-pixel mode or over a random pixel
// subset, serially or fanned out across workers.
package cost

import (
	"math/rand"

	"github.com/lemmaandrew/anneal-image/internal/raster"
)

// Evaluator scores a candidate buffer against the target image.
// The score is non-negative and zero exactly when the buffers agree on
// every R, G and B byte. Lower is better.
type Evaluator interface {
	Cost(candidate, target *raster.Buffer) float64
}

// SamplePolicy controls when the sampled-mode pixel subset is drawn.
type SamplePolicy uint8

const (
	// SampleEachEval draws a fresh uniform subset on every evaluation.
	// The estimator is unbiased; variance shrinks as the sample grows.
	SampleEachEval SamplePolicy = iota
	// SampleFixed draws the subset once and reuses it for the whole run.
	// Cheaper and stable between evaluations, but biased toward the
	// pixels it happened to pick.
	SampleFixed
)

// Sampler draws pixel-index subsets for sampled-mode evaluation. A nil
// Sampler means full-pixel mode.
type Sampler struct {
	size   int
	total  int
	policy SamplePolicy
	rng    *rand.Rand
	fixed  []int
}

// NewSampler creates a sampler drawing subsets of the given size from a
// domain of total pixels.
func NewSampler(size, total int, policy SamplePolicy, rng *rand.Rand) *Sampler {
	if size > total {
		size = total
	}
	return &Sampler{size: size, total: total, policy: policy, rng: rng}
}

// Draw returns the pixel indices for one evaluation. Under SampleFixed the
// first draw is cached and returned on every call.
func (s *Sampler) Draw() []int {
	if s.policy == SampleFixed && s.fixed != nil {
		return s.fixed
	}
	idx := make([]int, s.size)
	for i := range idx {
		idx[i] = s.rng.Intn(s.total)
	}
	if s.policy == SampleFixed {
		s.fixed = idx
	}
	return idx
}

// Scale is the factor that turns a subset sum into a full-image estimate.
func (s *Sampler) Scale() float64 {
	return float64(s.total) / float64(s.size)
}

// Serial evaluates the cost on the calling goroutine.
type Serial struct {
	sampler *Sampler
}

// NewSerial creates a full-pixel serial evaluator. Pass a non-nil sampler
// to enable sampled mode.
func NewSerial(sampler *Sampler) *Serial {
	return &Serial{sampler: sampler}
}

// Cost returns the (estimated) sum of squared per-channel differences.
func (e *Serial) Cost(candidate, target *raster.Buffer) float64 {
	if e.sampler == nil {
		return float64(sumSqRange(candidate, target, 0, candidate.W*candidate.H))
	}
	idx := e.sampler.Draw()
	return float64(sumSqIndices(candidate, target, idx, 0, len(idx))) * e.sampler.Scale()
}

// sumSqRange accumulates squared R,G,B differences over pixels [from, to).
// Accumulation is integral, so any partition of the range sums to the exact
// same value regardless of chunking.
func sumSqRange(a, b *raster.Buffer, from, to int) uint64 {
	var sum uint64
	for p := from; p < to; p++ {
		sum += pixelSqDiff(a.Pix, b.Pix, p*4)
	}
	return sum
}

// sumSqIndices accumulates squared differences over idx[from:to].
func sumSqIndices(a, b *raster.Buffer, idx []int, from, to int) uint64 {
	var sum uint64
	for _, p := range idx[from:to] {
		sum += pixelSqDiff(a.Pix, b.Pix, p*4)
	}
	return sum
}

func pixelSqDiff(a, b []uint8, i int) uint64 {
	dr := int64(a[i+0]) - int64(b[i+0])
	dg := int64(a[i+1]) - int64(b[i+1])
	db := int64(a[i+2]) - int64(b[i+2])
	return uint64(dr*dr + dg*dg + db*db)
}
