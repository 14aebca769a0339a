package cost

import (
	"runtime"
	"sync"

	"github.com/lemmaandrew/anneal-image/internal/raster"
)

// Parallel partitions one evaluation across workers and reduces their
// partial sums to the same scalar the serial evaluator produces. Workers
// read the candidate and target buffers and write only their own partial
// slot, so no locking is needed beyond the join barrier.
//
// Because the partials are integers, the reduction is exact: for a fixed
// random state the parallel path yields bit-for-bit the serial result, and
// therefore the same accept/reject sequence. Note that on small images the
// goroutine fan-out costs more than it saves; the parallel path is offered
// for parity and measurement, not as a guaranteed speedup.
type Parallel struct {
	workers int
	sampler *Sampler
}

// NewParallel creates a parallel evaluator with the given worker count
// (<= 0 means runtime.NumCPU). Pass a non-nil sampler for sampled mode.
func NewParallel(workers int, sampler *Sampler) *Parallel {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	return &Parallel{workers: workers, sampler: sampler}
}

// Cost evaluates the candidate against the target, fanning the pixel domain
// (or the sample subset) out across the workers and blocking until every
// partial sum is in.
func (e *Parallel) Cost(candidate, target *raster.Buffer) float64 {
	if e.sampler == nil {
		total := candidate.W * candidate.H
		sum := e.reduce(total, func(from, to int) uint64 {
			return sumSqRange(candidate, target, from, to)
		})
		return float64(sum)
	}

	// The coordinator draws the subset before dispatch so serial and
	// parallel evaluation consume the random source identically.
	idx := e.sampler.Draw()
	sum := e.reduce(len(idx), func(from, to int) uint64 {
		return sumSqIndices(candidate, target, idx, from, to)
	})
	return float64(sum) * e.sampler.Scale()
}

// reduce splits [0, n) into contiguous chunks, runs each on its own
// goroutine and sums the integer partials in chunk order.
func (e *Parallel) reduce(n int, partial func(from, to int) uint64) uint64 {
	workers := e.workers
	if workers > n {
		workers = n
	}
	if workers <= 1 {
		return partial(0, n)
	}

	partials := make([]uint64, workers)
	var wg sync.WaitGroup
	// Ceiling division can exhaust the domain before the last worker when
	// n is small; workers past the end are simply not launched.
	chunk := (n + workers - 1) / workers
	for w := 0; w < workers; w++ {
		from := w * chunk
		if from >= n {
			break
		}
		to := from + chunk
		if to > n {
			to = n
		}
		wg.Add(1)
		go func(slot, from, to int) {
			defer wg.Done()
			partials[slot] = partial(from, to)
		}(w, from, to)
	}
	wg.Wait()

	var sum uint64
	for _, p := range partials {
		sum += p
	}
	return sum
}
