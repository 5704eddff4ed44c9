// Package grid enumerates scenario parameter grids and evaluates the
// economics model across them.
package grid

import (
	"runtime"
	"sync"
	"sync/atomic"

	"github.com/theirongolddev/aliasim/internal/econ"
)

// Grid defines the scenario axes to sweep.
type Grid struct {
	SessionLengths []int
	Evictions      []econ.Eviction
	Formats        []econ.Format
}

// Size returns the number of scenarios in the grid.
func (g Grid) Size() int {
	return len(g.SessionLengths) * len(g.Evictions) * len(g.Formats)
}

// Scenarios returns the cross product of the axes in deterministic order:
// session length outermost, then eviction, then format.
func (g Grid) Scenarios() []econ.Scenario {
	out := make([]econ.Scenario, 0, g.Size())
	for _, length := range g.SessionLengths {
		for _, eviction := range g.Evictions {
			for _, format := range g.Formats {
				out = append(out, econ.Scenario{
					SessionLength: length,
					Eviction:      eviction,
					Format:        format,
				})
			}
		}
	}
	return out
}

// ProgressFunc reports evaluation progress.
type ProgressFunc func(done, total int)

// Evaluate runs the simulator for every scenario in the grid. Scenarios are
// independent, so evaluation fans out over a bounded worker pool; results
// come back in enumeration order regardless of scheduling.
func Evaluate(model econ.CostModel, mix econ.QueryMix, g Grid, progressFn ProgressFunc) []econ.Result {
	scenarios := g.Scenarios()
	if len(scenarios) == 0 {
		return nil
	}

	numWorkers := runtime.GOMAXPROCS(0)
	if numWorkers < 1 {
		numWorkers = 4
	}
	if numWorkers > len(scenarios) {
		numWorkers = len(scenarios)
	}

	work := make(chan int, len(scenarios))
	results := make([]econ.Result, len(scenarios))
	var wg sync.WaitGroup
	var done atomic.Int64

	for i := range scenarios {
		work <- i
	}
	close(work)

	wg.Add(numWorkers)
	for w := 0; w < numWorkers; w++ {
		go func() {
			defer wg.Done()
			for idx := range work {
				results[idx] = econ.Simulate(model, mix, scenarios[idx])
				n := done.Add(1)
				if progressFn != nil {
					progressFn(int(n), len(scenarios))
				}
			}
		}()
	}

	wg.Wait()
	return results
}
