// Package convergence provides stop/continue diagnostics evaluated between
// sampling epochs.
package convergence

import (
	"metromc/model"
)

// Verdict is the outcome of one convergence check: the stop decision plus
// the diagnostic statistic that produced it (the max scale reduction factor
// for Gelman-Rubin, the max |z| for Geweke).
type Verdict struct {
	Converged bool
	Stat      float64
}

// A Checker inspects the chain histories collected so far and decides
// whether sampling may stop early. Histories are the raw traces of every
// chain, equal length across chains, possibly partial (the run is still in
// progress when the check happens).
type Checker interface {
	Evaluate(histories [][]*model.Params) Verdict
}

// series extracts the per-component value series of one chain history.
func series(hist []*model.Params, comp int) []float64 {
	xs := make([]float64, len(hist))
	for i, p := range hist {
		xs[i] = p.Values[comp]
	}
	return xs
}
