package convergence

import (
	"math"

	"gonum.org/v1/gonum/stat"

	"metromc/model"
)

// GelmanRubin is the between/within-chain variance-ratio diagnostic. It
// computes the potential scale reduction factor (PSRF) per component and
// signals convergence when the worst component falls below Threshold.
// Requires at least two chains and a handful of samples per chain; anything
// less is reported as not converged.
type GelmanRubin struct {
	Threshold float64
}

// DefaultPSRFThreshold is the usual "below 1.1" convergence rule.
const DefaultPSRFThreshold = 1.10

// gelmanMinSamples is the minimum per-chain history length before the PSRF
// is meaningful enough to act on.
const gelmanMinSamples = 10

// NewGelmanRubin creates the diagnostic; threshold 0 selects the default.
func NewGelmanRubin(threshold float64) *GelmanRubin {
	if threshold <= 0.0 {
		threshold = DefaultPSRFThreshold
	}
	return &GelmanRubin{Threshold: threshold}
}

// Evaluate returns the max-component PSRF across all chains.
func (g *GelmanRubin) Evaluate(histories [][]*model.Params) Verdict {
	m := len(histories)
	if m < 2 {
		return Verdict{Converged: false, Stat: math.NaN()}
	}

	n := len(histories[0])
	if n < gelmanMinSamples {
		return Verdict{Converged: false, Stat: math.NaN()}
	}

	dim := histories[0][0].Len()
	worst := 0.0

	for comp := 0; comp < dim; comp++ {
		means := make([]float64, m)
		within := 0.0
		for c, hist := range histories {
			xs := series(hist, comp)
			means[c] = stat.Mean(xs, nil)
			within += stat.Variance(xs, nil)
		}
		within /= float64(m)

		// B/n is the variance of the chain means
		bOverN := stat.Variance(means, nil)

		psrf := 1.0
		if within > 0.0 {
			nf := float64(n)
			varHat := (nf-1.0)/nf*within + bOverN
			psrf = math.Sqrt(varHat / within)
		} else if bOverN > 0.0 {
			// Chains are internally frozen but disagree with each other
			psrf = math.Inf(1)
		}

		if psrf > worst {
			worst = psrf
		}
	}

	return Verdict{
		Converged: worst < g.Threshold,
		Stat:      worst,
	}
}
