package convergence

import (
	"math"

	"gonum.org/v1/gonum/stat"

	"metromc/model"
)

// Geweke is the single-chain diagnostic: it compares the mean of an early
// segment of the trace against the mean of a late segment with a z-score
// whose variances come from the spectral density at frequency zero (so that
// autocorrelation within each segment is accounted for). Convergence is
// signalled when every component's |z| falls below Threshold.
//
// With more than one chain, the first chain's trace is checked; prefer
// GelmanRubin in that case (Auto does this).
type Geweke struct {
	Threshold float64
	Frac1     float64 // early segment fraction, from the start
	Frac2     float64 // late segment fraction, from the end
}

// DefaultZThreshold is the two-sided 5% normal critical value.
const DefaultZThreshold = 1.96

// gewekeMinSamples keeps the spectral estimate from running on traces too
// short to window.
const gewekeMinSamples = 40

// NewGeweke creates the diagnostic with the conventional 10%/50% segments;
// threshold 0 selects the default.
func NewGeweke(threshold float64) *Geweke {
	if threshold <= 0.0 {
		threshold = DefaultZThreshold
	}
	return &Geweke{
		Threshold: threshold,
		Frac1:     0.1,
		Frac2:     0.5,
	}
}

// Evaluate returns the max-component |z| for the first chain's history.
func (g *Geweke) Evaluate(histories [][]*model.Params) Verdict {
	if len(histories) < 1 {
		return Verdict{Converged: false, Stat: math.NaN()}
	}

	hist := histories[0]
	n := len(hist)
	if n < gewekeMinSamples {
		return Verdict{Converged: false, Stat: math.NaN()}
	}

	n1 := int(g.Frac1 * float64(n))
	n2 := int(g.Frac2 * float64(n))
	if n1 < 2 || n2 < 2 {
		return Verdict{Converged: false, Stat: math.NaN()}
	}

	dim := hist[0].Len()
	worst := 0.0

	for comp := 0; comp < dim; comp++ {
		xs := series(hist, comp)
		early := xs[:n1]
		late := xs[n-n2:]

		s1 := spectrum0(early)
		s2 := spectrum0(late)

		denom := math.Sqrt(s1/float64(n1) + s2/float64(n2))
		var z float64
		if denom > 0.0 {
			z = math.Abs(stat.Mean(early, nil)-stat.Mean(late, nil)) / denom
		} else if stat.Mean(early, nil) != stat.Mean(late, nil) {
			z = math.Inf(1)
		}

		if z > worst {
			worst = z
		}
	}

	return Verdict{
		Converged: worst < g.Threshold,
		Stat:      worst,
	}
}

// spectrum0 estimates the spectral density of xs at frequency zero with a
// Bartlett-windowed sum of autocovariances. The lag cutoff grows slowly
// with the segment length.
func spectrum0(xs []float64) float64 {
	n := len(xs)
	mean := stat.Mean(xs, nil)

	lagMax := int(math.Floor(4.0 * math.Pow(float64(n)/100.0, 2.0/9.0)))
	if lagMax >= n {
		lagMax = n - 1
	}
	if lagMax < 0 {
		lagMax = 0
	}

	s := autocov(xs, mean, 0)
	for lag := 1; lag <= lagMax; lag++ {
		w := 1.0 - float64(lag)/float64(lagMax+1)
		s += 2.0 * w * autocov(xs, mean, lag)
	}

	if s < 0.0 {
		// Windowed estimates can go slightly negative on tiny segments
		s = 0.0
	}
	return s
}

func autocov(xs []float64, mean float64, lag int) float64 {
	n := len(xs)
	sum := 0.0
	for i := 0; i+lag < n; i++ {
		sum += (xs[i] - mean) * (xs[i+lag] - mean)
	}
	return sum / float64(n)
}
