package convergence

import (
	"metromc/model"
)

// Auto is the default checker policy: Gelman-Rubin when more than one chain
// is available, Geweke on the single chain otherwise.
type Auto struct {
	Gelman *GelmanRubin
	Geweke *Geweke
}

// NewAuto creates the default checker with default thresholds.
func NewAuto() *Auto {
	return &Auto{
		Gelman: NewGelmanRubin(0.0),
		Geweke: NewGeweke(0.0),
	}
}

// Evaluate dispatches on the number of chains.
func (a *Auto) Evaluate(histories [][]*model.Params) Verdict {
	if len(histories) > 1 {
		return a.Gelman.Evaluate(histories)
	}
	return a.Geweke.Evaluate(histories)
}
