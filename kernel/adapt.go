package kernel

import (
	"math"

	"github.com/pkg/errors"

	"metromc/model"
	"metromc/rand"
)

// Adaptive wraps a Gaussian random walk whose scale is tuned toward a target
// acceptance rate during the run. The kernel cannot observe the accept
// decision directly, so it infers it: if the current state at the next
// Propose call equals the candidate it last proposed, that proposal was
// accepted. The inference, and therefore the adaptation, is a deterministic
// function of the chain's own history only.
//
// Each chain must own its own copy (see Clone); sharing one Adaptive across
// chains would couple their adaptation.
type Adaptive struct {
	Scale  float64
	Target float64 // desired acceptance rate
	Freq   int     // adapt once per Freq proposals

	lastCand *model.Params
	accepted int
	seen     int
}

// NewAdaptive creates an adaptive-scale kernel. A target of 0 selects the
// usual random-walk default of 0.44 for one dimension handled at first
// proposal (0.234 for higher dimensions); a freq of 0 selects 100.
func NewAdaptive(scale, target float64, freq int) (*Adaptive, error) {
	if scale <= 0.0 {
		return nil, errors.Errorf("Invalid kernel scale %v (must be > 0)", scale)
	}
	if target < 0.0 || target >= 1.0 {
		return nil, errors.Errorf("Invalid target acceptance rate %v", target)
	}
	if freq < 0 {
		return nil, errors.Errorf("Invalid adaptation frequency %d", freq)
	}
	if freq == 0 {
		freq = 100
	}

	return &Adaptive{Scale: scale, Target: target, Freq: freq}, nil
}

// Propose draws candidate = current + Scale*z and updates the adaptation
// window with the outcome of the previous proposal.
func (k *Adaptive) Propose(gen *rand.Generator, cur *model.Params) *model.Params {
	if k.Target == 0.0 {
		k.Target = 0.44
		if cur.Len() > 1 {
			k.Target = 0.234
		}
	}

	if k.lastCand != nil {
		if cur.Equal(k.lastCand) {
			k.accepted++
		}
		k.seen++
		if k.seen >= k.Freq {
			k.adapt()
		}
	}

	cand := cur.Clone()
	for i := range cand.Values {
		cand.Values[i] += k.Scale * gen.NormFloat64()
	}
	k.lastCand = cand

	return cand
}

// adapt nudges the scale multiplicatively toward the target rate and resets
// the window. The step size is capped so one noisy window cannot blow the
// scale up or collapse it.
func (k *Adaptive) adapt() {
	rate := float64(k.accepted) / float64(k.seen)

	delta := rate - k.Target
	if delta > 0.5 {
		delta = 0.5
	}
	if delta < -0.5 {
		delta = -0.5
	}
	k.Scale *= math.Exp(delta)

	k.accepted = 0
	k.seen = 0
}

// LogRatio: the walk is symmetric at every fixed scale, and the scale in use
// is the same for the forward and reverse proposal within one iteration.
func (k *Adaptive) LogRatio(cur, cand *model.Params, curLL, candLL float64) float64 {
	return candLL - curLL
}

// Clone returns an independent copy with fresh adaptation state.
func (k *Adaptive) Clone() Kernel {
	return &Adaptive{
		Scale:  k.Scale,
		Target: k.Target,
		Freq:   k.Freq,
	}
}
