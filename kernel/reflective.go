package kernel

import (
	"math"

	"github.com/pkg/errors"

	"metromc/model"
	"metromc/rand"
)

// Reflective is a Gaussian random-walk kernel constrained to the box
// [Lower, Upper] component-wise. Proposals that land outside the box are
// reflected off the boundaries until they fall inside; they are never
// clipped. The reflection map is an involution, so the proposal density
// stays symmetric and no Jacobian correction is needed in the ratio.
//
// Lower and Upper must either have one entry per parameter or a single
// entry that applies to every component.
type Reflective struct {
	Scale float64
	Lower []float64
	Upper []float64
}

// NewReflective creates a bounded random-walk kernel.
func NewReflective(scale float64, lower, upper []float64) (*Reflective, error) {
	if scale <= 0.0 {
		return nil, errors.Errorf("Invalid kernel scale %v (must be > 0)", scale)
	}
	if len(lower) < 1 || len(upper) < 1 {
		return nil, errors.Errorf("Bounds are required for a reflective kernel")
	}
	if len(lower) != len(upper) && len(lower) != 1 && len(upper) != 1 {
		return nil, errors.Errorf("Bound length mismatch %d != %d", len(lower), len(upper))
	}

	k := &Reflective{Scale: scale, Lower: lower, Upper: upper}
	n := len(lower)
	if len(upper) > n {
		n = len(upper)
	}
	for i := 0; i < n; i++ {
		lb, ub := k.bounds(i)
		if !(lb < ub) {
			return nil, errors.Errorf("Invalid bounds [%v, %v] at component %d", lb, ub, i)
		}
	}

	return k, nil
}

// bounds returns the (lb, ub) pair for component i, broadcasting single
// entry bound slices.
func (k *Reflective) bounds(i int) (float64, float64) {
	lb := k.Lower[0]
	if len(k.Lower) > 1 {
		lb = k.Lower[i]
	}
	ub := k.Upper[0]
	if len(k.Upper) > 1 {
		ub = k.Upper[i]
	}
	return lb, ub
}

// Propose draws a Gaussian step and reflects each component into its box.
func (k *Reflective) Propose(gen *rand.Generator, cur *model.Params) *model.Params {
	cand := cur.Clone()
	for i := range cand.Values {
		lb, ub := k.bounds(i)
		x := cand.Values[i] + k.Scale*gen.NormFloat64()
		cand.Values[i] = reflect(x, lb, ub)
	}
	return cand
}

// LogRatio: reflection keeps the proposal symmetric, so no asymmetry term.
func (k *Reflective) LogRatio(cur, cand *model.Params, curLL, candLL float64) float64 {
	return candLL - curLL
}

// Clone returns the kernel itself: bounds and scale are immutable.
func (k *Reflective) Clone() Kernel {
	return k
}

// reflect folds x into [lb, ub] by bouncing off the boundaries. The fold is
// the triangular wave with period 2*(ub-lb), which handles steps that
// overshoot the box by any number of spans.
func reflect(x, lb, ub float64) float64 {
	if x >= lb && x <= ub {
		return x
	}

	span := ub - lb
	d := math.Mod(x-lb, 2.0*span)
	if d < 0.0 {
		d += 2.0 * span
	}
	if d > span {
		d = 2.0*span - d
	}
	return lb + d
}
