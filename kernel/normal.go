package kernel

import (
	"github.com/pkg/errors"

	"metromc/model"
	"metromc/rand"
)

// Normal is an isotropic Gaussian random-walk kernel: every component moves
// by an independent N(0, Scale^2) step.
type Normal struct {
	Scale float64
}

// NewNormal creates a Gaussian random-walk kernel with the given step scale.
func NewNormal(scale float64) (*Normal, error) {
	if scale <= 0.0 {
		return nil, errors.Errorf("Invalid kernel scale %v (must be > 0)", scale)
	}

	return &Normal{Scale: scale}, nil
}

// Propose draws candidate = current + Scale*z, z ~ N(0, I).
func (k *Normal) Propose(gen *rand.Generator, cur *model.Params) *model.Params {
	cand := cur.Clone()
	for i := range cand.Values {
		cand.Values[i] += k.Scale * gen.NormFloat64()
	}
	return cand
}

// LogRatio for a symmetric kernel is just the log density difference.
func (k *Normal) LogRatio(cur, cand *model.Params, curLL, candLL float64) float64 {
	return candLL - curLL
}

// Clone returns the kernel itself: Normal carries no per-chain state.
func (k *Normal) Clone() Kernel {
	return k
}
