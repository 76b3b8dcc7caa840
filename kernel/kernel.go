// Package kernel provides transition kernels for the Metropolis-Hastings
// sampler. A kernel proposes the candidate state and supplies the full log
// Hastings ratio used in the accept/reject decision.
package kernel

import (
	"metromc/model"
	"metromc/rand"
)

// A Kernel is the proposal strategy for one sampling run.
//
// Propose draws a candidate from the current state using the chain's own
// generator. It must never mutate cur.
//
// LogRatio returns the full log Hastings ratio
//
//	log(target(cand)/target(cur)) + log(q(cur|cand)/q(cand|cur))
//
// Symmetric kernels contribute no proposal-asymmetry term, so their ratio is
// just candLL - curLL. Kernels that enforce bounds must fold any proposal
// asymmetry into this term rather than clipping candidates.
//
// Clone returns the copy a chain will own for the whole run. Stateless
// kernels may return themselves; stateful (adaptive) kernels must return an
// independent copy so that adaptation never couples chains.
type Kernel interface {
	Propose(gen *rand.Generator, cur *model.Params) *model.Params
	LogRatio(cur, cand *model.Params, curLL, candLL float64) float64
	Clone() Kernel
}

// Default returns the kernel used when the caller supplies none: a unit
// scale Gaussian random walk.
func Default() Kernel {
	k, _ := NewNormal(1.0)
	return k
}
