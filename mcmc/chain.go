package mcmc

import (
	"math"

	"github.com/pkg/errors"

	"metromc/kernel"
	"metromc/model"
	"metromc/rand"
)

// Chain runs one Metropolis-Hastings chain. It owns its current state, its
// own random stream, and its own kernel copy; nothing here is shared with
// any other chain, which is what lets chains run on a worker pool without
// synchronization.
type Chain struct {
	ID        int
	Evaluator model.Evaluator
	Kernel    kernel.Kernel
	Gen       *rand.Generator
	Extra     model.Extras

	Cur   *model.Params
	CurLL float64
	Steps int

	trace    []*model.Params
	logLiks  []float64
	accepted int
}

// NewChain sets up a chain at the initial state, evaluating its log density
// once. The kernel is cloned so stateful kernels never couple chains.
func NewChain(id int, ev model.Evaluator, k kernel.Kernel, gen *rand.Generator, initial *model.Params, extra model.Extras) (*Chain, error) {
	if ev == nil {
		return nil, errors.Errorf("An evaluator is required")
	}
	if k == nil {
		return nil, errors.Errorf("A kernel is required")
	}
	if gen == nil {
		return nil, errors.Errorf("A random stream is required")
	}
	if initial == nil || initial.Len() < 1 {
		return nil, model.Configf("initial", initial, "Malformed initial parameter vector")
	}

	c := &Chain{
		ID:        id,
		Evaluator: ev,
		Kernel:    k.Clone(),
		Gen:       gen,
		Extra:     extra,
		Cur:       initial.Clone(),
	}

	c.CurLL = ev.LogDensity(c.Cur, extra)
	if err := model.CheckLogDensity(c.CurLL); err != nil {
		return nil, errors.Wrap(model.Evalf(id, 0, c.CurLL, c.Cur), "Initial state evaluation failed")
	}

	return c, nil
}

// Advance runs n Metropolis-Hastings iterations. Each iteration proposes a
// candidate, evaluates it, and accepts iff log(u) < the kernel's log
// Hastings ratio for one uniform u. The post-decision state is appended to
// the trace every iteration, so rejections show up as repeats.
//
// An evaluator returning NaN or +Inf is fatal for the whole run, not just
// this chain: it means the objective or the kernel bounds are misconfigured.
func (c *Chain) Advance(n int) error {
	for i := 0; i < n; i++ {
		cand := c.Kernel.Propose(c.Gen, c.Cur)

		candLL := c.Evaluator.LogDensity(cand, c.Extra)
		if err := model.CheckLogDensity(candLL); err != nil {
			return model.Evalf(c.ID, c.Steps+1, candLL, cand)
		}

		u := c.Gen.Float64()
		if math.Log(u) < c.Kernel.LogRatio(c.Cur, cand, c.CurLL, candLL) {
			c.Cur = cand
			c.CurLL = candLL
			c.accepted++
		}

		c.Steps++
		c.trace = append(c.trace, c.Cur)
		c.logLiks = append(c.logLiks, c.CurLL)
	}

	return nil
}

// Trace returns the recorded states so far. The slice is owned by the
// chain; callers must not modify it.
func (c *Chain) Trace() []*model.Params {
	return c.trace
}

// LogLiks returns the recorded log density values, parallel to Trace.
func (c *Chain) LogLiks() []float64 {
	return c.logLiks
}

// AcceptRate returns the fraction of proposals accepted so far.
func (c *Chain) AcceptRate() float64 {
	if c.Steps < 1 {
		return 0.0
	}
	return float64(c.accepted) / float64(c.Steps)
}
