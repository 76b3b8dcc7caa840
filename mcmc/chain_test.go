package mcmc

import (
	"math"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"

	"metromc/kernel"
	"metromc/model"
	"metromc/rand"
)

// countingEval wraps a plain log density and counts calls. The counter is
// atomic so the same evaluator can back chains on the worker pool.
type countingEval struct {
	fn    func(p *model.Params) float64
	calls int64
}

func (e *countingEval) LogDensity(p *model.Params, _ model.Extras) float64 {
	atomic.AddInt64(&e.calls, 1)
	return e.fn(p)
}

func (e *countingEval) ExtraNames() []string {
	return nil
}

func (e *countingEval) Calls() int64 {
	return atomic.LoadInt64(&e.calls)
}

func stdNormal(p *model.Params) float64 {
	ll := 0.0
	for _, v := range p.Values {
		ll += -0.5 * v * v
	}
	return ll
}

func mustParams(t *testing.T, values ...float64) *model.Params {
	p, err := model.NewParamsIndexed(values)
	assert.NoError(t, err)
	return p
}

func TestChainRecordsEveryIteration(t *testing.T) {
	assert := assert.New(t)

	ev := &countingEval{fn: stdNormal}
	c, err := NewChain(0, ev, kernel.Default(), rand.NewChainStream(42, 0), mustParams(t, 0.0), nil)
	assert.NoError(err)

	assert.NoError(c.Advance(250))
	assert.Equal(250, len(c.Trace()))
	assert.Equal(250, len(c.LogLiks()))
	assert.Equal(250, c.Steps)

	// One initial eval plus one per iteration
	assert.Equal(int64(251), ev.Calls())
}

func TestChainRejectionRepeatsPriorState(t *testing.T) {
	assert := assert.New(t)

	// Zero density everywhere except the exact starting point: every
	// proposal is rejected and the trace is the initial state repeated
	start := mustParams(t, 1.5, -2.0)
	ev := &countingEval{fn: func(p *model.Params) float64 {
		if p.Equal(start) {
			return 0.0
		}
		return math.Inf(-1)
	}}

	c, err := NewChain(0, ev, kernel.Default(), rand.NewChainStream(7, 0), start, nil)
	assert.NoError(err)
	assert.NoError(c.Advance(50))

	assert.Equal(0.0, c.AcceptRate())
	for i, p := range c.Trace() {
		assert.True(p.Equal(start), "Iteration %d drifted after rejection", i)
	}
}

func TestChainNaNEvaluatorIsFatal(t *testing.T) {
	assert := assert.New(t)

	// Finite at the exact initial point, NaN for every proposal
	start := mustParams(t, 0.0)
	ev := &countingEval{fn: func(p *model.Params) float64 {
		if p.Equal(start) {
			return 0.0
		}
		return math.NaN()
	}}

	c, err := NewChain(0, ev, kernel.Default(), rand.NewChainStream(3, 0), start, nil)
	assert.NoError(err)

	err = c.Advance(100)
	assert.Error(err)
	assert.True(model.IsEvalError(err))

	// Failed on the very first proposal
	var ee *model.EvalError
	assert.ErrorAs(err, &ee)
	assert.Equal(1, ee.Iter)
	assert.True(math.IsNaN(ee.Value))
}

func TestChainNaNInitialState(t *testing.T) {
	assert := assert.New(t)

	ev := &countingEval{fn: func(p *model.Params) float64 { return math.NaN() }}
	c, err := NewChain(0, ev, kernel.Default(), rand.NewChainStream(3, 0), mustParams(t, 0.0), nil)
	assert.Nil(c)
	assert.Error(err)
	assert.True(model.IsEvalError(err))
}

func TestChainResumeAcrossEpochs(t *testing.T) {
	assert := assert.New(t)

	// 40 steps in one go vs 4 epochs of 10 must give identical traces
	ev := &countingEval{fn: stdNormal}
	whole, err := NewChain(0, ev, kernel.Default(), rand.NewChainStream(99, 0), mustParams(t, 0.5), nil)
	assert.NoError(err)
	assert.NoError(whole.Advance(40))

	split, err := NewChain(0, ev, kernel.Default(), rand.NewChainStream(99, 0), mustParams(t, 0.5), nil)
	assert.NoError(err)
	for e := 0; e < 4; e++ {
		assert.NoError(split.Advance(10))
	}

	assert.Equal(len(whole.Trace()), len(split.Trace()))
	for i := range whole.Trace() {
		assert.True(whole.Trace()[i].Equal(split.Trace()[i]), "Trace diverged at %d", i)
	}
}

func TestChainAcceptanceAndMean(t *testing.T) {
	assert := assert.New(t)

	// Standard normal target, unit Gaussian walk, 100 steps from 0
	ev := &countingEval{fn: stdNormal}
	c, err := NewChain(0, ev, kernel.Default(), rand.NewChainStream(1, 0), mustParams(t, 0.0), nil)
	assert.NoError(err)
	assert.NoError(c.Advance(100))

	rate := c.AcceptRate()
	assert.True(rate > 0.2 && rate < 0.9, "Acceptance rate %v out of range", rate)

	// Sample mean of the tail should sit near the target mean
	sum := 0.0
	tail := c.Trace()[20:]
	for _, p := range tail {
		sum += p.Values[0]
	}
	assert.InDelta(0.0, sum/float64(len(tail)), 0.3)
}
