package mcmc

import (
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"metromc/model"
)

// SampleSet is the final output for one chain: the trace after burn-in
// trimming and thinning, tagged with the first and last retained iteration
// (1-based over the raw trace) and the thinning factor. Immutable once
// built.
type SampleSet struct {
	Chain      int
	Samples    []*model.Params
	LogLiks    []float64
	First      int
	Last       int
	Thin       int
	AcceptRate float64
}

// NewSampleSet trims a completed chain. The first burnin entries are
// dropped; of the remainder every thin-th entry is retained, so the result
// holds floor((L-burnin)/thin) samples for a raw trace of length L.
//
// A run stopped early by convergence can leave L <= burnin even though the
// configuration was valid against the full step budget; that yields an
// empty SampleSet with a warning rather than an error, since the sampling
// work itself succeeded.
func NewSampleSet(c *Chain, burnin, thin int) (*SampleSet, error) {
	if burnin < 0 {
		return nil, errors.Errorf("Invalid burnin %d", burnin)
	}
	if thin < 1 {
		return nil, errors.Errorf("Invalid thin %d", thin)
	}

	trace := c.Trace()
	logLiks := c.LogLiks()
	l := len(trace)

	ss := &SampleSet{
		Chain:      c.ID,
		Thin:       thin,
		AcceptRate: c.AcceptRate(),
	}

	if burnin >= l {
		logrus.Warnf("Chain %d stopped after %d steps, all consumed by burnin %d: empty sample set", c.ID, l, burnin)
		return ss, nil
	}

	count := (l - burnin) / thin
	ss.Samples = make([]*model.Params, 0, count)
	ss.LogLiks = make([]float64, 0, count)

	// Retained positions are burnin+thin, burnin+2*thin, ... (1-based)
	for pos := burnin + thin; pos <= l; pos += thin {
		ss.Samples = append(ss.Samples, trace[pos-1])
		ss.LogLiks = append(ss.LogLiks, logLiks[pos-1])
	}

	if len(ss.Samples) > 0 {
		ss.First = burnin + thin
		ss.Last = burnin + thin*len(ss.Samples)
	}

	return ss, nil
}

// Len returns the number of retained samples.
func (s *SampleSet) Len() int {
	return len(s.Samples)
}
