package mcmc

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"metromc/model"
)

// fakeChain builds a completed chain whose trace is 1, 2, ..., l so trimmed
// positions are easy to read off.
func fakeChain(t *testing.T, l int) *Chain {
	c := &Chain{ID: 0, Steps: l}
	for i := 1; i <= l; i++ {
		p, err := model.NewParamsIndexed([]float64{float64(i)})
		assert.NoError(t, err)
		c.trace = append(c.trace, p)
		c.logLiks = append(c.logLiks, 0.0)
	}
	return c
}

func TestSampleSetTrimmingLaw(t *testing.T) {
	assert := assert.New(t)

	cases := []struct {
		l, burnin, thin int
	}{
		{100, 0, 1},
		{100, 50, 1},
		{100, 50, 3},
		{100, 99, 1},  // L = b+1
		{100, 0, 99},  // t = L-1
		{10, 3, 2},
		{7, 2, 5},
		{1, 0, 1},
	}

	for _, tc := range cases {
		ss, err := NewSampleSet(fakeChain(t, tc.l), tc.burnin, tc.thin)
		assert.NoError(err)
		want := (tc.l - tc.burnin) / tc.thin
		assert.Equal(want, ss.Len(), "L=%d b=%d t=%d", tc.l, tc.burnin, tc.thin)
	}
}

func TestSampleSetRetainedPositions(t *testing.T) {
	assert := assert.New(t)

	ss, err := NewSampleSet(fakeChain(t, 10), 3, 2)
	assert.NoError(err)

	// Positions 5, 7, 9 (1-based): burnin+thin stepping by thin
	assert.Equal(3, ss.Len())
	assert.Equal(5.0, ss.Samples[0].Values[0])
	assert.Equal(7.0, ss.Samples[1].Values[0])
	assert.Equal(9.0, ss.Samples[2].Values[0])
	assert.Equal(5, ss.First)
	assert.Equal(9, ss.Last)
	assert.Equal(2, ss.Thin)
}

func TestSampleSetEmptyAfterEarlyStop(t *testing.T) {
	assert := assert.New(t)

	// Early stop left fewer samples than the burnin budget
	ss, err := NewSampleSet(fakeChain(t, 40), 50, 1)
	assert.NoError(err)
	assert.Equal(0, ss.Len())
	assert.Equal(0, ss.First)
}

func TestSampleSetBadArgs(t *testing.T) {
	assert := assert.New(t)

	_, err := NewSampleSet(fakeChain(t, 10), -1, 1)
	assert.Error(err)

	_, err = NewSampleSet(fakeChain(t, 10), 0, 0)
	assert.Error(err)
}
