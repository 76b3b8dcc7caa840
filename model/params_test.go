package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewParams(t *testing.T) {
	assert := assert.New(t)

	var err error

	_, err = NewParams(nil, nil)
	assert.Error(err)

	_, err = NewParams([]string{"a"}, []float64{1.0, 2.0})
	assert.Error(err)

	_, err = NewParams([]string{"a", ""}, []float64{1.0, 2.0})
	assert.Error(err)

	_, err = NewParams([]string{"a", "a"}, []float64{1.0, 2.0})
	assert.Error(err)

	p, err := NewParams([]string{"mu", "sigma"}, []float64{0.0, 1.0})
	assert.NoError(err)
	assert.Equal(2, p.Len())
	assert.Equal("(mu=0, sigma=1)", p.String())
}

func TestParamsIndexedNames(t *testing.T) {
	assert := assert.New(t)

	p, err := NewParamsIndexed([]float64{1.0, 2.0, 3.0})
	assert.NoError(err)
	assert.Equal([]string{"par0", "par1", "par2"}, p.Names)
}

func TestParamsCloneIsDeep(t *testing.T) {
	assert := assert.New(t)

	p, err := NewParams([]string{"x"}, []float64{1.0})
	assert.NoError(err)

	cp := p.Clone()
	cp.Values[0] = 99.0
	assert.Equal(1.0, p.Values[0])
	assert.True(p.SameShape(cp) == nil)
}

func TestParamsShapeAndEqual(t *testing.T) {
	assert := assert.New(t)

	a, _ := NewParams([]string{"x", "y"}, []float64{1.0, 2.0})
	b, _ := NewParams([]string{"x", "y"}, []float64{1.0, 2.0})
	c, _ := NewParams([]string{"x", "z"}, []float64{1.0, 2.0})
	d, _ := NewParams([]string{"x"}, []float64{1.0})

	assert.NoError(a.SameShape(b))
	assert.Error(a.SameShape(c))
	assert.Error(a.SameShape(d))
	assert.Error(a.SameShape(nil))

	assert.True(a.Equal(b))
	b.Values[1] = 2.5
	assert.False(a.Equal(b))
	assert.False(a.Equal(c))
}
