package model

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
)

// Params is an ordered vector of named real-valued parameters. The dimension
// and the name order are fixed for an entire sampling run: every chain, the
// kernel, and the evaluator all see the same shape.
type Params struct {
	Names  []string
	Values []float64
}

// NewParams creates a parameter vector from parallel name/value slices.
func NewParams(names []string, values []float64) (*Params, error) {
	if len(values) < 1 {
		return nil, errors.Errorf("Empty parameter vector")
	}
	if len(names) != len(values) {
		return nil, errors.Errorf("Name/value count mismatch %d != %d", len(names), len(values))
	}

	seen := make(map[string]bool, len(names))
	for _, n := range names {
		if len(n) < 1 {
			return nil, errors.Errorf("Empty parameter name in %v", names)
		}
		if seen[n] {
			return nil, errors.Errorf("Duplicate parameter name %s", n)
		}
		seen[n] = true
	}

	p := &Params{
		Names:  make([]string, len(names)),
		Values: make([]float64, len(values)),
	}
	copy(p.Names, names)
	copy(p.Values, values)

	return p, nil
}

// NewParamsIndexed creates a parameter vector from values alone, naming the
// components par0, par1, ...
func NewParamsIndexed(values []float64) (*Params, error) {
	names := make([]string, len(values))
	for i := range values {
		names[i] = fmt.Sprintf("par%d", i)
	}
	return NewParams(names, values)
}

// Len returns the dimension of the parameter vector.
func (p *Params) Len() int {
	return len(p.Values)
}

// Clone returns a deep copy sharing no storage with the original.
func (p *Params) Clone() *Params {
	cp := &Params{
		Names:  p.Names, // names are never mutated, safe to share
		Values: make([]float64, len(p.Values)),
	}
	copy(cp.Values, p.Values)
	return cp
}

// SameShape returns an error unless other has the identical dimension and
// name order.
func (p *Params) SameShape(other *Params) error {
	if other == nil {
		return errors.Errorf("Cannot compare %v against nil params", p.Names)
	}
	if len(p.Values) != len(other.Values) {
		return errors.Errorf("Dimension mismatch %d != %d", len(p.Values), len(other.Values))
	}
	for i, n := range p.Names {
		if other.Names[i] != n {
			return errors.Errorf("Parameter name mismatch at %d: %s != %s", i, n, other.Names[i])
		}
	}
	return nil
}

// Equal returns true if other has the same shape and bit-identical values.
func (p *Params) Equal(other *Params) bool {
	if p.SameShape(other) != nil {
		return false
	}
	for i, v := range p.Values {
		if other.Values[i] != v {
			return false
		}
	}
	return true
}

func (p *Params) String() string {
	parts := make([]string, len(p.Values))
	for i, v := range p.Values {
		parts[i] = fmt.Sprintf("%s=%g", p.Names[i], v)
	}
	return "(" + strings.Join(parts, ", ") + ")"
}
