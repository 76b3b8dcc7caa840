package model

import (
	"math"
	"sort"

	"github.com/pkg/errors"
)

// Extras carries named extra arguments that are forwarded verbatim to the
// evaluator on every call.
type Extras map[string]interface{}

// An Evaluator computes the (unnormalized) log density of the target
// distribution at a parameter vector. The returned value must be a finite
// real number or -Inf for zero-density regions; NaN or +Inf aborts the
// entire run.
//
// ExtraNames declares exactly which extra-argument names the evaluator
// requires. The set of keys supplied to a run must match this list, which
// is checked up front rather than discovered by reflection mid-run.
type Evaluator interface {
	LogDensity(p *Params, extra Extras) float64
	ExtraNames() []string
}

// LogDensityFunc adapts a plain function taking no extra arguments.
type LogDensityFunc func(p *Params) float64

// LogDensity implements Evaluator.
func (f LogDensityFunc) LogDensity(p *Params, _ Extras) float64 {
	return f(p)
}

// ExtraNames implements Evaluator: a plain function declares none.
func (f LogDensityFunc) ExtraNames() []string {
	return nil
}

// ValidateExtras checks the supplied extra-argument keys against the
// evaluator's declared list. A mismatch in either direction is a fatal
// configuration error.
func ValidateExtras(ev Evaluator, extra Extras) error {
	want := ev.ExtraNames()

	if len(extra) != len(want) {
		return Configf("extra_args", keyList(extra),
			"Evaluator declares extra args %v but %d were supplied", want, len(extra))
	}
	for _, n := range want {
		if _, ok := extra[n]; !ok {
			return Configf("extra_args", keyList(extra),
				"Evaluator requires extra arg %q which was not supplied", n)
		}
	}

	return nil
}

func keyList(extra Extras) []string {
	ks := make([]string, 0, len(extra))
	for k := range extra {
		ks = append(ks, k)
	}
	sort.Strings(ks)
	return ks
}

// CheckLogDensity returns an error for values an evaluator is not allowed to
// produce (NaN or +Inf). -Inf is a legal zero-density result.
func CheckLogDensity(v float64) error {
	if math.IsNaN(v) {
		return errors.Errorf("Log density is NaN")
	}
	if math.IsInf(v, 1) {
		return errors.Errorf("Log density is +Inf")
	}
	return nil
}
