package model

import (
	"fmt"

	"github.com/pkg/errors"
)

// ConfigError is a fatal pre-run error: an invalid run setting, a malformed
// initial vector, or an extra-argument mismatch. No sampling work is done
// once one is raised.
type ConfigError struct {
	Field string
	Value interface{}
	Msg   string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("Invalid configuration %s=%v: %s", e.Field, e.Value, e.Msg)
}

// Configf creates a ConfigError identifying the offending field and value.
func Configf(field string, value interface{}, format string, args ...interface{}) error {
	return &ConfigError{
		Field: field,
		Value: value,
		Msg:   fmt.Sprintf(format, args...),
	}
}

// IsConfigError reports whether err is (or wraps) a ConfigError.
func IsConfigError(err error) bool {
	var ce *ConfigError
	return errors.As(err, &ce)
}

// EvalError is a fatal mid-run error: the evaluator produced NaN or +Inf for
// some proposal. It aborts every chain, not just the one that hit it.
type EvalError struct {
	Chain int
	Iter  int
	Value float64
	At    *Params
}

func (e *EvalError) Error() string {
	return fmt.Sprintf(
		"Evaluator returned %v at chain %d iteration %d for %v (check kernel bounds and the evaluator domain)",
		e.Value, e.Chain, e.Iter, e.At)
}

// Evalf creates an EvalError carrying the failing value and location.
func Evalf(chain int, iter int, value float64, at *Params) error {
	return &EvalError{
		Chain: chain,
		Iter:  iter,
		Value: value,
		At:    at,
	}
}

// IsEvalError reports whether err is (or wraps) an EvalError.
func IsEvalError(err error) bool {
	var ee *EvalError
	return errors.As(err, &ee)
}
