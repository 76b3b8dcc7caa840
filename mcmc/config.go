// Package mcmc is the Metropolis-Hastings sampling engine: the single-chain
// runner, the multi-chain orchestrator with epoch-based early stopping, and
// the burn-in/thinning post-processor.
package mcmc

import (
	"metromc/model"
)

// Config holds the settings for one sampling run.
type Config struct {
	NSteps    int   // iterations per chain (upper bound when AutoStop > 0)
	NChains   int   // number of independent chains
	Thin      int   // keep every Thin-th retained sample
	BurnIn    int   // samples dropped from the front of each trace
	AutoStop  int   // epoch length for convergence checks; 0 disables
	Multicore bool  // run chains on a worker pool instead of sequentially
	Workers   int   // pool size hint; 0 means available parallelism
	Seed      int64 // master seed for all chain substreams
}

// DefaultConfig returns the standard settings for a run of nsteps
// iterations: one chain, no thinning, burn-in of half the run, convergence
// checks every 500 steps, sequential execution.
func DefaultConfig(nsteps int) Config {
	return Config{
		NSteps:   nsteps,
		NChains:  1,
		Thin:     1,
		BurnIn:   nsteps / 2,
		AutoStop: 500,
		Seed:     1,
	}
}

// Validate fails fast on settings that would otherwise only blow up after a
// costly sampling run.
func (c *Config) Validate() error {
	if c.NSteps < 1 {
		return model.Configf("nsteps", c.NSteps, "Must be a positive number of steps")
	}
	if c.NChains < 1 {
		return model.Configf("nchains", c.NChains, "At least one chain is required")
	}
	if c.Thin < 1 || c.Thin >= c.NSteps {
		return model.Configf("thin", c.Thin, "Must satisfy 1 <= thin < nsteps (nsteps=%d)", c.NSteps)
	}
	if c.BurnIn < 0 || c.BurnIn >= c.NSteps {
		return model.Configf("burnin", c.BurnIn, "Must satisfy 0 <= burnin < nsteps (nsteps=%d)", c.NSteps)
	}
	if c.AutoStop < 0 {
		return model.Configf("autostop", c.AutoStop, "Must be a single non-negative interval")
	}
	if c.Workers < 0 {
		return model.Configf("workers", c.Workers, "Worker pool size cannot be negative")
	}
	return nil
}
