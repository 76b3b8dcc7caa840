package mcmc

import (
	"runtime"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"metromc/convergence"
	"metromc/model"
)

// Orchestrator drives all chains through bounded epochs with a barrier at
// every epoch boundary. When AutoStop > 0 the convergence checker runs at
// each barrier and may stop the run early; samples already collected are
// always kept. When AutoStop is 0 there is a single epoch of NSteps.
//
// The final epoch is clamped to the remaining step budget when AutoStop
// does not divide NSteps evenly.
type Orchestrator struct {
	Chains  []*Chain
	Checker convergence.Checker
	Cfg     Config

	// StepsRun is the cumulative per-chain step count after Run returns.
	StepsRun int
}

// NewOrchestrator wires up a run over already-constructed chains.
func NewOrchestrator(chains []*Chain, ck convergence.Checker, cfg Config) (*Orchestrator, error) {
	if len(chains) < 1 {
		return nil, errors.Errorf("At least one chain is required")
	}
	if cfg.AutoStop > 0 && ck == nil {
		return nil, errors.Errorf("AutoStop requires a convergence checker")
	}

	return &Orchestrator{
		Chains:  chains,
		Checker: ck,
		Cfg:     cfg,
	}, nil
}

// poolSize returns the worker-pool size for this run: the configured hint
// capped by the chain count, defaulting to the available parallelism.
func (o *Orchestrator) poolSize() int {
	w := o.Cfg.Workers
	if w < 1 {
		w = runtime.GOMAXPROCS(0)
	}
	if w > len(o.Chains) {
		w = len(o.Chains)
	}
	return w
}

// Run executes the epoch loop to completion or early stop. An evaluation
// failure in any chain aborts the run: the failure is held until the epoch
// barrier, where the surviving chains have already finished their epoch and
// no further work is dispatched for any of them. That is the intended
// teardown granularity: there is no mid-epoch cancellation, so a chain is
// never abandoned partway through an epoch and partial epoch output never
// leaks into the result.
func (o *Orchestrator) Run() error {
	// The pool is scoped to this run: goroutines are all joined at each
	// barrier, so every exit path below leaves nothing running.
	var pool *errgroup.Group
	if o.Cfg.Multicore {
		pool = &errgroup.Group{}
		pool.SetLimit(o.poolSize())
	}

	done := 0
	for done < o.Cfg.NSteps {
		epoch := o.Cfg.NSteps - done
		if o.Cfg.AutoStop > 0 && o.Cfg.AutoStop < epoch {
			epoch = o.Cfg.AutoStop
		}

		if err := o.runEpoch(pool, epoch); err != nil {
			return err
		}
		done += epoch
		o.StepsRun = done

		if o.Cfg.AutoStop > 0 && done < o.Cfg.NSteps {
			v := o.Checker.Evaluate(o.histories())
			if v.Converged {
				logrus.Infof("Convergence reached after %d steps (stat=%g), stopping early", done, v.Stat)
				return nil
			}
			logrus.Debugf("Epoch done at %d/%d steps, not converged (stat=%g)", done, o.Cfg.NSteps, v.Stat)
		}
	}

	return nil
}

// runEpoch advances every chain by exactly n steps and waits for all of
// them. Sequential mode is a plain loop; pool mode dispatches one task per
// chain and the Wait call is the epoch barrier.
func (o *Orchestrator) runEpoch(pool *errgroup.Group, n int) error {
	if pool == nil {
		for _, c := range o.Chains {
			if err := c.Advance(n); err != nil {
				return err
			}
		}
		return nil
	}

	for _, c := range o.Chains {
		c := c
		pool.Go(func() error {
			return c.Advance(n)
		})
	}
	return pool.Wait()
}

// histories snapshots every chain's trace for the checker.
func (o *Orchestrator) histories() [][]*model.Params {
	hs := make([][]*model.Params, len(o.Chains))
	for i, c := range o.Chains {
		hs[i] = c.Trace()
	}
	return hs
}
