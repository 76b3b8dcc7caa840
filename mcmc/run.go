package mcmc

import (
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"metromc/convergence"
	"metromc/kernel"
	"metromc/model"
	"metromc/rand"
)

// Run is the top-level entry point: validate everything, run all chains to
// completion or early stop, and trim each trace into a SampleSet.
//
// initial is either a single vector (broadcast across chains with a logged
// warning when NChains > 1) or exactly one vector per chain, all of the
// same shape. A nil kernel or checker selects the defaults (unit Gaussian
// walk; Gelman-Rubin across chains, Geweke on a single chain). extra is
// forwarded verbatim to the evaluator and its key set must exactly match
// the evaluator's declared ExtraNames.
//
// All validation happens before a single evaluator call; sampling failures
// abort the run with no partial output.
func Run(ev model.Evaluator, initial []*model.Params, k kernel.Kernel, ck convergence.Checker, cfg Config, extra model.Extras) ([]*SampleSet, error) {
	if ev == nil {
		return nil, model.Configf("loglik", nil, "An evaluator is required")
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if err := model.ValidateExtras(ev, extra); err != nil {
		return nil, err
	}

	starts, err := broadcastInitial(initial, cfg.NChains)
	if err != nil {
		return nil, err
	}

	if k == nil {
		k = kernel.Default()
	}
	if ck == nil {
		ck = convergence.NewAuto()
	}

	chains := make([]*Chain, cfg.NChains)
	for i := range chains {
		gen := rand.NewChainStream(cfg.Seed, i)
		chains[i], err = NewChain(i, ev, k, gen, starts[i], extra)
		if err != nil {
			return nil, errors.Wrapf(err, "Could not set up chain %d", i)
		}
	}

	orc, err := NewOrchestrator(chains, ck, cfg)
	if err != nil {
		return nil, err
	}
	if err := orc.Run(); err != nil {
		return nil, err
	}

	sets := make([]*SampleSet, len(chains))
	for i, c := range chains {
		sets[i], err = NewSampleSet(c, cfg.BurnIn, cfg.Thin)
		if err != nil {
			return nil, errors.Wrapf(err, "Could not trim chain %d", i)
		}
	}

	return sets, nil
}

// broadcastInitial resolves the caller's initial vector(s) against the
// chain count: a single vector fans out to every chain (warned, non-fatal),
// anything else must be exactly one same-shaped vector per chain.
func broadcastInitial(initial []*model.Params, nchains int) ([]*model.Params, error) {
	if len(initial) < 1 || initial[0] == nil {
		return nil, model.Configf("initial", initial, "At least one initial parameter vector is required")
	}

	if len(initial) == 1 && nchains > 1 {
		logrus.Warnf("Broadcasting a single initial vector across %d chains", nchains)
		starts := make([]*model.Params, nchains)
		for i := range starts {
			starts[i] = initial[0].Clone()
		}
		return starts, nil
	}

	if len(initial) != nchains {
		return nil, model.Configf("initial", len(initial),
			"Need one initial vector (broadcast) or exactly %d, got %d", nchains, len(initial))
	}

	starts := make([]*model.Params, nchains)
	for i, p := range initial {
		if p == nil {
			return nil, model.Configf("initial", nil, "Initial vector %d is nil", i)
		}
		if err := initial[0].SameShape(p); err != nil {
			return nil, model.Configf("initial", p, "Initial vector %d shape mismatch: %v", i, err)
		}
		starts[i] = p.Clone()
	}
	return starts, nil
}
