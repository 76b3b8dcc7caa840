package cmd

import (
	"os"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// fileConfig mirrors the run flags for YAML config files. Pointer fields so
// that absent keys leave the flag values alone.
type fileConfig struct {
	Target    *string    `yaml:"target"`
	Kernel    *string    `yaml:"kernel"`
	Scale     *float64   `yaml:"scale"`
	Lower     *[]float64 `yaml:"lower"`
	Upper     *[]float64 `yaml:"upper"`
	Seed      *int64     `yaml:"seed"`
	Steps     *int       `yaml:"steps"`
	Chains    *int       `yaml:"chains"`
	Thin      *int       `yaml:"thin"`
	BurnIn    *int       `yaml:"burnin"`
	AutoStop  *int       `yaml:"autostop"`
	Multicore *bool      `yaml:"multicore"`
	Workers   *int       `yaml:"workers"`
}

// applyConfigFile loads cfgFile (if set) and fills in any run settings it
// provides. Flags given on the command line win over file values. The
// command is passed in rather than read from the package var so the file
// load never references rootCmd from code reachable by its initializer.
func applyConfigFile(cmd *cobra.Command) error {
	if len(cfgFile) < 1 {
		return nil
	}

	raw, err := os.ReadFile(cfgFile)
	if err != nil {
		return errors.Wrapf(err, "Could not read config file %s", cfgFile)
	}

	var fc fileConfig
	if err := yaml.Unmarshal(raw, &fc); err != nil {
		return errors.Wrapf(err, "Could not parse config file %s", cfgFile)
	}

	set := cmd.Flags().Changed

	if fc.Target != nil && !set("target") {
		targetName = *fc.Target
	}
	if fc.Kernel != nil && !set("kernel") {
		kernelName = *fc.Kernel
	}
	if fc.Scale != nil && !set("scale") {
		kernelScale = *fc.Scale
	}
	if fc.Lower != nil && !set("lb") {
		lowerBounds = *fc.Lower
	}
	if fc.Upper != nil && !set("ub") {
		upperBounds = *fc.Upper
	}
	if fc.Seed != nil && !set("seed") {
		randomSeed = *fc.Seed
	}
	if fc.Steps != nil && !set("steps") {
		numSteps = *fc.Steps
	}
	if fc.Chains != nil && !set("chains") {
		numChains = *fc.Chains
	}
	if fc.Thin != nil && !set("thin") {
		thinEvery = *fc.Thin
	}
	if fc.BurnIn != nil && !set("burnin") {
		burnIn = *fc.BurnIn
	}
	if fc.AutoStop != nil && !set("autostop") {
		autoStop = *fc.AutoStop
	}
	if fc.Multicore != nil && !set("multicore") {
		multicore = *fc.Multicore
	}
	if fc.Workers != nil && !set("workers") {
		workers = *fc.Workers
	}

	return nil
}
