package cmd

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var cfgFile string
var verbose bool
var targetName string
var kernelName string
var kernelScale float64
var lowerBounds []float64
var upperBounds []float64
var randomSeed int64
var numSteps int
var numChains int
var thinEvery int
var burnIn int
var autoStop int
var multicore bool
var workers int

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "metromc",
	Short: "Metropolis-Hastings MCMC sampling",
	Long: `metromc runs a generic Metropolis-Hastings sampler over a target
log density. Among other features:

  - Normal, reflective (box-bounded), and adaptive-scale proposal kernels
  - Multiple independent chains with reproducible per-chain random streams
  - Epoch-based early stopping via Gelman-Rubin / Geweke diagnostics
  - Sequential or worker-pool execution with identical results
`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if verbose {
			logrus.SetLevel(logrus.DebugLevel)
		}
		return runSample(cmd)
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "YAML run config (flags override file values)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Verbose logging (default is much more parsimonious)")

	rootCmd.Flags().StringVarP(&targetName, "target", "t", "normal", "Built-in target density (normal or banana)")
	rootCmd.Flags().StringVarP(&kernelName, "kernel", "k", "normal", "Proposal kernel (normal, reflective, adapt)")
	rootCmd.Flags().Float64Var(&kernelScale, "scale", 1.0, "Kernel step scale")
	rootCmd.Flags().Float64SliceVar(&lowerBounds, "lb", nil, "Lower bounds for the reflective kernel")
	rootCmd.Flags().Float64SliceVar(&upperBounds, "ub", nil, "Upper bounds for the reflective kernel")
	rootCmd.Flags().Int64VarP(&randomSeed, "seed", "r", 1, "Random seed to use")
	rootCmd.Flags().IntVarP(&numSteps, "steps", "n", 5000, "Iterations per chain")
	rootCmd.Flags().IntVar(&numChains, "chains", 1, "Number of independent chains")
	rootCmd.Flags().IntVar(&thinEvery, "thin", 1, "Keep every thin-th sample")
	rootCmd.Flags().IntVar(&burnIn, "burnin", -1, "Burn-in (default is half the steps)")
	rootCmd.Flags().IntVar(&autoStop, "autostop", 500, "Convergence-check interval (0 disables)")
	rootCmd.Flags().BoolVar(&multicore, "multicore", false, "Run chains on a worker pool")
	rootCmd.Flags().IntVar(&workers, "workers", 0, "Worker pool size (0 means available parallelism)")

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
