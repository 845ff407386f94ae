// Command reviewctl runs the sentiment resolver and the dashboard aggregates
// from the terminal, against the same dataset and model as the API.
package main

import (
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"review_dash/internal/adapters/observability"
	"review_dash/internal/shared"
)

var rootCmd = &cobra.Command{
	Use:           "reviewctl",
	Short:         "Inspect the review dataset and resolve sentiment",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		cfg = shared.Load()
		if datasetPath != "" {
			cfg.DatasetPath = datasetPath
		}
		if modelPath != "" {
			cfg.ModelPath = modelPath
		}
		log.Logger = observability.NewLogger(cfg.AppEnv).Level(logLevel())
	},
}

var (
	cfg         shared.Config
	datasetPath string
	modelPath   string
	verbose     bool
)

func init() {
	rootCmd.PersistentFlags().StringVar(&datasetPath, "dataset", "", "path to the review CSV (overrides DATASET_PATH)")
	rootCmd.PersistentFlags().StringVar(&modelPath, "model", "", "path to the model artifact (overrides MODEL_PATH)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log at debug level")
	rootCmd.AddCommand(predictCmd, overviewCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		log.Error().Err(err).Msg("reviewctl failed")
		os.Exit(1)
	}
}

func logLevel() zerolog.Level {
	if verbose {
		return zerolog.DebugLevel
	}
	return zerolog.WarnLevel
}
