// Package cli is the tourism-reviews command tree.
package cli

import (
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"tourism-reviews/config"
	"tourism-reviews/utils"
)

var (
	cfg    *config.Config
	logger *utils.Logger
)

var rootCmd = &cobra.Command{
	Use:   "tourism-reviews",
	Short: "Scrape and analyze reviews of tourism businesses",
	Long: `Searches the maps web UI for tourism businesses (vineyards, hotels,
restaurants, museums, parks), collects their public reviews through a
headless browser and summarises them with rating and keyword heuristics.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		c, err := config.Load()
		if err != nil {
			return eris.Wrap(err, "load config")
		}
		cfg = c

		l, err := utils.NewLogger(cfg.Log.Level, cfg.Log.Format)
		if err != nil {
			return eris.Wrap(err, "init logger")
		}
		logger = l
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

// Execute runs the command tree against os.Args.
func Execute() error {
	return rootCmd.Execute()
}
