package cli

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"tourism-reviews/scraper/maps"
	"tourism-reviews/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve category and business reports over HTTP",
	Long: `Starts one browser session and serves:

  GET /ping
  GET /v1/categories
  GET /v1/categories/{category}/analysis?location=
  GET /v1/business?url=`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().Int("port", 0, "port to listen on (0 = server.port)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	port, _ := cmd.Flags().GetInt("port")
	if port == 0 {
		port = cfg.Server.Port
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return withSession(ctx, func(s *maps.Session) error {
		p, err := newPipeline(s)
		if err != nil {
			return err
		}
		return server.New(p, port, logger).Start(ctx)
	})
}
