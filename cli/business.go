package cli

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"tourism-reviews/export"
	"tourism-reviews/models"
	"tourism-reviews/scraper/maps"
)

var businessCmd = &cobra.Command{
	Use:   "business <url>",
	Short: "Look up one business by its maps URL and analyze its reviews",
	Args:  cobra.ExactArgs(1),
	RunE:  runBusiness,
}

var reviewsCmd = &cobra.Command{
	Use:   "reviews <url>",
	Short: "Collect the reviews of one business by its maps URL",
	Args:  cobra.ExactArgs(1),
	RunE:  runReviews,
}

func init() {
	businessCmd.Flags().Bool("json", false, "print JSON instead of a summary")

	f := reviewsCmd.Flags()
	f.Bool("json", false, "print JSON instead of a list")
	f.Bool("csv", false, "also write the reviews to export.csv_path")

	rootCmd.AddCommand(businessCmd, reviewsCmd)
}

func runBusiness(cmd *cobra.Command, args []string) error {
	asJSON, _ := cmd.Flags().GetBool("json")

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return withSession(ctx, func(s *maps.Session) error {
		p, err := newPipeline(s)
		if err != nil {
			return err
		}
		report, err := p.RunURL(ctx, args[0])
		if err != nil {
			return err
		}

		if asJSON {
			return export.WriteJSON(cmd.OutOrStdout(), report)
		}
		export.PrintBusiness(cmd.OutOrStdout(), report)
		return nil
	})
}

func runReviews(cmd *cobra.Command, args []string) error {
	asJSON, _ := cmd.Flags().GetBool("json")
	toCSV, _ := cmd.Flags().GetBool("csv")

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return withSession(ctx, func(s *maps.Session) error {
		p, err := newPipeline(s)
		if err != nil {
			return err
		}
		found, err := s.GetBusinessFromURL(ctx, args[0])
		if err != nil {
			return err
		}
		business, err := p.FetchReviews(ctx, *found)
		if err != nil {
			return err
		}

		if toCSV {
			w, err := export.NewCSVWriter(cfg.Export.CSVPath)
			if err != nil {
				return err
			}
			if err := w.WriteBusinesses([]models.Business{business}); err != nil {
				_ = w.Close()
				return eris.Wrap(err, "write reviews csv")
			}
			if err := w.Close(); err != nil {
				return eris.Wrap(err, "close reviews csv")
			}
			logger.Info("[cli] Reviews saved to %s", cfg.Export.CSVPath)
		}

		if asJSON {
			return export.WriteJSON(cmd.OutOrStdout(), business)
		}
		export.PrintReviews(cmd.OutOrStdout(), business)
		return nil
	})
}
