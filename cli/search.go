package cli

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"tourism-reviews/export"
	"tourism-reviews/models"
	"tourism-reviews/scraper/maps"
	"tourism-reviews/services"
)

var searchCmd = &cobra.Command{
	Use:   "search <category>",
	Short: "List the businesses of a category near a location",
	Example: `  tourism-reviews search museos
  tourism-reviews search viñedos --location "Calvillo, Aguascalientes" --json`,
	Args: cobra.ExactArgs(1),
	RunE: runSearch,
}

func init() {
	f := searchCmd.Flags()
	f.String("location", "", "location to search in (default: maps.default_location)")
	f.Bool("json", false, "print JSON instead of a table")

	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	category, err := models.ParseCategory(args[0])
	if err != nil {
		return err
	}
	location, _ := cmd.Flags().GetString("location")
	asJSON, _ := cmd.Flags().GetBool("json")

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return withSession(ctx, func(s *maps.Session) error {
		found, err := s.SearchBusinesses(ctx, category, location)
		if err != nil {
			return err
		}
		businesses := services.NewCleaner(logger).Dedupe(found, category)

		if asJSON {
			return export.WriteJSON(cmd.OutOrStdout(), businesses)
		}
		export.PrintBusinesses(cmd.OutOrStdout(), businesses)
		return nil
	})
}
