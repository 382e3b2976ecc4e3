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
	"tourism-reviews/services"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze <category>",
	Short: "Search a category, collect every review and analyze the results",
	Long: `Runs the full flow for one category: search, review collection for every
result (bounded by pipeline.concurrency), per-business analysis and a
category summary. Businesses whose reviews could not be collected are
listed as failures; the run continues without them.`,
	Example: `  tourism-reviews analyze hoteles
  tourism-reviews analyze viñedos --location "Calvillo, Aguascalientes" --csv --chart`,
	Args: cobra.ExactArgs(1),
	RunE: runAnalyze,
}

func init() {
	f := analyzeCmd.Flags()
	f.String("location", "", "location to search in (default: maps.default_location)")
	f.Bool("json", false, "print the report as JSON")
	f.Bool("csv", false, "write every review to export.csv_path")
	f.Bool("chart", false, "render an HTML chart to export.chart_path")

	rootCmd.AddCommand(analyzeCmd)
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	category, err := models.ParseCategory(args[0])
	if err != nil {
		return err
	}
	location, _ := cmd.Flags().GetString("location")
	asJSON, _ := cmd.Flags().GetBool("json")
	toCSV, _ := cmd.Flags().GetBool("csv")
	toChart, _ := cmd.Flags().GetBool("chart")

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var report *services.CategoryReport
	err = withSession(ctx, func(s *maps.Session) error {
		p, err := newPipeline(s)
		if err != nil {
			return err
		}
		report, err = p.RunCategory(ctx, category, location)
		return err
	})
	if err != nil {
		return err
	}

	if toCSV {
		if err := writeReportCSV(cfg.Export.CSVPath, report); err != nil {
			return err
		}
		logger.Info("[cli] Reviews saved to %s", cfg.Export.CSVPath)
	}
	if toChart {
		if err := export.RenderChartFile(cfg.Export.ChartPath, report); err != nil {
			return err
		}
		logger.Info("[cli] Chart saved to %s", cfg.Export.ChartPath)
	}

	if asJSON {
		return export.WriteJSON(cmd.OutOrStdout(), report)
	}
	export.PrintCategory(cmd.OutOrStdout(), report)
	return nil
}

func writeReportCSV(path string, report *services.CategoryReport) error {
	w, err := export.NewCSVWriter(path)
	if err != nil {
		return err
	}
	businesses := make([]models.Business, len(report.Businesses))
	for i, br := range report.Businesses {
		businesses[i] = br.Business
	}
	if err := w.WriteBusinesses(businesses); err != nil {
		_ = w.Close()
		return eris.Wrap(err, "write reviews csv")
	}
	return eris.Wrap(w.Close(), "close reviews csv")
}
