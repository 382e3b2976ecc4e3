package export

import (
	"io"
	"math"
	"os"
	"path/filepath"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/rotisserie/eris"

	"tourism-reviews/services"
)

// RenderChart writes an HTML bar chart of the overall score and the number
// of collected reviews of every analyzed business in report.
func RenderChart(w io.Writer, report *services.CategoryReport) error {
	if report == nil {
		return eris.New("chart: nil report")
	}

	var (
		names   []string
		scores  []opts.BarData
		reviews []opts.BarData
	)
	for _, br := range report.Businesses {
		if br.Analysis == nil {
			continue
		}
		names = append(names, br.Business.Name)
		scores = append(scores, opts.BarData{Value: math.Round(br.Analysis.OverallScore*100) / 100})
		reviews = append(reviews, opts.BarData{Value: len(br.Business.Reviews)})
	}

	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			PageTitle: report.Category.Label() + " · " + report.Location,
			Width:     "1000px",
			Height:    "600px",
		}),
		charts.WithTitleOpts(opts.Title{
			Title:    report.Category.Label(),
			Subtitle: report.Location,
		}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true)}),
		charts.WithYAxisOpts(opts.YAxis{Name: "Calificación", Min: 0, Max: 5}),
	)
	bar.ExtendYAxis(opts.YAxis{Name: "Reseñas"})

	bar.SetXAxis(names).
		AddSeries("Calificación", scores).
		AddSeries("Reseñas", reviews, charts.WithBarChartOpts(opts.BarChart{YAxisIndex: 1}))

	if err := bar.Render(w); err != nil {
		return eris.Wrap(err, "chart: render")
	}
	return nil
}

// RenderChartFile renders the chart of report to path, creating directories.
func RenderChartFile(path string, report *services.CategoryReport) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return eris.Wrap(err, "chart: create output dir")
	}
	f, err := os.Create(path)
	if err != nil {
		return eris.Wrapf(err, "chart: create file %q", path)
	}
	defer f.Close()
	return RenderChart(f, report)
}
