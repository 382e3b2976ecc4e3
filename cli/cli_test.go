package cli

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tourism-reviews/browser"
	"tourism-reviews/browser/browsertest"
	"tourism-reviews/config"
	"tourism-reviews/models"
	"tourism-reviews/scraper/maps"
	"tourism-reviews/services"
)

const testBase = "https://maps.test/maps"

func useFakeBrowser(t *testing.T, fb *browsertest.FakeBrowser) {
	t.Helper()
	prev := newLauncher
	newLauncher = func(*config.Config) browser.Launcher { return fb.Launcher() }
	t.Cleanup(func() { newLauncher = prev })

	t.Setenv("TOURISM_MAPS_BASE_URL", testBase)
	t.Setenv("TOURISM_LOG_LEVEL", "error")
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetArgs(nil)
	})
	err := rootCmd.Execute()
	return out.String(), err
}

func TestRootCommand_HasSubcommands(t *testing.T) {
	names := make(map[string]bool)
	for _, c := range rootCmd.Commands() {
		names[c.Name()] = true
	}
	for _, name := range []string{"search", "business", "reviews", "analyze", "serve", "categories"} {
		assert.True(t, names[name], "expected subcommand %q not found", name)
	}
}

func TestRootCommand_Metadata(t *testing.T) {
	assert.Equal(t, "tourism-reviews", rootCmd.Use)
	assert.NotEmpty(t, rootCmd.Short)
	assert.NotEmpty(t, rootCmd.Long)
}

func TestAnalyzeCommand_Flags(t *testing.T) {
	for _, name := range []string{"location", "json", "csv", "chart"} {
		assert.NotNil(t, analyzeCmd.Flags().Lookup(name), "analyze should have --%s", name)
	}
}

func TestServeCommand_Flags(t *testing.T) {
	flag := serveCmd.Flags().Lookup("port")
	require.NotNil(t, flag, "serve command should have --port flag")
	assert.Equal(t, "0", flag.DefValue)
}

func TestCategoriesCommand(t *testing.T) {
	t.Setenv("TOURISM_LOG_LEVEL", "error")
	out, err := execute(t, "categories")
	require.NoError(t, err)
	assert.Contains(t, out, "viñedos")
	assert.Contains(t, out, "Parques")
}

func TestSearchCommandRejectsUnknownCategory(t *testing.T) {
	fb := browsertest.New()
	useFakeBrowser(t, fb)

	_, err := execute(t, "search", "casinos")
	assert.Error(t, err)
	assert.Zero(t, fb.Launches(), "no browser for invalid input")
}

func TestAnalyzeCommandJSON(t *testing.T) {
	fb := browsertest.New()
	useFakeBrowser(t, fb)

	urls := maps.New(maps.Options{BaseURL: testBase}, fb.Launcher(), nil)
	fb.Serve(urls.SearchURL(models.Museums, "Calvillo"), `
		<div role="article"><div role="heading">Museo A</div><a href="/maps/place/A/data=!19sPA"></a></div>
		<div role="article"><div role="heading">Museo B</div><a href="/maps/place/B/data=!19sPB"></a></div>`)
	fb.Serve(urls.ReviewsURL("PA"), `
		<div data-review-id="1"><span role="img" aria-label="5 estrellas"></span><span class="wiI7pd">Excelente</span></div>
		<div data-review-id="2"><span role="img" aria-label="4 estrellas"></span><span class="wiI7pd">Bueno</span></div>`)
	fb.Serve(urls.ReviewsURL("PB"), `
		<div data-review-id="3"><span role="img" aria-label="3 estrellas"></span><span class="wiI7pd">Caro</span></div>`)

	t.Cleanup(func() { _ = analyzeCmd.Flags().Set("json", "false") })
	out, err := execute(t, "analyze", "museos", "--location", "Calvillo", "--json")
	require.NoError(t, err)

	var report services.CategoryReport
	require.NoError(t, json.Unmarshal([]byte(out), &report))
	assert.Equal(t, models.Museums, report.Category)
	assert.Equal(t, "Calvillo", report.Location)
	require.Len(t, report.Businesses, 2)
	require.NotNil(t, report.Analysis)
	assert.InDelta(t, 3.75, report.Analysis.AverageRating, 1e-9)
	assert.Equal(t, 3, report.Analysis.TotalReviews)
	assert.Equal(t, []string{"caro"}, report.Analysis.TopWeaknesses)

	assert.True(t, fb.Closed(), "session closed after the command")
	assert.Equal(t, 0, fb.OpenPages())
}
