package cli

import (
	"context"

	"tourism-reviews/browser"
	"tourism-reviews/config"
	"tourism-reviews/scraper/maps"
	"tourism-reviews/services"
)

// newLauncher builds the browser launcher for a command. Tests replace it.
var newLauncher = func(c *config.Config) browser.Launcher {
	return browser.NewChrome(browser.ChromeOptions{
		Headless:  c.Browser.Headless,
		ExecPath:  c.Browser.ChromeBin,
		UserAgent: c.Browser.UserAgent,
	})
}

// withSession runs fn on an initialized session and closes it afterwards.
func withSession(ctx context.Context, fn func(*maps.Session) error) error {
	s := maps.New(maps.OptionsFromConfig(cfg), newLauncher(cfg), logger)
	if err := s.Initialize(ctx); err != nil {
		return err
	}
	defer func() {
		if err := s.Close(); err != nil {
			logger.Warn("[cli] close session: %v", err)
		}
	}()
	return fn(s)
}

func newPipeline(s services.Scraper) (*services.Pipeline, error) {
	kw, err := config.LoadKeywords(cfg.Keywords.Path)
	if err != nil {
		return nil, err
	}
	analyzer := services.NewAnalyzer(kw, logger)
	return services.NewPipeline(s, analyzer, services.PipelineOptionsFromConfig(cfg), logger), nil
}
