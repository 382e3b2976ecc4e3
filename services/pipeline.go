package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/rotisserie/eris"
	"golang.org/x/sync/errgroup"

	"tourism-reviews/config"
	"tourism-reviews/models"
	"tourism-reviews/scraper/maps"
	"tourism-reviews/utils"
)

// Scraper is the part of a scrape session the pipeline drives.
// *maps.Session satisfies it.
type Scraper interface {
	SearchBusinesses(ctx context.Context, category models.Category, location string) ([]models.Business, error)
	GetBusinessFromURL(ctx context.Context, url string) (*models.Business, error)
	GetReviews(ctx context.Context, business models.Business) ([]models.Review, error)
}

// BusinessReport is one business with its reviews and, when it has any,
// its analysis. Note says why Analysis is absent.
type BusinessReport struct {
	Business models.Business          `json:"business"`
	Analysis *models.BusinessAnalysis `json:"analysis,omitempty"`
	Note     string                   `json:"note,omitempty"`
}

// CategoryReport is the outcome of one category run. Failures maps a
// business name to the error that kept its reviews from being collected.
type CategoryReport struct {
	Category   models.Category          `json:"category"`
	Location   string                   `json:"location"`
	Businesses []BusinessReport         `json:"businesses"`
	Analysis   *models.CategoryAnalysis `json:"analysis,omitempty"`
	Failures   map[string]string        `json:"failures,omitempty"`
	Note       string                   `json:"note,omitempty"`
}

// PipelineOptions tunes a Pipeline.
type PipelineOptions struct {
	DefaultLocation string
	// Concurrency bounds simultaneous review fetches.
	Concurrency int
	// RetryAttempts is the number of tries per scrape call; 1 disables retry.
	RetryAttempts  int
	RetryBaseDelay time.Duration
}

// PipelineOptionsFromConfig derives pipeline options from application config.
func PipelineOptionsFromConfig(cfg *config.Config) PipelineOptions {
	return PipelineOptions{
		DefaultLocation: cfg.Maps.DefaultLocation,
		Concurrency:     cfg.Pipeline.Concurrency,
		RetryAttempts:   cfg.Pipeline.RetryAttempts,
		RetryBaseDelay:  cfg.Pipeline.RetryBaseDelay(),
	}
}

// Pipeline runs search → reviews → analysis over a Scraper.
type Pipeline struct {
	scraper  Scraper
	analyzer *Analyzer
	cleaner  *Cleaner
	opts     PipelineOptions
	retry    *utils.RetryConfig
	logger   *utils.Logger
}

// NewPipeline wires a Pipeline.
func NewPipeline(scraper Scraper, analyzer *Analyzer, opts PipelineOptions, logger *utils.Logger) *Pipeline {
	if logger == nil {
		logger = utils.NopLogger()
	}
	if opts.Concurrency < 1 {
		opts.Concurrency = 1
	}
	return &Pipeline{
		scraper:  scraper,
		analyzer: analyzer,
		cleaner:  NewCleaner(logger),
		opts:     opts,
		retry: &utils.RetryConfig{
			MaxAttempts: opts.RetryAttempts,
			BaseDelay:   opts.RetryBaseDelay,
			Logger:      logger,
			Retryable:   maps.IsRetryable,
		},
		logger: logger,
	}
}

// RunCategory searches category in location, collects the reviews of every
// result and analyzes them. A failed search fails the run; a failed review
// fetch is recorded in Failures and the run goes on.
func (p *Pipeline) RunCategory(ctx context.Context, category models.Category, location string) (*CategoryReport, error) {
	location = strings.TrimSpace(location)
	if location == "" {
		location = p.opts.DefaultLocation
	}
	p.logger.Info("[pipeline] Running %s in %s", category.Label(), location)

	var found []models.Business
	err := p.retry.Do(ctx, fmt.Sprintf("search %s", category), func(ctx context.Context) error {
		var err error
		found, err = p.scraper.SearchBusinesses(ctx, category, location)
		return err
	})
	if err != nil {
		return nil, err
	}
	businesses := p.cleaner.Dedupe(found, category)

	report := &CategoryReport{
		Category:   category,
		Location:   location,
		Businesses: make([]BusinessReport, len(businesses)),
		Failures:   make(map[string]string),
	}

	var mu sync.Mutex
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(p.opts.Concurrency)
	for i, b := range businesses {
		i, b := i, b
		g.Go(func() error {
			reviews, err := p.fetchReviews(gctx, b)
			if err != nil {
				if ctx.Err() != nil {
					return ctx.Err()
				}
				p.logger.Warn("[pipeline] Reviews for %q failed: %v", b.Name, err)
				mu.Lock()
				report.Failures[failureKey(report.Failures, b)] = err.Error()
				mu.Unlock()
				report.Businesses[i] = BusinessReport{Business: b, Note: "reviews unavailable"}
				return nil
			}
			report.Businesses[i] = p.analyze(p.cleaner.AttachReviews(b, reviews))
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, eris.Wrapf(err, "pipeline: %s run interrupted", category)
	}

	collected := make([]models.Business, len(report.Businesses))
	for i, br := range report.Businesses {
		collected[i] = br.Business
	}
	analysis, err := p.analyzer.AnalyzeCategory(collected)
	switch {
	case err == nil:
		report.Analysis = analysis
	case errors.Is(err, ErrNoBusinesses), errors.Is(err, ErrNoReviews):
		report.Note = err.Error()
	default:
		return nil, err
	}

	p.logger.Info("[pipeline] %s done: %d businesses, %d failures",
		category.Label(), len(report.Businesses), len(report.Failures))
	return report, nil
}

// RunURL looks up one business by URL, collects its reviews and analyzes it.
func (p *Pipeline) RunURL(ctx context.Context, rawURL string) (*BusinessReport, error) {
	var business *models.Business
	err := p.retry.Do(ctx, "business lookup", func(ctx context.Context) error {
		var err error
		business, err = p.scraper.GetBusinessFromURL(ctx, rawURL)
		return err
	})
	if err != nil {
		return nil, err
	}

	reviews, err := p.fetchReviews(ctx, *business)
	if err != nil {
		return nil, err
	}
	report := p.analyze(p.cleaner.AttachReviews(*business, reviews))
	return &report, nil
}

// FetchReviews collects and attaches the reviews of one business.
func (p *Pipeline) FetchReviews(ctx context.Context, b models.Business) (models.Business, error) {
	reviews, err := p.fetchReviews(ctx, b)
	if err != nil {
		return b, err
	}
	return p.cleaner.AttachReviews(b, reviews), nil
}

func (p *Pipeline) fetchReviews(ctx context.Context, b models.Business) ([]models.Review, error) {
	var reviews []models.Review
	err := p.retry.Do(ctx, fmt.Sprintf("reviews %q", b.Name), func(ctx context.Context) error {
		var err error
		reviews, err = p.scraper.GetReviews(ctx, b)
		return err
	})
	return reviews, err
}

func (p *Pipeline) analyze(b models.Business) BusinessReport {
	analysis, err := p.analyzer.AnalyzeBusiness(b)
	if err != nil {
		return BusinessReport{Business: b, Note: err.Error()}
	}
	return BusinessReport{Business: b, Analysis: analysis}
}

// failureKey is the business name, qualified by address on collision.
func failureKey(failures map[string]string, b models.Business) string {
	if _, taken := failures[b.Name]; !taken || b.Address == "" {
		return b.Name
	}
	return b.Name + " (" + b.Address + ")"
}
