// Package maps scrapes business listings and reviews from the maps web UI
// through a browser.Browser.
//
// A Session owns one browser process. Every operation opens its own tab and
// closes it on every exit path, so operations may run concurrently.
package maps

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"

	"tourism-reviews/browser"
	"tourism-reviews/config"
	"tourism-reviews/models"
	"tourism-reviews/utils"
)

// State is the lifecycle state of a Session.
type State int

const (
	Uninitialized State = iota
	Ready
	Closed
)

func (s State) String() string {
	switch s {
	case Uninitialized:
		return "uninitialized"
	case Ready:
		return "ready"
	case Closed:
		return "closed"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// Options configures a Session.
type Options struct {
	// BaseURL is the maps root, e.g. "https://www.google.com/maps".
	BaseURL string
	// DefaultLocation is used by SearchBusinesses when none is given.
	DefaultLocation string
	// WaitTimeout bounds every wait for an expected element.
	WaitTimeout time.Duration
	// OperationTimeout bounds one whole operation. Zero means no bound
	// beyond the caller's context.
	OperationTimeout time.Duration
}

// OptionsFromConfig derives session options from application config.
func OptionsFromConfig(cfg *config.Config) Options {
	return Options{
		BaseURL:          cfg.Maps.BaseURL,
		DefaultLocation:  cfg.Maps.DefaultLocation,
		WaitTimeout:      cfg.Browser.WaitTimeout(),
		OperationTimeout: cfg.Browser.NavigationTimeout(),
	}
}

// Session is a long-lived scraping context over one browser.
type Session struct {
	opts   Options
	launch browser.Launcher
	logger *utils.Logger
	newID  func() string

	// Operations hold mu for reading; Initialize and Close hold it for writing,
	// so Close waits for in-flight operations to release their tabs.
	mu      sync.RWMutex
	state   State
	browser browser.Browser
}

// New returns an uninitialized Session.
func New(opts Options, launch browser.Launcher, logger *utils.Logger) *Session {
	if logger == nil {
		logger = utils.NopLogger()
	}
	opts.BaseURL = strings.TrimRight(opts.BaseURL, "/")
	if opts.WaitTimeout <= 0 {
		opts.WaitTimeout = 10 * time.Second
	}
	return &Session{
		opts:   opts,
		launch: launch,
		logger: logger,
		newID:  uuid.NewString,
	}
}

// State reports the current lifecycle state.
func (s *Session) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// Initialize launches the browser. On failure the session stays
// Uninitialized and may be initialized again.
func (s *Session) Initialize(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch s.state {
	case Ready:
		return ErrAlreadyInitialized
	case Closed:
		return ErrSessionClosed
	}

	b, err := s.launch(ctx)
	if err != nil {
		s.logger.Error("[maps] Browser launch failed: %v", err)
		return eris.Wrap(err, "maps: launch browser")
	}
	s.browser = b
	s.state = Ready
	s.logger.Info("[maps] Browser ready")
	return nil
}

// Close releases the browser. It is idempotent; an uninitialized session
// simply becomes Closed.
func (s *Session) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != Ready {
		s.state = Closed
		return nil
	}
	s.state = Closed
	b := s.browser
	s.browser = nil
	if err := b.Close(); err != nil {
		return eris.Wrap(err, "maps: close browser")
	}
	s.logger.Info("[maps] Browser closed")
	return nil
}

// GetBusinessFromURL opens a listing page and extracts its header fields.
// Reviews are not collected; the result's Reviews is empty.
func (s *Session) GetBusinessFromURL(ctx context.Context, rawURL string) (*models.Business, error) {
	const op = "business"
	rawURL = strings.TrimSpace(rawURL)
	if rawURL == "" {
		return nil, eris.New("maps: business: empty url")
	}

	var business models.Business
	err := s.withPage(ctx, op, func(ctx context.Context, page browser.Page) error {
		if err := s.navigate(ctx, op, page, rawURL); err != nil {
			return err
		}
		if err := s.waitFor(ctx, op, page, listingTitleSelector); err != nil {
			return err
		}
		html, err := snapshot(ctx, op, page)
		if err != nil {
			return err
		}

		// Short links redirect; the final location carries the place id.
		location := rawURL
		var current string
		if err := page.Evaluate(ctx, browser.LocationScript, &current); err != nil {
			s.logger.Debug("[maps] %s: read location: %v", op, err)
		} else if current != "" {
			location = current
		}

		business, err = parseBusinessPage(html, location)
		return err
	})
	if err != nil {
		s.logFailure(op, rawURL, err)
		return nil, err
	}

	s.logger.Info("[maps] Business %q extracted (rating %.1f, %d reviews reported)",
		business.Name, business.Rating, business.TotalReviews)
	return &business, nil
}

// SearchBusinesses runs "<category> en <location>" and returns one Business
// per result card. An empty location selects the default. A query the page
// reports as matching nothing yields an empty slice; a page that shows
// neither cards nor that report fails with ExtractionTimeoutError.
func (s *Session) SearchBusinesses(ctx context.Context, category models.Category, location string) ([]models.Business, error) {
	const op = "search"
	location = strings.TrimSpace(location)
	if location == "" {
		location = s.opts.DefaultLocation
	}
	target := s.SearchURL(category, location)

	var businesses []models.Business
	err := s.withPage(ctx, op, func(ctx context.Context, page browser.Page) error {
		if err := s.navigate(ctx, op, page, target); err != nil {
			return err
		}
		if err := s.waitFor(ctx, op, page, searchWaitSelector); err != nil {
			return err
		}
		html, err := snapshot(ctx, op, page)
		if err != nil {
			return err
		}
		businesses, err = parseSearchResults(html, s.opts.BaseURL)
		return err
	})
	if err != nil {
		s.logFailure(op, target, err)
		return nil, err
	}

	s.logger.Info("[maps] Search %q in %q returned %d results", category, location, len(businesses))
	return businesses, nil
}

// GetReviews opens the review listing of business and extracts every
// rendered review card. The business must carry a place id, either directly
// or inside its URL.
func (s *Session) GetReviews(ctx context.Context, business models.Business) ([]models.Review, error) {
	const op = "reviews"
	placeID := business.PlaceID
	if placeID == "" {
		placeID = placeIDFromURL(business.URL)
	}
	if placeID == "" {
		return nil, ErrMissingPlaceID
	}
	target := s.ReviewsURL(placeID)

	var reviews []models.Review
	err := s.withPage(ctx, op, func(ctx context.Context, page browser.Page) error {
		if err := s.navigate(ctx, op, page, target); err != nil {
			return err
		}
		if err := s.waitFor(ctx, op, page, reviewWaitSelector); err != nil {
			return err
		}
		html, err := snapshot(ctx, op, page)
		if err != nil {
			return err
		}
		reviews, err = parseReviews(html, s.newID)
		return err
	})
	if err != nil {
		s.logFailure(op, target, err)
		return nil, err
	}

	s.logger.Info("[maps] %d reviews collected for %q", len(reviews), business.Name)
	return reviews, nil
}

// SearchURL is the results page for "<category> en <location>".
func (s *Session) SearchURL(category models.Category, location string) string {
	query := fmt.Sprintf("%s en %s", category, location)
	return s.opts.BaseURL + "/search/" + url.PathEscape(query)
}

// ReviewsURL is the place page addressed by place id.
func (s *Session) ReviewsURL(placeID string) string {
	return s.opts.BaseURL + "/place/?q=place_id:" + url.QueryEscape(placeID)
}

// withPage runs fn on a fresh tab, closing it on every path.
func (s *Session) withPage(ctx context.Context, op string, fn func(context.Context, browser.Page) error) error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.state != Ready {
		return ErrNotInitialized
	}

	if s.opts.OperationTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.opts.OperationTimeout)
		defer cancel()
	}

	page, err := s.browser.NewPage(ctx)
	if err != nil {
		return eris.Wrapf(err, "maps: %s: open page", op)
	}
	defer func() {
		if cerr := page.Close(); cerr != nil {
			s.logger.Warn("[maps] %s: close page: %v", op, cerr)
		}
	}()

	return fn(ctx, page)
}

func (s *Session) navigate(ctx context.Context, op string, page browser.Page, target string) error {
	s.logger.Debug("[maps] %s: navigating to %s", op, target)
	if err := page.Navigate(ctx, target); err != nil {
		return &NavigationError{Op: op, URL: target, Err: err}
	}
	return nil
}

// waitFor waits up to WaitTimeout for selector. Deadlines, whether the
// wait's own or the operation's, surface as ExtractionTimeoutError.
func (s *Session) waitFor(ctx context.Context, op string, page browser.Page, selector string) error {
	waitCtx, cancel := context.WithTimeout(ctx, s.opts.WaitTimeout)
	defer cancel()

	err := page.WaitVisible(waitCtx, selector)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, context.DeadlineExceeded):
		return &ExtractionTimeoutError{Op: op, Selector: selector, Timeout: s.opts.WaitTimeout, Err: err}
	case ctx.Err() != nil:
		return eris.Wrapf(ctx.Err(), "maps: %s: wait for %s", op, selector)
	default:
		return eris.Wrapf(err, "maps: %s: wait for %s", op, selector)
	}
}

func snapshot(ctx context.Context, op string, page browser.Page) (string, error) {
	html, err := page.HTML(ctx)
	if err != nil {
		return "", eris.Wrapf(err, "maps: %s: read page", op)
	}
	return html, nil
}

func (s *Session) logFailure(op, target string, err error) {
	if errors.Is(err, ErrNotInitialized) {
		s.logger.Warn("[maps] %s called on a session that is not ready", op)
		return
	}
	s.logger.Error("[maps] %s failed for %s: %v", op, target, err)
}
