// Package browser describes the browser-automation surface the scrape
// session depends on, with a headless Chrome implementation built on chromedp.
package browser

import "context"

// LocationScript evaluates to the page's current URL.
const LocationScript = `window.location.href`

// Browser is a running browser process.
type Browser interface {
	// NewPage opens a fresh tab. The caller owns it and must Close it.
	NewPage(ctx context.Context) (Page, error)
	// Close terminates the browser process and every open tab.
	Close() error
}

// Page is one browser tab.
type Page interface {
	Navigate(ctx context.Context, url string) error
	// WaitVisible blocks until an element matching selector is visible or
	// ctx is done.
	WaitVisible(ctx context.Context, selector string) error
	// Evaluate runs script in the page and decodes its result into out.
	Evaluate(ctx context.Context, script string, out any) error
	// HTML returns the rendered document's outer HTML.
	HTML(ctx context.Context) (string, error)
	Close() error
}

// Launcher starts a Browser.
type Launcher func(ctx context.Context) (Browser, error)
