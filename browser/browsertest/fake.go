// Package browsertest provides an in-memory browser.Browser for tests.
//
// A FakeBrowser serves HTML fixtures keyed by URL. WaitVisible matches the
// selector against the current fixture with goquery and, like a real browser
// whose element never renders, blocks until the context is done when nothing
// matches.
package browsertest

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"github.com/PuerkitoBio/goquery"

	"tourism-reviews/browser"
)

// FakeBrowser is a scriptable browser.Browser.
type FakeBrowser struct {
	mu sync.Mutex

	pages       map[string]string
	redirects   map[string]string
	navErrs     map[string]error
	evalResults map[string]any

	LaunchErr  error
	NewPageErr error

	launches    int
	closed      bool
	closeCalls  int
	opened      []*FakePage
	navigations []string
}

// New returns an empty FakeBrowser.
func New() *FakeBrowser {
	return &FakeBrowser{
		pages:       make(map[string]string),
		redirects:   make(map[string]string),
		navErrs:     make(map[string]error),
		evalResults: make(map[string]any),
	}
}

// Serve registers the HTML returned for url.
func (b *FakeBrowser) Serve(url, html string) *FakeBrowser {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.pages[url] = html
	return b
}

// Redirect makes url report final as its location after navigation.
func (b *FakeBrowser) Redirect(url, final string) *FakeBrowser {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.redirects[url] = final
	return b
}

// FailNavigation makes navigating to url return err.
func (b *FakeBrowser) FailNavigation(url string, err error) *FakeBrowser {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.navErrs[url] = err
	return b
}

// SetEvalResult sets the value Evaluate decodes for script.
func (b *FakeBrowser) SetEvalResult(script string, v any) *FakeBrowser {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.evalResults[script] = v
	return b
}

// Launcher returns a browser.Launcher that hands out b.
func (b *FakeBrowser) Launcher() browser.Launcher {
	return func(ctx context.Context) (browser.Browser, error) {
		b.mu.Lock()
		defer b.mu.Unlock()
		b.launches++
		if b.LaunchErr != nil {
			return nil, b.LaunchErr
		}
		b.closed = false
		return b, nil
	}
}

func (b *FakeBrowser) NewPage(ctx context.Context) (browser.Page, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return nil, fmt.Errorf("browsertest: browser closed")
	}
	if b.NewPageErr != nil {
		return nil, b.NewPageErr
	}
	p := &FakePage{browser: b}
	b.opened = append(b.opened, p)
	return p, nil
}

func (b *FakeBrowser) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.closed = true
	b.closeCalls++
	return nil
}

// Launches is the number of launch attempts.
func (b *FakeBrowser) Launches() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.launches
}

// Closed reports whether Close has been called since the last launch.
func (b *FakeBrowser) Closed() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.closed
}

// CloseCalls counts calls to Close.
func (b *FakeBrowser) CloseCalls() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.closeCalls
}

// PagesOpened is the number of tabs ever opened.
func (b *FakeBrowser) PagesOpened() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.opened)
}

// OpenPages is the number of tabs not yet closed.
func (b *FakeBrowser) OpenPages() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	n := 0
	for _, p := range b.opened {
		if !p.closed {
			n++
		}
	}
	return n
}

// Navigations lists every URL navigated to, in order.
func (b *FakeBrowser) Navigations() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]string(nil), b.navigations...)
}

// FakePage is one tab of a FakeBrowser.
type FakePage struct {
	browser *FakeBrowser
	url     string
	html    string
	closed  bool
}

func (p *FakePage) Navigate(ctx context.Context, url string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	b := p.browser
	b.mu.Lock()
	defer b.mu.Unlock()
	b.navigations = append(b.navigations, url)
	if err, ok := b.navErrs[url]; ok {
		return err
	}
	p.url = url
	if final, ok := b.redirects[url]; ok {
		p.url = final
	}
	p.html = b.pages[url]
	return nil
}

func (p *FakePage) WaitVisible(ctx context.Context, selector string) error {
	p.browser.mu.Lock()
	html := p.html
	p.browser.mu.Unlock()

	if html != "" {
		doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
		if err != nil {
			return err
		}
		if doc.Find(selector).Length() > 0 {
			return nil
		}
	}
	<-ctx.Done()
	return ctx.Err()
}

func (p *FakePage) Evaluate(ctx context.Context, script string, out any) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	b := p.browser
	b.mu.Lock()
	defer b.mu.Unlock()

	var v any
	if script == browser.LocationScript {
		v = p.url
	} else if r, ok := b.evalResults[script]; ok {
		v = r
	} else {
		return fmt.Errorf("browsertest: no result for script %q", script)
	}
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, out)
}

func (p *FakePage) HTML(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	p.browser.mu.Lock()
	defer p.browser.mu.Unlock()
	return p.html, nil
}

func (p *FakePage) Close() error {
	p.browser.mu.Lock()
	defer p.browser.mu.Unlock()
	p.closed = true
	return nil
}
