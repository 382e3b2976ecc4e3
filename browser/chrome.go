package browser

import (
	"context"
	"os"
	"os/exec"
	"sync"

	"github.com/chromedp/chromedp"
	"github.com/rotisserie/eris"
)

// ChromeOptions configures the headless Chrome launcher.
type ChromeOptions struct {
	Headless  bool
	ExecPath  string
	UserAgent string
}

// NewChrome returns a Launcher that starts headless Chrome through chromedp.
// Sandboxing is disabled so the browser runs inside containers.
func NewChrome(o ChromeOptions) Launcher {
	return func(ctx context.Context) (Browser, error) {
		opts := append(chromedp.DefaultExecAllocatorOptions[:],
			chromedp.Flag("headless", o.Headless),
			chromedp.Flag("disable-gpu", true),
			chromedp.Flag("no-sandbox", true),
			chromedp.Flag("disable-dev-shm-usage", true),
			chromedp.Flag("disable-setuid-sandbox", true),
		)
		if o.UserAgent != "" {
			opts = append(opts, chromedp.UserAgent(o.UserAgent))
		}
		execPath := o.ExecPath
		if execPath == "" {
			execPath = FindChromeBinary()
		}
		if execPath != "" {
			opts = append(opts, chromedp.ExecPath(execPath))
		}

		// The process must outlive the launch call's context.
		allocCtx, cancelAlloc := chromedp.NewExecAllocator(context.WithoutCancel(ctx), opts...)

		// Suppress chromedp log noise
		browserCtx, cancelBrowser := chromedp.NewContext(allocCtx, chromedp.WithLogf(func(string, ...interface{}) {}))

		if err := chromedp.Run(browserCtx); err != nil {
			cancelBrowser()
			cancelAlloc()
			return nil, eris.Wrap(err, "chrome: launch")
		}

		return &chromeBrowser{
			ctx:           browserCtx,
			cancelBrowser: cancelBrowser,
			cancelAlloc:   cancelAlloc,
		}, nil
	}
}

type chromeBrowser struct {
	ctx           context.Context
	cancelBrowser context.CancelFunc
	cancelAlloc   context.CancelFunc
	closeOnce     sync.Once
}

func (b *chromeBrowser) NewPage(ctx context.Context) (Page, error) {
	if err := b.ctx.Err(); err != nil {
		return nil, eris.Wrap(err, "chrome: browser closed")
	}
	tabCtx, cancel := chromedp.NewContext(b.ctx)

	// The first Run on a context attaches the target and ties the tab's
	// event loop to that context, so it must be tabCtx itself. The caller's
	// ctx can abort the allocation but does not bound the tab's lifetime.
	stop := context.AfterFunc(ctx, cancel)
	err := chromedp.Run(tabCtx)
	if !stop() {
		cancel()
		return nil, eris.Wrap(ctx.Err(), "chrome: open tab")
	}
	if err != nil {
		cancel()
		return nil, eris.Wrap(err, "chrome: open tab")
	}
	return &chromePage{ctx: tabCtx, cancel: cancel}, nil
}

func (b *chromeBrowser) Close() error {
	var err error
	b.closeOnce.Do(func() {
		err = chromedp.Cancel(b.ctx)
		b.cancelBrowser()
		b.cancelAlloc()
	})
	if err != nil && !eris.Is(err, context.Canceled) {
		return eris.Wrap(err, "chrome: close")
	}
	return nil
}

type chromePage struct {
	ctx       context.Context
	cancel    context.CancelFunc
	closeOnce sync.Once
}

// run executes actions on the already attached tab, bounded by the caller's
// ctx. Contexts derived from p.ctx only bound these actions.
func (p *chromePage) run(ctx context.Context, actions ...chromedp.Action) error {
	runCtx, cancel := context.WithCancel(p.ctx)
	defer cancel()
	if deadline, ok := ctx.Deadline(); ok {
		var cancelDeadline context.CancelFunc
		runCtx, cancelDeadline = context.WithDeadline(runCtx, deadline)
		defer cancelDeadline()
	}
	stop := context.AfterFunc(ctx, cancel)
	defer stop()

	err := chromedp.Run(runCtx, actions...)
	if err != nil && ctx.Err() != nil {
		return ctx.Err()
	}
	if err != nil && runCtx.Err() != nil {
		return runCtx.Err()
	}
	return err
}

func (p *chromePage) Navigate(ctx context.Context, url string) error {
	return p.run(ctx, chromedp.Navigate(url))
}

func (p *chromePage) WaitVisible(ctx context.Context, selector string) error {
	return p.run(ctx, chromedp.WaitVisible(selector, chromedp.ByQuery))
}

func (p *chromePage) Evaluate(ctx context.Context, script string, out any) error {
	return p.run(ctx, chromedp.Evaluate(script, out))
}

func (p *chromePage) HTML(ctx context.Context) (string, error) {
	var html string
	if err := p.run(ctx, chromedp.OuterHTML("html", &html, chromedp.ByQuery)); err != nil {
		return "", err
	}
	return html, nil
}

func (p *chromePage) Close() error {
	var err error
	p.closeOnce.Do(func() {
		err = chromedp.Cancel(p.ctx)
		p.cancel()
	})
	if err != nil && !eris.Is(err, context.Canceled) {
		return eris.Wrap(err, "chrome: close tab")
	}
	return nil
}

// FindChromeBinary locates a Chrome/Chromium binary, preferring CHROME_BIN.
// An empty result lets chromedp use its own lookup.
func FindChromeBinary() string {
	if bin := os.Getenv("CHROME_BIN"); bin != "" {
		return bin
	}

	names := []string{"google-chrome-stable", "google-chrome", "chromium", "chromium-browser"}
	for _, name := range names {
		if path, err := exec.LookPath(name); err == nil {
			return path
		}
	}

	paths := []string{
		"/usr/bin/google-chrome-stable",
		"/usr/bin/google-chrome",
		"/usr/bin/chromium-browser",
		"/usr/bin/chromium",
		"/snap/bin/chromium",
		"/opt/google/chrome/google-chrome",
	}
	for _, p := range paths {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}

	return ""
}
