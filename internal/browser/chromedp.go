// internal/browser/chromedp.go
package browser

import (
	"context"
	"errors"
	"math/rand"
	"time"

	"github.com/chromedp/chromedp"

	"github.com/datalens/linkedscout/internal/antidetect"
	"github.com/datalens/linkedscout/internal/utils"
)

var fetcherLogger = utils.NewComponentLogger("browser")

// Fetcher renders pages with a headless Chrome session. Each Fetch call owns
// an isolated browser session for its full lifetime; sessions are never
// shared or pooled between callers, so concurrent fetches need no locking.
type Fetcher struct {
	config  *Config
	agents  *antidetect.UserAgentRotator
	limiter *antidetect.RateLimiter
	logger  utils.Logger
}

// NewFetcher creates a page fetcher. The rate limiter may be nil when
// fetch pacing is handled elsewhere.
func NewFetcher(config *Config, limiter *antidetect.RateLimiter) *Fetcher {
	if config == nil {
		config = DefaultConfig()
	}
	return &Fetcher{
		config:  config,
		agents:  antidetect.NewUserAgentRotator(config.UserAgents),
		limiter: limiter,
		logger:  fetcherLogger,
	}
}

// Fetch navigates to pageURL, waits until an element matching readySelector
// is visible, lets client-side rendering settle for a randomized delay, and
// returns the rendered markup. The browser session is released on every exit
// path. Failures are classified as timeout or session faults and never
// retried here; retry policy belongs to the caller.
func (f *Fetcher) Fetch(ctx context.Context, pageURL, readySelector string) (string, error) {
	if f.limiter != nil {
		if err := f.limiter.Wait(ctx); err != nil {
			return "", &FetchError{URL: pageURL, Reason: ReasonSession, Err: err}
		}
	}

	opts := []chromedp.ExecAllocatorOption{
		chromedp.NoFirstRun,
		chromedp.NoDefaultBrowserCheck,
		chromedp.DisableGPU,
		chromedp.NoSandbox,
		chromedp.WindowSize(f.config.ViewportWidth, f.config.ViewportHeight),
		chromedp.UserAgent(f.agents.GetRandom()),
		chromedp.Flag("incognito", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.Flag("disable-blink-features", "AutomationControlled"),
		chromedp.Flag("exclude-switches", "enable-automation"),
	}
	if f.config.Headless {
		opts = append(opts, chromedp.Headless)
	}

	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, opts...)
	defer cancelAlloc()

	browserCtx, cancelBrowser := chromedp.NewContext(allocCtx)
	defer cancelBrowser()

	timeoutCtx, cancelTimeout := context.WithTimeout(browserCtx, f.config.NavigationTimeout.Std())
	defer cancelTimeout()

	start := time.Now()
	var html string
	err := chromedp.Run(timeoutCtx,
		chromedp.Navigate(pageURL),
		chromedp.WaitVisible(readySelector, chromedp.ByQuery),
		chromedp.Sleep(f.settleDelay()),
		chromedp.OuterHTML("html", &html),
	)
	if err != nil {
		reason := ReasonSession
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(timeoutCtx.Err(), context.DeadlineExceeded) {
			reason = ReasonTimeout
		}
		f.logger.Warnf("fetch failed url=%s reason=%s err=%v", pageURL, reason, err)
		return "", &FetchError{URL: pageURL, Reason: reason, Err: err}
	}

	f.logger.Debugf("fetched url=%s bytes=%d duration=%v", pageURL, len(html), time.Since(start))
	return html, nil
}

// settleDelay returns a randomized delay in [SettleMin, SettleMax] used to
// let client-side rendering finish before the markup snapshot.
func (f *Fetcher) settleDelay() time.Duration {
	min, max := f.config.SettleMin.Std(), f.config.SettleMax.Std()
	if max <= min {
		return min
	}
	return min + time.Duration(rand.Int63n(int64(max-min)))
}
