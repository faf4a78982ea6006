// internal/engine/dynamic/fetcher.go
package dynamic

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/chromedp/cdproto/network"
	"github.com/chromedp/chromedp"
	"github.com/law-makers/reviewscrape/internal/engine"
	"github.com/law-makers/reviewscrape/pkg/models"
	"github.com/rs/zerolog/log"
)

// Options configures a browser Fetcher
type Options struct {
	Timeout    time.Duration
	UserAgent  string
	Proxy      string
	ChromePath string
	// Settle is how long to let scripts run after the body is ready
	Settle time.Duration
}

// Fetcher renders pages in headless Chrome before parsing them
type Fetcher struct {
	opts Options
}

var _ engine.Fetcher = (*Fetcher)(nil)

// New creates a browser Fetcher. Chrome is started per fetch.
func New(opts Options) *Fetcher {
	if opts.Timeout <= 0 {
		opts.Timeout = 30 * time.Second
	}
	if opts.Settle < 0 {
		opts.Settle = 0
	}
	return &Fetcher{opts: opts}
}

// Name returns the name of this fetcher
func (f *Fetcher) Name() string {
	return "BrowserFetcher"
}

func (f *Fetcher) allocatorOptions() ([]chromedp.ExecAllocatorOption, error) {
	chromePath := FindChrome(f.opts.ChromePath)
	if chromePath == "" {
		return nil, engine.ErrBrowserNotFound
	}

	allocOpts := []chromedp.ExecAllocatorOption{
		chromedp.ExecPath(chromePath),
		chromedp.NoFirstRun,
		chromedp.NoDefaultBrowserCheck,
		chromedp.Flag("headless", "new"),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.Flag("disable-extensions", true),
		chromedp.Flag("disable-background-networking", true),
		chromedp.Flag("disable-sync", true),
		chromedp.Flag("mute-audio", true),
		chromedp.Flag("disable-blink-features", "AutomationControlled"),
		chromedp.WindowSize(1920, 1080),
	}
	if f.opts.UserAgent != "" {
		allocOpts = append(allocOpts, chromedp.UserAgent(f.opts.UserAgent))
	}
	if f.opts.Proxy != "" {
		allocOpts = append(allocOpts, chromedp.ProxyServer(f.opts.Proxy))
	}
	return allocOpts, nil
}

// Fetch navigates to pageURL, waits for the body and returns the rendered HTML
func (f *Fetcher) Fetch(ctx context.Context, pageURL string) (*models.Page, error) {
	start := time.Now()

	allocOpts, err := f.allocatorOptions()
	if err != nil {
		return nil, engine.NewError(engine.ErrCodeBrowser, pageURL, "no browser available", err)
	}

	ctx, cancel := context.WithTimeout(ctx, f.opts.Timeout)
	defer cancel()
	allocCtx, allocCancel := chromedp.NewExecAllocator(ctx, allocOpts...)
	defer allocCancel()
	browserCtx, browserCancel := chromedp.NewContext(allocCtx)
	defer browserCancel()

	var (
		mu         sync.Mutex
		statusCode int64
		finalURL   string
	)
	chromedp.ListenTarget(browserCtx, func(ev interface{}) {
		if e, ok := ev.(*network.EventResponseReceived); ok && e.Type == network.ResourceTypeDocument {
			mu.Lock()
			// keep the last document response so redirects end on the final page
			statusCode = e.Response.Status
			finalURL = e.Response.URL
			mu.Unlock()
		}
	})

	var htmlContent, title string
	err = chromedp.Run(browserCtx,
		network.Enable(),
		chromedp.Navigate(pageURL),
		chromedp.WaitReady("body", chromedp.ByQuery),
		chromedp.Sleep(f.opts.Settle),
		chromedp.Title(&title),
		chromedp.OuterHTML("html", &htmlContent, chromedp.ByQuery),
	)
	if err != nil {
		if ctx.Err() != nil {
			return nil, engine.NewError(engine.ErrCodeTimeout, pageURL, "browser render timed out", err)
		}
		return nil, engine.NewError(engine.ErrCodeBrowser, pageURL, "browser render failed", err)
	}

	mu.Lock()
	status, final := int(statusCode), finalURL
	mu.Unlock()

	if status != 0 && (status < 200 || status > 299) {
		return nil, engine.NewError(engine.ErrCodeHTTPStatus, pageURL, "unexpected response status",
			&engine.StatusError{StatusCode: status, Status: fmt.Sprintf("status %d", status)})
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(htmlContent))
	if err != nil {
		return nil, engine.NewError(engine.ErrCodeParseError, pageURL, "failed to parse rendered HTML", err)
	}

	responseTime := time.Since(start).Milliseconds()
	log.Debug().
		Str("url", pageURL).
		Int("status", status).
		Int64("response_time_ms", responseTime).
		Msg("Render completed")

	return &models.Page{
		URL:          pageURL,
		FinalURL:     final,
		StatusCode:   status,
		Title:        strings.TrimSpace(title),
		HTML:         htmlContent,
		Doc:          doc,
		FetchedAt:    time.Now(),
		ResponseTime: responseTime,
	}, nil
}
