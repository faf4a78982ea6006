// internal/engine/static/fetcher.go
package static

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/law-makers/reviewscrape/internal/engine"
	"github.com/law-makers/reviewscrape/pkg/models"
	"github.com/rs/zerolog/log"
)

// DefaultTimeout bounds a single page fetch
const DefaultTimeout = 10 * time.Second

// maxBodyBytes caps how much of a response body is read
const maxBodyBytes = 20 * 1024 * 1024

// Options configures a Fetcher
type Options struct {
	Timeout   time.Duration
	UserAgent string
	Headers   http.Header
	Proxy     string
	Client    *http.Client
}

// Fetcher retrieves static HTML pages with plain HTTP and parses them with goquery
type Fetcher struct {
	client    *http.Client
	userAgent string
	headers   http.Header
}

var _ engine.Fetcher = (*Fetcher)(nil)

// New creates a Fetcher. A nil opts.Client gets a client built from the
// timeout and proxy options.
func New(opts Options) (*Fetcher, error) {
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}

	client := opts.Client
	if client == nil {
		transport := &http.Transport{
			Proxy:               http.ProxyFromEnvironment,
			MaxIdleConns:        10,
			MaxIdleConnsPerHost: 2,
			IdleConnTimeout:     90 * time.Second,
		}
		if opts.Proxy != "" {
			proxyURL, err := url.Parse(opts.Proxy)
			if err != nil {
				return nil, fmt.Errorf("invalid proxy URL: %w", err)
			}
			transport.Proxy = http.ProxyURL(proxyURL)
		}
		client = &http.Client{Transport: transport, Timeout: opts.Timeout}
	}

	return &Fetcher{
		client:    client,
		userAgent: opts.UserAgent,
		headers:   opts.Headers,
	}, nil
}

// Name returns the name of this fetcher
func (f *Fetcher) Name() string {
	return "StaticFetcher"
}

// Fetch performs a single GET and parses the body. There are no retries.
func (f *Fetcher) Fetch(ctx context.Context, pageURL string) (*models.Page, error) {
	start := time.Now()

	log.Debug().
		Str("url", pageURL).
		Str("fetcher", f.Name()).
		Msg("Starting fetch")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, engine.NewError(engine.ErrCodeValidation, pageURL, "failed to create request", err)
	}

	if f.userAgent != "" {
		req.Header.Set("User-Agent", f.userAgent)
	}
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Language", "en-GB,en;q=0.9")
	for key, values := range f.headers {
		req.Header.Del(key)
		for _, v := range values {
			req.Header.Add(key, v)
		}
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, engine.ClassifyTransport(pageURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		// drain so the connection can be reused
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 64*1024))
		return nil, engine.NewError(engine.ErrCodeHTTPStatus, pageURL, "unexpected response status",
			&engine.StatusError{StatusCode: resp.StatusCode, Status: http.StatusText(resp.StatusCode)})
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, engine.ClassifyTransport(pageURL, err)
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return nil, engine.NewError(engine.ErrCodeParseError, pageURL, "failed to parse HTML", err)
	}

	responseTime := time.Since(start).Milliseconds()

	page := &models.Page{
		URL:          pageURL,
		FinalURL:     resp.Request.URL.String(),
		StatusCode:   resp.StatusCode,
		Title:        strings.TrimSpace(doc.Find("title").First().Text()),
		HTML:         string(body),
		Doc:          doc,
		FetchedAt:    time.Now(),
		ResponseTime: responseTime,
	}

	log.Debug().
		Str("url", pageURL).
		Int("status", resp.StatusCode).
		Int64("response_time_ms", responseTime).
		Int("bytes", len(body)).
		Msg("Fetch completed")

	return page, nil
}
