// Package pipeline drives fetch, extraction and dataset storage for each URL.
package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/law-makers/reviewscrape/internal/dataset"
	"github.com/law-makers/reviewscrape/internal/engine"
	"github.com/law-makers/reviewscrape/internal/engine/hybrid"
	"github.com/law-makers/reviewscrape/internal/ratelimit"
	"github.com/law-makers/reviewscrape/internal/reqctx"
	urlutil "github.com/law-makers/reviewscrape/internal/utils/url"
	"github.com/law-makers/reviewscrape/pkg/models"
)

// Stage names where processing of a URL stopped
const (
	StageValidate = "validate"
	StageDomain   = "domain"
	StagePace     = "pace"
	StageFetch    = "fetch"
	StageStore    = "store"
	StageDone     = "done"
)

// Store persists candidates
type Store interface {
	Merge(candidates []models.Candidate) (dataset.Result, error)
	Path() string
}

// Outcome is the result of processing one URL
type Outcome struct {
	URL          string
	Domain       string
	Stage        string
	Candidates   []models.Candidate
	ChangelogHit bool
	Stored       dataset.Result
	Duration     time.Duration
	Err          error
}

// OK reports whether the URL was processed end to end
func (o Outcome) OK() bool {
	return o.Err == nil
}

// Runner processes URLs one at a time
type Runner struct {
	fetcher  engine.Fetcher
	sites    *Registry
	store    Store
	pacer    ratelimit.Pacer
	reporter Reporter
}

// Options holds Runner dependencies. Pacer and Reporter are optional.
type Options struct {
	Fetcher  engine.Fetcher
	Sites    *Registry
	Store    Store
	Pacer    ratelimit.Pacer
	Reporter Reporter
}

// New creates a Runner
func New(opts Options) *Runner {
	r := &Runner{
		fetcher:  opts.Fetcher,
		sites:    opts.Sites,
		store:    opts.Store,
		pacer:    opts.Pacer,
		reporter: opts.Reporter,
	}
	if r.reporter == nil {
		r.reporter = NopReporter{}
	}
	return r
}

// Process fetches url, extracts its paragraphs and merges them into the store
func (r *Runner) Process(ctx context.Context, url string) Outcome {
	ctx = reqctx.WithRequestContext(ctx, url)
	logger := reqctx.Logger(ctx)
	start := time.Now()

	out := Outcome{URL: url}
	fail := func(stage string, err error) Outcome {
		out.Stage = stage
		out.Err = reqctx.NewRequestError(ctx, err)
		out.Duration = time.Since(start)
		r.reporter.Failed(out)
		return out
	}

	if err := urlutil.ValidateURL(url); err != nil {
		return fail(StageValidate, fmt.Errorf("%w: %v", engine.ErrInvalidURL, err))
	}

	out.Domain = urlutil.Domain(url)
	r.reporter.DetectedDomain(url, out.Domain)

	site, err := r.sites.Resolve(out.Domain)
	if err != nil {
		return fail(StageDomain, err)
	}

	if r.pacer != nil {
		if err := r.pacer.Wait(ctx, url); err != nil {
			return fail(StagePace, fmt.Errorf("interrupted while pacing: %w", err))
		}
	}

	page, err := r.fetcher.Fetch(ctx, url)
	if r.pacer != nil {
		r.pacer.Done(url)
	}
	if err != nil {
		return fail(StageFetch, fmt.Errorf("failed to retrieve the page: %w", err))
	}

	res := site.Extractor.Extract(page.Doc)
	out.Candidates = res.Candidates
	out.ChangelogHit = res.ChangelogHit
	logger.Debug().
		Int("candidates", len(res.Candidates)).
		Int("skipped_styled", res.Skipped.Styled).
		Int("skipped_excluded", res.Skipped.Excluded).
		Int("skipped_short", res.Skipped.Short).
		Bool("changelog", res.ChangelogHit).
		Msg("Extraction finished")
	if res.ChangelogHit {
		r.reporter.ChangelogReached(url)
	}
	r.reporter.Extracted(url, len(res.Candidates))
	if len(res.Candidates) == 0 && r.fetcher.Name() != "BrowserFetcher" {
		if needs, framework := hybrid.NeedsRender(page.Doc); needs {
			logger.Warn().
				Str("framework", framework).
				Msg("Page looks script-rendered, try again with --render")
		}
	}

	stored, err := r.store.Merge(res.Candidates)
	out.Stored = stored
	if err != nil {
		return fail(StageStore, fmt.Errorf("failed to update dataset %s: %w", r.store.Path(), err))
	}

	out.Stage = StageDone
	out.Duration = time.Since(start)
	r.reporter.Stored(out)

	logger.Info().
		Int("added", stored.Added).
		Int("duplicates", stored.Duplicates).
		Int("skipped_lines", stored.Skipped).
		Dur("duration", out.Duration).
		Msg("URL processed")

	return out
}

// ProcessList processes urls in order. A failing URL does not stop the
// run; a cancelled context does. onDone, if set, is called after each URL.
func (r *Runner) ProcessList(ctx context.Context, urls []string, onDone func(Outcome)) []Outcome {
	outcomes := make([]Outcome, 0, len(urls))
	for _, url := range urls {
		if ctx.Err() != nil {
			break
		}
		out := r.Process(ctx, url)
		outcomes = append(outcomes, out)
		if onDone != nil {
			onDone(out)
		}
	}
	return outcomes
}
