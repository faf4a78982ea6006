package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/law-makers/reviewscrape/internal/app"
	"github.com/law-makers/reviewscrape/internal/config"
	"github.com/law-makers/reviewscrape/internal/pipeline"
	"github.com/law-makers/reviewscrape/internal/ui"
	"github.com/law-makers/reviewscrape/internal/utils/output"
)

// scrapeCmd represents the scrape command
var scrapeCmd = &cobra.Command{
	Use:   "scrape [url]",
	Short: "Extract review paragraphs from a URL or a list of URLs",
	Long: `Fetches a review page, extracts every paragraph of at least --min-length
characters under its major heading and appends the new ones to the dataset.

Extraction stops at a changelog section. Paragraphs already in the dataset
are skipped, so a page can be scraped again safely.`,
	Example: `  # Scrape one review
  reviewscrape scrape https://www.techradar.com/reviews/some-phone

  # Scrape a list of reviews, pausing 5s between requests
  reviewscrape scrape --list urls.txt --delay 5s

  # Render with headless Chrome and show what was extracted
  reviewscrape scrape https://www.techradar.com/reviews/some-phone --render --print`,
	Args: cobra.MaximumNArgs(1),
	RunE: runScrape,
}

func init() {
	rootCmd.AddCommand(scrapeCmd)
	config.RegisterScrapeFlags(scrapeCmd)
}

func runScrape(cmd *cobra.Command, args []string) error {
	a := GetApp(cmd)
	if a == nil {
		return fmt.Errorf("application not initialized")
	}

	if a.Config.ListFile != "" {
		if len(args) > 0 {
			return fmt.Errorf("pass either a URL or --list, not both")
		}
		return runList(cmd.Context(), a, cmd.OutOrStdout(), cmd.ErrOrStderr())
	}

	var url string
	if len(args) == 1 {
		url = args[0]
	} else {
		var err error
		url, err = promptURL(cmd.InOrStdin(), cmd.OutOrStdout())
		if err != nil {
			return err
		}
	}
	return runSingle(cmd.Context(), a, url, cmd.OutOrStdout())
}

// promptURL reads one URL from r, as typed at the prompt
func promptURL(r io.Reader, w io.Writer) (string, error) {
	fmt.Fprint(w, "Enter the URL of the review page: ")
	line, err := bufio.NewReader(r).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("failed to read URL: %w", err)
	}
	url := strings.TrimSpace(line)
	if url == "" {
		return "", fmt.Errorf("no URL given")
	}
	return url, nil
}

func reporterFor(a *app.Application, w io.Writer) pipeline.Reporter {
	if a.Config.JSONLog {
		return pipeline.NopReporter{}
	}
	return output.NewConsole(w, a.Config.Quiet)
}

func runSingle(ctx context.Context, a *app.Application, url string, w io.Writer) error {
	out := a.Runner(reporterFor(a, w), false).Process(ctx, url)

	if a.Config.JSONLog {
		if err := output.WriteJSON(w, []pipeline.Outcome{out}, a.Config.PrintParagraphs); err != nil {
			return err
		}
	} else if a.Config.PrintParagraphs && len(out.Candidates) > 0 {
		output.PrintCandidates(w, out.Candidates)
	}

	if out.Err != nil {
		if a.Config.JSONLog {
			return out.Err
		}
		return reportedError{out.Err}
	}
	return nil
}

func runList(ctx context.Context, a *app.Application, w, stderr io.Writer) error {
	urls, err := pipeline.ReadURLList(a.Config.ListFile)
	if err != nil {
		return err
	}
	if len(urls) == 0 {
		fmt.Fprintf(w, "%s No URLs found in %s\n", ui.Warn("[WARN]"), a.Config.ListFile)
		return nil
	}
	log.Debug().
		Int("urls", len(urls)).
		Dur("delay", a.Pacer.Delay()).
		Msg("Processing URL list")

	bar := progressbar.NewOptions(len(urls),
		progressbar.OptionSetWriter(stderr),
		progressbar.OptionSetDescription("Scraping"),
		progressbar.OptionShowCount(),
		progressbar.OptionClearOnFinish(),
		progressbar.OptionSetVisibility(!a.Config.Quiet && !a.Config.JSONLog),
	)

	outcomes := a.Runner(reporterFor(a, w), true).ProcessList(ctx, urls, func(o pipeline.Outcome) {
		if a.Config.PrintParagraphs && !a.Config.JSONLog && len(o.Candidates) > 0 {
			output.PrintCandidates(w, o.Candidates)
		}
		_ = bar.Add(1)
	})
	_ = bar.Finish()

	if a.Config.JSONLog {
		if err := output.WriteJSON(w, outcomes, a.Config.PrintParagraphs); err != nil {
			return err
		}
	} else if !a.Config.Quiet {
		output.WriteSummary(w, outcomes)
	}

	if err := ctx.Err(); err != nil {
		return fmt.Errorf("interrupted after %d of %d URLs: %w", len(outcomes), len(urls), err)
	}
	// A failed dataset write is fatal even in list mode
	for _, o := range outcomes {
		if o.Stage == pipeline.StageStore && o.Err != nil {
			return reportedError{o.Err}
		}
	}
	return nil
}
