package output

import (
	"errors"
	"fmt"
	"io"

	"github.com/law-makers/reviewscrape/internal/engine"
	"github.com/law-makers/reviewscrape/internal/pipeline"
	"github.com/law-makers/reviewscrape/internal/ui"
)

// Console prints pipeline events as human-readable lines
type Console struct {
	w     io.Writer
	quiet bool
}

var _ pipeline.Reporter = (*Console)(nil)

// NewConsole creates a Console writing to w. A quiet console prints errors only.
func NewConsole(w io.Writer, quiet bool) *Console {
	return &Console{w: w, quiet: quiet}
}

func (c *Console) infof(format string, args ...any) {
	if c.quiet {
		return
	}
	fmt.Fprintf(c.w, ui.Info("[INFO]")+" "+format+"\n", args...)
}

// DetectedDomain reports the domain derived from url
func (c *Console) DetectedDomain(_, domain string) {
	c.infof("Detected domain: %s", domain)
}

// ChangelogReached reports that extraction stopped at the changelog heading
func (c *Console) ChangelogReached(string) {
	c.infof("Changelog section reached, ignoring the rest of the page")
}

// Extracted reports how many paragraphs qualified
func (c *Console) Extracted(_ string, count int) {
	if count == 0 {
		c.infof("No suitable paragraphs found.")
		return
	}
	c.infof("Extracted %d paragraph(s)", count)
}

// Stored reports the dataset merge result
func (c *Console) Stored(out pipeline.Outcome) {
	if out.Stored.Skipped > 0 {
		c.infof("Skipped %d malformed line(s) in the existing dataset", out.Stored.Skipped)
	}
	if out.Stored.Added == 0 {
		c.infof("No new paragraphs added (%d already present)", out.Stored.Duplicates)
		return
	}
	if c.quiet {
		return
	}
	fmt.Fprintf(c.w, "%s Added %d new paragraph(s), %d duplicate(s) skipped\n",
		ui.Success("✓"), out.Stored.Added, out.Stored.Duplicates)
}

// Failed reports an error for one URL, with a hint for fetch failures
func (c *Console) Failed(out pipeline.Outcome) {
	fmt.Fprintf(c.w, "%s %v\n", ui.Error("[ERROR]"), out.Err)
	if hint := fetchHint(out.Err); hint != "" {
		fmt.Fprintf(c.w, "%s %s\n", ui.Info("[HINT]"), hint)
	}
}

func fetchHint(err error) string {
	switch {
	case errors.Is(err, engine.ErrTimeout):
		return "The page took too long to respond, try a longer --timeout."
	case errors.Is(err, engine.ErrNetwork):
		return "Check the URL and your network connection or --proxy."
	case errors.Is(err, engine.ErrParse):
		return "The response could not be parsed as HTML."
	}
	return ""
}
