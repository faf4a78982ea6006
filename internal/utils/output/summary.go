package output

import (
	"errors"
	"io"
	"strconv"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/law-makers/reviewscrape/internal/pipeline"
)

// Totals aggregates outcomes of a list run
type Totals struct {
	URLs       int
	Failed     int
	Extracted  int
	Added      int
	Duplicates int
}

// Summarize counts outcomes
func Summarize(outcomes []pipeline.Outcome) Totals {
	t := Totals{URLs: len(outcomes)}
	for _, o := range outcomes {
		if !o.OK() {
			t.Failed++
		}
		t.Extracted += len(o.Candidates)
		t.Added += o.Stored.Added
		t.Duplicates += o.Stored.Duplicates
	}
	return t
}

// WriteSummary renders one table row per URL followed by the totals
func WriteSummary(w io.Writer, outcomes []pipeline.Outcome) {
	tw := table.NewWriter()
	tw.SetOutputMirror(w)
	tw.SetStyle(table.StyleLight)
	tw.AppendHeader(table.Row{"#", "URL", "Status", "Extracted", "Added", "Duplicates"})

	for i, o := range outcomes {
		tw.AppendRow(table.Row{i + 1, o.URL, status(o), len(o.Candidates), o.Stored.Added, o.Stored.Duplicates})
	}

	totals := Summarize(outcomes)
	tw.AppendFooter(table.Row{"", "Total", failedLabel(totals), totals.Extracted, totals.Added, totals.Duplicates})
	tw.Render()
}

func status(o pipeline.Outcome) string {
	switch {
	case o.OK() && o.ChangelogHit:
		return "ok (changelog)"
	case o.OK():
		return "ok"
	case errors.Is(o.Err, pipeline.ErrUnsupportedDomain):
		return "unsupported"
	default:
		return o.Stage + " failed"
	}
}

func failedLabel(t Totals) string {
	if t.Failed == 0 {
		return "all ok"
	}
	return strconv.Itoa(t.Failed) + " failed"
}
