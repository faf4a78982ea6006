package output

import (
	"encoding/json"
	"io"

	"github.com/law-makers/reviewscrape/internal/pipeline"
	"github.com/law-makers/reviewscrape/pkg/models"
)

type outcomeJSON struct {
	URL          string             `json:"url"`
	Domain       string             `json:"domain,omitempty"`
	Stage        string             `json:"stage"`
	ChangelogHit bool               `json:"changelog_hit"`
	Extracted    int                `json:"extracted"`
	Added        int                `json:"added"`
	Duplicates   int                `json:"duplicates"`
	SkippedLines int                `json:"skipped_lines"`
	DurationMS   int64              `json:"duration_ms"`
	Error        string             `json:"error,omitempty"`
	Paragraphs   []models.Candidate `json:"paragraphs,omitempty"`
}

// WriteJSON writes outcomes as an indented JSON array.
// Paragraph text is included when withParagraphs is set.
func WriteJSON(w io.Writer, outcomes []pipeline.Outcome, withParagraphs bool) error {
	rows := make([]outcomeJSON, 0, len(outcomes))
	for _, o := range outcomes {
		row := outcomeJSON{
			URL:          o.URL,
			Domain:       o.Domain,
			Stage:        o.Stage,
			ChangelogHit: o.ChangelogHit,
			Extracted:    len(o.Candidates),
			Added:        o.Stored.Added,
			Duplicates:   o.Stored.Duplicates,
			SkippedLines: o.Stored.Skipped,
			DurationMS:   o.Duration.Milliseconds(),
		}
		if o.Err != nil {
			row.Error = o.Err.Error()
		}
		if withParagraphs {
			row.Paragraphs = o.Candidates
		}
		rows = append(rows, row)
	}

	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	return enc.Encode(rows)
}
