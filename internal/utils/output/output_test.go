package output

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/law-makers/reviewscrape/internal/dataset"
	"github.com/law-makers/reviewscrape/internal/engine"
	"github.com/law-makers/reviewscrape/internal/pipeline"
	"github.com/law-makers/reviewscrape/internal/ui"
	"github.com/law-makers/reviewscrape/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	ui.Enabled = false
}

func sampleOutcomes() []pipeline.Outcome {
	return []pipeline.Outcome{
		{
			URL:          "https://www.techradar.com/a",
			Domain:       "techradar.com",
			Stage:        pipeline.StageDone,
			ChangelogHit: true,
			Candidates:   []models.Candidate{{Context: "Design", Input: "one"}, {Input: "two"}},
			Stored:       dataset.Result{Added: 1, Duplicates: 1},
		},
		{
			URL:    "https://example.com/b",
			Domain: "example.com",
			Stage:  pipeline.StageDomain,
			Err:    fmt.Errorf("%w: example.com", pipeline.ErrUnsupportedDomain),
		},
		{
			URL:   "https://www.techradar.com/c",
			Stage: pipeline.StageFetch,
			Err:   errors.New("timeout"),
		},
	}
}

func TestSummarize(t *testing.T) {
	got := Summarize(sampleOutcomes())
	assert.Equal(t, Totals{URLs: 3, Failed: 2, Extracted: 2, Added: 1, Duplicates: 1}, got)
}

func TestWriteSummary(t *testing.T) {
	var buf bytes.Buffer
	WriteSummary(&buf, sampleOutcomes())

	out := buf.String()
	assert.Contains(t, out, "https://www.techradar.com/a")
	assert.Contains(t, out, "ok (changelog)")
	assert.Contains(t, out, "unsupported")
	assert.Contains(t, out, "fetch failed")
	// footers are upper-cased by the table style
	assert.Contains(t, strings.ToLower(out), "2 failed")
}

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteJSON(&buf, sampleOutcomes(), true))

	var rows []map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rows))
	require.Len(t, rows, 3)
	assert.Equal(t, float64(2), rows[0]["extracted"])
	assert.Equal(t, true, rows[0]["changelog_hit"])
	assert.Len(t, rows[0]["paragraphs"], 2)
	assert.Contains(t, rows[1]["error"], "unsupported domain")
}

func TestPrintCandidates(t *testing.T) {
	var buf bytes.Buffer
	PrintCandidates(&buf, []models.Candidate{{Context: "Verdict", Input: "Great phone."}})

	out := buf.String()
	assert.Contains(t, out, "[1] Verdict")
	assert.Contains(t, out, "Great phone.")

	buf.Reset()
	PrintCandidates(&buf, nil)
	assert.Empty(t, buf.String())
}

func TestConsole(t *testing.T) {
	var buf bytes.Buffer
	c := NewConsole(&buf, false)

	c.DetectedDomain("u", "techradar.com")
	c.ChangelogReached("u")
	c.Extracted("u", 0)
	c.Stored(pipeline.Outcome{Stored: dataset.Result{Added: 3, Duplicates: 1, Skipped: 2}})
	c.Stored(pipeline.Outcome{Stored: dataset.Result{Duplicates: 4}})
	c.Failed(pipeline.Outcome{Err: errors.New("boom")})

	out := buf.String()
	assert.Contains(t, out, "[INFO] Detected domain: techradar.com")
	assert.Contains(t, out, "Changelog section reached")
	assert.Contains(t, out, "No suitable paragraphs found.")
	assert.Contains(t, out, "Skipped 2 malformed line(s)")
	assert.Contains(t, out, "Added 3 new paragraph(s), 1 duplicate(s) skipped")
	assert.Contains(t, out, "No new paragraphs added (4 already present)")
	assert.Contains(t, out, "[ERROR] boom")
}

func TestConsole_FailureHints(t *testing.T) {
	cases := []struct {
		err  error
		hint string
	}{
		{engine.NewError(engine.ErrCodeTimeout, "u", "request timed out", nil), "--timeout"},
		{engine.NewError(engine.ErrCodeNetworkError, "u", "request failed", nil), "network connection"},
		{engine.NewError(engine.ErrCodeParseError, "u", "failed to parse HTML", nil), "parsed as HTML"},
	}
	for _, tc := range cases {
		var buf bytes.Buffer
		NewConsole(&buf, false).Failed(pipeline.Outcome{Err: fmt.Errorf("failed to retrieve the page: %w", tc.err)})
		assert.Contains(t, buf.String(), "[HINT]")
		assert.Contains(t, buf.String(), tc.hint)
	}

	var buf bytes.Buffer
	NewConsole(&buf, false).Failed(pipeline.Outcome{Err: errors.New("boom")})
	assert.NotContains(t, buf.String(), "[HINT]")
}

func TestConsole_Quiet(t *testing.T) {
	var buf bytes.Buffer
	c := NewConsole(&buf, true)

	c.DetectedDomain("u", "techradar.com")
	c.Stored(pipeline.Outcome{Stored: dataset.Result{Added: 1}})
	assert.Empty(t, buf.String())

	c.Failed(pipeline.Outcome{Err: errors.New("boom")})
	assert.Contains(t, buf.String(), "boom")
}
