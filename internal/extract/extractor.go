// Package extract picks review body paragraphs out of a parsed article.
package extract

import (
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
	"github.com/law-makers/reviewscrape/internal/sanitize"
	"github.com/law-makers/reviewscrape/pkg/models"
	"github.com/rs/zerolog/log"
	"golang.org/x/net/html"
)

// DefaultMinLength is the minimum paragraph length in characters
const DefaultMinLength = 200

const (
	majorHeading = "h2"
	minorHeading = "h3"
	paragraph    = "p"
)

// DefaultSentinels mark the start of the changelog section on a minor heading
var DefaultSentinels = []string{"changelog", "recent updates"}

// DefaultExclusions flag author-bio boilerplate rather than review content
var DefaultExclusions = []string{
	"written by",
	"staff writer",
	"contributing writer",
	"freelance writer",
	"is a writer",
	"senior editor",
	"reviews editor",
	"editor-in-chief",
	"follow him",
	"follow her",
	"follow them",
	"techradar's",
}

// Options configures an Extractor.
// Zero values fall back to the package defaults.
type Options struct {
	MinLength  int
	Exclusions []string
	Sentinels  []string
	Sanitizer  *sanitize.Sanitizer
}

// SkipCounts records why paragraphs were dropped
type SkipCounts struct {
	Styled   int
	Excluded int
	Short    int
}

// Result is the outcome of one document walk
type Result struct {
	Candidates   []models.Candidate
	ChangelogHit bool
	Skipped      SkipCounts
}

// Extractor walks headings and paragraphs of a review article
type Extractor struct {
	minLength  int
	exclusions []string
	sentinels  []string
	sanitizer  *sanitize.Sanitizer
}

// New creates an Extractor from opts
func New(opts Options) *Extractor {
	e := &Extractor{
		minLength:  opts.MinLength,
		exclusions: lowerAll(opts.Exclusions),
		sentinels:  lowerAll(opts.Sentinels),
		sanitizer:  opts.Sanitizer,
	}
	if e.minLength <= 0 {
		e.minLength = DefaultMinLength
	}
	if len(e.exclusions) == 0 {
		e.exclusions = lowerAll(DefaultExclusions)
	}
	if len(e.sentinels) == 0 {
		e.sentinels = lowerAll(DefaultSentinels)
	}
	if e.sanitizer == nil {
		e.sanitizer = sanitize.Default()
	}
	return e
}

// Extract walks doc in document order and returns the qualifying paragraphs,
// each paired with the nearest preceding major heading.
func (e *Extractor) Extract(doc *goquery.Document) Result {
	var res Result
	if doc == nil {
		return res
	}

	heading := ""
	nodes := doc.Find(strings.Join([]string{majorHeading, minorHeading, paragraph}, ", "))

	for i := range nodes.Nodes {
		sel := nodes.Eq(i)

		switch goquery.NodeName(sel) {
		case minorHeading:
			if e.isSentinel(visibleText(sel)) {
				res.ChangelogHit = true
				log.Debug().Int("node", i).Msg("Changelog heading reached, stopping")
				return res
			}

		case majorHeading:
			heading = visibleText(sel)

		case paragraph:
			if isStyled(sel) {
				res.Skipped.Styled++
				continue
			}
			text := visibleText(sel)
			if e.isExcluded(text) {
				res.Skipped.Excluded++
				continue
			}
			if utf8.RuneCountInString(text) < e.minLength {
				res.Skipped.Short++
				continue
			}
			res.Candidates = append(res.Candidates, models.Candidate{
				Context: heading,
				Input:   e.sanitizer.Sanitize(text),
			})
		}
	}

	return res
}

func (e *Extractor) isSentinel(text string) bool {
	return containsAny(strings.ToLower(text), e.sentinels)
}

func (e *Extractor) isExcluded(text string) bool {
	return containsAny(strings.ToLower(text), e.exclusions)
}

// isStyled reports whether a paragraph carries presentation attributes
func isStyled(sel *goquery.Selection) bool {
	_, hasClass := sel.Attr("class")
	_, hasStyle := sel.Attr("style")
	return hasClass || hasStyle
}

// visibleText joins the trimmed text fragments of sel with single spaces.
// A <br> closes the sentence before it.
func visibleText(sel *goquery.Selection) string {
	var fragments []string
	for _, n := range sel.Nodes {
		fragments = collectFragments(n, fragments)
	}
	return strings.TrimSpace(strings.Join(fragments, " "))
}

func collectFragments(n *html.Node, fragments []string) []string {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		switch c.Type {
		case html.TextNode:
			if text := strings.Join(strings.Fields(c.Data), " "); text != "" {
				fragments = append(fragments, text)
			}
		case html.ElementNode:
			switch c.Data {
			case "br":
				fragments = endSentence(fragments)
			case "script", "style", "noscript", "template":
				// not visible
			default:
				fragments = collectFragments(c, fragments)
			}
		}
	}
	return fragments
}

func endSentence(fragments []string) []string {
	if len(fragments) == 0 {
		return fragments
	}
	last := fragments[len(fragments)-1]
	if !strings.ContainsAny(last[len(last)-1:], ".!?:") {
		fragments[len(fragments)-1] = last + "."
	}
	return fragments
}

func containsAny(s string, needles []string) bool {
	for _, n := range needles {
		if n != "" && strings.Contains(s, n) {
			return true
		}
	}
	return false
}

func lowerAll(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if s = strings.ToLower(strings.TrimSpace(s)); s != "" {
			out = append(out, s)
		}
	}
	return out
}
