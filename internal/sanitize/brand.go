// Package sanitize rewrites competitor brand names in extracted text.
package sanitize

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Default brand substitution
const DestinationBrand = "ReviewCave.co.uk"

// SourceBrands lists the brand names replaced by DestinationBrand, in order
var SourceBrands = []string{"TechRadar"}

// Sanitizer replaces whole-word, case-insensitive brand mentions
type Sanitizer struct {
	patterns    []*regexp.Regexp
	destination string
}

// New compiles one case-insensitive pattern per source brand.
// Blank brands are ignored.
func New(sources []string, destination string) *Sanitizer {
	s := &Sanitizer{destination: destination}
	for _, brand := range sources {
		brand = strings.TrimSpace(brand)
		if brand == "" {
			continue
		}
		s.patterns = append(s.patterns, regexp.MustCompile(`(?i)`+regexp.QuoteMeta(brand)))
	}
	return s
}

// Default returns a Sanitizer for SourceBrands -> DestinationBrand
func Default() *Sanitizer {
	return New(SourceBrands, DestinationBrand)
}

// Sanitize applies every brand pattern in list order
func (s *Sanitizer) Sanitize(text string) string {
	if s == nil {
		return text
	}
	for _, re := range s.patterns {
		text = s.replaceWords(re, text)
	}
	return text
}

// replaceWords swaps each match of re that stands as a whole word. The
// destination is written literally.
func (s *Sanitizer) replaceWords(re *regexp.Regexp, text string) string {
	locs := re.FindAllStringIndex(text, -1)
	if len(locs) == 0 {
		return text
	}

	var b strings.Builder
	last := 0
	for _, loc := range locs {
		if !wholeWord(text, loc[0], loc[1]) {
			continue
		}
		b.WriteString(text[last:loc[0]])
		b.WriteString(s.destination)
		last = loc[1]
	}
	b.WriteString(text[last:])
	return b.String()
}

// wholeWord reports whether text[start:end] has no word rune on either side.
// Word runes are Unicode letters, numbers and '_', so "TechRadaré" is not a match.
func wholeWord(text string, start, end int) bool {
	if before, _ := utf8.DecodeLastRuneInString(text[:start]); start > 0 && isWordRune(before) {
		return false
	}
	if after, _ := utf8.DecodeRuneInString(text[end:]); end < len(text) && isWordRune(after) {
		return false
	}
	return true
}

func isWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsNumber(r)
}

// Brands returns the number of active source brands
func (s *Sanitizer) Brands() int {
	if s == nil {
		return 0
	}
	return len(s.patterns)
}
