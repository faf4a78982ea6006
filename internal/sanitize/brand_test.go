package sanitize

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSanitize_ReplacesWholeWordCaseInsensitive(t *testing.T) {
	s := Default()

	cases := map[string]string{
		"Read the TechRadar verdict.":         "Read the ReviewCave.co.uk verdict.",
		"techradar and TECHRADAR agree":       "ReviewCave.co.uk and ReviewCave.co.uk agree",
		"(TechRadar)":                         "(ReviewCave.co.uk)",
		"TechRadar's pick":                    "ReviewCave.co.uk's pick",
		"Nothing to see here":                 "Nothing to see here",
		"TechRadarPro is a different section": "TechRadarPro is a different section",
		"MyTechRadar":                         "MyTechRadar",
		"TechRadar TechRadar":                 "ReviewCave.co.uk ReviewCave.co.uk",
		"TechRadar_pro":                       "TechRadar_pro",
		"TechRadar2":                          "TechRadar2",
	}

	for in, want := range cases {
		assert.Equal(t, want, s.Sanitize(in), "input %q", in)
	}
}

func TestSanitize_UnicodeWordBoundaries(t *testing.T) {
	s := Default()

	cases := []struct {
		in, want string
	}{
		{"TechRadaré", "TechRadaré"},
		{"éTechRadar", "éTechRadar"},
		{"TechRadar名", "TechRadar名"},
		{"«TechRadar»", "«ReviewCave.co.uk»"},
		{"TechRadar—review", "ReviewCave.co.uk—review"},
		{"TechRadar\u00a0UK", "ReviewCave.co.uk\u00a0UK"},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, s.Sanitize(tc.in), "input %q", tc.in)
	}
}

func TestSanitize_UnchangedWithoutBrand(t *testing.T) {
	s := Default()
	texts := []string{
		"",
		"A plain paragraph about battery life.",
		"radar tech techradarish",
	}
	for _, text := range texts {
		assert.Equal(t, text, s.Sanitize(text))
	}
}

func TestSanitize_MultipleBrandsInOrder(t *testing.T) {
	// The second pattern sees the output of the first
	s := New([]string{"Alpha", "Beta", "  "}, "Beta")
	assert.Equal(t, 2, s.Brands())
	assert.Equal(t, "Zeta", New([]string{"Alpha", "Beta"}, "Zeta").Sanitize("Beta"))
	assert.Equal(t, "Beta and Beta", s.Sanitize("alpha and beta"))
}

func TestSanitize_DollarInDestination(t *testing.T) {
	s := New([]string{"shop"}, "$1 Store")
	assert.Equal(t, "visit $1 Store today", s.Sanitize("visit Shop today"))
}

func TestSanitize_NilSanitizer(t *testing.T) {
	var s *Sanitizer
	assert.Equal(t, "TechRadar", s.Sanitize("TechRadar"))
}
