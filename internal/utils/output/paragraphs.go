package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/law-makers/reviewscrape/internal/ui"
	"github.com/law-makers/reviewscrape/pkg/models"
)

// PrintCandidates writes each extracted paragraph with its heading
func PrintCandidates(w io.Writer, candidates []models.Candidate) {
	if len(candidates) == 0 {
		return
	}
	fmt.Fprintf(w, "\n%s\n\n", ui.Bold("Extracted Paragraphs:"))
	for i, c := range candidates {
		fmt.Fprintf(w, "%s\n[%d]", strings.Repeat("-", 40), i+1)
		if c.Context != "" {
			fmt.Fprintf(w, " %s", ui.Info(c.Context))
		}
		fmt.Fprintf(w, "\n%s\n\n", c.Input)
	}
}
