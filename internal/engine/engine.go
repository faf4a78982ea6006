package engine

import (
	"context"

	"github.com/law-makers/reviewscrape/pkg/models"
)

// Fetcher is the interface that all fetch engines must implement
type Fetcher interface {
	// Fetch retrieves and parses the page at url
	Fetch(ctx context.Context, url string) (*models.Page, error)

	// Name returns the name of the fetcher implementation
	Name() string
}
