package models

import (
	"time"

	"github.com/PuerkitoBio/goquery"
)

// Page is a fetched and parsed web page
type Page struct {
	URL          string            `json:"url"`
	FinalURL     string            `json:"final_url,omitempty"`
	StatusCode   int               `json:"status_code"`
	Title        string            `json:"title,omitempty"`
	HTML         string            `json:"-"`
	Doc          *goquery.Document `json:"-"`
	FetchedAt    time.Time         `json:"fetched_at"`
	ResponseTime int64             `json:"response_time_ms"`
}

// Candidate is a paragraph picked by extraction, before dedup filtering
type Candidate struct {
	Context string `json:"context"`
	Input   string `json:"input"`
}

// Record is one line of the dataset file.
// Field order is the on-disk key order.
type Record struct {
	Instruction string `json:"instruction"`
	Context     string `json:"context"`
	Input       string `json:"input"`
	Output      string `json:"output"`
}
