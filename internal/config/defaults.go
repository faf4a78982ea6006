package config

import "time"

// Default constants for application configuration
const (
	DefaultLogLevel          = "info"
	DefaultJSONLog           = false
	DefaultUserAgent         = "Mozilla/5.0 (compatible; reviewscrape/1.0; +https://github.com/law-makers/reviewscrape)"
	DefaultHTTPTimeout       = 10 * time.Second
	DefaultRenderTimeout     = 45 * time.Second
	DefaultOutputPath        = "reviewcave_dataset.jsonl"
	DefaultMinParagraphLen   = 200
	DefaultListDelay         = 2 * time.Second
	DefaultCacheTTL          = 10 * time.Minute
	DefaultCacheMaxSizeBytes = 32 * 1024 * 1024 // 32MB
	DefaultEnvFile           = ".env"
)
