package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

// Config holds application configuration values
type Config struct {
	// Logging
	LogLevel string
	JSONLog  bool
	Quiet    bool

	// HTTP
	HTTPTimeout   time.Duration
	RenderTimeout time.Duration
	UserAgent     string
	Proxy         string
	Headers       []string
	Render        bool
	ChromePath    string

	// Extraction and dataset
	OutputPath      string
	MinParagraphLen int
	ExtraExclusions []string
	PrintParagraphs bool

	// List mode
	ListFile  string
	ListDelay time.Duration

	// Caching
	CacheTTL          time.Duration
	CacheMaxSizeBytes int64
}

// Default returns a Config populated with defaults only
func Default() *Config {
	return &Config{
		LogLevel:          DefaultLogLevel,
		JSONLog:           DefaultJSONLog,
		HTTPTimeout:       DefaultHTTPTimeout,
		RenderTimeout:     DefaultRenderTimeout,
		UserAgent:         DefaultUserAgent,
		OutputPath:        DefaultOutputPath,
		MinParagraphLen:   DefaultMinParagraphLen,
		ListDelay:         DefaultListDelay,
		CacheTTL:          DefaultCacheTTL,
		CacheMaxSizeBytes: DefaultCacheMaxSizeBytes,
	}
}

// Load builds a Config by combining defaults, an optional .env file, environment variables, and CLI flags.
// Caller should pass the command being executed so its flags can be read.
func Load(cmd *cobra.Command) (*Config, error) {
	cfg := Default()

	// A missing .env is fine; existing environment variables win over it
	if err := godotenv.Load(DefaultEnvFile); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to read %s: %w", DefaultEnvFile, err)
	}

	if err := applyEnv(cfg); err != nil {
		return nil, err
	}

	if cmd != nil {
		if err := applyFlags(cmd, cfg); err != nil {
			return nil, err
		}
	}

	if err := validate(cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

func applyEnv(cfg *Config) error {
	if v := os.Getenv("REVIEWSCRAPE_OUTPUT"); v != "" {
		cfg.OutputPath = v
	}
	if v := os.Getenv("REVIEWSCRAPE_USER_AGENT"); v != "" {
		cfg.UserAgent = v
	}
	if v := os.Getenv("REVIEWSCRAPE_PROXY"); v != "" {
		cfg.Proxy = v
	}
	if v := os.Getenv("REVIEWSCRAPE_CHROME_PATH"); v != "" {
		cfg.ChromePath = v
	}
	if v := os.Getenv("REVIEWSCRAPE_LOG_LEVEL"); v != "" {
		cfg.LogLevel = strings.ToLower(v)
	}
	if v := os.Getenv("REVIEWSCRAPE_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("invalid REVIEWSCRAPE_TIMEOUT: %w", err)
		}
		cfg.HTTPTimeout = d
	}
	if v := os.Getenv("REVIEWSCRAPE_DELAY"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("invalid REVIEWSCRAPE_DELAY: %w", err)
		}
		cfg.ListDelay = d
	}
	return nil
}

func applyFlags(cmd *cobra.Command, cfg *Config) error {
	flags := cmd.Flags()

	str := func(name string, dst *string) {
		if f := flags.Lookup(name); f != nil && f.Changed {
			*dst = f.Value.String()
		}
	}
	boolean := func(name string) bool {
		f := flags.Lookup(name)
		return f != nil && f.Value.String() == "true"
	}
	duration := func(name string, dst *time.Duration) error {
		f := flags.Lookup(name)
		if f == nil || !f.Changed {
			return nil
		}
		d, err := time.ParseDuration(f.Value.String())
		if err != nil {
			return fmt.Errorf("invalid --%s: %w", name, err)
		}
		*dst = d
		return nil
	}

	str("user-agent", &cfg.UserAgent)
	str("proxy", &cfg.Proxy)
	str("output", &cfg.OutputPath)
	str("list", &cfg.ListFile)

	if err := duration("timeout", &cfg.HTTPTimeout); err != nil {
		return err
	}
	if err := duration("delay", &cfg.ListDelay); err != nil {
		return err
	}

	if f := flags.Lookup("min-length"); f != nil && f.Changed {
		n, err := strconv.Atoi(f.Value.String())
		if err != nil {
			return fmt.Errorf("invalid --min-length: %w", err)
		}
		cfg.MinParagraphLen = n
	}

	if v, err := flags.GetStringArray("header"); err == nil {
		cfg.Headers = v
	}
	if v, err := flags.GetStringArray("exclude"); err == nil {
		cfg.ExtraExclusions = v
	}

	cfg.JSONLog = cfg.JSONLog || boolean("json")
	cfg.Render = boolean("render")
	cfg.PrintParagraphs = boolean("print")
	if boolean("verbose") {
		cfg.LogLevel = "debug"
	}
	if boolean("quiet") {
		cfg.Quiet = true
		cfg.LogLevel = "error"
	}

	return nil
}
