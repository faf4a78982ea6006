package app

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/law-makers/reviewscrape/internal/config"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_Static(t *testing.T) {
	cfg := config.Default()
	cfg.OutputPath = filepath.Join(t.TempDir(), "out.jsonl")
	cfg.Headers = []string{"Accept-Language: en-GB"}

	a, err := New(cfg)
	require.NoError(t, err)
	defer a.Close()

	assert.Equal(t, "StaticFetcher", a.Fetcher.Name())
	assert.Equal(t, cfg.OutputPath, a.Store.Path())
	assert.Equal(t, cfg.ListDelay, a.Pacer.Delay())
	assert.Equal(t, []string{"techradar.com"}, a.Sites.Supported())
}

func TestNew_Render(t *testing.T) {
	cfg := config.Default()
	cfg.Render = true
	cfg.OutputPath = filepath.Join(t.TempDir(), "out.jsonl")

	a, err := New(cfg)
	require.NoError(t, err)
	defer a.Close()

	assert.Equal(t, "BrowserFetcher", a.Fetcher.Name())
}

func TestNew_BadHeader(t *testing.T) {
	cfg := config.Default()
	cfg.Headers = []string{"no colon here"}

	_, err := New(cfg)
	assert.Error(t, err)
}

func TestNew_NilConfig(t *testing.T) {
	_, err := New(nil)
	assert.Error(t, err)
}

func TestRunner_CachesPages(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.Write([]byte("<html><body><p>x</p></body></html>"))
	}))
	defer srv.Close()

	cfg := config.Default()
	cfg.OutputPath = filepath.Join(t.TempDir(), "out.jsonl")
	a, err := New(cfg)
	require.NoError(t, err)
	defer a.Close()

	for i := 0; i < 2; i++ {
		_, err := a.Fetcher.Fetch(t.Context(), srv.URL)
		require.NoError(t, err)
	}
	assert.Equal(t, int32(1), hits.Load())

	// 127.0.0.1 is not a supported site
	out := a.Runner(nil, false).Process(t.Context(), srv.URL)
	assert.Error(t, out.Err)
}

func TestNewLogger(t *testing.T) {
	defer zerolog.SetGlobalLevel(zerolog.DebugLevel)

	var buf bytes.Buffer
	cfg := config.Default()
	cfg.JSONLog = true
	cfg.LogLevel = "debug"

	l := NewLogger(cfg, &buf)
	l.Debug().Str("k", "v").Msg("hello")
	assert.True(t, strings.HasPrefix(buf.String(), "{"))
	assert.Contains(t, buf.String(), `"k":"v"`)

	buf.Reset()
	cfg.LogLevel = "info"
	l = NewLogger(cfg, &buf)
	l.Info().Msg("hidden")
	assert.Empty(t, buf.String())
}
