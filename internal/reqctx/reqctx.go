package reqctx

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type key int

const requestKey key = 0

// RequestContext identifies the processing of one URL
type RequestContext struct {
	RequestID string
	URL       string
	StartTime time.Time
}

// WithRequestContext attaches a new RequestContext for url to ctx, along
// with a logger that carries the request id and url.
func WithRequestContext(ctx context.Context, url string) context.Context {
	rc := &RequestContext{
		RequestID: generateID(),
		URL:       url,
		StartTime: time.Now(),
	}
	ctx = context.WithValue(ctx, requestKey, rc)
	logger := log.With().Str("request_id", rc.RequestID).Str("url", url).Logger()
	return logger.WithContext(ctx)
}

// GetRequestContext returns the RequestContext on ctx or a placeholder
func GetRequestContext(ctx context.Context) *RequestContext {
	if rc, ok := ctx.Value(requestKey).(*RequestContext); ok {
		return rc
	}
	return &RequestContext{
		RequestID: "unknown",
		StartTime: time.Now(),
	}
}

// Logger returns the request-scoped logger, falling back to the global one
func Logger(ctx context.Context) *zerolog.Logger {
	l := zerolog.Ctx(ctx)
	if l.GetLevel() == zerolog.Disabled {
		return &log.Logger
	}
	return l
}

func generateID() string {
	b := make([]byte, 8)
	rand.Read(b)
	return hex.EncodeToString(b)
}

// RequestError wraps an error with request context
type RequestError struct {
	RequestID string
	URL       string
	Err       error
}

// Error implements the error interface
func (e *RequestError) Error() string {
	return fmt.Sprintf("[%s] %s: %v", e.RequestID, e.URL, e.Err)
}

// Unwrap returns the underlying error
func (e *RequestError) Unwrap() error {
	return e.Err
}

// NewRequestError creates a new RequestError from context
func NewRequestError(ctx context.Context, err error) error {
	if err == nil {
		return nil
	}
	rc := GetRequestContext(ctx)
	return &RequestError{
		RequestID: rc.RequestID,
		URL:       rc.URL,
		Err:       err,
	}
}
