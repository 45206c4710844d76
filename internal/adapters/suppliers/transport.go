// Package suppliers implements one raw fetch adapter per supplier on top of
// a shared transport with client-side rate limiting, retries and a circuit
// breaker.
package suppliers

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/hashicorp/go-retryablehttp"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	gobreaker "github.com/sony/gobreaker/v2"
	"golang.org/x/time/rate"

	"hotel_content/internal/adapters/observability"
)

var (
	ErrNoData       = errors.New("suppliers: no data found")
	ErrUnauthorized = errors.New("suppliers: unauthorized")
	ErrForbidden    = errors.New("suppliers: forbidden")
	ErrMalformed    = errors.New("suppliers: malformed response")
	ErrCredentials  = errors.New("suppliers: missing credentials")
)

const maxBody = 32 << 20

// Credentials is one supplier's connection settings.
type Credentials struct {
	BaseURL      string
	APIKey       string
	Secret       string
	Username     string
	Password     string
	Agency       string
	Organisation string
	RPS          int
	Timeout      time.Duration
}

type Request struct {
	Method string
	URL    string
	Header http.Header
	Body   []byte
}

type Response struct {
	Status int
	Header http.Header
	Body   []byte
}

type transportConfig struct {
	retryMax     int
	retryWaitMin time.Duration
	retryWaitMax time.Duration
	breakerOpen  time.Duration
}

type TransportOption func(*transportConfig)

// WithRetry overrides the retry policy.
func WithRetry(max int, waitMin, waitMax time.Duration) TransportOption {
	return func(c *transportConfig) {
		c.retryMax, c.retryWaitMin, c.retryWaitMax = max, waitMin, waitMax
	}
}

// Transport is the shared HTTP path every supplier adapter uses.
type Transport struct {
	supplier string
	hc       *retryablehttp.Client
	rl       *rate.Limiter
	cb       *gobreaker.CircuitBreaker[*Response]
}

func NewTransport(supplier string, creds Credentials, opts ...TransportOption) *Transport {
	cfg := transportConfig{
		retryMax:     3,
		retryWaitMin: 200 * time.Millisecond,
		retryWaitMax: 2 * time.Second,
		breakerOpen:  30 * time.Second,
	}
	for _, o := range opts {
		o(&cfg)
	}
	rps := creds.RPS
	if rps <= 0 {
		rps = 5
	}
	timeout := creds.Timeout
	if timeout <= 0 {
		timeout = 20 * time.Second
	}

	rc := retryablehttp.NewClient()
	rc.RetryMax = cfg.retryMax
	rc.RetryWaitMin = cfg.retryWaitMin
	rc.RetryWaitMax = cfg.retryWaitMax
	rc.HTTPClient.Timeout = timeout
	rc.Logger = leveledLogger{l: log.With().Str("supplier", supplier).Logger()}

	cb := gobreaker.NewCircuitBreaker[*Response](gobreaker.Settings{
		Name:        supplier,
		MaxRequests: 2,
		Interval:    time.Minute,
		Timeout:     cfg.breakerOpen,
		ReadyToTrip: func(c gobreaker.Counts) bool {
			return c.ConsecutiveFailures >= 5
		},
		// Confirmed absence, rejected credentials and caller cancellation
		// say nothing about upstream health.
		IsSuccessful: func(err error) bool {
			return err == nil ||
				errors.Is(err, ErrNoData) ||
				errors.Is(err, ErrUnauthorized) ||
				errors.Is(err, ErrForbidden) ||
				errors.Is(err, context.Canceled)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			log.Warn().Str("supplier", name).Str("from", from.String()).Str("to", to.String()).Msg("supplier circuit breaker state change")
			observability.ObserveBreaker(name, int(to))
		},
	})

	return &Transport{
		supplier: supplier,
		hc:       rc,
		rl:       rate.NewLimiter(rate.Limit(rps), rps),
		cb:       cb,
	}
}

// Do sends r, labelling metrics with endpoint. A 404 is reported as
// ErrNoData, 401/403 as ErrUnauthorized/ErrForbidden. The response is
// returned alongside those errors so callers can inspect the body.
func (t *Transport) Do(ctx context.Context, endpoint string, r Request) (*Response, error) {
	if err := t.rl.Wait(ctx); err != nil {
		return nil, err
	}
	start := time.Now()
	resp, err := t.cb.Execute(func() (*Response, error) { return t.do(ctx, r) })
	status := 0
	if resp != nil {
		status = resp.Status
	}
	observability.ObserveSupplier(t.supplier, endpoint, status, time.Since(start))
	return resp, err
}

func (t *Transport) do(ctx context.Context, r Request) (*Response, error) {
	method := r.Method
	if method == "" {
		method = http.MethodGet
	}
	var body any
	if r.Body != nil {
		body = r.Body
	}
	req, err := retryablehttp.NewRequestWithContext(ctx, method, r.URL, body)
	if err != nil {
		return nil, err
	}
	for k, vs := range r.Header {
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}
	if req.Header.Get("User-Agent") == "" {
		req.Header.Set("User-Agent", "hotel-content/1.0")
	}

	hr, err := t.hc.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, err
	}
	defer hr.Body.Close()
	b, err := io.ReadAll(io.LimitReader(hr.Body, maxBody))
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}
	resp := &Response{Status: hr.StatusCode, Header: hr.Header, Body: b}

	switch {
	case hr.StatusCode >= 200 && hr.StatusCode < 300:
		return resp, nil
	case hr.StatusCode == http.StatusNotFound:
		return resp, ErrNoData
	case hr.StatusCode == http.StatusUnauthorized:
		return resp, ErrUnauthorized
	case hr.StatusCode == http.StatusForbidden:
		return resp, ErrForbidden
	default:
		return resp, fmt.Errorf("bad status %d: %s", hr.StatusCode, snippet(b))
	}
}

func snippet(b []byte) string {
	s := strings.TrimSpace(string(b))
	if len(s) > 256 {
		s = s[:256]
	}
	return s
}

// leveledLogger bridges retryablehttp onto zerolog.
type leveledLogger struct{ l zerolog.Logger }

func (z leveledLogger) Error(msg string, kv ...any) { z.l.Error().Fields(kv).Msg(msg) }
func (z leveledLogger) Warn(msg string, kv ...any)  { z.l.Warn().Fields(kv).Msg(msg) }
func (z leveledLogger) Info(msg string, kv ...any)  { z.l.Debug().Fields(kv).Msg(msg) }
func (z leveledLogger) Debug(msg string, kv ...any) { z.l.Debug().Fields(kv).Msg(msg) }
