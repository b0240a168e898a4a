// Package postgrest reads the comparator's tables through a PostgREST-style
// data API (the hosted Supabase REST endpoint behind the public site).
//
// Each Source method is one HTTP GET with related references embedded via
// PostgREST resource embedding, so the same domain structs decode rows from
// either this client or the GORM repository. Requests are budgeted by a
// client-side token bucket and retried with exponential backoff on 429 and
// 5xx responses.
package postgrest

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rotisserie/eris"
	"github.com/rs/zerolog/log"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/time/rate"

	"github.com/votabienperu/comparador/internal/observability"
)

const (
	defaultTimeout    = 10 * time.Second
	defaultMaxRetries = 2
	defaultBackoff    = 200 * time.Millisecond
	maxBackoff        = 5 * time.Second
	maxErrorBody      = 512
)

// Option configures the client.
type Option func(*Client)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithTimeout sets the per-request timeout of the default HTTP client.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.http.Timeout = d
		}
	}
}

// WithMaxRetries sets how many times a 429/5xx or transport failure is
// retried. Zero disables retries.
func WithMaxRetries(n int) Option {
	return func(c *Client) {
		if n >= 0 {
			c.maxRetries = n
		}
	}
}

// WithRateLimit caps outgoing requests per second. rps <= 0 means unlimited.
func WithRateLimit(rps float64) Option {
	return func(c *Client) {
		if rps <= 0 {
			c.limiter = rate.NewLimiter(rate.Inf, 1)
			return
		}
		burst := int(math.Ceil(rps))
		c.limiter = rate.NewLimiter(rate.Limit(rps), burst)
	}
}

// WithBackoff sets the base delay between retries; it doubles per attempt.
func WithBackoff(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.backoff = d
		}
	}
}

// Client is a minimal PostgREST reader. It is safe for concurrent use.
type Client struct {
	baseURL    string
	apiKey     string
	http       *http.Client
	limiter    *rate.Limiter
	maxRetries int
	backoff    time.Duration
}

// New creates a client for baseURL (e.g. https://xyz.supabase.co/rest/v1).
// apiKey, when set, is sent both as the apikey header and as a bearer token.
func New(baseURL, apiKey string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		http: &http.Client{
			Timeout: defaultTimeout,
			Transport: &http.Transport{
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			},
		},
		limiter:    rate.NewLimiter(rate.Inf, 1),
		maxRetries: defaultMaxRetries,
		backoff:    defaultBackoff,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// StatusError is returned when the API answers with a non-2xx status after
// retries are exhausted (or immediately for non-retryable statuses).
type StatusError struct {
	Table string
	Code  int
	Body  string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("postgrest: %s: status %d: %s", e.Table, e.Code, e.Body)
}

// retryable reports whether status warrants another attempt.
func retryable(status int) bool {
	return status == http.StatusTooManyRequests || status >= 500
}

// get fetches table with params and decodes the JSON array into out.
func (c *Client) get(ctx context.Context, table string, params url.Values, out any) error {
	ctx, span := observability.Tracer("postgrest").Start(ctx, "GET "+table,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(attribute.String("db.sql.table", table)),
	)
	defer span.End()

	body, err := c.do(ctx, table, params)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "request failed")
		return err
	}
	if err := json.Unmarshal(body, out); err != nil {
		span.SetStatus(codes.Error, "decode failed")
		return eris.Wrapf(err, "postgrest: %s: decode response", table)
	}
	return nil
}

func (c *Client) do(ctx context.Context, table string, params url.Values) ([]byte, error) {
	endpoint := c.baseURL + "/" + table
	if enc := params.Encode(); enc != "" {
		endpoint += "?" + enc
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, eris.Wrapf(err, "postgrest: %s: create request", table)
	}
	req.Header.Set("Accept", "application/json")
	if c.apiKey != "" {
		req.Header.Set("apikey", c.apiKey)
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if attempt > 0 {
			if err := c.wait(ctx, attempt); err != nil {
				return nil, eris.Wrapf(err, "postgrest: %s: backoff", table)
			}
		}
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, eris.Wrapf(err, "postgrest: %s: rate limiter wait", table)
		}

		resp, err := c.http.Do(req.Clone(ctx))
		if err != nil {
			if ctx.Err() != nil {
				return nil, eris.Wrapf(ctx.Err(), "postgrest: %s", table)
			}
			lastErr = eris.Wrapf(err, "postgrest: %s: request", table)
			log.Warn().Err(err).Str("table", table).Int("attempt", attempt+1).Msg("postgrest request failed")
			continue
		}

		body, readErr := io.ReadAll(resp.Body)
		_ = resp.Body.Close()
		if readErr != nil {
			return nil, eris.Wrapf(readErr, "postgrest: %s: read response body", table)
		}

		if resp.StatusCode >= 200 && resp.StatusCode < 300 {
			return body, nil
		}

		serr := &StatusError{Table: table, Code: resp.StatusCode, Body: snippet(body)}
		if !retryable(resp.StatusCode) {
			return nil, eris.Wrap(serr, "postgrest: unexpected status")
		}
		lastErr = eris.Wrap(serr, "postgrest: retryable status")
		log.Warn().Str("table", table).Int("status", resp.StatusCode).Int("attempt", attempt+1).Msg("postgrest retryable status")
	}
	return nil, eris.Wrap(lastErr, "postgrest: all retries exhausted")
}

// wait sleeps for the backoff of attempt (1-based), honoring ctx.
func (c *Client) wait(ctx context.Context, attempt int) error {
	d := time.Duration(float64(c.backoff) * math.Pow(2, float64(attempt-1)))
	if d > maxBackoff {
		d = maxBackoff
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

func snippet(b []byte) string {
	s := strings.TrimSpace(string(b))
	if len(s) > maxErrorBody {
		return s[:maxErrorBody] + "…"
	}
	return s
}

// inList renders ids as a PostgREST in.(...) operand. Every value is
// double-quoted so commas and parentheses inside ids stay literal.
func inList(ids []string) string {
	q := make([]string, len(ids))
	r := strings.NewReplacer(`\`, `\\`, `"`, `\"`)
	for i, id := range ids {
		q[i] = `"` + r.Replace(id) + `"`
	}
	return "in.(" + strings.Join(q, ",") + ")"
}

// ilikeContains renders a folded term as an ilike.*term* operand. LIKE
// metacharacters are escaped; '*' is PostgREST's wildcard and is dropped.
func ilikeContains(folded string) string {
	r := strings.NewReplacer(`*`, ``, `\`, `\\`, `%`, `\%`, `_`, `\_`)
	return "ilike.*" + r.Replace(folded) + "*"
}
