package middleware

import (
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const (
	redacted          = "[REDACTED]"
	maxQueryLogLength = 1024
)

var (
	emailRE = regexp.MustCompile(`(?i)\b[a-z0-9._%+\-]+@[a-z0-9.\-]+\.[a-z]{2,}\b`)
	// digits only so ids like "L1" or UUID fragments are not taken for phones
	phoneRE = regexp.MustCompile(`\+?\d[\d .\-]{7,}\d`)
)

// RedactOptions configures what RedactingLogger scrubs.
type RedactOptions struct {
	// MaskHeaders adds header names (case-insensitive) whose values are
	// replaced entirely. Authorization, Cookie and apikey are always masked.
	MaskHeaders []string
	// MaskParams adds query parameter names whose values are replaced
	// entirely. apikey, token and access_token are always masked.
	MaskParams []string
	// LogHeaders includes the scrubbed request headers in the access log.
	LogHeaders bool
}

// RedactingLogger emits one structured access log per request with secrets
// and contact data scrubbed from the query string and headers. It also
// attaches a request-scoped logger (see LoggerFrom) for handlers.
//
// Level follows the outcome: error for 5xx or recorded gin errors, warn for
// 4xx, info otherwise. Bodies are never logged.
func RedactingLogger(opts RedactOptions) gin.HandlerFunc {
	headers := lowerSet([]string{"authorization", "cookie", "set-cookie", "apikey"}, opts.MaskHeaders)
	params := lowerSet([]string{"apikey", "token", "access_token"}, opts.MaskParams)

	return func(c *gin.Context) {
		start := time.Now()

		route := c.FullPath()
		if route == "" {
			route = c.Request.URL.Path
		}
		l := log.With().
			Str("request_id", RequestIDFrom(c)).
			Str("method", c.Request.Method).
			Str("path", route).
			Str("remote_ip", c.ClientIP()).
			Logger()
		c.Set(loggerKey, &l)

		c.Next()

		status := c.Writer.Status()
		var ev *zerolog.Event
		switch {
		case len(c.Errors) > 0 || status >= 500:
			ev = l.Error()
			if len(c.Errors) > 0 {
				ev = ev.Str("errors", c.Errors.String())
			}
		case status >= 400:
			ev = l.Warn()
		default:
			ev = l.Info()
		}

		ev = ev.
			Str("query", truncate(scrubQuery(c.Request.URL.RawQuery, params), maxQueryLogLength)).
			Str("user_agent", c.Request.UserAgent()).
			Int("status", status).
			Int("bytes_out", c.Writer.Size()).
			Dur("latency", time.Since(start))
		if opts.LogHeaders {
			ev = ev.Interface("headers", scrubHeaders(c.Request.Header, headers))
		}
		ev.Msg("http_request")
	}
}

func lowerSet(base, extra []string) map[string]struct{} {
	out := make(map[string]struct{}, len(base)+len(extra))
	for _, s := range append(base, extra...) {
		if s = strings.ToLower(strings.TrimSpace(s)); s != "" {
			out[s] = struct{}{}
		}
	}
	return out
}

// scrubText masks e-mail addresses and phone-like digit runs.
func scrubText(s string) string {
	if s == "" {
		return s
	}
	s = emailRE.ReplaceAllString(s, "[REDACTED:email]")
	return phoneRE.ReplaceAllString(s, "[REDACTED:phone]")
}

// scrubQuery masks sensitive parameters by name and scrubs the rest. An
// unparsable query is scrubbed as plain text.
func scrubQuery(raw string, mask map[string]struct{}) string {
	if raw == "" {
		return ""
	}
	vals, err := url.ParseQuery(raw)
	if err != nil {
		return scrubText(raw)
	}
	for k, vv := range vals {
		_, secret := mask[strings.ToLower(k)]
		for i := range vv {
			if secret {
				vv[i] = redacted
			} else {
				vv[i] = scrubText(vv[i])
			}
		}
	}
	dec, err := url.QueryUnescape(vals.Encode())
	if err != nil {
		return vals.Encode()
	}
	return dec
}

func scrubHeaders(h map[string][]string, mask map[string]struct{}) map[string]string {
	out := make(map[string]string, len(h))
	for k, vv := range h {
		if _, ok := mask[strings.ToLower(k)]; ok {
			out[k] = redacted
			continue
		}
		out[k] = scrubText(strings.Join(vv, ", "))
	}
	return out
}

// truncate caps s at max bytes, appending an ellipsis. max <= 0 disables it.
func truncate(s string, max int) string {
	if max <= 0 || len(s) <= max {
		return s
	}
	return s[:max] + "…"
}
