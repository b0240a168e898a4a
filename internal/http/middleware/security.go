package middleware

import (
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
)

// SecurityOptions toggles the optional response headers.
type SecurityOptions struct {
	// HSTSMaxAge enables Strict-Transport-Security on HTTPS requests when > 0.
	HSTSMaxAge int
	// NoStore defaults Cache-Control to no-store; handlers may override it.
	NoStore bool
}

// SecurityHeaders sets conservative headers suitable for a JSON API.
func SecurityHeaders(opts SecurityOptions) gin.HandlerFunc {
	hsts := ""
	if opts.HSTSMaxAge > 0 {
		hsts = "max-age=" + strconv.Itoa(opts.HSTSMaxAge) + "; includeSubDomains"
	}
	return func(c *gin.Context) {
		h := c.Writer.Header()
		h.Set("X-Content-Type-Options", "nosniff")
		h.Set("X-Frame-Options", "DENY")
		h.Set("Referrer-Policy", "no-referrer")
		h.Set("Cross-Origin-Resource-Policy", "same-site")
		h.Set("Permissions-Policy", "camera=(), microphone=(), geolocation=()")
		h.Add("Access-Control-Expose-Headers", RequestIDHeader+", ETag")
		if hsts != "" && overTLS(c) {
			h.Set("Strict-Transport-Security", hsts)
		}
		if opts.NoStore {
			h.Set("Cache-Control", "no-store")
		}
		c.Next()
	}
}

// overTLS detects HTTPS directly or behind a proxy that sets
// X-Forwarded-Proto.
func overTLS(c *gin.Context) bool {
	if c.Request.TLS != nil {
		return true
	}
	return strings.EqualFold(c.GetHeader("X-Forwarded-Proto"), "https")
}
