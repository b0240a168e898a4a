package middleware

import (
	"crypto/tls"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
)

func serveSecure(opts SecurityOptions, req *http.Request, h gin.HandlerFunc) *httptest.ResponseRecorder {
	r := gin.New()
	r.Use(SecurityHeaders(opts))
	r.GET("/x", h)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestSecurityHeaders_Baseline(t *testing.T) {
	w := serveSecure(SecurityOptions{}, httptest.NewRequest(http.MethodGet, "/x", nil),
		func(c *gin.Context) { c.String(http.StatusOK, "ok") })

	h := w.Header()
	for k, v := range map[string]string{
		"X-Content-Type-Options": "nosniff",
		"X-Frame-Options":        "DENY",
		"Referrer-Policy":        "no-referrer",
	} {
		if h.Get(k) != v {
			t.Fatalf("%s=%q want %q", k, h.Get(k), v)
		}
	}
	if !strings.Contains(h.Get("Access-Control-Expose-Headers"), "ETag") {
		t.Fatalf("ETag not exposed: %q", h.Get("Access-Control-Expose-Headers"))
	}
	if h.Get("Strict-Transport-Security") != "" || h.Get("Cache-Control") != "" {
		t.Fatalf("optional headers set: %v", h)
	}
}

func TestSecurityHeaders_HSTSOnlyOverTLS(t *testing.T) {
	opts := SecurityOptions{HSTSMaxAge: 3600}
	ok := func(c *gin.Context) { c.Status(http.StatusNoContent) }

	plain := serveSecure(opts, httptest.NewRequest(http.MethodGet, "/x", nil), ok)
	if plain.Header().Get("Strict-Transport-Security") != "" {
		t.Fatal("HSTS over plain HTTP")
	}

	tlsReq := httptest.NewRequest(http.MethodGet, "/x", nil)
	tlsReq.TLS = &tls.ConnectionState{}
	if got := serveSecure(opts, tlsReq, ok).Header().Get("Strict-Transport-Security"); got != "max-age=3600; includeSubDomains" {
		t.Fatalf("HSTS=%q", got)
	}

	proxied := httptest.NewRequest(http.MethodGet, "/x", nil)
	proxied.Header.Set("X-Forwarded-Proto", "HTTPS")
	if serveSecure(opts, proxied, ok).Header().Get("Strict-Transport-Security") == "" {
		t.Fatal("HSTS missing behind TLS proxy")
	}
}

func TestSecurityHeaders_NoStoreIsOverridable(t *testing.T) {
	opts := SecurityOptions{NoStore: true}

	w := serveSecure(opts, httptest.NewRequest(http.MethodGet, "/x", nil),
		func(c *gin.Context) { c.Status(http.StatusOK) })
	if w.Header().Get("Cache-Control") != "no-store" {
		t.Fatalf("Cache-Control=%q", w.Header().Get("Cache-Control"))
	}

	w = serveSecure(opts, httptest.NewRequest(http.MethodGet, "/x", nil), func(c *gin.Context) {
		c.Header("Cache-Control", "no-cache")
		c.Status(http.StatusOK)
	})
	if w.Header().Get("Cache-Control") != "no-cache" {
		t.Fatalf("handler policy lost: %q", w.Header().Get("Cache-Control"))
	}
}
