package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestMetrics_LabelsByRouteAndBucketsUnmatched(t *testing.T) {
	r := gin.New()
	r.Use(Metrics())
	r.GET("/api/v1/compare", func(c *gin.Context) { c.String(http.StatusOK, "{}") })

	okBefore := testutil.ToFloat64(httpRequests.WithLabelValues("GET", "/api/v1/compare", "200"))
	missBefore := testutil.ToFloat64(httpRequests.WithLabelValues("GET", unmatchedRoute, "404"))

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/v1/compare?ids=L1,L2", nil))
	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/wp-admin/x.php", nil))
	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/random/123", nil))

	if got := testutil.ToFloat64(httpRequests.WithLabelValues("GET", "/api/v1/compare", "200")); got != okBefore+1 {
		t.Fatalf("route counter=%v want %v", got, okBefore+1)
	}
	if got := testutil.ToFloat64(httpRequests.WithLabelValues("GET", unmatchedRoute, "404")); got != missBefore+2 {
		t.Fatalf("unmatched counter=%v want %v", got, missBefore+2)
	}
	if got := testutil.ToFloat64(httpInflight); got != 0 {
		t.Fatalf("inflight=%v after requests", got)
	}
	if n := testutil.CollectAndCount(httpDuration); n == 0 {
		t.Fatal("no latency series collected")
	}
}

func TestMetrics_PanickingHandlerIsCountedAndReleased(t *testing.T) {
	r := gin.New()
	r.Use(Recovery(), Metrics())
	r.GET("/api/v1/search", func(c *gin.Context) { panic("boom") })

	before := testutil.ToFloat64(httpRequests.WithLabelValues("GET", "/api/v1/search", "500"))
	inflight := testutil.ToFloat64(httpInflight)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/search?q=ana", nil))

	if w.Code != http.StatusInternalServerError {
		t.Fatalf("status=%d want 500", w.Code)
	}
	if got := testutil.ToFloat64(httpInflight); got != inflight {
		t.Fatalf("in-flight gauge leaked: %v -> %v", inflight, got)
	}
	if got := testutil.ToFloat64(httpRequests.WithLabelValues("GET", "/api/v1/search", "500")); got != before+1 {
		t.Fatalf("500 counter=%v want %v", got, before+1)
	}
}
