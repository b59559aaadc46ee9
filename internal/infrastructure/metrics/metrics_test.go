package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
)

func scrape(t *testing.T, m *Metrics) string {
	t.Helper()
	w := httptest.NewRecorder()
	m.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 from metrics handler, got %d", w.Code)
	}
	return w.Body.String()
}

func TestCounters(t *testing.T) {
	m := New()

	m.Onboarding("MENTEE", "created")
	m.Onboarding("MENTEE", "created")
	m.TagsCreated("interest", 3)
	m.TagsCreated("interest", 0)
	m.CacheLookup(true)

	body := scrape(t, m)
	for _, want := range []string{
		`mentorlink_onboarding_submissions_total{outcome="created",role="MENTEE"} 2`,
		`mentorlink_tags_created_total{kind="interest"} 3`,
		`mentorlink_profile_cache_lookups_total{result="hit"} 1`,
	} {
		if !strings.Contains(body, want) {
			t.Errorf("missing %s", want)
		}
	}
}

func TestNilMetricsIsSafe(t *testing.T) {
	var m *Metrics
	m.Onboarding("MENTOR", "created")
	m.ProfileUpdate("updated")
	m.TagsCreated("industry", 1)
	m.CacheLookup(false)
}

func TestHandlerExposesMetrics(t *testing.T) {
	gin.SetMode(gin.TestMode)
	m := New()

	r := gin.New()
	r.Use(m.Middleware())
	r.GET("/ping", func(c *gin.Context) { c.Status(http.StatusNoContent) })
	r.GET("/metrics", gin.WrapH(m.Handler()))

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/ping", nil))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	body := w.Body.String()
	if !strings.Contains(body, `mentorlink_http_requests_total{method="GET",route="/ping",status="204"} 1`) {
		t.Fatalf("request counter missing from output:\n%s", body)
	}
}
