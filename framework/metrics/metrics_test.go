package metrics_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/km-arc/controlled-form/framework/metrics"
)

func TestMetrics_FormCounters(t *testing.T) {
	m := metrics.New()
	m.FieldChanged("name", "text")
	m.FieldChanged("name", "text")
	m.ChangeRejected("unknown_field")
	m.Submitted(false)
	m.Rendered()
	m.SetActiveSessions(3)

	body := scrape(t, m)
	for _, want := range []string{
		`controlled_form_field_changes_total{field="name",kind="text"} 2`,
		`controlled_form_field_changes_rejected_total{reason="unknown_field"} 1`,
		`controlled_form_submits_total{allowed="false"} 1`,
		`controlled_form_renders_total 1`,
		`controlled_form_active_sessions 3`,
	} {
		if !strings.Contains(body, want) {
			t.Errorf("scrape missing %q", want)
		}
	}
}

func TestMetrics_LiveGauge(t *testing.T) {
	m := metrics.New()
	m.LiveConnected()
	m.LiveConnected()
	m.LiveDisconnected()

	if !strings.Contains(scrape(t, m), "controlled_form_live_clients 1") {
		t.Error("live_clients should be 1")
	}
}

func TestMetrics_MiddlewareUsesRoutePattern(t *testing.T) {
	m := metrics.New()
	r := chi.NewRouter()
	r.Use(m.Middleware)
	r.Get("/fields/{field}", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})

	for _, p := range []string{"/fields/name", "/fields/email"} {
		r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, p, nil))
	}

	n, err := testutil.GatherAndCount(m.Registry(), "controlled_form_http_requests_total")
	if err != nil {
		t.Fatalf("GatherAndCount: %v", err)
	}
	if n != 1 {
		t.Errorf("expected one label set, got %d", n)
	}
	if !strings.Contains(scrape(t, m),
		`controlled_form_http_requests_total{method="GET",route="/fields/{field}",status="418"} 2`) {
		t.Error("request counter not labelled by route pattern")
	}
}

func scrape(t *testing.T, m *metrics.Metrics) string {
	t.Helper()
	rr := httptest.NewRecorder()
	m.Handler().ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if rr.Code != http.StatusOK {
		t.Fatalf("scrape status: %d", rr.Code)
	}
	return rr.Body.String()
}
