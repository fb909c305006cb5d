package metrics

import (
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestMetricsIsolation(t *testing.T) {
	m1 := New("0.1.0")
	m2 := New("0.2.0")

	m1.IndexBuildsTotal.WithLabelValues("success").Inc()

	if v := testutil.ToFloat64(m2.IndexBuildsTotal.WithLabelValues("success")); v != 0 {
		t.Errorf("m2 saw m1 counter value %v; registries are not isolated", v)
	}
}

func TestRecordBuild(t *testing.T) {
	m := New("test")

	m.RecordBuild(12, 3, nil)
	m.RecordBuild(0, 0, errors.New("boom"))

	if v := testutil.ToFloat64(m.IndexBuildsTotal.WithLabelValues("success")); v != 1 {
		t.Errorf("success builds = %v, want 1", v)
	}
	if v := testutil.ToFloat64(m.IndexBuildsTotal.WithLabelValues("error")); v != 1 {
		t.Errorf("error builds = %v, want 1", v)
	}
	if v := testutil.ToFloat64(m.IndexPages); v != 12 {
		t.Errorf("pages = %v, want 12 (failed build must not reset it)", v)
	}
	if v := testutil.ToFloat64(m.IndexGroups); v != 3 {
		t.Errorf("groups = %v, want 3", v)
	}
}

func TestMiddleware_RecordsRoutePattern(t *testing.T) {
	m := New("test")
	r := chi.NewRouter()
	r.Use(m.Middleware)
	r.Get("/api/toc/*", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	for _, p := range []string{"/api/toc/docs/a", "/api/toc/docs/b"} {
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest("GET", p, nil))
		if rec.Code != http.StatusNotFound {
			t.Fatalf("status = %d", rec.Code)
		}
	}

	if v := testutil.ToFloat64(m.HTTPRequestsTotal.WithLabelValues("GET", "/api/toc/*", "404")); v != 2 {
		t.Errorf("requests = %v, want 2", v)
	}
	if n := testutil.CollectAndCount(m.HTTPRequestDurationSeconds); n != 1 {
		t.Errorf("duration series = %d, want 1", n)
	}
}

func TestMiddleware_NilPassthrough(t *testing.T) {
	var m *Metrics
	called := false
	h := m.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest("GET", "/", nil))
	if !called {
		t.Error("handler was not called")
	}
}

func TestHandler(t *testing.T) {
	m := New("9.9.9")
	m.RecordBuild(4, 1, nil)

	srv := httptest.NewServer(m.Handler())
	defer srv.Close()

	resp, err := http.Get(srv.URL)
	if err != nil {
		t.Fatalf("GET: %v", err)
	}
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)

	for _, want := range []string{
		"flowershow_index_pages 4",
		`flowershow_info{version="9.9.9"} 1`,
		`flowershow_index_builds_total{result="success"} 1`,
	} {
		if !strings.Contains(string(body), want) {
			t.Errorf("exposition missing %q", want)
		}
	}
}
