package api

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/banshee-data/elevation.report/internal/units"
)

func doChartRequest(t *testing.T, s *Server, target string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	s.ChartsMux().ServeHTTP(rec, req)
	return rec
}

func TestChartEndpointsRenderHTML(t *testing.T) {
	s := testServer(t, units.Meters)

	for _, target := range []string{"/profiles?site=AHA", "/diff?site=AHA", "/integral?site=AHA"} {
		rec := doChartRequest(t, s, target)
		if rec.Code != http.StatusOK {
			t.Errorf("%s status = %d, want 200", target, rec.Code)
			continue
		}
		if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/html") {
			t.Errorf("%s content-type = %s, want text/html", target, ct)
		}
		if !strings.Contains(rec.Body.String(), "echarts") {
			t.Errorf("%s body does not look like an echarts page", target)
		}
	}
}

func TestChartUnknownSite(t *testing.T) {
	s := testServer(t, units.Meters)

	rec := doChartRequest(t, s, "/diff?site=NOPE")
	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
}

func TestDashboardEscapesSite(t *testing.T) {
	s := testServer(t, units.Meters)

	rec := doChartRequest(t, s, "/?site=AHA")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	body := rec.Body.String()
	for _, want := range []string{"profiles?site=AHA", "diff?site=AHA", "integral?site=AHA"} {
		if !strings.Contains(body, want) {
			t.Errorf("dashboard missing iframe target %q", want)
		}
	}
}
