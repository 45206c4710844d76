package observability_test

import (
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"hotel_content/internal/adapters/observability"
)

func TestMetricsRegistryAndHandler(t *testing.T) {
	reg := observability.InitRegistry()

	observability.ObserveHTTP("/v1.0/hotel/details", "POST", 200, 12*time.Millisecond)
	observability.ObserveSupplier("hotelbeds", "hotel_details", 404, 3*time.Millisecond)
	observability.ObserveNormalize("dotw", nil)
	observability.ObservePush("dotw", "saved")

	mh := observability.MetricsHandler(reg)
	req := httptest.NewRequest("GET", "/metrics", nil)
	rr := httptest.NewRecorder()
	mh.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("metrics status: %d", rr.Code)
	}
	body, _ := io.ReadAll(rr.Body)
	out := string(body)
	for _, want := range []string{
		"hotel_content_http_requests_total",
		"hotel_content_supplier_requests_total",
		`hotel_content_normalizations_total{outcome="none",supplier="dotw"}`,
		`hotel_content_push_results_total{status="saved",supplier="dotw"}`,
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %s in output", want)
		}
	}
}

func TestLabelErr(t *testing.T) {
	if got := observability.LabelErr(nil); got != "none" {
		t.Fatalf("nil: %q", got)
	}
	if got := observability.LabelErr(errors.New("x")); got != "*errors.errorString" {
		t.Fatalf("errorString: %q", got)
	}
}
