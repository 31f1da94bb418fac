package weather

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/pwelgemoed-sys/lonehill-weather/internal/ecowitt"
	"github.com/pwelgemoed-sys/lonehill-weather/internal/kv"
)

func serviceOver(upstream *httptest.Server, trends *TrendStore) *Service {
	client := ecowitt.NewClient(ecowitt.Config{
		BaseURL:        upstream.URL,
		ApplicationKey: "app-key",
		APIKey:         "api-key",
		DeviceMAC:      "AA:BB:CC:DD:EE:FF",
		Timezone:       time.UTC,
		HTTPClient:     upstream.Client(),
	})
	return NewService(client, trends)
}

// TestCurrentWithTrendsWaitsForBoth checks the settle-all join: a history
// response that lands well after the realtime one must still make it
// into the report.
func TestCurrentWithTrendsWaitsForBoth(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/v3/device/real_time":
			w.Write([]byte(`{"code": 0, "msg": "success", "data": {"outdoor": {"temperature": {"value": "70"}}}}`))
		case "/api/v3/device/history":
			time.Sleep(150 * time.Millisecond)
			w.Write([]byte(`{"code": 0, "msg": "success", "data": {"pressure": {}}}`))
		}
	}))
	defer upstream.Close()

	trends := NewTrendStore(kv.NewMemory(), "weather:trend-history", 48*time.Hour)
	report, err := serviceOver(upstream, trends).CurrentWithTrends(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if string(report.History) != `{"pressure": {}}` {
		t.Fatalf("history = %s, want the slow upstream payload", report.History)
	}
	if len(report.Trends.Temperature) != 1 {
		t.Fatalf("trends = %+v, want the fresh temperature sample", report.Trends)
	}
}

func TestCurrentWithTrendsRefusesWithoutCredentials(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("no upstream call expected")
	}))
	defer upstream.Close()

	client := ecowitt.NewClient(ecowitt.Config{
		BaseURL:    upstream.URL,
		Timezone:   time.UTC,
		HTTPClient: upstream.Client(),
	})
	_, err := NewService(client, nil).CurrentWithTrends(context.Background())
	if !errors.Is(err, ErrMissingCredentials) {
		t.Fatalf("expected ErrMissingCredentials, got %v", err)
	}
}

func TestCurrentWithTrendsWrapsRealtimeFailure(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/v3/device/real_time":
			w.Write([]byte(`{"code": 40010, "msg": "Illegal Api Key Parameter"}`))
		case "/api/v3/device/history":
			w.Write([]byte(`{"code": 0, "msg": "success", "data": {}}`))
		}
	}))
	defer upstream.Close()

	_, err := serviceOver(upstream, nil).CurrentWithTrends(context.Background())

	var upstreamErr *UpstreamError
	if !errors.As(err, &upstreamErr) {
		t.Fatalf("expected *UpstreamError, got %v", err)
	}
	var apiErr *ecowitt.APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected cause to unwrap to *ecowitt.APIError, got %v", err)
	}
}
