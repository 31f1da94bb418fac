package ecowitt

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/sony/gobreaker"
)

const (
	realtimePath = "/api/v3/device/real_time"
	historyPath  = "/api/v3/device/history"

	// History requests cover a fixed trailing window at 30-minute
	// resolution, limited to the channels the trend view needs.
	historyWindow    = 24 * time.Hour
	historyCycleType = "30min"
	historyCallback  = "outdoor.temperature,pressure"

	// The history endpoint wants local civil time, not epoch or UTC.
	historyTimeLayout = "2006-01-02 15:04:05"
)

// HTTPError reports a non-success transport-level response from the
// station API.
type HTTPError struct {
	StatusCode int
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("upstream returned http status %d", e.StatusCode)
}

// APIError reports an API-level failure: the response decoded fine but
// its status code was non-zero.
type APIError struct {
	Code    int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("upstream api error %d: %s", e.Code, e.Message)
}

// Config holds everything the client needs to reach the station API.
// Credentials are injected, never hard-coded.
type Config struct {
	BaseURL        string
	ApplicationKey string
	APIKey         string
	DeviceMAC      string

	// Timezone is the station's fixed local zone, used to format the
	// history window bounds the way the upstream expects.
	Timezone *time.Location

	HTTPClient *http.Client
}

// Realtime is the current-conditions result: the raw payload passed
// through to the browser client, plus the two metric nodes the trend
// history consumes.
type Realtime struct {
	Raw json.RawMessage

	// OutdoorTemperature is in °F, Pressure in inHg, as reported.
	OutdoorTemperature *Metric
	Pressure           *Metric
}

// Client issues requests against the station API. Each endpoint gets
// its own circuit breaker so a flapping history endpoint cannot trip
// the realtime path. Requests are never retried: a failure is reported
// once and the caller decides how to degrade.
type Client struct {
	cfg             Config
	realtimeCircuit *gobreaker.CircuitBreaker
	historyCircuit  *gobreaker.CircuitBreaker
}

// NewClient creates a station API client.
func NewClient(cfg Config) *Client {
	if cfg.Timezone == nil {
		cfg.Timezone = time.UTC
	}
	if cfg.HTTPClient == nil {
		cfg.HTTPClient = &http.Client{Timeout: 10 * time.Second}
	}

	newCircuit := func(name string) *gobreaker.CircuitBreaker {
		return gobreaker.NewCircuitBreaker(gobreaker.Settings{
			Name:        name,
			MaxRequests: 5,
			Interval:    1 * time.Minute,
			Timeout:     2 * time.Minute,
		})
	}

	return &Client{
		cfg:             cfg,
		realtimeCircuit: newCircuit("ecowitt-realtime"),
		historyCircuit:  newCircuit("ecowitt-history"),
	}
}

// HasCredentials reports whether all three credential strings are set.
func (c *Client) HasCredentials() bool {
	return c.cfg.ApplicationKey != "" && c.cfg.APIKey != "" && c.cfg.DeviceMAC != ""
}

// FetchRealtime requests the current snapshot for all channels.
func (c *Client) FetchRealtime(ctx context.Context) (*Realtime, error) {
	values := c.credentials()
	values.Set("call_back", "all")

	data, err := c.get(ctx, c.realtimeCircuit, realtimePath, values)
	if err != nil {
		return nil, err
	}

	rt := &Realtime{Raw: data}

	// Best-effort typed view for trend extraction. An unexpected data
	// shape leaves the metric nodes nil, which downstream treats as
	// "no reading this cycle"; the raw payload still flows through.
	var payload struct {
		Outdoor struct {
			Temperature *Metric `json:"temperature"`
		} `json:"outdoor"`
		Pressure struct {
			Relative *Metric `json:"relative"`
		} `json:"pressure"`
	}
	if err := json.Unmarshal(data, &payload); err == nil {
		rt.OutdoorTemperature = payload.Outdoor.Temperature
		rt.Pressure = payload.Pressure.Relative
	}

	return rt, nil
}

// FetchHistory requests the trailing 24 hours of outdoor-temperature
// and pressure readings at 30-minute resolution. The payload is passed
// through untouched.
func (c *Client) FetchHistory(ctx context.Context) (json.RawMessage, error) {
	end := time.Now().In(c.cfg.Timezone)
	start := end.Add(-historyWindow)

	values := c.credentials()
	values.Set("call_back", historyCallback)
	values.Set("cycle_type", historyCycleType)
	values.Set("start_date", start.Format(historyTimeLayout))
	values.Set("end_date", end.Format(historyTimeLayout))

	return c.get(ctx, c.historyCircuit, historyPath, values)
}

func (c *Client) credentials() url.Values {
	values := url.Values{}
	values.Set("application_key", c.cfg.ApplicationKey)
	values.Set("api_key", c.cfg.APIKey)
	values.Set("mac", c.cfg.DeviceMAC)
	return values
}

// get performs a single GET through the endpoint's circuit breaker and
// unwraps the station API envelope. No retries at any layer.
func (c *Client) get(ctx context.Context, cb *gobreaker.CircuitBreaker, path string, values url.Values) (json.RawMessage, error) {
	u := fmt.Sprintf("%s%s?%s", strings.TrimSuffix(c.cfg.BaseURL, "/"), path, values.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}

	result, err := cb.Execute(func() (interface{}, error) {
		resp, execErr := c.cfg.HTTPClient.Do(req)
		if execErr != nil {
			return nil, execErr
		}
		defer resp.Body.Close()

		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			return nil, &HTTPError{StatusCode: resp.StatusCode}
		}

		var envelope struct {
			Code int             `json:"code"`
			Msg  string          `json:"msg"`
			Data json.RawMessage `json:"data"`
		}
		if decErr := json.NewDecoder(resp.Body).Decode(&envelope); decErr != nil {
			return nil, fmt.Errorf("decode upstream response: %w", decErr)
		}
		if envelope.Code != 0 {
			return nil, &APIError{Code: envelope.Code, Message: envelope.Msg}
		}
		return envelope.Data, nil
	})
	if err != nil {
		return nil, err
	}

	data, ok := result.(json.RawMessage)
	if !ok {
		return nil, fmt.Errorf("unexpected result type from circuit breaker")
	}
	return data, nil
}
