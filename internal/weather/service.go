package weather

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"sync"

	"github.com/pwelgemoed-sys/lonehill-weather/internal/ecowitt"
)

// ErrMissingCredentials means the station API credentials are not all
// configured; the request is refused before any upstream call.
var ErrMissingCredentials = errors.New("station api credentials are not configured")

// UpstreamError wraps a current-reading fetch failure. Without a
// current reading there is nothing useful to serve, so the transport
// layer maps this to a bad-gateway response.
type UpstreamError struct {
	Err error
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("upstream current reading failed: %v", e.Err)
}

func (e *UpstreamError) Unwrap() error {
	return e.Err
}

// Service assembles the combined weather report from the station API
// and the persisted trend history.
type Service struct {
	client *ecowitt.Client
	trends *TrendStore // nil when persistence is not configured
}

// NewService creates a Service. trends may be nil, in which case the
// report always carries an empty trend history.
func NewService(client *ecowitt.Client, trends *TrendStore) *Service {
	return &Service{
		client: client,
		trends: trends,
	}
}

// CurrentWithTrends fetches the current reading and the recent upstream
// history concurrently, merges the current reading into the trend
// history, and returns the combined report.
//
// The two fetches are joined settle-all: both run to completion before
// any outcome is inspected, and neither cancels the other. A history
// failure degrades that field to null; a current-reading failure fails
// the whole request.
func (s *Service) CurrentWithTrends(ctx context.Context) (*Report, error) {
	if !s.client.HasCredentials() {
		return nil, ErrMissingCredentials
	}

	var (
		wg sync.WaitGroup

		realtime    *ecowitt.Realtime
		realtimeErr error
		history     json.RawMessage
		historyErr  error
	)

	wg.Add(2)
	go func() {
		defer wg.Done()
		realtime, realtimeErr = s.client.FetchRealtime(ctx)
	}()
	go func() {
		defer wg.Done()
		history, historyErr = s.client.FetchHistory(ctx)
	}()
	wg.Wait()

	if realtimeErr != nil {
		return nil, &UpstreamError{Err: realtimeErr}
	}

	report := &Report{
		Realtime: realtime.Raw,
		Trends:   EmptyTrendHistory(),
	}

	if historyErr != nil {
		log.Printf("history fetch degraded to null: %v", historyErr)
		report.HistoryError = historyErr.Error()
	} else {
		report.History = history
	}

	if s.trends != nil {
		report.Trends = s.trends.Update(ctx, realtime)
	}

	return report, nil
}
