package weather

import (
	"encoding/json"
)

// Sample is a single metric reading at a point in time.
// Time is epoch milliseconds. Samples are immutable once created.
type Sample struct {
	Time  int64   `json:"time"`
	Value float64 `json:"value"`
}

// TrendHistory is the rolling window of recent samples kept per metric.
// Sequences are insertion-ordered, which is also chronological since
// samples are always appended at "now". Values are metric: temperature
// in Celsius, pressure in hectopascals.
type TrendHistory struct {
	Pressure    []Sample `json:"pressure"`
	Temperature []Sample `json:"temperature"`
}

// EmptyTrendHistory returns a history with both sequences present but empty.
// This is the fallback whenever the persisted blob is missing or unusable,
// and the response shape when persistence is not configured at all.
func EmptyTrendHistory() TrendHistory {
	return TrendHistory{
		Pressure:    []Sample{},
		Temperature: []Sample{},
	}
}

// Report is the combined payload served to the browser client.
// Realtime and History are upstream payloads passed through verbatim.
// History is null when the history fetch failed or returned a non-zero
// status code; HistoryError then carries the reason for diagnostics.
type Report struct {
	Realtime     json.RawMessage `json:"realtime"`
	History      json.RawMessage `json:"history"`
	HistoryError string          `json:"historyError,omitempty"`
	Trends       TrendHistory    `json:"trends"`
}
