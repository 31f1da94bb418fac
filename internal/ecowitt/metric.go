package ecowitt

import (
	"encoding/json"
	"strconv"
)

// Metric is a single reading node in a station API payload. The API is
// loosely typed: value usually arrives as a string ("81.5"), sometimes
// as a bare number, and can be absent or empty when the sensor did not
// report.
type Metric struct {
	Time  string `json:"time,omitempty"`
	Unit  string `json:"unit,omitempty"`
	Value any    `json:"value,omitempty"`
}

// Float extracts the numeric reading. The second return is false when
// the node is absent, the value field is absent or an empty string, or
// the value does not parse as a number. A legitimate reading of 0
// returns (0, true); zero is never used as a stand-in for "missing".
func (m *Metric) Float() (float64, bool) {
	if m == nil || m.Value == nil {
		return 0, false
	}

	switch v := m.Value.(type) {
	case string:
		if v == "" {
			return 0, false
		}
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return 0, false
		}
		return f, true
	case float64:
		return v, true
	case json.Number:
		f, err := v.Float64()
		if err != nil {
			return 0, false
		}
		return f, true
	default:
		return 0, false
	}
}
