package ecowitt

import (
	"encoding/json"
	"testing"
)

func TestMetricFloat(t *testing.T) {
	cases := []struct {
		name    string
		metric  *Metric
		want    float64
		present bool
	}{
		{name: "nil node", metric: nil},
		{name: "absent value", metric: &Metric{Unit: "℉"}},
		{name: "empty string", metric: &Metric{Value: ""}},
		{name: "non-numeric string", metric: &Metric{Value: "n/a"}},
		{name: "string reading", metric: &Metric{Value: "81.5"}, want: 81.5, present: true},
		{name: "numeric reading", metric: &Metric{Value: 29.92}, want: 29.92, present: true},
		{name: "zero is a real reading", metric: &Metric{Value: "0"}, want: 0, present: true},
		{name: "negative reading", metric: &Metric{Value: "-3.2"}, want: -3.2, present: true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := tc.metric.Float()
			if ok != tc.present {
				t.Fatalf("presence = %v, want %v", ok, tc.present)
			}
			if ok && got != tc.want {
				t.Fatalf("value = %v, want %v", got, tc.want)
			}
		})
	}
}

// TestMetricFloatFromJSON exercises the types encoding/json actually
// produces when decoding upstream payloads.
func TestMetricFloatFromJSON(t *testing.T) {
	var payload struct {
		Temperature *Metric `json:"temperature"`
		Pressure    *Metric `json:"pressure"`
		Humidity    *Metric `json:"humidity"`
	}
	body := `{
		"temperature": {"unit": "℉", "value": "0"},
		"pressure": {"unit": "inHg", "value": 29.92}
	}`
	if err := json.Unmarshal([]byte(body), &payload); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if v, ok := payload.Temperature.Float(); !ok || v != 0 {
		t.Fatalf("temperature = %v, %v; want 0, true", v, ok)
	}
	if v, ok := payload.Pressure.Float(); !ok || v != 29.92 {
		t.Fatalf("pressure = %v, %v; want 29.92, true", v, ok)
	}
	if _, ok := payload.Humidity.Float(); ok {
		t.Fatal("absent node should not report a value")
	}
}
