package weather

import "testing"

func TestFahrenheitToCelsius(t *testing.T) {
	cases := []struct {
		in, want float64
	}{
		{32, 0},
		{212, 100},
		{-40, -40},
		{81.5, 27.5},
	}
	for _, tc := range cases {
		if got := FahrenheitToCelsius(tc.in); got != tc.want {
			t.Errorf("FahrenheitToCelsius(%v) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestInHgToHectopascals(t *testing.T) {
	if got := InHgToHectopascals(1); got != 33.8639 {
		t.Errorf("InHgToHectopascals(1) = %v, want 33.8639", got)
	}
	if got := InHgToHectopascals(0); got != 0 {
		t.Errorf("InHgToHectopascals(0) = %v, want 0", got)
	}
}
