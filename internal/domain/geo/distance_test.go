package geo

import (
	"math"
	"testing"
)

func almost(a, b, eps float64) bool {
	if a > b {
		return a-b < eps
	}
	return b-a < eps
}

func TestDistanceKm_SamePoint(t *testing.T) {
	d := DistanceKm(40.7128, -74.0060, 40.7128, -74.0060)
	if d != 0 {
		t.Fatalf("want 0, got %f", d)
	}
}

func TestDistanceKm_NewYork_London(t *testing.T) {
	// NYC to London: ~5,570 km
	d := DistanceKm(40.7128, -74.0060, 51.5074, -0.1278)
	if !almost(d, 5570, 30) { // spherical approximation
		t.Fatalf("want ~5570km, got %.0fkm", d)
	}
}

func TestDistanceKm_Antipodal(t *testing.T) {
	// Opposite sides of Earth: half circumference
	tests := []struct {
		name                   string
		lat1, lon1, lat2, lon2 float64
	}{
		{"equator", 0, 0, 0, 180},
		{"poles", 90, 0, -90, 0},
		{"diagonal", 45, 30, -45, -150},
	}
	want := math.Pi * EarthRadiusKm
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := DistanceKm(tt.lat1, tt.lon1, tt.lat2, tt.lon2)
			if math.IsNaN(d) {
				t.Fatal("got NaN")
			}
			if !almost(d, want, 1e-3) {
				t.Fatalf("want %.4fkm, got %.4fkm", want, d)
			}
		})
	}
}

func TestDistanceKm_Symmetric(t *testing.T) {
	points := []Point{
		{0, 0},
		{10, 20},
		{10.05, 20.05},
		{-33.8688, 151.2093},
		{55.7558, 37.6173},
		{89.9, -179.9},
		{-90, 180},
	}
	for _, a := range points {
		for _, b := range points {
			ab := Distance(a, b)
			ba := Distance(b, a)
			if ab != ba {
				t.Errorf("distance(%v,%v)=%v != distance(%v,%v)=%v", a, b, ab, b, a, ba)
			}
		}
		if d := Distance(a, a); d != 0 {
			t.Errorf("distance(%v,%v) = %v, want 0", a, a, d)
		}
	}
}

func TestDistanceKm_SmallOffset(t *testing.T) {
	// 0.05 deg in both directions near the equator is ~7.8 km
	d := DistanceKm(10.0, 20.0, 10.05, 20.05)
	if !almost(d, 7.8, 0.1) {
		t.Fatalf("want ~7.8km, got %f", d)
	}
}

func TestClamp(t *testing.T) {
	if clamp(1.0000000000000002, 0, 1) != 1 {
		t.Error("value above range not clamped")
	}
	if clamp(-1e-17, 0, 1) != 0 {
		t.Error("value below range not clamped")
	}
	if clamp(0.5, 0, 1) != 0.5 {
		t.Error("value in range changed")
	}
}

func TestRoundKm(t *testing.T) {
	tests := []struct {
		in, want float64
	}{
		{7.8123, 7.81},
		{7.816, 7.82},
		{0, 0},
		{30, 30},
	}
	for _, tt := range tests {
		if got := RoundKm(tt.in); !almost(got, tt.want, 1e-9) {
			t.Errorf("RoundKm(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestValidateCoordinates(t *testing.T) {
	tests := []struct {
		lat, lon float64
		valid    bool
	}{
		{0, 0, true},
		{90, 180, true},
		{-90, -180, true},
		{91, 0, false},
		{0, 181, false},
		{-91, 0, false},
		{0, -181, false},
		{math.NaN(), 0, false},
		{0, math.Inf(1), false},
	}
	for _, tt := range tests {
		if got := ValidateCoordinates(tt.lat, tt.lon); got != tt.valid {
			t.Errorf("ValidateCoordinates(%f, %f) = %v, want %v", tt.lat, tt.lon, got, tt.valid)
		}
	}
}

func TestIsFinite(t *testing.T) {
	if !IsFinite(1, 2) {
		t.Error("finite coordinates reported as non-finite")
	}
	if IsFinite(math.NaN(), 2) || IsFinite(1, math.Inf(-1)) {
		t.Error("non-finite coordinates reported as finite")
	}
}
