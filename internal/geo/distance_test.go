package geo

import (
	"math"
	"testing"

	"hhdeals/internal/core"
)

func TestDistanceKm(t *testing.T) {
	// Pike Place Market to the Space Needle
	pike := core.Position{Lat: 47.6097, Lng: -122.3422}
	needle := core.Position{Lat: 47.6205, Lng: -122.3493}

	got := DistanceKm(pike, needle)
	if got < 1.2 || got > 1.5 {
		t.Errorf("expected ~1.3 km, got %.3f", got)
	}

	if d := DistanceKm(pike, pike); d != 0 {
		t.Errorf("distance to self should be 0, got %f", d)
	}

	if math.Abs(DistanceKm(pike, needle)-DistanceKm(needle, pike)) > 1e-9 {
		t.Error("distance should be symmetric")
	}
}

func TestDistanceToEstablishment(t *testing.T) {
	from := core.Position{Lat: 47.6097, Lng: -122.3422}

	if _, ok := DistanceToEstablishment(from, core.Establishment{}); ok {
		t.Error("0,0 establishment should report unknown distance")
	}

	d, ok := DistanceToEstablishment(from, core.Establishment{Latitude: 47.6205, Longitude: -122.3493})
	if !ok || d <= 0 {
		t.Errorf("expected a positive distance, got %f (%v)", d, ok)
	}
}

func TestFormatDistance(t *testing.T) {
	if got := FormatDistance(0.85); got != "850 m" {
		t.Errorf("expected 850 m, got %s", got)
	}
	if got := FormatDistance(2.44); got != "2.4 km" {
		t.Errorf("expected 2.4 km, got %s", got)
	}
}
