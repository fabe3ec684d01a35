package geo

import (
	"fmt"
	"math"

	"hhdeals/internal/core"
)

const earthRadiusKm = 6371.0

// DistanceKm is the great-circle (haversine) distance between two points.
func DistanceKm(a, b core.Position) float64 {
	lat1 := toRadians(a.Lat)
	lat2 := toRadians(b.Lat)
	dLat := toRadians(b.Lat - a.Lat)
	dLng := toRadians(b.Lng - a.Lng)

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLng/2)*math.Sin(dLng/2)

	return earthRadiusKm * 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))
}

// DistanceToEstablishment adapts DistanceKm to the recommend.DistanceFunc shape.
func DistanceToEstablishment(from core.Position, to core.Establishment) (float64, bool) {
	if !ValidPosition(to.Position()) {
		return 0, false
	}
	return DistanceKm(from, to.Position()), true
}

// ValidPosition rejects out-of-range coordinates and the 0,0 placeholder rows
// that imports leave behind.
func ValidPosition(p core.Position) bool {
	if p.Lat == 0 && p.Lng == 0 {
		return false
	}
	return p.Lat >= -90 && p.Lat <= 90 && p.Lng >= -180 && p.Lng <= 180
}

// FormatDistance renders "850 m" below one kilometre and "2.4 km" above.
func FormatDistance(km float64) string {
	if km < 1 {
		return fmt.Sprintf("%d m", int(math.Round(km*1000)))
	}
	return fmt.Sprintf("%.1f km", km)
}

func toRadians(deg float64) float64 {
	return deg * math.Pi / 180
}
