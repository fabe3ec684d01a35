package geo

import (
	"errors"
	"strconv"
	"strings"

	"hhdeals/internal/core"
)

var ErrInvalidPosition = errors.New("invalid position")

// ParsePosition reads a lat/lng pair from query strings. Both empty means
// no position was given and returns nil without error.
func ParsePosition(lat, lng string) (*core.Position, error) {
	lat, lng = strings.TrimSpace(lat), strings.TrimSpace(lng)
	if lat == "" && lng == "" {
		return nil, nil
	}

	la, err := strconv.ParseFloat(lat, 64)
	if err != nil {
		return nil, ErrInvalidPosition
	}
	lo, err := strconv.ParseFloat(lng, 64)
	if err != nil {
		return nil, ErrInvalidPosition
	}

	p := core.Position{Lat: la, Lng: lo}
	if !ValidPosition(p) {
		return nil, ErrInvalidPosition
	}
	return &p, nil
}
