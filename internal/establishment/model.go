package establishment

import (
	"hhdeals/internal/core"
	"hhdeals/internal/happyhour"
)

// View is an establishment as the listing page shows it.
type View struct {
	core.Establishment
	Status     happyhour.DaySummary `json:"status"`
	DistanceKm *float64             `json:"distance_km,omitempty"`
	Distance   string               `json:"distance,omitempty"`
}

// TaggedDeal is a deal with its live state at request time.
type TaggedDeal struct {
	core.Deal
	IsActive bool `json:"is_active"`
}

// Detail is the single establishment page.
type Detail struct {
	View
	Deals []TaggedDeal `json:"deals"`
}

// CreateInput is what an admin submits for a new establishment.
type CreateInput struct {
	Name         string  `json:"name"`
	Address      string  `json:"address"`
	Neighborhood string  `json:"neighborhood"`
	Latitude     float64 `json:"latitude"`
	Longitude    float64 `json:"longitude"`
	ImageURL     *string `json:"image_url"`
	Website      *string `json:"website"`
}
