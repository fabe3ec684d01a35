package deals

import (
	"time"

	"hhdeals/internal/category"
	"hhdeals/internal/core"
)

// View is a deal enriched with its live state for the listing page.
type View struct {
	core.Deal
	EstablishmentName string            `json:"establishment_name,omitempty"`
	IsActive          bool              `json:"is_active"`
	NextStart         *time.Time        `json:"next_start,omitempty"`
	Category          category.Category `json:"category"`
	CategoryDisplay   category.Display  `json:"category_display"`
	DistanceKm        *float64          `json:"distance_km,omitempty"`
	Distance          string            `json:"distance,omitempty"`
	Saved             bool              `json:"saved"`
}

// Recommendation is a View with the score it was ranked by.
type Recommendation struct {
	View
	Score float64 `json:"score"`
}

// Filter narrows List. Zero value lists everything.
type Filter struct {
	ActiveOnly bool
	Category   category.Category
	Position   *core.Position
	ClientID   string
}

// CreateInput is what an admin submits for a new deal.
type CreateInput struct {
	EstablishmentID int     `json:"establishmentId"`
	Title           string  `json:"title"`
	Description     *string `json:"description"`
	AlcoholCategory string  `json:"alcohol_category"`
	ValidDays       string  `json:"valid_days"`
	HHStartTime     string  `json:"hh_start_time"`
	HHEndTime       string  `json:"hh_end_time"`
	StandardPrice   float64 `json:"standard_price"`
	HappyHourPrice  float64 `json:"happy_hour_price"`
}
