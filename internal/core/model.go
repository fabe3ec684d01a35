package core

import (
	"time"

	"hhdeals/internal/happyhour"
)

// Position is a user supplied coordinate.
type Position struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

type Establishment struct {
	ID           int       `json:"id"`
	Name         string    `json:"name"`
	Address      string    `json:"address"`
	Neighborhood string    `json:"neighborhood,omitempty"`
	Latitude     float64   `json:"latitude"`
	Longitude    float64   `json:"longitude"`
	ImageURL     *string   `json:"image_url,omitempty"`
	Website      *string   `json:"website,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

func (e Establishment) Position() Position {
	return Position{Lat: e.Latitude, Lng: e.Longitude}
}

// Deal is a single happy-hour offer at an establishment.
type Deal struct {
	ID              int       `json:"id"`
	EstablishmentID int       `json:"establishmentId"`
	Title           string    `json:"title"`
	Description     *string   `json:"description,omitempty"`
	AlcoholCategory string    `json:"alcohol_category"`
	ValidDays       string    `json:"valid_days"`
	HHStartTime     string    `json:"hh_start_time"`
	HHEndTime       string    `json:"hh_end_time"`
	StandardPrice   float64   `json:"standard_price"`
	HappyHourPrice  float64   `json:"happy_hour_price"`
	CreatedAt       time.Time `json:"created_at"`
}

func (d Deal) Schedule() happyhour.Schedule {
	return happyhour.Schedule{
		ValidDays: d.ValidDays,
		StartTime: d.HHStartTime,
		EndTime:   d.HHEndTime,
	}
}

// Schedules collects the happy-hour windows of a list of deals.
func Schedules(deals []Deal) []happyhour.Schedule {
	out := make([]happyhour.Schedule, 0, len(deals))
	for _, d := range deals {
		out = append(out, d.Schedule())
	}
	return out
}
