package recommend

import (
	"math"
	"sort"

	"hhdeals/internal/category"
	"hhdeals/internal/core"
	"hhdeals/internal/geo"
	"hhdeals/internal/preferences"
)

const (
	WeightDistance   = 0.35
	WeightPrice      = 0.20
	WeightActive     = 0.25
	WeightPopularity = 0.10
	WeightPreference = 0.10

	// PopularityPlaceholder stands in for a popularity signal that does not
	// exist yet. Every deal gets the same value, so it never changes ranking.
	PopularityPlaceholder = 0.5

	DefaultLimit = 20
)

// ActiveFunc decides whether a deal is running right now.
type ActiveFunc func(deal core.Deal) bool

// DistanceFunc returns the distance in km and whether it could be computed.
type DistanceFunc func(from core.Position, to core.Establishment) (float64, bool)

// DistanceScore favours closer deals. Unknown distance scores 0.
func DistanceScore(km float64, known bool) float64 {
	if !known {
		return 0
	}
	switch {
	case km < 1:
		return 1.0
	case km < 3:
		return 0.8
	case km < 5:
		return 0.6
	case km < 10:
		return 0.3
	default:
		return 0.1
	}
}

// PriceScore favours cheaper happy-hour prices.
func PriceScore(price float64) float64 {
	switch {
	case price < 8:
		return 1.0
	case price < 12:
		return 0.9
	case price < 15:
		return 0.7
	case price < 20:
		return 0.5
	case price < 30:
		return 0.3
	default:
		return 0.1
	}
}

func ActiveScore(active bool) float64 {
	if active {
		return 1.0
	}
	return 0.3
}

// PreferenceScore blends stored category and price-bucket scores with view
// and visit history. A nil prefs behaves like a fresh client.
func PreferenceScore(deal core.Deal, prefs *preferences.Preferences) float64 {
	cat := float64(prefs.CategoryScore(category.Parse(deal.AlcoholCategory)))
	price := float64(prefs.PriceRangeScore(preferences.PriceRangeFor(deal.HappyHourPrice)))
	views := math.Min(float64(prefs.Views(deal.ID)), 5)
	visits := math.Min(float64(prefs.Visits(deal.EstablishmentID)), 10)

	return 0.4*(cat/10) + 0.4*(price/10) + 0.1*(views/5) + 0.1*(visits/10)
}

// CalculateDealScore returns a value in roughly [0,1]. A deal whose
// establishment is unknown scores 0. With no position the distance term is 0.
func CalculateDealScore(
	deal core.Deal,
	establishment *core.Establishment,
	position *core.Position,
	active bool,
	distance DistanceFunc,
	prefs *preferences.Preferences,
) float64 {
	if establishment == nil {
		return 0
	}
	if distance == nil {
		distance = geo.DistanceToEstablishment
	}

	var km float64
	known := false
	if position != nil {
		km, known = distance(*position, *establishment)
	}

	return WeightDistance*DistanceScore(km, known) +
		WeightPrice*PriceScore(deal.HappyHourPrice) +
		WeightActive*ActiveScore(active) +
		WeightPopularity*PopularityPlaceholder +
		WeightPreference*PreferenceScore(deal, prefs)
}

// Scored pairs a deal with its score.
type Scored struct {
	Deal  core.Deal `json:"deal"`
	Score float64   `json:"score"`
}

// RankDeals scores every deal and returns the best first, at most limit
// (DefaultLimit when limit <= 0). Equal scores keep input order.
func RankDeals(
	deals []core.Deal,
	establishments map[int]core.Establishment,
	position *core.Position,
	isActive ActiveFunc,
	distance DistanceFunc,
	prefs *preferences.Preferences,
	limit int,
) []Scored {
	if limit <= 0 {
		limit = DefaultLimit
	}

	scored := make([]Scored, 0, len(deals))
	for _, d := range deals {
		var est *core.Establishment
		if e, ok := establishments[d.EstablishmentID]; ok {
			est = &e
		}
		active := false
		if isActive != nil {
			active = isActive(d)
		}
		scored = append(scored, Scored{
			Deal:  d,
			Score: CalculateDealScore(d, est, position, active, distance, prefs),
		})
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})

	if len(scored) > limit {
		scored = scored[:limit]
	}
	return scored
}

// GetRecommendedDeals is RankDeals without the scores.
func GetRecommendedDeals(
	deals []core.Deal,
	establishments map[int]core.Establishment,
	position *core.Position,
	isActive ActiveFunc,
	distance DistanceFunc,
	prefs *preferences.Preferences,
	limit int,
) []core.Deal {
	ranked := RankDeals(deals, establishments, position, isActive, distance, prefs, limit)
	out := make([]core.Deal, 0, len(ranked))
	for _, s := range ranked {
		out = append(out, s.Deal)
	}
	return out
}
