package preferences

import (
	"time"

	"hhdeals/internal/category"
)

const (
	MinScore     = 1
	MaxScore     = 10
	DefaultScore = 5
)

// PriceRange buckets a happy-hour price for preference matching.
type PriceRange string

const (
	Under10    PriceRange = "under_10"
	From10To15 PriceRange = "10_to_15"
	From15To20 PriceRange = "15_to_20"
	Above20    PriceRange = "above_20"
)

func PriceRanges() []PriceRange {
	return []PriceRange{Under10, From10To15, From15To20, Above20}
}

func PriceRangeFor(price float64) PriceRange {
	switch {
	case price < 10:
		return Under10
	case price < 15:
		return From10To15
	case price < 20:
		return From15To20
	default:
		return Above20
	}
}

func ParsePriceRange(s string) (PriceRange, bool) {
	for _, r := range PriceRanges() {
		if string(r) == s {
			return r, true
		}
	}
	return "", false
}

// Preferences is everything remembered about one client.
type Preferences struct {
	Categories   map[category.Category]int `json:"categories"`
	PriceRanges  map[PriceRange]int        `json:"priceRanges"`
	ViewHistory  map[int]int               `json:"viewHistory"`
	VisitHistory map[int]int               `json:"visitHistory"`
	SavedDeals   []int                     `json:"savedDeals"`
	UpdatedAt    time.Time                 `json:"updatedAt"`
}

func Default() *Preferences {
	return &Preferences{
		Categories:   map[category.Category]int{},
		PriceRanges:  map[PriceRange]int{},
		ViewHistory:  map[int]int{},
		VisitHistory: map[int]int{},
		SavedDeals:   []int{},
	}
}

// normalize fills maps that came back nil from a partial stored document.
func (p *Preferences) normalize() {
	if p.Categories == nil {
		p.Categories = map[category.Category]int{}
	}
	if p.PriceRanges == nil {
		p.PriceRanges = map[PriceRange]int{}
	}
	if p.ViewHistory == nil {
		p.ViewHistory = map[int]int{}
	}
	if p.VisitHistory == nil {
		p.VisitHistory = map[int]int{}
	}
	if p.SavedDeals == nil {
		p.SavedDeals = []int{}
	}
}

func (p *Preferences) CategoryScore(c category.Category) int {
	if p == nil {
		return DefaultScore
	}
	if v, ok := p.Categories[c]; ok {
		return v
	}
	return DefaultScore
}

func (p *Preferences) PriceRangeScore(r PriceRange) int {
	if p == nil {
		return DefaultScore
	}
	if v, ok := p.PriceRanges[r]; ok {
		return v
	}
	return DefaultScore
}

func (p *Preferences) Views(dealID int) int {
	if p == nil {
		return 0
	}
	return p.ViewHistory[dealID]
}

func (p *Preferences) Visits(establishmentID int) int {
	if p == nil {
		return 0
	}
	return p.VisitHistory[establishmentID]
}

func (p *Preferences) IsSaved(dealID int) bool {
	if p == nil {
		return false
	}
	for _, id := range p.SavedDeals {
		if id == dealID {
			return true
		}
	}
	return false
}

func (p *Preferences) clone() *Preferences {
	out := Default()
	for k, v := range p.Categories {
		out.Categories[k] = v
	}
	for k, v := range p.PriceRanges {
		out.PriceRanges[k] = v
	}
	for k, v := range p.ViewHistory {
		out.ViewHistory[k] = v
	}
	for k, v := range p.VisitHistory {
		out.VisitHistory[k] = v
	}
	out.SavedDeals = append(out.SavedDeals, p.SavedDeals...)
	out.UpdatedAt = p.UpdatedAt
	return out
}

func adjust(current int, increase bool) int {
	if increase {
		current++
	} else {
		current--
	}
	if current < MinScore {
		return MinScore
	}
	if current > MaxScore {
		return MaxScore
	}
	return current
}
