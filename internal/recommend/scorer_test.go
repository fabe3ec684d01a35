package recommend

import (
	"math"
	"testing"

	"hhdeals/internal/category"
	"hhdeals/internal/core"
	"hhdeals/internal/preferences"
)

func fixedDistance(km float64) DistanceFunc {
	return func(core.Position, core.Establishment) (float64, bool) {
		return km, true
	}
}

var (
	here = &core.Position{Lat: 47.61, Lng: -122.33}
	bar  = core.Establishment{ID: 1, Name: "Rusty Tap", Latitude: 47.62, Longitude: -122.34}
)

func approxEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestDistanceScore(t *testing.T) {
	tests := []struct {
		km   float64
		want float64
	}{
		{0.2, 1.0}, {0.99, 1.0}, {1, 0.8}, {2.9, 0.8}, {3, 0.6},
		{4.9, 0.6}, {5, 0.3}, {9.9, 0.3}, {10, 0.1}, {42, 0.1},
	}
	for _, tt := range tests {
		if got := DistanceScore(tt.km, true); got != tt.want {
			t.Errorf("DistanceScore(%v) = %v, want %v", tt.km, got, tt.want)
		}
	}
	if DistanceScore(0.1, false) != 0 {
		t.Error("unknown distance should score 0")
	}
}

func TestPriceScore(t *testing.T) {
	tests := []struct {
		price float64
		want  float64
	}{
		{5, 1.0}, {8, 0.9}, {11.99, 0.9}, {12, 0.7}, {15, 0.5},
		{19, 0.5}, {20, 0.3}, {29, 0.3}, {30, 0.1}, {55, 0.1},
	}
	for _, tt := range tests {
		if got := PriceScore(tt.price); got != tt.want {
			t.Errorf("PriceScore(%v) = %v, want %v", tt.price, got, tt.want)
		}
	}
}

func TestPreferenceScore_Defaults(t *testing.T) {
	deal := core.Deal{ID: 1, EstablishmentID: 1, AlcoholCategory: "Beer", HappyHourPrice: 6}

	if got := PreferenceScore(deal, nil); !approxEqual(got, 0.4) {
		t.Errorf("neutral preferences should score 0.4, got %v", got)
	}
	if got := PreferenceScore(deal, preferences.Default()); !approxEqual(got, 0.4) {
		t.Errorf("default preferences should score 0.4, got %v", got)
	}
}

func TestPreferenceScore_HistoryCaps(t *testing.T) {
	deal := core.Deal{ID: 1, EstablishmentID: 2, AlcoholCategory: "Wine", HappyHourPrice: 12}
	prefs := preferences.Default()
	prefs.Categories[category.Wine] = 10
	prefs.PriceRanges[preferences.From10To15] = 10
	prefs.ViewHistory[1] = 50
	prefs.VisitHistory[2] = 50

	if got := PreferenceScore(deal, prefs); !approxEqual(got, 1.0) {
		t.Errorf("maxed preferences should score 1.0, got %v", got)
	}

	prefs.ViewHistory[1] = 5
	prefs.VisitHistory[2] = 10
	if got := PreferenceScore(deal, prefs); !approxEqual(got, 1.0) {
		t.Errorf("history at the cap should still score 1.0, got %v", got)
	}
}

func TestCalculateDealScore_Composition(t *testing.T) {
	deal := core.Deal{ID: 1, EstablishmentID: 1, AlcoholCategory: "Beer", HappyHourPrice: 6}

	got := CalculateDealScore(deal, &bar, here, true, fixedDistance(0.5), nil)
	want := 0.35*1.0 + 0.20*1.0 + 0.25*1.0 + 0.10*0.5 + 0.10*0.4
	if !approxEqual(got, want) {
		t.Errorf("expected %v, got %v", want, got)
	}
}

func TestCalculateDealScore_MissingEstablishment(t *testing.T) {
	deal := core.Deal{ID: 1, EstablishmentID: 99, HappyHourPrice: 1}
	if got := CalculateDealScore(deal, nil, here, true, fixedDistance(0.1), nil); got != 0 {
		t.Errorf("missing establishment should score 0, got %v", got)
	}
}

func TestCalculateDealScore_NoPosition(t *testing.T) {
	deal := core.Deal{ID: 1, EstablishmentID: 1, HappyHourPrice: 6}

	withPos := CalculateDealScore(deal, &bar, here, false, fixedDistance(0.5), nil)
	withoutPos := CalculateDealScore(deal, &bar, nil, false, fixedDistance(0.5), nil)
	if !approxEqual(withPos-withoutPos, WeightDistance) {
		t.Errorf("no position should drop exactly the distance term, diff %v", withPos-withoutPos)
	}
}

func TestCalculateDealScore_Monotonic(t *testing.T) {
	deal := core.Deal{ID: 1, EstablishmentID: 1, AlcoholCategory: "Cocktail", HappyHourPrice: 14}

	far := CalculateDealScore(deal, &bar, here, false, fixedDistance(6), nil)
	near := CalculateDealScore(deal, &bar, here, false, fixedDistance(0.5), nil)
	if near < far {
		t.Errorf("closer deal scored lower: %v < %v", near, far)
	}

	prev := -1.0
	for _, price := range []float64{40, 25, 18, 13, 10, 7, 3} {
		d := deal
		d.HappyHourPrice = price
		score := CalculateDealScore(d, &bar, here, false, fixedDistance(2), nil)
		if score < prev {
			t.Errorf("cheaper price %v scored lower: %v < %v", price, score, prev)
		}
		prev = score
	}

	inactive := CalculateDealScore(deal, &bar, here, false, fixedDistance(2), nil)
	active := CalculateDealScore(deal, &bar, here, true, fixedDistance(2), nil)
	if active < inactive {
		t.Errorf("active deal scored lower: %v < %v", active, inactive)
	}
}

func TestRankDeals_OrderAndLimit(t *testing.T) {
	establishments := map[int]core.Establishment{1: bar}
	deals := []core.Deal{
		{ID: 1, EstablishmentID: 1, HappyHourPrice: 25},
		{ID: 2, EstablishmentID: 404, HappyHourPrice: 2},
		{ID: 3, EstablishmentID: 1, HappyHourPrice: 5},
		{ID: 4, EstablishmentID: 1, HappyHourPrice: 13},
	}
	activeIDs := map[int]bool{3: true}
	isActive := func(d core.Deal) bool { return activeIDs[d.ID] }

	ranked := RankDeals(deals, establishments, here, isActive, fixedDistance(1.5), nil, 0)
	if len(ranked) != 4 {
		t.Fatalf("expected 4 results, got %d", len(ranked))
	}
	wantOrder := []int{3, 4, 1, 2}
	for i, id := range wantOrder {
		if ranked[i].Deal.ID != id {
			t.Fatalf("position %d: expected deal %d, got %d", i, id, ranked[i].Deal.ID)
		}
	}
	for i := 1; i < len(ranked); i++ {
		if ranked[i].Score > ranked[i-1].Score {
			t.Fatal("results are not sorted by descending score")
		}
	}
	if ranked[3].Score != 0 {
		t.Errorf("deal with missing establishment should score 0, got %v", ranked[3].Score)
	}

	top := GetRecommendedDeals(deals, establishments, here, isActive, fixedDistance(1.5), nil, 2)
	if len(top) != 2 || top[0].ID != 3 || top[1].ID != 4 {
		t.Errorf("unexpected top 2: %+v", top)
	}
}

func TestRankDeals_DefaultLimit(t *testing.T) {
	establishments := map[int]core.Establishment{1: bar}
	var deals []core.Deal
	for i := 0; i < 30; i++ {
		deals = append(deals, core.Deal{ID: i + 1, EstablishmentID: 1, HappyHourPrice: float64(i)})
	}

	got := GetRecommendedDeals(deals, establishments, here, nil, fixedDistance(1), nil, 0)
	if len(got) != DefaultLimit {
		t.Errorf("expected %d results, got %d", DefaultLimit, len(got))
	}
}

func TestRankDeals_PreferencesBreakTies(t *testing.T) {
	establishments := map[int]core.Establishment{1: bar}
	deals := []core.Deal{
		{ID: 1, EstablishmentID: 1, AlcoholCategory: "Beer", HappyHourPrice: 6},
		{ID: 2, EstablishmentID: 1, AlcoholCategory: "Wine", HappyHourPrice: 6},
	}
	prefs := preferences.Default()
	prefs.Categories[category.Wine] = 9

	got := GetRecommendedDeals(deals, establishments, here, nil, fixedDistance(1), prefs, 5)
	if got[0].ID != 2 {
		t.Errorf("preferred category should rank first, got %+v", got)
	}
}
