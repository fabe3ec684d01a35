package preferences

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"hhdeals/internal/category"

	"go.uber.org/zap"
)

type failingBackend struct {
	loadErr error
	saveErr error
	saves   int
}

func (f *failingBackend) Load(ctx context.Context, key string) ([]byte, error) {
	return nil, f.loadErr
}

func (f *failingBackend) Save(ctx context.Context, key string, data []byte) error {
	f.saves++
	return f.saveErr
}

func (f *failingBackend) Delete(ctx context.Context, key string) error {
	return f.saveErr
}

func newTestStore() (*Store, *MemoryBackend) {
	backend := NewMemoryBackend()
	return NewStore(backend, zap.NewNop()), backend
}

func TestStore_LoadDefaults(t *testing.T) {
	store, _ := newTestStore()

	p := store.Load(context.Background(), "client-1")
	if p.CategoryScore(category.Beer) != DefaultScore {
		t.Errorf("expected default category score %d, got %d", DefaultScore, p.CategoryScore(category.Beer))
	}
	if p.PriceRangeScore(Under10) != DefaultScore {
		t.Errorf("expected default price score %d, got %d", DefaultScore, p.PriceRangeScore(Under10))
	}
	if p.Views(1) != 0 || p.Visits(1) != 0 {
		t.Error("new preferences should have empty history")
	}
}

func TestStore_RecordHistory(t *testing.T) {
	store, _ := newTestStore()
	ctx := context.Background()

	store.RecordDealView(ctx, "c", 7)
	store.RecordDealView(ctx, "c", 7)
	store.RecordLocationVisit(ctx, "c", 3)

	p := store.Load(ctx, "c")
	if p.Views(7) != 2 {
		t.Errorf("expected 2 views, got %d", p.Views(7))
	}
	if p.Visits(3) != 1 {
		t.Errorf("expected 1 visit, got %d", p.Visits(3))
	}

	other := store.Load(ctx, "someone-else")
	if other.Views(7) != 0 {
		t.Error("history must be kept per client")
	}
}

func TestStore_PreferenceClamp(t *testing.T) {
	store, _ := newTestStore()
	ctx := context.Background()

	for i := 0; i < 15; i++ {
		store.UpdateCategoryPreference(ctx, "c", category.Wine, true)
	}
	if got := store.Load(ctx, "c").CategoryScore(category.Wine); got != MaxScore {
		t.Fatalf("expected clamp at %d, got %d", MaxScore, got)
	}
	p := store.UpdateCategoryPreference(ctx, "c", category.Wine, true)
	if got := p.CategoryScore(category.Wine); got != MaxScore {
		t.Errorf("incrementing at the top should stay %d, got %d", MaxScore, got)
	}

	for i := 0; i < 15; i++ {
		store.UpdatePricePreference(ctx, "c", Above20, false)
	}
	if got := store.Load(ctx, "c").PriceRangeScore(Above20); got != MinScore {
		t.Fatalf("expected clamp at %d, got %d", MinScore, got)
	}
	p = store.UpdatePricePreference(ctx, "c", Above20, false)
	if got := p.PriceRangeScore(Above20); got != MinScore {
		t.Errorf("decrementing at the bottom should stay %d, got %d", MinScore, got)
	}
}

func TestStore_AdjustFromDefault(t *testing.T) {
	store, _ := newTestStore()

	p := store.UpdateCategoryPreference(context.Background(), "c", category.Beer, true)
	if got := p.CategoryScore(category.Beer); got != DefaultScore+1 {
		t.Errorf("expected %d, got %d", DefaultScore+1, got)
	}
	p = store.UpdatePricePreference(context.Background(), "c", From10To15, false)
	if got := p.PriceRangeScore(From10To15); got != DefaultScore-1 {
		t.Errorf("expected %d, got %d", DefaultScore-1, got)
	}
}

func TestStore_SavedDeals(t *testing.T) {
	store, _ := newTestStore()
	ctx := context.Background()

	store.SaveDeal(ctx, "c", 1)
	store.SaveDeal(ctx, "c", 2)
	store.SaveDeal(ctx, "c", 1)

	p := store.Load(ctx, "c")
	if len(p.SavedDeals) != 2 || !p.IsSaved(1) || !p.IsSaved(2) {
		t.Fatalf("unexpected saved deals %v", p.SavedDeals)
	}

	p = store.UnsaveDeal(ctx, "c", 1)
	if p.IsSaved(1) || !p.IsSaved(2) {
		t.Errorf("unexpected saved deals after unsave %v", p.SavedDeals)
	}
}

func TestStore_Reset(t *testing.T) {
	store, _ := newTestStore()
	ctx := context.Background()

	store.RecordDealView(ctx, "c", 1)
	if err := store.Reset(ctx, "c"); err != nil {
		t.Fatalf("reset: %v", err)
	}
	if store.Load(ctx, "c").Views(1) != 0 {
		t.Error("reset should drop history")
	}
}

func TestStore_LoadFailureUsesDefaults(t *testing.T) {
	store := NewStore(&failingBackend{loadErr: errors.New("disk on fire")}, zap.NewNop())

	p := store.Load(context.Background(), "c")
	if p == nil || p.CategoryScore(category.Beer) != DefaultScore {
		t.Fatalf("expected defaults on read failure, got %+v", p)
	}
}

func TestStore_CorruptDocumentUsesDefaults(t *testing.T) {
	store, backend := newTestStore()
	ctx := context.Background()
	_ = backend.Save(ctx, Key("c"), []byte("{not json"))

	if p := store.Load(ctx, "c"); p.Views(1) != 0 || p.ViewHistory == nil {
		t.Fatalf("expected usable defaults, got %+v", p)
	}
}

func TestStore_SaveFailureIsDropped(t *testing.T) {
	backend := &failingBackend{loadErr: ErrNotFound, saveErr: errors.New("quota exceeded")}
	store := NewStore(backend, zap.NewNop())

	p := store.RecordDealView(context.Background(), "c", 9)
	if p.Views(9) != 1 {
		t.Errorf("returned value should reflect the attempted change, got %d", p.Views(9))
	}
	if backend.saves != 1 {
		t.Errorf("expected exactly one save attempt, got %d", backend.saves)
	}
	if store.Load(context.Background(), "c").Views(9) != 0 {
		t.Error("failed write must not be visible on the next load")
	}
}

func TestKey(t *testing.T) {
	if Key("") != StorageKey {
		t.Errorf("expected bare key, got %s", Key(""))
	}
	if Key("abc") != StorageKey+":abc" {
		t.Errorf("unexpected key %s", Key("abc"))
	}
}

func TestFileBackend_CRUD(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prefs.json")
	backend, err := NewFileBackend(path)
	if err != nil {
		t.Fatalf("new backend: %v", err)
	}
	store := NewStore(backend, zap.NewNop())
	ctx := context.Background()

	store.RecordLocationVisit(ctx, "c", 4)
	store.UpdateCategoryPreference(ctx, "c", category.Cocktail, true)

	reopened, err := NewFileBackend(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	p := NewStore(reopened, zap.NewNop()).Load(ctx, "c")
	if p.Visits(4) != 1 {
		t.Errorf("expected visit to survive reopen, got %d", p.Visits(4))
	}
	if p.CategoryScore(category.Cocktail) != DefaultScore+1 {
		t.Errorf("expected cocktail score %d, got %d", DefaultScore+1, p.CategoryScore(category.Cocktail))
	}

	if err := reopened.Delete(ctx, Key("c")); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := reopened.Load(ctx, Key("c")); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestFileBackend_EmptyOrNullFile(t *testing.T) {
	ctx := context.Background()

	for name, content := range map[string]string{"empty": "", "null": "null"} {
		path := filepath.Join(t.TempDir(), name+".json")
		if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
			t.Fatal(err)
		}

		backend, err := NewFileBackend(path)
		if err != nil {
			t.Fatalf("%s: new backend: %v", name, err)
		}
		if _, err := backend.Load(ctx, "k"); !errors.Is(err, ErrNotFound) {
			t.Errorf("%s: expected ErrNotFound, got %v", name, err)
		}
		if err := backend.Save(ctx, "k", []byte(`{}`)); err != nil {
			t.Errorf("%s: save: %v", name, err)
		}
	}
}

func TestPriceRangeFor(t *testing.T) {
	tests := []struct {
		price float64
		want  PriceRange
	}{
		{4, Under10},
		{9.99, Under10},
		{10, From10To15},
		{14.5, From10To15},
		{15, From15To20},
		{20, Above20},
		{45, Above20},
	}
	for _, tt := range tests {
		if got := PriceRangeFor(tt.price); got != tt.want {
			t.Errorf("PriceRangeFor(%v) = %s, want %s", tt.price, got, tt.want)
		}
	}
}
