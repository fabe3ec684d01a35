package preferences

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"hhdeals/internal/category"
	"hhdeals/internal/middleware"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func setupPreferencesRouter(t *testing.T) (*gin.Engine, *Store) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	store := NewStore(NewMemoryBackend(), zap.NewNop())
	h := NewHandler(store)

	r := gin.New()
	r.Use(middleware.ClientID())
	r.GET("/preferences", h.Get)
	r.PUT("/preferences/category", h.AdjustCategory)
	r.PUT("/preferences/price", h.AdjustPrice)
	r.POST("/preferences/saved/:dealId", h.SaveDeal)
	r.DELETE("/preferences/saved/:dealId", h.UnsaveDeal)
	r.DELETE("/preferences", h.Reset)
	return r, store
}

func doRequest(r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set(middleware.ClientIDHeader, "client-abc")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestHandler_AdjustCategory(t *testing.T) {
	r, store := setupPreferencesRouter(t)

	w := doRequest(r, http.MethodPut, "/preferences/category", `{"category":"wine","increase":true}`)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var resp struct {
		Score int `json:"score"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if resp.Score != DefaultScore+1 {
		t.Errorf("expected score %d, got %d", DefaultScore+1, resp.Score)
	}

	p := store.Load(context.Background(), "client-abc")
	if p.CategoryScore(category.Wine) != DefaultScore+1 {
		t.Errorf("store not updated, got %d", p.CategoryScore(category.Wine))
	}
}

func TestHandler_AdjustCategoryRejectsBadInput(t *testing.T) {
	r, _ := setupPreferencesRouter(t)

	cases := []string{
		`{"category":"wine"}`,
		`{"category":"absinthe","increase":true}`,
		`not json`,
	}
	for _, body := range cases {
		w := doRequest(r, http.MethodPut, "/preferences/category", body)
		if w.Code != http.StatusBadRequest {
			t.Errorf("%s: expected 400, got %d", body, w.Code)
		}
	}
}

func TestHandler_AdjustPriceClamps(t *testing.T) {
	r, store := setupPreferencesRouter(t)

	for i := 0; i < 8; i++ {
		w := doRequest(r, http.MethodPut, "/preferences/price", `{"price_range":"under_10","increase":false}`)
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
	}

	if got := store.Load(context.Background(), "client-abc").PriceRangeScore(Under10); got != MinScore {
		t.Errorf("expected clamp at %d, got %d", MinScore, got)
	}

	w := doRequest(r, http.MethodPut, "/preferences/price", `{"price_range":"cheap","increase":true}`)
	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for unknown range, got %d", w.Code)
	}
}

func TestHandler_SavedDeals(t *testing.T) {
	r, store := setupPreferencesRouter(t)

	doRequest(r, http.MethodPost, "/preferences/saved/4", "")
	doRequest(r, http.MethodPost, "/preferences/saved/9", "")
	w := doRequest(r, http.MethodDelete, "/preferences/saved/4", "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	p := store.Load(context.Background(), "client-abc")
	if p.IsSaved(4) || !p.IsSaved(9) {
		t.Errorf("unexpected saved deals %v", p.SavedDeals)
	}

	if w := doRequest(r, http.MethodPost, "/preferences/saved/abc", ""); w.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for bad id, got %d", w.Code)
	}
}

func TestHandler_Reset(t *testing.T) {
	r, store := setupPreferencesRouter(t)
	ctx := context.Background()

	store.RecordDealView(ctx, "client-abc", 1)

	w := doRequest(r, http.MethodDelete, "/preferences", "")
	if w.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", w.Code)
	}
	if store.Load(ctx, "client-abc").Views(1) != 0 {
		t.Error("expected history cleared after reset")
	}

	w = doRequest(r, http.MethodGet, "/preferences", "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
}
