package preferences

import (
	"fmt"
	"net/http"

	"hhdeals/internal/category"
	"hhdeals/internal/middleware"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	store *Store
}

func NewHandler(store *Store) *Handler {
	return &Handler{store: store}
}

type adjustRequest struct {
	Category   string `json:"category"`
	PriceRange string `json:"price_range"`
	Increase   *bool  `json:"increase"`
}

// --------------------------------------------------
// GET /preferences
// --------------------------------------------------
func (h *Handler) Get(c *gin.Context) {
	prefs := h.store.Load(c.Request.Context(), middleware.GetClientID(c))
	c.JSON(http.StatusOK, prefs)
}

// --------------------------------------------------
// PUT /preferences/category
// --------------------------------------------------
func (h *Handler) AdjustCategory(c *gin.Context) {
	var req adjustRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Increase == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "category and increase are required"})
		return
	}

	cat, ok := category.Lookup(req.Category)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown category"})
		return
	}

	prefs := h.store.UpdateCategoryPreference(c.Request.Context(), middleware.GetClientID(c), cat, *req.Increase)
	c.JSON(http.StatusOK, gin.H{
		"category": cat,
		"score":    prefs.CategoryScore(cat),
	})
}

// --------------------------------------------------
// PUT /preferences/price
// --------------------------------------------------
func (h *Handler) AdjustPrice(c *gin.Context) {
	var req adjustRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Increase == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "price_range and increase are required"})
		return
	}

	r, ok := ParsePriceRange(req.PriceRange)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown price range"})
		return
	}

	prefs := h.store.UpdatePricePreference(c.Request.Context(), middleware.GetClientID(c), r, *req.Increase)
	c.JSON(http.StatusOK, gin.H{
		"price_range": r,
		"score":       prefs.PriceRangeScore(r),
	})
}

// --------------------------------------------------
// POST /preferences/saved/:dealId
// --------------------------------------------------
func (h *Handler) SaveDeal(c *gin.Context) {
	var id int
	if _, err := fmt.Sscanf(c.Param("dealId"), "%d", &id); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid deal id"})
		return
	}

	prefs := h.store.SaveDeal(c.Request.Context(), middleware.GetClientID(c), id)
	c.JSON(http.StatusOK, gin.H{"saved_deals": prefs.SavedDeals})
}

// --------------------------------------------------
// DELETE /preferences/saved/:dealId
// --------------------------------------------------
func (h *Handler) UnsaveDeal(c *gin.Context) {
	var id int
	if _, err := fmt.Sscanf(c.Param("dealId"), "%d", &id); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid deal id"})
		return
	}

	prefs := h.store.UnsaveDeal(c.Request.Context(), middleware.GetClientID(c), id)
	c.JSON(http.StatusOK, gin.H{"saved_deals": prefs.SavedDeals})
}

// --------------------------------------------------
// DELETE /preferences
// --------------------------------------------------
func (h *Handler) Reset(c *gin.Context) {
	if err := h.store.Reset(c.Request.Context(), middleware.GetClientID(c)); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to reset preferences"})
		return
	}
	c.Status(http.StatusNoContent)
}
