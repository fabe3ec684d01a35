package deals

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"hhdeals/internal/category"
	"hhdeals/internal/geo"
	"hhdeals/internal/middleware"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// --------------------------------------------------
// GET /deals
// --------------------------------------------------
func (h *Handler) List(c *gin.Context) {
	pos, err := geo.ParsePosition(c.Query("lat"), c.Query("lng"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid lat/lng"})
		return
	}

	filter := Filter{
		ActiveOnly: c.Query("active") == "true",
		Position:   pos,
		ClientID:   middleware.GetClientID(c),
	}
	if raw := c.Query("category"); raw != "" {
		filter.Category = category.Parse(raw)
	}

	views, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch deals"})
		return
	}

	c.JSON(http.StatusOK, views)
}

// --------------------------------------------------
// GET /deals/recommended
// --------------------------------------------------
func (h *Handler) Recommended(c *gin.Context) {
	pos, err := geo.ParsePosition(c.Query("lat"), c.Query("lng"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid lat/lng"})
		return
	}

	limit := 0
	if raw := c.Query("limit"); raw != "" {
		limit, err = strconv.Atoi(raw)
		if err != nil || limit < 1 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid limit"})
			return
		}
	}

	recs, err := h.service.Recommended(c.Request.Context(), middleware.GetClientID(c), pos, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch recommendations"})
		return
	}

	c.JSON(http.StatusOK, recs)
}

// --------------------------------------------------
// GET /deals/:id
// --------------------------------------------------
func (h *Handler) Get(c *gin.Context) {
	var id int
	if _, err := fmt.Sscanf(c.Param("id"), "%d", &id); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid deal id"})
		return
	}

	pos, err := geo.ParsePosition(c.Query("lat"), c.Query("lng"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid lat/lng"})
		return
	}

	view, err := h.service.Get(c.Request.Context(), id, pos, middleware.GetClientID(c))
	if errors.Is(err, ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch deal"})
		return
	}

	c.JSON(http.StatusOK, view)
}

// --------------------------------------------------
// POST /deals/:id/view
// --------------------------------------------------
func (h *Handler) RecordView(c *gin.Context) {
	var id int
	if _, err := fmt.Sscanf(c.Param("id"), "%d", &id); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid deal id"})
		return
	}

	prefs, err := h.service.RecordView(c.Request.Context(), middleware.GetClientID(c), id)
	if errors.Is(err, ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to record view"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"deal_id": id,
		"views":   prefs.Views(id),
	})
}

// --------------------------------------------------
// ADMIN: POST /admin/deals
// --------------------------------------------------
func (h *Handler) Create(c *gin.Context) {
	var req CreateInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	deal, err := h.service.Create(c.Request.Context(), req)
	if errors.Is(err, ErrInvalidDeal) {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create deal"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "deal created",
		"deal":    deal,
	})
}

// --------------------------------------------------
// ADMIN: DELETE /admin/deals/:id
// --------------------------------------------------
func (h *Handler) Delete(c *gin.Context) {
	var id int
	if _, err := fmt.Sscanf(c.Param("id"), "%d", &id); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid deal id"})
		return
	}

	err := h.service.Delete(c.Request.Context(), id)
	if errors.Is(err, ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete deal"})
		return
	}

	c.Status(http.StatusNoContent)
}
