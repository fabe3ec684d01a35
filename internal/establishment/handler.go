package establishment

import (
	"errors"
	"fmt"
	"net/http"

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
// GET /establishments
// --------------------------------------------------
func (h *Handler) List(c *gin.Context) {
	pos, err := geo.ParsePosition(c.Query("lat"), c.Query("lng"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid lat/lng"})
		return
	}

	views, err := h.service.List(c.Request.Context(), pos)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch establishments"})
		return
	}

	c.JSON(http.StatusOK, views)
}

// --------------------------------------------------
// GET /establishments/:id
// --------------------------------------------------
func (h *Handler) Get(c *gin.Context) {
	var id int
	if _, err := fmt.Sscanf(c.Param("id"), "%d", &id); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid establishment id"})
		return
	}

	pos, err := geo.ParsePosition(c.Query("lat"), c.Query("lng"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid lat/lng"})
		return
	}

	detail, err := h.service.Get(c.Request.Context(), id, pos)
	if errors.Is(err, ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch establishment"})
		return
	}

	c.JSON(http.StatusOK, detail)
}

// --------------------------------------------------
// POST /establishments/:id/visit
// --------------------------------------------------
func (h *Handler) RecordVisit(c *gin.Context) {
	var id int
	if _, err := fmt.Sscanf(c.Param("id"), "%d", &id); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid establishment id"})
		return
	}

	prefs, err := h.service.RecordVisit(c.Request.Context(), middleware.GetClientID(c), id)
	if errors.Is(err, ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to record visit"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"establishment_id": id,
		"visits":           prefs.Visits(id),
	})
}

// --------------------------------------------------
// ADMIN: POST /admin/establishments
// --------------------------------------------------
func (h *Handler) Create(c *gin.Context) {
	var req CreateInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	e, err := h.service.Create(c.Request.Context(), req)
	if errors.Is(err, ErrInvalidEstablishment) {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create establishment"})
		return
	}

	c.JSON(http.StatusCreated, e)
}

// --------------------------------------------------
// ADMIN: DELETE /admin/establishments/:id
// --------------------------------------------------
func (h *Handler) Delete(c *gin.Context) {
	var id int
	if _, err := fmt.Sscanf(c.Param("id"), "%d", &id); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid establishment id"})
		return
	}

	err := h.service.Delete(c.Request.Context(), id)
	if errors.Is(err, ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete establishment"})
		return
	}

	c.Status(http.StatusNoContent)
}
