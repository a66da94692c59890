package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noodlewise/backend/internal/domain"
	"github.com/noodlewise/backend/internal/usecase"
)

// Handler holds dependencies for HTTP handlers
type Handler struct {
	recommender *usecase.RecommendationService
	store       domain.CatalogStore
}

// NewHandler creates a new HTTP handler
func NewHandler(recommender *usecase.RecommendationService, store domain.CatalogStore) *Handler {
	return &Handler{recommender: recommender, store: store}
}

// HealthCheck returns the health status of the API
func (h *Handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "noodlewise-backend",
		"version": "1.0.0",
	})
}

// Recommend handles recommendation requests from the dashboard
func (h *Handler) Recommend(c *gin.Context) {
	var req domain.RecommendationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body: " + err.Error()})
		return
	}

	resp, err := h.recommender.Recommend(c.Request.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidRequest):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, domain.ErrProfileNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "recommendation failed"})
		}
		return
	}

	c.JSON(http.StatusOK, resp)
}

// Catalog returns the full product catalog for the dashboard table
func (h *Handler) Catalog(c *gin.Context) {
	products, err := h.store.Products(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "catalog read failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"count":    len(products),
		"products": products,
	})
}

// Profiles returns the stored user profiles for the dashboard selector
func (h *Handler) Profiles(c *gin.Context) {
	profiles, err := h.store.Profiles(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "profile read failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"count":    len(profiles),
		"profiles": profiles,
	})
}
