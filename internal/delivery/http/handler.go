package http

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/shopsense/backend/internal/domain"
	"github.com/shopsense/backend/internal/usecase"
)

// maxQueryLength bounds accepted query text.
const maxQueryLength = 500

// Handler holds dependencies for HTTP handlers
type Handler struct {
	engine *usecase.Engine
}

// NewHandler creates a new HTTP handler
func NewHandler(engine *usecase.Engine) *Handler {
	return &Handler{engine: engine}
}

// queryRequest is the body shared by search and analyze endpoints.
type queryRequest struct {
	Query  string `json:"query" binding:"required"`
	UserID string `json:"userId"`
}

// filteredSearchRequest is the body for the filtered product search endpoint.
type filteredSearchRequest struct {
	Query     string  `json:"query" binding:"required"`
	Category  string  `json:"category"`
	Brand     string  `json:"brand"`
	PriceMin  float64 `json:"priceMin"`
	PriceMax  float64 `json:"priceMax"`
	MinRating float64 `json:"minRating"`
}

// compareRequest is the body for the product comparison endpoint.
type compareRequest struct {
	ProductIDs []string `json:"productIds" binding:"required"`
}

// viewRequest is the body for the view-recording endpoint.
type viewRequest struct {
	ProductID string `json:"productId" binding:"required"`
}

// HealthCheck returns the health status of the API
func (h *Handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "shopsense-backend",
		"version": "1.0.0",
	})
}

// Search handles conversational search requests: the full pipeline from
// free-text query to composed reply.
func (h *Handler) Search(c *gin.Context) {
	var req queryRequest
	if !h.bindQuery(c, &req) {
		return
	}

	reply := h.engine.Process(c.Request.Context(), req.Query, req.UserID)
	c.JSON(http.StatusOK, reply)
}

// Analyze classifies a query without executing it.
func (h *Handler) Analyze(c *gin.Context) {
	var req queryRequest
	if !h.bindQuery(c, &req) {
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"analysis": h.engine.Analyze(req.Query),
	})
}

// Recommendations returns personalized recommendations for a user.
func (h *Handler) Recommendations(c *gin.Context) {
	userID := c.Param("userId")

	limit := 0
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{
				"success": false,
				"error":   "limit must be a positive integer",
			})
			return
		}
		limit = parsed
	}

	recommendations := h.engine.Recommend(userID, limit)
	c.JSON(http.StatusOK, gin.H{
		"success":         true,
		"recommendations": recommendations,
		"count":           len(recommendations),
	})
}

// FilteredSearch runs a fuzzy search constrained by structured filters.
func (h *Handler) FilteredSearch(c *gin.Context) {
	var req filteredSearchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   "query is required",
		})
		return
	}
	if !validQuery(c, req.Query) {
		return
	}

	results := h.engine.SearchFiltered(req.Query, usecase.SearchFilters{
		Category:  req.Category,
		Brand:     req.Brand,
		PriceMin:  req.PriceMin,
		PriceMax:  req.PriceMax,
		MinRating: req.MinRating,
	})

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"results": results,
		"count":   len(results),
	})
}

// Compare builds a side-by-side comparison for two or more product ids.
func (h *Handler) Compare(c *gin.Context) {
	var req compareRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   "productIds is required",
		})
		return
	}

	comparison, err := h.engine.Compare(req.ProductIDs)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidRequest):
			c.JSON(http.StatusBadRequest, gin.H{
				"success": false,
				"error":   "at least two product ids are required",
			})
		case errors.Is(err, domain.ErrNoComparableProducts):
			c.JSON(http.StatusNotFound, gin.H{
				"success": false,
				"error":   "fewer than two of the given product ids exist",
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"success": false,
				"error":   "comparison failed",
			})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"comparison": comparison,
	})
}

// ProductDetails returns the assembled detail view for a product id.
func (h *Handler) ProductDetails(c *gin.Context) {
	details, err := h.engine.Details(c.Param("id"))
	if err != nil {
		if errors.Is(err, domain.ErrProductNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"success": false,
				"error":   "product not found",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error":   "failed to load product details",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"details": details,
	})
}

// RecordView records a product view against a user's browsing history.
func (h *Handler) RecordView(c *gin.Context) {
	userID := c.Param("userId")

	var req viewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   "productId is required",
		})
		return
	}

	if err := h.engine.RecordView(userID, req.ProductID); err != nil {
		if errors.Is(err, domain.ErrProfileNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"success": false,
				"error":   "user not found",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error":   "failed to record view",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

// Stats exposes the admin inventory aggregate.
func (h *Handler) Stats(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"stats":   h.engine.Stats(),
	})
}

// bindQuery binds and validates the common query body, writing the error
// response itself on failure.
func (h *Handler) bindQuery(c *gin.Context, req *queryRequest) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   "query is required",
		})
		return false
	}
	return validQuery(c, req.Query)
}

func validQuery(c *gin.Context, query string) bool {
	trimmed := strings.TrimSpace(query)
	if trimmed == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   "query must not be empty",
		})
		return false
	}
	if len(trimmed) > maxQueryLength {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   "query exceeds maximum length of 500 characters",
		})
		return false
	}
	return true
}
