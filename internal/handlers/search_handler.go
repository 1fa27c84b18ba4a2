package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	apierrors "github.com/tagumdiocese/directory/internal/errors"
	"github.com/tagumdiocese/directory/internal/middleware"
	"github.com/tagumdiocese/directory/internal/search"
	"github.com/tagumdiocese/directory/internal/services"
)

// SearchHandler handles the cross-directory search endpoint.
type SearchHandler struct {
	service services.SearchService
}

// NewSearchHandler creates a new SearchHandler instance.
func NewSearchHandler(service services.SearchService) *SearchHandler {
	return &SearchHandler{
		service: service,
	}
}

// SearchRequest represents the query parameters for the search endpoint.
type SearchRequest struct {
	Query string `form:"q" binding:"max=200"`
}

// SearchResponse represents the response for the search endpoint.
type SearchResponse struct {
	Query   string          `json:"query"`
	Results []search.Result `json:"results"`
	Count   int             `json:"count"`
}

// Search handles GET /api/v1/search.
// A blank query returns no results. Sources that fail to load are
// searched as empty lists.
func (h *SearchHandler) Search(c *gin.Context) {
	var req SearchRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		var validationErrors validator.ValidationErrors
		if errors.As(err, &validationErrors) {
			apierrors.ValidationError(c, validationErrors)
			return
		}
		apierrors.BadRequest(c, "Invalid query parameters", nil)
		return
	}

	results, err := h.service.Search(c.Request.Context(), req.Query)
	if err != nil {
		apierrors.InternalServerError(c, "Search was interrupted", err)
		return
	}

	if log := middleware.GetLogger(c); log != nil {
		log.Debug("Search completed", map[string]interface{}{
			"query":   req.Query,
			"results": len(results),
		})
	}

	c.JSON(http.StatusOK, SearchResponse{
		Query:   req.Query,
		Results: results,
		Count:   len(results),
	})
}
