package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	apierrors "github.com/tagumdiocese/directory/internal/errors"
	"github.com/tagumdiocese/directory/internal/middleware"
	"github.com/tagumdiocese/directory/internal/models"
	"github.com/tagumdiocese/directory/internal/services"
)

// DirectoryHandler handles the read-only directory endpoints.
type DirectoryHandler struct {
	service services.DirectoryService
}

// NewDirectoryHandler creates a new DirectoryHandler instance.
func NewDirectoryHandler(service services.DirectoryService) *DirectoryHandler {
	return &DirectoryHandler{
		service: service,
	}
}

// FilterRequest represents the query parameters of the filterable list endpoints.
type FilterRequest struct {
	Query string `form:"q" binding:"max=200"`
}

// PositionRequest identifies an entry by its position in the unfiltered list.
type PositionRequest struct {
	Position int `uri:"position"`
}

// ListResponse wraps every list endpoint's payload.
type ListResponse[T any] struct {
	Items []T `json:"items"`
	Count int `json:"count"`
}

// DirectionsResponse carries the maps link for a parish.
type DirectionsResponse struct {
	URL string `json:"url"`
}

func newListResponse[T any](items []T) ListResponse[T] {
	if items == nil {
		items = []T{}
	}
	return ListResponse[T]{Items: items, Count: len(items)}
}

// ListParishes handles GET /api/v1/parishes.
func (h *DirectoryHandler) ListParishes(c *gin.Context) {
	query, ok := bindFilter(c)
	if !ok {
		return
	}
	respondList(c, "Failed to load parishes", func(ctx context.Context) ([]models.Parish, error) {
		return h.service.ListParishes(ctx, query)
	})
}

// GetParish handles GET /api/v1/parishes/:position.
func (h *DirectoryHandler) GetParish(c *gin.Context) {
	respondDetail(c, "parish", h.service.GetParish)
}

// Directions handles GET /api/v1/parishes/:position/directions.
func (h *DirectoryHandler) Directions(c *gin.Context) {
	position, ok := bindPosition(c)
	if !ok {
		return
	}

	link, err := h.service.Directions(c.Request.Context(), position)
	if err != nil {
		if errors.Is(err, services.ErrLocationUnavailable) {
			apierrors.NotFound(c, "No location information is available for this parish.")
			return
		}
		if errors.Is(err, services.ErrPositionOutOfRange) {
			apierrors.NotFound(c, "No parish exists at this position")
			return
		}
		apierrors.FromError(c, "Failed to build directions", err)
		return
	}

	c.JSON(http.StatusOK, DirectionsResponse{URL: link})
}

// ListBECs handles GET /api/v1/becs.
func (h *DirectoryHandler) ListBECs(c *gin.Context) {
	query, ok := bindFilter(c)
	if !ok {
		return
	}
	respondList(c, "Failed to load BECs", func(ctx context.Context) ([]models.BEC, error) {
		return h.service.ListBECs(ctx, query)
	})
}

// GetBEC handles GET /api/v1/becs/:position.
func (h *DirectoryHandler) GetBEC(c *gin.Context) {
	respondDetail(c, "BEC", h.service.GetBEC)
}

// ListSchools handles GET /api/v1/schools.
func (h *DirectoryHandler) ListSchools(c *gin.Context) {
	respondList(c, "Failed to load schools", h.service.ListSchools)
}

// GetSchool handles GET /api/v1/schools/:position.
func (h *DirectoryHandler) GetSchool(c *gin.Context) {
	respondDetail(c, "school", h.service.GetSchool)
}

// ListMinistries handles GET /api/v1/ministries.
func (h *DirectoryHandler) ListMinistries(c *gin.Context) {
	respondList(c, "Failed to load ministries", h.service.ListMinistries)
}

// GetMinistry handles GET /api/v1/ministries/:position.
func (h *DirectoryHandler) GetMinistry(c *gin.Context) {
	respondDetail(c, "ministry", h.service.GetMinistry)
}

// ListCorporations handles GET /api/v1/corporations.
func (h *DirectoryHandler) ListCorporations(c *gin.Context) {
	respondList(c, "Failed to load corporations", h.service.ListCorporations)
}

// GetCorporation handles GET /api/v1/corporations/:position.
func (h *DirectoryHandler) GetCorporation(c *gin.Context) {
	respondDetail(c, "corporation", h.service.GetCorporation)
}

// ListCongregations handles GET /api/v1/congregations.
func (h *DirectoryHandler) ListCongregations(c *gin.Context) {
	respondList(c, "Failed to load congregations", h.service.ListCongregations)
}

// GetCongregation handles GET /api/v1/congregations/:position.
func (h *DirectoryHandler) GetCongregation(c *gin.Context) {
	respondDetail(c, "congregation", h.service.GetCongregation)
}

// ListDclaimGroups handles GET /api/v1/dclaim.
func (h *DirectoryHandler) ListDclaimGroups(c *gin.Context) {
	respondList(c, "Failed to load DCLAIM groups", h.service.ListDclaimGroups)
}

// GetDclaimGroup handles GET /api/v1/dclaim/:position.
func (h *DirectoryHandler) GetDclaimGroup(c *gin.Context) {
	respondDetail(c, "DCLAIM group", h.service.GetDclaimGroup)
}

// ListVicariates handles GET /api/v1/vicariates.
func (h *DirectoryHandler) ListVicariates(c *gin.Context) {
	respondList(c, "Failed to load vicariates", h.service.ListVicariates)
}

// ListPriests handles GET /api/v1/priests.
// Priests come back grouped by category, in sheet order.
func (h *DirectoryHandler) ListPriests(c *gin.Context) {
	respondList(c, "Failed to load priests", h.service.ListPriests)
}

func respondList[T any](c *gin.Context, message string, load func(context.Context) ([]T, error)) {
	items, err := load(c.Request.Context())
	if err != nil {
		apierrors.FromError(c, message, err)
		return
	}
	c.JSON(http.StatusOK, newListResponse(items))
}

func respondDetail[T any](c *gin.Context, name string, get func(context.Context, int) (*T, error)) {
	position, ok := bindPosition(c)
	if !ok {
		return
	}

	item, err := get(c.Request.Context(), position)
	if err != nil {
		if errors.Is(err, services.ErrPositionOutOfRange) {
			apierrors.NotFound(c, "No "+name+" exists at this position")
			return
		}
		apierrors.FromError(c, "Failed to load "+name, err)
		return
	}

	c.JSON(http.StatusOK, item)
}

// bindFilter reads the optional ?q filter. It writes the error response
// itself and reports false when binding fails.
func bindFilter(c *gin.Context) (string, bool) {
	var req FilterRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		var validationErrors validator.ValidationErrors
		if errors.As(err, &validationErrors) {
			apierrors.ValidationError(c, validationErrors)
			return "", false
		}
		apierrors.BadRequest(c, "Invalid query parameters", nil)
		return "", false
	}
	return req.Query, true
}

func bindPosition(c *gin.Context) (int, bool) {
	var req PositionRequest
	if err := c.ShouldBindUri(&req); err != nil {
		if log := middleware.GetLogger(c); log != nil {
			log.Debug("Rejected position", map[string]interface{}{
				"position": c.Param("position"),
			})
		}
		apierrors.BadRequest(c, "Position must be an integer", map[string]interface{}{
			"position": c.Param("position"),
		})
		return 0, false
	}
	return req.Position, true
}
