package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	apierrors "github.com/tagumdiocese/directory/internal/errors"
	"github.com/tagumdiocese/directory/internal/media"
)

// VideoHandler serves the full-screen player page for a video link.
type VideoHandler struct{}

// NewVideoHandler creates a new VideoHandler instance.
func NewVideoHandler() *VideoHandler {
	return &VideoHandler{}
}

// EmbedRequest represents the query parameters for the embed endpoint.
type EmbedRequest struct {
	URL string `form:"url" binding:"required,url"`
}

// Embed handles GET /api/v1/videos/embed.
func (h *VideoHandler) Embed(c *gin.Context) {
	var req EmbedRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		var validationErrors validator.ValidationErrors
		if errors.As(err, &validationErrors) {
			apierrors.ValidationError(c, validationErrors)
			return
		}
		apierrors.BadRequest(c, "Invalid query parameters", nil)
		return
	}

	doc, err := media.EmbedDocument(req.URL)
	if err != nil {
		apierrors.InternalServerError(c, "Failed to render video page", err)
		return
	}

	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(doc))
}
