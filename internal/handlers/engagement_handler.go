package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	apierrors "github.com/tagumdiocese/directory/internal/errors"
	"github.com/tagumdiocese/directory/internal/middleware"
	"github.com/tagumdiocese/directory/internal/services"
)

// EngagementHandler exposes the per-session tap counter.
// Sessions are identified by the X-Session-ID header.
type EngagementHandler struct {
	service services.EngagementService
}

// NewEngagementHandler creates a new EngagementHandler instance.
func NewEngagementHandler(service services.EngagementService) *EngagementHandler {
	return &EngagementHandler{
		service: service,
	}
}

// Tap handles POST /api/v1/engagement/taps.
func (h *EngagementHandler) Tap(c *gin.Context) {
	h.respond(c, h.service.Tap)
}

// Snapshot handles GET /api/v1/engagement.
func (h *EngagementHandler) Snapshot(c *gin.Context) {
	h.respond(c, h.service.Snapshot)
}

// DismissSponsor handles DELETE /api/v1/engagement/sponsor.
func (h *EngagementHandler) DismissSponsor(c *gin.Context) {
	h.respond(c, h.service.DismissSponsor)
}

// DismissVideo handles DELETE /api/v1/engagement/video.
func (h *EngagementHandler) DismissVideo(c *gin.Context) {
	h.respond(c, h.service.DismissVideo)
}

func (h *EngagementHandler) respond(c *gin.Context, op func(context.Context, string) (*services.EngagementSnapshot, error)) {
	sessionID := middleware.GetSessionID(c)
	if sessionID == "" {
		apierrors.BadRequest(c, "Missing session", map[string]interface{}{
			"header": middleware.SessionIDHeader,
		})
		return
	}

	snap, err := op(c.Request.Context(), sessionID)
	if err != nil {
		apierrors.FromError(c, "Failed to update engagement", err)
		return
	}

	c.JSON(http.StatusOK, snap)
}
