package handlers

import (
	"fmt"
	"net/http"
	"sort"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/tagumdiocese/directory/internal/middleware"
)

// APIVersion is the current version of the API
const APIVersion = "0.1.0"

// Checker reports whether a data source holds the credential it needs.
type Checker interface {
	Configured() bool
}

// HealthHandler handles health check and readiness endpoints.
type HealthHandler struct {
	sources      map[string]Checker
	startTime    time.Time
	env          string
	parishSource string
}

// NewHealthHandler creates a new HealthHandler instance. sources maps a
// data source name to its client.
func NewHealthHandler(env, parishSource string, sources map[string]Checker) *HealthHandler {
	return &HealthHandler{
		sources:      sources,
		startTime:    time.Now(),
		env:          env,
		parishSource: parishSource,
	}
}

// HealthResponse represents the basic health check response.
type HealthResponse struct {
	Status string `json:"status"`
}

// ReadyResponse represents the readiness check response.
type ReadyResponse struct {
	Status  string            `json:"status"`
	Sources map[string]string `json:"sources"`
}

// InfoResponse represents the API information response.
type InfoResponse struct {
	Version      string `json:"version"`
	Environment  string `json:"environment"`
	ParishSource string `json:"parish_source"`
	Uptime       string `json:"uptime"`
}

// Health handles GET /health endpoint.
// It does not check any dependencies and is used for liveness checks.
func (h *HealthHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, HealthResponse{
		Status: "healthy",
	})
}

// Ready handles GET /health/ready endpoint.
// Returns 503 when any data source is missing its credential. Remote
// reachability is not checked; the directory keeps no connection open.
func (h *HealthHandler) Ready(c *gin.Context) {
	sources := make(map[string]string, len(h.sources))
	var missing []string
	for name, checker := range h.sources {
		if checker != nil && checker.Configured() {
			sources[name] = "configured"
			continue
		}
		sources[name] = "unconfigured"
		missing = append(missing, name)
	}

	if len(missing) > 0 {
		sort.Strings(missing)
		if log := middleware.GetLogger(c); log != nil {
			log.Warn("Readiness check failed", map[string]interface{}{
				"unconfigured": missing,
			})
		}
		c.JSON(http.StatusServiceUnavailable, ReadyResponse{
			Status:  "not_ready",
			Sources: sources,
		})
		return
	}

	c.JSON(http.StatusOK, ReadyResponse{
		Status:  "ready",
		Sources: sources,
	})
}

// Info handles GET /api/v1/info endpoint.
func (h *HealthHandler) Info(c *gin.Context) {
	c.JSON(http.StatusOK, InfoResponse{
		Version:      APIVersion,
		Environment:  h.env,
		ParishSource: h.parishSource,
		Uptime:       formatUptime(time.Since(h.startTime)),
	})
}

// formatUptime formats a duration into a human-readable string.
func formatUptime(d time.Duration) string {
	days := int(d.Hours() / 24)
	hours := int(d.Hours()) % 24
	minutes := int(d.Minutes()) % 60
	seconds := int(d.Seconds()) % 60

	if days > 0 {
		return fmt.Sprintf("%dd %dh %dm %ds", days, hours, minutes, seconds)
	}
	return fmt.Sprintf("%dh %dm %ds", hours, minutes, seconds)
}
