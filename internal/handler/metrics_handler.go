package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/automated-attendance/internal/service"
)

// MetricsHandler exposes the liveness and observability endpoints.
type MetricsHandler struct {
	metrics *service.MetricsService
}

// NewMetricsHandler constructs a metrics handler.
func NewMetricsHandler(metrics *service.MetricsService) *MetricsHandler {
	return &MetricsHandler{metrics: metrics}
}

// Prometheus serves the Prometheus metrics endpoint.
func (h *MetricsHandler) Prometheus(c *gin.Context) {
	h.metrics.Handler().ServeHTTP(c.Writer, c.Request)
}

// Health responds with a generic OK payload for readiness/liveness usage.
func (h *MetricsHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// Test godoc
// @Summary Connectivity check used by the client before signup
// @Tags System
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /test [get]
func (h *MetricsHandler) Test(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Server is running"})
}
