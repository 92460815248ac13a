package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/meddesk/frontdesk-api/internal/store"
)

// Handler serves the health and metrics endpoints.
type Handler struct {
	store    store.Store
	registry *prometheus.Registry
}

func NewHandler(s store.Store, registry *prometheus.Registry) *Handler {
	return &Handler{store: s, registry: registry}
}

func (h *Handler) LivenessCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// ReadinessCheck probes the storage substrate with a read.
func (h *Handler) ReadinessCheck(c *gin.Context) {
	if _, _, err := h.store.Get(c.Request.Context(), store.KeyAdmin); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable", "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ready"})
}

func (h *Handler) MetricsHandler(c *gin.Context) {
	promhttp.HandlerFor(h.registry, promhttp.HandlerOpts{}).ServeHTTP(c.Writer, c.Request)
}
