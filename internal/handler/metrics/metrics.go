package metrics

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type IHandler interface {
	Serve() gin.HandlerFunc
}

type handler struct {
	registry *prometheus.Registry
}

func New(registry *prometheus.Registry) IHandler {
	return &handler{registry: registry}
}

// Serve exposes the registry in the Prometheus text or OpenMetrics format,
// depending on what the scraper accepts.
func (h *handler) Serve() gin.HandlerFunc {
	return gin.WrapH(promhttp.HandlerFor(h.registry, promhttp.HandlerOpts{
		EnableOpenMetrics: true,
		Registry:          h.registry,
	}))
}
