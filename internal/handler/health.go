package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
)

type Pinger interface {
	Ping(ctx context.Context) error
}

type HealthHandler struct {
	rateSource string
	db         Pinger
}

// NewHealthHandler takes a nil db when rates come from the built-in catalog.
func NewHealthHandler(rateSource string, db Pinger) *HealthHandler {
	return &HealthHandler{rateSource: rateSource, db: db}
}

func (h *HealthHandler) Health(c *gin.Context) {
	if h.db == nil {
		c.JSON(http.StatusOK, gin.H{
			"status":      "healthy",
			"rate_source": h.rateSource,
			"database":    "not_configured",
		})
		return
	}

	if err := h.db.Ping(c.Request.Context()); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status":      "unhealthy",
			"rate_source": h.rateSource,
			"database":    "disconnected",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":      "healthy",
		"rate_source": h.rateSource,
		"database":    "connected",
	})
}
