package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// NameHandler serves generated display names for users who skip typing one.
type NameHandler struct {
	generate func() string
}

func NewNameHandler(generate func() string) *NameHandler {
	return &NameHandler{generate: generate}
}

// RandomName handles GET /api/names/random.
func (h *NameHandler) RandomName(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"userName": h.generate()})
}

type HealthHandler struct {
	ping func(ctx context.Context) error
}

func NewHealthHandler(ping func(ctx context.Context) error) *HealthHandler {
	return &HealthHandler{ping: ping}
}

// Health handles GET /health; it reports 503 when the document store does not answer.
func (h *HealthHandler) Health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	if err := h.ping(ctx); err != nil {
		log.Warn().Err(err).Msg("health check failed")
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
