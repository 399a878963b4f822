package handlers

import (
	"context"
	"net/http"

	"github.com/loteriaimperatriz/caixa_backend/internal/dto"
	"github.com/gin-gonic/gin"
)

// Pinger reports storage connectivity. *pgxpool.Pool satisfies it.
type Pinger interface {
	Ping(ctx context.Context) error
}

// healthHandler answers the liveness/storage-connectivity probe.
type healthHandler struct {
	db Pinger
}

// getHealth godoc
// @Summary Liveness and storage probe
// @Produce json
// @Success 200 {object} dto.APIResponse
// @Failure 503 {object} dto.APIResponse
// @Router /health [get]
func (h *healthHandler) getHealth(c *gin.Context) {
	if err := h.db.Ping(c.Request.Context()); err != nil {
		c.JSON(http.StatusServiceUnavailable, dto.Failure("storage unreachable"))
		return
	}
	respondOK(c, gin.H{"status": "ok"})
}
