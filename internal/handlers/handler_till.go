package handlers

import (
	"log/slog"

	portssvc "github.com/loteriaimperatriz/caixa_backend/internal/core/ports/services"
	"github.com/loteriaimperatriz/caixa_backend/internal/dto"
	"github.com/loteriaimperatriz/caixa_backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

// tillHandler handles HTTP requests scoped to a single till.
type tillHandler struct {
	tillService portssvc.TillSvcFacade
}

// newTillHandler creates a new tillHandler.
func newTillHandler(ts portssvc.TillSvcFacade) *tillHandler {
	return &tillHandler{
		tillService: ts,
	}
}

// RegisterTillRoutes registers the per-till routes. writeLimiter guards the
// mutation endpoints.
func RegisterTillRoutes(rg *gin.RouterGroup, tillService portssvc.TillSvcFacade, writeLimiter gin.HandlerFunc) {
	h := newTillHandler(tillService)

	till := rg.Group("/caixa/:caixaNum")
	{
		till.GET("", h.getTillDetail)
		till.POST("/movimentacao", writeLimiter, h.addMovement)
		till.DELETE("/movimentacao/:movID", writeLimiter, h.deleteMovement)
		till.POST("/fechamento", writeLimiter, h.saveClosing)
	}
}

// getTillDetail godoc
// @Summary Get one till's day view
// @Description Returns the closing (if any), resolved opening balance, and ordered movement lists for a till on a date
// @Tags caixa
// @Produce json
// @Param caixaNum path int true "Till number (1-6)"
// @Param data query string false "Date (YYYY-MM-DD), defaults to today"
// @Success 200 {object} dto.APIResponse{data=dto.TillDetailResponse}
// @Failure 400 {object} dto.APIResponse
// @Failure 500 {object} dto.APIResponse
// @Router /caixa/{caixaNum} [get]
func (h *tillHandler) getTillDetail(c *gin.Context) {
	till, ok := tillParam(c)
	if !ok {
		return
	}
	date, ok := dateQuery(c)
	if !ok {
		return
	}

	detail, err := h.tillService.GetTillDetail(c.Request.Context(), till, date)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, dto.ToTillDetailResponse(detail))
}

// addMovement godoc
// @Summary Record a supply or withdrawal
// @Description Adds a movement to the till; the sequence number is assigned within the (date, till, kind) group
// @Tags caixa
// @Accept json
// @Produce json
// @Param caixaNum path int true "Till number (1-6)"
// @Param movement body dto.AddMovementRequest true "Movement details"
// @Success 201 {object} dto.APIResponse{data=dto.MovementResponse}
// @Failure 400 {object} dto.APIResponse
// @Failure 500 {object} dto.APIResponse
// @Router /caixa/{caixaNum}/movimentacao [post]
func (h *tillHandler) addMovement(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	till, ok := tillParam(c)
	if !ok {
		return
	}

	var req dto.AddMovementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for addMovement", slog.String("error", err.Error()))
		respondBadRequest(c, "invalid request format: "+err.Error())
		return
	}

	movement, err := h.tillService.AddMovement(c.Request.Context(), till, req)
	if err != nil {
		respondError(c, err)
		return
	}

	logger.Info("Movement recorded",
		slog.Int("till", till),
		slog.String("kind", string(movement.Kind)),
		slog.Int("sequence", movement.Sequence),
	)
	respondCreated(c, dto.ToMovementResponse(movement))
}

// deleteMovement godoc
// @Summary Delete a movement
// @Description Removes one of the till's movements; sibling sequence numbers are not renumbered
// @Tags caixa
// @Produce json
// @Param caixaNum path int true "Till number (1-6)"
// @Param movID path string true "Movement ID"
// @Success 200 {object} dto.APIResponse
// @Failure 400 {object} dto.APIResponse
// @Failure 404 {object} dto.APIResponse
// @Failure 500 {object} dto.APIResponse
// @Router /caixa/{caixaNum}/movimentacao/{movID} [delete]
func (h *tillHandler) deleteMovement(c *gin.Context) {
	till, ok := tillParam(c)
	if !ok {
		return
	}
	movementID := c.Param("movID")

	if err := h.tillService.DeleteMovement(c.Request.Context(), till, movementID); err != nil {
		respondError(c, err)
		return
	}

	middleware.GetLoggerFromCtx(c.Request.Context()).Info("Movement deleted",
		slog.Int("till", till),
		slog.String("movement_id", movementID),
	)
	respondOK(c, nil)
}

// saveClosing godoc
// @Summary Create or update the till's daily closing
// @Description Upserts the closing for (date, till); only the provided fields change. Returns the full derived view.
// @Tags caixa
// @Accept json
// @Produce json
// @Param caixaNum path int true "Till number (1-6)"
// @Param closing body dto.SaveClosingRequest true "Closing fields"
// @Success 200 {object} dto.APIResponse{data=dto.ClosingViewResponse}
// @Failure 400 {object} dto.APIResponse
// @Failure 409 {object} dto.APIResponse
// @Failure 500 {object} dto.APIResponse
// @Router /caixa/{caixaNum}/fechamento [post]
func (h *tillHandler) saveClosing(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	till, ok := tillParam(c)
	if !ok {
		return
	}

	var req dto.SaveClosingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for saveClosing", slog.String("error", err.Error()))
		respondBadRequest(c, "invalid request format: "+err.Error())
		return
	}

	view, err := h.tillService.SaveClosing(c.Request.Context(), till, req)
	if err != nil {
		respondError(c, err)
		return
	}

	logger.Info("Closing saved",
		slog.Int("till", till),
		slog.String("date", req.Data),
		slog.String("status", string(view.Status)),
	)
	respondOK(c, dto.ToClosingViewResponse(view))
}
