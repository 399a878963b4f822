package handlers

import (
	"strconv"
	"time"

	"github.com/loteriaimperatriz/caixa_backend/internal/core/domain"
	portssvc "github.com/loteriaimperatriz/caixa_backend/internal/core/ports/services"
	"github.com/loteriaimperatriz/caixa_backend/internal/dto"
	"github.com/gin-gonic/gin"
)

// reportingHandler handles HTTP requests for the cross-till aggregates.
type reportingHandler struct {
	reportingService portssvc.ReportingSvcFacade
}

// newReportingHandler creates a new reportingHandler.
func newReportingHandler(rs portssvc.ReportingSvcFacade) *reportingHandler {
	return &reportingHandler{
		reportingService: rs,
	}
}

// RegisterReportingRoutes registers the aggregate read routes.
func RegisterReportingRoutes(rg *gin.RouterGroup, reportingService portssvc.ReportingSvcFacade) {
	h := newReportingHandler(reportingService)

	rg.GET("/dashboard", h.getDashboard)
	rg.GET("/central", h.getCentral)
	rg.GET("/historico", h.getHistory)
}

// getDashboard godoc
// @Summary Current-day summary of all tills
// @Description Per-till closing views (PENDENTE placeholders included) plus grand totals for today
// @Tags reporting
// @Produce json
// @Success 200 {object} dto.APIResponse{data=dto.DashboardResponse}
// @Failure 500 {object} dto.APIResponse
// @Router /dashboard [get]
func (h *reportingHandler) getDashboard(c *gin.Context) {
	summary, err := h.reportingService.Dashboard(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, dto.ToDashboardResponse(summary))
}

// getCentral godoc
// @Summary Consolidated view for a date
// @Description Per-till closing views plus consolidation totals and the largest absolute discrepancy
// @Tags reporting
// @Produce json
// @Param data query string false "Date (YYYY-MM-DD), defaults to today"
// @Success 200 {object} dto.APIResponse{data=dto.CentralResponse}
// @Failure 400 {object} dto.APIResponse
// @Failure 500 {object} dto.APIResponse
// @Router /central [get]
func (h *reportingHandler) getCentral(c *gin.Context) {
	date, ok := dateQuery(c)
	if !ok {
		return
	}

	summary, err := h.reportingService.Central(c.Request.Context(), date)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, dto.ToCentralResponse(summary))
}

// getHistory godoc
// @Summary Closing history
// @Description Closings filtered by inclusive date range and optional till, newest first
// @Tags reporting
// @Produce json
// @Param data_inicio query string false "Range start (YYYY-MM-DD)"
// @Param data_fim query string false "Range end (YYYY-MM-DD)"
// @Param caixa query int false "Till number (1-6)"
// @Success 200 {object} dto.APIResponse{data=[]dto.ClosingViewResponse}
// @Failure 400 {object} dto.APIResponse
// @Failure 500 {object} dto.APIResponse
// @Router /historico [get]
func (h *reportingHandler) getHistory(c *gin.Context) {
	var from, to *time.Time
	if raw := c.Query("data_inicio"); raw != "" {
		d, err := domain.ParseDate(raw)
		if err != nil {
			respondBadRequest(c, "data_inicio must be formatted as YYYY-MM-DD")
			return
		}
		from = &d
	}
	if raw := c.Query("data_fim"); raw != "" {
		d, err := domain.ParseDate(raw)
		if err != nil {
			respondBadRequest(c, "data_fim must be formatted as YYYY-MM-DD")
			return
		}
		to = &d
	}

	var till *int
	if raw := c.Query("caixa"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || !domain.ValidTill(n) {
			respondBadRequest(c, "caixa must be an integer between 1 and "+strconv.Itoa(domain.TillCount))
			return
		}
		till = &n
	}

	views, err := h.reportingService.History(c.Request.Context(), from, to, till)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, dto.ToListClosingViewResponse(views))
}
