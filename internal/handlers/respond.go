package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/loteriaimperatriz/caixa_backend/internal/apperrors"
	"github.com/loteriaimperatriz/caixa_backend/internal/core/domain"
	"github.com/loteriaimperatriz/caixa_backend/internal/dto"
	"github.com/loteriaimperatriz/caixa_backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

// respondOK writes payload data in the standard success envelope.
func respondOK(c *gin.Context, data any) {
	c.JSON(http.StatusOK, dto.Success(data))
}

// respondCreated is respondOK with a 201 status.
func respondCreated(c *gin.Context, data any) {
	c.JSON(http.StatusCreated, dto.Success(data))
}

// respondError maps a service error to its HTTP status and writes the failure
// envelope. Unclassified errors are storage faults: logged in full, reported
// generically.
func respondError(c *gin.Context, err error) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	switch {
	case errors.Is(err, apperrors.ErrValidation):
		logger.Warn("Validation error", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, dto.Failure(err.Error()))
	case errors.Is(err, apperrors.ErrNotFound):
		logger.Warn("Resource not found", slog.String("error", err.Error()))
		c.JSON(http.StatusNotFound, dto.Failure("not found"))
	case errors.Is(err, apperrors.ErrConflict):
		logger.Warn("Write conflict", slog.String("error", err.Error()))
		c.JSON(http.StatusConflict, dto.Failure("conflict, please retry"))
	default:
		logger.Error("Request failed", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, dto.Failure("internal error"))
	}
}

// respondBadRequest writes a 400 failure envelope with the given message.
func respondBadRequest(c *gin.Context, msg string) {
	c.JSON(http.StatusBadRequest, dto.Failure(msg))
}

// tillParam parses and range-checks the :caixaNum path parameter.
func tillParam(c *gin.Context) (int, bool) {
	till, err := strconv.Atoi(c.Param("caixaNum"))
	if err != nil || !domain.ValidTill(till) {
		respondBadRequest(c, "caixa must be an integer between 1 and "+strconv.Itoa(domain.TillCount))
		return 0, false
	}
	return till, true
}

// dateQuery parses the optional ?data= query parameter, defaulting to today.
func dateQuery(c *gin.Context) (time.Time, bool) {
	raw := c.Query("data")
	if raw == "" {
		return domain.Today(), true
	}
	date, err := domain.ParseDate(raw)
	if err != nil {
		respondBadRequest(c, "data must be formatted as YYYY-MM-DD")
		return time.Time{}, false
	}
	return date, true
}
