package services

import (
	"context"
	"time"

	"github.com/loteriaimperatriz/caixa_backend/internal/core/domain"
)

// ReportingSvcFacade defines the read-side aggregates over all tills.
type ReportingSvcFacade interface {
	// Dashboard builds the current-day summary across all tills.
	Dashboard(ctx context.Context) (*domain.DaySummary, error)

	// Central builds the consolidated view for an explicit date.
	Central(ctx context.Context, date time.Time) (*domain.CentralSummary, error)

	// History lists closing views filtered by inclusive date range and
	// optional till, ordered by date descending then till ascending.
	History(ctx context.Context, from, to *time.Time, till *int) ([]domain.ClosingView, error)
}
