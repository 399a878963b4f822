package services

import (
	"context"
	"time"

	"github.com/loteriaimperatriz/caixa_backend/internal/core/domain"
	"github.com/loteriaimperatriz/caixa_backend/internal/dto"
	"github.com/shopspring/decimal"
)

// TillReaderSvc defines read operations for a single till
type TillReaderSvc interface {
	// GetTillDetail assembles the till screen for one (till, date): closing
	// view (nil when pending), resolved opening balance, and the day's
	// movements split by kind.
	GetTillDetail(ctx context.Context, till int, date time.Time) (*domain.TillDetail, error)

	// ResolveOpeningBalance applies the carry-forward rule: the previous
	// day's machine value when that day has a closing, the fixed default
	// otherwise.
	ResolveOpeningBalance(ctx context.Context, date time.Time, till int) (decimal.Decimal, error)
}

// TillWriterSvc defines the mutation operations on a till
type TillWriterSvc interface {
	// AddMovement records a new supply or withdrawal and returns it with its
	// assigned ID and sequence.
	AddMovement(ctx context.Context, till int, req dto.AddMovementRequest) (*domain.Movement, error)

	// DeleteMovement removes one movement belonging to the till. Returns
	// apperrors.ErrNotFound when the ID does not exist or belongs to another
	// till.
	DeleteMovement(ctx context.Context, till int, movementID string) error

	// SaveClosing creates or updates the till's closing for the request's
	// date, touching only the fields the request provides, and returns the
	// resulting derived view.
	SaveClosing(ctx context.Context, till int, req dto.SaveClosingRequest) (*domain.ClosingView, error)
}

// TillSvcFacade combines all till-related service interfaces
type TillSvcFacade interface {
	TillReaderSvc
	TillWriterSvc
}
