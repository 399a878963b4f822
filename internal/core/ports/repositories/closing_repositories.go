package repositories

import (
	"context"
	"time"

	"github.com/loteriaimperatriz/caixa_backend/internal/core/domain"
)

// ClosingReader defines read operations for closing data
type ClosingReader interface {
	// FindClosing retrieves the closing for one (date, till), or
	// apperrors.ErrNotFound when none exists.
	FindClosing(ctx context.Context, date time.Time, till int) (*domain.Closing, error)

	// ListClosingsForDate retrieves all closings recorded on one day, ordered
	// by till.
	ListClosingsForDate(ctx context.Context, date time.Time) ([]domain.Closing, error)

	// ListClosingsByRange retrieves closings filtered by inclusive date range
	// and optional till, ordered by date descending then till ascending.
	// Nil filters are ignored.
	ListClosingsByRange(ctx context.Context, from, to *time.Time, till *int) ([]domain.Closing, error)
}

// ClosingWriter defines write operations for closing data
type ClosingWriter interface {
	// InsertClosing persists a new closing. A unique-constraint violation on
	// (date, till) surfaces as apperrors.ErrConflict so the caller can retry
	// as an update.
	InsertClosing(ctx context.Context, closing domain.Closing) error

	// UpdateClosing replaces the mutable fields of an existing closing,
	// addressed by its ID. Returns apperrors.ErrNotFound when the row is gone.
	UpdateClosing(ctx context.Context, closing domain.Closing) error
}

// ClosingRepositoryFacade combines all closing-related repository interfaces
type ClosingRepositoryFacade interface {
	ClosingReader
	ClosingWriter
}
