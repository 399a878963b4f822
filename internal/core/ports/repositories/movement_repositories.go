package repositories

import (
	"context"
	"time"

	"github.com/loteriaimperatriz/caixa_backend/internal/core/domain"
)

// MovementReader defines read operations for movement data
type MovementReader interface {
	// FindMovementByID retrieves a single movement by its ID.
	FindMovementByID(ctx context.Context, movementID string) (*domain.Movement, error)

	// ListMovementsForDay retrieves all movements for one till on one day,
	// ordered by kind then ascending sequence.
	ListMovementsForDay(ctx context.Context, date time.Time, till int) ([]domain.Movement, error)

	// ListMovementsForDate retrieves all movements for every till on one day,
	// ordered by till, kind, then ascending sequence.
	ListMovementsForDate(ctx context.Context, date time.Time) ([]domain.Movement, error)

	// SumMovementsByRange returns per-(day, till) supply/withdrawal totals for
	// the inclusive date range, optionally restricted to one till. Nil bounds
	// leave that side of the range open.
	SumMovementsByRange(ctx context.Context, from, to *time.Time, till *int) ([]domain.MovementTotals, error)
}

// MovementWriter defines write operations for movement data
type MovementWriter interface {
	// SaveMovement persists a new movement, assigning its sequence number
	// (max sequence of its (date, till, kind) group + 1) atomically, and
	// returns the stored record.
	SaveMovement(ctx context.Context, movement domain.Movement) (domain.Movement, error)

	// DeleteMovement removes a movement by ID. Sibling sequence numbers are
	// never renumbered. Returns apperrors.ErrNotFound when no such movement
	// exists.
	DeleteMovement(ctx context.Context, movementID string) error
}

// MovementRepositoryFacade combines all movement-related repository interfaces
type MovementRepositoryFacade interface {
	MovementReader
	MovementWriter
}
