package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/loteriaimperatriz/caixa_backend/internal/apperrors"
	"github.com/loteriaimperatriz/caixa_backend/internal/core/domain"
	portsrepo "github.com/loteriaimperatriz/caixa_backend/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// sequenceAssignRetries bounds how often a SaveMovement recomputes its
// sequence after losing the max+1 race to a concurrent insert.
const sequenceAssignRetries = 3

type PgxMovementRepository struct {
	BaseRepository
}

// newPgxMovementRepository creates a new repository for movement data.
func newPgxMovementRepository(pool *pgxpool.Pool) portsrepo.MovementRepositoryFacade {
	return &PgxMovementRepository{BaseRepository: BaseRepository{Pool: pool}}
}

// Ensure PgxMovementRepository implements portsrepo.MovementRepositoryFacade
var _ portsrepo.MovementRepositoryFacade = (*PgxMovementRepository)(nil)

// SaveMovement inserts a movement, computing its sequence (group max + 1) in
// the same statement. The UNIQUE(movement_date, till, kind, sequence) index
// turns a lost race into a 23505, which we answer by recomputing.
func (r *PgxMovementRepository) SaveMovement(ctx context.Context, movement domain.Movement) (domain.Movement, error) {
	query := `
		INSERT INTO movements (movement_id, movement_date, till, kind, description, amount, sequence, created_at)
		SELECT $1, $2, $3, $4, $5, $6, COALESCE(MAX(sequence), 0) + 1, $7
		FROM movements
		WHERE movement_date = $2 AND till = $3 AND kind = $4
		RETURNING sequence;
	`

	var lastErr error
	for attempt := 0; attempt < sequenceAssignRetries; attempt++ {
		err := r.Pool.QueryRow(ctx, query,
			movement.MovementID,
			movement.Date,
			movement.Till,
			movement.Kind,
			movement.Description,
			movement.Amount,
			movement.CreatedAt,
		).Scan(&movement.Sequence)
		if err == nil {
			return movement, nil
		}
		if !isUniqueViolation(err) {
			return domain.Movement{}, fmt.Errorf("failed to insert movement: %w", err)
		}
		lastErr = err
	}
	return domain.Movement{}, fmt.Errorf("failed to assign movement sequence after %d attempts: %w", sequenceAssignRetries, lastErr)
}

// DeleteMovement removes a movement by ID. Siblings keep their sequence numbers.
func (r *PgxMovementRepository) DeleteMovement(ctx context.Context, movementID string) error {
	tag, err := r.Pool.Exec(ctx, `DELETE FROM movements WHERE movement_id = $1;`, movementID)
	if err != nil {
		return fmt.Errorf("failed to delete movement %s: %w", movementID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// FindMovementByID retrieves a single movement.
func (r *PgxMovementRepository) FindMovementByID(ctx context.Context, movementID string) (*domain.Movement, error) {
	query := `
		SELECT movement_id, movement_date, till, kind, description, amount, sequence, created_at
		FROM movements
		WHERE movement_id = $1;
	`
	var m domain.Movement
	err := r.Pool.QueryRow(ctx, query, movementID).Scan(
		&m.MovementID,
		&m.Date,
		&m.Till,
		&m.Kind,
		&m.Description,
		&m.Amount,
		&m.Sequence,
		&m.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find movement %s: %w", movementID, err)
	}
	return &m, nil
}

// ListMovementsForDay retrieves one till's movements for a day, kind grouped,
// ascending sequence within each kind.
func (r *PgxMovementRepository) ListMovementsForDay(ctx context.Context, date time.Time, till int) ([]domain.Movement, error) {
	query := `
		SELECT movement_id, movement_date, till, kind, description, amount, sequence, created_at
		FROM movements
		WHERE movement_date = $1 AND till = $2
		ORDER BY kind, sequence;
	`
	rows, err := r.Pool.Query(ctx, query, date, till)
	if err != nil {
		return nil, fmt.Errorf("failed to query movements for till %d: %w", till, err)
	}
	defer rows.Close()

	return collectMovements(rows)
}

// ListMovementsForDate retrieves every till's movements for a day.
func (r *PgxMovementRepository) ListMovementsForDate(ctx context.Context, date time.Time) ([]domain.Movement, error) {
	query := `
		SELECT movement_id, movement_date, till, kind, description, amount, sequence, created_at
		FROM movements
		WHERE movement_date = $1
		ORDER BY till, kind, sequence;
	`
	rows, err := r.Pool.Query(ctx, query, date)
	if err != nil {
		return nil, fmt.Errorf("failed to query movements for date %s: %w", date.Format(domain.DateLayout), err)
	}
	defer rows.Close()

	return collectMovements(rows)
}

// SumMovementsByRange aggregates supply/withdrawal totals per (day, till) in
// one grouped query, so range reads don't fan out per closing.
func (r *PgxMovementRepository) SumMovementsByRange(ctx context.Context, from, to *time.Time, till *int) ([]domain.MovementTotals, error) {
	query := `
		SELECT movement_date, till,
		       COALESCE(SUM(amount) FILTER (WHERE kind = 'suprimento'), 0) AS supplies,
		       COALESCE(SUM(amount) FILTER (WHERE kind = 'sangria'), 0) AS withdrawals
		FROM movements
		WHERE ($1::date IS NULL OR movement_date >= $1)
		  AND ($2::date IS NULL OR movement_date <= $2)
		  AND ($3::int IS NULL OR till = $3)
		GROUP BY movement_date, till;
	`
	rows, err := r.Pool.Query(ctx, query, from, to, till)
	if err != nil {
		return nil, fmt.Errorf("failed to sum movements by range: %w", err)
	}
	defer rows.Close()

	totals, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.MovementTotals, error) {
		var t domain.MovementTotals
		err := row.Scan(&t.Date, &t.Till, &t.Supplies, &t.Withdrawals)
		return t, err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan movement totals: %w", err)
	}
	return totals, nil
}

func collectMovements(rows pgx.Rows) ([]domain.Movement, error) {
	movements, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.Movement, error) {
		var m domain.Movement
		err := row.Scan(
			&m.MovementID,
			&m.Date,
			&m.Till,
			&m.Kind,
			&m.Description,
			&m.Amount,
			&m.Sequence,
			&m.CreatedAt,
		)
		return m, err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan movements: %w", err)
	}
	return movements, nil
}
