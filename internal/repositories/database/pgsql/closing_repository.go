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

type PgxClosingRepository struct {
	BaseRepository
}

// newPgxClosingRepository creates a new repository for closing data.
func newPgxClosingRepository(pool *pgxpool.Pool) portsrepo.ClosingRepositoryFacade {
	return &PgxClosingRepository{BaseRepository: BaseRepository{Pool: pool}}
}

// Ensure PgxClosingRepository implements portsrepo.ClosingRepositoryFacade
var _ portsrepo.ClosingRepositoryFacade = (*PgxClosingRepository)(nil)

// InsertClosing persists a new closing. The UNIQUE(closing_date, till)
// constraint rejects a concurrent duplicate; that case maps to ErrConflict so
// the service can retry as an update.
func (r *PgxClosingRepository) InsertClosing(ctx context.Context, closing domain.Closing) error {
	query := `
		INSERT INTO closings (closing_id, closing_date, till, opening_balance, machine_value, notes, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7);
	`
	_, err := r.Pool.Exec(ctx, query,
		closing.ClosingID,
		closing.Date,
		closing.Till,
		closing.OpeningBalance,
		closing.MachineValue,
		closing.Notes,
		closing.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.ErrConflict
		}
		return fmt.Errorf("failed to insert closing for till %d: %w", closing.Till, err)
	}
	return nil
}

// UpdateClosing replaces the mutable fields of an existing closing.
func (r *PgxClosingRepository) UpdateClosing(ctx context.Context, closing domain.Closing) error {
	query := `
		UPDATE closings
		SET opening_balance = $2, machine_value = $3, notes = $4
		WHERE closing_id = $1;
	`
	tag, err := r.Pool.Exec(ctx, query,
		closing.ClosingID,
		closing.OpeningBalance,
		closing.MachineValue,
		closing.Notes,
	)
	if err != nil {
		return fmt.Errorf("failed to update closing %s: %w", closing.ClosingID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// FindClosing retrieves the closing for one (date, till) natural key.
func (r *PgxClosingRepository) FindClosing(ctx context.Context, date time.Time, till int) (*domain.Closing, error) {
	query := `
		SELECT closing_id, closing_date, till, opening_balance, machine_value, notes, created_at
		FROM closings
		WHERE closing_date = $1 AND till = $2;
	`
	var c domain.Closing
	err := r.Pool.QueryRow(ctx, query, date, till).Scan(
		&c.ClosingID,
		&c.Date,
		&c.Till,
		&c.OpeningBalance,
		&c.MachineValue,
		&c.Notes,
		&c.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find closing for till %d on %s: %w", till, date.Format(domain.DateLayout), err)
	}
	return &c, nil
}

// ListClosingsForDate retrieves all closings recorded on one day.
func (r *PgxClosingRepository) ListClosingsForDate(ctx context.Context, date time.Time) ([]domain.Closing, error) {
	query := `
		SELECT closing_id, closing_date, till, opening_balance, machine_value, notes, created_at
		FROM closings
		WHERE closing_date = $1
		ORDER BY till;
	`
	rows, err := r.Pool.Query(ctx, query, date)
	if err != nil {
		return nil, fmt.Errorf("failed to query closings for date %s: %w", date.Format(domain.DateLayout), err)
	}
	defer rows.Close()

	return collectClosings(rows)
}

// ListClosingsByRange retrieves closings filtered by inclusive date range and
// optional till, newest day first, tills ascending within a day.
func (r *PgxClosingRepository) ListClosingsByRange(ctx context.Context, from, to *time.Time, till *int) ([]domain.Closing, error) {
	query := `
		SELECT closing_id, closing_date, till, opening_balance, machine_value, notes, created_at
		FROM closings
		WHERE ($1::date IS NULL OR closing_date >= $1)
		  AND ($2::date IS NULL OR closing_date <= $2)
		  AND ($3::int IS NULL OR till = $3)
		ORDER BY closing_date DESC, till;
	`
	rows, err := r.Pool.Query(ctx, query, from, to, till)
	if err != nil {
		return nil, fmt.Errorf("failed to query closings by range: %w", err)
	}
	defer rows.Close()

	return collectClosings(rows)
}

func collectClosings(rows pgx.Rows) ([]domain.Closing, error) {
	closings, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.Closing, error) {
		var c domain.Closing
		err := row.Scan(
			&c.ClosingID,
			&c.Date,
			&c.Till,
			&c.OpeningBalance,
			&c.MachineValue,
			&c.Notes,
			&c.CreatedAt,
		)
		return c, err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan closings: %w", err)
	}
	return closings, nil
}
