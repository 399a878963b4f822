package pgsql

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/loteriaimperatriz/caixa_backend/internal/apperrors"
	"github.com/loteriaimperatriz/caixa_backend/internal/core/domain"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

// integrationPool connects to the migrated database named by
// CAIXA_TEST_DATABASE_URL, or skips the test when it is unset.
func integrationPool(t *testing.T) *pgxpool.Pool {
	t.Helper()

	databaseURL := os.Getenv("CAIXA_TEST_DATABASE_URL")
	if databaseURL == "" {
		t.Skip("set CAIXA_TEST_DATABASE_URL to run postgres integration test")
	}

	pool, err := pgxpool.New(context.Background(), databaseURL)
	if err != nil {
		t.Fatalf("new pool: %v", err)
	}
	t.Cleanup(pool.Close)
	return pool
}

func clearMovementDay(t *testing.T, pool *pgxpool.Pool, date time.Time) {
	t.Helper()
	ctx := context.Background()
	clear := func() {
		_, _ = pool.Exec(ctx, `DELETE FROM movements WHERE movement_date = $1`, date)
	}
	clear()
	t.Cleanup(clear)
}

func clearClosingDay(t *testing.T, pool *pgxpool.Pool, date time.Time) {
	t.Helper()
	ctx := context.Background()
	clear := func() {
		_, _ = pool.Exec(ctx, `DELETE FROM closings WHERE closing_date = $1`, date)
	}
	clear()
	t.Cleanup(clear)
}

func TestSaveMovementAssignsSequencesPerKind(t *testing.T) {
	pool := integrationPool(t)
	ctx := context.Background()
	repo := &PgxMovementRepository{BaseRepository: BaseRepository{Pool: pool}}

	// A date no real data uses, cleared before and after the test.
	date := time.Date(2099, 6, 15, 0, 0, 0, 0, time.UTC)
	clearMovementDay(t, pool, date)

	save := func(till int, kind domain.MovementKind, amount string) domain.Movement {
		t.Helper()
		value, err := decimal.NewFromString(amount)
		if err != nil {
			t.Fatalf("parse amount %q: %v", amount, err)
		}
		saved, err := repo.SaveMovement(ctx, domain.Movement{
			MovementID:  uuid.NewString(),
			Date:        date,
			Till:        till,
			Kind:        kind,
			Description: "integration seed",
			Amount:      value,
			CreatedAt:   time.Now().UTC(),
		})
		if err != nil {
			t.Fatalf("save movement (till %d, kind %s): %v", till, kind, err)
		}
		return saved
	}

	// Three supplies on till 1 get 1, 2, 3.
	for want := 1; want <= 3; want++ {
		got := save(1, domain.KindSupply, "100.00")
		if got.Sequence != want {
			t.Fatalf("supply %d: expected sequence %d, got %d", want, want, got.Sequence)
		}
	}

	// Withdrawals on the same day and till count independently from 1.
	for want := 1; want <= 2; want++ {
		got := save(1, domain.KindWithdrawal, "40.00")
		if got.Sequence != want {
			t.Fatalf("withdrawal %d: expected sequence %d, got %d", want, want, got.Sequence)
		}
	}

	// Another till starts its own count.
	if got := save(2, domain.KindSupply, "60.00"); got.Sequence != 1 {
		t.Fatalf("first supply on till 2: expected sequence 1, got %d", got.Sequence)
	}

	// Deleting the middle supply leaves siblings as they are and the next
	// insert continues past the group max.
	movements, err := repo.ListMovementsForDay(ctx, date, 1)
	if err != nil {
		t.Fatalf("list movements: %v", err)
	}
	var middleID string
	for _, m := range movements {
		if m.Kind == domain.KindSupply && m.Sequence == 2 {
			middleID = m.MovementID
		}
	}
	if middleID == "" {
		t.Fatal("supply with sequence 2 not found")
	}
	if err := repo.DeleteMovement(ctx, middleID); err != nil {
		t.Fatalf("delete movement: %v", err)
	}

	remaining, err := repo.ListMovementsForDay(ctx, date, 1)
	if err != nil {
		t.Fatalf("list movements after delete: %v", err)
	}
	var supplySequences []int
	for _, m := range remaining {
		if m.Kind == domain.KindSupply {
			supplySequences = append(supplySequences, m.Sequence)
		}
	}
	if len(supplySequences) != 2 || supplySequences[0] != 1 || supplySequences[1] != 3 {
		t.Fatalf("expected supply sequences [1 3] after deleting the middle one, got %v", supplySequences)
	}

	if got := save(1, domain.KindSupply, "20.00"); got.Sequence != 4 {
		t.Fatalf("supply after gap: expected sequence 4, got %d", got.Sequence)
	}
}

func TestSaveMovementRecoversFromSequenceCollision(t *testing.T) {
	pool := integrationPool(t)
	ctx := context.Background()
	repo := &PgxMovementRepository{BaseRepository: BaseRepository{Pool: pool}}

	date := time.Date(2099, 6, 16, 0, 0, 0, 0, time.UTC)
	clearMovementDay(t, pool, date)

	// Concurrent writers computing the same max+1 hit the unique index; the
	// repository must retry and land on distinct sequences. Each insert round
	// settles at least one writer, so a burst of sequenceAssignRetries
	// writers always fits the retry bound.
	const writers = sequenceAssignRetries
	results := make(chan error, writers)
	for i := 0; i < writers; i++ {
		go func() {
			_, err := repo.SaveMovement(ctx, domain.Movement{
				MovementID:  uuid.NewString(),
				Date:        date,
				Till:        3,
				Kind:        domain.KindSupply,
				Description: "concurrent seed",
				Amount:      decimal.NewFromInt(10),
				CreatedAt:   time.Now().UTC(),
			})
			results <- err
		}()
	}
	for i := 0; i < writers; i++ {
		if err := <-results; err != nil {
			t.Fatalf("concurrent save: %v", err)
		}
	}

	movements, err := repo.ListMovementsForDay(ctx, date, 3)
	if err != nil {
		t.Fatalf("list movements: %v", err)
	}
	if len(movements) != writers {
		t.Fatalf("expected %d movements, got %d", writers, len(movements))
	}
	for i, m := range movements {
		if m.Sequence != i+1 {
			t.Fatalf("expected dense sequences 1..%d, got %d at position %d", writers, m.Sequence, i)
		}
	}
}

func TestInsertClosingDuplicateMapsToConflict(t *testing.T) {
	pool := integrationPool(t)
	ctx := context.Background()
	repo := &PgxClosingRepository{BaseRepository: BaseRepository{Pool: pool}}

	date := time.Date(2099, 6, 17, 0, 0, 0, 0, time.UTC)
	clearClosingDay(t, pool, date)

	first := domain.Closing{
		ClosingID:      uuid.NewString(),
		Date:           date,
		Till:           4,
		OpeningBalance: decimal.NewFromInt(500),
		MachineValue:   decimal.NewFromInt(750),
		CreatedAt:      time.Now().UTC(),
	}
	if err := repo.InsertClosing(ctx, first); err != nil {
		t.Fatalf("insert closing: %v", err)
	}

	duplicate := first
	duplicate.ClosingID = uuid.NewString()
	err := repo.InsertClosing(ctx, duplicate)
	if !errors.Is(err, apperrors.ErrConflict) {
		t.Fatalf("expected ErrConflict for duplicate (date, till), got %v", err)
	}

	// The natural key still resolves to the first writer's row.
	stored, err := repo.FindClosing(ctx, date, 4)
	if err != nil {
		t.Fatalf("find closing: %v", err)
	}
	if stored.ClosingID != first.ClosingID {
		t.Fatalf("expected first writer's closing %s, got %s", first.ClosingID, stored.ClosingID)
	}

	if _, err := repo.FindClosing(ctx, date, 5); !errors.Is(err, apperrors.ErrNotFound) {
		t.Fatalf("expected ErrNotFound for unclosed till, got %v", err)
	}

	missing := first
	missing.ClosingID = uuid.NewString()
	if err := repo.UpdateClosing(ctx, missing); !errors.Is(err, apperrors.ErrNotFound) {
		t.Fatalf("expected ErrNotFound updating a missing closing, got %v", err)
	}
}
