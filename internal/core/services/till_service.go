package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/loteriaimperatriz/caixa_backend/internal/apperrors"
	"github.com/loteriaimperatriz/caixa_backend/internal/core/domain"
	portsrepo "github.com/loteriaimperatriz/caixa_backend/internal/core/ports/repositories"
	portssvc "github.com/loteriaimperatriz/caixa_backend/internal/core/ports/services"
	"github.com/loteriaimperatriz/caixa_backend/internal/dto"
	"github.com/loteriaimperatriz/caixa_backend/internal/utils/reconcile"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// tillService implements the TillSvcFacade interface
type tillService struct {
	movementRepo portsrepo.MovementRepositoryFacade
	closingRepo  portsrepo.ClosingRepositoryFacade
}

// NewTillService creates a new till service over the movement and closing stores.
func NewTillService(movementRepo portsrepo.MovementRepositoryFacade, closingRepo portsrepo.ClosingRepositoryFacade) portssvc.TillSvcFacade {
	return &tillService{
		movementRepo: movementRepo,
		closingRepo:  closingRepo,
	}
}

// Ensure tillService implements the TillSvcFacade interface
var _ portssvc.TillSvcFacade = (*tillService)(nil)

func validateTill(till int) error {
	if !domain.ValidTill(till) {
		return fmt.Errorf("%w: till %d is outside 1..%d", apperrors.ErrValidation, till, domain.TillCount)
	}
	return nil
}

// AddMovement records a new supply or withdrawal on the till.
func (s *tillService) AddMovement(ctx context.Context, till int, req dto.AddMovementRequest) (*domain.Movement, error) {
	if err := validateTill(till); err != nil {
		return nil, err
	}
	date, err := domain.ParseDate(req.Data)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid date %q", apperrors.ErrValidation, req.Data)
	}
	kind := domain.MovementKind(req.Tipo)
	if !kind.IsValid() {
		return nil, fmt.Errorf("%w: unknown movement kind %q", apperrors.ErrValidation, req.Tipo)
	}

	movement := domain.Movement{
		MovementID:  uuid.NewString(),
		Date:        date,
		Till:        till,
		Kind:        kind,
		Description: req.Descricao,
		Amount:      req.Valor,
		CreatedAt:   time.Now().UTC(),
	}

	saved, err := s.movementRepo.SaveMovement(ctx, movement)
	if err != nil {
		return nil, fmt.Errorf("failed to add movement: %w", err)
	}
	return &saved, nil
}

// DeleteMovement removes one of the till's movements. The till must own the
// movement; a mismatch reads the same as a missing ID. Sibling sequence
// numbers are left as they are.
func (s *tillService) DeleteMovement(ctx context.Context, till int, movementID string) error {
	if err := validateTill(till); err != nil {
		return err
	}

	movement, err := s.movementRepo.FindMovementByID(ctx, movementID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return apperrors.ErrNotFound
		}
		return fmt.Errorf("failed to look up movement %s: %w", movementID, err)
	}
	if movement.Till != till {
		return apperrors.ErrNotFound
	}

	if err := s.movementRepo.DeleteMovement(ctx, movementID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return apperrors.ErrNotFound
		}
		return fmt.Errorf("failed to delete movement %s: %w", movementID, err)
	}
	return nil
}

// SaveClosing creates or updates the till's closing for the request's date.
// Only fields present in the request change; absent fields keep their stored
// value, or start at zero/empty on first save. A concurrent create of the
// same (date, till) is absorbed by retrying once as an update.
func (s *tillService) SaveClosing(ctx context.Context, till int, req dto.SaveClosingRequest) (*domain.ClosingView, error) {
	if err := validateTill(till); err != nil {
		return nil, err
	}
	date, err := domain.ParseDate(req.Data)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid date %q", apperrors.ErrValidation, req.Data)
	}

	closing, err := s.upsertClosing(ctx, date, till, req)
	if err != nil {
		return nil, err
	}

	movements, err := s.movementRepo.ListMovementsForDay(ctx, date, till)
	if err != nil {
		return nil, fmt.Errorf("failed to load movements for closing view: %w", err)
	}

	view := reconcile.View(*closing, movements)
	return &view, nil
}

func (s *tillService) upsertClosing(ctx context.Context, date time.Time, till int, req dto.SaveClosingRequest) (*domain.Closing, error) {
	existing, err := s.closingRepo.FindClosing(ctx, date, till)
	switch {
	case err == nil:
		return s.updateClosing(ctx, *existing, req)
	case errors.Is(err, apperrors.ErrNotFound):
		// fall through to insert
	default:
		return nil, fmt.Errorf("failed to look up closing: %w", err)
	}

	closing := domain.Closing{
		ClosingID:      uuid.NewString(),
		Date:           date,
		Till:           till,
		OpeningBalance: decimal.Zero,
		MachineValue:   decimal.Zero,
		CreatedAt:      time.Now().UTC(),
	}
	applyClosingFields(&closing, req)

	err = s.closingRepo.InsertClosing(ctx, closing)
	if err == nil {
		return &closing, nil
	}
	if !errors.Is(err, apperrors.ErrConflict) {
		return nil, fmt.Errorf("failed to insert closing: %w", err)
	}

	// Someone else created the row between our read and insert; their row
	// wins the create and we apply our fields on top of it.
	winner, err := s.closingRepo.FindClosing(ctx, date, till)
	if err != nil {
		return nil, fmt.Errorf("failed to re-read closing after conflict: %w", err)
	}
	return s.updateClosing(ctx, *winner, req)
}

func (s *tillService) updateClosing(ctx context.Context, closing domain.Closing, req dto.SaveClosingRequest) (*domain.Closing, error) {
	applyClosingFields(&closing, req)
	if err := s.closingRepo.UpdateClosing(ctx, closing); err != nil {
		return nil, fmt.Errorf("failed to update closing %s: %w", closing.ClosingID, err)
	}
	return &closing, nil
}

// applyClosingFields copies only the provided request fields onto the closing.
func applyClosingFields(closing *domain.Closing, req dto.SaveClosingRequest) {
	if req.SaldoInicial != nil {
		closing.OpeningBalance = *req.SaldoInicial
	}
	if req.ValorMaquina != nil {
		closing.MachineValue = *req.ValorMaquina
	}
	if req.Observacoes != nil {
		closing.Notes = *req.Observacoes
	}
}

// ResolveOpeningBalance applies the carry-forward rule: yesterday's machine
// value when yesterday has a closing, the fixed default otherwise. Only a
// genuinely missing row falls back to the default; storage faults propagate.
func (s *tillService) ResolveOpeningBalance(ctx context.Context, date time.Time, till int) (decimal.Decimal, error) {
	if err := validateTill(till); err != nil {
		return decimal.Zero, err
	}

	previous := date.AddDate(0, 0, -1)
	closing, err := s.closingRepo.FindClosing(ctx, previous, till)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return reconcile.DefaultOpeningBalance, nil
		}
		return decimal.Zero, fmt.Errorf("failed to resolve opening balance: %w", err)
	}
	return closing.MachineValue, nil
}

// GetTillDetail assembles the till screen for one (till, date).
func (s *tillService) GetTillDetail(ctx context.Context, till int, date time.Time) (*domain.TillDetail, error) {
	if err := validateTill(till); err != nil {
		return nil, err
	}

	openingBalance, err := s.ResolveOpeningBalance(ctx, date, till)
	if err != nil {
		return nil, err
	}

	movements, err := s.movementRepo.ListMovementsForDay(ctx, date, till)
	if err != nil {
		return nil, fmt.Errorf("failed to load movements for till detail: %w", err)
	}

	detail := &domain.TillDetail{
		Till:           till,
		Date:           date,
		OpeningBalance: openingBalance,
		Supplies:       filterByKind(movements, domain.KindSupply),
		Withdrawals:    filterByKind(movements, domain.KindWithdrawal),
	}

	closing, err := s.closingRepo.FindClosing(ctx, date, till)
	switch {
	case err == nil:
		view := reconcile.View(*closing, movements)
		detail.Closing = &view
	case errors.Is(err, apperrors.ErrNotFound):
		// no closing yet; detail.Closing stays nil
	default:
		return nil, fmt.Errorf("failed to load closing for till detail: %w", err)
	}

	return detail, nil
}

// filterByKind keeps the input's ordering, so lists stay ascending by sequence.
func filterByKind(movements []domain.Movement, kind domain.MovementKind) []domain.Movement {
	out := make([]domain.Movement, 0, len(movements))
	for _, m := range movements {
		if m.Kind == kind {
			out = append(out, m)
		}
	}
	return out
}
