package services

import (
	"context"
	"fmt"
	"time"

	"github.com/loteriaimperatriz/caixa_backend/internal/core/domain"
	portsrepo "github.com/loteriaimperatriz/caixa_backend/internal/core/ports/repositories"
	portssvc "github.com/loteriaimperatriz/caixa_backend/internal/core/ports/services"
	"github.com/loteriaimperatriz/caixa_backend/internal/utils/reconcile"
	"github.com/shopspring/decimal"
)

// reportingService implements the ReportingSvcFacade interface
type reportingService struct {
	movementRepo portsrepo.MovementReader
	closingRepo  portsrepo.ClosingReader
}

// NewReportingService creates a new reporting service over the read side of
// the movement and closing stores.
func NewReportingService(movementRepo portsrepo.MovementReader, closingRepo portsrepo.ClosingReader) portssvc.ReportingSvcFacade {
	return &reportingService{
		movementRepo: movementRepo,
		closingRepo:  closingRepo,
	}
}

// Ensure reportingService implements the ReportingSvcFacade interface
var _ portssvc.ReportingSvcFacade = (*reportingService)(nil)

// Dashboard builds the current-day summary across all tills.
func (s *reportingService) Dashboard(ctx context.Context) (*domain.DaySummary, error) {
	return s.daySummary(ctx, domain.Today())
}

// Central builds the consolidated view for an explicit date: the day summary
// plus the largest absolute discrepancy across the tills.
func (s *reportingService) Central(ctx context.Context, date time.Time) (*domain.CentralSummary, error) {
	summary, err := s.daySummary(ctx, date)
	if err != nil {
		return nil, err
	}

	maxAbs := decimal.Zero
	for _, view := range summary.Tills {
		if abs := view.Discrepancy.Abs(); abs.GreaterThan(maxAbs) {
			maxAbs = abs
		}
	}

	return &domain.CentralSummary{
		DaySummary:        *summary,
		MaxAbsDiscrepancy: maxAbs,
	}, nil
}

// daySummary loads one day's closings and movements in two queries and folds
// them into the per-till breakdown. Tills without a closing get the PENDENTE
// placeholder and contribute zero to every total.
func (s *reportingService) daySummary(ctx context.Context, date time.Time) (*domain.DaySummary, error) {
	closings, err := s.closingRepo.ListClosingsForDate(ctx, date)
	if err != nil {
		return nil, fmt.Errorf("failed to list closings for summary: %w", err)
	}
	movements, err := s.movementRepo.ListMovementsForDate(ctx, date)
	if err != nil {
		return nil, fmt.Errorf("failed to list movements for summary: %w", err)
	}

	closingByTill := make(map[int]domain.Closing, len(closings))
	for _, c := range closings {
		closingByTill[c.Till] = c
	}
	movementsByTill := make(map[int][]domain.Movement)
	for _, m := range movements {
		movementsByTill[m.Till] = append(movementsByTill[m.Till], m)
	}

	summary := &domain.DaySummary{
		Date:             date,
		Tills:            make([]domain.ClosingView, 0, domain.TillCount),
		TotalSupplies:    decimal.Zero,
		TotalWithdrawals: decimal.Zero,
		TotalBalance:     decimal.Zero,
	}

	for till := 1; till <= domain.TillCount; till++ {
		var view domain.ClosingView
		if closing, ok := closingByTill[till]; ok {
			view = reconcile.View(closing, movementsByTill[till])
		} else {
			view = reconcile.PendingView(date, till)
		}

		summary.Tills = append(summary.Tills, view)
		summary.TotalSupplies = summary.TotalSupplies.Add(view.TotalSupplies)
		summary.TotalWithdrawals = summary.TotalWithdrawals.Add(view.TotalWithdrawals)
		summary.TotalBalance = summary.TotalBalance.Add(view.CalculatedBalance)
		if view.Status == domain.StatusVerify {
			summary.TillsToVerify++
		}
	}

	return summary, nil
}

// History lists closing views for an inclusive date range and optional till,
// newest day first. Movement totals come from one grouped query instead of a
// query per closing.
func (s *reportingService) History(ctx context.Context, from, to *time.Time, till *int) ([]domain.ClosingView, error) {
	closings, err := s.closingRepo.ListClosingsByRange(ctx, from, to, till)
	if err != nil {
		return nil, fmt.Errorf("failed to list closings for history: %w", err)
	}

	totals, err := s.movementRepo.SumMovementsByRange(ctx, from, to, till)
	if err != nil {
		return nil, fmt.Errorf("failed to sum movements for history: %w", err)
	}
	totalsByKey := make(map[string]domain.MovementTotals, len(totals))
	for _, t := range totals {
		totalsByKey[dayTillKey(t.Date, t.Till)] = t
	}

	views := make([]domain.ClosingView, 0, len(closings))
	for _, closing := range closings {
		t, ok := totalsByKey[dayTillKey(closing.Date, closing.Till)]
		if !ok {
			t = domain.MovementTotals{Supplies: decimal.Zero, Withdrawals: decimal.Zero}
		}
		views = append(views, reconcile.ViewFromTotals(closing, t.Supplies, t.Withdrawals))
	}
	return views, nil
}

func dayTillKey(date time.Time, till int) string {
	return fmt.Sprintf("%s#%d", date.Format(domain.DateLayout), till)
}
