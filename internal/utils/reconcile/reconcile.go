// Package reconcile holds the pure reconciliation arithmetic for daily till
// closings. Everything here operates on already-fetched data; gathering the
// inputs (and deciding what an error means) is the services' job.
package reconcile

import (
	"time"

	"github.com/loteriaimperatriz/caixa_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

var (
	// DefaultOpeningBalance is the opening balance assumed for a till on days
	// with no prior closing to carry forward from.
	DefaultOpeningBalance = decimal.NewFromInt(500)

	// DiscrepancyTolerance is the largest absolute discrepancy still classified
	// as OK. Anything beyond it needs a manual check.
	DiscrepancyTolerance = decimal.NewFromInt(10)
)

// SupplyTotal sums the amounts of all supply movements in movs.
// Movements of other kinds are ignored; an empty slice sums to zero.
func SupplyTotal(movs []domain.Movement) decimal.Decimal {
	return totalByKind(movs, domain.KindSupply)
}

// WithdrawalTotal sums the amounts of all withdrawal movements in movs.
func WithdrawalTotal(movs []domain.Movement) decimal.Decimal {
	return totalByKind(movs, domain.KindWithdrawal)
}

func totalByKind(movs []domain.Movement, kind domain.MovementKind) decimal.Decimal {
	total := decimal.Zero
	for _, m := range movs {
		if m.Kind == kind {
			total = total.Add(m.Amount)
		}
	}
	return total
}

// Classify maps a discrepancy to the OK/VERIFICAR status split.
func Classify(discrepancy decimal.Decimal) domain.ClosingStatus {
	if discrepancy.Abs().LessThanOrEqual(DiscrepancyTolerance) {
		return domain.StatusOK
	}
	return domain.StatusVerify
}

// View derives the full read-side view of a closing from the day's movements:
//
//	calculatedBalance = openingBalance + totalSupplies - totalWithdrawals
//	discrepancy       = machineValue - calculatedBalance
//
// movs may contain movements of both kinds; each total only considers its own.
func View(closing domain.Closing, movs []domain.Movement) domain.ClosingView {
	return ViewFromTotals(closing, SupplyTotal(movs), WithdrawalTotal(movs))
}

// ViewFromTotals is View for callers that already hold the day's totals
// (e.g. from a grouped storage query).
func ViewFromTotals(closing domain.Closing, supplies, withdrawals decimal.Decimal) domain.ClosingView {
	calculated := closing.OpeningBalance.Add(supplies).Sub(withdrawals)
	discrepancy := closing.MachineValue.Sub(calculated)

	return domain.ClosingView{
		Closing:           closing,
		TotalSupplies:     supplies,
		TotalWithdrawals:  withdrawals,
		CalculatedBalance: calculated,
		Discrepancy:       discrepancy,
		Status:            Classify(discrepancy),
	}
}

// PendingView is the placeholder view for a till/day with no closing recorded:
// status PENDENTE, every quantity zero.
func PendingView(date time.Time, till int) domain.ClosingView {
	return domain.ClosingView{
		Closing: domain.Closing{
			Date:           date,
			Till:           till,
			OpeningBalance: decimal.Zero,
			MachineValue:   decimal.Zero,
		},
		TotalSupplies:     decimal.Zero,
		TotalWithdrawals:  decimal.Zero,
		CalculatedBalance: decimal.Zero,
		Discrepancy:       decimal.Zero,
		Status:            domain.StatusPending,
	}
}
