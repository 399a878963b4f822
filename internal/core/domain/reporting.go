package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// MovementTotals aggregates one day's movement sums for one till. Produced by
// the storage layer's grouped range query so history rows don't trigger a
// query per closing.
type MovementTotals struct {
	Date        time.Time
	Till        int
	Supplies    decimal.Decimal
	Withdrawals decimal.Decimal
}

// DaySummary is the per-till breakdown of a single day across all tills,
// with grand totals. Tills with no closing appear as PENDENTE placeholders,
// so Tills always has TillCount entries, ordered by till number.
type DaySummary struct {
	Date             time.Time
	Tills            []ClosingView
	TotalSupplies    decimal.Decimal
	TotalWithdrawals decimal.Decimal
	TotalBalance     decimal.Decimal
	TillsToVerify    int
}

// CentralSummary is the consolidated view of a day: the day summary plus the
// largest absolute discrepancy across the tills (zero when none closed).
type CentralSummary struct {
	DaySummary
	MaxAbsDiscrepancy decimal.Decimal
}

// TillDetail is everything the till screen needs for one (date, till):
// the closing view when one exists, the opening balance the carry-forward
// rule resolves for that day, and the day's movements split by kind, each
// list ascending by sequence.
type TillDetail struct {
	Till           int
	Date           time.Time
	OpeningBalance decimal.Decimal
	Closing        *ClosingView
	Supplies       []Movement
	Withdrawals    []Movement
}
