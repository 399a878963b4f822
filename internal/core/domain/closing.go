package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// ClosingStatus classifies the reconciliation state of one till on one day.
type ClosingStatus string

const (
	// StatusOK means the closing's discrepancy is within tolerance.
	StatusOK ClosingStatus = "OK"
	// StatusVerify means the discrepancy exceeds tolerance and needs a manual check.
	StatusVerify ClosingStatus = "VERIFICAR"
	// StatusPending means no closing has been recorded for the till/day yet.
	StatusPending ClosingStatus = "PENDENTE"
)

// Closing is the daily reconciliation snapshot for one till.
// At most one Closing exists per (Date, Till) pair; the pair is the natural key,
// enforced by a unique constraint at the storage layer.
type Closing struct {
	ClosingID      string          // Primary Key (UUID)
	Date           time.Time       // Calendar day (UTC midnight)
	Till           int             // 1..TillCount
	OpeningBalance decimal.Decimal // Balance carried in at the start of the day
	MachineValue   decimal.Decimal // Till's self-reported cash value at closing
	Notes          string
	CreatedAt      time.Time
}

// ClosingView is a Closing together with its derived quantities. The derived
// fields are never stored; they are recomputed from the day's movements on
// every read.
type ClosingView struct {
	Closing
	TotalSupplies     decimal.Decimal
	TotalWithdrawals  decimal.Decimal
	CalculatedBalance decimal.Decimal
	Discrepancy       decimal.Decimal
	Status            ClosingStatus
}
