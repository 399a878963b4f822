package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// MovementKind indicates whether a cash movement puts money into a till or takes it out.
type MovementKind string

const (
	KindSupply     MovementKind = "suprimento"
	KindWithdrawal MovementKind = "sangria"
)

// IsValid reports whether the kind is one of the two known movement kinds.
func (k MovementKind) IsValid() bool {
	return k == KindSupply || k == KindWithdrawal
}

// Movement represents a single cash event (supply or withdrawal) on one till.
// Movements are immutable: created once, optionally deleted, never updated.
type Movement struct {
	MovementID  string          // Primary Key (UUID)
	Date        time.Time       // Calendar day the movement applies to (UTC midnight)
	Till        int             // 1..TillCount
	Kind        MovementKind    // suprimento or sangria
	Description string          // Required free-text label
	Amount      decimal.Decimal // Currency value, two-decimal semantics
	Sequence    int             // Ordering within the (Date, Till, Kind) group; gaps allowed
	CreatedAt   time.Time
}
