package dto

import (
	"time"

	"github.com/loteriaimperatriz/caixa_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// SaveClosingRequest defines the data accepted by the closing upsert. All
// value fields are optional pointers: an absent field leaves the stored value
// untouched (or defaults to zero/empty on first save), which is different
// from an explicit zero.
type SaveClosingRequest struct {
	Data         string           `json:"data" binding:"required,datetime=2006-01-02"`
	SaldoInicial *decimal.Decimal `json:"saldo_inicial" binding:"omitempty,gte=0"`
	ValorMaquina *decimal.Decimal `json:"valor_maquina" binding:"omitempty,gte=0"`
	Observacoes  *string          `json:"observacoes" binding:"omitempty,max=2000"`
}

// ClosingViewResponse defines the full derived view returned for a closing.
// PENDENTE placeholder rows carry no ID or timestamp.
type ClosingViewResponse struct {
	ID               string          `json:"id,omitempty"`
	Data             string          `json:"data"`
	Caixa            int             `json:"caixa"`
	SaldoInicial     decimal.Decimal `json:"saldo_inicial"`
	ValorMaquina     decimal.Decimal `json:"valor_maquina"`
	TotalSuprimentos decimal.Decimal `json:"total_suprimentos"`
	TotalSangrias    decimal.Decimal `json:"total_sangrias"`
	SaldoCalculado   decimal.Decimal `json:"saldo_calculado"`
	Diferenca        decimal.Decimal `json:"diferenca"`
	Observacoes      string          `json:"observacoes"`
	Status           string          `json:"status"`
	Timestamp        *time.Time      `json:"timestamp,omitempty"`
}

// ToClosingViewResponse converts a domain.ClosingView to its DTO
func ToClosingViewResponse(v *domain.ClosingView) ClosingViewResponse {
	res := ClosingViewResponse{
		ID:               v.ClosingID,
		Data:             v.Date.Format(domain.DateLayout),
		Caixa:            v.Till,
		SaldoInicial:     v.OpeningBalance,
		ValorMaquina:     v.MachineValue,
		TotalSuprimentos: v.TotalSupplies,
		TotalSangrias:    v.TotalWithdrawals,
		SaldoCalculado:   v.CalculatedBalance,
		Diferenca:        v.Discrepancy,
		Observacoes:      v.Notes,
		Status:           string(v.Status),
	}
	if !v.CreatedAt.IsZero() {
		ts := v.CreatedAt
		res.Timestamp = &ts
	}
	return res
}

// ToListClosingViewResponse converts a slice of domain.ClosingView to DTOs
func ToListClosingViewResponse(views []domain.ClosingView) []ClosingViewResponse {
	res := make([]ClosingViewResponse, len(views))
	for i := range views {
		res[i] = ToClosingViewResponse(&views[i])
	}
	return res
}
