package dto

import (
	"github.com/loteriaimperatriz/caixa_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// DayTotalsResponse carries the dashboard's grand totals across all tills.
type DayTotalsResponse struct {
	Suprimentos       decimal.Decimal `json:"suprimentos"`
	Sangrias          decimal.Decimal `json:"sangrias"`
	SaldoTotal        decimal.Decimal `json:"saldo_total"`
	CaixasComProblema int             `json:"caixas_com_problema"`
}

// DashboardResponse is the current-day summary of all tills.
type DashboardResponse struct {
	Data   string                `json:"data"`
	Caixas []ClosingViewResponse `json:"caixas"`
	Totais DayTotalsResponse     `json:"totais"`
}

// ConsolidationResponse carries the central view's aggregate block.
type ConsolidationResponse struct {
	TotalSuprimentos  decimal.Decimal `json:"total_suprimentos"`
	TotalSangrias     decimal.Decimal `json:"total_sangrias"`
	SaldoTotal        decimal.Decimal `json:"saldo_total"`
	CaixasComProblema int             `json:"caixas_com_problema"`
	MaiorDiferenca    decimal.Decimal `json:"maior_diferenca"`
}

// CentralResponse is the consolidated view of all tills for one date.
type CentralResponse struct {
	Data         string                `json:"data"`
	Caixas       []ClosingViewResponse `json:"caixas"`
	Consolidacao ConsolidationResponse `json:"consolidacao"`
}

// TillDetailResponse is the till screen payload for one (till, date).
type TillDetailResponse struct {
	Caixa        int                  `json:"caixa"`
	Data         string               `json:"data"`
	SaldoInicial decimal.Decimal      `json:"saldo_inicial"`
	Fechamento   *ClosingViewResponse `json:"fechamento"`
	Suprimentos  []MovementResponse   `json:"suprimentos"`
	Sangrias     []MovementResponse   `json:"sangrias"`
}

// ToDashboardResponse converts a domain.DaySummary to the dashboard DTO
func ToDashboardResponse(s *domain.DaySummary) DashboardResponse {
	return DashboardResponse{
		Data:   s.Date.Format(domain.DateLayout),
		Caixas: ToListClosingViewResponse(s.Tills),
		Totais: DayTotalsResponse{
			Suprimentos:       s.TotalSupplies,
			Sangrias:          s.TotalWithdrawals,
			SaldoTotal:        s.TotalBalance,
			CaixasComProblema: s.TillsToVerify,
		},
	}
}

// ToCentralResponse converts a domain.CentralSummary to the central-view DTO
func ToCentralResponse(s *domain.CentralSummary) CentralResponse {
	return CentralResponse{
		Data:   s.Date.Format(domain.DateLayout),
		Caixas: ToListClosingViewResponse(s.Tills),
		Consolidacao: ConsolidationResponse{
			TotalSuprimentos:  s.TotalSupplies,
			TotalSangrias:     s.TotalWithdrawals,
			SaldoTotal:        s.TotalBalance,
			CaixasComProblema: s.TillsToVerify,
			MaiorDiferenca:    s.MaxAbsDiscrepancy,
		},
	}
}

// ToTillDetailResponse converts a domain.TillDetail to its DTO
func ToTillDetailResponse(d *domain.TillDetail) TillDetailResponse {
	res := TillDetailResponse{
		Caixa:        d.Till,
		Data:         d.Date.Format(domain.DateLayout),
		SaldoInicial: d.OpeningBalance,
		Suprimentos:  ToListMovementResponse(d.Supplies),
		Sangrias:     ToListMovementResponse(d.Withdrawals),
	}
	if d.Closing != nil {
		view := ToClosingViewResponse(d.Closing)
		res.Fechamento = &view
	}
	return res
}
