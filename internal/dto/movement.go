package dto

import (
	"time"

	"github.com/loteriaimperatriz/caixa_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// AddMovementRequest defines the data needed to record a movement on a till.
// The till number comes from the URL, not the body.
type AddMovementRequest struct {
	Data      string          `json:"data" binding:"required,datetime=2006-01-02"`
	Tipo      string          `json:"tipo" binding:"required,oneof=suprimento sangria"`
	Descricao string          `json:"descricao" binding:"required,max=200"`
	Valor     decimal.Decimal `json:"valor" binding:"required,gt=0"`
}

// MovementResponse defines the data returned for a movement.
type MovementResponse struct {
	ID        string          `json:"id"`
	Data      string          `json:"data"`
	Caixa     int             `json:"caixa"`
	Tipo      string          `json:"tipo"`
	Descricao string          `json:"descricao"`
	Valor     decimal.Decimal `json:"valor"`
	Ordem     int             `json:"ordem"`
	Timestamp time.Time       `json:"timestamp"`
}

// ToMovementResponse converts a domain.Movement to a MovementResponse DTO
func ToMovementResponse(m *domain.Movement) MovementResponse {
	return MovementResponse{
		ID:        m.MovementID,
		Data:      m.Date.Format(domain.DateLayout),
		Caixa:     m.Till,
		Tipo:      string(m.Kind),
		Descricao: m.Description,
		Valor:     m.Amount,
		Ordem:     m.Sequence,
		Timestamp: m.CreatedAt,
	}
}

// ToListMovementResponse converts a slice of domain.Movement to DTOs
func ToListMovementResponse(movements []domain.Movement) []MovementResponse {
	res := make([]MovementResponse, len(movements))
	for i := range movements {
		res[i] = ToMovementResponse(&movements[i])
	}
	return res
}
