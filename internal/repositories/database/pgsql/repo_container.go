package pgsql

import (
	portsrepo "github.com/loteriaimperatriz/caixa_backend/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		MovementRepo: newPgxMovementRepository(dbPool),
		ClosingRepo:  newPgxClosingRepository(dbPool),
	}
}
