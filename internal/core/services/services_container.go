package services

import (
	portsrepo "github.com/loteriaimperatriz/caixa_backend/internal/core/ports/repositories"
	portssvc "github.com/loteriaimperatriz/caixa_backend/internal/core/ports/services"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(repos portsrepo.RepositoryProvider) *portssvc.ServiceContainer {
	return &portssvc.ServiceContainer{
		Till:      NewTillService(repos.MovementRepo, repos.ClosingRepo),
		Reporting: NewReportingService(repos.MovementRepo, repos.ClosingRepo),
	}
}
