package services

import (
	"time"

	portsrepo "github.com/cambiosoft/exchange_backend/internal/core/ports/repositories"
	portssvc "github.com/cambiosoft/exchange_backend/internal/core/ports/services"
)

// NewServiceContainer wires every service on top of the repository provider.
func NewServiceContainer(repos portsrepo.RepositoryProvider, jwtSecret string, jwtExpiry time.Duration, jwtIssuer string) *portssvc.ServiceContainer {
	userSvc := NewUserService(repos.UserRepo)

	return &portssvc.ServiceContainer{
		Auth:       NewAuthService(userSvc, jwtSecret, jwtExpiry, jwtIssuer),
		User:       userSvc,
		Tenant:     NewTenantService(repos.TenantRepo),
		Account:    NewAccountService(repos.AccountRepo, repos.CurrencyRepo),
		Currency:   NewCurrencyService(repos.CurrencyRepo),
		Party:      NewPartyService(repos.PartyRepo),
		Investor:   NewInvestorService(repos.InvestorRepo, repos.OperationRepo, repos.LedgerRepo),
		Interest:   NewInterestService(repos.InvestorRepo, repos.LedgerRepo),
		Accounting: NewAccountingService(repos.PostingRepo, repos.AccountRepo),
		Ledger:     NewLedgerService(repos.LedgerRepo),
		Operations: NewOperationsService(repos.OperationRepo, repos.AccountRepo, repos.LedgerRepo, repos.PartyRepo, repos.InvestorRepo),
		Closure:    NewClosureService(repos.ClosureRepo, repos.AccountRepo, repos.PostingRepo, repos.OperationRepo),
		Reporting:  NewReportingService(repos.ReportingRepo),
		APIToken:   NewAPITokenService(repos.APITokenRepo),
	}
}
