package pgsql

import (
	portsrepo "github.com/cambiosoft/exchange_backend/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		AccountRepo:   newPgxAccountRepository(dbPool),
		PostingRepo:   newPgxPostingRepository(dbPool),
		LedgerRepo:    newPgxLedgerRepository(dbPool),
		OperationRepo: newPgxOperationRepository(dbPool),
		InvestorRepo:  newPgxInvestorRepository(dbPool),
		ClosureRepo:   newPgxClosureRepository(dbPool),
		PartyRepo:     newPgxPartyRepository(dbPool),
		CurrencyRepo:  newPgxCurrencyRepository(dbPool),
		TenantRepo:    newPgxTenantRepository(dbPool),
		UserRepo:      newPgxUserRepository(dbPool),
		APITokenRepo:  newPgxAPITokenRepository(dbPool),
		ReportingRepo: newReportingRepository(dbPool),
	}
}
