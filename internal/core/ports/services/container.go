package services

// ServiceContainer aggregates every service facade for route registration.
type ServiceContainer struct {
	Auth       AuthSvcFacade
	User       UserSvcFacade
	Tenant     TenantSvcFacade
	Account    AccountSvcFacade
	Currency   CurrencySvcFacade
	Party      PartySvcFacade
	Investor   InvestorSvcFacade
	Interest   InterestSvcFacade
	Accounting AccountingSvcFacade
	Ledger     LedgerSvcFacade
	Operations OperationsSvcFacade
	Closure    ClosureSvcFacade
	Reporting  ReportingSvcFacade
	APIToken   APITokenSvcFacade
}
