package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/cambiosoft/exchange_backend/internal/apperrors"
	"github.com/cambiosoft/exchange_backend/internal/core/domain"
	portsrepo "github.com/cambiosoft/exchange_backend/internal/core/ports/repositories"
	portssvc "github.com/cambiosoft/exchange_backend/internal/core/ports/services"
	"github.com/cambiosoft/exchange_backend/internal/dto"
	"github.com/cambiosoft/exchange_backend/internal/middleware"
)

var oneHundred = decimal.NewFromInt(100)

// operationsService orchestrates exchange operations. Each operation runs in
// one unit of work: the operation record, the balance mutations, the internal
// movements and the derived ledger entries commit together or not at all.
type operationsService struct {
	opRepo       portsrepo.OperationRepositoryFacade
	accountRepo  portsrepo.AccountRepositoryFacade
	ledgerRepo   portsrepo.LedgerRepositoryFacade
	partyRepo    portsrepo.PartyRepository
	investorRepo portsrepo.InvestorRepository
}

// NewOperationsService creates the operations service.
func NewOperationsService(
	opRepo portsrepo.OperationRepositoryFacade,
	accountRepo portsrepo.AccountRepositoryFacade,
	ledgerRepo portsrepo.LedgerRepositoryFacade,
	partyRepo portsrepo.PartyRepository,
	investorRepo portsrepo.InvestorRepository,
) portssvc.OperationsSvcFacade {
	return &operationsService{
		opRepo:       opRepo,
		accountRepo:  accountRepo,
		ledgerRepo:   ledgerRepo,
		partyRepo:    partyRepo,
		investorRepo: investorRepo,
	}
}

var _ portssvc.OperationsSvcFacade = (*operationsService)(nil)

// pctOf computes pct percent of base.
func pctOf(base, pct decimal.Decimal) decimal.Decimal {
	return base.Mul(pct).Div(oneHundred)
}

// CreateCurrencyExchange executes an exchange operation: funds leave the
// source (real account for own capital, virtual investor capital otherwise),
// the destination account receives the converted amount, and one payable
// obligation is derived per commission beneficiary. The client commission
// becomes a receivable, settled immediately unless deferred.
func (s *operationsService) CreateCurrencyExchange(ctx context.Context, tenantID string, req dto.CreateCurrencyExchangeRequest, userID string) (*domain.CurrencyExchange, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if req.AmountSent.LessThanOrEqual(decimal.Zero) || req.AmountReceived.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("%w: amounts must be positive", apperrors.ErrValidation)
	}
	if req.CapitalType == domain.CapitalOwn && req.SourceAccountID == "" {
		return nil, fmt.Errorf("%w: sourceAccountID is required for own capital", apperrors.ErrValidation)
	}
	if req.CapitalType == domain.CapitalInvestor && req.InvestorID == "" {
		return nil, fmt.Errorf("%w: investorID is required for investor capital", apperrors.ErrValidation)
	}
	if req.ProviderCommissionPct.IsPositive() && req.ProviderID == "" {
		return nil, fmt.Errorf("%w: providerID is required when a provider commission applies", apperrors.ErrValidation)
	}
	if req.BrokerCommissionPct.IsPositive() && req.BrokerID == "" {
		return nil, fmt.Errorf("%w: brokerID is required when a broker commission applies", apperrors.ErrValidation)
	}

	if req.CapitalType == domain.CapitalInvestor {
		investor, err := s.investorRepo.FindInvestorByID(ctx, tenantID, req.InvestorID)
		if err != nil {
			return nil, err
		}
		if !investor.IsActive {
			return nil, fmt.Errorf("%w: investor %s is inactive", apperrors.ErrValidation, req.InvestorID)
		}
	}

	now := time.Now().UTC()
	audit := domain.AuditFields{CreatedAt: now, CreatedBy: userID, LastUpdatedAt: now, LastUpdatedBy: userID}

	exchange := domain.CurrencyExchange{
		ExchangeID:           uuid.NewString(),
		TenantID:             tenantID,
		Date:                 req.Date,
		ClientID:             req.ClientID,
		BrokerID:             req.BrokerID,
		ProviderID:           req.ProviderID,
		SourceAccountID:      req.SourceAccountID,
		DestinationAccountID: req.DestinationAccountID,
		AmountSent:           req.AmountSent,
		AmountReceived:       req.AmountReceived,
		Rate:                 req.Rate,
		SourceCurrencyCode:   req.SourceCurrencyCode,
		DestCurrencyCode:     req.DestCurrencyCode,

		ProviderCommissionPct:    req.ProviderCommissionPct,
		ProviderCommissionAmount: pctOf(req.AmountSent, req.ProviderCommissionPct),
		BrokerCommissionPct:      req.BrokerCommissionPct,
		BrokerCommissionAmount:   pctOf(req.AmountSent, req.BrokerCommissionPct),
		PlatformCommissionPct:    req.PlatformCommissionPct,
		PlatformCommissionAmount: pctOf(req.AmountSent, req.PlatformCommissionPct),
		ClientCommissionPct:      req.ClientCommissionPct,
		ClientCommissionAmount:   pctOf(req.AmountSent, req.ClientCommissionPct),
		ClientCommissionDeferred: req.ClientCommissionDeferred,

		CapitalType:       req.CapitalType,
		InvestorID:        req.InvestorID,
		InvestorProfitPct: req.InvestorProfitPct,
		AuditFields:       audit,
	}
	if req.CapitalType == domain.CapitalInvestor {
		exchange.SourceAccountID = ""
	}

	tx, err := s.opRepo.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin unit of work: %w", err)
	}
	defer s.opRepo.Rollback(ctx, tx)

	exchange.Number, err = s.opRepo.NextExchangeNumber(ctx, tx, tenantID)
	if err != nil {
		return nil, fmt.Errorf("failed to allocate exchange number: %w", err)
	}

	if req.CapitalType == domain.CapitalOwn {
		if err := s.debitAccountInTx(ctx, tx, tenantID, req.SourceAccountID, req.AmountSent, req.SourceCurrencyCode, userID, now); err != nil {
			return nil, err
		}
		expense := domain.InternalTransaction{
			InternalTxnID: uuid.NewString(),
			TenantID:      tenantID,
			Type:          domain.InternalExpense,
			Amount:        req.AmountSent,
			CurrencyCode:  req.SourceCurrencyCode,
			Category:      "currency_exchange",
			Description:   fmt.Sprintf("Exchange %s: funds sent", exchange.Number),
			Date:          req.Date,
			AccountID:     req.SourceAccountID,
			AuditFields:   audit,
		}
		if err := s.opRepo.SaveInternalTransactionInTx(ctx, tx, expense); err != nil {
			return nil, fmt.Errorf("failed to record funding expense: %w", err)
		}
	} else {
		// Investor capital never touches a real account; the outflow is
		// tracked against the investor's virtual balance.
		expense := domain.InternalTransaction{
			InternalTxnID: uuid.NewString(),
			TenantID:      tenantID,
			Type:          domain.InternalExpense,
			Amount:        req.AmountSent,
			CurrencyCode:  req.SourceCurrencyCode,
			Category:      "currency_exchange",
			Description:   fmt.Sprintf("Exchange %s: investor capital deployed", exchange.Number),
			Date:          req.Date,
			Entity:        &domain.PartyRef{Type: domain.PartyInvestor, ID: req.InvestorID},
			AuditFields:   audit,
		}
		if err := s.opRepo.SaveInternalTransactionInTx(ctx, tx, expense); err != nil {
			return nil, fmt.Errorf("failed to record investor capital outflow: %w", err)
		}
	}

	if err := s.creditAccountInTx(ctx, tx, tenantID, req.DestinationAccountID, req.AmountReceived, req.DestCurrencyCode, userID, now); err != nil {
		return nil, err
	}
	income := domain.InternalTransaction{
		InternalTxnID: uuid.NewString(),
		TenantID:      tenantID,
		Type:          domain.InternalIncome,
		Amount:        req.AmountReceived,
		CurrencyCode:  req.DestCurrencyCode,
		Category:      "currency_exchange",
		Description:   fmt.Sprintf("Exchange %s: funds received", exchange.Number),
		Date:          req.Date,
		AccountID:     req.DestinationAccountID,
		AuditFields:   audit,
	}
	if err := s.opRepo.SaveInternalTransactionInTx(ctx, tx, income); err != nil {
		return nil, fmt.Errorf("failed to record received funds: %w", err)
	}

	if err := s.opRepo.SaveExchangeInTx(ctx, tx, exchange); err != nil {
		return nil, fmt.Errorf("failed to save exchange: %w", err)
	}

	source := &domain.OperationRef{Type: domain.OpCurrencyExchange, ID: exchange.ExchangeID}

	payables := []struct {
		amount decimal.Decimal
		entity domain.PartyRef
		label  string
	}{
		{exchange.ProviderCommissionAmount, domain.PartyRef{Type: domain.PartyProvider, ID: req.ProviderID}, "provider commission"},
		{exchange.BrokerCommissionAmount, domain.PartyRef{Type: domain.PartyBroker, ID: req.BrokerID}, "broker commission"},
		{exchange.PlatformCommissionAmount, domain.PartyRef{Type: domain.PartyPlatform, ID: domain.PlatformPartyID}, "platform commission"},
	}
	for _, p := range payables {
		if !p.amount.IsPositive() {
			continue
		}
		entry := domain.LedgerEntry{
			EntryID:        uuid.NewString(),
			TenantID:       tenantID,
			Type:           domain.EntryPayable,
			Status:         domain.EntryPending,
			OriginalAmount: p.amount,
			PaidAmount:     decimal.Zero,
			PendingAmount:  p.amount,
			CurrencyCode:   req.SourceCurrencyCode,
			Entity:         p.entity,
			Source:         source,
			Description:    fmt.Sprintf("Exchange %s: %s", exchange.Number, p.label),
			AuditFields:    audit,
		}
		if err := s.ledgerRepo.SaveEntryInTx(ctx, tx, entry); err != nil {
			return nil, fmt.Errorf("failed to save %s entry: %w", p.label, err)
		}
	}

	if exchange.ClientCommissionAmount.IsPositive() {
		entry := domain.LedgerEntry{
			EntryID:        uuid.NewString(),
			TenantID:       tenantID,
			Type:           domain.EntryReceivable,
			Status:         domain.EntryPending,
			OriginalAmount: exchange.ClientCommissionAmount,
			PaidAmount:     decimal.Zero,
			PendingAmount:  exchange.ClientCommissionAmount,
			CurrencyCode:   req.SourceCurrencyCode,
			Entity:         domain.PartyRef{Type: domain.PartyClient, ID: req.ClientID},
			Source:         source,
			Description:    fmt.Sprintf("Exchange %s: client commission", exchange.Number),
			AuditFields:    audit,
		}
		if !req.ClientCommissionDeferred {
			// Collected as part of the operation itself.
			entry.Status = domain.EntryPaid
			entry.PaidAmount = entry.OriginalAmount
			entry.PendingAmount = decimal.Zero
		}
		if err := s.ledgerRepo.SaveEntryInTx(ctx, tx, entry); err != nil {
			return nil, fmt.Errorf("failed to save client commission entry: %w", err)
		}
	}

	// No per-operation entry for the investor: their return is realized by
	// the monthly interest accrual on pending capital.

	if err := s.opRepo.Commit(ctx, tx); err != nil {
		return nil, fmt.Errorf("failed to commit exchange: %w", err)
	}

	logger.Info("Currency exchange created",
		slog.String("exchange_id", exchange.ExchangeID),
		slog.String("number", exchange.Number),
		slog.String("capital_type", string(exchange.CapitalType)))
	return &exchange, nil
}

// CreateDollarPurchase executes a dollar purchase: local currency out of the
// source account, dollars into the destination at the received rate.
func (s *operationsService) CreateDollarPurchase(ctx context.Context, tenantID string, req dto.CreateDollarPurchaseRequest, userID string) (*domain.DollarPurchase, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if req.AmountSent.LessThanOrEqual(decimal.Zero) || req.AmountReceived.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("%w: amounts must be positive", apperrors.ErrValidation)
	}
	if req.CapitalType == domain.CapitalOwn && req.SourceAccountID == "" {
		return nil, fmt.Errorf("%w: sourceAccountID is required for own capital", apperrors.ErrValidation)
	}
	if req.CapitalType == domain.CapitalInvestor && req.InvestorID == "" {
		return nil, fmt.Errorf("%w: investorID is required for investor capital", apperrors.ErrValidation)
	}

	now := time.Now().UTC()
	audit := domain.AuditFields{CreatedAt: now, CreatedBy: userID, LastUpdatedAt: now, LastUpdatedBy: userID}

	purchase := domain.DollarPurchase{
		PurchaseID:           uuid.NewString(),
		TenantID:             tenantID,
		Date:                 req.Date,
		ClientID:             req.ClientID,
		BrokerID:             req.BrokerID,
		ProviderID:           req.ProviderID,
		SourceAccountID:      req.SourceAccountID,
		DestinationAccountID: req.DestinationAccountID,
		AmountSent:           req.AmountSent,
		AmountReceived:       req.AmountReceived,
		BuyRate:              req.BuyRate,
		ReceivedRate:         req.ReceivedRate,
		SentCurrencyCode:     req.SentCurrencyCode,
		DeliveryCurrencyCode: req.DeliveryCurrencyCode,

		ProviderCommissionPct:    req.ProviderCommissionPct,
		ProviderCommissionAmount: pctOf(req.AmountSent, req.ProviderCommissionPct),
		BrokerCommissionPct:      req.BrokerCommissionPct,
		BrokerCommissionAmount:   pctOf(req.AmountSent, req.BrokerCommissionPct),
		PlatformCommissionPct:    req.PlatformCommissionPct,
		PlatformCommissionAmount: pctOf(req.AmountSent, req.PlatformCommissionPct),

		CapitalType: req.CapitalType,
		InvestorID:  req.InvestorID,
		AuditFields: audit,
	}
	if req.CapitalType == domain.CapitalInvestor {
		purchase.SourceAccountID = ""
	}

	tx, err := s.opRepo.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin unit of work: %w", err)
	}
	defer s.opRepo.Rollback(ctx, tx)

	purchase.Number, err = s.opRepo.NextPurchaseNumber(ctx, tx, tenantID)
	if err != nil {
		return nil, fmt.Errorf("failed to allocate purchase number: %w", err)
	}

	if req.CapitalType == domain.CapitalOwn {
		if err := s.debitAccountInTx(ctx, tx, tenantID, req.SourceAccountID, req.AmountSent, req.SentCurrencyCode, userID, now); err != nil {
			return nil, err
		}
	}

	if err := s.creditAccountInTx(ctx, tx, tenantID, req.DestinationAccountID, req.AmountReceived, req.DeliveryCurrencyCode, userID, now); err != nil {
		return nil, err
	}

	if err := s.opRepo.SavePurchaseInTx(ctx, tx, purchase); err != nil {
		return nil, fmt.Errorf("failed to save purchase: %w", err)
	}

	source := &domain.OperationRef{Type: domain.OpDollarPurchase, ID: purchase.PurchaseID}
	payables := []struct {
		amount decimal.Decimal
		entity domain.PartyRef
		label  string
	}{
		{purchase.ProviderCommissionAmount, domain.PartyRef{Type: domain.PartyProvider, ID: req.ProviderID}, "provider commission"},
		{purchase.BrokerCommissionAmount, domain.PartyRef{Type: domain.PartyBroker, ID: req.BrokerID}, "broker commission"},
		{purchase.PlatformCommissionAmount, domain.PartyRef{Type: domain.PartyPlatform, ID: domain.PlatformPartyID}, "platform commission"},
	}
	for _, p := range payables {
		if !p.amount.IsPositive() {
			continue
		}
		if p.entity.ID == "" {
			return nil, fmt.Errorf("%w: missing beneficiary for %s", apperrors.ErrValidation, p.label)
		}
		entry := domain.LedgerEntry{
			EntryID:        uuid.NewString(),
			TenantID:       tenantID,
			Type:           domain.EntryPayable,
			Status:         domain.EntryPending,
			OriginalAmount: p.amount,
			PaidAmount:     decimal.Zero,
			PendingAmount:  p.amount,
			CurrencyCode:   req.SentCurrencyCode,
			Entity:         p.entity,
			Source:         source,
			Description:    fmt.Sprintf("Purchase %s: %s", purchase.Number, p.label),
			AuditFields:    audit,
		}
		if err := s.ledgerRepo.SaveEntryInTx(ctx, tx, entry); err != nil {
			return nil, fmt.Errorf("failed to save %s entry: %w", p.label, err)
		}
	}

	if err := s.opRepo.Commit(ctx, tx); err != nil {
		return nil, fmt.Errorf("failed to commit purchase: %w", err)
	}

	logger.Info("Dollar purchase created",
		slog.String("purchase_id", purchase.PurchaseID),
		slog.String("number", purchase.Number))
	return &purchase, nil
}

// CreateInternalTransaction records an income or expense movement against a
// real account or a virtual counterparty. Account-backed expenses are subject
// to the sufficient-funds check.
func (s *operationsService) CreateInternalTransaction(ctx context.Context, tenantID string, req dto.CreateInternalTransactionRequest, userID string) (*domain.InternalTransaction, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if req.Amount.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("%w: amount must be positive", apperrors.ErrValidation)
	}
	hasAccount := req.AccountID != ""
	hasEntity := req.EntityType != nil && req.EntityID != nil && *req.EntityID != ""
	if hasAccount == hasEntity {
		return nil, fmt.Errorf("%w: exactly one of accountID or entity must be provided", apperrors.ErrValidation)
	}

	now := time.Now().UTC()
	txn := domain.InternalTransaction{
		InternalTxnID: uuid.NewString(),
		TenantID:      tenantID,
		Type:          req.Type,
		Amount:        req.Amount,
		CurrencyCode:  req.CurrencyCode,
		Category:      req.Category,
		Description:   req.Description,
		Date:          req.Date,
		AccountID:     req.AccountID,
		AuditFields:   domain.AuditFields{CreatedAt: now, CreatedBy: userID, LastUpdatedAt: now, LastUpdatedBy: userID},
	}
	if hasEntity {
		txn.Entity = &domain.PartyRef{Type: *req.EntityType, ID: *req.EntityID}
	}

	tx, err := s.opRepo.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin unit of work: %w", err)
	}
	defer s.opRepo.Rollback(ctx, tx)

	if hasAccount {
		delta := req.Amount
		if req.Type == domain.InternalExpense {
			delta = delta.Neg()
		}
		acc, err := s.accountRepo.FindAccountByIDForUpdate(ctx, tx, tenantID, req.AccountID)
		if err != nil {
			return nil, err
		}
		if acc.CurrencyCode != req.CurrencyCode {
			return nil, fmt.Errorf("%w: account currency %s does not match %s", apperrors.ErrValidation, acc.CurrencyCode, req.CurrencyCode)
		}
		if req.Type == domain.InternalExpense && acc.Balance.LessThan(req.Amount) {
			return nil, fmt.Errorf("%w: account %s balance %s below %s",
				apperrors.ErrInsufficientFunds, acc.AccountID, acc.Balance, req.Amount)
		}
		if err := s.accountRepo.AdjustAccountBalanceInTx(ctx, tx, acc.AccountID, delta, userID, now); err != nil {
			return nil, fmt.Errorf("failed to adjust account balance: %w", err)
		}
	}

	if err := s.opRepo.SaveInternalTransactionInTx(ctx, tx, txn); err != nil {
		return nil, fmt.Errorf("failed to save internal transaction: %w", err)
	}
	if err := s.opRepo.Commit(ctx, tx); err != nil {
		return nil, fmt.Errorf("failed to commit internal transaction: %w", err)
	}

	logger.Info("Internal transaction recorded",
		slog.String("internal_txn_id", txn.InternalTxnID),
		slog.String("type", string(txn.Type)))
	return &txn, nil
}

// ProcessDebtPayment settles the full pending amount of an entry from (or
// into) a real account.
func (s *operationsService) ProcessDebtPayment(ctx context.Context, tenantID, entryID, accountID, userID string) (*domain.LedgerEntry, error) {
	return s.settle(ctx, tenantID, entryID, accountID, nil, "", userID)
}

// ProcessLedgerPayment records a partial settlement against an entry.
func (s *operationsService) ProcessLedgerPayment(ctx context.Context, tenantID, entryID string, req dto.LedgerPaymentRequest, userID string) (*domain.LedgerEntry, error) {
	if req.Amount.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("%w: amount must be positive", apperrors.ErrValidation)
	}
	return s.settle(ctx, tenantID, entryID, req.AccountID, &req.Amount, req.Description, userID)
}

// settle applies one payment (the full pending amount when amount is nil)
// against an entry: payables move cash out of the account, receivables move
// cash in. The entry row stays locked until commit so concurrent payments
// serialize.
func (s *operationsService) settle(ctx context.Context, tenantID, entryID, accountID string, amount *decimal.Decimal, description, userID string) (*domain.LedgerEntry, error) {
	logger := middleware.GetLoggerFromCtx(ctx)
	now := time.Now().UTC()

	tx, err := s.ledgerRepo.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin unit of work: %w", err)
	}
	defer s.ledgerRepo.Rollback(ctx, tx)

	entry, err := s.ledgerRepo.FindEntryByIDForUpdate(ctx, tx, tenantID, entryID)
	if err != nil {
		return nil, err
	}

	paymentAmount := entry.PendingAmount
	if amount != nil {
		paymentAmount = *amount
	}

	updated, err := entry.ApplyPayment(paymentAmount)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrConflict, err)
	}

	account, err := s.accountRepo.FindAccountByIDForUpdate(ctx, tx, tenantID, accountID)
	if err != nil {
		return nil, err
	}
	if account.CurrencyCode != entry.CurrencyCode {
		return nil, fmt.Errorf("%w: account currency %s does not match entry currency %s",
			apperrors.ErrValidation, account.CurrencyCode, entry.CurrencyCode)
	}

	delta := paymentAmount
	if entry.Type == domain.EntryPayable {
		if account.Balance.LessThan(paymentAmount) {
			return nil, fmt.Errorf("%w: account %s balance %s below %s",
				apperrors.ErrInsufficientFunds, account.AccountID, account.Balance, paymentAmount)
		}
		delta = paymentAmount.Neg()
	}
	if err := s.accountRepo.AdjustAccountBalanceInTx(ctx, tx, account.AccountID, delta, userID, now); err != nil {
		return nil, fmt.Errorf("failed to adjust account balance: %w", err)
	}

	if err := s.ledgerRepo.UpdateEntrySettlementInTx(ctx, tx, updated); err != nil {
		return nil, fmt.Errorf("failed to update entry settlement: %w", err)
	}

	payment := domain.LedgerPayment{
		PaymentID:   uuid.NewString(),
		EntryID:     entry.EntryID,
		TenantID:    tenantID,
		Amount:      paymentAmount,
		AccountID:   accountID,
		UserID:      userID,
		PaymentDate: now,
		Description: description,
		AuditFields: domain.AuditFields{CreatedAt: now, CreatedBy: userID, LastUpdatedAt: now, LastUpdatedBy: userID},
	}
	if err := s.ledgerRepo.SavePaymentInTx(ctx, tx, payment); err != nil {
		return nil, fmt.Errorf("failed to save payment: %w", err)
	}

	if err := s.ledgerRepo.Commit(ctx, tx); err != nil {
		return nil, fmt.Errorf("failed to commit payment: %w", err)
	}

	logger.Info("Ledger entry payment processed",
		slog.String("entry_id", entry.EntryID),
		slog.String("status", string(updated.Status)))
	return &updated, nil
}

// AddBalanceToEntity books a payable obligation for a provider wallet or
// investor capital top-up. No account balance changes; the counterpart cash
// is assumed handled off-platform.
func (s *operationsService) AddBalanceToEntity(ctx context.Context, tenantID string, req dto.AddBalanceRequest, userID string) (*domain.LedgerEntry, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if req.Amount.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("%w: amount must be positive", apperrors.ErrValidation)
	}
	switch req.EntityType {
	case domain.PartyProvider:
		if _, err := s.partyRepo.FindPartyByID(ctx, tenantID, req.EntityID); err != nil {
			return nil, err
		}
	case domain.PartyInvestor:
		if _, err := s.investorRepo.FindInvestorByID(ctx, tenantID, req.EntityID); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("%w: entity type %q cannot receive balance", apperrors.ErrValidation, req.EntityType)
	}

	now := time.Now().UTC()
	audit := domain.AuditFields{CreatedAt: now, CreatedBy: userID, LastUpdatedAt: now, LastUpdatedBy: userID}
	entity := domain.PartyRef{Type: req.EntityType, ID: req.EntityID}

	entry := domain.LedgerEntry{
		EntryID:        uuid.NewString(),
		TenantID:       tenantID,
		Type:           domain.EntryPayable,
		Status:         domain.EntryPending,
		OriginalAmount: req.Amount,
		PaidAmount:     decimal.Zero,
		PendingAmount:  req.Amount,
		CurrencyCode:   req.CurrencyCode,
		Entity:         entity,
		Description:    req.Description,
		AuditFields:    audit,
	}

	tx, err := s.ledgerRepo.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin unit of work: %w", err)
	}
	defer s.ledgerRepo.Rollback(ctx, tx)

	if err := s.ledgerRepo.SaveEntryInTx(ctx, tx, entry); err != nil {
		return nil, fmt.Errorf("failed to save top-up entry: %w", err)
	}

	topUp := domain.InternalTransaction{
		InternalTxnID: uuid.NewString(),
		TenantID:      tenantID,
		Type:          domain.InternalIncome,
		Amount:        req.Amount,
		CurrencyCode:  req.CurrencyCode,
		Category:      "balance_top_up",
		Description:   req.Description,
		Date:          now,
		Entity:        &entity,
		AuditFields:   audit,
	}
	if err := s.opRepo.SaveInternalTransactionInTx(ctx, tx, topUp); err != nil {
		return nil, fmt.Errorf("failed to record top-up movement: %w", err)
	}

	if err := s.ledgerRepo.Commit(ctx, tx); err != nil {
		return nil, fmt.Errorf("failed to commit top-up: %w", err)
	}

	logger.Info("Balance added to entity",
		slog.String("entity", entity.String()),
		slog.String("amount", req.Amount.String()))
	return &entry, nil
}

// GetExchangeByID retrieves one exchange operation.
func (s *operationsService) GetExchangeByID(ctx context.Context, tenantID, exchangeID string) (*domain.CurrencyExchange, error) {
	return s.opRepo.FindExchangeByID(ctx, tenantID, exchangeID)
}

// ListExchanges returns a page of exchange operations, newest first.
func (s *operationsService) ListExchanges(ctx context.Context, tenantID string, params dto.ListParams) ([]domain.CurrencyExchange, error) {
	return s.opRepo.ListExchanges(ctx, tenantID, params.Limit, params.Offset)
}

// GetPurchaseByID retrieves one dollar purchase.
func (s *operationsService) GetPurchaseByID(ctx context.Context, tenantID, purchaseID string) (*domain.DollarPurchase, error) {
	return s.opRepo.FindPurchaseByID(ctx, tenantID, purchaseID)
}

// ListPurchases returns a page of dollar purchases, newest first.
func (s *operationsService) ListPurchases(ctx context.Context, tenantID string, params dto.ListParams) ([]domain.DollarPurchase, error) {
	return s.opRepo.ListPurchases(ctx, tenantID, params.Limit, params.Offset)
}

// ListInternalTransactions returns a page of internal movements.
func (s *operationsService) ListInternalTransactions(ctx context.Context, tenantID string, params dto.ListParams) ([]domain.InternalTransaction, error) {
	return s.opRepo.ListInternalTransactions(ctx, tenantID, params.Limit, params.Offset)
}

// debitAccountInTx locks the account, verifies currency and funds, and
// applies a negative delta.
func (s *operationsService) debitAccountInTx(ctx context.Context, tx pgx.Tx, tenantID, accountID string, amount decimal.Decimal, currencyCode, userID string, now time.Time) error {
	acc, err := s.accountRepo.FindAccountByIDForUpdate(ctx, tx, tenantID, accountID)
	if err != nil {
		return err
	}
	if acc.CurrencyCode != currencyCode {
		return fmt.Errorf("%w: account currency %s does not match %s", apperrors.ErrValidation, acc.CurrencyCode, currencyCode)
	}
	if acc.Balance.LessThan(amount) {
		return fmt.Errorf("%w: account %s balance %s below %s",
			apperrors.ErrInsufficientFunds, acc.AccountID, acc.Balance, amount)
	}
	if err := s.accountRepo.AdjustAccountBalanceInTx(ctx, tx, acc.AccountID, amount.Neg(), userID, now); err != nil {
		return fmt.Errorf("failed to debit account %s: %w", acc.AccountID, err)
	}
	return nil
}

// creditAccountInTx locks the account, verifies currency, and applies a
// positive delta.
func (s *operationsService) creditAccountInTx(ctx context.Context, tx pgx.Tx, tenantID, accountID string, amount decimal.Decimal, currencyCode, userID string, now time.Time) error {
	acc, err := s.accountRepo.FindAccountByIDForUpdate(ctx, tx, tenantID, accountID)
	if err != nil {
		return err
	}
	if acc.CurrencyCode != currencyCode {
		return fmt.Errorf("%w: account currency %s does not match %s", apperrors.ErrValidation, acc.CurrencyCode, currencyCode)
	}
	if err := s.accountRepo.AdjustAccountBalanceInTx(ctx, tx, acc.AccountID, amount, userID, now); err != nil {
		return fmt.Errorf("failed to credit account %s: %w", acc.AccountID, err)
	}
	return nil
}
