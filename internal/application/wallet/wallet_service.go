package wallet

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/dispatchiq/backend/internal/domain/shared"
	"github.com/dispatchiq/backend/internal/domain/wallet"
	"github.com/dispatchiq/backend/internal/domain/workforce"
)

// Service manages technician wallets: the ledger, payout requests and
// payout methods.
type Service struct {
	accountRepo     wallet.AccountRepository
	transactionRepo wallet.TransactionRepository
	payoutRepo      wallet.PayoutMethodRepository
	technicianRepo  workforce.TechnicianRepository
	events          shared.EventPublisher
	logger          *zap.Logger
}

// NewService creates a new wallet service
func NewService(
	accountRepo wallet.AccountRepository,
	transactionRepo wallet.TransactionRepository,
	payoutRepo wallet.PayoutMethodRepository,
	technicianRepo workforce.TechnicianRepository,
	events shared.EventPublisher,
	logger *zap.Logger,
) *Service {
	return &Service{
		accountRepo:     accountRepo,
		transactionRepo: transactionRepo,
		payoutRepo:      payoutRepo,
		technicianRepo:  technicianRepo,
		events:          events,
		logger:          logger,
	}
}

// GetAccount returns the technician's wallet, opening one on first use
func (s *Service) GetAccount(ctx context.Context, companyID, technicianID uuid.UUID) (*AccountInfo, error) {
	account, err := s.getOrCreateAccount(ctx, companyID, technicianID)
	if err != nil {
		return nil, err
	}
	info := toAccountInfo(account)
	return &info, nil
}

// Credit adds funds to a technician's wallet
func (s *Service) Credit(ctx context.Context, input PostInput) (*PostResult, error) {
	txType, err := parsePostingType(input.Type, wallet.TxCredit)
	if err != nil {
		return nil, err
	}
	return s.post(ctx, input, func(account *wallet.Account) (*wallet.Transaction, error) {
		return account.Credit(input.Amount, txType, input.Reference, input.Description)
	})
}

// Debit removes funds from a technician's wallet. Fails when the
// balance would go negative.
func (s *Service) Debit(ctx context.Context, input PostInput) (*PostResult, error) {
	txType, err := parsePostingType(input.Type, wallet.TxDebit)
	if err != nil {
		return nil, err
	}
	return s.post(ctx, input, func(account *wallet.Account) (*wallet.Transaction, error) {
		return account.Debit(input.Amount, txType, input.Reference, input.Description)
	})
}

// RequestPayout debits the wallet and records a payout ledger entry
func (s *Service) RequestPayout(ctx context.Context, input PayoutInput) (*PostResult, error) {
	description := "Payout request"
	if input.PayoutMethodID != nil {
		method, err := s.payoutRepo.FindByID(ctx, input.CompanyID, *input.PayoutMethodID)
		if err != nil {
			if errors.Is(err, shared.ErrNotFound) {
				return nil, shared.NewDomainError("PAYOUT_METHOD_NOT_FOUND", "Payout method not found")
			}
			return nil, err
		}
		if method.TechnicianID != input.TechnicianID {
			return nil, shared.NewDomainError("PAYOUT_METHOD_NOT_FOUND", "Payout method not found")
		}
		description = "Payout to " + method.DisplayName
	}

	return s.post(ctx, PostInput{
		CompanyID:    input.CompanyID,
		TechnicianID: input.TechnicianID,
		Amount:       input.Amount,
	}, func(account *wallet.Account) (*wallet.Transaction, error) {
		return account.Debit(input.Amount, wallet.TxPayout, "", description)
	})
}

// Statement returns the technician's ledger entries, newest first
func (s *Service) Statement(ctx context.Context, input StatementInput) (shared.Paginated[TransactionInfo], error) {
	account, err := s.getOrCreateAccount(ctx, input.CompanyID, input.TechnicianID)
	if err != nil {
		return shared.Paginated[TransactionInfo]{}, err
	}

	filter := wallet.NewTransactionFilter(input.CompanyID)
	filter.Filter = input.Filter
	filter.AccountID = &account.ID
	if input.Type != "" {
		txType := wallet.TransactionType(input.Type)
		switch txType {
		case wallet.TxCredit, wallet.TxDebit, wallet.TxPayout, wallet.TxAdjustment:
		default:
			return shared.Paginated[TransactionInfo]{}, shared.NewDomainError("INVALID_TRANSACTION_TYPE",
				"Type must be credit, debit, payout or adjustment")
		}
		filter.Type = &txType
	}

	page, err := s.transactionRepo.List(ctx, filter)
	if err != nil {
		s.logger.Error("Failed to list wallet transactions", zap.Error(err))
		return shared.Paginated[TransactionInfo]{}, shared.NewDomainError("INTERNAL_ERROR", "Failed to load statement")
	}

	items := make([]TransactionInfo, 0, len(page.Items))
	for _, tx := range page.Items {
		items = append(items, toTransactionInfo(tx))
	}
	return shared.NewPaginated(items, page.Total, page.Page, page.PageSize), nil
}

// CreatePayoutMethod registers a payout destination for a technician
func (s *Service) CreatePayoutMethod(ctx context.Context, input CreatePayoutMethodInput) (*PayoutMethodInfo, error) {
	if err := s.checkTechnician(ctx, input.CompanyID, input.TechnicianID); err != nil {
		return nil, err
	}

	method, err := wallet.NewPayoutMethod(input.CompanyID, input.TechnicianID,
		wallet.PayoutMethodType(input.Type), input.DisplayName, input.MaskedNumber)
	if err != nil {
		return nil, err
	}

	existing, err := s.payoutRepo.ListByTechnician(ctx, input.CompanyID, input.TechnicianID)
	if err != nil {
		return nil, err
	}
	// The first method becomes the default automatically
	if input.MakeDefault || len(existing) == 0 {
		if err := s.payoutRepo.ClearDefaults(ctx, input.CompanyID, input.TechnicianID); err != nil {
			return nil, err
		}
		method.MarkDefault()
	}

	if err := s.payoutRepo.Save(ctx, method); err != nil {
		s.logger.Error("Failed to save payout method", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to create payout method")
	}

	info := toPayoutMethodInfo(method)
	return &info, nil
}

// ListPayoutMethods returns a technician's payout destinations
func (s *Service) ListPayoutMethods(ctx context.Context, companyID, technicianID uuid.UUID) ([]PayoutMethodInfo, error) {
	methods, err := s.payoutRepo.ListByTechnician(ctx, companyID, technicianID)
	if err != nil {
		s.logger.Error("Failed to list payout methods", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to list payout methods")
	}

	items := make([]PayoutMethodInfo, 0, len(methods))
	for _, method := range methods {
		items = append(items, toPayoutMethodInfo(method))
	}
	return items, nil
}

// SetDefaultPayoutMethod makes the given method the technician's default
func (s *Service) SetDefaultPayoutMethod(ctx context.Context, companyID, methodID uuid.UUID) (*PayoutMethodInfo, error) {
	method, err := s.payoutRepo.FindByID(ctx, companyID, methodID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("PAYOUT_METHOD_NOT_FOUND", "Payout method not found")
		}
		return nil, err
	}

	if err := s.payoutRepo.ClearDefaults(ctx, companyID, method.TechnicianID); err != nil {
		return nil, err
	}
	method.MarkDefault()
	if err := s.payoutRepo.Save(ctx, method); err != nil {
		s.logger.Error("Failed to save payout method", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to update payout method")
	}

	info := toPayoutMethodInfo(method)
	return &info, nil
}

// DeletePayoutMethod removes a payout destination
func (s *Service) DeletePayoutMethod(ctx context.Context, companyID, methodID uuid.UUID) error {
	if err := s.payoutRepo.Delete(ctx, companyID, methodID); err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return shared.NewDomainError("PAYOUT_METHOD_NOT_FOUND", "Payout method not found")
		}
		return err
	}
	return nil
}

// post runs a balance mutation and persists the account and ledger
// entry in one atomic write. The account save carries the optimistic
// version check, so a concurrent posting loses, rolls back the ledger
// entry and surfaces as a conflict.
func (s *Service) post(ctx context.Context, input PostInput, op func(*wallet.Account) (*wallet.Transaction, error)) (*PostResult, error) {
	account, err := s.getOrCreateAccount(ctx, input.CompanyID, input.TechnicianID)
	if err != nil {
		return nil, err
	}

	tx, err := op(account)
	if err != nil {
		if errors.Is(err, shared.ErrInsufficientBalance) {
			return nil, shared.NewDomainError("INSUFFICIENT_BALANCE", "Wallet balance is insufficient")
		}
		return nil, err
	}

	if err := s.accountRepo.SavePosting(ctx, account, tx); err != nil {
		if errors.Is(err, shared.ErrConcurrencyConflict) {
			return nil, shared.NewDomainError("CONCURRENCY_CONFLICT", "Wallet was modified concurrently, retry the operation")
		}
		s.logger.Error("Failed to save wallet posting", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to post to wallet")
	}
	s.publishEvents(ctx, account)

	s.logger.Info("Wallet posting",
		zap.String("account_id", account.ID.String()),
		zap.String("type", string(tx.Type)),
		zap.String("amount", tx.Amount.String()),
		zap.String("balance", account.Balance.String()))

	return &PostResult{
		Account:     toAccountInfo(account),
		Transaction: toTransactionInfo(tx),
	}, nil
}

func (s *Service) getOrCreateAccount(ctx context.Context, companyID, technicianID uuid.UUID) (*wallet.Account, error) {
	account, err := s.accountRepo.FindByTechnician(ctx, companyID, technicianID)
	if err == nil {
		return account, nil
	}
	if !errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}

	if err := s.checkTechnician(ctx, companyID, technicianID); err != nil {
		return nil, err
	}
	account = wallet.NewAccount(companyID, technicianID)
	if err := s.accountRepo.Save(ctx, account); err != nil {
		s.logger.Error("Failed to open wallet account", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to open wallet")
	}
	s.logger.Info("Wallet account opened",
		zap.String("account_id", account.ID.String()),
		zap.String("technician_id", technicianID.String()))
	return account, nil
}

func (s *Service) checkTechnician(ctx context.Context, companyID, technicianID uuid.UUID) error {
	if _, err := s.technicianRepo.FindByID(ctx, companyID, technicianID); err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return shared.NewDomainError("TECHNICIAN_NOT_FOUND", "Technician not found")
		}
		return err
	}
	return nil
}

func (s *Service) publishEvents(ctx context.Context, account *wallet.Account) {
	events := account.GetDomainEvents()
	if len(events) == 0 {
		return
	}
	if err := s.events.Publish(ctx, events...); err != nil {
		s.logger.Warn("Failed to publish wallet events", zap.Error(err))
	}
	account.ClearDomainEvents()
}

// parsePostingType validates an optional posting type against the
// ledger types, falling back to the operation's natural type.
func parsePostingType(value string, fallback wallet.TransactionType) (wallet.TransactionType, error) {
	if value == "" {
		return fallback, nil
	}
	txType := wallet.TransactionType(value)
	switch txType {
	case wallet.TxCredit, wallet.TxDebit, wallet.TxPayout, wallet.TxAdjustment:
		return txType, nil
	default:
		return "", shared.NewDomainError("INVALID_TRANSACTION_TYPE",
			"Type must be credit, debit, payout or adjustment")
	}
}

func toAccountInfo(account *wallet.Account) AccountInfo {
	return AccountInfo{
		ID:           account.ID,
		TechnicianID: account.TechnicianID,
		Balance:      account.Balance,
		Currency:     account.Currency,
		Frozen:       account.Frozen,
	}
}

func toTransactionInfo(tx *wallet.Transaction) TransactionInfo {
	return TransactionInfo{
		ID:            tx.ID,
		AccountID:     tx.AccountID,
		Type:          string(tx.Type),
		Amount:        tx.Amount,
		BalanceBefore: tx.BalanceBefore,
		BalanceAfter:  tx.BalanceAfter,
		Reference:     tx.Reference,
		Description:   tx.Description,
		CreatedAt:     tx.CreatedAt,
	}
}

func toPayoutMethodInfo(method *wallet.PayoutMethod) PayoutMethodInfo {
	return PayoutMethodInfo{
		ID:           method.ID,
		TechnicianID: method.TechnicianID,
		Type:         string(method.Type),
		DisplayName:  method.DisplayName,
		MaskedNumber: method.MaskedNumber,
		IsDefault:    method.IsDefault,
	}
}
