package wallet

import (
	"context"

	"github.com/google/uuid"

	"github.com/dispatchiq/backend/internal/domain/shared"
)

// TransactionFilter defines filtering options for ledger queries
type TransactionFilter struct {
	shared.Filter
	CompanyID uuid.UUID
	AccountID *uuid.UUID
	Type      *TransactionType
}

// NewTransactionFilter creates a transaction filter for a company
func NewTransactionFilter(companyID uuid.UUID) TransactionFilter {
	return TransactionFilter{Filter: shared.DefaultFilter(), CompanyID: companyID}
}

// WithAccount filters by wallet account
func (f TransactionFilter) WithAccount(accountID uuid.UUID) TransactionFilter {
	f.AccountID = &accountID
	return f
}

// WithType filters by transaction type
func (f TransactionFilter) WithType(txType TransactionType) TransactionFilter {
	f.Type = &txType
	return f
}

// AccountRepository defines persistence operations for wallet accounts
type AccountRepository interface {
	Save(ctx context.Context, account *Account) error
	// SavePosting persists a balance mutation and its ledger entry
	// atomically. Either both land or neither does.
	SavePosting(ctx context.Context, account *Account, entry *Transaction) error
	FindByID(ctx context.Context, companyID, id uuid.UUID) (*Account, error)
	FindByTechnician(ctx context.Context, companyID, technicianID uuid.UUID) (*Account, error)
	Delete(ctx context.Context, companyID, id uuid.UUID) error
}

// TransactionRepository defines persistence operations for ledger entries.
// Transactions are append only; there is no update or delete.
type TransactionRepository interface {
	Save(ctx context.Context, transaction *Transaction) error
	FindByID(ctx context.Context, companyID, id uuid.UUID) (*Transaction, error)
	List(ctx context.Context, filter TransactionFilter) (shared.Paginated[*Transaction], error)
	FindLatestByAccount(ctx context.Context, accountID uuid.UUID) (*Transaction, error)
}

// PayoutMethodRepository defines persistence operations for payout methods
type PayoutMethodRepository interface {
	Save(ctx context.Context, method *PayoutMethod) error
	FindByID(ctx context.Context, companyID, id uuid.UUID) (*PayoutMethod, error)
	ListByTechnician(ctx context.Context, companyID, technicianID uuid.UUID) ([]*PayoutMethod, error)
	ClearDefaults(ctx context.Context, companyID, technicianID uuid.UUID) error
	Delete(ctx context.Context, companyID, id uuid.UUID) error
}
