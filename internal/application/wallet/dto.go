package wallet

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/dispatchiq/backend/internal/domain/shared"
)

// PostInput contains the input for a ledger posting (credit or debit)
type PostInput struct {
	CompanyID    uuid.UUID
	TechnicianID uuid.UUID
	Amount       decimal.Decimal
	Type         string
	Reference    string
	Description  string
}

// PayoutInput contains the input for a payout request
type PayoutInput struct {
	CompanyID      uuid.UUID
	TechnicianID   uuid.UUID
	Amount         decimal.Decimal
	PayoutMethodID *uuid.UUID
}

// StatementInput contains filters for listing ledger entries
type StatementInput struct {
	CompanyID    uuid.UUID
	TechnicianID uuid.UUID
	Type         string
	Filter       shared.Filter
}

// AccountInfo is the wallet account view returned by wallet operations
type AccountInfo struct {
	ID           uuid.UUID
	TechnicianID uuid.UUID
	Balance      decimal.Decimal
	Currency     string
	Frozen       bool
}

// TransactionInfo is the ledger entry view returned by wallet operations
type TransactionInfo struct {
	ID            uuid.UUID
	AccountID     uuid.UUID
	Type          string
	Amount        decimal.Decimal
	BalanceBefore decimal.Decimal
	BalanceAfter  decimal.Decimal
	Reference     string
	Description   string
	CreatedAt     time.Time
}

// PostResult carries the account state and the ledger entry after a posting
type PostResult struct {
	Account     AccountInfo
	Transaction TransactionInfo
}

// CreatePayoutMethodInput contains the input for registering a payout method
type CreatePayoutMethodInput struct {
	CompanyID    uuid.UUID
	TechnicianID uuid.UUID
	Type         string
	DisplayName  string
	MaskedNumber string
	MakeDefault  bool
}

// PayoutMethodInfo is the payout method view returned by wallet operations
type PayoutMethodInfo struct {
	ID           uuid.UUID
	TechnicianID uuid.UUID
	Type         string
	DisplayName  string
	MaskedNumber string
	IsDefault    bool
}
