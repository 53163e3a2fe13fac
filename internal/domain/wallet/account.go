package wallet

import (
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/dispatchiq/backend/internal/domain/shared"
)

// TransactionType classifies a wallet ledger entry
type TransactionType string

const (
	TxCredit     TransactionType = "credit"
	TxDebit      TransactionType = "debit"
	TxPayout     TransactionType = "payout"
	TxAdjustment TransactionType = "adjustment"
)

// Account is a technician's earnings wallet. Every balance change is
// recorded as an immutable Transaction carrying the balance before and
// after; the account balance must always equal the last transaction's
// BalanceAfter.
type Account struct {
	shared.CompanyAggregateRoot
	TechnicianID uuid.UUID
	Balance      decimal.Decimal
	Currency     string
	Frozen       bool
}

// NewAccount opens a wallet for a technician with zero balance
func NewAccount(companyID, technicianID uuid.UUID) *Account {
	return &Account{
		CompanyAggregateRoot: shared.NewCompanyAggregateRoot(companyID),
		TechnicianID:         technicianID,
		Balance:              decimal.Zero,
		Currency:             "USD",
	}
}

// Credit adds funds and returns the ledger entry
func (a *Account) Credit(amount decimal.Decimal, txType TransactionType, reference, description string) (*Transaction, error) {
	if a.Frozen {
		return nil, shared.NewDomainError("ACCOUNT_FROZEN", "Wallet account is frozen")
	}
	if !amount.IsPositive() {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Credit amount must be positive")
	}
	before := a.Balance
	a.Balance = a.Balance.Add(amount)
	a.Touch()
	a.IncrementVersion()

	tx := newTransaction(a, txType, amount, before, a.Balance, reference, description)
	a.AddDomainEvent(NewWalletCreditedEvent(a.ID, a.CompanyID, a.TechnicianID, amount, a.Balance))
	return tx, nil
}

// Debit removes funds and returns the ledger entry. The balance can
// never go negative.
func (a *Account) Debit(amount decimal.Decimal, txType TransactionType, reference, description string) (*Transaction, error) {
	if a.Frozen {
		return nil, shared.NewDomainError("ACCOUNT_FROZEN", "Wallet account is frozen")
	}
	if !amount.IsPositive() {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Debit amount must be positive")
	}
	if a.Balance.LessThan(amount) {
		return nil, shared.ErrInsufficientBalance
	}
	before := a.Balance
	a.Balance = a.Balance.Sub(amount)
	a.Touch()
	a.IncrementVersion()

	tx := newTransaction(a, txType, amount.Neg(), before, a.Balance, reference, description)
	return tx, nil
}

// Freeze blocks all balance changes
func (a *Account) Freeze() {
	a.Frozen = true
	a.Touch()
	a.IncrementVersion()
}

// Unfreeze re-enables balance changes
func (a *Account) Unfreeze() {
	a.Frozen = false
	a.Touch()
	a.IncrementVersion()
}

// Transaction is an immutable wallet ledger entry. Amount is signed:
// positive for credits, negative for debits.
type Transaction struct {
	shared.BaseEntity
	AccountID     uuid.UUID
	CompanyID     uuid.UUID
	Type          TransactionType
	Amount        decimal.Decimal
	BalanceBefore decimal.Decimal
	BalanceAfter  decimal.Decimal
	Reference     string
	Description   string
}

func newTransaction(a *Account, txType TransactionType, amount, before, after decimal.Decimal, reference, description string) *Transaction {
	return &Transaction{
		BaseEntity:    shared.NewBaseEntity(),
		AccountID:     a.ID,
		CompanyID:     a.CompanyID,
		Type:          txType,
		Amount:        amount,
		BalanceBefore: before,
		BalanceAfter:  after,
		Reference:     strings.TrimSpace(reference),
		Description:   strings.TrimSpace(description),
	}
}
