package models

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/dispatchiq/backend/internal/domain/wallet"
)

// WalletAccountModel is the persistence model for wallet accounts
type WalletAccountModel struct {
	CompanyAggregateModel
	TechnicianID uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_wallets_company_technician,priority:2"`
	Balance      decimal.Decimal `gorm:"type:decimal(14,2);not null;default:0"`
	Currency     string          `gorm:"type:varchar(8);not null;default:'USD'"`
	Frozen       bool            `gorm:"not null;default:false"`
}

// TableName returns the table name for WalletAccountModel
func (WalletAccountModel) TableName() string {
	return "wallet_accounts"
}

// ToDomain converts the model to a domain Account
func (m *WalletAccountModel) ToDomain() *wallet.Account {
	account := &wallet.Account{
		TechnicianID: m.TechnicianID,
		Balance:      m.Balance,
		Currency:     m.Currency,
		Frozen:       m.Frozen,
	}
	m.PopulateCompanyAggregateRoot(&account.CompanyAggregateRoot)
	return account
}

// FromDomain populates the model from a domain Account
func (m *WalletAccountModel) FromDomain(account *wallet.Account) {
	m.FromDomainCompanyAggregateRoot(account.CompanyAggregateRoot)
	m.TechnicianID = account.TechnicianID
	m.Balance = account.Balance
	m.Currency = account.Currency
	m.Frozen = account.Frozen
}

// WalletTransactionModel is the persistence model for ledger entries
type WalletTransactionModel struct {
	BaseModel
	AccountID     uuid.UUID       `gorm:"type:uuid;not null;index"`
	CompanyID     uuid.UUID       `gorm:"type:uuid;not null;index"`
	Type          string          `gorm:"type:varchar(16);not null"`
	Amount        decimal.Decimal `gorm:"type:decimal(14,2);not null"`
	BalanceBefore decimal.Decimal `gorm:"type:decimal(14,2);not null"`
	BalanceAfter  decimal.Decimal `gorm:"type:decimal(14,2);not null"`
	Reference     string          `gorm:"type:varchar(255);index"`
	Description   string          `gorm:"type:text"`
}

// TableName returns the table name for WalletTransactionModel
func (WalletTransactionModel) TableName() string {
	return "wallet_transactions"
}

// ToDomain converts the model to a domain Transaction
func (m *WalletTransactionModel) ToDomain() *wallet.Transaction {
	return &wallet.Transaction{
		BaseEntity:    m.BaseModel.ToDomain(),
		AccountID:     m.AccountID,
		CompanyID:     m.CompanyID,
		Type:          wallet.TransactionType(m.Type),
		Amount:        m.Amount,
		BalanceBefore: m.BalanceBefore,
		BalanceAfter:  m.BalanceAfter,
		Reference:     m.Reference,
		Description:   m.Description,
	}
}

// FromDomain populates the model from a domain Transaction
func (m *WalletTransactionModel) FromDomain(tx *wallet.Transaction) {
	m.FromDomainBaseEntity(tx.BaseEntity)
	m.AccountID = tx.AccountID
	m.CompanyID = tx.CompanyID
	m.Type = string(tx.Type)
	m.Amount = tx.Amount
	m.BalanceBefore = tx.BalanceBefore
	m.BalanceAfter = tx.BalanceAfter
	m.Reference = tx.Reference
	m.Description = tx.Description
}

// PayoutMethodModel is the persistence model for payout methods
type PayoutMethodModel struct {
	BaseModel
	CompanyID    uuid.UUID `gorm:"type:uuid;not null;index"`
	TechnicianID uuid.UUID `gorm:"type:uuid;not null;index"`
	Type         string    `gorm:"type:varchar(32);not null"`
	DisplayName  string    `gorm:"type:varchar(255);not null"`
	MaskedNumber string    `gorm:"type:varchar(32)"`
	IsDefault    bool      `gorm:"not null;default:false"`
}

// TableName returns the table name for PayoutMethodModel
func (PayoutMethodModel) TableName() string {
	return "payout_methods"
}

// ToDomain converts the model to a domain PayoutMethod
func (m *PayoutMethodModel) ToDomain() *wallet.PayoutMethod {
	return &wallet.PayoutMethod{
		BaseEntity:   m.BaseModel.ToDomain(),
		CompanyID:    m.CompanyID,
		TechnicianID: m.TechnicianID,
		Type:         wallet.PayoutMethodType(m.Type),
		DisplayName:  m.DisplayName,
		MaskedNumber: m.MaskedNumber,
		IsDefault:    m.IsDefault,
	}
}

// FromDomain populates the model from a domain PayoutMethod
func (m *PayoutMethodModel) FromDomain(method *wallet.PayoutMethod) {
	m.FromDomainBaseEntity(method.BaseEntity)
	m.CompanyID = method.CompanyID
	m.TechnicianID = method.TechnicianID
	m.Type = string(method.Type)
	m.DisplayName = method.DisplayName
	m.MaskedNumber = method.MaskedNumber
	m.IsDefault = method.IsDefault
}
