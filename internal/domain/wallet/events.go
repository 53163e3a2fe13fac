package wallet

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/dispatchiq/backend/internal/domain/shared"
)

// Event types for the wallet context
const (
	EventWalletCredited = "wallet.credited"
)

// WalletCreditedEvent is published when funds are added to a wallet
type WalletCreditedEvent struct {
	shared.BaseDomainEvent
	TechnicianID uuid.UUID       `json:"technician_id"`
	Amount       decimal.Decimal `json:"amount"`
	Balance      decimal.Decimal `json:"balance"`
}

// NewWalletCreditedEvent creates a wallet credited event
func NewWalletCreditedEvent(accountID, companyID, technicianID uuid.UUID, amount, balance decimal.Decimal) *WalletCreditedEvent {
	return &WalletCreditedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventWalletCredited, "WalletAccount", accountID, companyID),
		TechnicianID:    technicianID,
		Amount:          amount,
		Balance:         balance,
	}
}
