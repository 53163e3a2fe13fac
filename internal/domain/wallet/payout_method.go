package wallet

import (
	"strings"

	"github.com/google/uuid"

	"github.com/dispatchiq/backend/internal/domain/shared"
)

// PayoutMethodType is how a technician receives payouts
type PayoutMethodType string

const (
	PayoutBankAccount PayoutMethodType = "bank_account"
	PayoutDebitCard   PayoutMethodType = "debit_card"
	PayoutCheck       PayoutMethodType = "check"
)

// PayoutMethod stores where a technician's payouts go. Only a masked
// identifier is kept, never full account numbers.
type PayoutMethod struct {
	shared.BaseEntity
	CompanyID    uuid.UUID
	TechnicianID uuid.UUID
	Type         PayoutMethodType
	DisplayName  string
	MaskedNumber string
	IsDefault    bool
}

// NewPayoutMethod registers a payout destination for a technician
func NewPayoutMethod(companyID, technicianID uuid.UUID, methodType PayoutMethodType, displayName, maskedNumber string) (*PayoutMethod, error) {
	switch methodType {
	case PayoutBankAccount, PayoutDebitCard, PayoutCheck:
	default:
		return nil, shared.NewDomainError("INVALID_PAYOUT_METHOD", "Payout method must be bank_account, debit_card or check")
	}
	if displayName = strings.TrimSpace(displayName); displayName == "" {
		return nil, shared.NewDomainError("INVALID_INPUT", "Display name is required")
	}
	return &PayoutMethod{
		BaseEntity:   shared.NewBaseEntity(),
		CompanyID:    companyID,
		TechnicianID: technicianID,
		Type:         methodType,
		DisplayName:  displayName,
		MaskedNumber: strings.TrimSpace(maskedNumber),
	}, nil
}

// MarkDefault makes this the default payout destination
func (m *PayoutMethod) MarkDefault() {
	m.IsDefault = true
	m.Touch()
}

// ClearDefault removes the default flag
func (m *PayoutMethod) ClearDefault() {
	m.IsDefault = false
	m.Touch()
}
