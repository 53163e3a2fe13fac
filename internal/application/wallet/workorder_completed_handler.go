package wallet

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/dispatchiq/backend/internal/domain/shared"
	"github.com/dispatchiq/backend/internal/domain/wallet"
	"github.com/dispatchiq/backend/internal/domain/workorder"
)

// WorkOrderCompletedHandler credits the assigned technician's wallet
// when a work order completes. The credited amount is the work order
// payout scaled by the technician's merit percent.
type WorkOrderCompletedHandler struct {
	service *Service
	logger  *zap.Logger
}

// NewWorkOrderCompletedHandler creates a handler for work order completion events
func NewWorkOrderCompletedHandler(service *Service, logger *zap.Logger) *WorkOrderCompletedHandler {
	return &WorkOrderCompletedHandler{service: service, logger: logger}
}

// EventTypes returns the event types this handler subscribes to
func (h *WorkOrderCompletedHandler) EventTypes() []string {
	return []string{workorder.EventWorkOrderCompleted}
}

// Handle credits the technician for a completed work order
func (h *WorkOrderCompletedHandler) Handle(ctx context.Context, event shared.DomainEvent) error {
	completed, ok := event.(*workorder.WorkOrderCompletedEvent)
	if !ok {
		return nil
	}
	if !completed.PayoutAmount.IsPositive() {
		h.logger.Info("Work order completed without payout",
			zap.String("work_order_id", completed.AggregateID().String()))
		return nil
	}

	companyID := completed.CompanyID()
	technician, err := h.service.technicianRepo.FindByID(ctx, companyID, completed.TechnicianID)
	if err != nil {
		return fmt.Errorf("load technician %s: %w", completed.TechnicianID, err)
	}

	merit := decimal.NewFromInt(int64(technician.MeritPercent))
	amount := completed.PayoutAmount.Mul(merit).Div(decimal.NewFromInt(100)).Round(2)
	if !amount.IsPositive() {
		return nil
	}

	result, err := h.service.post(ctx, PostInput{
		CompanyID:    companyID,
		TechnicianID: completed.TechnicianID,
	}, func(account *wallet.Account) (*wallet.Transaction, error) {
		return account.Credit(amount, wallet.TxCredit,
			completed.AggregateID().String(), "Completed work order payout")
	})
	if err != nil {
		return fmt.Errorf("credit technician %s: %w", completed.TechnicianID, err)
	}

	h.logger.Info("Work order payout credited",
		zap.String("work_order_id", completed.AggregateID().String()),
		zap.String("technician_id", completed.TechnicianID.String()),
		zap.String("amount", amount.String()),
		zap.String("balance", result.Account.Balance.String()))
	return nil
}
