package handler

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/dispatchiq/backend/internal/application/wallet"
	"github.com/dispatchiq/backend/internal/interfaces/http/dto"
)

// WalletHandler handles technician wallet endpoints
type WalletHandler struct {
	BaseHandler
	walletService *wallet.Service
}

// NewWalletHandler creates a new WalletHandler
func NewWalletHandler(walletService *wallet.Service) *WalletHandler {
	return &WalletHandler{walletService: walletService}
}

// WalletAccountResponse is the wallet account view returned by the API
type WalletAccountResponse struct {
	ID           string `json:"id"`
	TechnicianID string `json:"technician_id"`
	Balance      string `json:"balance"`
	Currency     string `json:"currency"`
	Frozen       bool   `json:"frozen"`
}

// WalletTransactionResponse is the ledger entry view returned by the API
type WalletTransactionResponse struct {
	ID            string    `json:"id"`
	AccountID     string    `json:"account_id"`
	Type          string    `json:"type"`
	Amount        string    `json:"amount"`
	BalanceBefore string    `json:"balance_before"`
	BalanceAfter  string    `json:"balance_after"`
	Reference     string    `json:"reference"`
	Description   string    `json:"description"`
	CreatedAt     time.Time `json:"created_at"`
}

// WalletPostingResponse carries the account state and ledger entry
// after a posting
type WalletPostingResponse struct {
	Account     WalletAccountResponse     `json:"account"`
	Transaction WalletTransactionResponse `json:"transaction"`
}

// PayoutMethodResponse is the payout method view returned by the API
type PayoutMethodResponse struct {
	ID           string `json:"id"`
	TechnicianID string `json:"technician_id"`
	Type         string `json:"type"`
	DisplayName  string `json:"display_name"`
	MaskedNumber string `json:"masked_number"`
	IsDefault    bool   `json:"is_default"`
}

func toWalletAccountResponse(info wallet.AccountInfo) WalletAccountResponse {
	return WalletAccountResponse{
		ID:           info.ID.String(),
		TechnicianID: info.TechnicianID.String(),
		Balance:      info.Balance.StringFixed(2),
		Currency:     info.Currency,
		Frozen:       info.Frozen,
	}
}

func toWalletTransactionResponse(info wallet.TransactionInfo) WalletTransactionResponse {
	return WalletTransactionResponse{
		ID:            info.ID.String(),
		AccountID:     info.AccountID.String(),
		Type:          info.Type,
		Amount:        info.Amount.StringFixed(2),
		BalanceBefore: info.BalanceBefore.StringFixed(2),
		BalanceAfter:  info.BalanceAfter.StringFixed(2),
		Reference:     info.Reference,
		Description:   info.Description,
		CreatedAt:     info.CreatedAt,
	}
}

func toWalletPostingResponse(result wallet.PostResult) WalletPostingResponse {
	return WalletPostingResponse{
		Account:     toWalletAccountResponse(result.Account),
		Transaction: toWalletTransactionResponse(result.Transaction),
	}
}

func toPayoutMethodResponse(info wallet.PayoutMethodInfo) PayoutMethodResponse {
	return PayoutMethodResponse{
		ID:           info.ID.String(),
		TechnicianID: info.TechnicianID.String(),
		Type:         info.Type,
		DisplayName:  info.DisplayName,
		MaskedNumber: info.MaskedNumber,
		IsDefault:    info.IsDefault,
	}
}

func toPayoutMethodResponses(infos []wallet.PayoutMethodInfo) []PayoutMethodResponse {
	out := make([]PayoutMethodResponse, 0, len(infos))
	for _, info := range infos {
		out = append(out, toPayoutMethodResponse(info))
	}
	return out
}

// PostingRequest is the request body for a manual credit or debit
type PostingRequest struct {
	Amount      string `json:"amount" binding:"required"`
	Type        string `json:"type" binding:"omitempty,oneof=credit debit payout adjustment"`
	Reference   string `json:"reference" binding:"max=200"`
	Description string `json:"description" binding:"max=2000"`
}

// PayoutRequest is the request body for a payout request
type PayoutRequest struct {
	Amount         string `json:"amount" binding:"required"`
	PayoutMethodID string `json:"payout_method_id" binding:"omitempty,uuid"`
}

// StatementRequest holds query filters for the wallet statement
type StatementRequest struct {
	dto.ListRequest
	Type string `form:"type" binding:"omitempty,oneof=credit debit payout adjustment"`
}

// CreatePayoutMethodRequest is the request body for registering a
// payout method
type CreatePayoutMethodRequest struct {
	Type         string `json:"type" binding:"required,oneof=bank_account debit_card check"`
	DisplayName  string `json:"display_name" binding:"required,min=1,max=200"`
	MaskedNumber string `json:"masked_number" binding:"max=50"`
	MakeDefault  bool   `json:"make_default"`
}

// GetAccount returns a technician's wallet account, opening it on
// first use
func (h *WalletHandler) GetAccount(c *gin.Context) {
	companyID, ok := h.requireCompany(c)
	if !ok {
		return
	}

	technicianID, ok := parseUUIDParam(c, "technicianId")
	if !ok {
		h.BadRequest(c, "Invalid technician ID format")
		return
	}

	info, err := h.walletService.GetAccount(c.Request.Context(), companyID, technicianID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, toWalletAccountResponse(*info))
}

// Credit posts a credit to a technician's wallet
func (h *WalletHandler) Credit(c *gin.Context) {
	h.post(c, h.walletService.Credit)
}

// Debit posts a debit against a technician's wallet
func (h *WalletHandler) Debit(c *gin.Context) {
	h.post(c, h.walletService.Debit)
}

func (h *WalletHandler) post(c *gin.Context, op func(context.Context, wallet.PostInput) (*wallet.PostResult, error)) {
	companyID, ok := h.requireCompany(c)
	if !ok {
		return
	}

	technicianID, ok := parseUUIDParam(c, "technicianId")
	if !ok {
		h.BadRequest(c, "Invalid technician ID format")
		return
	}

	var req PostingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	amount, err := decimal.NewFromString(req.Amount)
	if err != nil {
		h.BadRequest(c, "Invalid amount format")
		return
	}

	result, err := op(c.Request.Context(), wallet.PostInput{
		CompanyID:    companyID,
		TechnicianID: technicianID,
		Amount:       amount,
		Type:         req.Type,
		Reference:    req.Reference,
		Description:  req.Description,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, toWalletPostingResponse(*result))
}

// RequestPayout debits the wallet for a payout
func (h *WalletHandler) RequestPayout(c *gin.Context) {
	companyID, ok := h.requireCompany(c)
	if !ok {
		return
	}

	technicianID, ok := parseUUIDParam(c, "technicianId")
	if !ok {
		h.BadRequest(c, "Invalid technician ID format")
		return
	}

	var req PayoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	amount, err := decimal.NewFromString(req.Amount)
	if err != nil {
		h.BadRequest(c, "Invalid amount format")
		return
	}

	input := wallet.PayoutInput{
		CompanyID:    companyID,
		TechnicianID: technicianID,
		Amount:       amount,
	}
	if req.PayoutMethodID != "" {
		methodID, err := uuid.Parse(req.PayoutMethodID)
		if err != nil {
			h.BadRequest(c, "Invalid payout method ID format")
			return
		}
		input.PayoutMethodID = &methodID
	}

	result, err := h.walletService.RequestPayout(c.Request.Context(), input)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, toWalletPostingResponse(*result))
}

// Statement lists a technician's ledger entries
func (h *WalletHandler) Statement(c *gin.Context) {
	companyID, ok := h.requireCompany(c)
	if !ok {
		return
	}

	technicianID, ok := parseUUIDParam(c, "technicianId")
	if !ok {
		h.BadRequest(c, "Invalid technician ID format")
		return
	}

	var req StatementRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	result, err := h.walletService.Statement(c.Request.Context(), wallet.StatementInput{
		CompanyID:    companyID,
		TechnicianID: technicianID,
		Type:         req.Type,
		Filter:       parseFilter(req.ListRequest),
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	transactions := make([]WalletTransactionResponse, 0, len(result.Items))
	for _, tx := range result.Items {
		transactions = append(transactions, toWalletTransactionResponse(tx))
	}

	h.SuccessWithMeta(c, transactions,
		result.Total, result.Page, result.PageSize, result.TotalPages)
}

// CreatePayoutMethod registers a payout method for a technician
func (h *WalletHandler) CreatePayoutMethod(c *gin.Context) {
	companyID, ok := h.requireCompany(c)
	if !ok {
		return
	}

	technicianID, ok := parseUUIDParam(c, "technicianId")
	if !ok {
		h.BadRequest(c, "Invalid technician ID format")
		return
	}

	var req CreatePayoutMethodRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	info, err := h.walletService.CreatePayoutMethod(c.Request.Context(), wallet.CreatePayoutMethodInput{
		CompanyID:    companyID,
		TechnicianID: technicianID,
		Type:         req.Type,
		DisplayName:  req.DisplayName,
		MaskedNumber: req.MaskedNumber,
		MakeDefault:  req.MakeDefault,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, toPayoutMethodResponse(*info))
}

// ListPayoutMethods lists a technician's payout methods
func (h *WalletHandler) ListPayoutMethods(c *gin.Context) {
	companyID, ok := h.requireCompany(c)
	if !ok {
		return
	}

	technicianID, ok := parseUUIDParam(c, "technicianId")
	if !ok {
		h.BadRequest(c, "Invalid technician ID format")
		return
	}

	methods, err := h.walletService.ListPayoutMethods(c.Request.Context(), companyID, technicianID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, toPayoutMethodResponses(methods))
}

// SetDefaultPayoutMethod marks a payout method as the default
func (h *WalletHandler) SetDefaultPayoutMethod(c *gin.Context) {
	companyID, ok := h.requireCompany(c)
	if !ok {
		return
	}

	methodID, ok := parseUUIDParam(c, "methodId")
	if !ok {
		h.BadRequest(c, "Invalid payout method ID format")
		return
	}

	info, err := h.walletService.SetDefaultPayoutMethod(c.Request.Context(), companyID, methodID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, toPayoutMethodResponse(*info))
}

// DeletePayoutMethod removes a payout method
func (h *WalletHandler) DeletePayoutMethod(c *gin.Context) {
	companyID, ok := h.requireCompany(c)
	if !ok {
		return
	}

	methodID, ok := parseUUIDParam(c, "methodId")
	if !ok {
		h.BadRequest(c, "Invalid payout method ID format")
		return
	}

	if err := h.walletService.DeletePayoutMethod(c.Request.Context(), companyID, methodID); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}
