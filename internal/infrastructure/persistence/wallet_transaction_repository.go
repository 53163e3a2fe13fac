package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/dispatchiq/backend/internal/domain/shared"
	"github.com/dispatchiq/backend/internal/domain/wallet"
	"github.com/dispatchiq/backend/internal/infrastructure/persistence/models"
)

// GormTransactionRepository implements TransactionRepository using GORM.
// The ledger is append only; rows are created once and never updated.
type GormTransactionRepository struct {
	db *gorm.DB
}

// NewGormTransactionRepository creates a new GormTransactionRepository
func NewGormTransactionRepository(db *gorm.DB) *GormTransactionRepository {
	return &GormTransactionRepository{db: db}
}

// Save appends a ledger entry
func (r *GormTransactionRepository) Save(ctx context.Context, transaction *wallet.Transaction) error {
	var model models.WalletTransactionModel
	model.FromDomain(transaction)
	return r.db.WithContext(ctx).Create(&model).Error
}

// FindByID finds a ledger entry by ID within a company
func (r *GormTransactionRepository) FindByID(ctx context.Context, companyID, id uuid.UUID) (*wallet.Transaction, error) {
	var model models.WalletTransactionModel
	if err := r.db.WithContext(ctx).
		Where("company_id = ? AND id = ?", companyID, id).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// List finds ledger entries matching the filter with pagination
func (r *GormTransactionRepository) List(ctx context.Context, filter wallet.TransactionFilter) (shared.Paginated[*wallet.Transaction], error) {
	query := r.db.WithContext(ctx).
		Model(&models.WalletTransactionModel{}).
		Where("company_id = ?", filter.CompanyID)
	if filter.AccountID != nil {
		query = query.Where("account_id = ?", *filter.AccountID)
	}
	if filter.Type != nil {
		query = query.Where("type = ?", *filter.Type)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return shared.Paginated[*wallet.Transaction]{}, err
	}

	sortField := ValidateSortField(filter.SortBy, TransactionSortFields, "created_at")
	sortDir := ValidateSortOrder(filter.SortDir)

	var transactionModels []models.WalletTransactionModel
	if err := query.
		Order(sortField + " " + sortDir).
		Offset(filter.Offset()).
		Limit(filter.Limit()).
		Find(&transactionModels).Error; err != nil {
		return shared.Paginated[*wallet.Transaction]{}, err
	}

	transactions := make([]*wallet.Transaction, len(transactionModels))
	for i := range transactionModels {
		transactions[i] = transactionModels[i].ToDomain()
	}
	return shared.NewPaginated(transactions, total, filter.Page, filter.Limit()), nil
}

// FindLatestByAccount finds the most recent ledger entry for an account
func (r *GormTransactionRepository) FindLatestByAccount(ctx context.Context, accountID uuid.UUID) (*wallet.Transaction, error) {
	var model models.WalletTransactionModel
	if err := r.db.WithContext(ctx).
		Where("account_id = ?", accountID).
		Order("created_at DESC").
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// Ensure GormTransactionRepository implements TransactionRepository
var _ wallet.TransactionRepository = (*GormTransactionRepository)(nil)
