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

// GormAccountRepository implements AccountRepository using GORM
type GormAccountRepository struct {
	db *gorm.DB
}

// NewGormAccountRepository creates a new GormAccountRepository
func NewGormAccountRepository(db *gorm.DB) *GormAccountRepository {
	return &GormAccountRepository{db: db}
}

// Save creates or updates a wallet account. Balance updates are guarded
// by the aggregate version; a stale write returns ErrConcurrencyConflict
// so the caller can reload and retry.
func (r *GormAccountRepository) Save(ctx context.Context, account *wallet.Account) error {
	return saveAccount(r.db.WithContext(ctx), account)
}

// SavePosting writes the account balance and the ledger entry in one
// database transaction. A stale account version rolls back the entry
// and returns ErrConcurrencyConflict.
func (r *GormAccountRepository) SavePosting(ctx context.Context, account *wallet.Account, entry *wallet.Transaction) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := saveAccount(tx, account); err != nil {
			return err
		}
		var entryModel models.WalletTransactionModel
		entryModel.FromDomain(entry)
		return tx.Create(&entryModel).Error
	})
}

func saveAccount(db *gorm.DB, account *wallet.Account) error {
	var model models.WalletAccountModel
	model.FromDomain(account)

	if account.Version <= 1 {
		return db.Save(&model).Error
	}

	result := db.
		Model(&models.WalletAccountModel{}).
		Where("id = ? AND version = ?", account.ID, account.Version-1).
		Select("*").
		Omit("id", "created_at").
		Updates(&model)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrConcurrencyConflict
	}
	return nil
}

// FindByID finds a wallet account by ID within a company
func (r *GormAccountRepository) FindByID(ctx context.Context, companyID, id uuid.UUID) (*wallet.Account, error) {
	var model models.WalletAccountModel
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

// FindByTechnician finds the wallet account belonging to a technician
func (r *GormAccountRepository) FindByTechnician(ctx context.Context, companyID, technicianID uuid.UUID) (*wallet.Account, error) {
	var model models.WalletAccountModel
	if err := r.db.WithContext(ctx).
		Where("company_id = ? AND technician_id = ?", companyID, technicianID).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// Delete deletes a wallet account within a company
func (r *GormAccountRepository) Delete(ctx context.Context, companyID, id uuid.UUID) error {
	result := r.db.WithContext(ctx).
		Delete(&models.WalletAccountModel{}, "company_id = ? AND id = ?", companyID, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Ensure GormAccountRepository implements AccountRepository
var _ wallet.AccountRepository = (*GormAccountRepository)(nil)
