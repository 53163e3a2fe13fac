package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"

	"github.com/dispatchiq/backend/internal/domain/shared"
	"github.com/dispatchiq/backend/internal/domain/wallet"
)

func walletAccountRows(id, companyID, technicianID uuid.UUID) *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "created_at", "updated_at", "version", "company_id", "technician_id", "balance", "currency", "frozen"}).
		AddRow(id, time.Now(), time.Now(), 1, companyID, technicianID, decimal.NewFromInt(150), "USD", false)
}

func TestGormAccountRepository_FindByTechnician(t *testing.T) {
	t.Run("finds account by technician", func(t *testing.T) {
		db, mock, mockDB := newMockDB(t)
		defer mockDB.Close()
		repo := NewGormAccountRepository(db)

		companyID := uuid.New()
		technicianID := uuid.New()
		accountID := uuid.New()

		mock.ExpectQuery(`SELECT \* FROM "wallet_accounts" WHERE company_id = \$1 AND technician_id = \$2 ORDER BY .* LIMIT .*`).
			WithArgs(companyID, technicianID, 1).
			WillReturnRows(walletAccountRows(accountID, companyID, technicianID))

		account, err := repo.FindByTechnician(context.Background(), companyID, technicianID)

		assert.NoError(t, err)
		assert.NotNil(t, account)
		assert.Equal(t, technicianID, account.TechnicianID)
		assert.True(t, account.Balance.Equal(decimal.NewFromInt(150)))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("returns ErrNotFound when technician has no wallet", func(t *testing.T) {
		db, mock, mockDB := newMockDB(t)
		defer mockDB.Close()
		repo := NewGormAccountRepository(db)

		mock.ExpectQuery(`SELECT \* FROM "wallet_accounts" WHERE company_id = \$1 AND technician_id = \$2 ORDER BY .* LIMIT .*`).
			WillReturnError(gorm.ErrRecordNotFound)

		account, err := repo.FindByTechnician(context.Background(), uuid.New(), uuid.New())

		assert.Nil(t, account)
		assert.Equal(t, shared.ErrNotFound, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormAccountRepository_Save(t *testing.T) {
	t.Run("saves new account", func(t *testing.T) {
		db, mock, mockDB := newMockDB(t)
		defer mockDB.Close()
		repo := NewGormAccountRepository(db)

		account := wallet.NewAccount(uuid.New(), uuid.New())

		mock.ExpectExec(`UPDATE "wallet_accounts" SET`).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := repo.Save(context.Background(), account)

		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("returns conflict when balance was updated concurrently", func(t *testing.T) {
		db, mock, mockDB := newMockDB(t)
		defer mockDB.Close()
		repo := NewGormAccountRepository(db)

		account := wallet.NewAccount(uuid.New(), uuid.New())
		account.Version = 2

		mock.ExpectExec(`UPDATE "wallet_accounts" SET`).
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.Save(context.Background(), account)

		assert.Equal(t, shared.ErrConcurrencyConflict, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormAccountRepository_SavePosting(t *testing.T) {
	t.Run("writes balance and ledger entry in one transaction", func(t *testing.T) {
		db, mock, mockDB := newMockDB(t)
		defer mockDB.Close()
		repo := NewGormAccountRepository(db)

		account := wallet.NewAccount(uuid.New(), uuid.New())
		entry, err := account.Credit(decimal.NewFromInt(75), wallet.TxCredit, "wo-1", "Job payout")
		assert.NoError(t, err)

		mock.ExpectBegin()
		mock.ExpectExec(`UPDATE "wallet_accounts" SET`).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec(`INSERT INTO "wallet_transactions"`).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		err = repo.SavePosting(context.Background(), account, entry)

		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("rolls back ledger entry on stale account version", func(t *testing.T) {
		db, mock, mockDB := newMockDB(t)
		defer mockDB.Close()
		repo := NewGormAccountRepository(db)

		account := wallet.NewAccount(uuid.New(), uuid.New())
		entry, err := account.Credit(decimal.NewFromInt(75), wallet.TxCredit, "wo-1", "Job payout")
		assert.NoError(t, err)
		account.Version = 3

		mock.ExpectBegin()
		mock.ExpectExec(`UPDATE "wallet_accounts" SET`).
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectRollback()

		err = repo.SavePosting(context.Background(), account, entry)

		assert.Equal(t, shared.ErrConcurrencyConflict, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormTransactionRepository_Save(t *testing.T) {
	t.Run("appends ledger entry with insert only", func(t *testing.T) {
		db, mock, mockDB := newMockDB(t)
		defer mockDB.Close()
		repo := NewGormTransactionRepository(db)

		companyID := uuid.New()
		account := wallet.NewAccount(companyID, uuid.New())
		tx, err := account.Credit(decimal.NewFromInt(75), wallet.TxCredit, "wo-1", "Job payout")
		assert.NoError(t, err)

		mock.ExpectExec(`INSERT INTO "wallet_transactions"`).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err = repo.Save(context.Background(), tx)

		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormTransactionRepository_FindLatestByAccount(t *testing.T) {
	t.Run("returns most recent entry", func(t *testing.T) {
		db, mock, mockDB := newMockDB(t)
		defer mockDB.Close()
		repo := NewGormTransactionRepository(db)

		accountID := uuid.New()
		rows := sqlmock.NewRows([]string{"id", "created_at", "account_id", "company_id", "type", "amount", "balance_before", "balance_after"}).
			AddRow(uuid.New(), time.Now(), accountID, uuid.New(), "credit", decimal.NewFromInt(75), decimal.Zero, decimal.NewFromInt(75))

		mock.ExpectQuery(`SELECT \* FROM "wallet_transactions" WHERE account_id = \$1 ORDER BY created_at DESC,.* LIMIT .*`).
			WithArgs(accountID, 1).
			WillReturnRows(rows)

		tx, err := repo.FindLatestByAccount(context.Background(), accountID)

		assert.NoError(t, err)
		assert.NotNil(t, tx)
		assert.True(t, tx.BalanceAfter.Equal(decimal.NewFromInt(75)))
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
