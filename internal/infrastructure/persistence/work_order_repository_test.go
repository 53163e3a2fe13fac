package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/dispatchiq/backend/internal/domain/shared"
	"github.com/dispatchiq/backend/internal/domain/workorder"
)

func workOrderRows(id, companyID, propertyID uuid.UUID, status string) *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "created_at", "updated_at", "version", "company_id", "property_id", "issue", "priority", "status", "payout_amount"}).
		AddRow(id, time.Now(), time.Now(), 1, companyID, propertyID, "Leaking faucet", "routine", status, decimal.Zero)
}

func TestGormWorkOrderRepository_FindByID(t *testing.T) {
	t.Run("scopes lookup to company", func(t *testing.T) {
		db, mock, mockDB := newMockDB(t)
		defer mockDB.Close()
		repo := NewGormWorkOrderRepository(db)

		companyID := uuid.New()
		orderID := uuid.New()

		mock.ExpectQuery(`SELECT \* FROM "work_orders" WHERE company_id = \$1 AND id = \$2 ORDER BY .* LIMIT .*`).
			WithArgs(companyID, orderID, 1).
			WillReturnRows(workOrderRows(orderID, companyID, uuid.New(), "open"))

		wo, err := repo.FindByID(context.Background(), companyID, orderID)

		assert.NoError(t, err)
		assert.NotNil(t, wo)
		assert.Equal(t, companyID, wo.CompanyID)
		assert.Equal(t, workorder.StatusOpen, wo.Status)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("returns ErrNotFound for another company's order", func(t *testing.T) {
		db, mock, mockDB := newMockDB(t)
		defer mockDB.Close()
		repo := NewGormWorkOrderRepository(db)

		mock.ExpectQuery(`SELECT \* FROM "work_orders" WHERE company_id = \$1 AND id = \$2 ORDER BY .* LIMIT .*`).
			WillReturnError(gorm.ErrRecordNotFound)

		wo, err := repo.FindByID(context.Background(), uuid.New(), uuid.New())

		assert.Nil(t, wo)
		assert.Equal(t, shared.ErrNotFound, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormWorkOrderRepository_Save(t *testing.T) {
	t.Run("saves new work order", func(t *testing.T) {
		db, mock, mockDB := newMockDB(t)
		defer mockDB.Close()
		repo := NewGormWorkOrderRepository(db)

		wo, err := workorder.NewWorkOrder(uuid.New(), uuid.New(), "Leaking faucet", "Unit 4B kitchen", workorder.PriorityRoutine)
		require.NoError(t, err)

		mock.ExpectExec(`UPDATE "work_orders" SET`).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err = repo.Save(context.Background(), wo)

		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("returns conflict on stale version", func(t *testing.T) {
		db, mock, mockDB := newMockDB(t)
		defer mockDB.Close()
		repo := NewGormWorkOrderRepository(db)

		wo, err := workorder.NewWorkOrder(uuid.New(), uuid.New(), "Leaking faucet", "", workorder.PriorityRoutine)
		require.NoError(t, err)
		wo.Version = 3

		mock.ExpectExec(`UPDATE "work_orders" SET`).
			WillReturnResult(sqlmock.NewResult(0, 0))

		err = repo.Save(context.Background(), wo)

		assert.Equal(t, shared.ErrConcurrencyConflict, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormWorkOrderRepository_List(t *testing.T) {
	t.Run("filters by status and technician", func(t *testing.T) {
		db, mock, mockDB := newMockDB(t)
		defer mockDB.Close()
		repo := NewGormWorkOrderRepository(db)

		companyID := uuid.New()
		technicianID := uuid.New()

		mock.ExpectQuery(`SELECT count\(\*\) FROM "work_orders" WHERE company_id = \$1 AND status = \$2 AND technician_id = \$3`).
			WithArgs(companyID, workorder.StatusAssigned, technicianID).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

		mock.ExpectQuery(`SELECT \* FROM "work_orders" WHERE company_id = \$1 AND status = \$2 AND technician_id = \$3 ORDER BY created_at DESC LIMIT .*`).
			WithArgs(companyID, workorder.StatusAssigned, technicianID, 20).
			WillReturnRows(workOrderRows(uuid.New(), companyID, uuid.New(), "assigned"))

		filter := workorder.NewWorkOrderFilter(companyID).
			WithStatus(workorder.StatusAssigned).
			WithTechnician(technicianID)

		result, err := repo.List(context.Background(), filter)

		assert.NoError(t, err)
		assert.Len(t, result.Items, 1)
		assert.Equal(t, int64(1), result.Total)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormWorkOrderRepository_CountByStatus(t *testing.T) {
	t.Run("counts open orders", func(t *testing.T) {
		db, mock, mockDB := newMockDB(t)
		defer mockDB.Close()
		repo := NewGormWorkOrderRepository(db)

		companyID := uuid.New()

		mock.ExpectQuery(`SELECT count\(\*\) FROM "work_orders" WHERE company_id = \$1 AND status = \$2`).
			WithArgs(companyID, workorder.StatusOpen).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(4))

		count, err := repo.CountByStatus(context.Background(), companyID, workorder.StatusOpen)

		assert.NoError(t, err)
		assert.Equal(t, int64(4), count)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormWorkOrderRepository_Delete(t *testing.T) {
	t.Run("deletes within company scope", func(t *testing.T) {
		db, mock, mockDB := newMockDB(t)
		defer mockDB.Close()
		repo := NewGormWorkOrderRepository(db)

		companyID := uuid.New()
		orderID := uuid.New()

		mock.ExpectExec(`DELETE FROM "work_orders" WHERE company_id = \$1 AND id = \$2`).
			WithArgs(companyID, orderID).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := repo.Delete(context.Background(), companyID, orderID)

		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
