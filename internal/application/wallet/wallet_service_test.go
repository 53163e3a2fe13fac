package wallet

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/dispatchiq/backend/internal/domain/shared"
	"github.com/dispatchiq/backend/internal/domain/wallet"
	"github.com/dispatchiq/backend/internal/domain/workforce"
	"github.com/dispatchiq/backend/internal/domain/workorder"
)

// MockAccountRepository is a mock implementation of wallet.AccountRepository
type MockAccountRepository struct {
	mock.Mock
}

func (m *MockAccountRepository) Save(ctx context.Context, account *wallet.Account) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

func (m *MockAccountRepository) SavePosting(ctx context.Context, account *wallet.Account, entry *wallet.Transaction) error {
	args := m.Called(ctx, account, entry)
	return args.Error(0)
}

func (m *MockAccountRepository) FindByID(ctx context.Context, companyID, id uuid.UUID) (*wallet.Account, error) {
	args := m.Called(ctx, companyID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*wallet.Account), args.Error(1)
}

func (m *MockAccountRepository) FindByTechnician(ctx context.Context, companyID, technicianID uuid.UUID) (*wallet.Account, error) {
	args := m.Called(ctx, companyID, technicianID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*wallet.Account), args.Error(1)
}

func (m *MockAccountRepository) Delete(ctx context.Context, companyID, id uuid.UUID) error {
	args := m.Called(ctx, companyID, id)
	return args.Error(0)
}

// MockTransactionRepository is a mock implementation of wallet.TransactionRepository
type MockTransactionRepository struct {
	mock.Mock
}

func (m *MockTransactionRepository) Save(ctx context.Context, transaction *wallet.Transaction) error {
	args := m.Called(ctx, transaction)
	return args.Error(0)
}

func (m *MockTransactionRepository) FindByID(ctx context.Context, companyID, id uuid.UUID) (*wallet.Transaction, error) {
	args := m.Called(ctx, companyID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*wallet.Transaction), args.Error(1)
}

func (m *MockTransactionRepository) List(ctx context.Context, filter wallet.TransactionFilter) (shared.Paginated[*wallet.Transaction], error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(shared.Paginated[*wallet.Transaction]), args.Error(1)
}

func (m *MockTransactionRepository) FindLatestByAccount(ctx context.Context, accountID uuid.UUID) (*wallet.Transaction, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*wallet.Transaction), args.Error(1)
}

// MockPayoutMethodRepository is a mock implementation of wallet.PayoutMethodRepository
type MockPayoutMethodRepository struct {
	mock.Mock
}

func (m *MockPayoutMethodRepository) Save(ctx context.Context, method *wallet.PayoutMethod) error {
	args := m.Called(ctx, method)
	return args.Error(0)
}

func (m *MockPayoutMethodRepository) FindByID(ctx context.Context, companyID, id uuid.UUID) (*wallet.PayoutMethod, error) {
	args := m.Called(ctx, companyID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*wallet.PayoutMethod), args.Error(1)
}

func (m *MockPayoutMethodRepository) ListByTechnician(ctx context.Context, companyID, technicianID uuid.UUID) ([]*wallet.PayoutMethod, error) {
	args := m.Called(ctx, companyID, technicianID)
	return args.Get(0).([]*wallet.PayoutMethod), args.Error(1)
}

func (m *MockPayoutMethodRepository) ClearDefaults(ctx context.Context, companyID, technicianID uuid.UUID) error {
	args := m.Called(ctx, companyID, technicianID)
	return args.Error(0)
}

func (m *MockPayoutMethodRepository) Delete(ctx context.Context, companyID, id uuid.UUID) error {
	args := m.Called(ctx, companyID, id)
	return args.Error(0)
}

// MockTechnicianRepository is a mock implementation of workforce.TechnicianRepository
type MockTechnicianRepository struct {
	mock.Mock
}

func (m *MockTechnicianRepository) Save(ctx context.Context, technician *workforce.Technician) error {
	args := m.Called(ctx, technician)
	return args.Error(0)
}

func (m *MockTechnicianRepository) FindByID(ctx context.Context, companyID, id uuid.UUID) (*workforce.Technician, error) {
	args := m.Called(ctx, companyID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*workforce.Technician), args.Error(1)
}

func (m *MockTechnicianRepository) List(ctx context.Context, filter workforce.TechnicianFilter) (shared.Paginated[*workforce.Technician], error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(shared.Paginated[*workforce.Technician]), args.Error(1)
}

func (m *MockTechnicianRepository) CountByCompany(ctx context.Context, companyID uuid.UUID) (int64, error) {
	args := m.Called(ctx, companyID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockTechnicianRepository) Delete(ctx context.Context, companyID, id uuid.UUID) error {
	args := m.Called(ctx, companyID, id)
	return args.Error(0)
}

// MockEventPublisher is a mock implementation of shared.EventPublisher
type MockEventPublisher struct {
	mock.Mock
}

func (m *MockEventPublisher) Publish(ctx context.Context, events ...shared.DomainEvent) error {
	args := m.Called(ctx, events)
	return args.Error(0)
}

type serviceMocks struct {
	accounts     *MockAccountRepository
	transactions *MockTransactionRepository
	methods      *MockPayoutMethodRepository
	technicians  *MockTechnicianRepository
	events       *MockEventPublisher
}

func newTestService() (*Service, *serviceMocks) {
	m := &serviceMocks{
		accounts:     new(MockAccountRepository),
		transactions: new(MockTransactionRepository),
		methods:      new(MockPayoutMethodRepository),
		technicians:  new(MockTechnicianRepository),
		events:       new(MockEventPublisher),
	}
	service := NewService(m.accounts, m.transactions, m.methods, m.technicians, m.events, zap.NewNop())
	return service, m
}

func newTech(t *testing.T, companyID uuid.UUID) *workforce.Technician {
	tech, err := workforce.NewTechnician(companyID, "Sam Okafor", "312-555-0101", "hvac")
	require.NoError(t, err)
	return tech
}

func TestService_GetAccount(t *testing.T) {
	companyID := uuid.New()

	t.Run("opens wallet on first use", func(t *testing.T) {
		service, m := newTestService()
		tech := newTech(t, companyID)

		m.accounts.On("FindByTechnician", mock.Anything, companyID, tech.ID).Return(nil, shared.ErrNotFound)
		m.technicians.On("FindByID", mock.Anything, companyID, tech.ID).Return(tech, nil)
		m.accounts.On("Save", mock.Anything, mock.AnythingOfType("*wallet.Account")).Return(nil)

		info, err := service.GetAccount(context.Background(), companyID, tech.ID)

		require.NoError(t, err)
		assert.Equal(t, tech.ID, info.TechnicianID)
		assert.True(t, info.Balance.IsZero())
		assert.Equal(t, "USD", info.Currency)
		m.accounts.AssertCalled(t, "Save", mock.Anything, mock.AnythingOfType("*wallet.Account"))
	})

	t.Run("returns existing wallet without saving", func(t *testing.T) {
		service, m := newTestService()
		account := wallet.NewAccount(companyID, uuid.New())

		m.accounts.On("FindByTechnician", mock.Anything, companyID, account.TechnicianID).Return(account, nil)

		info, err := service.GetAccount(context.Background(), companyID, account.TechnicianID)

		require.NoError(t, err)
		assert.Equal(t, account.ID, info.ID)
		m.accounts.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("rejects unknown technician", func(t *testing.T) {
		service, m := newTestService()
		ghostID := uuid.New()

		m.accounts.On("FindByTechnician", mock.Anything, companyID, ghostID).Return(nil, shared.ErrNotFound)
		m.technicians.On("FindByID", mock.Anything, companyID, ghostID).Return(nil, shared.ErrNotFound)

		_, err := service.GetAccount(context.Background(), companyID, ghostID)

		require.Error(t, err)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "TECHNICIAN_NOT_FOUND", domainErr.Code)
	})
}

func TestService_Posting(t *testing.T) {
	companyID := uuid.New()

	t.Run("credit updates balance and records ledger entry", func(t *testing.T) {
		service, m := newTestService()
		account := wallet.NewAccount(companyID, uuid.New())

		m.accounts.On("FindByTechnician", mock.Anything, companyID, account.TechnicianID).Return(account, nil)
		m.accounts.On("SavePosting", mock.Anything, account, mock.AnythingOfType("*wallet.Transaction")).Return(nil)
		m.events.On("Publish", mock.Anything, mock.Anything).Return(nil)

		result, err := service.Credit(context.Background(), PostInput{
			CompanyID:    companyID,
			TechnicianID: account.TechnicianID,
			Amount:       decimal.NewFromInt(150),
			Description:  "Manual adjustment",
		})

		require.NoError(t, err)
		assert.True(t, result.Account.Balance.Equal(decimal.NewFromInt(150)))
		assert.Equal(t, "credit", result.Transaction.Type)
		assert.True(t, result.Transaction.BalanceBefore.IsZero())
		assert.True(t, result.Transaction.BalanceAfter.Equal(decimal.NewFromInt(150)))
		m.events.AssertCalled(t, "Publish", mock.Anything, mock.Anything)

		// The balance and the ledger entry travel in one atomic write.
		m.accounts.AssertCalled(t, "SavePosting", mock.Anything, account, mock.AnythingOfType("*wallet.Transaction"))
		m.accounts.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
		m.transactions.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("debit below balance fails", func(t *testing.T) {
		service, m := newTestService()
		account := wallet.NewAccount(companyID, uuid.New())

		m.accounts.On("FindByTechnician", mock.Anything, companyID, account.TechnicianID).Return(account, nil)

		_, err := service.Debit(context.Background(), PostInput{
			CompanyID:    companyID,
			TechnicianID: account.TechnicianID,
			Amount:       decimal.NewFromInt(50),
		})

		require.Error(t, err)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INSUFFICIENT_BALANCE", domainErr.Code)
		m.accounts.AssertNotCalled(t, "SavePosting", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("frozen wallet rejects postings", func(t *testing.T) {
		service, m := newTestService()
		account := wallet.NewAccount(companyID, uuid.New())
		account.Freeze()

		m.accounts.On("FindByTechnician", mock.Anything, companyID, account.TechnicianID).Return(account, nil)

		_, err := service.Credit(context.Background(), PostInput{
			CompanyID:    companyID,
			TechnicianID: account.TechnicianID,
			Amount:       decimal.NewFromInt(10),
		})

		require.Error(t, err)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "ACCOUNT_FROZEN", domainErr.Code)
	})

	t.Run("concurrent modification surfaces as conflict", func(t *testing.T) {
		service, m := newTestService()
		account := wallet.NewAccount(companyID, uuid.New())

		m.accounts.On("FindByTechnician", mock.Anything, companyID, account.TechnicianID).Return(account, nil)
		m.accounts.On("SavePosting", mock.Anything, account, mock.AnythingOfType("*wallet.Transaction")).
			Return(shared.ErrConcurrencyConflict)

		_, err := service.Credit(context.Background(), PostInput{
			CompanyID:    companyID,
			TechnicianID: account.TechnicianID,
			Amount:       decimal.NewFromInt(25),
		})

		require.Error(t, err)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "CONCURRENCY_CONFLICT", domainErr.Code)
		m.transactions.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("rejects unknown posting type", func(t *testing.T) {
		service, _ := newTestService()

		_, err := service.Credit(context.Background(), PostInput{
			CompanyID:    companyID,
			TechnicianID: uuid.New(),
			Amount:       decimal.NewFromInt(10),
			Type:         "refund",
		})

		require.Error(t, err)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INVALID_TRANSACTION_TYPE", domainErr.Code)
	})
}

func TestService_RequestPayout(t *testing.T) {
	companyID := uuid.New()

	fundedAccount := func(t *testing.T, technicianID uuid.UUID, amount int64) *wallet.Account {
		account := wallet.NewAccount(companyID, technicianID)
		_, err := account.Credit(decimal.NewFromInt(amount), wallet.TxCredit, "", "seed")
		require.NoError(t, err)
		account.ClearDomainEvents()
		return account
	}

	t.Run("debits wallet with payout entry", func(t *testing.T) {
		service, m := newTestService()
		technicianID := uuid.New()
		account := fundedAccount(t, technicianID, 500)
		method, err := wallet.NewPayoutMethod(companyID, technicianID, wallet.PayoutBankAccount, "Chase Checking", "****4821")
		require.NoError(t, err)

		m.methods.On("FindByID", mock.Anything, companyID, method.ID).Return(method, nil)
		m.accounts.On("FindByTechnician", mock.Anything, companyID, technicianID).Return(account, nil)
		m.accounts.On("SavePosting", mock.Anything, account, mock.AnythingOfType("*wallet.Transaction")).Return(nil)

		result, err := service.RequestPayout(context.Background(), PayoutInput{
			CompanyID:      companyID,
			TechnicianID:   technicianID,
			Amount:         decimal.NewFromInt(200),
			PayoutMethodID: &method.ID,
		})

		require.NoError(t, err)
		assert.Equal(t, "payout", result.Transaction.Type)
		assert.True(t, result.Transaction.Amount.Equal(decimal.NewFromInt(-200)))
		assert.True(t, result.Account.Balance.Equal(decimal.NewFromInt(300)))
		assert.Contains(t, result.Transaction.Description, "Chase Checking")
	})

	t.Run("rejects payout method of another technician", func(t *testing.T) {
		service, m := newTestService()
		technicianID := uuid.New()
		method, err := wallet.NewPayoutMethod(companyID, uuid.New(), wallet.PayoutDebitCard, "Visa", "****9000")
		require.NoError(t, err)

		m.methods.On("FindByID", mock.Anything, companyID, method.ID).Return(method, nil)

		_, err = service.RequestPayout(context.Background(), PayoutInput{
			CompanyID:      companyID,
			TechnicianID:   technicianID,
			Amount:         decimal.NewFromInt(50),
			PayoutMethodID: &method.ID,
		})

		require.Error(t, err)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "PAYOUT_METHOD_NOT_FOUND", domainErr.Code)
	})
}

func TestService_PayoutMethods(t *testing.T) {
	companyID := uuid.New()

	t.Run("first method becomes default", func(t *testing.T) {
		service, m := newTestService()
		tech := newTech(t, companyID)

		m.technicians.On("FindByID", mock.Anything, companyID, tech.ID).Return(tech, nil)
		m.methods.On("ListByTechnician", mock.Anything, companyID, tech.ID).Return([]*wallet.PayoutMethod{}, nil)
		m.methods.On("ClearDefaults", mock.Anything, companyID, tech.ID).Return(nil)
		m.methods.On("Save", mock.Anything, mock.AnythingOfType("*wallet.PayoutMethod")).Return(nil)

		info, err := service.CreatePayoutMethod(context.Background(), CreatePayoutMethodInput{
			CompanyID:    companyID,
			TechnicianID: tech.ID,
			Type:         "bank_account",
			DisplayName:  "Chase Checking",
			MaskedNumber: "****4821",
		})

		require.NoError(t, err)
		assert.True(t, info.IsDefault)
	})

	t.Run("second method stays non-default unless requested", func(t *testing.T) {
		service, m := newTestService()
		tech := newTech(t, companyID)
		existing, err := wallet.NewPayoutMethod(companyID, tech.ID, wallet.PayoutBankAccount, "Chase Checking", "****4821")
		require.NoError(t, err)
		existing.MarkDefault()

		m.technicians.On("FindByID", mock.Anything, companyID, tech.ID).Return(tech, nil)
		m.methods.On("ListByTechnician", mock.Anything, companyID, tech.ID).Return([]*wallet.PayoutMethod{existing}, nil)
		m.methods.On("Save", mock.Anything, mock.AnythingOfType("*wallet.PayoutMethod")).Return(nil)

		info, err := service.CreatePayoutMethod(context.Background(), CreatePayoutMethodInput{
			CompanyID:    companyID,
			TechnicianID: tech.ID,
			Type:         "debit_card",
			DisplayName:  "Visa",
			MaskedNumber: "****9000",
		})

		require.NoError(t, err)
		assert.False(t, info.IsDefault)
		m.methods.AssertNotCalled(t, "ClearDefaults", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("set default clears previous defaults first", func(t *testing.T) {
		service, m := newTestService()
		technicianID := uuid.New()
		method, err := wallet.NewPayoutMethod(companyID, technicianID, wallet.PayoutDebitCard, "Visa", "****9000")
		require.NoError(t, err)

		m.methods.On("FindByID", mock.Anything, companyID, method.ID).Return(method, nil)
		m.methods.On("ClearDefaults", mock.Anything, companyID, technicianID).Return(nil)
		m.methods.On("Save", mock.Anything, method).Return(nil)

		info, err := service.SetDefaultPayoutMethod(context.Background(), companyID, method.ID)

		require.NoError(t, err)
		assert.True(t, info.IsDefault)
		m.methods.AssertCalled(t, "ClearDefaults", mock.Anything, companyID, technicianID)
	})

	t.Run("rejects unknown method type", func(t *testing.T) {
		service, m := newTestService()
		tech := newTech(t, companyID)

		m.technicians.On("FindByID", mock.Anything, companyID, tech.ID).Return(tech, nil)

		_, err := service.CreatePayoutMethod(context.Background(), CreatePayoutMethodInput{
			CompanyID:    companyID,
			TechnicianID: tech.ID,
			Type:         "crypto",
			DisplayName:  "Cold wallet",
		})

		require.Error(t, err)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INVALID_PAYOUT_METHOD", domainErr.Code)
	})
}

func TestService_Statement(t *testing.T) {
	companyID := uuid.New()
	service, m := newTestService()
	account := wallet.NewAccount(companyID, uuid.New())
	tx, err := account.Credit(decimal.NewFromInt(90), wallet.TxCredit, "wo-ref", "Completed work order payout")
	require.NoError(t, err)

	m.accounts.On("FindByTechnician", mock.Anything, companyID, account.TechnicianID).Return(account, nil)
	m.transactions.On("List", mock.Anything, mock.MatchedBy(func(f wallet.TransactionFilter) bool {
		return f.CompanyID == companyID && f.AccountID != nil && *f.AccountID == account.ID
	})).Return(shared.NewPaginated([]*wallet.Transaction{tx}, 1, 1, 20), nil)

	page, err := service.Statement(context.Background(), StatementInput{
		CompanyID:    companyID,
		TechnicianID: account.TechnicianID,
		Filter:       shared.DefaultFilter(),
	})

	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.Equal(t, "credit", page.Items[0].Type)
	assert.True(t, page.Items[0].BalanceAfter.Equal(decimal.NewFromInt(90)))
}

func TestWorkOrderCompletedHandler(t *testing.T) {
	companyID := uuid.New()

	t.Run("credits payout scaled by merit percent", func(t *testing.T) {
		service, m := newTestService()
		handler := NewWorkOrderCompletedHandler(service, zap.NewNop())
		tech := newTech(t, companyID)
		require.NoError(t, tech.SetMeritPercent(110))
		account := wallet.NewAccount(companyID, tech.ID)

		m.technicians.On("FindByID", mock.Anything, companyID, tech.ID).Return(tech, nil)
		m.accounts.On("FindByTechnician", mock.Anything, companyID, tech.ID).Return(account, nil)
		m.accounts.On("SavePosting", mock.Anything, account, mock.AnythingOfType("*wallet.Transaction")).Return(nil)
		m.events.On("Publish", mock.Anything, mock.Anything).Return(nil)

		workOrderID := uuid.New()
		event := workorder.NewWorkOrderCompletedEvent(workOrderID, companyID, tech.ID, decimal.NewFromInt(120))

		require.NoError(t, handler.Handle(context.Background(), event))

		assert.True(t, account.Balance.Equal(decimal.NewFromInt(132)))
		var saved *wallet.Transaction
		for _, call := range m.accounts.Calls {
			if call.Method == "SavePosting" {
				saved = call.Arguments.Get(2).(*wallet.Transaction)
			}
		}
		require.NotNil(t, saved)
		assert.Equal(t, workOrderID.String(), saved.Reference)
	})

	t.Run("skips work orders without payout", func(t *testing.T) {
		service, m := newTestService()
		handler := NewWorkOrderCompletedHandler(service, zap.NewNop())

		event := workorder.NewWorkOrderCompletedEvent(uuid.New(), companyID, uuid.New(), decimal.Zero)

		require.NoError(t, handler.Handle(context.Background(), event))
		m.accounts.AssertNotCalled(t, "SavePosting", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("ignores unrelated event types", func(t *testing.T) {
		service, m := newTestService()
		handler := NewWorkOrderCompletedHandler(service, zap.NewNop())

		event := workorder.NewWorkOrderCreatedEvent(uuid.New(), companyID, uuid.New(), "routine")

		require.NoError(t, handler.Handle(context.Background(), event))
		m.technicians.AssertNotCalled(t, "FindByID", mock.Anything, mock.Anything, mock.Anything)
	})
}
