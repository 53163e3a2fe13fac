package identity

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/dispatchiq/backend/internal/domain/identity"
	"github.com/dispatchiq/backend/internal/domain/shared"
	"github.com/dispatchiq/backend/internal/infrastructure/auth"
	"github.com/dispatchiq/backend/internal/infrastructure/config"
)

// MockUserRepository is a mock implementation of identity.UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Save(ctx context.Context, user *identity.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*identity.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.User), args.Error(1)
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*identity.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.User), args.Error(1)
}

func (m *MockUserRepository) FindByVerificationToken(ctx context.Context, token string) (*identity.User, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.User), args.Error(1)
}

func (m *MockUserRepository) List(ctx context.Context, filter identity.UserFilter) (shared.Paginated[*identity.User], error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(shared.Paginated[*identity.User]), args.Error(1)
}

func (m *MockUserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	args := m.Called(ctx, email)
	return args.Bool(0), args.Error(1)
}

func (m *MockUserRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
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

func newTestAuthService(userRepo *MockUserRepository, events *MockEventPublisher) *AuthService {
	jwtService := auth.NewJWTService(config.JWTConfig{
		Secret:                 "test-secret-key-that-is-long-enough",
		AccessTokenExpiration:  15 * time.Minute,
		RefreshTokenExpiration: 24 * time.Hour,
		Issuer:                 "dispatchiq-test",
	})
	return NewAuthService(userRepo, jwtService, auth.NewInMemoryTokenBlacklist(), events, zap.NewNop())
}

func TestAuthService_Signup(t *testing.T) {
	t.Run("registers new user", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		events := new(MockEventPublisher)
		service := newTestAuthService(userRepo, events)

		userRepo.On("ExistsByEmail", mock.Anything, "jordan@example.com").Return(false, nil)
		userRepo.On("Save", mock.Anything, mock.AnythingOfType("*identity.User")).Return(nil)
		events.On("Publish", mock.Anything, mock.Anything).Return(nil)

		result, err := service.Signup(context.Background(), SignupInput{
			Email:    "Jordan@Example.com",
			Password: "Sunny$Day42",
			FullName: "Jordan Reyes",
		})

		require.NoError(t, err)
		assert.Equal(t, "jordan@example.com", result.User.Email)
		assert.Equal(t, "owner", result.User.Role)
		assert.NotEmpty(t, result.VerificationToken)
		userRepo.AssertExpectations(t)
	})

	t.Run("rejects duplicate email", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		events := new(MockEventPublisher)
		service := newTestAuthService(userRepo, events)

		userRepo.On("ExistsByEmail", mock.Anything, "jordan@example.com").Return(true, nil)

		_, err := service.Signup(context.Background(), SignupInput{
			Email:    "jordan@example.com",
			Password: "Sunny$Day42",
			FullName: "Jordan Reyes",
		})

		require.Error(t, err)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "EMAIL_TAKEN", domainErr.Code)
	})

	t.Run("rejects weak password", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		events := new(MockEventPublisher)
		service := newTestAuthService(userRepo, events)

		userRepo.On("ExistsByEmail", mock.Anything, mock.Anything).Return(false, nil)

		_, err := service.Signup(context.Background(), SignupInput{
			Email:    "jordan@example.com",
			Password: "weak",
			FullName: "Jordan Reyes",
		})

		require.Error(t, err)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "WEAK_PASSWORD", domainErr.Code)
	})
}

func TestAuthService_Signin(t *testing.T) {
	newUser := func(t *testing.T) *identity.User {
		user, err := identity.NewUser("jordan@example.com", "Sunny$Day42", "Jordan Reyes")
		require.NoError(t, err)
		require.NoError(t, user.VerifyEmail(user.VerificationToken))
		user.ClearDomainEvents()
		return user
	}

	t.Run("returns token pair for valid credentials", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		events := new(MockEventPublisher)
		service := newTestAuthService(userRepo, events)

		user := newUser(t)
		userRepo.On("FindByEmail", mock.Anything, "jordan@example.com").Return(user, nil)
		userRepo.On("Save", mock.Anything, user).Return(nil)

		result, err := service.Signin(context.Background(), SigninInput{
			Email:    "jordan@example.com",
			Password: "Sunny$Day42",
		})

		require.NoError(t, err)
		assert.NotEmpty(t, result.AccessToken)
		assert.NotEmpty(t, result.RefreshToken)
		assert.Equal(t, "Bearer", result.TokenType)
		assert.Equal(t, user.ID, result.User.ID)
	})

	t.Run("rejects wrong password and persists the failure", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		events := new(MockEventPublisher)
		service := newTestAuthService(userRepo, events)

		user := newUser(t)
		userRepo.On("FindByEmail", mock.Anything, "jordan@example.com").Return(user, nil)
		userRepo.On("Save", mock.Anything, user).Return(nil)

		_, err := service.Signin(context.Background(), SigninInput{
			Email:    "jordan@example.com",
			Password: "Wrong$Pass1",
		})

		require.Error(t, err)
		assert.Equal(t, 1, user.FailedLogins)
		userRepo.AssertCalled(t, "Save", mock.Anything, user)
	})

	t.Run("rejects correct password when email is unverified", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		events := new(MockEventPublisher)
		service := newTestAuthService(userRepo, events)

		user, err := identity.NewUser("jordan@example.com", "Sunny$Day42", "Jordan Reyes")
		require.NoError(t, err)
		user.ClearDomainEvents()
		userRepo.On("FindByEmail", mock.Anything, "jordan@example.com").Return(user, nil)
		userRepo.On("Save", mock.Anything, user).Return(nil)

		result, err := service.Signin(context.Background(), SigninInput{
			Email:    "jordan@example.com",
			Password: "Sunny$Day42",
		})

		require.Error(t, err)
		assert.Nil(t, result)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "EMAIL_NOT_VERIFIED", domainErr.Code)
	})

	t.Run("does not reveal whether the email exists", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		events := new(MockEventPublisher)
		service := newTestAuthService(userRepo, events)

		userRepo.On("FindByEmail", mock.Anything, "ghost@example.com").Return(nil, shared.ErrNotFound)

		_, err := service.Signin(context.Background(), SigninInput{
			Email:    "ghost@example.com",
			Password: "Sunny$Day42",
		})

		require.Error(t, err)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INVALID_CREDENTIALS", domainErr.Code)
	})
}

func TestAuthService_RefreshToken(t *testing.T) {
	t.Run("issues fresh pair and revokes the used refresh token", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		events := new(MockEventPublisher)
		service := newTestAuthService(userRepo, events)

		user, err := identity.NewUser("jordan@example.com", "Sunny$Day42", "Jordan Reyes")
		require.NoError(t, err)
		user.ClearDomainEvents()

		pair, err := service.jwtService.GenerateTokenPair(auth.GenerateTokenInput{
			UserID: user.ID,
			Email:  user.Email,
			Role:   string(user.Role),
		})
		require.NoError(t, err)

		userRepo.On("FindByID", mock.Anything, user.ID).Return(user, nil)

		result, err := service.RefreshToken(context.Background(), RefreshTokenInput{RefreshToken: pair.RefreshToken})

		require.NoError(t, err)
		assert.NotEmpty(t, result.AccessToken)

		// The used refresh token is now revoked
		_, err = service.RefreshToken(context.Background(), RefreshTokenInput{RefreshToken: pair.RefreshToken})
		require.Error(t, err)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "TOKEN_REVOKED", domainErr.Code)
	})

	t.Run("caps how often a session can be refreshed", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		jwtService := auth.NewJWTService(config.JWTConfig{
			Secret:                 "test-secret-key-that-is-long-enough",
			AccessTokenExpiration:  15 * time.Minute,
			RefreshTokenExpiration: 24 * time.Hour,
			Issuer:                 "dispatchiq-test",
			MaxRefreshCount:        1,
		})
		service := NewAuthService(userRepo, jwtService, auth.NewInMemoryTokenBlacklist(), new(MockEventPublisher), zap.NewNop())

		user, err := identity.NewUser("jordan@example.com", "Sunny$Day42", "Jordan Reyes")
		require.NoError(t, err)
		user.ClearDomainEvents()
		userRepo.On("FindByID", mock.Anything, user.ID).Return(user, nil)

		pair, err := jwtService.GenerateTokenPair(auth.GenerateTokenInput{
			UserID: user.ID,
			Email:  user.Email,
			Role:   string(user.Role),
		})
		require.NoError(t, err)

		result, err := service.RefreshToken(context.Background(), RefreshTokenInput{RefreshToken: pair.RefreshToken})
		require.NoError(t, err)

		_, err = service.RefreshToken(context.Background(), RefreshTokenInput{RefreshToken: result.RefreshToken})
		require.Error(t, err)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "REFRESH_LIMIT_REACHED", domainErr.Code)
	})

	t.Run("rejects garbage token", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		events := new(MockEventPublisher)
		service := newTestAuthService(userRepo, events)

		_, err := service.RefreshToken(context.Background(), RefreshTokenInput{RefreshToken: "not-a-token"})

		require.Error(t, err)
	})
}

func TestAuthService_VerifyEmail(t *testing.T) {
	t.Run("verifies email from token", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		events := new(MockEventPublisher)
		service := newTestAuthService(userRepo, events)

		user, err := identity.NewUser("jordan@example.com", "Sunny$Day42", "Jordan Reyes")
		require.NoError(t, err)
		user.ClearDomainEvents()
		token := user.VerificationToken

		userRepo.On("FindByVerificationToken", mock.Anything, token).Return(user, nil)
		userRepo.On("Save", mock.Anything, user).Return(nil)
		events.On("Publish", mock.Anything, mock.Anything).Return(nil)

		err = service.VerifyEmail(context.Background(), VerifyEmailInput{Token: token})

		require.NoError(t, err)
		assert.True(t, user.EmailVerified)
	})

	t.Run("rejects unknown token", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		events := new(MockEventPublisher)
		service := newTestAuthService(userRepo, events)

		userRepo.On("FindByVerificationToken", mock.Anything, "bogus").Return(nil, shared.ErrNotFound)

		err := service.VerifyEmail(context.Background(), VerifyEmailInput{Token: "bogus"})

		require.Error(t, err)
	})
}

func TestAuthService_Signout(t *testing.T) {
	t.Run("revokes access token", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		events := new(MockEventPublisher)
		service := newTestAuthService(userRepo, events)

		pair, err := service.jwtService.GenerateTokenPair(auth.GenerateTokenInput{
			UserID: uuid.New(),
			Email:  "jordan@example.com",
			Role:   "owner",
		})
		require.NoError(t, err)

		err = service.Signout(context.Background(), SignoutInput{
			AccessToken:  pair.AccessToken,
			RefreshToken: pair.RefreshToken,
		})
		require.NoError(t, err)

		claims, err := service.jwtService.ValidateAccessToken(pair.AccessToken)
		require.NoError(t, err)
		revoked, err := service.blacklist.IsBlacklisted(context.Background(), claims.ID)
		require.NoError(t, err)
		assert.True(t, revoked)
	})
}
