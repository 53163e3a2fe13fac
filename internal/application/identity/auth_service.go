package identity

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/dispatchiq/backend/internal/domain/identity"
	"github.com/dispatchiq/backend/internal/domain/shared"
	"github.com/dispatchiq/backend/internal/infrastructure/auth"
)

// AuthService handles registration and authentication
type AuthService struct {
	userRepo   identity.UserRepository
	jwtService *auth.JWTService
	blacklist  auth.TokenBlacklist
	events     shared.EventPublisher
	logger     *zap.Logger
}

// NewAuthService creates a new authentication service
func NewAuthService(
	userRepo identity.UserRepository,
	jwtService *auth.JWTService,
	blacklist auth.TokenBlacklist,
	events shared.EventPublisher,
	logger *zap.Logger,
) *AuthService {
	return &AuthService{
		userRepo:   userRepo,
		jwtService: jwtService,
		blacklist:  blacklist,
		events:     events,
		logger:     logger,
	}
}

// Signup registers a new account. The first user of a company signs up
// as owner and creates the company later during onboarding.
func (s *AuthService) Signup(ctx context.Context, input SignupInput) (*SignupResult, error) {
	exists, err := s.userRepo.ExistsByEmail(ctx, input.Email)
	if err != nil {
		s.logger.Error("Failed to check email uniqueness", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to register account")
	}
	if exists {
		return nil, shared.NewDomainError("EMAIL_TAKEN", "An account with this email already exists")
	}

	user, err := identity.NewUser(input.Email, input.Password, input.FullName)
	if err != nil {
		return nil, err
	}

	if err := s.userRepo.Save(ctx, user); err != nil {
		s.logger.Error("Failed to save new user", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to register account")
	}
	s.publishEvents(ctx, user)

	s.logger.Info("User registered",
		zap.String("user_id", user.ID.String()),
		zap.String("email", user.Email))

	return &SignupResult{
		User:              toUserInfo(user),
		VerificationToken: user.VerificationToken,
	}, nil
}

// Signin authenticates a user and returns a token pair
func (s *AuthService) Signin(ctx context.Context, input SigninInput) (*SigninResult, error) {
	user, err := s.userRepo.FindByEmail(ctx, input.Email)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("INVALID_CREDENTIALS", "Invalid email or password")
		}
		s.logger.Error("Failed to look up user during sign in", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to sign in")
	}

	if user.Status == identity.UserStatusInactive {
		s.logger.Warn("Sign in attempt for deactivated account", zap.String("email", user.Email))
		return nil, shared.NewDomainError("ACCOUNT_DEACTIVATED", "Account has been deactivated")
	}

	verifyErr := user.VerifyPassword(input.Password)
	// Failed attempts and lockouts must be persisted even when the
	// password was wrong.
	if err := s.userRepo.Save(ctx, user); err != nil {
		s.logger.Error("Failed to save user after sign in attempt", zap.Error(err))
	}
	s.publishEvents(ctx, user)
	if verifyErr != nil {
		s.logger.Warn("Sign in failed",
			zap.String("email", user.Email),
			zap.Int("failed_logins", user.FailedLogins))
		return nil, verifyErr
	}

	if !user.EmailVerified {
		s.logger.Warn("Sign in attempt before email verification", zap.String("email", user.Email))
		return nil, shared.NewDomainError("EMAIL_NOT_VERIFIED", "Verify your email address before signing in")
	}

	tokenPair, err := s.jwtService.GenerateTokenPair(auth.GenerateTokenInput{
		UserID:    user.ID,
		CompanyID: user.CompanyID,
		Email:     user.Email,
		Role:      string(user.Role),
	})
	if err != nil {
		s.logger.Error("Failed to generate token pair", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to generate authentication tokens")
	}

	s.logger.Info("User signed in", zap.String("user_id", user.ID.String()))

	return &SigninResult{
		AccessToken:           tokenPair.AccessToken,
		RefreshToken:          tokenPair.RefreshToken,
		AccessTokenExpiresAt:  tokenPair.AccessTokenExpiresAt,
		RefreshTokenExpiresAt: tokenPair.RefreshTokenExpiresAt,
		TokenType:             tokenPair.TokenType,
		User:                  toUserInfo(user),
	}, nil
}

// RefreshToken issues a fresh token pair from a valid refresh token
func (s *AuthService) RefreshToken(ctx context.Context, input RefreshTokenInput) (*RefreshTokenResult, error) {
	claims, err := s.jwtService.ValidateRefreshToken(input.RefreshToken)
	if err != nil {
		switch {
		case errors.Is(err, auth.ErrExpiredToken):
			return nil, shared.NewDomainError("TOKEN_EXPIRED", "Refresh token has expired")
		default:
			return nil, shared.NewDomainError("TOKEN_INVALID", "Invalid refresh token")
		}
	}

	if err := s.checkBlacklist(ctx, claims); err != nil {
		return nil, err
	}

	userID, err := claims.GetUserUUID()
	if err != nil {
		return nil, shared.NewDomainError("TOKEN_INVALID", "Invalid user ID in token")
	}

	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, shared.NewDomainError("USER_NOT_FOUND", "User not found")
	}
	if !user.IsActive() {
		return nil, shared.NewDomainError("ACCOUNT_INACTIVE", "Account is no longer active")
	}

	// Issue a fresh pair so role and company claims pick up any change
	// made since the original sign in. Rotation carries a counter that
	// caps how long a session can extend itself.
	tokenPair, err := s.jwtService.RotateTokenPair(claims, auth.GenerateTokenInput{
		UserID:    user.ID,
		CompanyID: user.CompanyID,
		Email:     user.Email,
		Role:      string(user.Role),
	})
	if err != nil {
		if errors.Is(err, auth.ErrMaxRefreshExceeded) {
			return nil, shared.NewDomainError("REFRESH_LIMIT_REACHED", "Session has been refreshed too many times, sign in again")
		}
		s.logger.Error("Failed to generate token pair during refresh", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to refresh token")
	}

	// Revoke the used refresh token so it cannot be replayed
	if jti := claims.ID; jti != "" {
		if err := s.blacklist.AddToBlacklist(ctx, jti, claims.GetRemainingTTL()); err != nil {
			s.logger.Warn("Failed to blacklist used refresh token", zap.Error(err))
		}
	}

	return &RefreshTokenResult{
		AccessToken:           tokenPair.AccessToken,
		RefreshToken:          tokenPair.RefreshToken,
		AccessTokenExpiresAt:  tokenPair.AccessTokenExpiresAt,
		RefreshTokenExpiresAt: tokenPair.RefreshTokenExpiresAt,
		TokenType:             tokenPair.TokenType,
	}, nil
}

// Signout revokes the presented tokens
func (s *AuthService) Signout(ctx context.Context, input SignoutInput) error {
	if claims, err := s.jwtService.ValidateAccessToken(input.AccessToken); err == nil && claims.ID != "" {
		if err := s.blacklist.AddToBlacklist(ctx, claims.ID, claims.GetRemainingTTL()); err != nil {
			s.logger.Error("Failed to blacklist access token", zap.Error(err))
			return shared.NewDomainError("INTERNAL_ERROR", "Failed to sign out")
		}
	}
	if input.RefreshToken != "" {
		if claims, err := s.jwtService.ValidateRefreshToken(input.RefreshToken); err == nil && claims.ID != "" {
			if err := s.blacklist.AddToBlacklist(ctx, claims.ID, claims.GetRemainingTTL()); err != nil {
				s.logger.Warn("Failed to blacklist refresh token", zap.Error(err))
			}
		}
	}
	return nil
}

// VerifyEmail confirms an email address from its verification token
func (s *AuthService) VerifyEmail(ctx context.Context, input VerifyEmailInput) error {
	user, err := s.userRepo.FindByVerificationToken(ctx, input.Token)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return shared.NewDomainError("INVALID_TOKEN", "Invalid or expired verification token")
		}
		return err
	}

	if err := user.VerifyEmail(input.Token); err != nil {
		return err
	}
	if err := s.userRepo.Save(ctx, user); err != nil {
		s.logger.Error("Failed to save user after email verification", zap.Error(err))
		return shared.NewDomainError("INTERNAL_ERROR", "Failed to verify email")
	}
	s.publishEvents(ctx, user)

	s.logger.Info("Email verified", zap.String("user_id", user.ID.String()))
	return nil
}

// ResendVerification regenerates the verification token for an
// unverified account
func (s *AuthService) ResendVerification(ctx context.Context, input ResendVerificationInput) (*ResendVerificationResult, error) {
	user, err := s.userRepo.FindByEmail(ctx, input.Email)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("USER_NOT_FOUND", "No account with this email")
		}
		return nil, err
	}

	if err := user.RegenerateVerificationToken(); err != nil {
		return nil, err
	}
	if err := s.userRepo.Save(ctx, user); err != nil {
		s.logger.Error("Failed to save user after token regeneration", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to resend verification")
	}

	return &ResendVerificationResult{VerificationToken: user.VerificationToken}, nil
}

// ChangePassword changes a user's password
func (s *AuthService) ChangePassword(ctx context.Context, input ChangePasswordInput) error {
	user, err := s.userRepo.FindByID(ctx, input.UserID)
	if err != nil {
		return shared.NewDomainError("USER_NOT_FOUND", "User not found")
	}

	if err := user.ChangePassword(input.CurrentPassword, input.NewPassword); err != nil {
		return err
	}
	if err := s.userRepo.Save(ctx, user); err != nil {
		s.logger.Error("Failed to save user after password change", zap.Error(err))
		return shared.NewDomainError("INTERNAL_ERROR", "Failed to change password")
	}

	s.logger.Info("Password changed", zap.String("user_id", user.ID.String()))
	return nil
}

// GetCurrentUser returns the signed in user's profile
func (s *AuthService) GetCurrentUser(ctx context.Context, input GetCurrentUserInput) (*CurrentUserResult, error) {
	user, err := s.userRepo.FindByID(ctx, input.UserID)
	if err != nil {
		return nil, shared.NewDomainError("USER_NOT_FOUND", "User not found")
	}
	return &CurrentUserResult{User: toUserInfo(user)}, nil
}

func (s *AuthService) checkBlacklist(ctx context.Context, claims *auth.Claims) error {
	if claims.ID != "" {
		revoked, err := s.blacklist.IsBlacklisted(ctx, claims.ID)
		if err != nil {
			s.logger.Error("Blacklist check failed", zap.Error(err))
			return shared.NewDomainError("INTERNAL_ERROR", "Failed to validate token")
		}
		if revoked {
			return shared.NewDomainError("TOKEN_REVOKED", "Token has been revoked")
		}
	}
	invalidated, err := s.blacklist.IsUserTokenInvalidated(ctx, claims.UserID, claims.GetIssuedAtTime())
	if err != nil {
		s.logger.Error("User invalidation check failed", zap.Error(err))
		return shared.NewDomainError("INTERNAL_ERROR", "Failed to validate token")
	}
	if invalidated {
		return shared.NewDomainError("TOKEN_REVOKED", "Token has been revoked")
	}
	return nil
}

func (s *AuthService) publishEvents(ctx context.Context, user *identity.User) {
	events := user.GetDomainEvents()
	if len(events) == 0 {
		return
	}
	if err := s.events.Publish(ctx, events...); err != nil {
		s.logger.Warn("Failed to publish identity events", zap.Error(err))
	}
	user.ClearDomainEvents()
}

func toUserInfo(user *identity.User) UserInfo {
	return UserInfo{
		ID:            user.ID,
		Email:         user.Email,
		FullName:      user.FullName,
		Role:          string(user.Role),
		CompanyID:     user.CompanyID,
		EmailVerified: user.EmailVerified,
	}
}
