package identity

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/dispatchiq/backend/internal/domain/identity"
	"github.com/dispatchiq/backend/internal/domain/shared"
)

// ListUsers returns the company's user accounts
func (s *AuthService) ListUsers(ctx context.Context, input ListUsersInput) (*shared.Paginated[UserInfo], error) {
	filter := identity.UserFilter{
		Filter:    input.Filter,
		Keyword:   input.Keyword,
		CompanyID: &input.CompanyID,
	}
	if input.Status != "" {
		status := identity.UserStatus(input.Status)
		filter.Status = &status
	}

	result, err := s.userRepo.List(ctx, filter)
	if err != nil {
		s.logger.Error("Failed to list users", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to list users")
	}

	items := make([]UserInfo, 0, len(result.Items))
	for _, user := range result.Items {
		items = append(items, toUserInfo(user))
	}
	out := shared.NewPaginated(items, result.Total, result.Page, result.PageSize)
	return &out, nil
}

// GetUser returns a single user within the caller's company
func (s *AuthService) GetUser(ctx context.Context, input GetUserInput) (*UserInfo, error) {
	user, err := s.companyUser(ctx, input.CompanyID, input.UserID)
	if err != nil {
		return nil, err
	}
	info := toUserInfo(user)
	return &info, nil
}

// UpdateUser updates a company user's profile and role
func (s *AuthService) UpdateUser(ctx context.Context, input UpdateUserInput) (*UserInfo, error) {
	user, err := s.companyUser(ctx, input.CompanyID, input.UserID)
	if err != nil {
		return nil, err
	}

	if err := user.UpdateProfile(input.FullName); err != nil {
		return nil, err
	}
	if input.Role != "" {
		if err := user.ChangeRole(identity.UserRole(input.Role)); err != nil {
			return nil, err
		}
	}

	if err := s.userRepo.Save(ctx, user); err != nil {
		s.logger.Error("Failed to save user update", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to update user")
	}

	s.logger.Info("User updated",
		zap.String("user_id", user.ID.String()),
		zap.String("role", string(user.Role)))

	info := toUserInfo(user)
	return &info, nil
}

// DeactivateUser disables an account and revokes its outstanding tokens
func (s *AuthService) DeactivateUser(ctx context.Context, input DeactivateUserInput) error {
	if input.UserID == input.ActorID {
		return shared.NewDomainError("INVALID_INPUT", "You cannot deactivate your own account")
	}

	user, err := s.companyUser(ctx, input.CompanyID, input.UserID)
	if err != nil {
		return err
	}

	user.Deactivate()
	if err := s.userRepo.Save(ctx, user); err != nil {
		s.logger.Error("Failed to save user deactivation", zap.Error(err))
		return shared.NewDomainError("INTERNAL_ERROR", "Failed to deactivate user")
	}

	// Tokens issued before now must stop working even though the
	// access token itself has not expired yet.
	ttl := s.jwtService.GetRefreshTokenExpiration()
	if err := s.blacklist.AddUserTokensToBlacklist(ctx, user.ID.String(), ttl); err != nil {
		s.logger.Warn("Failed to revoke tokens for deactivated user",
			zap.String("user_id", user.ID.String()), zap.Error(err))
	}

	s.logger.Info("User deactivated", zap.String("user_id", user.ID.String()))
	return nil
}

// companyUser loads a user and verifies company membership. Users from
// other companies are indistinguishable from missing ones.
func (s *AuthService) companyUser(ctx context.Context, companyID, userID uuid.UUID) (*identity.User, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, shared.NewDomainError("USER_NOT_FOUND", "User not found")
	}
	if user.CompanyID == nil || *user.CompanyID != companyID {
		return nil, shared.NewDomainError("USER_NOT_FOUND", "User not found")
	}
	return user, nil
}
