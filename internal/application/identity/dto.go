package identity

import (
	"time"

	"github.com/google/uuid"

	"github.com/dispatchiq/backend/internal/domain/shared"
)

// SignupInput contains the input for account registration
type SignupInput struct {
	Email    string
	Password string
	FullName string
}

// SignupResult contains the result of a successful registration.
// VerificationToken is handed to the mail sender; it is never exposed
// through the API.
type SignupResult struct {
	User              UserInfo
	VerificationToken string
}

// SigninInput contains the input for user sign in
type SigninInput struct {
	Email    string
	Password string
}

// SigninResult contains the result of a successful sign in
type SigninResult struct {
	AccessToken           string
	RefreshToken          string
	AccessTokenExpiresAt  time.Time
	RefreshTokenExpiresAt time.Time
	TokenType             string
	User                  UserInfo
}

// UserInfo contains basic user information returned by auth operations
type UserInfo struct {
	ID            uuid.UUID
	Email         string
	FullName      string
	Role          string
	CompanyID     *uuid.UUID
	EmailVerified bool
}

// RefreshTokenInput contains the input for token refresh
type RefreshTokenInput struct {
	RefreshToken string
}

// RefreshTokenResult contains the result of a token refresh
type RefreshTokenResult struct {
	AccessToken           string
	RefreshToken          string
	AccessTokenExpiresAt  time.Time
	RefreshTokenExpiresAt time.Time
	TokenType             string
}

// SignoutInput contains the tokens to revoke on sign out
type SignoutInput struct {
	AccessToken  string
	RefreshToken string
}

// VerifyEmailInput contains the input for email verification
type VerifyEmailInput struct {
	Token string
}

// ResendVerificationInput contains the input for resending the
// verification email
type ResendVerificationInput struct {
	Email string
}

// ResendVerificationResult carries the fresh verification token
type ResendVerificationResult struct {
	VerificationToken string
}

// ChangePasswordInput contains the input for password change
type ChangePasswordInput struct {
	UserID          uuid.UUID
	CurrentPassword string
	NewPassword     string
}

// ListUsersInput contains filters for listing a company's user accounts
type ListUsersInput struct {
	CompanyID uuid.UUID
	Keyword   string
	Status    string
	Filter    shared.Filter
}

// GetUserInput identifies a user within a company
type GetUserInput struct {
	CompanyID uuid.UUID
	UserID    uuid.UUID
}

// UpdateUserInput contains the input for updating a company user.
// An empty Role leaves the current role unchanged.
type UpdateUserInput struct {
	CompanyID uuid.UUID
	UserID    uuid.UUID
	FullName  string
	Role      string
}

// DeactivateUserInput contains the input for deactivating a company
// user. ActorID is the signed in user performing the action.
type DeactivateUserInput struct {
	CompanyID uuid.UUID
	UserID    uuid.UUID
	ActorID   uuid.UUID
}

// GetCurrentUserInput contains the input for fetching the signed in user
type GetCurrentUserInput struct {
	UserID uuid.UUID
}

// CurrentUserResult contains the signed in user's information
type CurrentUserResult struct {
	User UserInfo
}
