package identity

import (
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/dispatchiq/backend/internal/domain/shared"
)

// UserStatus represents the status of a user account
type UserStatus string

const (
	UserStatusActive   UserStatus = "active"
	UserStatusInactive UserStatus = "inactive"
	UserStatusLocked   UserStatus = "locked"
)

// UserRole represents the role of a user within a company
type UserRole string

const (
	RoleOwner      UserRole = "owner"
	RoleDispatcher UserRole = "dispatcher"
	RoleTechnician UserRole = "technician"
)

const (
	// MaxFailedLogins is the number of failed attempts before lockout
	MaxFailedLogins = 5
	// LockoutDuration is how long an account stays locked after too many failures
	LockoutDuration = 15 * time.Minute

	bcryptCost = 12
)

var (
	emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

	// The password policy requires a lowercase letter, an uppercase letter,
	// a digit and a special character, with total length 8 to 64. Go's
	// regexp has no lookaheads so each class is checked separately.
	lowerPattern   = regexp.MustCompile(`[a-z]`)
	upperPattern   = regexp.MustCompile(`[A-Z]`)
	digitPattern   = regexp.MustCompile(`\d`)
	specialPattern = regexp.MustCompile(`[@$!%*?&]`)
)

// User represents a user account that signs in by email and password.
// Users belong to a company once onboarding creates one; until then
// CompanyID is nil.
type User struct {
	shared.BaseAggregateRoot
	Email             string
	PasswordHash      string
	FullName          string
	Role              UserRole
	Status            UserStatus
	CompanyID         *uuid.UUID
	EmailVerified     bool
	VerificationToken string
	VerifiedAt        *time.Time
	FailedLogins      int
	LockedUntil       *time.Time
	LastLoginAt       *time.Time
}

// NewUser creates a new user with a hashed password and a pending
// email verification token.
func NewUser(email, password, fullName string) (*User, error) {
	email = NormalizeEmail(email)
	if !emailPattern.MatchString(email) {
		return nil, shared.NewDomainError("INVALID_EMAIL", "Invalid email address")
	}
	if err := ValidatePassword(password); err != nil {
		return nil, err
	}
	if fullName = strings.TrimSpace(fullName); fullName == "" {
		return nil, shared.NewDomainError("INVALID_INPUT", "Full name is required")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return nil, err
	}

	user := &User{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Email:             email,
		PasswordHash:      string(hash),
		FullName:          fullName,
		Role:              RoleOwner,
		Status:            UserStatusActive,
		EmailVerified:     false,
		VerificationToken: uuid.NewString(),
	}
	user.AddDomainEvent(NewUserRegisteredEvent(user.ID, user.Email))
	return user, nil
}

// NormalizeEmail lowercases and trims an email address
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// ValidatePassword checks the password against the account password policy
func ValidatePassword(password string) error {
	if len(password) < 8 || len(password) > 64 {
		return shared.NewDomainError("WEAK_PASSWORD", "Password must be between 8 and 64 characters")
	}
	if !lowerPattern.MatchString(password) ||
		!upperPattern.MatchString(password) ||
		!digitPattern.MatchString(password) ||
		!specialPattern.MatchString(password) {
		return shared.NewDomainError("WEAK_PASSWORD",
			"Password must contain lowercase, uppercase, digit and special character (@$!%*?&)")
	}
	return nil
}

// VerifyPassword checks the given password against the stored hash.
// A wrong password counts toward the lockout threshold.
func (u *User) VerifyPassword(password string) error {
	if u.IsLocked() {
		return shared.NewDomainError("ACCOUNT_LOCKED", "Account is temporarily locked due to failed login attempts")
	}
	u.clearExpiredLock()
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		u.recordFailedLogin()
		return shared.NewDomainError("INVALID_CREDENTIALS", "Invalid email or password")
	}
	u.recordSuccessfulLogin()
	return nil
}

// clearExpiredLock restores the full attempt budget once a lockout
// window has passed. Without it the stale counter would re-lock the
// account on the very next wrong password.
func (u *User) clearExpiredLock() {
	if u.LockedUntil == nil || time.Now().Before(*u.LockedUntil) {
		return
	}
	u.FailedLogins = 0
	u.LockedUntil = nil
	if u.Status == UserStatusLocked {
		u.Status = UserStatusActive
	}
}

func (u *User) recordFailedLogin() {
	u.FailedLogins++
	if u.FailedLogins >= MaxFailedLogins {
		until := time.Now().Add(LockoutDuration)
		u.LockedUntil = &until
		u.Status = UserStatusLocked
		u.AddDomainEvent(NewUserLockedEvent(u.ID, u.Email, until))
	}
	u.Touch()
	u.IncrementVersion()
}

func (u *User) recordSuccessfulLogin() {
	now := time.Now()
	u.FailedLogins = 0
	u.LockedUntil = nil
	if u.Status == UserStatusLocked {
		u.Status = UserStatusActive
	}
	u.LastLoginAt = &now
	u.Touch()
	u.IncrementVersion()
}

// IsLocked reports whether the account is currently locked out
func (u *User) IsLocked() bool {
	return u.LockedUntil != nil && time.Now().Before(*u.LockedUntil)
}

// IsActive reports whether the account can sign in
func (u *User) IsActive() bool {
	return u.Status == UserStatusActive && !u.IsLocked()
}

// VerifyEmail marks the email as verified if the token matches
func (u *User) VerifyEmail(token string) error {
	if u.EmailVerified {
		return shared.NewDomainError("ALREADY_VERIFIED", "Email is already verified")
	}
	if token == "" || token != u.VerificationToken {
		return shared.NewDomainError("INVALID_TOKEN", "Invalid or expired verification token")
	}
	now := time.Now()
	u.EmailVerified = true
	u.VerifiedAt = &now
	u.VerificationToken = ""
	u.Touch()
	u.IncrementVersion()
	u.AddDomainEvent(NewUserEmailVerifiedEvent(u.ID, u.Email))
	return nil
}

// RegenerateVerificationToken issues a fresh verification token for
// resending the verification email.
func (u *User) RegenerateVerificationToken() error {
	if u.EmailVerified {
		return shared.NewDomainError("ALREADY_VERIFIED", "Email is already verified")
	}
	u.VerificationToken = uuid.NewString()
	u.Touch()
	u.IncrementVersion()
	return nil
}

// ChangePassword updates the password after validating the current one
func (u *User) ChangePassword(currentPassword, newPassword string) error {
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(currentPassword)); err != nil {
		return shared.NewDomainError("INVALID_CREDENTIALS", "Current password is incorrect")
	}
	if err := ValidatePassword(newPassword); err != nil {
		return err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcryptCost)
	if err != nil {
		return err
	}
	u.PasswordHash = string(hash)
	u.Touch()
	u.IncrementVersion()
	return nil
}

// AssignCompany attaches the user to a company. A user belongs to at
// most one company.
func (u *User) AssignCompany(companyID uuid.UUID) error {
	if u.CompanyID != nil {
		return shared.NewDomainError("COMPANY_ALREADY_ASSIGNED", "User already belongs to a company")
	}
	u.CompanyID = &companyID
	u.Touch()
	u.IncrementVersion()
	return nil
}

// UpdateProfile updates the user's display name
func (u *User) UpdateProfile(fullName string) error {
	if fullName = strings.TrimSpace(fullName); fullName == "" {
		return shared.NewDomainError("INVALID_INPUT", "Full name is required")
	}
	u.FullName = fullName
	u.Touch()
	u.IncrementVersion()
	return nil
}

// ChangeRole updates the user's role within the company
func (u *User) ChangeRole(role UserRole) error {
	switch role {
	case RoleOwner, RoleDispatcher, RoleTechnician:
	default:
		return shared.NewDomainError("INVALID_ROLE", "Unknown user role")
	}
	u.Role = role
	u.Touch()
	u.IncrementVersion()
	return nil
}

// Deactivate disables the account
func (u *User) Deactivate() {
	u.Status = UserStatusInactive
	u.Touch()
	u.IncrementVersion()
}
