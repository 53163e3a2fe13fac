package identity

import (
	"time"

	"github.com/google/uuid"

	"github.com/dispatchiq/backend/internal/domain/shared"
)

// Event types for the identity context
const (
	EventUserRegistered    = "identity.user.registered"
	EventUserEmailVerified = "identity.user.email_verified"
	EventUserLocked        = "identity.user.locked"
	EventCompanyCreated    = "identity.company.created"
	EventCompanyOnboarded  = "identity.company.onboarded"
)

// UserRegisteredEvent is published when a new user signs up
type UserRegisteredEvent struct {
	shared.BaseDomainEvent
	Email string `json:"email"`
}

// NewUserRegisteredEvent creates a new user registered event
func NewUserRegisteredEvent(userID uuid.UUID, email string) *UserRegisteredEvent {
	return &UserRegisteredEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventUserRegistered, "User", userID, uuid.Nil),
		Email:           email,
	}
}

// UserEmailVerifiedEvent is published when a user verifies their email
type UserEmailVerifiedEvent struct {
	shared.BaseDomainEvent
	Email string `json:"email"`
}

// NewUserEmailVerifiedEvent creates a new email verified event
func NewUserEmailVerifiedEvent(userID uuid.UUID, email string) *UserEmailVerifiedEvent {
	return &UserEmailVerifiedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventUserEmailVerified, "User", userID, uuid.Nil),
		Email:           email,
	}
}

// UserLockedEvent is published when an account is locked out
type UserLockedEvent struct {
	shared.BaseDomainEvent
	Email       string    `json:"email"`
	LockedUntil time.Time `json:"locked_until"`
}

// NewUserLockedEvent creates a new user locked event
func NewUserLockedEvent(userID uuid.UUID, email string, until time.Time) *UserLockedEvent {
	return &UserLockedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventUserLocked, "User", userID, uuid.Nil),
		Email:           email,
		LockedUntil:     until,
	}
}

// CompanyCreatedEvent is published when a company is created
type CompanyCreatedEvent struct {
	shared.BaseDomainEvent
	Name        string    `json:"name"`
	OwnerUserID uuid.UUID `json:"owner_user_id"`
}

// NewCompanyCreatedEvent creates a new company created event
func NewCompanyCreatedEvent(companyID uuid.UUID, name string, ownerUserID uuid.UUID) *CompanyCreatedEvent {
	return &CompanyCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventCompanyCreated, "Company", companyID, companyID),
		Name:            name,
		OwnerUserID:     ownerUserID,
	}
}

// CompanyOnboardedEvent is published when onboarding completes
type CompanyOnboardedEvent struct {
	shared.BaseDomainEvent
	Name string `json:"name"`
}

// NewCompanyOnboardedEvent creates a new company onboarded event
func NewCompanyOnboardedEvent(companyID uuid.UUID, name string) *CompanyOnboardedEvent {
	return &CompanyOnboardedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventCompanyOnboarded, "Company", companyID, companyID),
		Name:            name,
	}
}
