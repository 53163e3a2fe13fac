package identity

import (
	"context"

	"github.com/google/uuid"

	"github.com/dispatchiq/backend/internal/domain/shared"
)

// UserFilter defines filtering options for user queries
type UserFilter struct {
	shared.Filter
	Keyword   string
	Status    *UserStatus
	CompanyID *uuid.UUID
}

// NewUserFilter creates a user filter with defaults
func NewUserFilter() UserFilter {
	return UserFilter{Filter: shared.DefaultFilter()}
}

// WithKeyword filters by email or full name
func (f UserFilter) WithKeyword(keyword string) UserFilter {
	f.Keyword = keyword
	return f
}

// WithStatus filters by account status
func (f UserFilter) WithStatus(status UserStatus) UserFilter {
	f.Status = &status
	return f
}

// WithCompany filters by company membership
func (f UserFilter) WithCompany(companyID uuid.UUID) UserFilter {
	f.CompanyID = &companyID
	return f
}

// UserRepository defines persistence operations for users
type UserRepository interface {
	Save(ctx context.Context, user *User) error
	FindByID(ctx context.Context, id uuid.UUID) (*User, error)
	FindByEmail(ctx context.Context, email string) (*User, error)
	FindByVerificationToken(ctx context.Context, token string) (*User, error)
	List(ctx context.Context, filter UserFilter) (shared.Paginated[*User], error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// CompanyRepository defines persistence operations for companies
type CompanyRepository interface {
	Save(ctx context.Context, company *Company) error
	FindByID(ctx context.Context, id uuid.UUID) (*Company, error)
	FindByOwner(ctx context.Context, ownerUserID uuid.UUID) (*Company, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
