package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/dispatchiq/backend/internal/domain/identity"
)

// UserModel is the persistence model for users
type UserModel struct {
	AggregateModel
	Email             string `gorm:"type:varchar(255);not null;uniqueIndex"`
	PasswordHash      string `gorm:"type:varchar(255);not null"`
	FullName          string `gorm:"type:varchar(255);not null"`
	Role              string `gorm:"type:varchar(32);not null"`
	Status            string `gorm:"type:varchar(32);not null;index"`
	CompanyID         *uuid.UUID `gorm:"type:uuid;index"`
	EmailVerified     bool       `gorm:"not null;default:false"`
	VerificationToken string     `gorm:"type:varchar(64);index"`
	VerifiedAt        *time.Time
	FailedLogins      int `gorm:"not null;default:0"`
	LockedUntil       *time.Time
	LastLoginAt       *time.Time
}

// TableName returns the table name for UserModel
func (UserModel) TableName() string {
	return "users"
}

// ToDomain converts the model to a domain User
func (m *UserModel) ToDomain() *identity.User {
	user := &identity.User{
		Email:             m.Email,
		PasswordHash:      m.PasswordHash,
		FullName:          m.FullName,
		Role:              identity.UserRole(m.Role),
		Status:            identity.UserStatus(m.Status),
		CompanyID:         m.CompanyID,
		EmailVerified:     m.EmailVerified,
		VerificationToken: m.VerificationToken,
		VerifiedAt:        m.VerifiedAt,
		FailedLogins:      m.FailedLogins,
		LockedUntil:       m.LockedUntil,
		LastLoginAt:       m.LastLoginAt,
	}
	m.PopulateAggregateRoot(&user.BaseAggregateRoot)
	return user
}

// FromDomain populates the model from a domain User
func (m *UserModel) FromDomain(user *identity.User) {
	m.FromDomainAggregateRoot(user.BaseAggregateRoot)
	m.Email = user.Email
	m.PasswordHash = user.PasswordHash
	m.FullName = user.FullName
	m.Role = string(user.Role)
	m.Status = string(user.Status)
	m.CompanyID = user.CompanyID
	m.EmailVerified = user.EmailVerified
	m.VerificationToken = user.VerificationToken
	m.VerifiedAt = user.VerifiedAt
	m.FailedLogins = user.FailedLogins
	m.LockedUntil = user.LockedUntil
	m.LastLoginAt = user.LastLoginAt
}

// CompanyModel is the persistence model for companies
type CompanyModel struct {
	AggregateModel
	Name               string     `gorm:"type:varchar(255);not null"`
	Timezone           string     `gorm:"type:varchar(64);not null"`
	WorkdayStart       string     `gorm:"type:varchar(8);not null"`
	WorkdayEnd         string     `gorm:"type:varchar(8);not null"`
	AutoAssign         bool       `gorm:"not null;default:true"`
	IntakeMethod       string     `gorm:"type:varchar(32);not null"`
	CollectPTE         bool       `gorm:"column:collect_pte;not null;default:true"`
	CollectWindow      bool       `gorm:"not null;default:true"`
	AfterHoursOnCall   bool       `gorm:"not null;default:false"`
	OnCallRotation     string     `gorm:"type:varchar(16);not null;default:weekly"`
	OnCallPhone        string     `gorm:"type:varchar(32)"`
	OwnerUserID        uuid.UUID  `gorm:"type:uuid;not null;index"`
	OnboardingComplete bool       `gorm:"not null;default:false"`
	OnboardedAt        *time.Time
}

// TableName returns the table name for CompanyModel
func (CompanyModel) TableName() string {
	return "companies"
}

// ToDomain converts the model to a domain Company
func (m *CompanyModel) ToDomain() *identity.Company {
	company := &identity.Company{
		Name:               m.Name,
		Timezone:           m.Timezone,
		WorkdayStart:       m.WorkdayStart,
		WorkdayEnd:         m.WorkdayEnd,
		AutoAssign:         m.AutoAssign,
		IntakeMethod:       identity.IntakeMethod(m.IntakeMethod),
		CollectPTE:         m.CollectPTE,
		CollectWindow:      m.CollectWindow,
		AfterHoursOnCall:   m.AfterHoursOnCall,
		OnCallRotation:     identity.OnCallRotation(m.OnCallRotation),
		OnCallPhone:        m.OnCallPhone,
		OwnerUserID:        m.OwnerUserID,
		OnboardingComplete: m.OnboardingComplete,
		OnboardedAt:        m.OnboardedAt,
	}
	m.PopulateAggregateRoot(&company.BaseAggregateRoot)
	return company
}

// FromDomain populates the model from a domain Company
func (m *CompanyModel) FromDomain(company *identity.Company) {
	m.FromDomainAggregateRoot(company.BaseAggregateRoot)
	m.Name = company.Name
	m.Timezone = company.Timezone
	m.WorkdayStart = company.WorkdayStart
	m.WorkdayEnd = company.WorkdayEnd
	m.AutoAssign = company.AutoAssign
	m.IntakeMethod = string(company.IntakeMethod)
	m.CollectPTE = company.CollectPTE
	m.CollectWindow = company.CollectWindow
	m.AfterHoursOnCall = company.AfterHoursOnCall
	m.OnCallRotation = string(company.OnCallRotation)
	m.OnCallPhone = company.OnCallPhone
	m.OwnerUserID = company.OwnerUserID
	m.OnboardingComplete = company.OnboardingComplete
	m.OnboardedAt = company.OnboardedAt
}
