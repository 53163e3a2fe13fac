package models

import (
	"github.com/google/uuid"

	"github.com/dispatchiq/backend/internal/domain/workforce"
)

// TechnicianModel is the persistence model for technicians
type TechnicianModel struct {
	CompanyAggregateModel
	FullName          string     `gorm:"type:varchar(255);not null"`
	Phone             string     `gorm:"type:varchar(32)"`
	Email             string     `gorm:"type:varchar(255)"`
	Trade             string     `gorm:"type:varchar(64)"`
	ShiftStart        string     `gorm:"type:varchar(8)"`
	ShiftEnd          string     `gorm:"type:varchar(8)"`
	MeritPercent      int        `gorm:"not null;default:100"`
	Availability      string     `gorm:"type:varchar(32);not null;index"`
	DefaultPropertyID *uuid.UUID `gorm:"type:uuid;index"`
	Active            bool       `gorm:"not null;default:true"`
}

// TableName returns the table name for TechnicianModel
func (TechnicianModel) TableName() string {
	return "technicians"
}

// ToDomain converts the model to a domain Technician
func (m *TechnicianModel) ToDomain() *workforce.Technician {
	tech := &workforce.Technician{
		FullName:          m.FullName,
		Phone:             m.Phone,
		Email:             m.Email,
		Trade:             m.Trade,
		ShiftStart:        m.ShiftStart,
		ShiftEnd:          m.ShiftEnd,
		MeritPercent:      m.MeritPercent,
		Availability:      workforce.Availability(m.Availability),
		DefaultPropertyID: m.DefaultPropertyID,
		Active:            m.Active,
	}
	m.PopulateCompanyAggregateRoot(&tech.CompanyAggregateRoot)
	return tech
}

// FromDomain populates the model from a domain Technician
func (m *TechnicianModel) FromDomain(tech *workforce.Technician) {
	m.FromDomainCompanyAggregateRoot(tech.CompanyAggregateRoot)
	m.FullName = tech.FullName
	m.Phone = tech.Phone
	m.Email = tech.Email
	m.Trade = tech.Trade
	m.ShiftStart = tech.ShiftStart
	m.ShiftEnd = tech.ShiftEnd
	m.MeritPercent = tech.MeritPercent
	m.Availability = string(tech.Availability)
	m.DefaultPropertyID = tech.DefaultPropertyID
	m.Active = tech.Active
}
