package models

import (
	"github.com/google/uuid"

	"github.com/dispatchiq/backend/internal/domain/property"
)

// PropertyModel is the persistence model for properties
type PropertyModel struct {
	CompanyAggregateModel
	Name      string `gorm:"type:varchar(255);not null;uniqueIndex:idx_properties_company_name,priority:2"`
	Address   string `gorm:"type:varchar(512)"`
	City      string `gorm:"type:varchar(128)"`
	State     string `gorm:"type:varchar(64)"`
	Zip       string `gorm:"type:varchar(16)"`
	UnitCount int    `gorm:"not null;default:0"`
	Notes     string `gorm:"type:text"`
}

// TableName returns the table name for PropertyModel
func (PropertyModel) TableName() string {
	return "properties"
}

// ToDomain converts the model to a domain Property
func (m *PropertyModel) ToDomain() *property.Property {
	p := &property.Property{
		Name:      m.Name,
		Address:   m.Address,
		City:      m.City,
		State:     m.State,
		Zip:       m.Zip,
		UnitCount: m.UnitCount,
		Notes:     m.Notes,
	}
	m.PopulateCompanyAggregateRoot(&p.CompanyAggregateRoot)
	return p
}

// FromDomain populates the model from a domain Property
func (m *PropertyModel) FromDomain(p *property.Property) {
	m.FromDomainCompanyAggregateRoot(p.CompanyAggregateRoot)
	m.Name = p.Name
	m.Address = p.Address
	m.City = p.City
	m.State = p.State
	m.Zip = p.Zip
	m.UnitCount = p.UnitCount
	m.Notes = p.Notes
}

// PropertyUnitModel is the persistence model for property units
type PropertyUnitModel struct {
	BaseModel
	PropertyID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_units_property_label,priority:1"`
	Label      string    `gorm:"type:varchar(64);not null;uniqueIndex:idx_units_property_label,priority:2"`
	Occupied   bool      `gorm:"not null;default:false"`
	TenantName string    `gorm:"type:varchar(255)"`
}

// TableName returns the table name for PropertyUnitModel
func (PropertyUnitModel) TableName() string {
	return "property_units"
}

// ToDomain converts the model to a domain PropertyUnit
func (m *PropertyUnitModel) ToDomain() *property.PropertyUnit {
	return &property.PropertyUnit{
		BaseEntity: m.BaseModel.ToDomain(),
		PropertyID: m.PropertyID,
		Label:      m.Label,
		Occupied:   m.Occupied,
		TenantName: m.TenantName,
	}
}

// FromDomain populates the model from a domain PropertyUnit
func (m *PropertyUnitModel) FromDomain(unit *property.PropertyUnit) {
	m.FromDomainBaseEntity(unit.BaseEntity)
	m.PropertyID = unit.PropertyID
	m.Label = unit.Label
	m.Occupied = unit.Occupied
	m.TenantName = unit.TenantName
}

// EmergencyVendorModel is the persistence model for emergency vendors
type EmergencyVendorModel struct {
	CompanyAggregateModel
	Name     string `gorm:"type:varchar(255);not null"`
	Category string `gorm:"type:varchar(32);not null;index"`
	Phone    string `gorm:"type:varchar(32)"`
	Email    string `gorm:"type:varchar(255)"`
	Notes    string `gorm:"type:text"`
	Active   bool   `gorm:"not null;default:true"`
}

// TableName returns the table name for EmergencyVendorModel
func (EmergencyVendorModel) TableName() string {
	return "emergency_vendors"
}

// ToDomain converts the model to a domain EmergencyVendor
func (m *EmergencyVendorModel) ToDomain() *property.EmergencyVendor {
	vendor := &property.EmergencyVendor{
		Name:     m.Name,
		Category: property.VendorCategory(m.Category),
		Phone:    m.Phone,
		Email:    m.Email,
		Notes:    m.Notes,
		Active:   m.Active,
	}
	m.PopulateCompanyAggregateRoot(&vendor.CompanyAggregateRoot)
	return vendor
}

// FromDomain populates the model from a domain EmergencyVendor
func (m *EmergencyVendorModel) FromDomain(vendor *property.EmergencyVendor) {
	m.FromDomainCompanyAggregateRoot(vendor.CompanyAggregateRoot)
	m.Name = vendor.Name
	m.Category = string(vendor.Category)
	m.Phone = vendor.Phone
	m.Email = vendor.Email
	m.Notes = vendor.Notes
	m.Active = vendor.Active
}
