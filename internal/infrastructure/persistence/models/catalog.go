package models

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/dispatchiq/backend/internal/domain/catalog"
)

// ServiceCategoryModel is the persistence model for service categories
type ServiceCategoryModel struct {
	CompanyAggregateModel
	Name        string `gorm:"type:varchar(255);not null;uniqueIndex:idx_categories_company_name,priority:2"`
	Description string `gorm:"type:text"`
	Active      bool   `gorm:"not null;default:true"`
}

// TableName returns the table name for ServiceCategoryModel
func (ServiceCategoryModel) TableName() string {
	return "service_categories"
}

// ToDomain converts the model to a domain ServiceCategory
func (m *ServiceCategoryModel) ToDomain() *catalog.ServiceCategory {
	category := &catalog.ServiceCategory{
		Name:        m.Name,
		Description: m.Description,
		Active:      m.Active,
	}
	m.PopulateCompanyAggregateRoot(&category.CompanyAggregateRoot)
	return category
}

// FromDomain populates the model from a domain ServiceCategory
func (m *ServiceCategoryModel) FromDomain(category *catalog.ServiceCategory) {
	m.FromDomainCompanyAggregateRoot(category.CompanyAggregateRoot)
	m.Name = category.Name
	m.Description = category.Description
	m.Active = category.Active
}

// ServiceTypeModel is the persistence model for service types
type ServiceTypeModel struct {
	CompanyAggregateModel
	CategoryID  uuid.UUID       `gorm:"type:uuid;not null;index"`
	Name        string          `gorm:"type:varchar(255);not null"`
	Description string          `gorm:"type:text"`
	BaseRate    decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	Emergency   bool            `gorm:"not null;default:false"`
	Active      bool            `gorm:"not null;default:true"`
}

// TableName returns the table name for ServiceTypeModel
func (ServiceTypeModel) TableName() string {
	return "service_types"
}

// ToDomain converts the model to a domain ServiceType
func (m *ServiceTypeModel) ToDomain() *catalog.ServiceType {
	serviceType := &catalog.ServiceType{
		CategoryID:  m.CategoryID,
		Name:        m.Name,
		Description: m.Description,
		BaseRate:    m.BaseRate,
		Emergency:   m.Emergency,
		Active:      m.Active,
	}
	m.PopulateCompanyAggregateRoot(&serviceType.CompanyAggregateRoot)
	return serviceType
}

// FromDomain populates the model from a domain ServiceType
func (m *ServiceTypeModel) FromDomain(serviceType *catalog.ServiceType) {
	m.FromDomainCompanyAggregateRoot(serviceType.CompanyAggregateRoot)
	m.CategoryID = serviceType.CategoryID
	m.Name = serviceType.Name
	m.Description = serviceType.Description
	m.BaseRate = serviceType.BaseRate
	m.Emergency = serviceType.Emergency
	m.Active = serviceType.Active
}
