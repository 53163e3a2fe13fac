package property

import (
	"strings"

	"github.com/google/uuid"

	"github.com/dispatchiq/backend/internal/domain/shared"
)

// VendorCategory classifies what kind of emergencies a vendor covers
type VendorCategory string

const (
	VendorHVAC       VendorCategory = "hvac"
	VendorPlumbing   VendorCategory = "plumbing"
	VendorElectrical VendorCategory = "electrical"
	VendorGeneral    VendorCategory = "general"
)

// ParseVendorCategory normalizes and validates a vendor category value
func ParseVendorCategory(value string) (VendorCategory, error) {
	switch VendorCategory(strings.ToLower(strings.TrimSpace(value))) {
	case VendorHVAC:
		return VendorHVAC, nil
	case VendorPlumbing:
		return VendorPlumbing, nil
	case VendorElectrical:
		return VendorElectrical, nil
	case VendorGeneral, "":
		return VendorGeneral, nil
	default:
		return "", shared.NewDomainError("INVALID_VENDOR_CATEGORY",
			"Vendor category must be hvac, plumbing, electrical or general")
	}
}

// EmergencyVendor is an outside contractor the company calls when no
// in-house technician can take an emergency job.
type EmergencyVendor struct {
	shared.CompanyAggregateRoot
	Name     string
	Category VendorCategory
	Phone    string
	Email    string
	Notes    string
	Active   bool
}

// NewEmergencyVendor creates an emergency vendor contact
func NewEmergencyVendor(companyID uuid.UUID, name, category, phone string) (*EmergencyVendor, error) {
	if name = strings.TrimSpace(name); name == "" {
		return nil, shared.NewDomainError("INVALID_INPUT", "Vendor name is required")
	}
	cat, err := ParseVendorCategory(category)
	if err != nil {
		return nil, err
	}
	return &EmergencyVendor{
		CompanyAggregateRoot: shared.NewCompanyAggregateRoot(companyID),
		Name:                 name,
		Category:             cat,
		Phone:                strings.TrimSpace(phone),
		Active:               true,
	}, nil
}

// Update changes the vendor contact details
func (v *EmergencyVendor) Update(name, category, phone, email, notes string) error {
	if name = strings.TrimSpace(name); name == "" {
		return shared.NewDomainError("INVALID_INPUT", "Vendor name is required")
	}
	cat, err := ParseVendorCategory(category)
	if err != nil {
		return err
	}
	v.Name = name
	v.Category = cat
	v.Phone = strings.TrimSpace(phone)
	v.Email = strings.TrimSpace(email)
	v.Notes = strings.TrimSpace(notes)
	v.Touch()
	v.IncrementVersion()
	return nil
}

// Deactivate removes the vendor from the on-call rotation
func (v *EmergencyVendor) Deactivate() {
	v.Active = false
	v.Touch()
	v.IncrementVersion()
}

// Activate returns the vendor to the on-call rotation
func (v *EmergencyVendor) Activate() {
	v.Active = true
	v.Touch()
	v.IncrementVersion()
}
