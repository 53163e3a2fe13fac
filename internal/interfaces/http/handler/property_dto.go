package handler

import (
	"github.com/dispatchiq/backend/internal/application/property"
)

// PropertyResponse is the property view returned by the API
type PropertyResponse struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Address   string `json:"address"`
	City      string `json:"city"`
	State     string `json:"state"`
	Zip       string `json:"zip"`
	UnitCount int    `json:"unit_count"`
	Notes     string `json:"notes"`
}

// UnitResponse is the unit view returned by the API
type UnitResponse struct {
	ID         string `json:"id"`
	PropertyID string `json:"property_id"`
	Label      string `json:"label"`
	Occupied   bool   `json:"occupied"`
	TenantName string `json:"tenant_name"`
}

// VendorResponse is the emergency vendor view returned by the API
type VendorResponse struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Category string `json:"category"`
	Phone    string `json:"phone"`
	Email    string `json:"email"`
	Notes    string `json:"notes"`
	Active   bool   `json:"active"`
}

func toPropertyResponse(info property.PropertyInfo) PropertyResponse {
	return PropertyResponse{
		ID:        info.ID.String(),
		Name:      info.Name,
		Address:   info.Address,
		City:      info.City,
		State:     info.State,
		Zip:       info.Zip,
		UnitCount: info.UnitCount,
		Notes:     info.Notes,
	}
}

func toUnitResponse(info property.UnitInfo) UnitResponse {
	return UnitResponse{
		ID:         info.ID.String(),
		PropertyID: info.PropertyID.String(),
		Label:      info.Label,
		Occupied:   info.Occupied,
		TenantName: info.TenantName,
	}
}

func toVendorResponse(info property.VendorInfo) VendorResponse {
	return VendorResponse{
		ID:       info.ID.String(),
		Name:     info.Name,
		Category: info.Category,
		Phone:    info.Phone,
		Email:    info.Email,
		Notes:    info.Notes,
		Active:   info.Active,
	}
}

func toPropertyResponses(infos []property.PropertyInfo) []PropertyResponse {
	out := make([]PropertyResponse, 0, len(infos))
	for _, info := range infos {
		out = append(out, toPropertyResponse(info))
	}
	return out
}

func toUnitResponses(infos []property.UnitInfo) []UnitResponse {
	out := make([]UnitResponse, 0, len(infos))
	for _, info := range infos {
		out = append(out, toUnitResponse(info))
	}
	return out
}

func toVendorResponses(infos []property.VendorInfo) []VendorResponse {
	out := make([]VendorResponse, 0, len(infos))
	for _, info := range infos {
		out = append(out, toVendorResponse(info))
	}
	return out
}
