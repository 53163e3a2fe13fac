package persistence

import (
	"strings"
)

// ValidateSortOrder validates and normalizes the sort direction to ASC or DESC.
// Returns "DESC" as the default if the input is invalid or empty.
func ValidateSortOrder(sortDir string) string {
	normalized := strings.ToUpper(strings.TrimSpace(sortDir))
	if normalized == "ASC" {
		return "ASC"
	}
	return "DESC"
}

// ValidateSortField validates the sort field against a whitelist of allowed fields.
// Returns the defaultField if the input is invalid, empty, or not in the whitelist.
func ValidateSortField(sortField string, allowedFields map[string]bool, defaultField string) string {
	trimmed := strings.TrimSpace(sortField)
	if trimmed == "" {
		return defaultField
	}
	if allowedFields[trimmed] {
		return trimmed
	}
	return defaultField
}

// CommonSortFields contains fields common to most entities
var CommonSortFields = map[string]bool{
	"id":         true,
	"created_at": true,
	"updated_at": true,
}

// UserSortFields contains allowed sort fields for users
var UserSortFields = map[string]bool{
	"id":            true,
	"created_at":    true,
	"updated_at":    true,
	"email":         true,
	"full_name":     true,
	"role":          true,
	"status":        true,
	"last_login_at": true,
}

// CategorySortFields contains allowed sort fields for service categories
var CategorySortFields = map[string]bool{
	"id":         true,
	"created_at": true,
	"updated_at": true,
	"name":       true,
	"active":     true,
}

// ServiceTypeSortFields contains allowed sort fields for service types
var ServiceTypeSortFields = map[string]bool{
	"id":          true,
	"created_at":  true,
	"updated_at":  true,
	"name":        true,
	"base_rate":   true,
	"emergency":   true,
	"active":      true,
	"category_id": true,
}

// PropertySortFields contains allowed sort fields for properties
var PropertySortFields = map[string]bool{
	"id":         true,
	"created_at": true,
	"updated_at": true,
	"name":       true,
	"city":       true,
	"state":      true,
	"unit_count": true,
}

// VendorSortFields contains allowed sort fields for emergency vendors
var VendorSortFields = map[string]bool{
	"id":         true,
	"created_at": true,
	"updated_at": true,
	"name":       true,
	"category":   true,
	"active":     true,
}

// TechnicianSortFields contains allowed sort fields for technicians
var TechnicianSortFields = map[string]bool{
	"id":            true,
	"created_at":    true,
	"updated_at":    true,
	"full_name":     true,
	"trade":         true,
	"availability":  true,
	"merit_percent": true,
	"active":        true,
}

// WorkOrderSortFields contains allowed sort fields for work orders
var WorkOrderSortFields = map[string]bool{
	"id":            true,
	"created_at":    true,
	"updated_at":    true,
	"issue":         true,
	"priority":      true,
	"status":        true,
	"payout_amount": true,
	"assigned_at":   true,
	"completed_at":  true,
}

// DocumentSortFields contains allowed sort fields for compliance documents
var DocumentSortFields = map[string]bool{
	"id":         true,
	"created_at": true,
	"updated_at": true,
	"type":       true,
	"status":     true,
	"expires_at": true,
}

// TransactionSortFields contains allowed sort fields for wallet transactions
var TransactionSortFields = map[string]bool{
	"id":         true,
	"created_at": true,
	"type":       true,
	"amount":     true,
}
