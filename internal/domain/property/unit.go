package property

import (
	"strings"

	"github.com/google/uuid"

	"github.com/dispatchiq/backend/internal/domain/shared"
)

// PropertyUnit is a single unit within a property, identified by label
// ("12B", "Lobby"). Units are created lazily the first time a work
// order references them.
type PropertyUnit struct {
	shared.BaseEntity
	PropertyID uuid.UUID
	Label      string
	Occupied   bool
	TenantName string
}

// NewPropertyUnit creates a unit under a property
func NewPropertyUnit(propertyID uuid.UUID, label string) (*PropertyUnit, error) {
	if label = strings.TrimSpace(label); label == "" {
		return nil, shared.NewDomainError("INVALID_INPUT", "Unit label is required")
	}
	return &PropertyUnit{
		BaseEntity: shared.NewBaseEntity(),
		PropertyID: propertyID,
		Label:      label,
	}, nil
}

// SetOccupancy records the occupancy state and tenant name
func (u *PropertyUnit) SetOccupancy(occupied bool, tenantName string) {
	u.Occupied = occupied
	u.TenantName = strings.TrimSpace(tenantName)
	u.Touch()
}
