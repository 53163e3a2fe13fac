package workorder

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestOrder(t *testing.T) *WorkOrder {
	t.Helper()
	wo, err := NewWorkOrder(uuid.New(), uuid.New(), "Leaking faucet", "Unit 12B kitchen", PriorityRoutine)
	require.NoError(t, err)
	wo.ClearDomainEvents()
	return wo
}

func TestNewWorkOrder(t *testing.T) {
	t.Run("creates open order", func(t *testing.T) {
		companyID := uuid.New()
		propertyID := uuid.New()
		wo, err := NewWorkOrder(companyID, propertyID, " Leaking faucet ", "desc", "")
		require.NoError(t, err)

		assert.Equal(t, "Leaking faucet", wo.Issue)
		assert.Equal(t, StatusOpen, wo.Status)
		assert.Equal(t, PriorityRoutine, wo.Priority)
		assert.Equal(t, companyID, wo.CompanyID)
		assert.Equal(t, propertyID, wo.PropertyID)
		assert.True(t, wo.PayoutAmount.IsZero())
		assert.False(t, wo.PTE)

		events := wo.GetDomainEvents()
		require.Len(t, events, 1)
		assert.Equal(t, EventWorkOrderCreated, events[0].EventType())
	})

	t.Run("rejects issue shorter than three characters", func(t *testing.T) {
		_, err := NewWorkOrder(uuid.New(), uuid.New(), " ", "", PriorityRoutine)
		assert.Error(t, err)

		_, err = NewWorkOrder(uuid.New(), uuid.New(), " ab ", "", PriorityRoutine)
		assert.Error(t, err)

		_, err = NewWorkOrder(uuid.New(), uuid.New(), "abc", "", PriorityRoutine)
		assert.NoError(t, err)
	})

	t.Run("rejects unknown priority", func(t *testing.T) {
		_, err := NewWorkOrder(uuid.New(), uuid.New(), "no heat", "", "urgent")
		assert.Error(t, err)
	})
}

func TestWorkOrder_IntakeDetails(t *testing.T) {
	wo := newTestOrder(t)

	unitID := uuid.New()
	wo.SetUnit(unitID, " 12B ")
	require.NotNil(t, wo.UnitID)
	assert.Equal(t, unitID, *wo.UnitID)
	assert.Equal(t, "12B", wo.UnitLabel)

	wo.SetIntakeDetails(true, "weekday mornings", " Dana Tenant ", "555-0142")
	assert.True(t, wo.PTE)
	assert.Equal(t, "weekday mornings", wo.PreferredWindow)
	assert.Equal(t, "Dana Tenant", wo.TenantName)
	assert.Equal(t, "555-0142", wo.TenantPhone)
}

func TestParseStatus(t *testing.T) {
	got, err := ParseStatus(" In_Progress ")
	require.NoError(t, err)
	assert.Equal(t, StatusInProgress, got)

	got, err = ParseStatus("")
	require.NoError(t, err)
	assert.Equal(t, StatusOpen, got)

	_, err = ParseStatus("pending")
	assert.Error(t, err)
}

func TestParsePriority(t *testing.T) {
	got, err := ParsePriority("EMERGENCY")
	require.NoError(t, err)
	assert.Equal(t, PriorityEmergency, got)

	got, err = ParsePriority("")
	require.NoError(t, err)
	assert.Equal(t, PriorityRoutine, got)

	_, err = ParsePriority("high")
	assert.Error(t, err)
}

func TestWorkOrder_Lifecycle(t *testing.T) {
	t.Run("full happy path", func(t *testing.T) {
		wo := newTestOrder(t)
		techID := uuid.New()
		require.NoError(t, wo.SetPayoutAmount(decimal.NewFromInt(150)))

		require.NoError(t, wo.Assign(techID))
		assert.Equal(t, StatusAssigned, wo.Status)
		assert.NotNil(t, wo.AssignedAt)

		require.NoError(t, wo.Start())
		assert.Equal(t, StatusInProgress, wo.Status)
		assert.NotNil(t, wo.StartedAt)

		require.NoError(t, wo.Complete())
		assert.Equal(t, StatusCompleted, wo.Status)
		assert.NotNil(t, wo.CompletedAt)

		var completed *WorkOrderCompletedEvent
		for _, ev := range wo.GetDomainEvents() {
			if e, ok := ev.(*WorkOrderCompletedEvent); ok {
				completed = e
			}
		}
		require.NotNil(t, completed)
		assert.Equal(t, techID, completed.TechnicianID)
		assert.True(t, completed.PayoutAmount.Equal(decimal.NewFromInt(150)))
	})

	t.Run("cannot assign twice", func(t *testing.T) {
		wo := newTestOrder(t)
		require.NoError(t, wo.Assign(uuid.New()))
		assert.Error(t, wo.Assign(uuid.New()))
	})

	t.Run("reassign only while assigned", func(t *testing.T) {
		wo := newTestOrder(t)
		assert.Error(t, wo.Reassign(uuid.New()))

		require.NoError(t, wo.Assign(uuid.New()))
		newTech := uuid.New()
		require.NoError(t, wo.Reassign(newTech))
		assert.Equal(t, newTech, *wo.TechnicianID)

		require.NoError(t, wo.Start())
		assert.Error(t, wo.Reassign(uuid.New()))
	})

	t.Run("cannot start open order", func(t *testing.T) {
		wo := newTestOrder(t)
		assert.Error(t, wo.Start())
	})

	t.Run("cannot complete without in_progress", func(t *testing.T) {
		wo := newTestOrder(t)
		assert.Error(t, wo.Complete())

		require.NoError(t, wo.Assign(uuid.New()))
		assert.Error(t, wo.Complete())
	})

	t.Run("cancel from any non-terminal state", func(t *testing.T) {
		wo := newTestOrder(t)
		require.NoError(t, wo.Cancel("tenant resolved it"))
		assert.Equal(t, StatusCancelled, wo.Status)
		assert.Equal(t, "tenant resolved it", wo.CancelReason)

		assert.Error(t, wo.Cancel("again"))
	})

	t.Run("cancel in_progress order", func(t *testing.T) {
		wo := newTestOrder(t)
		require.NoError(t, wo.Assign(uuid.New()))
		require.NoError(t, wo.Start())
		require.NoError(t, wo.Cancel(""))
		assert.Equal(t, StatusCancelled, wo.Status)
	})

	t.Run("cannot edit terminal order", func(t *testing.T) {
		wo := newTestOrder(t)
		require.NoError(t, wo.Cancel(""))
		assert.Error(t, wo.UpdateDetails("new issue", "", PriorityRoutine))
	})
}

func TestWorkOrder_SetPayoutAmount(t *testing.T) {
	wo := newTestOrder(t)
	assert.Error(t, wo.SetPayoutAmount(decimal.NewFromInt(-1)))
	require.NoError(t, wo.SetPayoutAmount(decimal.RequireFromString("149.99")))
	assert.True(t, wo.PayoutAmount.Equal(decimal.RequireFromString("149.99")))
}

func TestNewJobEvidence(t *testing.T) {
	workOrderID := uuid.New()
	companyID := uuid.New()
	uploader := uuid.New()

	t.Run("creates evidence", func(t *testing.T) {
		ev, err := NewJobEvidence(workOrderID, companyID, EvidencePhoto,
			"evidence/2026/08/abc.jpg", "before.jpg", "image/jpeg", 2048, uploader)
		require.NoError(t, err)
		assert.Equal(t, EvidencePhoto, ev.Kind)
		assert.Equal(t, int64(2048), ev.SizeBytes)
	})

	t.Run("accepts document and note kinds", func(t *testing.T) {
		for _, kind := range []EvidenceKind{EvidenceDocument, EvidenceNote} {
			ev, err := NewJobEvidence(workOrderID, companyID, kind, "k", "f", "", 1, uploader)
			require.NoError(t, err)
			assert.Equal(t, kind, ev.Kind)
		}
	})

	t.Run("rejects unknown kind", func(t *testing.T) {
		_, err := NewJobEvidence(workOrderID, companyID, "video", "k", "f", "", 1, uploader)
		assert.Error(t, err)
		_, err = NewJobEvidence(workOrderID, companyID, "signature", "k", "f", "", 1, uploader)
		assert.Error(t, err)
	})

	t.Run("rejects empty key and size", func(t *testing.T) {
		_, err := NewJobEvidence(workOrderID, companyID, EvidencePhoto, " ", "f", "", 1, uploader)
		assert.Error(t, err)
		_, err = NewJobEvidence(workOrderID, companyID, EvidencePhoto, "k", "f", "", 0, uploader)
		assert.Error(t, err)
	})
}
