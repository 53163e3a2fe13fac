package workforce

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTechnician(t *testing.T) {
	companyID := uuid.New()

	t.Run("creates technician with defaults", func(t *testing.T) {
		tech, err := NewTechnician(companyID, " Sam Rivera ", "555-0120", "hvac")
		require.NoError(t, err)
		assert.Equal(t, "Sam Rivera", tech.FullName)
		assert.Equal(t, DefaultMeritPercent, tech.MeritPercent)
		assert.Equal(t, AvailabilityAvailable, tech.Availability)
		assert.True(t, tech.Active)
		assert.Nil(t, tech.DefaultPropertyID)
	})

	t.Run("rejects blank name", func(t *testing.T) {
		_, err := NewTechnician(companyID, "", "", "")
		assert.Error(t, err)
	})
}

func TestParseAvailability(t *testing.T) {
	tests := []struct {
		in      string
		want    Availability
		wantErr bool
	}{
		{"available", AvailabilityAvailable, false},
		{"", AvailabilityAvailable, false},
		{" ON_JOB ", AvailabilityOnJob, false},
		{"off_shift", AvailabilityOffShift, false},
		{"unavailable", AvailabilityUnavailable, false},
		{"busy", "", true},
	}
	for _, tt := range tests {
		got, err := ParseAvailability(tt.in)
		if tt.wantErr {
			assert.Error(t, err, tt.in)
		} else {
			require.NoError(t, err, tt.in)
			assert.Equal(t, tt.want, got)
		}
	}
}

func TestTechnician_SetMeritPercent(t *testing.T) {
	tech, err := NewTechnician(uuid.New(), "Sam", "", "")
	require.NoError(t, err)

	require.NoError(t, tech.SetMeritPercent(150))
	assert.Equal(t, 150, tech.MeritPercent)

	assert.Error(t, tech.SetMeritPercent(-10))
	assert.Error(t, tech.SetMeritPercent(250))
}

func TestTechnician_CanTakeJob(t *testing.T) {
	tech, err := NewTechnician(uuid.New(), "Sam", "", "")
	require.NoError(t, err)

	assert.True(t, tech.CanTakeJob())

	require.NoError(t, tech.SetAvailability(AvailabilityOnJob))
	assert.False(t, tech.CanTakeJob())

	tech.Deactivate()
	assert.False(t, tech.CanTakeJob())
	assert.Equal(t, AvailabilityUnavailable, tech.Availability)

	tech.Activate()
	assert.True(t, tech.CanTakeJob())
}
