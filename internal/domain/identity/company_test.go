package identity

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCompany(t *testing.T) {
	t.Run("creates company with defaults", func(t *testing.T) {
		ownerID := uuid.New()
		company, err := NewCompany("Acme Field Services", ownerID)
		require.NoError(t, err)

		assert.Equal(t, "Acme Field Services", company.Name)
		assert.Equal(t, "UTC", company.Timezone)
		assert.Equal(t, "08:00:00", company.WorkdayStart)
		assert.Equal(t, "17:00:00", company.WorkdayEnd)
		assert.Equal(t, IntakeManual, company.IntakeMethod)
		assert.Equal(t, RotationWeekly, company.OnCallRotation)
		assert.True(t, company.AutoAssign)
		assert.True(t, company.CollectPTE)
		assert.True(t, company.CollectWindow)
		assert.Equal(t, ownerID, company.OwnerUserID)
		assert.False(t, company.OnboardingComplete)

		events := company.GetDomainEvents()
		require.Len(t, events, 1)
		assert.Equal(t, EventCompanyCreated, events[0].EventType())
	})

	t.Run("rejects empty name", func(t *testing.T) {
		_, err := NewCompany("  ", uuid.New())
		assert.Error(t, err)
	})
}

func TestResolveTimezone(t *testing.T) {
	assert.Equal(t, "America/Detroit", ResolveTimezone("Eastern (Detroit)"))
	assert.Equal(t, "America/Chicago", ResolveTimezone("Central (Chicago)"))
	assert.Equal(t, "America/New_York", ResolveTimezone("America/New_York"))
	assert.Equal(t, "Europe/Berlin", ResolveTimezone("  Europe/Berlin "))
}

func TestNormalizeClockTime(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{"08:00", "08:00:00", false},
		{"08:00:00", "08:00:00", false},
		{"23:59", "23:59:00", false},
		{" 09:30 ", "09:30:00", false},
		{"24:00", "", true},
		{"8:00", "", true},
		{"nope", "", true},
		{"", "", true},
	}
	for _, tt := range tests {
		got, err := NormalizeClockTime(tt.in)
		if tt.wantErr {
			assert.Error(t, err, tt.in)
		} else {
			require.NoError(t, err, tt.in)
			assert.Equal(t, tt.want, got)
		}
	}
}

func TestCompany_ConfigureSchedule(t *testing.T) {
	company, err := NewCompany("Acme", uuid.New())
	require.NoError(t, err)

	t.Run("applies alias and normalizes hours", func(t *testing.T) {
		require.NoError(t, company.ConfigureSchedule("Eastern (Detroit)", "07:30", "18:00"))
		assert.Equal(t, "America/Detroit", company.Timezone)
		assert.Equal(t, "07:30:00", company.WorkdayStart)
		assert.Equal(t, "18:00:00", company.WorkdayEnd)
	})

	t.Run("rejects unknown timezone", func(t *testing.T) {
		assert.Error(t, company.ConfigureSchedule("Mars/Olympus", "", ""))
	})

	t.Run("keeps existing values when blank", func(t *testing.T) {
		require.NoError(t, company.ConfigureSchedule("", "", ""))
		assert.Equal(t, "America/Detroit", company.Timezone)
	})
}

func TestCompany_ConfigureIntake(t *testing.T) {
	company, err := NewCompany("Acme", uuid.New())
	require.NoError(t, err)

	require.NoError(t, company.ConfigureIntake(IntakeEmail, true, RotationCustom, " 555-0100 "))
	assert.Equal(t, IntakeEmail, company.IntakeMethod)
	assert.True(t, company.AfterHoursOnCall)
	assert.Equal(t, RotationCustom, company.OnCallRotation)
	assert.Equal(t, "555-0100", company.OnCallPhone)

	assert.Error(t, company.ConfigureIntake("carrier_pigeon", false, RotationWeekly, ""))
	assert.Error(t, company.ConfigureIntake(IntakeManual, false, "monthly", ""))

	require.NoError(t, company.ConfigureIntake("", false, "", ""))
	assert.Equal(t, IntakeManual, company.IntakeMethod)
	assert.Equal(t, RotationWeekly, company.OnCallRotation)
}

func TestCompany_ConfigureDispatch(t *testing.T) {
	company, err := NewCompany("Acme", uuid.New())
	require.NoError(t, err)

	company.ConfigureDispatch(false, false, true)
	assert.False(t, company.AutoAssign)
	assert.False(t, company.CollectPTE)
	assert.True(t, company.CollectWindow)
}

func TestTimezoneLabel(t *testing.T) {
	assert.Equal(t, "Eastern (Detroit)", TimezoneLabel("America/Detroit"))
	assert.Equal(t, "Hawaii (Honolulu)", TimezoneLabel("Pacific/Honolulu"))
	assert.Equal(t, "Europe/Berlin", TimezoneLabel("Europe/Berlin"))
}

func TestCompany_CompleteOnboarding(t *testing.T) {
	company, err := NewCompany("Acme", uuid.New())
	require.NoError(t, err)
	company.ClearDomainEvents()

	require.NoError(t, company.CompleteOnboarding())
	assert.True(t, company.OnboardingComplete)
	assert.NotNil(t, company.OnboardedAt)

	events := company.GetDomainEvents()
	require.Len(t, events, 1)
	assert.Equal(t, EventCompanyOnboarded, events[0].EventType())

	assert.Error(t, company.CompleteOnboarding())
}
