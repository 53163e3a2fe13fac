package identity

import (
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/dispatchiq/backend/internal/domain/shared"
)

// IntakeMethod is how service requests reach the company
type IntakeMethod string

const (
	IntakeEmail  IntakeMethod = "email"
	IntakeManual IntakeMethod = "manual"
)

// OnCallRotation is how the after hours on-call schedule rotates
type OnCallRotation string

const (
	RotationWeekly OnCallRotation = "weekly"
	RotationCustom OnCallRotation = "custom"
)

// timezoneAliases maps friendly timezone labels from intake forms to
// IANA zone names. Unknown labels are passed through unchanged so that
// raw IANA names keep working.
var timezoneAliases = map[string]string{
	"Eastern (Detroit)":     "America/Detroit",
	"Eastern (New York)":    "America/New_York",
	"Central (Chicago)":     "America/Chicago",
	"Mountain (Denver)":     "America/Denver",
	"Mountain (Phoenix)":    "America/Phoenix",
	"Pacific (Los Angeles)": "America/Los_Angeles",
	"Alaska (Anchorage)":    "America/Anchorage",
	"Hawaii (Honolulu)":     "Pacific/Honolulu",
}

var timePattern = regexp.MustCompile(`^([01]\d|2[0-3]):[0-5]\d(:[0-5]\d)?$`)

// Company is the tenant aggregate. All operational records reference a
// company and are scoped to it.
type Company struct {
	shared.BaseAggregateRoot
	Name               string
	Timezone           string
	WorkdayStart       string
	WorkdayEnd         string
	AutoAssign         bool
	IntakeMethod       IntakeMethod
	CollectPTE         bool
	CollectWindow      bool
	AfterHoursOnCall   bool
	OnCallRotation     OnCallRotation
	OnCallPhone        string
	OwnerUserID        uuid.UUID
	OnboardingComplete bool
	OnboardedAt        *time.Time
}

// NewCompany creates a company owned by the given user
func NewCompany(name string, ownerUserID uuid.UUID) (*Company, error) {
	if name = strings.TrimSpace(name); name == "" {
		return nil, shared.NewDomainError("INVALID_INPUT", "Company name is required")
	}
	company := &Company{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              name,
		Timezone:          "UTC",
		WorkdayStart:      "08:00:00",
		WorkdayEnd:        "17:00:00",
		AutoAssign:        true,
		IntakeMethod:      IntakeManual,
		CollectPTE:        true,
		CollectWindow:     true,
		OnCallRotation:    RotationWeekly,
		OwnerUserID:       ownerUserID,
	}
	company.AddDomainEvent(NewCompanyCreatedEvent(company.ID, company.Name, ownerUserID))
	return company, nil
}

// ResolveTimezone maps a friendly timezone label to an IANA zone name
func ResolveTimezone(label string) string {
	label = strings.TrimSpace(label)
	if zone, ok := timezoneAliases[label]; ok {
		return zone
	}
	return label
}

// TimezoneLabel maps an IANA zone name back to its friendly label.
// Zones without an alias are returned unchanged.
func TimezoneLabel(zone string) string {
	for label, z := range timezoneAliases {
		if z == zone {
			return label
		}
	}
	return zone
}

// NormalizeClockTime normalizes HH:MM inputs to HH:MM:SS
func NormalizeClockTime(value string) (string, error) {
	value = strings.TrimSpace(value)
	if !timePattern.MatchString(value) {
		return "", shared.NewDomainError("INVALID_TIME", "Time must be in HH:MM or HH:MM:SS format")
	}
	if len(value) == 5 {
		value += ":00"
	}
	return value, nil
}

// ConfigureSchedule sets the company timezone and working hours
func (c *Company) ConfigureSchedule(timezone, workdayStart, workdayEnd string) error {
	zone := ResolveTimezone(timezone)
	if zone != "" {
		if _, err := time.LoadLocation(zone); err != nil {
			return shared.NewDomainError("INVALID_TIMEZONE", "Unknown timezone: "+timezone)
		}
		c.Timezone = zone
	}
	if workdayStart != "" {
		start, err := NormalizeClockTime(workdayStart)
		if err != nil {
			return err
		}
		c.WorkdayStart = start
	}
	if workdayEnd != "" {
		end, err := NormalizeClockTime(workdayEnd)
		if err != nil {
			return err
		}
		c.WorkdayEnd = end
	}
	c.Touch()
	c.IncrementVersion()
	return nil
}

// ConfigureIntake sets the intake method and after hours on-call policy
func (c *Company) ConfigureIntake(method IntakeMethod, afterHoursOnCall bool, rotation OnCallRotation, onCallPhone string) error {
	switch method {
	case IntakeEmail, IntakeManual:
	case "":
		method = IntakeManual
	default:
		return shared.NewDomainError("INVALID_INTAKE_METHOD", "Intake method must be email or manual")
	}
	switch rotation {
	case RotationWeekly, RotationCustom:
	case "":
		rotation = RotationWeekly
	default:
		return shared.NewDomainError("INVALID_INPUT", "On-call rotation must be weekly or custom")
	}
	c.IntakeMethod = method
	c.AfterHoursOnCall = afterHoursOnCall
	c.OnCallRotation = rotation
	c.OnCallPhone = strings.TrimSpace(onCallPhone)
	c.Touch()
	c.IncrementVersion()
	return nil
}

// ConfigureDispatch sets the auto-assignment and intake collection policies
func (c *Company) ConfigureDispatch(autoAssign, collectPTE, collectWindow bool) {
	c.AutoAssign = autoAssign
	c.CollectPTE = collectPTE
	c.CollectWindow = collectWindow
	c.Touch()
	c.IncrementVersion()
}

// CompleteOnboarding marks the one-shot onboarding flow as finished
func (c *Company) CompleteOnboarding() error {
	if c.OnboardingComplete {
		return shared.NewDomainError("ONBOARDING_ALREADY_COMPLETE", "Onboarding has already been completed for this company")
	}
	now := time.Now()
	c.OnboardingComplete = true
	c.OnboardedAt = &now
	c.Touch()
	c.IncrementVersion()
	c.AddDomainEvent(NewCompanyOnboardedEvent(c.ID, c.Name))
	return nil
}

// Rename changes the company display name
func (c *Company) Rename(name string) error {
	if name = strings.TrimSpace(name); name == "" {
		return shared.NewDomainError("INVALID_INPUT", "Company name is required")
	}
	c.Name = name
	c.Touch()
	c.IncrementVersion()
	return nil
}
