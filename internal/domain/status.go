package domain

import (
	"time"

	"github.com/google/uuid"
)

// Time-based classification of an activity, derived from its dates only.
const (
	StatusUpcoming     = "upcoming"
	StatusSignupClosed = "signup-closed"
	StatusOngoing      = "ongoing"
	StatusEnded        = "ended"
	StatusUnknown      = "unknown"

	// StatusFullButActive is only ever recommended, never a time-based status.
	StatusFullButActive = "full-but-active"
)

// Capacity signal values.
const (
	CapacityOpen = "open"
	CapacityFull = "full"
)

// Consistency check results.
const (
	ConsistencyMatch    = "consistent"
	ConsistencyMismatch = "mismatch"
	ConsistencyUnset    = "unset"
)

// RecommendedStatuses is the vocabulary an operator may store as an activity status.
var RecommendedStatuses = []string{
	StatusUpcoming,
	StatusSignupClosed,
	StatusOngoing,
	StatusFullButActive,
	StatusEnded,
	StatusUnknown,
}

var statusLabels = map[string]string{
	StatusUpcoming:      "報名中",
	StatusSignupClosed:  "報名截止",
	StatusOngoing:       "進行中",
	StatusFullButActive: "額滿",
	StatusEnded:         "已結束",
	StatusUnknown:       "日期未定",
}

// IsRecommendedStatus reports whether s belongs to RecommendedStatuses.
func IsRecommendedStatus(s string) bool {
	_, ok := statusLabels[s]
	return ok
}

// ActivityStatusSnapshot is the read-only view of an activity used to derive
// its status. Every field is optional.
type ActivityStatusSnapshot struct {
	ActivityID          uuid.UUID
	Name                string
	Location            string
	StartDate           *time.Time
	EndDate             *time.Time
	SignupDeadline      *time.Time
	CurrentParticipants *int
	MaxParticipants     *int
	RawStatus           string
	Category            string
	TargetAudience      string
}

// DerivedStatus is the computed status presentation of an activity.
// It is never persisted.
type DerivedStatus struct {
	RawStatus         string `json:"rawStatus"`
	RecommendedStatus string `json:"recommendedStatus"`
	StatusLabel       string `json:"statusLabel"`
	TimeBasedStatus   string `json:"timeBasedStatus"`
	CapacityStatus    string `json:"capacityStatus"`
	// DaysRemaining is signupDeadline minus the reference date in whole days;
	// negative once the deadline has passed, nil when there is no deadline.
	DaysRemaining  *int   `json:"daysRemaining"`
	Consistency    string `json:"consistency"`
	NeedsReview    bool   `json:"needsReview"`
	Category       string `json:"category"`
	TargetAudience string `json:"targetAudience"`
}

// ResolveStatus derives the status presentation of s as of now.
// Only the calendar date of now matters. The result depends on nothing but
// its arguments, and the stored status is only compared, never corrected.
func ResolveStatus(s ActivityStatusSnapshot, now time.Time) DerivedStatus {
	today := dayNumber(now)

	out := DerivedStatus{
		RawStatus:       s.RawStatus,
		TimeBasedStatus: timeBasedStatus(s, today),
		CapacityStatus:  capacityStatus(s),
		Category:        s.Category,
		TargetAudience:  s.TargetAudience,
	}

	if s.SignupDeadline != nil {
		d := int(dayNumber(*s.SignupDeadline) - today)
		out.DaysRemaining = &d
	}

	switch {
	case out.TimeBasedStatus == StatusEnded:
		out.RecommendedStatus = StatusEnded
	case out.CapacityStatus == CapacityFull:
		out.RecommendedStatus = StatusFullButActive
	default:
		out.RecommendedStatus = out.TimeBasedStatus
	}
	out.StatusLabel = statusLabels[out.RecommendedStatus]

	switch {
	case s.RawStatus == "":
		out.Consistency = ConsistencyUnset
	case s.RawStatus == out.RecommendedStatus:
		out.Consistency = ConsistencyMatch
	default:
		out.Consistency = ConsistencyMismatch
		out.NeedsReview = true
	}

	return out
}

// timeBasedStatus applies the date rules in order; the first match wins.
func timeBasedStatus(s ActivityStatusSnapshot, today int64) string {
	switch {
	case s.EndDate != nil && today > dayNumber(*s.EndDate):
		return StatusEnded
	case s.StartDate != nil && today >= dayNumber(*s.StartDate) &&
		(s.EndDate == nil || today <= dayNumber(*s.EndDate)):
		return StatusOngoing
	case s.SignupDeadline != nil && today > dayNumber(*s.SignupDeadline):
		return StatusSignupClosed
	case s.StartDate != nil && today < dayNumber(*s.StartDate):
		return StatusUpcoming
	default:
		return StatusUnknown
	}
}

func capacityStatus(s ActivityStatusSnapshot) string {
	if s.CurrentParticipants != nil && s.MaxParticipants != nil &&
		*s.CurrentParticipants >= *s.MaxParticipants {
		return CapacityFull
	}
	return CapacityOpen
}

// dayNumber maps t's calendar date (in t's own location) to a day count since
// the Unix epoch, so dates compare and subtract without time-of-day noise.
func dayNumber(t time.Time) int64 {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC).Unix() / 86400
}
