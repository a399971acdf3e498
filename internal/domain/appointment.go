package domain

import "time"

// Appointment represents a booked appointment in the system.
// Name and phone are snapshots of the user's profile at booking time.
type Appointment struct {
	ID              int64
	BusinessSlug    string
	Name            string
	Phone           string
	StartTime       time.Time
	DurationMinutes int
	ServiceName     string
	CalendarEventID string
	CreatedAt       time.Time
}

// IsUpcoming returns true if the appointment starts at or after now
func (a *Appointment) IsUpcoming(now time.Time) bool {
	return !a.StartTime.Before(now)
}

// BusyInterval is an externally reported occupied interval from the calendar
// service, as timezone-aware instants
type BusyInterval struct {
	Start time.Time
	End   time.Time
}
