package domain

// BusinessConfig is the effective configuration of a single business (tenant),
// produced by merging the static base config with the persisted admin override.
// It is rebuilt per request and never mutated in place.
type BusinessConfig struct {
	Slug         string       `json:"slug"`
	Timezone     string       `json:"timezone"`
	Display      Display      `json:"display"`
	WorkingDays  []string     `json:"working_days"`
	ClosedDates  []string     `json:"closed_dates"`
	WorkingHours WorkingHours `json:"working_hours"`
	Services     []Service    `json:"services"`
	CalendarID   string       `json:"calendar_id"`
}

// Display holds presentation-only fields shown to customers
type Display struct {
	Name string `json:"name,omitempty"`
}

// WorkingHours supports two schemas:
// legacy flat {start, end} without per-day variation or breaks,
// and the structured form with default hours plus per-weekday overrides.
type WorkingHours struct {
	// Legacy flat schema
	Start string `json:"start,omitempty"`
	End   string `json:"end,omitempty"`

	Default *DayHours           `json:"default,omitempty"`
	ByDay   map[string]DayHours `json:"by_day,omitempty"`
}

// IsLegacy returns true if the config uses the flat {start, end} schema
func (w WorkingHours) IsLegacy() bool {
	return w.Start != "" && w.End != ""
}

// DayHours is a partial hours override for a single weekday.
// A nil Breaks slice means "not set, inherit from default"; an explicit empty
// slice means "no breaks on this day". The json tag deliberately omits
// omitempty on Breaks to keep that distinction across round-trips.
type DayHours struct {
	Start  string          `json:"start,omitempty"`
	End    string          `json:"end,omitempty"`
	Breaks []BreakInterval `json:"breaks"`
}

// BreakInterval is a half-open wall-clock interval [Start, End) within a day
type BreakInterval struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// ResolvedHours are the effective hours of one calendar date, after applying
// the legacy/default/per-day precedence. Breaks is never nil.
type ResolvedHours struct {
	Start  string
	End    string
	Breaks []BreakInterval
}

// Service is a bookable service offered by a business
type Service struct {
	ID              string `json:"id"`
	Name            string `json:"name"`
	DurationMinutes int    `json:"duration_minutes"`
}

// HasWorkingDay returns true if the business accepts bookings on the weekday key
func (c *BusinessConfig) HasWorkingDay(dayKey string) bool {
	for _, d := range c.WorkingDays {
		if d == dayKey {
			return true
		}
	}
	return false
}

// IsClosedDate returns true if the ISO date is in the closed-dates list
func (c *BusinessConfig) IsClosedDate(isoDate string) bool {
	for _, d := range c.ClosedDates {
		if d == isoDate {
			return true
		}
	}
	return false
}

// ServiceByID returns the service with the given id, or nil
func (c *BusinessConfig) ServiceByID(id string) *Service {
	for i := range c.Services {
		if c.Services[i].ID == id {
			return &c.Services[i]
		}
	}
	return nil
}
