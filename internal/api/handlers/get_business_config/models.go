package get_business_config

import "github.com/m04kA/QS-AppointmentService/internal/domain"

// ConfigResponse HTTP response model с эффективной конфигурацией бизнеса
// Legacy-схема часов приводится к структурной форме с default
type ConfigResponse struct {
	Slug         string           `json:"slug"`
	DisplayName  string           `json:"displayName,omitempty"`
	Timezone     string           `json:"timezone"`
	WorkingDays  []string         `json:"workingDays"`
	ClosedDates  []string         `json:"closedDates"`
	WorkingHours WorkingHoursView `json:"workingHours"`
	Services     []ServiceItem    `json:"services"`
}

// WorkingHoursView рабочие часы в HTTP ответе
type WorkingHoursView struct {
	Default DayView            `json:"default"`
	ByDay   map[string]DayView `json:"byDay,omitempty"`
}

// DayView часы одного дня
type DayView struct {
	Start  string      `json:"start,omitempty"`
	End    string      `json:"end,omitempty"`
	Breaks []BreakView `json:"breaks,omitempty"`
}

// BreakView перерыв в HTTP ответе
type BreakView struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// ServiceItem услуга бизнеса в HTTP ответе
type ServiceItem struct {
	ID              string `json:"id"`
	Name            string `json:"name"`
	DurationMinutes int    `json:"durationMinutes"`
}

// FromConfig конвертирует конфигурацию бизнеса в HTTP response
func FromConfig(cfg *domain.BusinessConfig) ConfigResponse {
	resp := ConfigResponse{
		Slug:        cfg.Slug,
		DisplayName: cfg.Display.Name,
		Timezone:    cfg.Timezone,
		WorkingDays: cfg.WorkingDays,
		ClosedDates: cfg.ClosedDates,
	}
	if resp.WorkingDays == nil {
		resp.WorkingDays = []string{}
	}
	if resp.ClosedDates == nil {
		resp.ClosedDates = []string{}
	}

	resp.WorkingHours = fromWorkingHours(cfg.WorkingHours)

	resp.Services = make([]ServiceItem, 0, len(cfg.Services))
	for _, s := range cfg.Services {
		resp.Services = append(resp.Services, ServiceItem{
			ID:              s.ID,
			Name:            s.Name,
			DurationMinutes: s.DurationMinutes,
		})
	}

	return resp
}

func fromWorkingHours(wh domain.WorkingHours) WorkingHoursView {
	view := WorkingHoursView{}

	switch {
	case wh.Default != nil:
		view.Default = fromDayHours(*wh.Default)
	case wh.IsLegacy():
		view.Default = DayView{Start: wh.Start, End: wh.End}
	default:
		view.Default = DayView{Start: domain.DefaultWorkStart, End: domain.DefaultWorkEnd}
	}

	if len(wh.ByDay) > 0 {
		view.ByDay = make(map[string]DayView, len(wh.ByDay))
		for day, hours := range wh.ByDay {
			view.ByDay[day] = fromDayHours(hours)
		}
	}

	return view
}

func fromDayHours(d domain.DayHours) DayView {
	view := DayView{Start: d.Start, End: d.End}
	for _, b := range d.Breaks {
		view.Breaks = append(view.Breaks, BreakView{Start: b.Start, End: b.End})
	}
	return view
}
