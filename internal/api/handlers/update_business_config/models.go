package update_business_config

import "github.com/m04kA/QS-AppointmentService/internal/service/businesscfg/models"

// UpdateConfigRequest HTTP request model
// Запрос несет полное желаемое состояние редактируемых полей
type UpdateConfigRequest struct {
	DisplayName  *string           `json:"displayName,omitempty"`
	WorkingDays  []string          `json:"workingDays"`
	ClosedDates  []string          `json:"closedDates"`
	Services     []ServiceInput    `json:"services"`
	WorkingHours WorkingHoursInput `json:"workingHours"`
}

// ServiceInput услуга в запросе
type ServiceInput struct {
	ID              string `json:"id"`
	Name            string `json:"name"`
	DurationMinutes int    `json:"durationMinutes"`
}

// WorkingHoursInput рабочие часы в запросе
type WorkingHoursInput struct {
	Default DayInput            `json:"default"`
	ByDay   map[string]DayInput `json:"byDay"`
}

// DayInput часы одного дня
type DayInput struct {
	Start  string       `json:"start"`
	End    string       `json:"end"`
	Breaks []BreakInput `json:"breaks"`
}

// BreakInput перерыв в запросе
type BreakInput struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// ToServiceRequest конвертирует HTTP запрос в модель сервиса
func (r *UpdateConfigRequest) ToServiceRequest() *models.UpdateConfigRequest {
	req := &models.UpdateConfigRequest{
		DisplayName: r.DisplayName,
		WorkingDays: r.WorkingDays,
		ClosedDates: r.ClosedDates,
		WorkingHours: models.WorkingHoursInput{
			Default: toDayInput(r.WorkingHours.Default),
		},
	}

	for _, s := range r.Services {
		req.Services = append(req.Services, models.ServiceInput{
			ID:              s.ID,
			Name:            s.Name,
			DurationMinutes: s.DurationMinutes,
		})
	}

	if r.WorkingHours.ByDay != nil {
		req.WorkingHours.ByDay = make(map[string]models.DayInput, len(r.WorkingHours.ByDay))
		for day, d := range r.WorkingHours.ByDay {
			req.WorkingHours.ByDay[day] = toDayInput(d)
		}
	}

	return req
}

func toDayInput(d DayInput) models.DayInput {
	out := models.DayInput{Start: d.Start, End: d.End}
	if d.Breaks != nil {
		out.Breaks = make([]models.BreakInput, 0, len(d.Breaks))
		for _, b := range d.Breaks {
			out.Breaks = append(out.Breaks, models.BreakInput{Start: b.Start, End: b.End})
		}
	}
	return out
}
