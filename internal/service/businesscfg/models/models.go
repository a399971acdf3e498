package models

// UpdateConfigRequest запрос администратора на обновление конфигурации бизнеса
// Запрос описывает полное желаемое состояние редактируемых полей:
// дни и услуги, отсутствующие в запросе, удаляются из переопределения
type UpdateConfigRequest struct {
	DisplayName  *string           `json:"display_name,omitempty"`
	WorkingDays  []string          `json:"working_days"`
	ClosedDates  []string          `json:"closed_dates"`
	Services     []ServiceInput    `json:"services"`
	WorkingHours WorkingHoursInput `json:"working_hours"`
}

// ServiceInput услуга в запросе на обновление
type ServiceInput struct {
	ID              string `json:"id"`
	Name            string `json:"name"`
	DurationMinutes int    `json:"duration_minutes"`
}

// WorkingHoursInput рабочие часы в запросе на обновление
type WorkingHoursInput struct {
	Default DayInput            `json:"default"`
	ByDay   map[string]DayInput `json:"by_day"`
}

// DayInput часы одного дня
// Пустые start/end означают "наследовать default",
// пустой список breaks удаляет перерывы этого дня
type DayInput struct {
	Start  string       `json:"start"`
	End    string       `json:"end"`
	Breaks []BreakInput `json:"breaks"`
}

// BreakInput перерыв в запросе на обновление
type BreakInput struct {
	Start string `json:"start"`
	End   string `json:"end"`
}
