package calendar

import "time"

// freeBusyRequest запрос занятости календаря за окно [TimeMin, TimeMax)
type freeBusyRequest struct {
	CalendarID string    `json:"calendarId"`
	TimeMin    time.Time `json:"timeMin"`
	TimeMax    time.Time `json:"timeMax"`
}

// freeBusyResponse ответ со списком занятых интервалов
type freeBusyResponse struct {
	Busy []busyPeriod `json:"busy"`
}

type busyPeriod struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// Event данные события для создания в календаре
type Event struct {
	Summary     string    `json:"summary"`
	Description string    `json:"description"`
	Start       time.Time `json:"start"`
	End         time.Time `json:"end"`
	Timezone    string    `json:"timeZone"`
}

type createEventRequest struct {
	CalendarID string `json:"calendarId"`
	Event      Event  `json:"event"`
}

type createEventResponse struct {
	ID string `json:"id"`
}
