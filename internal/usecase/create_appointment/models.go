package create_appointment

import (
	"time"

	"github.com/m04kA/QS-AppointmentService/pkg/types"
)

// Request модель запроса создания записи
// Name и Phone берутся из профиля авторизованного пользователя, не из тела запроса
type Request struct {
	Slug            string           // Slug бизнеса
	Phone           string           // Телефон пользователя (нормализованный)
	Name            string           // Имя пользователя на момент записи
	Date            time.Time        // Дата записи (без времени)
	Start           types.TimeString // Время начала в зоне бизнеса, например "10:30"
	DurationMinutes int              // Длительность услуги в минутах
	ServiceName     string           // Название услуги
}

// Response модель ответа с созданной записью
type Response struct {
	ID              int64
	BusinessSlug    string
	StartTime       time.Time
	DurationMinutes int
	ServiceName     string
	CalendarEventID string
	CreatedAt       time.Time
}
