package get_day_slots

import (
	"time"

	"github.com/m04kA/QS-AppointmentService/pkg/types"
)

// Request модель запроса доступных времен на дату
type Request struct {
	Slug            string    // Slug бизнеса
	Date            time.Time // Дата, на которую запрашиваются слоты (без времени)
	DurationMinutes int       // Длительность услуги в минутах
}

// Response модель ответа со списком доступных времен начала
type Response struct {
	Slug  string
	Date  time.Time
	Slots []types.TimeString // Времена начала в зоне бизнеса, например "10:30"
}
