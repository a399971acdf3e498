package get_day_slots

import (
	"github.com/m04kA/QS-AppointmentService/internal/domain"
	getDaySlots "github.com/m04kA/QS-AppointmentService/internal/usecase/get_day_slots"
)

// DaySlotsResponse HTTP response model
type DaySlotsResponse struct {
	Slug  string   `json:"slug"`
	Date  string   `json:"date"`
	Slots []string `json:"slots"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getDaySlots.Response) DaySlotsResponse {
	slots := make([]string, 0, len(resp.Slots))
	for _, s := range resp.Slots {
		slots = append(slots, s.String())
	}

	return DaySlotsResponse{
		Slug:  resp.Slug,
		Date:  resp.Date.Format(domain.DateFormat),
		Slots: slots,
	}
}
