package get_services

import "github.com/m04kA/QS-AppointmentService/internal/domain"

// ServiceItem услуга бизнеса в HTTP ответе
type ServiceItem struct {
	ID              string `json:"id"`
	Name            string `json:"name"`
	DurationMinutes int    `json:"durationMinutes"`
}

// ServicesResponse HTTP response model
type ServicesResponse struct {
	Slug        string        `json:"slug"`
	DisplayName string        `json:"displayName,omitempty"`
	WorkingDays []string      `json:"workingDays"`
	Services    []ServiceItem `json:"services"`
}

// FromConfig конвертирует конфигурацию бизнеса в HTTP response
func FromConfig(cfg *domain.BusinessConfig) ServicesResponse {
	services := make([]ServiceItem, 0, len(cfg.Services))
	for _, s := range cfg.Services {
		services = append(services, ServiceItem{
			ID:              s.ID,
			Name:            s.Name,
			DurationMinutes: s.DurationMinutes,
		})
	}

	workingDays := cfg.WorkingDays
	if workingDays == nil {
		workingDays = []string{}
	}

	return ServicesResponse{
		Slug:        cfg.Slug,
		DisplayName: cfg.Display.Name,
		WorkingDays: workingDays,
		Services:    services,
	}
}
