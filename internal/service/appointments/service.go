package appointments

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/QS-AppointmentService/internal/domain"
	appointmentRepo "github.com/m04kA/QS-AppointmentService/internal/infra/storage/appointment"
)

// Service сервис просмотра и отмены записей клиента
// Создание записей живет в отдельном usecase - там транзакция,
// лимиты и согласование с календарем
type Service struct {
	appointments AppointmentRepository
	calendar     CalendarClient
	configs      ConfigResolver
	logger       Logger
}

// NewService создает новый экземпляр сервиса записей
func NewService(
	appointments AppointmentRepository,
	calendar CalendarClient,
	configs ConfigResolver,
	logger Logger,
) *Service {
	return &Service{
		appointments: appointments,
		calendar:     calendar,
		configs:      configs,
		logger:       logger,
	}
}

// List возвращает все записи клиента, отсортированные по времени начала
func (s *Service) List(ctx context.Context, phone string) ([]*domain.Appointment, error) {
	if phone == "" {
		return []*domain.Appointment{}, nil
	}

	appointments, err := s.appointments.ListByPhone(ctx, phone)
	if err != nil {
		s.logger.Error("List: repository error for phone=%s: %v", phone, err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	return appointments, nil
}

// Cancel отменяет запись клиента: удаляет событие из календаря и строку из БД
// Чужие записи отменить нельзя - телефон записи сверяется с телефоном клиента
func (s *Service) Cancel(ctx context.Context, phone string, appointmentID int64) error {
	s.logger.Info("Cancel: cancelling appointment id=%d for phone=%s", appointmentID, phone)

	appt, err := s.appointments.GetByID(ctx, appointmentID)
	if err != nil {
		if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
			return ErrAppointmentNotFound
		}
		s.logger.Error("Cancel: repository error for id=%d: %v", appointmentID, err)
		return fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
	}

	if appt.Phone != phone {
		s.logger.Warn("Cancel: phone mismatch for appointment id=%d", appointmentID)
		return ErrAccessDenied
	}

	cfg, err := s.configs.Resolve(ctx, appt.BusinessSlug)
	if err != nil {
		s.logger.Error("Cancel: failed to resolve config for business=%s: %v", appt.BusinessSlug, err)
		return fmt.Errorf("%w: Cancel - resolve config: %v", ErrInternal, err)
	}

	// Уже удаленное на стороне календаря событие клиент считает успехом
	if appt.CalendarEventID != "" {
		if err := s.calendar.DeleteEvent(ctx, cfg.CalendarID, appt.CalendarEventID); err != nil {
			s.logger.Error("Cancel: failed to delete calendar event %s: %v", appt.CalendarEventID, err)
			return fmt.Errorf("%w: Cancel - delete calendar event: %v", ErrInternal, err)
		}
	}

	if err := s.appointments.Delete(ctx, appointmentID); err != nil {
		if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
			return ErrAppointmentNotFound
		}
		s.logger.Error("Cancel: failed to delete appointment id=%d: %v", appointmentID, err)
		return fmt.Errorf("%w: Cancel - delete appointment: %v", ErrInternal, err)
	}

	s.logger.Info("Cancel: appointment id=%d cancelled", appointmentID)
	return nil
}
