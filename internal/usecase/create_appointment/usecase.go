package create_appointment

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/QS-AppointmentService/internal/domain"
	"github.com/m04kA/QS-AppointmentService/internal/integrations/calendar"
	"github.com/m04kA/QS-AppointmentService/internal/schedule"
	businesscfgService "github.com/m04kA/QS-AppointmentService/internal/service/businesscfg"
)

// UseCase use case создания записи на услугу
type UseCase struct {
	configs      ConfigService
	calendar     CalendarClient
	appointments AppointmentRepository
	txManager    TransactionManager
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	configs ConfigService,
	calendarClient CalendarClient,
	appointments AppointmentRepository,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		configs:      configs,
		calendar:     calendarClient,
		appointments: appointments,
		txManager:    txManager,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет use case создания записи
// Проверка лимита и вставка строки выполняются в сериализуемой транзакции,
// чтобы лимит будущих записей не обходился параллельными запросами
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateAppointment: business=%s, phone=%s, date=%s, time=%s, duration=%d",
		req.Slug, req.Phone, req.Date.Format(domain.DateFormat), req.Start, req.DurationMinutes)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateAppointment: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем эффективную конфигурацию бизнеса
	cfg, err := uc.configs.Resolve(ctx, req.Slug)
	if err != nil {
		if errors.Is(err, businesscfgService.ErrBusinessNotFound) {
			uc.logger.Warn("CreateAppointment: business=%s not found", req.Slug)
			return nil, ErrBusinessNotFound
		}
		uc.logger.Error("CreateAppointment: failed to resolve config for business=%s: %v", req.Slug, err)
		return nil, fmt.Errorf("%w: failed to resolve config: %v", ErrInternal, err)
	}

	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		uc.logger.Error("CreateAppointment: invalid timezone %q for business=%s: %v", cfg.Timezone, req.Slug, err)
		return nil, fmt.Errorf("%w: invalid timezone %q: %v", ErrInternal, cfg.Timezone, err)
	}

	// 3. Строим интервал записи в зоне бизнеса
	// Начало притягивается к пятиминутной сетке, а не к длительности услуги
	startLocal, err := req.Start.OnDate(req.Date, loc)
	if err != nil {
		return nil, fmt.Errorf("%w: time must be in HH:MM format", ErrInvalidInput)
	}
	startLocal = schedule.CeilToSlot(startLocal, domain.BookingSnapMinutes)
	endLocal := startLocal.Add(time.Duration(req.DurationMinutes) * time.Minute)

	// 4. Проверка правил расписания
	// Rejection - ожидаемый пользовательский отказ, отдаем его как есть
	if err := schedule.ValidateSlot(cfg, startLocal, endLocal); err != nil {
		uc.logger.Warn("CreateAppointment: slot rejected for business=%s: %v", req.Slug, err)
		return nil, err
	}

	// 5. Проверяем, что окно свободно в календаре
	free, err := uc.calendar.IsFree(ctx, cfg.CalendarID, startLocal.UTC(), endLocal.UTC())
	if err != nil {
		uc.logger.Error("CreateAppointment: freebusy check failed for business=%s: %v", req.Slug, err)
		return nil, fmt.Errorf("%w: failed to check calendar availability: %v", ErrInternal, err)
	}
	if !free {
		uc.logger.Warn("CreateAppointment: slot %s already busy for business=%s", startLocal, req.Slug)
		return nil, ErrSlotTaken
	}

	now := uc.timeProvider.Now()

	// 6. Предварительная проверка лимита будущих записей
	// Окончательная проверка с блокировкой строк выполняется в транзакции,
	// здесь отсекаем заведомо лишние обращения к календарю
	count, err := uc.appointments.CountUpcomingByPhone(ctx, req.Phone, now)
	if err != nil {
		uc.logger.Error("CreateAppointment: failed to count upcoming appointments: %v", err)
		return nil, fmt.Errorf("%w: failed to count upcoming appointments: %v", ErrInternal, err)
	}
	if count >= domain.MaxActiveAppointments {
		uc.logger.Warn("CreateAppointment: phone=%s has %d active appointments, limit %d",
			req.Phone, count, domain.MaxActiveAppointments)
		return nil, ErrTooManyAppointments
	}

	// 7. Создаем событие в календаре до транзакции
	// Менеджер транзакций повторяет замыкание при конфликте сериализации,
	// внешний вызов внутри замыкания оставлял бы событие-сироту в календаре.
	// Конфликт вставки означает, что слот заняли между проверкой и записью
	eventID, err := uc.calendar.CreateEvent(ctx, cfg.CalendarID, calendar.Event{
		Summary:     fmt.Sprintf("%s - %s", req.Name, req.ServiceName),
		Description: req.Phone,
		Start:       startLocal,
		End:         endLocal,
		Timezone:    cfg.Timezone,
	})
	if err != nil {
		if errors.Is(err, calendar.ErrSlotConflict) {
			uc.logger.Warn("CreateAppointment: calendar rejected event for business=%s: slot conflict", req.Slug)
			return nil, ErrSlotTaken
		}
		uc.logger.Error("CreateAppointment: failed to create calendar event: %v", err)
		return nil, fmt.Errorf("%w: failed to create calendar event: %v", ErrInternal, err)
	}

	var result *domain.Appointment

	// 8. Лимит и вставка строки в сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 8.1. Пересчитываем будущие записи с блокировкой строк (FOR UPDATE)
		count, err := uc.appointments.CountUpcomingByPhone(txCtx, req.Phone, now)
		if err != nil {
			uc.logger.Error("CreateAppointment: failed to count upcoming appointments: %v", err)
			return fmt.Errorf("%w: failed to count upcoming appointments: %v", ErrInternal, err)
		}

		if count >= domain.MaxActiveAppointments {
			uc.logger.Warn("CreateAppointment: phone=%s has %d active appointments, limit %d",
				req.Phone, count, domain.MaxActiveAppointments)
			return ErrTooManyAppointments
		}

		// 8.2. Сохраняем запись
		created, err := uc.appointments.Create(txCtx, &domain.Appointment{
			BusinessSlug:    req.Slug,
			Name:            req.Name,
			Phone:           req.Phone,
			StartTime:       startLocal,
			DurationMinutes: req.DurationMinutes,
			ServiceName:     req.ServiceName,
			CalendarEventID: eventID,
		})
		if err != nil {
			uc.logger.Error("CreateAppointment: failed to persist appointment: %v", err)
			return fmt.Errorf("%w: failed to persist appointment: %v", ErrInternal, err)
		}

		result = created
		return nil
	})

	if err != nil {
		// Транзакция не прошла, включая ошибку коммита -
		// событие уже в календаре, убираем его, чтобы слот не остался занятым
		if delErr := uc.calendar.DeleteEvent(ctx, cfg.CalendarID, eventID); delErr != nil {
			uc.logger.Error("CreateAppointment: failed to roll back calendar event %s: %v", eventID, delErr)
		}
		return nil, err
	}

	uc.logger.Info("CreateAppointment: successfully created appointment id=%d for business=%s",
		result.ID, req.Slug)

	return &Response{
		ID:              result.ID,
		BusinessSlug:    result.BusinessSlug,
		StartTime:       result.StartTime,
		DurationMinutes: result.DurationMinutes,
		ServiceName:     result.ServiceName,
		CalendarEventID: result.CalendarEventID,
		CreatedAt:       result.CreatedAt,
	}, nil
}
