package get_day_slots

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/QS-AppointmentService/internal/domain"
	"github.com/m04kA/QS-AppointmentService/internal/schedule"
	businesscfgService "github.com/m04kA/QS-AppointmentService/internal/service/businesscfg"
	"github.com/m04kA/QS-AppointmentService/pkg/types"
)

// UseCase use case получения доступных времен записи на дату
type UseCase struct {
	configs      ConfigService
	calendar     CalendarClient
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	configs ConfigService,
	calendar CalendarClient,
	logger Logger,
) *UseCase {
	return &UseCase{
		configs:      configs,
		calendar:     calendar,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет use case получения доступных времен
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetDaySlots: business=%s, date=%s, duration=%d",
		req.Slug, req.Date.Format(domain.DateFormat), req.DurationMinutes)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetDaySlots: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем эффективную конфигурацию бизнеса
	cfg, err := uc.configs.Resolve(ctx, req.Slug)
	if err != nil {
		if errors.Is(err, businesscfgService.ErrBusinessNotFound) {
			uc.logger.Warn("GetDaySlots: business=%s not found", req.Slug)
			return nil, ErrBusinessNotFound
		}
		uc.logger.Error("GetDaySlots: failed to resolve config for business=%s: %v", req.Slug, err)
		return nil, fmt.Errorf("%w: failed to resolve config: %v", ErrInternal, err)
	}

	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		uc.logger.Error("GetDaySlots: invalid timezone %q for business=%s: %v", cfg.Timezone, req.Slug, err)
		return nil, fmt.Errorf("%w: invalid timezone %q: %v", ErrInternal, cfg.Timezone, err)
	}

	date := time.Date(req.Date.Year(), req.Date.Month(), req.Date.Day(), 0, 0, 0, 0, loc)
	resp := &Response{Slug: req.Slug, Date: date, Slots: []types.TimeString{}}

	// 3. Нерабочий день или закрытая дата - пусто, в календарь не ходим
	if !cfg.HasWorkingDay(schedule.DayKey(date)) || cfg.IsClosedDate(date.Format(domain.DateFormat)) {
		return resp, nil
	}

	hours := schedule.ResolveHours(cfg, date)
	windowStart, err := types.TimeString(hours.Start).OnDate(date, loc)
	if err != nil {
		return nil, fmt.Errorf("%w: malformed working hours: %v", ErrInternal, err)
	}
	windowEnd, err := types.TimeString(hours.End).OnDate(date, loc)
	if err != nil {
		return nil, fmt.Errorf("%w: malformed working hours: %v", ErrInternal, err)
	}

	nowLocal := uc.timeProvider.Now().In(loc)

	// 4. Рабочий день сегодня уже закончился - пусто, в календарь не ходим
	if isSameDate(date, nowLocal) && !nowLocal.Before(windowEnd) {
		return resp, nil
	}

	// 5. Занятые интервалы календаря за окно работы
	busy, err := uc.calendar.FreeBusy(ctx, cfg.CalendarID, windowStart.UTC(), windowEnd.UTC())
	if err != nil {
		uc.logger.Error("GetDaySlots: freebusy failed for business=%s: %v", req.Slug, err)
		return nil, fmt.Errorf("%w: failed to fetch busy intervals: %v", ErrInternal, err)
	}

	// 6. Генерация слотов
	resp.Slots = schedule.GenerateSlots(cfg, date, req.DurationMinutes, busy, nowLocal)

	uc.logger.Info("GetDaySlots: business=%s, date=%s - %d slots",
		req.Slug, date.Format(domain.DateFormat), len(resp.Slots))

	return resp, nil
}

func isSameDate(a, b time.Time) bool {
	y1, m1, d1 := a.Date()
	y2, m2, d2 := b.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}
