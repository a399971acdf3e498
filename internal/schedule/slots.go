package schedule

import (
	"time"

	"github.com/m04kA/QS-AppointmentService/internal/domain"
	"github.com/m04kA/QS-AppointmentService/pkg/types"
)

// GenerateSlots перечисляет доступные времена начала записи на дату
//
// Слоты идут фиксированным шагом durationMinutes от начала окна работы
// (а не упаковываются в свободные промежутки): все предлагаемые времена
// выровнены от одного якоря, без странных стартов вроде 09:07
//
// Правила:
//   - нерабочий день недели или закрытая дата - пустой результат
//   - запись на сегодня: первый слот не раньше nowLocal + SameDayLeadTime,
//     округленного вверх до границы слота; если окно уже закончилось - пусто
//   - слот, пересекающий занятый интервал или перерыв, пропускается,
//     курсор при этом продолжает двигаться тем же шагом
//
// date и nowLocal должны быть в часовом поясе бизнеса
// Функция чистая: одинаковые аргументы дают одинаковый результат
func GenerateSlots(
	cfg *domain.BusinessConfig,
	date time.Time,
	durationMinutes int,
	busy []domain.BusyInterval,
	nowLocal time.Time,
) []types.TimeString {
	slots := make([]types.TimeString, 0)

	if !cfg.HasWorkingDay(DayKey(date)) {
		return slots
	}
	if cfg.IsClosedDate(date.Format(domain.DateFormat)) {
		return slots
	}

	hours := ResolveHours(cfg, date)
	loc := date.Location()

	windowStart := combine(date, hours.Start, loc)
	windowEnd := combine(date, hours.End, loc)

	isToday := isSameDay(date, nowLocal)

	// Сегодняшний день уже закончился
	if isToday && !nowLocal.Before(windowEnd) {
		return slots
	}

	cursor := windowStart
	if isToday {
		buffered := CeilToSlot(nowLocal.Add(domain.SameDayLeadTime), durationMinutes)
		if buffered.After(cursor) {
			cursor = buffered
		}
	}

	step := time.Duration(durationMinutes) * time.Minute

	for !cursor.Add(step).After(windowEnd) {
		slotStart := cursor
		slotEnd := cursor.Add(step)
		cursor = cursor.Add(step)

		if overlapsBusy(slotStart, slotEnd, busy) {
			continue
		}
		if overlapsBreak(slotStart, slotEnd, hours.Breaks, loc) {
			continue
		}

		slots = append(slots, types.NewTimeString(slotStart))
	}

	return slots
}

func overlapsBusy(start, end time.Time, busy []domain.BusyInterval) bool {
	for _, b := range busy {
		if overlaps(start, end, b.Start, b.End) {
			return true
		}
	}
	return false
}

func overlapsBreak(start, end time.Time, breaks []domain.BreakInterval, loc *time.Location) bool {
	for _, b := range breaks {
		breakStart := combine(start, b.Start, loc)
		breakEnd := combine(start, b.End, loc)
		if overlaps(start, end, breakStart, breakEnd) {
			return true
		}
	}
	return false
}

// combine совмещает календарную дату с временем HH:MM в указанной зоне
func combine(date time.Time, hhmm string, loc *time.Location) time.Time {
	minutes := types.TimeString(hhmm).Minutes()
	return time.Date(date.Year(), date.Month(), date.Day(), minutes/60, minutes%60, 0, 0, loc)
}
