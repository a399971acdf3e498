package schedule

import (
	"fmt"
	"time"

	"github.com/m04kA/QS-AppointmentService/internal/domain"
	"github.com/m04kA/QS-AppointmentService/pkg/types"
)

// Причины отклонения слота, показываются пользователю как есть
const (
	reasonCrossDay      = "запись должна начинаться и заканчиваться в один день"
	reasonClosedWeekday = "бизнес закрыт в этот день недели"
	reasonClosedDate    = "бизнес закрыт в эту дату"
	reasonBreak         = "на это время назначен перерыв"
)

// Rejection нарушение правил расписания
// Это ожидаемый, пользовательский результат проверки, а не сбой сервиса
type Rejection struct {
	Reason string
}

func (r *Rejection) Error() string {
	return r.Reason
}

func reject(reason string) error {
	return &Rejection{Reason: reason}
}

// ValidateSlot проверяет легальность кандидата [startLocal, endLocal)
// для бизнеса cfg. Проверки выполняются по порядку, возвращается первая
// нарушенная причина:
//  1. начало и конец в один календарный день
//  2. день недели рабочий
//  3. дата не входит в закрытые даты
//  4. слот не пересекает перерыв и целиком лежит в часах работы
//
// Моменты должны быть в часовом поясе бизнеса; cfg считается валидным
// (времена в формате HH:MM)
func ValidateSlot(cfg *domain.BusinessConfig, startLocal, endLocal time.Time) error {
	if !isSameDay(startLocal, endLocal) {
		return reject(reasonCrossDay)
	}

	if !cfg.HasWorkingDay(DayKey(startLocal)) {
		return reject(reasonClosedWeekday)
	}

	if cfg.IsClosedDate(startLocal.Format(domain.DateFormat)) {
		return reject(reasonClosedDate)
	}

	hours := ResolveHours(cfg, startLocal)

	startMin := minutesOfDay(startLocal)
	endMin := minutesOfDay(endLocal)

	// Перерывы проверяются до границ окна: пересечение полуоткрытых интервалов
	for _, b := range hours.Breaks {
		breakStart := types.TimeString(b.Start).Minutes()
		breakEnd := types.TimeString(b.End).Minutes()
		if startMin < breakEnd && endMin > breakStart {
			return reject(reasonBreak)
		}
	}

	allowedStart := types.TimeString(hours.Start).Minutes()
	allowedEnd := types.TimeString(hours.End).Minutes()

	if startMin < allowedStart || endMin > allowedEnd {
		// Последнее допустимое время начала для этой длительности
		duration := endMin - startMin
		lastStart := allowedEnd - duration
		return reject(fmt.Sprintf(
			"часы работы %s–%s, последняя запись может начаться в %s",
			hours.Start, hours.End, formatMinutes(lastStart),
		))
	}

	return nil
}

func minutesOfDay(t time.Time) int {
	return t.Hour()*60 + t.Minute()
}

func formatMinutes(m int) string {
	if m < 0 {
		m = 0
	}
	return fmt.Sprintf("%02d:%02d", m/60, m%60)
}
