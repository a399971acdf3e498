package schedule

import (
	"time"

	"github.com/m04kA/QS-AppointmentService/internal/domain"
)

// DayKey возвращает ключ дня недели для даты: "mon"=0 ... "sun"=6
func DayKey(date time.Time) string {
	// time.Weekday начинается с воскресенья, ключи - с понедельника
	return domain.DayKeys[(int(date.Weekday())+6)%7]
}

// CeilToSlot округляет момент времени вверх до ближайшей границы,
// кратной durationMinutes по минуте часа, обнуляя секунды
// Уже выровненный момент возвращается без сдвига
func CeilToSlot(t time.Time, durationMinutes int) time.Time {
	truncated := time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), 0, 0, t.Location())

	remainder := t.Minute() % durationMinutes
	if remainder == 0 {
		return truncated
	}

	return truncated.Add(time.Duration(durationMinutes-remainder) * time.Minute)
}

// isSameDay проверяет, что два момента относятся к одной календарной дате
func isSameDay(a, b time.Time) bool {
	y1, m1, d1 := a.Date()
	y2, m2, d2 := b.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

// overlaps проверяет пересечение полуоткрытых интервалов [aStart, aEnd) и [bStart, bEnd)
// Граничащие интервалы пересечением не считаются
func overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	return aStart.Before(bEnd) && bStart.Before(aEnd)
}
