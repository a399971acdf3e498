package schedule

import (
	"time"

	"github.com/m04kA/QS-AppointmentService/internal/domain"
)

// ResolveHours возвращает эффективные часы работы бизнеса на дату,
// применяя приоритет: legacy-схема -> по дню недели -> default -> 09:00-17:00
//
// Правило для перерывов: перерывы конкретного дня наследуются из default
// только при полном отсутствии поля (nil); явный пустой список означает
// "в этот день перерывов нет" и default не наследует
func ResolveHours(cfg *domain.BusinessConfig, date time.Time) domain.ResolvedHours {
	wh := cfg.WorkingHours

	// Legacy-схема: одни часы на все дни, без перерывов
	if wh.IsLegacy() {
		return domain.ResolvedHours{
			Start:  wh.Start,
			End:    wh.End,
			Breaks: []domain.BreakInterval{},
		}
	}

	var def domain.DayHours
	if wh.Default != nil {
		def = *wh.Default
	}
	specific := wh.ByDay[DayKey(date)]

	start := firstNonEmpty(specific.Start, def.Start, domain.DefaultWorkStart)
	end := firstNonEmpty(specific.End, def.End, domain.DefaultWorkEnd)

	breaks := specific.Breaks
	if breaks == nil {
		breaks = def.Breaks
	}
	if breaks == nil {
		breaks = []domain.BreakInterval{}
	}

	return domain.ResolvedHours{Start: start, End: end, Breaks: breaks}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
