package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/QS-AppointmentService/internal/domain"
	"github.com/m04kA/QS-AppointmentService/pkg/types"
)

func generatorConfig() *domain.BusinessConfig {
	return &domain.BusinessConfig{
		Slug:        "barbershop",
		Timezone:    "UTC",
		WorkingDays: []string{"mon", "tue", "wed", "thu", "fri"},
		ClosedDates: []string{"2024-06-10"},
		WorkingHours: domain.WorkingHours{
			Default: &domain.DayHours{Start: "09:00", End: "17:00"},
		},
	}
}

func futureNow() time.Time {
	// "сейчас" задолго до тестовых дат, чтобы день не считался сегодняшним
	return time.Date(2024, 6, 3, 8, 0, 0, 0, time.UTC)
}

func TestGenerateSlotsClosedDate(t *testing.T) {
	cfg := generatorConfig()

	// 2024-06-10 - понедельник, рабочий день недели, но дата закрыта
	got := GenerateSlots(cfg, testMonday, 30, nil, futureNow())
	assert.Empty(t, got)
}

func TestGenerateSlotsNonWorkingWeekday(t *testing.T) {
	cfg := generatorConfig()
	got := GenerateSlots(cfg, testSunday, 30, nil, futureNow())
	assert.Empty(t, got)
}

func TestGenerateSlotsFutureDayFullWindow(t *testing.T) {
	cfg := generatorConfig()
	tuesday := testMonday.AddDate(0, 0, 1)

	got := GenerateSlots(cfg, tuesday, 120, nil, futureNow())

	assert.Equal(t, []types.TimeString{"09:00", "11:00", "13:00", "15:00"}, got)
}

func TestGenerateSlotsLastSlotFitsExactly(t *testing.T) {
	cfg := generatorConfig()
	tuesday := testMonday.AddDate(0, 0, 1)

	got := GenerateSlots(cfg, tuesday, 240, nil, futureNow())

	// 09:00-13:00 и 13:00-17:00, конец второго ровно на границе окна
	assert.Equal(t, []types.TimeString{"09:00", "13:00"}, got)
}

func TestGenerateSlotsSkipsBusyIntervals(t *testing.T) {
	cfg := generatorConfig()
	tuesday := testMonday.AddDate(0, 0, 1)

	busy := []domain.BusyInterval{
		{Start: at(tuesday, 10, 0), End: at(tuesday, 11, 0)},
		// граничащий интервал не должен выбивать слот 13:00
		{Start: at(tuesday, 12, 0), End: at(tuesday, 13, 0)},
	}

	got := GenerateSlots(cfg, tuesday, 60, busy, futureNow())

	assert.NotContains(t, got, types.TimeString("10:00"))
	assert.Contains(t, got, types.TimeString("09:00"))
	assert.NotContains(t, got, types.TimeString("12:00"))
	assert.Contains(t, got, types.TimeString("13:00"))
}

func TestGenerateSlotsBreakSkippedButCursorAdvances(t *testing.T) {
	cfg := generatorConfig()
	cfg.WorkingHours.Default.Breaks = []domain.BreakInterval{{Start: "13:00", End: "14:00"}}
	tuesday := testMonday.AddDate(0, 0, 1)

	got := GenerateSlots(cfg, tuesday, 60, nil, futureNow())

	// слот на перерыв не эмитится, но сетка после него не сдвигается
	assert.Equal(t, []types.TimeString{
		"09:00", "10:00", "11:00", "12:00", "14:00", "15:00", "16:00",
	}, got)
}

func TestGenerateSlotsSameDayCutoff(t *testing.T) {
	cfg := generatorConfig()
	tuesday := testMonday.AddDate(0, 0, 1)

	// 16:55 + 10 минут буфера > 17:00 - duration, слотов нет
	now := at(tuesday, 16, 55)
	got := GenerateSlots(cfg, tuesday, 30, nil, now)
	assert.Empty(t, got)

	// день целиком закончился
	now = at(tuesday, 17, 30)
	got = GenerateSlots(cfg, tuesday, 30, nil, now)
	assert.Empty(t, got)
}

func TestGenerateSlotsSameDayBufferAndAlignment(t *testing.T) {
	cfg := generatorConfig()
	tuesday := testMonday.AddDate(0, 0, 1)

	// 10:07 + 10 минут = 10:17, округляется вверх до 10:30
	now := at(tuesday, 10, 7)
	got := GenerateSlots(cfg, tuesday, 30, nil, now)

	require.NotEmpty(t, got)
	assert.Equal(t, types.TimeString("10:30"), got[0])
}

func TestGenerateSlotsSameDayBeforeOpening(t *testing.T) {
	cfg := generatorConfig()
	tuesday := testMonday.AddDate(0, 0, 1)

	// рано утром окно еще не открылось - начинаем с windowStart
	now := at(tuesday, 6, 0)
	got := GenerateSlots(cfg, tuesday, 60, nil, now)

	require.NotEmpty(t, got)
	assert.Equal(t, types.TimeString("09:00"), got[0])
}

func TestGenerateSlotsPure(t *testing.T) {
	cfg := generatorConfig()
	tuesday := testMonday.AddDate(0, 0, 1)
	busy := []domain.BusyInterval{{Start: at(tuesday, 11, 0), End: at(tuesday, 12, 30)}}
	now := at(tuesday, 9, 42)

	first := GenerateSlots(cfg, tuesday, 45, busy, now)
	second := GenerateSlots(cfg, tuesday, 45, busy, now)

	assert.Equal(t, first, second)
}

func TestGenerateSlotsStayInsideWindow(t *testing.T) {
	cfg := generatorConfig()
	cfg.WorkingHours.Default.Breaks = []domain.BreakInterval{{Start: "12:15", End: "12:45"}}
	tuesday := testMonday.AddDate(0, 0, 1)
	busy := []domain.BusyInterval{{Start: at(tuesday, 14, 0), End: at(tuesday, 15, 10)}}

	duration := 45
	got := GenerateSlots(cfg, tuesday, duration, busy, futureNow())

	windowStart := at(tuesday, 9, 0)
	windowEnd := at(tuesday, 17, 0)
	step := time.Duration(duration) * time.Minute

	for _, s := range got {
		start, err := s.OnDate(tuesday, time.UTC)
		require.NoError(t, err)
		end := start.Add(step)

		assert.False(t, start.Before(windowStart))
		assert.False(t, end.After(windowEnd))

		for _, b := range busy {
			assert.False(t, start.Before(b.End) && b.Start.Before(end),
				"slot %s overlaps busy interval", s)
		}
	}
}

func TestGenerateSlotsBusinessTimezone(t *testing.T) {
	loc, err := time.LoadLocation("Asia/Jerusalem")
	require.NoError(t, err)

	cfg := generatorConfig()
	tuesday := time.Date(2024, 6, 11, 0, 0, 0, 0, loc)

	// занятость приходит от календаря в UTC, сравнение моментов от зоны не зависит
	busyUTC := time.Date(2024, 6, 11, 7, 0, 0, 0, time.UTC) // 10:00 местного
	busy := []domain.BusyInterval{{Start: busyUTC, End: busyUTC.Add(time.Hour)}}

	got := GenerateSlots(cfg, tuesday, 60, busy, futureNow().In(loc))

	assert.NotContains(t, got, types.TimeString("10:00"))
	assert.Contains(t, got, types.TimeString("09:00"))
	assert.Contains(t, got, types.TimeString("11:00"))
}
