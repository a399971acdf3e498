package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/m04kA/QS-AppointmentService/internal/domain"
	"github.com/m04kA/QS-AppointmentService/pkg/types"
)

var (
	// 2024-06-10 - понедельник, 2024-06-14 - пятница
	testMonday = time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC)
	testFriday = time.Date(2024, 6, 14, 0, 0, 0, 0, time.UTC)
	testSunday = time.Date(2024, 6, 16, 0, 0, 0, 0, time.UTC)
)

func TestResolveHoursLegacySchema(t *testing.T) {
	cfg := &domain.BusinessConfig{
		WorkingHours: domain.WorkingHours{Start: "10:00", End: "18:00"},
	}

	// legacy-схема действует на любую дату, включая выходные
	for _, date := range []time.Time{testMonday, testFriday, testSunday} {
		got := ResolveHours(cfg, date)
		assert.Equal(t, "10:00", got.Start)
		assert.Equal(t, "18:00", got.End)
		assert.Empty(t, got.Breaks)
		assert.NotNil(t, got.Breaks)
	}
}

func TestResolveHoursUltimateDefaults(t *testing.T) {
	cfg := &domain.BusinessConfig{}

	got := ResolveHours(cfg, testMonday)
	assert.Equal(t, "09:00", got.Start)
	assert.Equal(t, "17:00", got.End)
	assert.Empty(t, got.Breaks)
}

func TestResolveHoursPerDayOverride(t *testing.T) {
	cfg := &domain.BusinessConfig{
		WorkingHours: domain.WorkingHours{
			Default: &domain.DayHours{
				Start:  "09:00",
				End:    "17:00",
				Breaks: []domain.BreakInterval{{Start: "13:00", End: "14:00"}},
			},
			ByDay: map[string]domain.DayHours{
				"fri": {Start: "09:00", End: "13:00", Breaks: []domain.BreakInterval{}},
			},
		},
	}

	// пятница: свои часы и явно пустой список перерывов, default не наследуется
	fri := ResolveHours(cfg, testFriday)
	assert.Equal(t, "13:00", fri.End)
	assert.Empty(t, fri.Breaks)

	// понедельник: всё из default, включая перерыв
	mon := ResolveHours(cfg, testMonday)
	assert.Equal(t, "17:00", mon.End)
	assert.Equal(t, []domain.BreakInterval{{Start: "13:00", End: "14:00"}}, mon.Breaks)
}

func TestResolveHoursBreaksInheritOnlyWhenAbsent(t *testing.T) {
	cfg := &domain.BusinessConfig{
		WorkingHours: domain.WorkingHours{
			Default: &domain.DayHours{
				Breaks: []domain.BreakInterval{{Start: "12:00", End: "12:30"}},
			},
			ByDay: map[string]domain.DayHours{
				// часы заданы, поле breaks отсутствует (nil) - наследуем default
				"tue": {Start: "10:00"},
			},
		},
	}

	tue := ResolveHours(cfg, testMonday.AddDate(0, 0, 1))
	assert.Equal(t, "10:00", tue.Start)
	assert.Equal(t, "17:00", tue.End)
	assert.Equal(t, []domain.BreakInterval{{Start: "12:00", End: "12:30"}}, tue.Breaks)
}

func TestResolveHoursPartialDayFallsBackToDefault(t *testing.T) {
	cfg := &domain.BusinessConfig{
		WorkingHours: domain.WorkingHours{
			Default: &domain.DayHours{Start: "08:00", End: "16:00"},
			ByDay: map[string]domain.DayHours{
				"mon": {End: "20:00"},
			},
		},
	}

	got := ResolveHours(cfg, testMonday)
	assert.Equal(t, "08:00", got.Start)
	assert.Equal(t, "20:00", got.End)
}

func TestResolveHoursStartBeforeEnd(t *testing.T) {
	// для всех невырожденных конфигураций start < end на любую дату
	configs := []*domain.BusinessConfig{
		{},
		{WorkingHours: domain.WorkingHours{Start: "10:00", End: "18:00"}},
		{WorkingHours: domain.WorkingHours{
			Default: &domain.DayHours{Start: "07:30", End: "15:45"},
			ByDay:   map[string]domain.DayHours{"sat": {Start: "10:00", End: "14:00"}},
		}},
	}

	for _, cfg := range configs {
		for i := 0; i < 7; i++ {
			got := ResolveHours(cfg, testMonday.AddDate(0, 0, i))
			assert.True(t,
				types.TimeString(got.Start).IsBefore(types.TimeString(got.End)),
				"start=%s end=%s", got.Start, got.End)
		}
	}
}
