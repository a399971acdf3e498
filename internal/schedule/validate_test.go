package schedule

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/QS-AppointmentService/internal/domain"
)

func validatorConfig() *domain.BusinessConfig {
	return &domain.BusinessConfig{
		Slug:        "barbershop",
		Timezone:    "UTC",
		WorkingDays: []string{"mon", "tue", "wed", "thu", "fri"},
		ClosedDates: []string{"2024-06-17"},
		WorkingHours: domain.WorkingHours{
			Default: &domain.DayHours{
				Start:  "09:00",
				End:    "17:00",
				Breaks: []domain.BreakInterval{{Start: "13:00", End: "14:00"}},
			},
		},
	}
}

func at(day time.Time, hour, minute int) time.Time {
	return time.Date(day.Year(), day.Month(), day.Day(), hour, minute, 0, 0, day.Location())
}

func requireRejection(t *testing.T, err error) *Rejection {
	t.Helper()
	require.Error(t, err)
	var rej *Rejection
	require.True(t, errors.As(err, &rej), "expected Rejection, got %T", err)
	return rej
}

func TestValidateSlotAccepted(t *testing.T) {
	cfg := validatorConfig()
	err := ValidateSlot(cfg, at(testMonday, 12, 0), at(testMonday, 13, 0))
	assert.NoError(t, err)
}

func TestValidateSlotCrossDay(t *testing.T) {
	cfg := validatorConfig()
	err := ValidateSlot(cfg, at(testMonday, 23, 0), at(testMonday.AddDate(0, 0, 1), 0, 0))
	rej := requireRejection(t, err)
	assert.Contains(t, rej.Reason, "в один день")
}

func TestValidateSlotClosedWeekday(t *testing.T) {
	cfg := validatorConfig()
	err := ValidateSlot(cfg, at(testSunday, 10, 0), at(testSunday, 11, 0))
	rej := requireRejection(t, err)
	assert.Equal(t, reasonClosedWeekday, rej.Reason)
}

func TestValidateSlotClosedDate(t *testing.T) {
	cfg := validatorConfig()
	// 2024-06-17 - понедельник, но дата закрыта
	closed := time.Date(2024, 6, 17, 0, 0, 0, 0, time.UTC)
	err := ValidateSlot(cfg, at(closed, 10, 0), at(closed, 11, 0))
	rej := requireRejection(t, err)
	assert.Equal(t, reasonClosedDate, rej.Reason)
}

func TestValidateSlotBreakConflict(t *testing.T) {
	cfg := validatorConfig()

	// слот ровно на перерыв отклоняется
	err := ValidateSlot(cfg, at(testMonday, 13, 0), at(testMonday, 14, 0))
	rej := requireRejection(t, err)
	assert.Equal(t, reasonBreak, rej.Reason)

	// частичное пересечение тоже
	err = ValidateSlot(cfg, at(testMonday, 13, 30), at(testMonday, 14, 30))
	requireRejection(t, err)

	// граничащий слот 12:00-13:00 проходит
	err = ValidateSlot(cfg, at(testMonday, 12, 0), at(testMonday, 13, 0))
	assert.NoError(t, err)

	// и слот сразу после перерыва тоже
	err = ValidateSlot(cfg, at(testMonday, 14, 0), at(testMonday, 15, 0))
	assert.NoError(t, err)
}

func TestValidateSlotOutsideHours(t *testing.T) {
	cfg := validatorConfig()

	err := ValidateSlot(cfg, at(testMonday, 16, 30), at(testMonday, 17, 30))
	rej := requireRejection(t, err)
	// сообщение называет окно и последнее допустимое время начала
	assert.Contains(t, rej.Reason, "09:00–17:00")
	assert.Contains(t, rej.Reason, "16:00")

	err = ValidateSlot(cfg, at(testMonday, 8, 0), at(testMonday, 9, 0))
	requireRejection(t, err)
}

func TestValidateSlotChecksAreOrdered(t *testing.T) {
	cfg := validatorConfig()

	// воскресенье вне часов работы: побеждает более ранняя проверка дня недели
	err := ValidateSlot(cfg, at(testSunday, 20, 0), at(testSunday, 21, 0))
	rej := requireRejection(t, err)
	assert.Equal(t, reasonClosedWeekday, rej.Reason)
}

func TestValidateSlotLegacyHoursIgnoreWeekendHours(t *testing.T) {
	// legacy-схема сама по себе не фильтрует дни недели -
	// это делает working_days отдельно
	cfg := &domain.BusinessConfig{
		WorkingDays:  []string{"mon", "sun"},
		WorkingHours: domain.WorkingHours{Start: "10:00", End: "18:00"},
	}

	err := ValidateSlot(cfg, at(testSunday, 10, 0), at(testSunday, 11, 0))
	assert.NoError(t, err)
}
