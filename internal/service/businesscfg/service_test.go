package businesscfg

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	overrideRepo "github.com/m04kA/QS-AppointmentService/internal/infra/storage/override"
	"github.com/m04kA/QS-AppointmentService/internal/service/businesscfg/models"
	"github.com/m04kA/QS-AppointmentService/pkg/ptr"
)

type fakeOverrideRepo struct {
	data map[string]map[string]interface{}
}

func newFakeOverrideRepo() *fakeOverrideRepo {
	return &fakeOverrideRepo{data: map[string]map[string]interface{}{}}
}

func (f *fakeOverrideRepo) GetBySlug(_ context.Context, slug string) (map[string]interface{}, error) {
	if o, ok := f.data[slug]; ok {
		return o, nil
	}
	return nil, overrideRepo.ErrOverrideNotFound
}

func (f *fakeOverrideRepo) Upsert(_ context.Context, slug string, data map[string]interface{}) error {
	f.data[slug] = data
	return nil
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "business_config.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

const multiBusinessConfig = `{
  "businesses": {
    "barber": {
      "timezone": "Asia/Jerusalem",
      "display": {"name": "Барбершоп"},
      "working_days": ["sun", "mon", "tue", "wed", "thu"],
      "closed_dates": [],
      "working_hours": {"start": "10:00", "end": "19:00"},
      "services": [{"id": "haircut", "name": "Стрижка", "duration_minutes": 30}],
      "calendar_id": "cal-barber"
    }
  }
}`

func TestResolveReturnsBaseConfig(t *testing.T) {
	svc := NewService(writeConfigFile(t, multiBusinessConfig), newFakeOverrideRepo(), nopLogger{})

	cfg, err := svc.Resolve(context.Background(), "barber")
	require.NoError(t, err)

	assert.Equal(t, "barber", cfg.Slug)
	assert.Equal(t, "Asia/Jerusalem", cfg.Timezone)
	assert.True(t, cfg.WorkingHours.IsLegacy())
	assert.Len(t, cfg.Services, 1)
	assert.Equal(t, "cal-barber", cfg.CalendarID)
}

func TestResolveUnknownBusiness(t *testing.T) {
	svc := NewService(writeConfigFile(t, multiBusinessConfig), newFakeOverrideRepo(), nopLogger{})

	_, err := svc.Resolve(context.Background(), "nope")
	assert.ErrorIs(t, err, ErrBusinessNotFound)
}

func TestResolveLegacySingleBusinessFile(t *testing.T) {
	// старый формат: файл содержит один бизнес без обёртки businesses
	legacy := `{
  "timezone": "UTC",
  "working_days": ["mon"],
  "working_hours": {"start": "09:00", "end": "17:00"},
  "services": []
}`
	svc := NewService(writeConfigFile(t, legacy), newFakeOverrideRepo(), nopLogger{})

	cfg, err := svc.Resolve(context.Background(), "default")
	require.NoError(t, err)
	assert.Equal(t, "default", cfg.Slug)

	_, err = svc.Resolve(context.Background(), "barber")
	assert.ErrorIs(t, err, ErrBusinessNotFound)
}

func TestResolveMalformedFile(t *testing.T) {
	svc := NewService(writeConfigFile(t, `{"businesses": 42}`), newFakeOverrideRepo(), nopLogger{})

	_, err := svc.Resolve(context.Background(), "barber")
	assert.ErrorIs(t, err, ErrConfigMalformed)
}

func TestResolveAppliesOverrideAndStripsLegacyHours(t *testing.T) {
	repo := newFakeOverrideRepo()
	repo.data["barber"] = map[string]interface{}{
		"working_hours": map[string]interface{}{
			"default": map[string]interface{}{"start": "08:00", "end": "16:00"},
		},
	}
	svc := NewService(writeConfigFile(t, multiBusinessConfig), repo, nopLogger{})

	cfg, err := svc.Resolve(context.Background(), "barber")
	require.NoError(t, err)

	// structured-схема из переопределения вытесняет legacy start/end базы
	assert.False(t, cfg.WorkingHours.IsLegacy())
	require.NotNil(t, cfg.WorkingHours.Default)
	assert.Equal(t, "08:00", cfg.WorkingHours.Default.Start)
	assert.Equal(t, "16:00", cfg.WorkingHours.Default.End)
}

func validUpdateRequest() *models.UpdateConfigRequest {
	return &models.UpdateConfigRequest{
		DisplayName: ptr.Ptr("Новое имя"),
		WorkingDays: []string{"sun", "mon", "tue"},
		ClosedDates: []string{"2024-06-10"},
		Services: []models.ServiceInput{
			{ID: "haircut", Name: "Стрижка", DurationMinutes: 30},
		},
		WorkingHours: models.WorkingHoursInput{
			Default: models.DayInput{Start: "09:00", End: "18:00"},
			ByDay: map[string]models.DayInput{
				"fri": {Start: "09:00", End: "13:00", Breaks: []models.BreakInput{}},
			},
		},
	}
}

func TestUpdatePersistsOverride(t *testing.T) {
	repo := newFakeOverrideRepo()
	svc := NewService(writeConfigFile(t, multiBusinessConfig), repo, nopLogger{})

	cfg, err := svc.Update(context.Background(), "barber", validUpdateRequest())
	require.NoError(t, err)

	assert.Equal(t, []string{"sun", "mon", "tue"}, cfg.WorkingDays)
	assert.Equal(t, []string{"2024-06-10"}, cfg.ClosedDates)
	require.NotNil(t, cfg.WorkingHours.Default)
	assert.Equal(t, "18:00", cfg.WorkingHours.Default.End)
	assert.Equal(t, "Новое имя", cfg.Display.Name)

	stored := repo.data["barber"]
	require.NotNil(t, stored)
	wh := stored["working_hours"].(map[string]interface{})
	assert.Contains(t, wh, "default")
	assert.NotContains(t, wh, "start")
}

func TestUpdateClearsBreaksWithEmptyList(t *testing.T) {
	repo := newFakeOverrideRepo()
	repo.data["barber"] = map[string]interface{}{
		"working_hours": map[string]interface{}{
			"default": map[string]interface{}{"start": "09:00", "end": "18:00"},
			"by_day": map[string]interface{}{
				"fri": map[string]interface{}{
					"breaks": []interface{}{map[string]interface{}{"start": "12:00", "end": "13:00"}},
				},
			},
		},
	}
	svc := NewService(writeConfigFile(t, multiBusinessConfig), repo, nopLogger{})

	req := validUpdateRequest()
	req.WorkingHours.ByDay = map[string]models.DayInput{
		"fri": {Breaks: []models.BreakInput{}},
	}

	cfg, err := svc.Update(context.Background(), "barber", req)
	require.NoError(t, err)

	// пустой список перерывов удаляет ключ breaks, а пустой день - весь день
	_, hasFri := cfg.WorkingHours.ByDay["fri"]
	assert.False(t, hasFri)
}

func TestUpdateValidation(t *testing.T) {
	svc := NewService(writeConfigFile(t, multiBusinessConfig), newFakeOverrideRepo(), nopLogger{})
	ctx := context.Background()

	tests := []struct {
		name   string
		mutate func(*models.UpdateConfigRequest)
	}{
		{"no working days", func(r *models.UpdateConfigRequest) { r.WorkingDays = []string{"xxx"} }},
		{"bad closed date", func(r *models.UpdateConfigRequest) { r.ClosedDates = []string{"10.06.2024"} }},
		{"bad service id", func(r *models.UpdateConfigRequest) { r.Services[0].ID = "x" }},
		{"missing service name", func(r *models.UpdateConfigRequest) { r.Services[0].Name = "" }},
		{"duration too long", func(r *models.UpdateConfigRequest) { r.Services[0].DurationMinutes = 601 }},
		{"default start after end", func(r *models.UpdateConfigRequest) {
			r.WorkingHours.Default = models.DayInput{Start: "18:00", End: "09:00"}
		}},
		{"half-open day hours", func(r *models.UpdateConfigRequest) {
			r.WorkingHours.ByDay = map[string]models.DayInput{"fri": {Start: "09:00"}}
		}},
		{"bad break", func(r *models.UpdateConfigRequest) {
			r.WorkingHours.ByDay = map[string]models.DayInput{
				"fri": {Breaks: []models.BreakInput{{Start: "14:00", End: "13:00"}}},
			}
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validUpdateRequest()
			tt.mutate(req)

			_, err := svc.Update(ctx, "barber", req)
			assert.True(t, errors.Is(err, ErrInvalidInput), "got: %v", err)
		})
	}
}

func TestUpdateDropsUnknownServiceRows(t *testing.T) {
	svc := NewService(writeConfigFile(t, multiBusinessConfig), newFakeOverrideRepo(), nopLogger{})

	req := validUpdateRequest()
	// полностью пустая строка услуги игнорируется, как пустая строка формы
	req.Services = append(req.Services, models.ServiceInput{})

	cfg, err := svc.Update(context.Background(), "barber", req)
	require.NoError(t, err)
	assert.Len(t, cfg.Services, 1)
}
