package businesscfg

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"regexp"
	"time"

	"github.com/m04kA/QS-AppointmentService/internal/domain"
	overrideRepo "github.com/m04kA/QS-AppointmentService/internal/infra/storage/override"
	"github.com/m04kA/QS-AppointmentService/internal/service/businesscfg/models"
	"github.com/m04kA/QS-AppointmentService/pkg/types"
)

// Ключ бизнеса в однобизнесовом legacy-файле конфигурации
const legacySlug = "default"

var serviceIDPattern = regexp.MustCompile(`^[a-zA-Z0-9_-]{2,40}$`)

// Service сервис конфигурации бизнесов
// Эффективная конфигурация собирается на каждый запрос: базовый JSON-файл
// нормализуется, поверх накладывается админское переопределение из БД
type Service struct {
	configFile string
	overrides  OverrideRepository
	logger     Logger
}

// NewService создает новый экземпляр сервиса конфигурации бизнесов
func NewService(configFile string, overrides OverrideRepository, logger Logger) *Service {
	return &Service{
		configFile: configFile,
		overrides:  overrides,
		logger:     logger,
	}
}

// Resolve возвращает эффективную конфигурацию бизнеса
func (s *Service) Resolve(ctx context.Context, slug string) (*domain.BusinessConfig, error) {
	merged, err := s.resolveMap(ctx, slug)
	if err != nil {
		return nil, err
	}

	raw, err := json.Marshal(merged)
	if err != nil {
		return nil, fmt.Errorf("%w: Resolve - marshal merged config: %v", ErrInternal, err)
	}

	var cfg domain.BusinessConfig
	if err := json.Unmarshal(raw, &cfg); err != nil {
		return nil, fmt.Errorf("%w: Resolve - decode merged config: %v", ErrInternal, err)
	}

	return &cfg, nil
}

// Update валидирует админские правки, сохраняет их как переопределение
// и возвращает свежую эффективную конфигурацию
func (s *Service) Update(ctx context.Context, slug string, req *models.UpdateConfigRequest) (*domain.BusinessConfig, error) {
	s.logger.Info("Update: updating config for business=%s", slug)

	existing, err := s.resolveMap(ctx, slug)
	if err != nil {
		return nil, err
	}

	workingDays := filterDayKeys(req.WorkingDays)
	if len(workingDays) == 0 {
		s.logger.Warn("Update: business=%s - no working days selected", slug)
		return nil, fmt.Errorf("%w: at least one working day is required", ErrInvalidInput)
	}

	closedDates, err := validateClosedDates(req.ClosedDates)
	if err != nil {
		s.logger.Warn("Update: business=%s - %v", slug, err)
		return nil, err
	}

	services, err := validateServices(req.Services)
	if err != nil {
		s.logger.Warn("Update: business=%s - %v", slug, err)
		return nil, err
	}

	if err := validateHoursInput(req.WorkingHours); err != nil {
		s.logger.Warn("Update: business=%s - %v", slug, err)
		return nil, err
	}

	// Переопределение содержит только то, что редактирует админ
	override := map[string]interface{}{
		"working_days":  workingDays,
		"closed_dates":  closedDates,
		"services":      services,
		"working_hours": normalizeWorkingHours(existingHours(existing), req.WorkingHours),
	}

	if req.DisplayName != nil && *req.DisplayName != "" {
		override["display"] = map[string]interface{}{"name": *req.DisplayName}
	}

	if err := s.overrides.Upsert(ctx, slug, override); err != nil {
		s.logger.Error("Update: business=%s - repository error: %v", slug, err)
		return nil, fmt.Errorf("%w: Update - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Update: successfully updated config for business=%s", slug)
	return s.Resolve(ctx, slug)
}

// resolveMap собирает эффективную конфигурацию как словарь:
// база из файла + переопределение из БД
func (s *Service) resolveMap(ctx context.Context, slug string) (map[string]interface{}, error) {
	businesses, err := s.loadBaseMap()
	if err != nil {
		return nil, err
	}

	base, ok := businesses[slug].(map[string]interface{})
	if !ok {
		return nil, ErrBusinessNotFound
	}

	override, err := s.overrides.GetBySlug(ctx, slug)
	if err != nil && !errors.Is(err, overrideRepo.ErrOverrideNotFound) {
		s.logger.Error("resolveMap: business=%s - repository error: %v", slug, err)
		return nil, fmt.Errorf("%w: resolveMap - repository error: %v", ErrInternal, err)
	}

	merged := deepMerge(base, override)

	// После слияния структурная схема вытесняет legacy-поля:
	// плоские start/end остаются только если default так и не появился
	if wh, ok := merged["working_hours"].(map[string]interface{}); ok {
		if _, hasDefault := wh["default"]; hasDefault {
			delete(wh, "start")
			delete(wh, "end")
		}
	}

	if _, ok := merged["slug"]; !ok {
		merged["slug"] = slug
	}

	return merged, nil
}

// loadBaseMap читает базовый файл конфигурации и нормализует его
// к виду {"<slug>": {...}}. Файл со старым однобизнесовым форматом
// превращается в бизнес со slug "default"
func (s *Service) loadBaseMap() (map[string]interface{}, error) {
	raw, err := os.ReadFile(s.configFile)
	if err != nil {
		return nil, fmt.Errorf("%w: loadBaseMap - read config file: %v", ErrInternal, err)
	}

	var doc map[string]interface{}
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("%w: loadBaseMap - parse config file: %v", ErrConfigMalformed, err)
	}

	if _, ok := doc["businesses"]; !ok {
		return map[string]interface{}{legacySlug: doc}, nil
	}

	businesses, ok := doc["businesses"].(map[string]interface{})
	if !ok {
		return nil, fmt.Errorf("%w: expected {\"businesses\": {...}}", ErrConfigMalformed)
	}

	return businesses, nil
}

// existingHours достает working_hours из собранной конфигурации как словарь
func existingHours(cfg map[string]interface{}) map[string]interface{} {
	if wh, ok := cfg["working_hours"].(map[string]interface{}); ok {
		return wh
	}
	return map[string]interface{}{}
}

// normalizeWorkingHours переводит правки админа в структурную схему
// {default, by_day}, стартуя от текущих часов бизнеса.
// День без своих часов наследует default, пустой список перерывов
// удаляет ключ breaks, полностью пустой день удаляется
func normalizeWorkingHours(existing map[string]interface{}, in models.WorkingHoursInput) map[string]interface{} {
	wh := map[string]interface{}{}
	for k, v := range existing {
		wh[k] = v
	}
	delete(wh, "start")
	delete(wh, "end")

	def, _ := wh["default"].(map[string]interface{})
	if def == nil {
		def = map[string]interface{}{}
	}
	if in.Default.Start != "" && in.Default.End != "" {
		def["start"] = in.Default.Start
		def["end"] = in.Default.End
	}
	wh["default"] = def

	byDay := map[string]interface{}{}
	for _, dk := range domain.DayKeys {
		dayIn := in.ByDay[dk]

		dayCfg := map[string]interface{}{}
		if dayIn.Start != "" && dayIn.End != "" {
			dayCfg["start"] = dayIn.Start
			dayCfg["end"] = dayIn.End
		}

		if dayIn.Breaks != nil {
			breaks := make([]interface{}, 0, len(dayIn.Breaks))
			for _, b := range dayIn.Breaks {
				breaks = append(breaks, map[string]interface{}{"start": b.Start, "end": b.End})
			}
			if len(breaks) > 0 {
				dayCfg["breaks"] = breaks
			}
		}

		if len(dayCfg) > 0 {
			byDay[dk] = dayCfg
		}
	}
	wh["by_day"] = byDay

	return wh
}

// filterDayKeys оставляет только известные ключи дней недели, без дублей
func filterDayKeys(days []string) []string {
	out := make([]string, 0, len(days))
	for _, d := range days {
		if !isDayKey(d) {
			continue
		}
		if !contains(out, d) {
			out = append(out, d)
		}
	}
	return out
}

func isDayKey(d string) bool {
	for _, k := range domain.DayKeys {
		if k == d {
			return true
		}
	}
	return false
}

func contains(list []string, v string) bool {
	for _, x := range list {
		if x == v {
			return true
		}
	}
	return false
}

// validateClosedDates проверяет формат дат и убирает дубли, сохраняя порядок
func validateClosedDates(dates []string) ([]string, error) {
	out := make([]string, 0, len(dates))
	for _, d := range dates {
		if d == "" {
			continue
		}
		if _, err := time.Parse(domain.DateFormat, d); err != nil {
			return nil, fmt.Errorf("%w: invalid closed date %q, expected YYYY-MM-DD", ErrInvalidInput, d)
		}
		if !contains(out, d) {
			out = append(out, d)
		}
	}
	return out, nil
}

// validateServices проверяет услуги и конвертирует их в вид для переопределения
func validateServices(services []models.ServiceInput) ([]interface{}, error) {
	out := make([]interface{}, 0, len(services))
	for _, svc := range services {
		if svc.ID == "" && svc.Name == "" && svc.DurationMinutes == 0 {
			continue
		}
		if !serviceIDPattern.MatchString(svc.ID) {
			return nil, fmt.Errorf("%w: invalid service id %q", ErrInvalidInput, svc.ID)
		}
		if svc.Name == "" {
			return nil, fmt.Errorf("%w: service %s requires a name", ErrInvalidInput, svc.ID)
		}
		if svc.DurationMinutes < domain.MinServiceDurationMinutes || svc.DurationMinutes > domain.MaxServiceDurationMinutes {
			return nil, fmt.Errorf("%w: invalid duration for service %s", ErrInvalidInput, svc.ID)
		}
		out = append(out, map[string]interface{}{
			"id":               svc.ID,
			"name":             svc.Name,
			"duration_minutes": svc.DurationMinutes,
		})
	}
	return out, nil
}

// validateHoursInput проверяет часы: default обязателен,
// часы дня - либо обе границы, либо ни одной, перерывы всегда парные
func validateHoursInput(in models.WorkingHoursInput) error {
	if !validHoursPair(in.Default.Start, in.Default.End) {
		return fmt.Errorf("%w: default hours must be HH:MM with start < end", ErrInvalidInput)
	}

	for dk, day := range in.ByDay {
		if !isDayKey(dk) {
			return fmt.Errorf("%w: unknown day key %q", ErrInvalidInput, dk)
		}
		if day.Start != "" || day.End != "" {
			if !validHoursPair(day.Start, day.End) {
				return fmt.Errorf("%w: hours for %s must be HH:MM with start < end, or both empty", ErrInvalidInput, dk)
			}
		}
		for _, b := range day.Breaks {
			if !validHoursPair(b.Start, b.End) {
				return fmt.Errorf("%w: invalid break %s-%s for %s", ErrInvalidInput, b.Start, b.End, dk)
			}
		}
	}

	return nil
}

func validHoursPair(start, end string) bool {
	s, err := types.NewTimeStringFromString(start)
	if err != nil {
		return false
	}
	e, err := types.NewTimeStringFromString(end)
	if err != nil {
		return false
	}
	return s.IsBefore(e)
}
