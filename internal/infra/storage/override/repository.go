package override

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/QS-AppointmentService/pkg/dbmetrics"
	"github.com/m04kA/QS-AppointmentService/pkg/psqlbuilder"
)

// Repository репозиторий переопределений конфигурации бизнесов
// Базовая конфигурация лежит в JSON-файле, админские правки хранятся
// здесь в JSONB и накладываются поверх базовой при чтении
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория переопределений
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetBySlug получает переопределение конфигурации бизнеса
// Возвращает десериализованный JSONB документ как map
func (r *Repository) GetBySlug(ctx context.Context, slug string) (map[string]interface{}, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("data").
		From("business_overrides").
		Where(squirrel.Eq{"slug": slug}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetBySlug - build select query: %v", ErrBuildQuery, err)
	}

	var raw []byte
	err = executor.QueryRowContext(ctx, query, args...).Scan(&raw)

	if err == sql.ErrNoRows {
		return nil, ErrOverrideNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetBySlug - scan override: %v", ErrScanRow, err)
	}

	var data map[string]interface{}
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, fmt.Errorf("%w: GetBySlug - unmarshal override: %v", ErrScanRow, err)
	}

	return data, nil
}

// Upsert сохраняет переопределение конфигурации бизнеса,
// заменяя предыдущее целиком
func (r *Repository) Upsert(ctx context.Context, slug string, data map[string]interface{}) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	raw, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("%w: Upsert - marshal override: %v", ErrBuildQuery, err)
	}

	query, args, err := psqlbuilder.Insert("business_overrides").
		Columns("slug", "data").
		Values(slug, raw).
		Suffix("ON CONFLICT (slug) DO UPDATE SET data = EXCLUDED.data, updated_at = NOW()").
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Upsert - build insert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: Upsert - execute insert: %v", ErrExecQuery, err)
	}

	return nil
}
