package businesscfg

import "context"

// OverrideRepository интерфейс репозитория переопределений конфигурации
type OverrideRepository interface {
	GetBySlug(ctx context.Context, slug string) (map[string]interface{}, error)
	Upsert(ctx context.Context, slug string, data map[string]interface{}) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
