package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Limiter лимитер с фиксированным окном на Redis
// Работает корректно при нескольких инстансах сервиса -
// счётчик и TTL атомарно обновляются Lua-скриптом
type Limiter struct {
	rdb    *redis.Client
	limit  int
	window time.Duration
	prefix string
}

var fixedWindowScript = redis.NewScript(`
local current = redis.call("INCR", KEYS[1])
if current == 1 then
  redis.call("PEXPIRE", KEYS[1], ARGV[1])
end
return current
`)

// NewLimiter создает новый лимитер
// limit - максимум запросов на идентификатор за окно window
func NewLimiter(rdb *redis.Client, limit int, window time.Duration, prefix string) *Limiter {
	return &Limiter{
		rdb:    rdb,
		limit:  limit,
		window: window,
		prefix: prefix,
	}
}

// Allow проверяет, не исчерпал ли идентификатор лимит запросов
// При недоступности Redis возвращает ошибку - решение пропускать
// или отклонять принимает вызывающая сторона
func (l *Limiter) Allow(ctx context.Context, identifier string) (bool, error) {
	key := fmt.Sprintf("%s:%s", l.prefix, identifier)

	current, err := fixedWindowScript.Run(ctx, l.rdb, []string{key}, l.window.Milliseconds()).Int64()
	if err != nil {
		return false, fmt.Errorf("ratelimit: failed to run script: %w", err)
	}

	return current <= int64(l.limit), nil
}
