package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// Вид сессии определяет, какие ручки ей доступны
const (
	KindCustomer = "customer"
	KindAdmin    = "admin"
)

var (
	// ErrSessionNotFound возвращается, когда сессия не найдена или истекла
	ErrSessionNotFound = errors.New("session.store: session not found")

	// ErrInternal возвращается при ошибках Redis
	ErrInternal = errors.New("session.store: internal error")
)

// Session данные авторизованной сессии
// Для клиентских сессий заполнены UserID и Phone,
// для админских - Phone и Slugs доступных бизнесов
type Session struct {
	Kind   string   `json:"kind"`
	UserID int64    `json:"user_id,omitempty"`
	Phone  string   `json:"phone"`
	Slugs  []string `json:"slugs,omitempty"`
}

// IsAdmin сообщает, является ли сессия админской
func (s *Session) IsAdmin() bool {
	return s.Kind == KindAdmin
}

// CanManage проверяет, что админская сессия имеет доступ к бизнесу
func (s *Session) CanManage(slug string) bool {
	for _, allowed := range s.Slugs {
		if allowed == slug {
			return true
		}
	}
	return false
}

// Store хранилище сессий в Redis
// Токен непрозрачен для клиента, сессия живет ttl с момента создания
type Store struct {
	rdb *redis.Client
	ttl time.Duration
}

// NewStore создает новое хранилище сессий
func NewStore(rdb *redis.Client, ttl time.Duration) *Store {
	return &Store{rdb: rdb, ttl: ttl}
}

// Create создает сессию и возвращает её токен
func (s *Store) Create(ctx context.Context, sess *Session) (string, error) {
	raw, err := json.Marshal(sess)
	if err != nil {
		return "", fmt.Errorf("%w: failed to marshal session: %v", ErrInternal, err)
	}

	token := uuid.NewString()
	if err := s.rdb.Set(ctx, s.key(token), raw, s.ttl).Err(); err != nil {
		return "", fmt.Errorf("%w: failed to store session: %v", ErrInternal, err)
	}

	return token, nil
}

// Get получает сессию по токену
func (s *Store) Get(ctx context.Context, token string) (*Session, error) {
	raw, err := s.rdb.Get(ctx, s.key(token)).Bytes()
	if err == redis.Nil {
		return nil, ErrSessionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: failed to load session: %v", ErrInternal, err)
	}

	var sess Session
	if err := json.Unmarshal(raw, &sess); err != nil {
		return nil, fmt.Errorf("%w: failed to unmarshal session: %v", ErrInternal, err)
	}

	return &sess, nil
}

// Delete удаляет сессию по токену
// Отсутствие сессии не считается ошибкой
func (s *Store) Delete(ctx context.Context, token string) error {
	if err := s.rdb.Del(ctx, s.key(token)).Err(); err != nil {
		return fmt.Errorf("%w: failed to delete session: %v", ErrInternal, err)
	}
	return nil
}

func (s *Store) key(token string) string {
	return "sess:" + token
}
