package middleware

import (
	"context"
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/QS-AppointmentService/internal/api/handlers"
	"github.com/m04kA/QS-AppointmentService/internal/domain"
	"github.com/m04kA/QS-AppointmentService/internal/infra/session"
	authService "github.com/m04kA/QS-AppointmentService/internal/service/auth"
)

const (
	msgLoginRequired      = "требуется вход по коду подтверждения"
	msgAdminLoginRequired = "требуется вход администратора"
)

// AuthService интерфейс сервиса аутентификации
type AuthService interface {
	SessionUser(ctx context.Context, sessionToken, deviceToken string) (*domain.User, error)
	AdminSession(ctx context.Context, sessionToken string) (*session.Session, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

type ctxKey int

const (
	userKey ctxKey = iota
	adminKey
)

// Auth проверяет клиентскую сессию и кладет пользователя в контекст запроса
// Принимает как токен сессии, так и токен доверенного устройства
func Auth(auth AuthService, log Logger) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sessionToken := handlers.CookieValue(r, handlers.SessionCookie)
			deviceToken := handlers.CookieValue(r, handlers.DeviceCookie)

			user, err := auth.SessionUser(r.Context(), sessionToken, deviceToken)
			if err != nil {
				if errors.Is(err, authService.ErrUnauthenticated) {
					handlers.RespondUnauthorized(w, msgLoginRequired)
					return
				}
				log.Error("%s %s - Auth middleware failed: %v", r.Method, r.URL.Path, err)
				handlers.RespondInternalError(w)
				return
			}

			next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), userKey, user)))
		})
	}
}

// AdminAuth проверяет админскую сессию и кладет её в контекст запроса
// Доступ к конкретному бизнесу проверяется в handler по slug
func AdminAuth(auth AuthService, log Logger) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sessionToken := handlers.CookieValue(r, handlers.SessionCookie)

			sess, err := auth.AdminSession(r.Context(), sessionToken)
			if err != nil {
				if errors.Is(err, authService.ErrUnauthenticated) {
					handlers.RespondUnauthorized(w, msgAdminLoginRequired)
					return
				}
				log.Error("%s %s - AdminAuth middleware failed: %v", r.Method, r.URL.Path, err)
				handlers.RespondInternalError(w)
				return
			}

			next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), adminKey, sess)))
		})
	}
}

// UserFromContext достает пользователя, положенного Auth middleware
func UserFromContext(ctx context.Context) (*domain.User, bool) {
	user, ok := ctx.Value(userKey).(*domain.User)
	return user, ok
}

// AdminFromContext достает админскую сессию, положенную AdminAuth middleware
func AdminFromContext(ctx context.Context) (*session.Session, bool) {
	sess, ok := ctx.Value(adminKey).(*session.Session)
	return sess, ok
}
