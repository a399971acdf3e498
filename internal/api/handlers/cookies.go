package handlers

import (
	"net/http"

	"github.com/m04kA/QS-AppointmentService/internal/domain"
)

// Имена cookie аутентификации
const (
	SessionCookie = "session_token"
	DeviceCookie  = "device_token"
)

// CookieValue возвращает значение cookie или пустую строку
func CookieValue(r *http.Request, name string) string {
	c, err := r.Cookie(name)
	if err != nil {
		return ""
	}
	return c.Value
}

// SetSessionCookie выставляет сессионную cookie (живёт до закрытия браузера)
func SetSessionCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookie,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// SetDeviceCookie выставляет долгоживущую cookie доверенного устройства
func SetDeviceCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     DeviceCookie,
		Value:    token,
		Path:     "/",
		MaxAge:   int(domain.TrustedDeviceAge.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// ClearAuthCookies сбрасывает обе cookie аутентификации
func ClearAuthCookies(w http.ResponseWriter) {
	for _, name := range []string{SessionCookie, DeviceCookie} {
		http.SetCookie(w, &http.Cookie{
			Name:     name,
			Value:    "",
			Path:     "/",
			MaxAge:   -1,
			HttpOnly: true,
			SameSite: http.SameSiteLaxMode,
		})
	}
}
