package domain

import "time"

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// DayKeys weekday keys in resolver order, Monday-first (mon=0 ... sun=6)
var DayKeys = []string{"mon", "tue", "wed", "thu", "fri", "sat", "sun"}

// Default working hours applied when neither the per-day override nor the
// default block configures them
const (
	DefaultWorkStart = "09:00"
	DefaultWorkEnd   = "17:00"
)

// Booking rules
const (
	// SameDayLeadTime минимальный запас перед первым слотом при записи на сегодня
	SameDayLeadTime = 10 * time.Minute

	// BookingSnapMinutes сетка округления времени начала записи
	BookingSnapMinutes = 5

	// MaxActiveAppointments максимум будущих записей на один номер телефона
	MaxActiveAppointments = 4

	MinServiceDurationMinutes = 1
	MaxServiceDurationMinutes = 600
)

// OTP rules
const (
	OTPLength          = 6
	OTPAttempts        = 5
	OTPExpiry          = 10 * time.Minute
	OTPResendCooldown  = 2 * time.Minute
	TrustedDeviceAge   = 200 * 24 * time.Hour
	MinPhoneDigits     = 9
	MaxPhoneDigits     = 12
)
