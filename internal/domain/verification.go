package domain

import "time"

// PhoneVerification is a pending OTP challenge for a phone number.
// Only the sha256 hash of the code is stored.
type PhoneVerification struct {
	ID        int64
	Phone     string
	CodeHash  string
	Attempts  int
	ExpiresAt time.Time
	CreatedAt time.Time
}

// IsExpired returns true if the code is past its expiry
func (v *PhoneVerification) IsExpired(now time.Time) bool {
	return now.After(v.ExpiresAt)
}

// HasAttemptsLeft returns true if the code may still be tried
func (v *PhoneVerification) HasAttemptsLeft() bool {
	return v.Attempts > 0
}
