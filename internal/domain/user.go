package domain

import "time"

// User represents a customer account identified by phone number
type User struct {
	ID        int64
	Phone     string
	Email     *string
	Name      *string
	Plan      string
	LastLogin *time.Time
	IsActive  bool
	CreatedAt time.Time
}

// HasName returns true if the user completed their profile
func (u *User) HasName() bool {
	return u.Name != nil && *u.Name != ""
}

// TrustedDevice is a long-lived device binding that lets a user skip the OTP
// flow on a device they already verified. Only the token hash is stored.
type TrustedDevice struct {
	ID        int64
	UserID    int64
	TokenHash string
	ExpiresAt time.Time
	CreatedAt time.Time
}

// IsExpired returns true if the device binding is past its expiry
func (d *TrustedDevice) IsExpired(now time.Time) bool {
	return now.After(d.ExpiresAt)
}
