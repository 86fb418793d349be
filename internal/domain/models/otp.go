package models

import "time"

// OTPCode is a single-use 6-digit verification code.
type OTPCode struct {
	ID        int64
	UserID    int64
	Code      string
	IsUsed    bool
	CreatedAt time.Time
	ExpiresAt time.Time
}

// Expired reports whether the code is past its expiry at the given time.
func (o OTPCode) Expired(now time.Time) bool {
	return !o.ExpiresAt.After(now)
}
