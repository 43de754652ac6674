package models

import "time"

// VerificationCode is a single-use password-reset code. It is consumed
// (deleted) on a successful reset; expired codes are filtered out by
// timestamp at lookup time.
type VerificationCode struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"-"`
	Email     string    `gorm:"type:varchar(100);not null;index" json:"email"`
	Code      string    `gorm:"type:varchar(6);not null" json:"-"`
	ExpiresAt time.Time `gorm:"not null" json:"expires_at"`
	CreatedAt time.Time `json:"created_at"`
}

func (v *VerificationCode) Expired(now time.Time) bool {
	return !now.Before(v.ExpiresAt)
}
