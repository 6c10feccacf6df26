package models

import "time"

// VerificationToken is the pending registration OTP for an email.
// Identifier is the primary key so at most one token exists per email.
type VerificationToken struct {
	Identifier string    `json:"identifier" gorm:"primaryKey"`
	Token      string    `json:"-" gorm:"not null"`
	Expires    time.Time `json:"expires" gorm:"not null"`
}

// Matches reports whether code is this token's code
func (v *VerificationToken) Matches(identifier, code string) bool {
	return v.Identifier == identifier && v.Token == code
}

// IsExpired reports whether the token is past its expiry at now.
// A token is still usable at exactly its expiry instant.
func (v *VerificationToken) IsExpired(now time.Time) bool {
	return now.After(v.Expires)
}
