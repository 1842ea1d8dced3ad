package model

import "time"

// VerificationToken holds a short-lived one-time sign-in code keyed by
// email. At most one live code per identifier: issuing a new code
// replaces the previous one.
type VerificationToken struct {
	ID         uint      `json:"id" gorm:"primaryKey"`
	Identifier string    `json:"identifier" gorm:"type:varchar(100);not null;uniqueIndex:idx_verification_identifier_token"`
	Token      string    `json:"token" gorm:"type:varchar(20);not null;uniqueIndex:idx_verification_identifier_token"`
	Expires    time.Time `json:"expires" gorm:"not null"`
}
