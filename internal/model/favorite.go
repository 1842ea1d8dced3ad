package model

import "time"

// Favorite is a user's bookmark of a tip, unique per (user, tip).
// Rows are hard-deleted so the unique index stays usable across
// repeated toggles.
type Favorite struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	UserID    uint      `json:"user_id" gorm:"not null;uniqueIndex:idx_favorites_user_tip"`
	TipID     uint      `json:"tip_id" gorm:"not null;uniqueIndex:idx_favorites_user_tip"`
	CreatedAt time.Time `json:"created_at"`
}
