package models

import "time"

// Session is one active refresh session for a user, one per logged-in
// device. The refresh token value is replaced on every rotation; the row
// is removed on logout.
type Session struct {
	ID           uint   `gorm:"primaryKey"`
	UserID       uint   `gorm:"index;not null"`
	RefreshToken string `gorm:"size:512;not null;index"`
	CreatedAt    time.Time

	User User `gorm:"foreignKey:UserID;references:ID;constraint:OnDelete:CASCADE;"`
}
