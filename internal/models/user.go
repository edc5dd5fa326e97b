package models

import (
	"time"

	"gorm.io/gorm"
)

// User represents a user in the system.
type User struct {
	gorm.Model
	Name         string `gorm:"size:255;not null"`
	LastName     string `gorm:"size:255;not null"`
	Username     string `gorm:"size:255;unique;not null"`
	Email        string `gorm:"size:255;unique;not null"`
	PasswordHash string `gorm:"size:255;not null"`

	Description    string `gorm:"size:1024"`
	DateBirth      *time.Time
	PhoneNumber    string `gorm:"size:20"`
	Genre          string `gorm:"size:100"`
	PrivateProfile bool   `gorm:"not null;default:false"`
}
