// Package session manages the per-user list of refresh sessions: one row per
// logged-in device, created at signin, replaced on rotation, removed on
// logout.
package session

import (
	"errors"

	"socialgraph/backend/internal/config"
	"socialgraph/backend/internal/models"
	"socialgraph/backend/pkg/token"

	"gorm.io/gorm"
)

// ErrSessionNotFound means the presented refresh value is not an active
// session for the user. A value that was already rotated or revoked reports
// this too: rotation is single-use.
var ErrSessionNotFound = errors.New("session not found")

// Create mints a refresh token for the user and records it as a new session.
// There is no cap on concurrent sessions per user.
func Create(db *gorm.DB, userID uint) (string, error) {
	refresh, err := token.Issue(userID, config.AppConfig.RefreshTokenTTL)
	if err != nil {
		return "", err
	}

	s := models.Session{UserID: userID, RefreshToken: refresh}
	if err := db.Create(&s).Error; err != nil {
		return "", err
	}
	return refresh, nil
}

// Rotate exchanges an active refresh session for a new one plus a fresh
// access token. The lookup and removal of the old session is a single
// conditional delete, so under concurrent rotations of the same value only
// one caller wins; the rest get ErrSessionNotFound.
func Rotate(db *gorm.DB, userID uint, presented string) (newRefresh, access string, err error) {
	res := db.Where("user_id = ? AND refresh_token = ?", userID, presented).Delete(&models.Session{})
	if res.Error != nil {
		return "", "", res.Error
	}
	if res.RowsAffected == 0 {
		return "", "", ErrSessionNotFound
	}

	newRefresh, err = Create(db, userID)
	if err != nil {
		return "", "", err
	}

	access, err = token.Issue(userID, config.AppConfig.AccessTokenTTL)
	if err != nil {
		return "", "", err
	}
	return newRefresh, access, nil
}

// Revoke removes the named session. Revoking a value that is not in the
// user's session list is a no-op, matching logout's tolerance.
func Revoke(db *gorm.DB, userID uint, presented string) error {
	return db.Where("user_id = ? AND refresh_token = ?", userID, presented).Delete(&models.Session{}).Error
}
