package session

import (
	"errors"
	"testing"
	"time"

	"socialgraph/backend/internal/config"
	"socialgraph/backend/internal/database"
	"socialgraph/backend/internal/models"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func init() {
	config.AppConfig = &config.Config{
		JWTSecret:       "test-secret",
		AccessTokenTTL:  15 * time.Minute,
		RefreshTokenTTL: 7 * 24 * time.Hour,
	}
}

func testDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		t.Fatalf("migrate test db: %v", err)
	}
	return db
}

func sessionCount(t *testing.T, db *gorm.DB, userID uint) int64 {
	t.Helper()

	var n int64
	if err := db.Model(&models.Session{}).Where("user_id = ?", userID).Count(&n).Error; err != nil {
		t.Fatalf("count sessions: %v", err)
	}
	return n
}

func TestCreate_MultiDevice(t *testing.T) {
	db := testDB(t)

	r1, err := Create(db, 1)
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	r2, err := Create(db, 1)
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	if r1 == r2 {
		t.Error("two sessions got the same refresh value")
	}
	if n := sessionCount(t, db, 1); n != 2 {
		t.Errorf("session count = %d, want 2", n)
	}
}

func TestRotate_SingleUse(t *testing.T) {
	db := testDB(t)

	r0, err := Create(db, 1)
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	r1, access, err := Rotate(db, 1, r0)
	if err != nil {
		t.Fatalf("Rotate(r0) error = %v", err)
	}
	if r1 == r0 {
		t.Error("rotation returned the old refresh value")
	}
	if access == "" {
		t.Error("rotation returned an empty access token")
	}

	// The old value must be dead now.
	if _, _, err := Rotate(db, 1, r0); !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("second Rotate(r0) error = %v, want ErrSessionNotFound", err)
	}

	// The new value keeps working.
	if _, _, err := Rotate(db, 1, r1); err != nil {
		t.Errorf("Rotate(r1) error = %v", err)
	}

	if n := sessionCount(t, db, 1); n != 1 {
		t.Errorf("session count after rotations = %d, want 1", n)
	}
}

func TestRotate_WrongUser(t *testing.T) {
	db := testDB(t)

	r0, err := Create(db, 1)
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	if _, _, err := Rotate(db, 2, r0); !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("Rotate() with wrong user error = %v, want ErrSessionNotFound", err)
	}
}

func TestRevoke_Idempotent(t *testing.T) {
	db := testDB(t)

	r0, err := Create(db, 1)
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	if err := Revoke(db, 1, r0); err != nil {
		t.Fatalf("Revoke() error = %v", err)
	}
	if n := sessionCount(t, db, 1); n != 0 {
		t.Errorf("session count after revoke = %d, want 0", n)
	}

	// Revoking again, or revoking a value that never existed, is a no-op.
	if err := Revoke(db, 1, r0); err != nil {
		t.Errorf("second Revoke() error = %v, want nil", err)
	}
	if err := Revoke(db, 1, "never-issued"); err != nil {
		t.Errorf("Revoke() of unknown value error = %v, want nil", err)
	}
}
