package relation

import (
	"errors"
	"testing"

	"socialgraph/backend/internal/database"
	"socialgraph/backend/internal/models"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

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

func seedUsers(t *testing.T, db *gorm.DB, usernames ...string) []models.User {
	t.Helper()

	users := make([]models.User, len(usernames))
	for i, name := range usernames {
		users[i] = models.User{
			Name:         name,
			LastName:     "test",
			Username:     name,
			Email:        name + "@example.com",
			PasswordHash: "x",
		}
		if err := db.Create(&users[i]).Error; err != nil {
			t.Fatalf("seed user %s: %v", name, err)
		}
	}
	return users
}

func mustFollow(t *testing.T, db *gorm.DB, from, to uint) *models.Notification {
	t.Helper()

	notif, err := Follow(db, from, to)
	if err != nil {
		t.Fatalf("Follow(%d, %d) error = %v", from, to, err)
	}
	return notif
}

func TestFollow_CreatesPendingRequest(t *testing.T) {
	db := testDB(t)
	users := seedUsers(t, db, "alice", "bob")
	alice, bob := users[0], users[1]

	notif := mustFollow(t, db, alice.ID, bob.ID)

	if notif.SenderID != alice.ID || notif.ReceiverID != bob.ID {
		t.Errorf("notification pair = (%d, %d), want (%d, %d)",
			notif.SenderID, notif.ReceiverID, alice.ID, bob.ID)
	}
	if notif.Type != models.TypeFollowRequest || notif.Status != models.StatusPending {
		t.Errorf("notification = %s/%s, want follow_request/pending", notif.Type, notif.Status)
	}

	// No edge until the request is accepted.
	if following, _ := IsFollowing(db, alice.ID, bob.ID); following {
		t.Error("edge exists before the request was accepted")
	}
}

func TestFollow_SelfFollow(t *testing.T) {
	db := testDB(t)
	users := seedUsers(t, db, "alice")

	if _, err := Follow(db, users[0].ID, users[0].ID); !errors.Is(err, ErrSelfFollow) {
		t.Errorf("Follow(self) error = %v, want ErrSelfFollow", err)
	}
}

func TestFollow_TargetMissing(t *testing.T) {
	db := testDB(t)
	users := seedUsers(t, db, "alice")

	if _, err := Follow(db, users[0].ID, 999); !errors.Is(err, ErrUserNotFound) {
		t.Errorf("Follow(missing) error = %v, want ErrUserNotFound", err)
	}
}

func TestFollow_DuplicatePending(t *testing.T) {
	db := testDB(t)
	users := seedUsers(t, db, "alice", "bob")
	alice, bob := users[0], users[1]

	mustFollow(t, db, alice.ID, bob.ID)

	if _, err := Follow(db, alice.ID, bob.ID); !errors.Is(err, ErrRequestPending) {
		t.Errorf("second Follow() error = %v, want ErrRequestPending", err)
	}
}

func TestRespond_Accept(t *testing.T) {
	db := testDB(t)
	users := seedUsers(t, db, "alice", "bob")
	alice, bob := users[0], users[1]

	request := mustFollow(t, db, alice.ID, bob.ID)

	accepted, err := Respond(db, bob.ID, request.ID, models.StatusAccepted)
	if err != nil {
		t.Fatalf("Respond() error = %v", err)
	}

	// Edge is symmetric by construction: both views read the same row.
	if following, _ := IsFollowing(db, alice.ID, bob.ID); !following {
		t.Error("alice does not follow bob after accept")
	}
	followers, err := Followers(db, bob.ID)
	if err != nil {
		t.Fatalf("Followers() error = %v", err)
	}
	if len(followers) != 1 || followers[0].ID != alice.ID {
		t.Errorf("bob's followers = %v, want [alice]", followers)
	}
	following, err := Following(db, alice.ID)
	if err != nil {
		t.Fatalf("Following() error = %v", err)
	}
	if len(following) != 1 || following[0].ID != bob.ID {
		t.Errorf("alice's following = %v, want [bob]", following)
	}

	// The requester is notified.
	if accepted == nil || accepted.Type != models.TypeAcceptedRequest {
		t.Fatalf("accepted notification = %+v, want type accepted_request", accepted)
	}
	if accepted.SenderID != bob.ID || accepted.ReceiverID != alice.ID {
		t.Errorf("accepted notification pair = (%d, %d), want (%d, %d)",
			accepted.SenderID, accepted.ReceiverID, bob.ID, alice.ID)
	}

	// The transition is terminal.
	if _, err := Respond(db, bob.ID, request.ID, models.StatusAccepted); !errors.Is(err, ErrInvalidState) {
		t.Errorf("second Respond() error = %v, want ErrInvalidState", err)
	}
}

func TestRespond_Reject(t *testing.T) {
	db := testDB(t)
	users := seedUsers(t, db, "alice", "bob")
	alice, bob := users[0], users[1]

	request := mustFollow(t, db, alice.ID, bob.ID)

	notif, err := Respond(db, bob.ID, request.ID, models.StatusRejected)
	if err != nil {
		t.Fatalf("Respond(rejected) error = %v", err)
	}
	if notif != nil {
		t.Errorf("rejection produced a notification: %+v", notif)
	}

	if following, _ := IsFollowing(db, alice.ID, bob.ID); following {
		t.Error("rejection created a follow edge")
	}

	var stored models.Notification
	if err := db.First(&stored, request.ID).Error; err != nil {
		t.Fatalf("load request: %v", err)
	}
	if stored.Status != models.StatusRejected {
		t.Errorf("request status = %s, want rejected", stored.Status)
	}

	if _, err := Respond(db, bob.ID, request.ID, models.StatusAccepted); !errors.Is(err, ErrInvalidState) {
		t.Errorf("Respond() after rejection error = %v, want ErrInvalidState", err)
	}
}

func TestRespond_InvalidDecision(t *testing.T) {
	db := testDB(t)
	users := seedUsers(t, db, "alice", "bob")
	alice, bob := users[0], users[1]

	request := mustFollow(t, db, alice.ID, bob.ID)

	if _, err := Respond(db, bob.ID, request.ID, models.StatusPending); !errors.Is(err, ErrInvalidDecision) {
		t.Errorf("Respond(pending) error = %v, want ErrInvalidDecision", err)
	}
	if _, err := Respond(db, bob.ID, request.ID, "bogus"); !errors.Is(err, ErrInvalidDecision) {
		t.Errorf("Respond(bogus) error = %v, want ErrInvalidDecision", err)
	}
}

func TestRespond_NotAddressee(t *testing.T) {
	db := testDB(t)
	users := seedUsers(t, db, "alice", "bob", "carol")
	alice, bob, carol := users[0], users[1], users[2]

	request := mustFollow(t, db, alice.ID, bob.ID)

	// Only the receiver can resolve a request.
	if _, err := Respond(db, carol.ID, request.ID, models.StatusAccepted); !errors.Is(err, ErrRequestNotFound) {
		t.Errorf("Respond() by third party error = %v, want ErrRequestNotFound", err)
	}
}

func TestUnfollow_InverseOfAcceptedFollow(t *testing.T) {
	db := testDB(t)
	users := seedUsers(t, db, "alice", "bob")
	alice, bob := users[0], users[1]

	request := mustFollow(t, db, alice.ID, bob.ID)
	if _, err := Respond(db, bob.ID, request.ID, models.StatusAccepted); err != nil {
		t.Fatalf("Respond() error = %v", err)
	}

	if err := Unfollow(db, alice.ID, bob.ID); err != nil {
		t.Fatalf("Unfollow() error = %v", err)
	}

	// Both sets are back to their original state.
	if following, _ := IsFollowing(db, alice.ID, bob.ID); following {
		t.Error("edge survives unfollow")
	}
	followers, _ := Followers(db, bob.ID)
	if len(followers) != 0 {
		t.Errorf("bob's followers after unfollow = %v, want empty", followers)
	}
	followed, _ := Following(db, alice.ID)
	if len(followed) != 0 {
		t.Errorf("alice's following after unfollow = %v, want empty", followed)
	}
}

func TestUnfollow_NotFollowing(t *testing.T) {
	db := testDB(t)
	users := seedUsers(t, db, "alice", "bob")
	alice, bob := users[0], users[1]

	if err := Unfollow(db, alice.ID, bob.ID); !errors.Is(err, ErrNotFollowing) {
		t.Errorf("Unfollow() with no edge error = %v, want ErrNotFollowing", err)
	}
	if err := Unfollow(db, alice.ID, 999); !errors.Is(err, ErrUserNotFound) {
		t.Errorf("Unfollow(missing) error = %v, want ErrUserNotFound", err)
	}
}

func TestFollow_AfterRejectionCanRetry(t *testing.T) {
	db := testDB(t)
	users := seedUsers(t, db, "alice", "bob")
	alice, bob := users[0], users[1]

	request := mustFollow(t, db, alice.ID, bob.ID)
	if _, err := Respond(db, bob.ID, request.ID, models.StatusRejected); err != nil {
		t.Fatalf("Respond() error = %v", err)
	}

	// The resolved request no longer blocks a new one.
	mustFollow(t, db, alice.ID, bob.ID)
}
