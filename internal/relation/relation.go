// Package relation drives the follow-request state machine. Per ordered pair
// of users the states are none -> pending -> accepted or rejected, and the
// resolved states are terminal. The pending state lives on a follow_request
// notification; the accepted state is a FollowEdge row.
package relation

import (
	"errors"

	"socialgraph/backend/internal/models"

	"gorm.io/gorm"
)

var (
	ErrSelfFollow       = errors.New("cannot follow yourself")
	ErrAlreadyFollowing = errors.New("already following this user")
	ErrRequestPending   = errors.New("a follow request is already pending")
	ErrRequestNotFound  = errors.New("follow request not found")
	ErrInvalidState     = errors.New("follow request already resolved")
	ErrInvalidDecision  = errors.New("invalid decision")
	ErrNotFollowing     = errors.New("not following this user")
	ErrUserNotFound     = errors.New("user not found")
)

// Follow sends a follow request from one user to another. No edge is created
// yet; the only side effect is a pending follow_request notification in the
// target's inbox.
func Follow(db *gorm.DB, fromID, toID uint) (*models.Notification, error) {
	if fromID == toID {
		return nil, ErrSelfFollow
	}

	var target models.User
	if err := db.First(&target, toID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	following, err := IsFollowing(db, fromID, toID)
	if err != nil {
		return nil, err
	}
	if following {
		return nil, ErrAlreadyFollowing
	}

	var pending models.Notification
	err = db.Where("sender_id = ? AND receiver_id = ? AND type = ? AND status = ?",
		fromID, toID, models.TypeFollowRequest, models.StatusPending).First(&pending).Error
	if err == nil {
		return nil, ErrRequestPending
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	notif := models.Notification{
		SenderID:   fromID,
		ReceiverID: toID,
		Type:       models.TypeFollowRequest,
		Status:     models.StatusPending,
	}
	if err := db.Create(&notif).Error; err != nil {
		return nil, err
	}
	return &notif, nil
}

// Respond resolves a pending follow request addressed to userID. Accepting
// creates the follow edge and notifies the requester; rejecting has no side
// effects beyond the terminal status. Responding to an already resolved
// request fails with ErrInvalidState.
func Respond(db *gorm.DB, userID, requestID uint, decision models.RequestStatus) (*models.Notification, error) {
	if decision != models.StatusAccepted && decision != models.StatusRejected {
		return nil, ErrInvalidDecision
	}

	var request models.Notification
	err := db.Where("id = ? AND receiver_id = ? AND type = ?",
		requestID, userID, models.TypeFollowRequest).First(&request).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRequestNotFound
		}
		return nil, err
	}

	if request.Status != models.StatusPending {
		return nil, ErrInvalidState
	}

	var accepted *models.Notification
	err = db.Transaction(func(tx *gorm.DB) error {
		// Conditional on the status still being pending, so two concurrent
		// responses cannot both apply.
		res := tx.Model(&models.Notification{}).
			Where("id = ? AND status = ?", requestID, models.StatusPending).
			Update("status", decision)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrInvalidState
		}

		if decision != models.StatusAccepted {
			return nil
		}

		edge := models.FollowEdge{FollowerID: request.SenderID, FolloweeID: userID}
		if err := tx.Create(&edge).Error; err != nil {
			return err
		}

		accepted = &models.Notification{
			SenderID:   userID,
			ReceiverID: request.SenderID,
			Type:       models.TypeAcceptedRequest,
		}
		return tx.Create(accepted).Error
	})
	if err != nil {
		return nil, err
	}
	return accepted, nil
}

// Unfollow removes the follow edge from one user to another.
func Unfollow(db *gorm.DB, fromID, toID uint) error {
	var target models.User
	if err := db.First(&target, toID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return err
	}

	res := db.Where("follower_id = ? AND followee_id = ?", fromID, toID).Delete(&models.FollowEdge{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFollowing
	}
	return nil
}

// IsFollowing reports whether fromID has an accepted follow edge to toID.
func IsFollowing(db *gorm.DB, fromID, toID uint) (bool, error) {
	var n int64
	err := db.Model(&models.FollowEdge{}).
		Where("follower_id = ? AND followee_id = ?", fromID, toID).
		Count(&n).Error
	return n > 0, err
}

// Following returns the users userID follows.
func Following(db *gorm.DB, userID uint) ([]models.User, error) {
	var users []models.User
	err := db.Model(&models.User{}).
		Joins("JOIN follow_edges ON follow_edges.followee_id = users.id").
		Where("follow_edges.follower_id = ?", userID).
		Order("follow_edges.created_at").
		Find(&users).Error
	return users, err
}

// Followers returns the users following userID.
func Followers(db *gorm.DB, userID uint) ([]models.User, error) {
	var users []models.User
	err := db.Model(&models.User{}).
		Joins("JOIN follow_edges ON follow_edges.follower_id = users.id").
		Where("follow_edges.followee_id = ?", userID).
		Order("follow_edges.created_at").
		Find(&users).Error
	return users, err
}
