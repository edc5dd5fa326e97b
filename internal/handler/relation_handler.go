package handler

import (
	"errors"
	"net/http"
	"strconv"

	"socialgraph/backend/internal/database"
	"socialgraph/backend/internal/hub"
	"socialgraph/backend/internal/models"
	"socialgraph/backend/internal/relation"

	"github.com/gin-gonic/gin"
)

// FollowRequestInput carries the decision on a pending follow request.
type FollowRequestInput struct {
	Status string `json:"status" binding:"required" example:"accepted"`
}

// FollowUser godoc
// @Summary      Send a follow request
// @Description  Creates a pending follow request in the target's inbox. No edge is created until the request is accepted.
// @Tags         relationships
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Target User ID"
// @Success      200  {object}  MessageResponse
// @Failure      400  {object}  MessageResponse "Self-follow, already following or already pending"
// @Failure      401  {object}  MessageResponse
// @Failure      404  {object}  MessageResponse "Target user not found"
// @Router       /users/follow/{id} [post]
func FollowUser(c *gin.Context) {
	viewerID := c.MustGet("userID").(uint)

	targetID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, MessageResponse{Message: "Invalid target user ID"})
		return
	}

	notif, err := relation.Follow(database.DB, viewerID, uint(targetID))
	if err != nil {
		switch {
		case errors.Is(err, relation.ErrSelfFollow):
			c.JSON(http.StatusBadRequest, MessageResponse{Message: "You cannot follow yourself"})
		case errors.Is(err, relation.ErrAlreadyFollowing):
			c.JSON(http.StatusBadRequest, MessageResponse{Message: "You are already following this user"})
		case errors.Is(err, relation.ErrRequestPending):
			c.JSON(http.StatusBadRequest, MessageResponse{Message: "A follow request is already pending"})
		case errors.Is(err, relation.ErrUserNotFound):
			c.JSON(http.StatusNotFound, MessageResponse{Message: "User to follow not found"})
		default:
			c.JSON(http.StatusInternalServerError, MessageResponse{Message: "Failed to create follow request"})
		}
		return
	}

	hub.Notifications.Publish(notif.ReceiverID, hub.Event{
		Type:    string(notif.Type),
		Payload: newNotificationResponse(*notif),
	})

	c.JSON(http.StatusOK, MessageResponse{Message: "Follow request sent"})
}

// ChangeFollowRequestStatus godoc
// @Summary      Accept or reject a follow request
// @Description  Resolves a pending follow request addressed to the caller. Accepting creates the follow edge and notifies the requester. Resolved requests are terminal.
// @Tags         relationships
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path  int                true  "Follow request (notification) ID"
// @Param        input body  FollowRequestInput true  "Decision"
// @Success      200  {object}  MessageResponse
// @Failure      400  {object}  MessageResponse "Invalid status value or request already resolved"
// @Failure      401  {object}  MessageResponse
// @Failure      404  {object}  MessageResponse "Follow request not found"
// @Router       /users/follow-request/{id} [put]
func ChangeFollowRequestStatus(c *gin.Context) {
	viewerID := c.MustGet("userID").(uint)

	requestID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, MessageResponse{Message: "Invalid follow request ID"})
		return
	}

	var input FollowRequestInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, MessageResponse{Message: "Invalid status value"})
		return
	}

	accepted, err := relation.Respond(database.DB, viewerID, uint(requestID), models.RequestStatus(input.Status))
	if err != nil {
		switch {
		case errors.Is(err, relation.ErrInvalidDecision):
			c.JSON(http.StatusBadRequest, MessageResponse{Message: "Invalid status value"})
		case errors.Is(err, relation.ErrRequestNotFound):
			c.JSON(http.StatusNotFound, MessageResponse{Message: "Follow request not found"})
		case errors.Is(err, relation.ErrInvalidState):
			c.JSON(http.StatusBadRequest, MessageResponse{Message: "Follow request already resolved"})
		default:
			c.JSON(http.StatusInternalServerError, MessageResponse{Message: "Failed to update follow request"})
		}
		return
	}

	if accepted != nil {
		hub.Notifications.Publish(accepted.ReceiverID, hub.Event{
			Type:    string(accepted.Type),
			Payload: newNotificationResponse(*accepted),
		})
	}

	c.JSON(http.StatusOK, MessageResponse{Message: "Follow request " + input.Status})
}

// UnfollowUser godoc
// @Summary      Unfollow a user
// @Description  Removes the follow edge to the target, restoring both users' follower/following sets.
// @Tags         relationships
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Target User ID"
// @Success      200  {object}  MessageResponse
// @Failure      400  {object}  MessageResponse "Not following this user"
// @Failure      401  {object}  MessageResponse
// @Failure      404  {object}  MessageResponse "Target user not found"
// @Router       /users/unfollow/{id} [post]
func UnfollowUser(c *gin.Context) {
	viewerID := c.MustGet("userID").(uint)

	targetID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, MessageResponse{Message: "Invalid target user ID"})
		return
	}

	if err := relation.Unfollow(database.DB, viewerID, uint(targetID)); err != nil {
		switch {
		case errors.Is(err, relation.ErrNotFollowing):
			c.JSON(http.StatusBadRequest, MessageResponse{Message: "You are not following this user"})
		case errors.Is(err, relation.ErrUserNotFound):
			c.JSON(http.StatusNotFound, MessageResponse{Message: "User to unfollow not found"})
		default:
			c.JSON(http.StatusInternalServerError, MessageResponse{Message: "Failed to unfollow user"})
		}
		return
	}

	c.JSON(http.StatusOK, MessageResponse{Message: "You unfollowed this user"})
}
