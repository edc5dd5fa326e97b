package handler

import (
	"io"
	"net/http"
	"time"

	"socialgraph/backend/internal/database"
	"socialgraph/backend/internal/hub"
	"socialgraph/backend/internal/models"

	"github.com/gin-gonic/gin"
)

// NotificationResponse is one inbox entry.
type NotificationResponse struct {
	ID       uint      `json:"id" example:"1"`
	Sender   uint      `json:"sender" example:"1"`
	Receiver uint      `json:"receiver" example:"2"`
	Type     string    `json:"type" example:"follow_request"`
	Status   string    `json:"status,omitempty" example:"pending"`
	Date     time.Time `json:"date"`
}

func newNotificationResponse(n models.Notification) NotificationResponse {
	return NotificationResponse{
		ID:       n.ID,
		Sender:   n.SenderID,
		Receiver: n.ReceiverID,
		Type:     string(n.Type),
		Status:   string(n.Status),
		Date:     n.CreatedAt,
	}
}

// GetNotifications godoc
// @Summary      List notifications
// @Description  Returns the caller's full inbox in arrival order.
// @Tags         notifications
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   NotificationResponse
// @Failure      401  {object}  MessageResponse
// @Router       /users/notifications [get]
func GetNotifications(c *gin.Context) {
	userID := c.MustGet("userID").(uint)

	var notifications []models.Notification
	if err := database.DB.Where("receiver_id = ?", userID).Order("id").Find(&notifications).Error; err != nil {
		c.JSON(http.StatusInternalServerError, MessageResponse{Message: "Failed to fetch notifications"})
		return
	}

	responses := make([]NotificationResponse, 0, len(notifications))
	for _, n := range notifications {
		responses = append(responses, newNotificationResponse(n))
	}

	c.JSON(http.StatusOK, responses)
}

// StreamNotifications godoc
// @Summary      Stream notifications
// @Description  Server-sent event stream of new inbox events for the caller.
// @Tags         notifications
// @Produce      text/event-stream
// @Security     BearerAuth
// @Success      200  {string}  string  "SSE stream"
// @Failure      401  {object}  MessageResponse
// @Router       /users/notifications/stream [get]
func StreamNotifications(c *gin.Context) {
	userID := c.MustGet("userID").(uint)

	client := make(hub.Client, 8)
	hub.Notifications.Subscribe(userID, client)
	defer hub.Notifications.Unsubscribe(userID, client)

	c.Stream(func(w io.Writer) bool {
		select {
		case msg, ok := <-client:
			if !ok {
				return false
			}
			c.SSEvent("notification", string(msg))
			return true
		case <-c.Request.Context().Done():
			return false
		}
	})
}
