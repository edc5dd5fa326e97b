package models

import "time"

// NotificationType classifies an inbox event.
type NotificationType string

const (
	TypeFollowRequest   NotificationType = "follow_request"
	TypeAcceptedRequest NotificationType = "accepted_request"
	TypeLike            NotificationType = "like"
)

// RequestStatus is the state of a follow request. It is only meaningful on
// notifications of type follow_request; other types leave it empty.
type RequestStatus string

const (
	StatusPending  RequestStatus = "pending"
	StatusAccepted RequestStatus = "accepted"
	StatusRejected RequestStatus = "rejected"
)

// Notification is a directed inbox event. A follow_request notification with
// status pending is the only representation of an in-flight follow request;
// there is no separate pending-edge row. The partial unique index keeps two
// pending requests for the same ordered pair from coexisting.
type Notification struct {
	ID         uint             `gorm:"primaryKey"`
	SenderID   uint             `gorm:"not null;index;uniqueIndex:uniq_pending_follow,where:type = 'follow_request' AND status = 'pending'"`
	ReceiverID uint             `gorm:"not null;index;uniqueIndex:uniq_pending_follow,where:type = 'follow_request' AND status = 'pending'"`
	Type       NotificationType `gorm:"size:50;not null"`
	Status     RequestStatus    `gorm:"size:20"`
	CreatedAt  time.Time

	Sender   User `gorm:"foreignKey:SenderID;references:ID;constraint:OnDelete:CASCADE;"`
	Receiver User `gorm:"foreignKey:ReceiverID;references:ID;constraint:OnDelete:CASCADE;"`
}
