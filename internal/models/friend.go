package models

import (
	"time"
)

// FriendEdgeStatus is the status carried on a friend edge.
type FriendEdgeStatus string

const (
	// FriendEdgeAccepted marks a materialized friendship edge.
	FriendEdgeAccepted FriendEdgeStatus = "accepted"
)

// FriendEdge is one directional participant's view of an accepted
// friendship: the row under OwnerID pointing at FriendID. An accepted
// friendship always exists as two edges, one per participant, each carrying
// a snapshot of the other's name and avatar taken at acceptance time.
// Snapshots may drift from the live profile; only display-name changes are
// re-synced into them.
type FriendEdge struct {
	ID             uint             `gorm:"primaryKey" json:"id"`
	OwnerID        uint             `gorm:"not null;uniqueIndex:idx_edge_owner_friend" json:"owner_id"`
	FriendID       uint             `gorm:"not null;uniqueIndex:idx_edge_owner_friend" json:"friend_id"`
	NameSnapshot   string           `json:"name"`
	AvatarSnapshot string           `json:"avatar"`
	Status         FriendEdgeStatus `gorm:"type:varchar(20);default:'accepted'" json:"status"`
	CreatedAt      time.Time        `json:"created_at"`
	UpdatedAt      time.Time        `json:"updated_at"`
}

// FriendRequest is a directional pending request from SenderID to
// RecipientID. It is deleted once resolved: acceptance replaces it with two
// accepted edges, rejection just removes it.
type FriendRequest struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	RecipientID    uint      `gorm:"not null;uniqueIndex:idx_req_recipient_sender" json:"recipient_id"`
	SenderID       uint      `gorm:"not null;uniqueIndex:idx_req_recipient_sender" json:"sender_id"`
	SenderName     string    `json:"sender_name"`
	SenderAvatar   string    `json:"sender_avatar"`
	CreatedAt      time.Time `json:"created_at"`
}
