package models

import (
	"time"

	"gorm.io/gorm"
)

// MediaKind classifies a post's attachment.
type MediaKind string

const (
	MediaKindImage MediaKind = "image"
	MediaKindVideo MediaKind = "video"
)

// Post is a feed entry. Text and media are individually optional but a post
// must carry at least one of them; the service layer enforces that.
type Post struct {
	ID       uint      `gorm:"primaryKey" json:"id"`
	AuthorID uint      `gorm:"not null;index" json:"author_id"`
	Author   User      `gorm:"foreignKey:AuthorID" json:"author"`
	Text     string    `json:"text,omitempty"`
	MediaURL string    `json:"media_url,omitempty"`
	MediaKind MediaKind `gorm:"type:varchar(10)" json:"media_kind,omitempty"`
	// MediaAssetID is the media host's opaque public id, retained for
	// compensating deletes and future replacement.
	MediaAssetID string `json:"-"`
	// LikeCount, CommentCount and Liked are not persisted; computed at query time.
	LikeCount    int            `gorm:"->" json:"like_count"`
	CommentCount int            `gorm:"->" json:"comment_count"`
	Liked        bool           `gorm:"->" json:"liked"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
}
