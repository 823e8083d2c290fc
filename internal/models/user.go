// Package models contains data structures for the application's domain models.
package models

import (
	"fmt"
	"time"

	"gorm.io/gorm"
)

// DefaultAvatarURL is shown when a user has no avatar in either the current
// or the legacy field.
const DefaultAvatarURL = "https://static.quizmate.app/avatars/default.png"

// User represents a registered player. Name is the preferred display name;
// FullName and the legacy ProfilePic field survive from older clients and are
// still consulted by the resolution helpers below.
type User struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	Username  string         `gorm:"unique;not null" json:"username"`
	Email     string         `gorm:"unique;not null" json:"email"`
	Password  string         `gorm:"not null" json:"-"`
	Name      string         `json:"name"`
	FullName  string         `json:"full_name,omitempty"`
	AvatarURL string         `json:"avatar_url"`
	// AvatarID is the media host's opaque public id for the current avatar,
	// kept so the asset can be deleted when the avatar is replaced.
	AvatarID        string         `json:"-"`
	LegacyAvatarURL string         `gorm:"column:profile_pic" json:"-"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
	DeletedAt       gorm.DeletedAt `gorm:"index" json:"-"`
	Posts           []Post         `gorm:"foreignKey:AuthorID" json:"posts,omitempty"`
}

// DisplayName resolves the name to render for this user: explicit name,
// then username, then full name, then a placeholder derived from the id.
func (u *User) DisplayName() string {
	switch {
	case u.Name != "":
		return u.Name
	case u.Username != "":
		return u.Username
	case u.FullName != "":
		return u.FullName
	default:
		return fmt.Sprintf("User %d", u.ID)
	}
}

// Avatar resolves the avatar URL: current field, then the legacy
// profile_pic column, then the default placeholder.
func (u *User) Avatar() string {
	if u.AvatarURL != "" {
		return u.AvatarURL
	}
	if u.LegacyAvatarURL != "" {
		return u.LegacyAvatarURL
	}
	return DefaultAvatarURL
}
