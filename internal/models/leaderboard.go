package models

import (
	"time"
)

// LeaderboardEntry is one appended quiz result. Entries are never updated in
// place except for the Name column, which is re-synced when the player
// renames themselves. Score is the percentage (0-100); RawScore the number of
// correct answers. Best-score-per-user is computed at read time, not stored.
type LeaderboardEntry struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	UserID         uint      `gorm:"not null;index" json:"user_id"`
	Name           string    `json:"name"`
	AvatarSnapshot string    `gorm:"column:profile_pic" json:"profile_pic"`
	Category       string    `gorm:"not null;index" json:"category"`
	Score          float64   `gorm:"not null" json:"score"`
	RawScore       int       `json:"raw_score"`
	TotalQuestions int       `json:"total_questions"`
	StartTime      time.Time `json:"start_time"`
	EndTime        time.Time `json:"end_time"`
	CreatedAt      time.Time `json:"created_at"`
}

// Duration is the time the player spent on the quiz, used to break score
// ties (shorter wins).
func (e *LeaderboardEntry) Duration() time.Duration {
	return e.EndTime.Sub(e.StartTime)
}
