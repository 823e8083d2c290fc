package models

import (
	"encoding/json"
	"time"
)

// Question is one multiple-choice quiz question in a category. OptionsJSON
// holds the choices as a JSON array; Answer is the correct choice and never
// leaves the server — grading happens in the quiz service.
type Question struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Category    string    `gorm:"not null;index" json:"category"`
	Text        string    `gorm:"not null" json:"question"`
	OptionsJSON string    `gorm:"column:options;not null" json:"-"`
	Answer      string    `gorm:"not null" json:"-"`
	CreatedAt   time.Time `json:"created_at"`
}

// Options decodes the stored choices. A malformed row yields an empty slice
// rather than an error; integrity gaps render as empty state.
func (q *Question) Options() []string {
	var opts []string
	if err := json.Unmarshal([]byte(q.OptionsJSON), &opts); err != nil {
		return nil
	}
	return opts
}

// SetOptions encodes the choices into OptionsJSON.
func (q *Question) SetOptions(opts []string) error {
	b, err := json.Marshal(opts)
	if err != nil {
		return err
	}
	q.OptionsJSON = string(b)
	return nil
}
