// Package validation holds input validation rules shared by services.
package validation

import (
	"quizmate/internal/models"
)

// MinPasswordLength is the weakest password accepted at registration and
// password change.
const MinPasswordLength = 6

// Password checks a candidate password against the strength rules. Returns
// an AppError carrying the weak-password code so clients can map it to their
// localized message.
func Password(password string) error {
	if len(password) < MinPasswordLength {
		return models.NewAuthError(models.CodeWeakPassword, "Password must be at least 6 characters")
	}
	return nil
}
