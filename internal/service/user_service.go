package service

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"quizmate/internal/cache"
	"quizmate/internal/media"
	"quizmate/internal/middleware"
	"quizmate/internal/models"
	"quizmate/internal/repository"
	"quizmate/internal/validation"

	"golang.org/x/crypto/bcrypt"
)

// UserService manages accounts and profile editing.
type UserService struct {
	userRepo          repository.UserRepository
	friendRepo        repository.FriendRepository
	leaderboardRepo   repository.LeaderboardRepository
	host              media.Host
	recentLoginWindow time.Duration
}

// RegisterInput is the signup payload.
type RegisterInput struct {
	Username string
	Email    string
	Password string
	Name     string
}

// NewUserService creates a new user service. recentLoginWindow bounds how
// old a session token may be for password changes.
func NewUserService(
	userRepo repository.UserRepository,
	friendRepo repository.FriendRepository,
	leaderboardRepo repository.LeaderboardRepository,
	host media.Host,
	recentLoginWindow time.Duration,
) *UserService {
	return &UserService{
		userRepo:          userRepo,
		friendRepo:        friendRepo,
		leaderboardRepo:   leaderboardRepo,
		host:              host,
		recentLoginWindow: recentLoginWindow,
	}
}

// Register creates an account. Errors carry the auth codes clients map to
// their localized messages: email in use, weak password.
func (s *UserService) Register(ctx context.Context, in RegisterInput) (*models.User, error) {
	username := strings.TrimSpace(in.Username)
	email := strings.ToLower(strings.TrimSpace(in.Email))

	if username == "" || email == "" {
		return nil, models.NewValidationError("Username and email are required")
	}
	if !strings.Contains(email, "@") {
		return nil, models.NewValidationError("Invalid email address")
	}
	if err := validation.Password(in.Password); err != nil {
		return nil, err
	}

	if existing, err := s.userRepo.GetByEmail(ctx, email); err != nil {
		return nil, err
	} else if existing != nil {
		return nil, models.NewAuthError(models.CodeEmailInUse, "Email already in use")
	}
	if existing, err := s.userRepo.GetByUsername(ctx, username); err != nil {
		return nil, err
	} else if existing != nil {
		return nil, models.NewAuthError(models.CodeNameTaken, "Username already taken")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, models.NewInternalError(err)
	}

	user := &models.User{
		Username: username,
		Email:    email,
		Password: string(hashed),
		Name:     strings.TrimSpace(in.Name),
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Authenticate checks a credential pair. Wrong email and wrong password both
// yield the same invalid-credential code; the API never says which half
// failed.
func (s *UserService) Authenticate(ctx context.Context, email, password string) (*models.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, models.NewAuthError(models.CodeInvalidCredential, "Invalid email or password")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, models.NewAuthError(models.CodeInvalidCredential, "Invalid email or password")
	}
	return user, nil
}

// GetUser returns a user by id.
func (s *UserService) GetUser(ctx context.Context, id uint) (*models.User, error) {
	return s.userRepo.GetByID(ctx, id)
}

// SearchUsers finds users by username or name fragment.
func (s *UserService) SearchUsers(ctx context.Context, query string, limit int) ([]models.User, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, models.NewValidationError("Search query is required")
	}
	return s.userRepo.Search(ctx, query, limit)
}

// ChangeName sets a new display name and fans the change out to every place
// the old name is denormalized: friends' edge snapshots and the user's past
// leaderboard results.
func (s *UserService) ChangeName(ctx context.Context, userID uint, newName string) (*models.User, error) {
	newName = strings.TrimSpace(newName)
	if newName == "" {
		return nil, models.NewValidationError("Name is required")
	}
	if len(newName) > 50 {
		return nil, models.NewValidationError("Name too long (max 50 characters)")
	}

	if existing, err := s.userRepo.GetByName(ctx, newName); err != nil {
		return nil, err
	} else if existing != nil && existing.ID != userID {
		return nil, models.NewAuthError(models.CodeNameTaken, "Name already taken")
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	user.Name = newName
	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}

	if err := s.friendRepo.SyncEdgeSnapshots(ctx, userID, user.DisplayName(), user.Avatar()); err != nil {
		return nil, err
	}
	if err := s.leaderboardRepo.SyncNames(ctx, userID, user.DisplayName(), user.Avatar()); err != nil {
		return nil, err
	}

	cache.InvalidateProfile(ctx, userID)
	return user, nil
}

// ChangeAvatar replaces the user's avatar. The image is normalized before
// upload; the old asset is deleted first so the host never accumulates one
// orphan per change. A failed delete is logged and the replacement proceeds.
func (s *UserService) ChangeAvatar(ctx context.Context, userID uint, imageData []byte) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	encoded, contentType, err := media.NormalizeAvatar(imageData)
	if err != nil {
		return nil, models.NewValidationError("Invalid avatar image")
	}

	if user.AvatarID != "" {
		if _, delErr := s.host.Delete(ctx, user.AvatarID); delErr != nil {
			middleware.Logger.ErrorContext(ctx, "failed to delete previous avatar asset",
				slog.Uint64("user_id", uint64(userID)),
				slog.String("asset_id", user.AvatarID),
				slog.String("error", delErr.Error()),
			)
		}
	}

	asset, err := s.host.Upload(ctx, encoded, contentType, "avatar")
	if err != nil {
		return nil, models.NewInternalError(err)
	}

	user.AvatarURL = asset.URL
	user.AvatarID = asset.PublicID
	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}

	if err := s.friendRepo.SyncEdgeSnapshots(ctx, userID, user.DisplayName(), user.Avatar()); err != nil {
		return nil, err
	}
	if err := s.leaderboardRepo.SyncNames(ctx, userID, user.DisplayName(), user.Avatar()); err != nil {
		return nil, err
	}

	cache.InvalidateProfile(ctx, userID)
	return user, nil
}

// ChangePassword requires the current password as a fresh proof of identity
// and a session minted within the recent-login window. Both a wrong current
// password and a stale session map to the requires-recent-login code.
func (s *UserService) ChangePassword(ctx context.Context, userID uint, sessionIssuedAt time.Time, currentPassword, newPassword string) error {
	if s.recentLoginWindow > 0 && time.Since(sessionIssuedAt) > s.recentLoginWindow {
		return models.NewAuthError(models.CodeRecentLoginNeeded, "Session is too old, please log in again")
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(currentPassword)); err != nil {
		return models.NewAuthError(models.CodeRecentLoginNeeded, "Current password is incorrect")
	}
	if err := validation.Password(newPassword); err != nil {
		return err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return models.NewInternalError(err)
	}

	user.Password = string(hashed)
	return s.userRepo.Update(ctx, user)
}
