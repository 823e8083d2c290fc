package repository

import (
	"context"

	"quizmate/internal/models"
	"quizmate/internal/observability"

	"gorm.io/gorm"
)

// LeaderboardRepository defines persistence operations for quiz results.
// Results accumulate as an append-only log; ranking reduces the log at read
// time rather than keeping a materialized best score.
type LeaderboardRepository interface {
	Append(ctx context.Context, entry *models.LeaderboardEntry) error
	GetByCategory(ctx context.Context, category string) ([]models.LeaderboardEntry, error)
	SyncNames(ctx context.Context, userID uint, name, avatar string) error
}

type leaderboardRepository struct {
	db *gorm.DB
}

// NewLeaderboardRepository creates a new leaderboard repository.
func NewLeaderboardRepository(db *gorm.DB) LeaderboardRepository {
	return &leaderboardRepository{db: db}
}

func (r *leaderboardRepository) Append(ctx context.Context, entry *models.LeaderboardEntry) error {
	defer observability.TrackQuery("insert", "leaderboard_entries")()

	if err := r.db.WithContext(ctx).Create(entry).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

// GetByCategory returns every result in a category. Reduction to
// best-per-user happens in the service so the ordering rules live in one
// place.
func (r *leaderboardRepository) GetByCategory(ctx context.Context, category string) ([]models.LeaderboardEntry, error) {
	defer observability.TrackQuery("select", "leaderboard_entries")()

	var entries []models.LeaderboardEntry
	if err := r.db.WithContext(ctx).
		Where("category = ?", category).
		Find(&entries).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return entries, nil
}

// SyncNames rewrites the denormalized name and avatar on a player's past
// results after a rename.
func (r *leaderboardRepository) SyncNames(ctx context.Context, userID uint, name, avatar string) error {
	defer observability.TrackQuery("update", "leaderboard_entries")()

	if err := r.db.WithContext(ctx).
		Model(&models.LeaderboardEntry{}).
		Where("user_id = ?", userID).
		Updates(map[string]interface{}{
			"name":        name,
			"profile_pic": avatar,
		}).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}
