// Package service implements the application's business logic on top of the
// repository layer.
package service

import (
	"context"
	"log/slog"

	"quizmate/internal/cache"
	"quizmate/internal/middleware"
	"quizmate/internal/models"
	"quizmate/internal/observability"
	"quizmate/internal/repository"
)

// ProfileCard is the resolved display identity for a user: the name and
// avatar every surface renders. Resolution order and fallbacks live in the
// models.User helpers; this is just their cacheable product.
type ProfileCard struct {
	ID     uint   `json:"id"`
	Name   string `json:"name"`
	Avatar string `json:"avatar"`
}

// FeedService assembles the friend-scoped feed.
type FeedService struct {
	postRepo   repository.PostRepository
	friendRepo repository.FriendRepository
	userRepo   repository.UserRepository
}

// NewFeedService creates a new feed service.
func NewFeedService(postRepo repository.PostRepository, friendRepo repository.FriendRepository, userRepo repository.UserRepository) *FeedService {
	return &FeedService{
		postRepo:   postRepo,
		friendRepo: friendRepo,
		userRepo:   userRepo,
	}
}

// VisibleAuthors returns the set of users whose posts the viewer may see:
// the viewer themselves plus everyone they hold an accepted edge to. A user
// with no friends still sees their own posts. A friend-read failure degrades
// to the viewer-only set so the feed still renders; the error is logged, not
// retried.
func (s *FeedService) VisibleAuthors(ctx context.Context, viewerID uint) ([]uint, error) {
	friendIDs, err := s.friendRepo.AcceptedFriendIDs(ctx, viewerID)
	if err != nil {
		middleware.Logger.ErrorContext(ctx, "friend set read failed, serving own posts only",
			slog.Uint64("viewer_id", uint64(viewerID)),
			slog.String("error", err.Error()),
		)
		return []uint{viewerID}, nil
	}

	authors := make([]uint, 0, len(friendIDs)+1)
	authors = append(authors, viewerID)
	for _, id := range friendIDs {
		if id != viewerID {
			authors = append(authors, id)
		}
	}
	return authors, nil
}

// GetFeed returns the viewer's feed: posts by visible authors, newest first.
// The first page is served from a short-lived Redis snapshot; posting and
// friendship changes invalidate it, and the live event stream covers the
// remaining staleness window. Deeper pages always hit the database.
func (s *FeedService) GetFeed(ctx context.Context, viewerID uint, limit, offset int) ([]*models.Post, error) {
	if viewerID == 0 {
		return nil, models.NewUnauthorizedError("Authentication required")
	}

	if offset > 0 {
		return s.fetchFeed(ctx, viewerID, limit, offset)
	}

	var posts []*models.Post
	err := cache.CacheAside(ctx, cache.FeedKey(viewerID), &posts, cache.FeedTTL, func() error {
		var fetchErr error
		posts, fetchErr = s.fetchFeed(ctx, viewerID, limit, 0)
		return fetchErr
	})
	if err != nil {
		return nil, err
	}
	// The snapshot holds whatever page size warmed it; a smaller request is
	// trimmed, a larger one is at most FeedTTL behind.
	if len(posts) > limit {
		posts = posts[:limit]
	}
	return posts, nil
}

func (s *FeedService) fetchFeed(ctx context.Context, viewerID uint, limit, offset int) ([]*models.Post, error) {
	authors, err := s.VisibleAuthors(ctx, viewerID)
	if err != nil {
		return nil, err
	}

	posts, err := s.postRepo.GetByAuthorIDs(ctx, authors, limit, offset, viewerID)
	if err != nil {
		return nil, err
	}

	observability.FeedSnapshotSize.Observe(float64(len(posts)))
	return posts, nil
}

// ResolveProfile returns the display card for a user, served from the Redis
// cache when warm. Unknown users resolve to a placeholder card rather than
// an error so a half-deleted author never blanks a whole feed.
func (s *FeedService) ResolveProfile(ctx context.Context, userID uint) (ProfileCard, error) {
	var card ProfileCard
	err := cache.CacheAside(ctx, cache.ProfileKey(userID), &card, cache.ProfileTTL, func() error {
		user, err := s.userRepo.GetByID(ctx, userID)
		if err != nil {
			if appErr, ok := err.(*models.AppError); ok && appErr.Code == models.CodeNotFound {
				placeholder := models.User{ID: userID}
				card = ProfileCard{ID: userID, Name: placeholder.DisplayName(), Avatar: placeholder.Avatar()}
				return nil
			}
			return err
		}
		card = ProfileCard{ID: user.ID, Name: user.DisplayName(), Avatar: user.Avatar()}
		return nil
	})
	if err != nil {
		return ProfileCard{}, err
	}
	return card, nil
}

// ResolveProfiles resolves cards for a set of users, deduplicating ids.
func (s *FeedService) ResolveProfiles(ctx context.Context, userIDs []uint) (map[uint]ProfileCard, error) {
	cards := make(map[uint]ProfileCard, len(userIDs))
	for _, id := range userIDs {
		if _, done := cards[id]; done {
			continue
		}
		card, err := s.ResolveProfile(ctx, id)
		if err != nil {
			return nil, err
		}
		cards[id] = card
	}
	return cards, nil
}
