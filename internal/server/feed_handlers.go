package server

import (
	"quizmate/internal/models"
	"quizmate/internal/service"

	"github.com/gofiber/fiber/v2"
)

// FeedItem is one post in a feed snapshot with its author card resolved.
type FeedItem struct {
	*models.Post
	AuthorCard service.ProfileCard `json:"author_card"`
}

// GetFeed handles GET /api/feed. The snapshot contains posts from the
// caller and their accepted friends, newest first, with author name/avatar
// and like/comment counts attached.
func (s *Server) GetFeed(c *fiber.Ctx) error {
	ctx := c.Context()
	userID := requesterID(c)
	page := parsePagination(c, 50)

	posts, err := s.feedService.GetFeed(ctx, userID, page.Limit, page.Offset)
	if err != nil {
		return respondServiceError(c, err)
	}

	authorIDs := make([]uint, 0, len(posts))
	for _, p := range posts {
		authorIDs = append(authorIDs, p.AuthorID)
	}
	cards, err := s.feedService.ResolveProfiles(ctx, authorIDs)
	if err != nil {
		return respondServiceError(c, err)
	}

	items := make([]FeedItem, 0, len(posts))
	for _, p := range posts {
		items = append(items, FeedItem{Post: p, AuthorCard: cards[p.AuthorID]})
	}

	return c.JSON(fiber.Map{
		"posts": items,
		"count": len(items),
	})
}
