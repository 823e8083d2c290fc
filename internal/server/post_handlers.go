package server

import (
	"io"
	"strings"
	"time"

	"quizmate/internal/models"
	"quizmate/internal/service"

	"github.com/gofiber/fiber/v2"
)

// CreatePost handles POST /api/posts. The composer sends a multipart form:
// a "text" field and optionally one "media" file (image or video).
func (s *Server) CreatePost(c *fiber.Ctx) error {
	ctx := c.Context()
	userID := requesterID(c)

	in := service.CreatePostInput{
		AuthorID: userID,
		Text:     c.FormValue("text"),
	}

	if file, err := c.FormFile("media"); err == nil {
		src, err := file.Open()
		if err != nil {
			return models.RespondWithError(c, fiber.StatusBadRequest,
				models.NewValidationError("Unable to read uploaded file"))
		}
		content, err := io.ReadAll(src)
		_ = src.Close()
		if err != nil {
			return models.RespondWithError(c, fiber.StatusBadRequest,
				models.NewValidationError("Unable to read uploaded file"))
		}

		contentType := file.Header.Get("Content-Type")
		kind, ok := mediaKindForContentType(contentType)
		if !ok {
			return models.RespondWithError(c, fiber.StatusBadRequest,
				models.NewValidationError("Unsupported media type"))
		}

		in.Media = content
		in.MediaContentType = contentType
		in.MediaKind = kind
	}

	post, err := s.postService.CreatePost(ctx, in)
	if err != nil {
		return respondServiceError(c, err)
	}

	s.publishFeedEvent(ctx, userID, EventPostCreated, map[string]interface{}{
		"post_id":    post.ID,
		"author_id":  post.AuthorID,
		"created_at": time.Now().UTC().Format(time.RFC3339Nano),
	})

	return c.Status(fiber.StatusCreated).JSON(post)
}

// GetPost handles GET /api/posts/:id
func (s *Server) GetPost(c *fiber.Ctx) error {
	userID := requesterID(c)
	postID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	post, err := s.postService.GetPost(c.Context(), postID, userID)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(post)
}

// DeletePost handles DELETE /api/posts/:id
func (s *Server) DeletePost(c *fiber.Ctx) error {
	userID := requesterID(c)
	postID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.postService.DeletePost(c.Context(), postID, userID); err != nil {
		return respondServiceError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// LikePost handles POST /api/posts/:id/like. The endpoint toggles: liking an
// already-liked post removes the like.
func (s *Server) LikePost(c *fiber.Ctx) error {
	ctx := c.Context()
	userID := requesterID(c)
	postID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	post, liked, err := s.postService.ToggleLike(ctx, postID, userID)
	if err != nil {
		return respondServiceError(c, err)
	}

	s.publishFeedEvent(ctx, post.AuthorID, EventPostReactionUpdated, map[string]interface{}{
		"post_id":       post.ID,
		"like_count":    post.LikeCount,
		"comment_count": post.CommentCount,
		"updated_at":    time.Now().UTC().Format(time.RFC3339Nano),
	})

	return c.JSON(fiber.Map{
		"post":  post,
		"liked": liked,
	})
}

// GetComments handles GET /api/posts/:id/comments
func (s *Server) GetComments(c *fiber.Ctx) error {
	userID := requesterID(c)
	postID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	page := parsePagination(c, 50)
	comments, err := s.postService.GetComments(c.Context(), postID, userID, page.Limit, page.Offset)
	if err != nil {
		return respondServiceError(c, err)
	}
	if comments == nil {
		comments = []*models.Comment{}
	}
	return c.JSON(comments)
}

// CreateComment handles POST /api/posts/:id/comments
func (s *Server) CreateComment(c *fiber.Ctx) error {
	ctx := c.Context()
	userID := requesterID(c)
	postID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req struct {
		Text string `json:"text"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	comment, err := s.postService.AddComment(ctx, postID, userID, req.Text)
	if err != nil {
		return respondServiceError(c, err)
	}

	post, err := s.postService.GetPost(ctx, postID, userID)
	if err == nil {
		s.publishFeedEvent(ctx, post.AuthorID, EventCommentCreated, map[string]interface{}{
			"post_id":       post.ID,
			"comment_id":    comment.ID,
			"author_id":     comment.AuthorID,
			"comment_count": post.CommentCount,
		})
	}

	return c.Status(fiber.StatusCreated).JSON(comment)
}

func mediaKindForContentType(contentType string) (models.MediaKind, bool) {
	switch {
	case strings.HasPrefix(contentType, "image/"):
		return models.MediaKindImage, true
	case strings.HasPrefix(contentType, "video/"):
		return models.MediaKindVideo, true
	default:
		return "", false
	}
}
