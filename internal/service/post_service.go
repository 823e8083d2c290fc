package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"quizmate/internal/media"
	"quizmate/internal/middleware"
	"quizmate/internal/models"
	"quizmate/internal/observability"
	"quizmate/internal/repository"
)

// MaxPostTextLen caps composer text.
const MaxPostTextLen = 10000

// PostService handles post composition, likes and comments.
type PostService struct {
	postRepo      repository.PostRepository
	commentRepo   repository.CommentRepository
	friendRepo    repository.FriendRepository
	host          media.Host
	maxVideoBytes int64
}

// CreatePostInput is the composer payload. Media is the raw attachment; it
// is optional, as is Text, but not both at once.
type CreatePostInput struct {
	AuthorID         uint
	Text             string
	Media            []byte
	MediaContentType string
	MediaKind        models.MediaKind
}

// NewPostService creates a new post service. maxVideoBytes caps video
// attachments before any upload is attempted.
func NewPostService(
	postRepo repository.PostRepository,
	commentRepo repository.CommentRepository,
	friendRepo repository.FriendRepository,
	host media.Host,
	maxVideoBytes int64,
) *PostService {
	return &PostService{
		postRepo:      postRepo,
		commentRepo:   commentRepo,
		friendRepo:    friendRepo,
		host:          host,
		maxVideoBytes: maxVideoBytes,
	}
}

// CreatePost validates the composer payload, uploads the attachment if any,
// and persists the post. The size gate runs before the upload so an
// oversized video costs no bandwidth. If the database write fails after a
// successful upload the asset is deleted again, best-effort.
func (s *PostService) CreatePost(ctx context.Context, in CreatePostInput) (*models.Post, error) {
	if in.AuthorID == 0 {
		return nil, models.NewUnauthorizedError("Authentication required")
	}

	text := strings.TrimSpace(in.Text)
	if text == "" && len(in.Media) == 0 {
		return nil, models.NewValidationError("Post needs text or an attachment")
	}
	if len(text) > MaxPostTextLen {
		return nil, models.NewValidationError(fmt.Sprintf("Text too long (max %d characters)", MaxPostTextLen))
	}

	post := &models.Post{
		AuthorID: in.AuthorID,
		Text:     text,
	}

	if len(in.Media) > 0 {
		kind := in.MediaKind
		if kind != models.MediaKindImage && kind != models.MediaKindVideo {
			return nil, models.NewValidationError("Unsupported media kind")
		}
		if kind == models.MediaKindVideo && int64(len(in.Media)) > s.maxVideoBytes {
			return nil, models.NewValidationError(fmt.Sprintf("Video too large (max %dMB)", s.maxVideoBytes/(1024*1024)))
		}

		asset, err := s.host.Upload(ctx, in.Media, in.MediaContentType, string(kind))
		if err != nil {
			return nil, models.NewInternalError(err)
		}
		observability.MediaUploadBytes.WithLabelValues(string(kind)).Observe(float64(len(in.Media)))

		post.MediaURL = asset.URL
		post.MediaKind = kind
		post.MediaAssetID = asset.PublicID
	}

	if err := s.postRepo.Create(ctx, post); err != nil {
		if post.MediaAssetID != "" {
			if _, delErr := s.host.Delete(ctx, post.MediaAssetID); delErr != nil {
				middleware.Logger.ErrorContext(ctx, "orphaned media asset after failed post write",
					slog.String("asset_id", post.MediaAssetID),
					slog.String("error", delErr.Error()),
				)
			}
		}
		return nil, err
	}

	return post, nil
}

// GetPost returns a post if the viewer may see it: the author must be the
// viewer or one of their accepted friends.
func (s *PostService) GetPost(ctx context.Context, postID, viewerID uint) (*models.Post, error) {
	post, err := s.postRepo.GetByID(ctx, postID, viewerID)
	if err != nil {
		return nil, err
	}
	if err := s.checkVisibility(ctx, post, viewerID); err != nil {
		return nil, err
	}
	return post, nil
}

// DeletePost removes the author's own post and its attachment. The database
// row goes first; a stranded asset only costs storage, a stranded row would
// keep a dead post in feeds.
func (s *PostService) DeletePost(ctx context.Context, postID, userID uint) error {
	post, err := s.postRepo.GetByID(ctx, postID, userID)
	if err != nil {
		return err
	}
	if post.AuthorID != userID {
		return models.NewUnauthorizedError("Only the author can delete a post")
	}

	if err := s.postRepo.Delete(ctx, postID); err != nil {
		return err
	}

	if post.MediaAssetID != "" {
		if _, err := s.host.Delete(ctx, post.MediaAssetID); err != nil {
			middleware.Logger.ErrorContext(ctx, "failed to delete media asset for removed post",
				slog.Uint64("post_id", uint64(postID)),
				slog.String("asset_id", post.MediaAssetID),
				slog.String("error", err.Error()),
			)
		}
	}
	return nil
}

// ToggleLike flips the viewer's like on a visible post and returns the
// post's new state.
func (s *PostService) ToggleLike(ctx context.Context, postID, userID uint) (*models.Post, bool, error) {
	post, err := s.postRepo.GetByID(ctx, postID, userID)
	if err != nil {
		return nil, false, err
	}
	if err := s.checkVisibility(ctx, post, userID); err != nil {
		return nil, false, err
	}

	liked, err := s.postRepo.ToggleLike(ctx, userID, postID)
	if err != nil {
		return nil, false, err
	}

	// Re-read for fresh counts.
	post, err = s.postRepo.GetByID(ctx, postID, userID)
	if err != nil {
		return nil, false, err
	}
	return post, liked, nil
}

// AddComment appends a comment to a visible post. Comments cannot be empty.
func (s *PostService) AddComment(ctx context.Context, postID, authorID uint, text string) (*models.Comment, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, models.NewValidationError("Comment text is required")
	}

	post, err := s.postRepo.GetByID(ctx, postID, authorID)
	if err != nil {
		return nil, err
	}
	if err := s.checkVisibility(ctx, post, authorID); err != nil {
		return nil, err
	}

	comment := &models.Comment{
		PostID:   postID,
		AuthorID: authorID,
		Text:     text,
	}
	if err := s.commentRepo.Create(ctx, comment); err != nil {
		return nil, err
	}
	return comment, nil
}

// GetComments returns a post's comments, newest first.
func (s *PostService) GetComments(ctx context.Context, postID, viewerID uint, limit, offset int) ([]*models.Comment, error) {
	post, err := s.postRepo.GetByID(ctx, postID, viewerID)
	if err != nil {
		return nil, err
	}
	if err := s.checkVisibility(ctx, post, viewerID); err != nil {
		return nil, err
	}
	return s.commentRepo.GetByPostID(ctx, postID, limit, offset)
}

func (s *PostService) checkVisibility(ctx context.Context, post *models.Post, viewerID uint) error {
	if post.AuthorID == viewerID {
		return nil
	}
	isFriend, err := s.friendRepo.EdgeExists(ctx, viewerID, post.AuthorID)
	if err != nil {
		return err
	}
	if !isFriend {
		return models.NewNotFoundError("Post", post.ID)
	}
	return nil
}
