package repository

import (
	"context"
	"errors"

	"quizmate/internal/models"
	"quizmate/internal/observability"

	"gorm.io/gorm"
)

// FriendRepository defines persistence operations for friend edges and
// pending requests.
type FriendRepository interface {
	// AcceptedFriendIDs returns the ids of everyone the owner has an
	// accepted edge to.
	AcceptedFriendIDs(ctx context.Context, ownerID uint) ([]uint, error)
	GetEdges(ctx context.Context, ownerID uint) ([]models.FriendEdge, error)
	EdgeExists(ctx context.Context, ownerID, friendID uint) (bool, error)
	// Accept resolves a pending request in one transaction: it deletes the
	// request and creates the two accepted edges with profile snapshots.
	Accept(ctx context.Context, request *models.FriendRequest, recipientEdge, senderEdge *models.FriendEdge) error
	RemoveFriendship(ctx context.Context, userID, friendID uint) error
	SyncEdgeSnapshots(ctx context.Context, friendID uint, name, avatar string) error

	CreateRequest(ctx context.Context, req *models.FriendRequest) error
	GetRequest(ctx context.Context, recipientID, senderID uint) (*models.FriendRequest, error)
	GetRequestsForRecipient(ctx context.Context, recipientID uint) ([]models.FriendRequest, error)
	DeleteRequest(ctx context.Context, recipientID, senderID uint) error
}

type friendRepository struct {
	db *gorm.DB
}

// NewFriendRepository creates a new friend repository.
func NewFriendRepository(db *gorm.DB) FriendRepository {
	return &friendRepository{db: db}
}

func (r *friendRepository) AcceptedFriendIDs(ctx context.Context, ownerID uint) ([]uint, error) {
	defer observability.TrackQuery("select", "friend_edges")()

	var ids []uint
	if err := r.db.WithContext(ctx).
		Model(&models.FriendEdge{}).
		Where("owner_id = ? AND status = ?", ownerID, models.FriendEdgeAccepted).
		Pluck("friend_id", &ids).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return ids, nil
}

func (r *friendRepository) GetEdges(ctx context.Context, ownerID uint) ([]models.FriendEdge, error) {
	var edges []models.FriendEdge
	if err := r.db.WithContext(ctx).
		Where("owner_id = ? AND status = ?", ownerID, models.FriendEdgeAccepted).
		Order("name_snapshot ASC").
		Find(&edges).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return edges, nil
}

func (r *friendRepository) EdgeExists(ctx context.Context, ownerID, friendID uint) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.FriendEdge{}).
		Where("owner_id = ? AND friend_id = ?", ownerID, friendID).
		Count(&count).Error; err != nil {
		return false, models.NewInternalError(err)
	}
	return count > 0, nil
}

func (r *friendRepository) Accept(ctx context.Context, request *models.FriendRequest, recipientEdge, senderEdge *models.FriendEdge) error {
	defer observability.TrackQuery("transaction", "friend_edges")()

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Where("recipient_id = ? AND sender_id = ?", request.RecipientID, request.SenderID).
			Delete(&models.FriendRequest{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			// Already resolved by a concurrent accept or reject.
			return gorm.ErrRecordNotFound
		}

		if err := tx.Create(recipientEdge).Error; err != nil {
			return err
		}
		return tx.Create(senderEdge).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.NewNotFoundError("Friend request", request.SenderID)
		}
		if isUniqueConstraintError(err) {
			return models.NewValidationError("Already friends")
		}
		return models.NewInternalError(err)
	}
	return nil
}

// RemoveFriendship deletes both directional edges between two users.
func (r *friendRepository) RemoveFriendship(ctx context.Context, userID, friendID uint) error {
	if err := r.db.WithContext(ctx).
		Where("(owner_id = ? AND friend_id = ?) OR (owner_id = ? AND friend_id = ?)",
			userID, friendID, friendID, userID).
		Delete(&models.FriendEdge{}).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

// SyncEdgeSnapshots rewrites the name and avatar snapshots on every edge
// that points at friendID, bringing friends' views in line after a rename
// or avatar change.
func (r *friendRepository) SyncEdgeSnapshots(ctx context.Context, friendID uint, name, avatar string) error {
	defer observability.TrackQuery("update", "friend_edges")()

	if err := r.db.WithContext(ctx).
		Model(&models.FriendEdge{}).
		Where("friend_id = ?", friendID).
		Updates(map[string]interface{}{
			"name_snapshot":   name,
			"avatar_snapshot": avatar,
		}).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *friendRepository) CreateRequest(ctx context.Context, req *models.FriendRequest) error {
	if err := r.db.WithContext(ctx).Create(req).Error; err != nil {
		if isUniqueConstraintError(err) {
			return models.NewValidationError("Friend request already sent")
		}
		return models.NewInternalError(err)
	}
	return nil
}

func (r *friendRepository) GetRequest(ctx context.Context, recipientID, senderID uint) (*models.FriendRequest, error) {
	var req models.FriendRequest
	if err := r.db.WithContext(ctx).
		Where("recipient_id = ? AND sender_id = ?", recipientID, senderID).
		First(&req).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Friend request", senderID)
		}
		return nil, models.NewInternalError(err)
	}
	return &req, nil
}

func (r *friendRepository) GetRequestsForRecipient(ctx context.Context, recipientID uint) ([]models.FriendRequest, error) {
	var reqs []models.FriendRequest
	if err := r.db.WithContext(ctx).
		Where("recipient_id = ?", recipientID).
		Order("created_at DESC").
		Find(&reqs).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return reqs, nil
}

func (r *friendRepository) DeleteRequest(ctx context.Context, recipientID, senderID uint) error {
	if err := r.db.WithContext(ctx).
		Where("recipient_id = ? AND sender_id = ?", recipientID, senderID).
		Delete(&models.FriendRequest{}).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}
