package service

import (
	"context"

	"quizmate/internal/cache"
	"quizmate/internal/models"
	"quizmate/internal/repository"
)

// FriendService manages friend requests and the materialized friendship
// edges.
type FriendService struct {
	friendRepo repository.FriendRepository
	userRepo   repository.UserRepository
}

// NewFriendService creates a new friend service.
func NewFriendService(friendRepo repository.FriendRepository, userRepo repository.UserRepository) *FriendService {
	return &FriendService{friendRepo: friendRepo, userRepo: userRepo}
}

// SendRequest creates a pending request from sender to recipient, stamped
// with the sender's current name and avatar.
func (s *FriendService) SendRequest(ctx context.Context, senderID, recipientID uint) (*models.FriendRequest, error) {
	if senderID == recipientID {
		return nil, models.NewValidationError("Cannot send a friend request to yourself")
	}

	if _, err := s.userRepo.GetByID(ctx, recipientID); err != nil {
		return nil, err
	}

	alreadyFriends, err := s.friendRepo.EdgeExists(ctx, senderID, recipientID)
	if err != nil {
		return nil, err
	}
	if alreadyFriends {
		return nil, models.NewValidationError("Already friends")
	}

	sender, err := s.userRepo.GetByID(ctx, senderID)
	if err != nil {
		return nil, err
	}

	req := &models.FriendRequest{
		RecipientID:  recipientID,
		SenderID:     senderID,
		SenderName:   sender.DisplayName(),
		SenderAvatar: sender.Avatar(),
	}
	if err := s.friendRepo.CreateRequest(ctx, req); err != nil {
		return nil, err
	}
	return req, nil
}

// AcceptRequest resolves a pending request addressed to recipientID. In one
// transaction the request row is deleted and two accepted edges are created,
// each snapshotting the other participant's current name and avatar.
func (s *FriendService) AcceptRequest(ctx context.Context, recipientID, senderID uint) error {
	req, err := s.friendRepo.GetRequest(ctx, recipientID, senderID)
	if err != nil {
		return err
	}

	recipient, err := s.userRepo.GetByID(ctx, recipientID)
	if err != nil {
		return err
	}
	sender, err := s.userRepo.GetByID(ctx, senderID)
	if err != nil {
		return err
	}

	recipientEdge := &models.FriendEdge{
		OwnerID:        recipientID,
		FriendID:       senderID,
		NameSnapshot:   sender.DisplayName(),
		AvatarSnapshot: sender.Avatar(),
		Status:         models.FriendEdgeAccepted,
	}
	senderEdge := &models.FriendEdge{
		OwnerID:        senderID,
		FriendID:       recipientID,
		NameSnapshot:   recipient.DisplayName(),
		AvatarSnapshot: recipient.Avatar(),
		Status:         models.FriendEdgeAccepted,
	}

	if err := s.friendRepo.Accept(ctx, req, recipientEdge, senderEdge); err != nil {
		return err
	}

	// Friendship changes shift both users' visible author sets.
	cache.InvalidateFeed(ctx, recipientID)
	cache.InvalidateFeed(ctx, senderID)
	return nil
}

// RejectRequest discards a pending request without creating any edges.
func (s *FriendService) RejectRequest(ctx context.Context, recipientID, senderID uint) error {
	if _, err := s.friendRepo.GetRequest(ctx, recipientID, senderID); err != nil {
		return err
	}
	return s.friendRepo.DeleteRequest(ctx, recipientID, senderID)
}

// ListRequests returns the pending requests addressed to the user.
func (s *FriendService) ListRequests(ctx context.Context, recipientID uint) ([]models.FriendRequest, error) {
	return s.friendRepo.GetRequestsForRecipient(ctx, recipientID)
}

// ListFriends returns the user's accepted edges with their snapshots.
func (s *FriendService) ListFriends(ctx context.Context, ownerID uint) ([]models.FriendEdge, error) {
	return s.friendRepo.GetEdges(ctx, ownerID)
}

// Unfriend removes both directional edges between the two users.
func (s *FriendService) Unfriend(ctx context.Context, userID, friendID uint) error {
	exists, err := s.friendRepo.EdgeExists(ctx, userID, friendID)
	if err != nil {
		return err
	}
	if !exists {
		return models.NewNotFoundError("Friendship", friendID)
	}

	if err := s.friendRepo.RemoveFriendship(ctx, userID, friendID); err != nil {
		return err
	}
	cache.InvalidateFeed(ctx, userID)
	cache.InvalidateFeed(ctx, friendID)
	return nil
}
