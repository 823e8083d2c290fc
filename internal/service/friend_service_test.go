package service

import (
	"context"
	"testing"

	"quizmate/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFriendService_SendRequest_SnapshotsSender(t *testing.T) {
	userRepo := noopUserRepo()
	userRepo.getByIDFn = func(_ context.Context, id uint) (*models.User, error) {
		if id == 1 {
			return &models.User{ID: 1, Name: "Ada", AvatarURL: "https://img/ada.png"}, nil
		}
		return &models.User{ID: id, Username: "bob"}, nil
	}

	var created *models.FriendRequest
	friendRepo := noopFriendRepo()
	friendRepo.createRequestFn = func(_ context.Context, req *models.FriendRequest) error {
		created = req
		return nil
	}

	svc := NewFriendService(friendRepo, userRepo)
	req, err := svc.SendRequest(context.Background(), 1, 2)
	require.NoError(t, err)
	assert.Equal(t, uint(2), req.RecipientID)
	assert.Equal(t, "Ada", created.SenderName)
	assert.Equal(t, "https://img/ada.png", created.SenderAvatar)
}

func TestFriendService_SendRequest_Rejections(t *testing.T) {
	t.Run("self request", func(t *testing.T) {
		svc := NewFriendService(noopFriendRepo(), noopUserRepo())
		_, err := svc.SendRequest(context.Background(), 1, 1)
		requireAppCode(t, err, models.CodeValidation)
	})

	t.Run("unknown recipient", func(t *testing.T) {
		userRepo := noopUserRepo()
		userRepo.getByIDFn = func(_ context.Context, id uint) (*models.User, error) {
			return nil, models.NewNotFoundError("User", id)
		}
		svc := NewFriendService(noopFriendRepo(), userRepo)
		_, err := svc.SendRequest(context.Background(), 1, 404)
		requireAppCode(t, err, models.CodeNotFound)
	})

	t.Run("already friends", func(t *testing.T) {
		friendRepo := noopFriendRepo()
		friendRepo.edgeExistsFn = func(_ context.Context, _, _ uint) (bool, error) { return true, nil }
		svc := NewFriendService(friendRepo, noopUserRepo())
		_, err := svc.SendRequest(context.Background(), 1, 2)
		requireAppCode(t, err, models.CodeValidation)
	})
}

func TestFriendService_AcceptRequest_BuildsSymmetricEdges(t *testing.T) {
	userRepo := noopUserRepo()
	userRepo.getByIDFn = func(_ context.Context, id uint) (*models.User, error) {
		switch id {
		case 1:
			return &models.User{ID: 1, Name: "Recipient", AvatarURL: "https://img/r.png"}, nil
		case 2:
			return &models.User{ID: 2, Name: "Sender", AvatarURL: "https://img/s.png"}, nil
		}
		return nil, models.NewNotFoundError("User", id)
	}

	var gotRecipientEdge, gotSenderEdge *models.FriendEdge
	friendRepo := noopFriendRepo()
	friendRepo.acceptFn = func(_ context.Context, req *models.FriendRequest, recipientEdge, senderEdge *models.FriendEdge) error {
		assert.Equal(t, uint(1), req.RecipientID)
		gotRecipientEdge = recipientEdge
		gotSenderEdge = senderEdge
		return nil
	}

	svc := NewFriendService(friendRepo, userRepo)
	require.NoError(t, svc.AcceptRequest(context.Background(), 1, 2))

	require.NotNil(t, gotRecipientEdge)
	require.NotNil(t, gotSenderEdge)

	// Recipient's edge points at the sender and snapshots the sender.
	assert.Equal(t, uint(1), gotRecipientEdge.OwnerID)
	assert.Equal(t, uint(2), gotRecipientEdge.FriendID)
	assert.Equal(t, "Sender", gotRecipientEdge.NameSnapshot)
	assert.Equal(t, "https://img/s.png", gotRecipientEdge.AvatarSnapshot)

	// Sender's edge mirrors it.
	assert.Equal(t, uint(2), gotSenderEdge.OwnerID)
	assert.Equal(t, uint(1), gotSenderEdge.FriendID)
	assert.Equal(t, "Recipient", gotSenderEdge.NameSnapshot)
	assert.Equal(t, "https://img/r.png", gotSenderEdge.AvatarSnapshot)
}

func TestFriendService_AcceptRequest_NoPending(t *testing.T) {
	friendRepo := noopFriendRepo()
	friendRepo.getRequestFn = func(_ context.Context, _, senderID uint) (*models.FriendRequest, error) {
		return nil, models.NewNotFoundError("Friend request", senderID)
	}
	svc := NewFriendService(friendRepo, noopUserRepo())

	err := svc.AcceptRequest(context.Background(), 1, 2)
	requireAppCode(t, err, models.CodeNotFound)
}

func TestFriendService_RejectRequest(t *testing.T) {
	deleted := false
	friendRepo := noopFriendRepo()
	friendRepo.deleteRequestFn = func(_ context.Context, recipientID, senderID uint) error {
		assert.Equal(t, uint(1), recipientID)
		assert.Equal(t, uint(2), senderID)
		deleted = true
		return nil
	}
	friendRepo.acceptFn = func(_ context.Context, _ *models.FriendRequest, _, _ *models.FriendEdge) error {
		t.Fatal("reject must not create edges")
		return nil
	}

	svc := NewFriendService(friendRepo, noopUserRepo())
	require.NoError(t, svc.RejectRequest(context.Background(), 1, 2))
	assert.True(t, deleted)
}

func TestFriendService_Unfriend(t *testing.T) {
	friendRepo := noopFriendRepo()
	svc := NewFriendService(friendRepo, noopUserRepo())

	// No edge: not found.
	err := svc.Unfriend(context.Background(), 1, 2)
	requireAppCode(t, err, models.CodeNotFound)

	friendRepo.edgeExistsFn = func(_ context.Context, _, _ uint) (bool, error) { return true, nil }
	removed := false
	friendRepo.removeFriendshipFn = func(_ context.Context, userID, friendID uint) error {
		removed = userID == 1 && friendID == 2
		return nil
	}
	require.NoError(t, svc.Unfriend(context.Background(), 1, 2))
	assert.True(t, removed)
}
