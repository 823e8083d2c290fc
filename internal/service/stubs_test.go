package service

import (
	"context"
	"testing"

	"quizmate/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// postRepoStub is a stub for repository.PostRepository.
type postRepoStub struct {
	createFn         func(context.Context, *models.Post) error
	getByIDFn        func(context.Context, uint, uint) (*models.Post, error)
	getByAuthorIDsFn func(context.Context, []uint, int, int, uint) ([]*models.Post, error)
	deleteFn         func(context.Context, uint) error
	toggleLikeFn     func(context.Context, uint, uint) (bool, error)
}

func (s *postRepoStub) Create(ctx context.Context, post *models.Post) error {
	return s.createFn(ctx, post)
}
func (s *postRepoStub) GetByID(ctx context.Context, id, viewerID uint) (*models.Post, error) {
	return s.getByIDFn(ctx, id, viewerID)
}
func (s *postRepoStub) GetByAuthorIDs(ctx context.Context, authorIDs []uint, limit, offset int, viewerID uint) ([]*models.Post, error) {
	return s.getByAuthorIDsFn(ctx, authorIDs, limit, offset, viewerID)
}
func (s *postRepoStub) Delete(ctx context.Context, id uint) error {
	return s.deleteFn(ctx, id)
}
func (s *postRepoStub) ToggleLike(ctx context.Context, userID, postID uint) (bool, error) {
	return s.toggleLikeFn(ctx, userID, postID)
}

func noopPostRepo() *postRepoStub {
	return &postRepoStub{
		createFn:  func(_ context.Context, _ *models.Post) error { return nil },
		getByIDFn: func(_ context.Context, id, _ uint) (*models.Post, error) { return &models.Post{ID: id}, nil },
		getByAuthorIDsFn: func(_ context.Context, _ []uint, _, _ int, _ uint) ([]*models.Post, error) {
			return nil, nil
		},
		deleteFn:     func(_ context.Context, _ uint) error { return nil },
		toggleLikeFn: func(_ context.Context, _, _ uint) (bool, error) { return true, nil },
	}
}

// commentRepoStub is a stub for repository.CommentRepository.
type commentRepoStub struct {
	createFn        func(context.Context, *models.Comment) error
	getByPostIDFn   func(context.Context, uint, int, int) ([]*models.Comment, error)
	countByPostIDFn func(context.Context, uint) (int64, error)
}

func (s *commentRepoStub) Create(ctx context.Context, c *models.Comment) error {
	return s.createFn(ctx, c)
}
func (s *commentRepoStub) GetByPostID(ctx context.Context, postID uint, limit, offset int) ([]*models.Comment, error) {
	return s.getByPostIDFn(ctx, postID, limit, offset)
}
func (s *commentRepoStub) CountByPostID(ctx context.Context, postID uint) (int64, error) {
	return s.countByPostIDFn(ctx, postID)
}

func noopCommentRepo() *commentRepoStub {
	return &commentRepoStub{
		createFn:        func(_ context.Context, _ *models.Comment) error { return nil },
		getByPostIDFn:   func(_ context.Context, _ uint, _, _ int) ([]*models.Comment, error) { return nil, nil },
		countByPostIDFn: func(_ context.Context, _ uint) (int64, error) { return 0, nil },
	}
}

// friendRepoStub is a stub for repository.FriendRepository.
type friendRepoStub struct {
	acceptedFriendIDsFn      func(context.Context, uint) ([]uint, error)
	getEdgesFn               func(context.Context, uint) ([]models.FriendEdge, error)
	edgeExistsFn             func(context.Context, uint, uint) (bool, error)
	acceptFn                 func(context.Context, *models.FriendRequest, *models.FriendEdge, *models.FriendEdge) error
	removeFriendshipFn       func(context.Context, uint, uint) error
	syncEdgeSnapshotsFn      func(context.Context, uint, string, string) error
	createRequestFn          func(context.Context, *models.FriendRequest) error
	getRequestFn             func(context.Context, uint, uint) (*models.FriendRequest, error)
	getRequestsForRecipFn    func(context.Context, uint) ([]models.FriendRequest, error)
	deleteRequestFn          func(context.Context, uint, uint) error
}

func (s *friendRepoStub) AcceptedFriendIDs(ctx context.Context, ownerID uint) ([]uint, error) {
	return s.acceptedFriendIDsFn(ctx, ownerID)
}
func (s *friendRepoStub) GetEdges(ctx context.Context, ownerID uint) ([]models.FriendEdge, error) {
	return s.getEdgesFn(ctx, ownerID)
}
func (s *friendRepoStub) EdgeExists(ctx context.Context, ownerID, friendID uint) (bool, error) {
	return s.edgeExistsFn(ctx, ownerID, friendID)
}
func (s *friendRepoStub) Accept(ctx context.Context, req *models.FriendRequest, recipientEdge, senderEdge *models.FriendEdge) error {
	return s.acceptFn(ctx, req, recipientEdge, senderEdge)
}
func (s *friendRepoStub) RemoveFriendship(ctx context.Context, userID, friendID uint) error {
	return s.removeFriendshipFn(ctx, userID, friendID)
}
func (s *friendRepoStub) SyncEdgeSnapshots(ctx context.Context, friendID uint, name, avatar string) error {
	return s.syncEdgeSnapshotsFn(ctx, friendID, name, avatar)
}
func (s *friendRepoStub) CreateRequest(ctx context.Context, req *models.FriendRequest) error {
	return s.createRequestFn(ctx, req)
}
func (s *friendRepoStub) GetRequest(ctx context.Context, recipientID, senderID uint) (*models.FriendRequest, error) {
	return s.getRequestFn(ctx, recipientID, senderID)
}
func (s *friendRepoStub) GetRequestsForRecipient(ctx context.Context, recipientID uint) ([]models.FriendRequest, error) {
	return s.getRequestsForRecipFn(ctx, recipientID)
}
func (s *friendRepoStub) DeleteRequest(ctx context.Context, recipientID, senderID uint) error {
	return s.deleteRequestFn(ctx, recipientID, senderID)
}

func noopFriendRepo() *friendRepoStub {
	return &friendRepoStub{
		acceptedFriendIDsFn: func(_ context.Context, _ uint) ([]uint, error) { return nil, nil },
		getEdgesFn:          func(_ context.Context, _ uint) ([]models.FriendEdge, error) { return nil, nil },
		edgeExistsFn:        func(_ context.Context, _, _ uint) (bool, error) { return false, nil },
		acceptFn: func(_ context.Context, _ *models.FriendRequest, _, _ *models.FriendEdge) error {
			return nil
		},
		removeFriendshipFn:  func(_ context.Context, _, _ uint) error { return nil },
		syncEdgeSnapshotsFn: func(_ context.Context, _ uint, _, _ string) error { return nil },
		createRequestFn:     func(_ context.Context, _ *models.FriendRequest) error { return nil },
		getRequestFn: func(_ context.Context, r, s uint) (*models.FriendRequest, error) {
			return &models.FriendRequest{RecipientID: r, SenderID: s}, nil
		},
		getRequestsForRecipFn: func(_ context.Context, _ uint) ([]models.FriendRequest, error) { return nil, nil },
		deleteRequestFn:       func(_ context.Context, _, _ uint) error { return nil },
	}
}

// userRepoStub is a stub for repository.UserRepository.
type userRepoStub struct {
	getByIDFn       func(context.Context, uint) (*models.User, error)
	getByIDsFn      func(context.Context, []uint) ([]models.User, error)
	getByEmailFn    func(context.Context, string) (*models.User, error)
	getByUsernameFn func(context.Context, string) (*models.User, error)
	getByNameFn     func(context.Context, string) (*models.User, error)
	createFn        func(context.Context, *models.User) error
	updateFn        func(context.Context, *models.User) error
	searchFn        func(context.Context, string, int) ([]models.User, error)
}

func (s *userRepoStub) GetByID(ctx context.Context, id uint) (*models.User, error) {
	return s.getByIDFn(ctx, id)
}
func (s *userRepoStub) GetByIDs(ctx context.Context, ids []uint) ([]models.User, error) {
	return s.getByIDsFn(ctx, ids)
}
func (s *userRepoStub) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return s.getByEmailFn(ctx, email)
}
func (s *userRepoStub) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	return s.getByUsernameFn(ctx, username)
}
func (s *userRepoStub) GetByName(ctx context.Context, name string) (*models.User, error) {
	return s.getByNameFn(ctx, name)
}
func (s *userRepoStub) Create(ctx context.Context, user *models.User) error {
	return s.createFn(ctx, user)
}
func (s *userRepoStub) Update(ctx context.Context, user *models.User) error {
	return s.updateFn(ctx, user)
}
func (s *userRepoStub) Search(ctx context.Context, query string, limit int) ([]models.User, error) {
	return s.searchFn(ctx, query, limit)
}

func noopUserRepo() *userRepoStub {
	return &userRepoStub{
		getByIDFn:       func(_ context.Context, id uint) (*models.User, error) { return &models.User{ID: id}, nil },
		getByIDsFn:      func(_ context.Context, _ []uint) ([]models.User, error) { return nil, nil },
		getByEmailFn:    func(_ context.Context, _ string) (*models.User, error) { return nil, nil },
		getByUsernameFn: func(_ context.Context, _ string) (*models.User, error) { return nil, nil },
		getByNameFn:     func(_ context.Context, _ string) (*models.User, error) { return nil, nil },
		createFn:        func(_ context.Context, _ *models.User) error { return nil },
		updateFn:        func(_ context.Context, _ *models.User) error { return nil },
		searchFn:        func(_ context.Context, _ string, _ int) ([]models.User, error) { return nil, nil },
	}
}

// questionRepoStub is a stub for repository.QuestionRepository.
type questionRepoStub struct {
	getByCategoryFn func(context.Context, string, int) ([]models.Question, error)
	getByIDsFn      func(context.Context, []uint) ([]models.Question, error)
	categoriesFn    func(context.Context) ([]string, error)
	createBatchFn   func(context.Context, []models.Question) error
}

func (s *questionRepoStub) GetByCategory(ctx context.Context, category string, limit int) ([]models.Question, error) {
	return s.getByCategoryFn(ctx, category, limit)
}
func (s *questionRepoStub) GetByIDs(ctx context.Context, ids []uint) ([]models.Question, error) {
	return s.getByIDsFn(ctx, ids)
}
func (s *questionRepoStub) Categories(ctx context.Context) ([]string, error) {
	return s.categoriesFn(ctx)
}
func (s *questionRepoStub) CreateBatch(ctx context.Context, questions []models.Question) error {
	return s.createBatchFn(ctx, questions)
}

func noopQuestionRepo() *questionRepoStub {
	return &questionRepoStub{
		getByCategoryFn: func(_ context.Context, _ string, _ int) ([]models.Question, error) { return nil, nil },
		getByIDsFn:      func(_ context.Context, _ []uint) ([]models.Question, error) { return nil, nil },
		categoriesFn:    func(_ context.Context) ([]string, error) { return nil, nil },
		createBatchFn:   func(_ context.Context, _ []models.Question) error { return nil },
	}
}

// leaderboardRepoStub is a stub for repository.LeaderboardRepository.
type leaderboardRepoStub struct {
	appendFn        func(context.Context, *models.LeaderboardEntry) error
	getByCategoryFn func(context.Context, string) ([]models.LeaderboardEntry, error)
	syncNamesFn     func(context.Context, uint, string, string) error
}

func (s *leaderboardRepoStub) Append(ctx context.Context, entry *models.LeaderboardEntry) error {
	return s.appendFn(ctx, entry)
}
func (s *leaderboardRepoStub) GetByCategory(ctx context.Context, category string) ([]models.LeaderboardEntry, error) {
	return s.getByCategoryFn(ctx, category)
}
func (s *leaderboardRepoStub) SyncNames(ctx context.Context, userID uint, name, avatar string) error {
	return s.syncNamesFn(ctx, userID, name, avatar)
}

func noopLeaderboardRepo() *leaderboardRepoStub {
	return &leaderboardRepoStub{
		appendFn:        func(_ context.Context, _ *models.LeaderboardEntry) error { return nil },
		getByCategoryFn: func(_ context.Context, _ string) ([]models.LeaderboardEntry, error) { return nil, nil },
		syncNamesFn:     func(_ context.Context, _ uint, _, _ string) error { return nil },
	}
}

// requireAppCode asserts err is an AppError with the given code.
func requireAppCode(t *testing.T, err error, code string) {
	t.Helper()
	var appErr *models.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, code, appErr.Code)
}
