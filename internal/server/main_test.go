package server

import (
	"testing"
	"time"

	"quizmate/internal/config"
	"quizmate/internal/database"
	"quizmate/internal/media"
	"quizmate/internal/models"
	"quizmate/internal/notifications"
	"quizmate/internal/repository"
	"quizmate/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestServer builds a Server on a fresh in-memory database with the
// in-memory media host and no Redis.
func newTestServer(t *testing.T) *Server {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	// One connection so the in-memory database is shared across queries.
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(database.Models()...))

	cfg := &config.Config{
		JWTSecret:            "test-secret-key-for-handler-tests",
		Port:                 "0",
		MaxVideoSizeMB:       1,
		RecentLoginWindowMin: 30,
	}

	host := media.NewMemoryHost()

	userRepo := repository.NewUserRepository(db)
	postRepo := repository.NewPostRepository(db)
	commentRepo := repository.NewCommentRepository(db)
	friendRepo := repository.NewFriendRepository(db)
	questionRepo := repository.NewQuestionRepository(db)
	leaderboardRepo := repository.NewLeaderboardRepository(db)

	s := &Server{
		config:          cfg,
		db:              db,
		userRepo:        userRepo,
		postRepo:        postRepo,
		commentRepo:     commentRepo,
		friendRepo:      friendRepo,
		questionRepo:    questionRepo,
		leaderboardRepo: leaderboardRepo,
		mediaHost:       host,
		hub:             notifications.NewHub(),
	}
	s.userService = service.NewUserService(userRepo, friendRepo, leaderboardRepo, host, cfg.RecentLoginWindow())
	s.postService = service.NewPostService(postRepo, commentRepo, friendRepo, host, cfg.MaxVideoSizeBytes())
	s.friendService = service.NewFriendService(friendRepo, userRepo)
	s.feedService = service.NewFeedService(postRepo, friendRepo, userRepo)
	s.quizService = service.NewQuizService(questionRepo, leaderboardRepo, userRepo)

	return s
}

// asUser returns middleware that injects the given user id the way the auth
// middleware would after validating a freshly minted token.
func asUser(userID uint) fiber.Handler {
	return asUserAt(userID, time.Now())
}

// asUserAt is asUser with an explicit token issue time.
func asUserAt(userID uint, issuedAt time.Time) fiber.Handler {
	return func(c *fiber.Ctx) error {
		c.Locals("userID", userID)
		c.Locals("tokenIssuedAt", issuedAt)
		return c.Next()
	}
}

// seedTestUser inserts a user with a known password ("password123").
func seedTestUser(t *testing.T, s *Server, username, email, name string) *models.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	require.NoError(t, err)

	user := &models.User{
		Username: username,
		Email:    email,
		Password: string(hash),
		Name:     name,
	}
	require.NoError(t, s.db.Create(user).Error)
	return user
}

// befriend materializes an accepted friendship between two users directly.
func befriend(t *testing.T, s *Server, a, b *models.User) {
	t.Helper()

	edges := []models.FriendEdge{
		{OwnerID: a.ID, FriendID: b.ID, NameSnapshot: b.DisplayName(), AvatarSnapshot: b.Avatar(), Status: models.FriendEdgeAccepted},
		{OwnerID: b.ID, FriendID: a.ID, NameSnapshot: a.DisplayName(), AvatarSnapshot: a.Avatar(), Status: models.FriendEdgeAccepted},
	}
	require.NoError(t, s.db.Create(&edges).Error)
}
