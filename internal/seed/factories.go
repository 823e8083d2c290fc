// Package seed provides helpers to create demo data for the application
// database. These helpers are intended for development and testing only.
package seed

import (
	"fmt"
	"math/rand"
	"time"

	"quizmate/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Factory builds domain entities and persists them to the database. It is a
// thin helper used by the seeder and by tests.
type Factory struct {
	db   *gorm.DB
	rng  *rand.Rand
	opts Options
}

// NewFactory creates a Factory bound to the provided Gorm DB.
func NewFactory(db *gorm.DB, opts Options) *Factory {
	source := opts.RandomSeed
	if source == 0 {
		source = time.Now().UnixNano()
	}
	gofakeit.Seed(source)
	return &Factory{db: db, rng: rand.New(rand.NewSource(source)), opts: opts}
}

// CreateUser constructs and persists a sample user. All seed users share
// the password "password123". Optional override functions may modify the
// generated user before saving.
func (f *Factory) CreateUser(overrides ...func(*models.User)) (*models.User, error) {
	user := &models.User{
		Username:  gofakeit.Username() + fmt.Sprintf("%d", gofakeit.Number(100, 999)),
		Email:     gofakeit.Email(),
		Name:      gofakeit.Name(),
		AvatarURL: fmt.Sprintf("https://i.pravatar.cc/150?u=%s", gofakeit.UUID()),
	}

	if f.opts.SkipBcrypt {
		user.Password = "password123"
	} else {
		hashed, _ := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
		user.Password = string(hashed)
	}

	for _, override := range overrides {
		override(user)
	}

	if err := f.db.Create(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}

// Befriend materializes an accepted friendship between a and b: two edges,
// each snapshotting the other side's name and avatar.
func (f *Factory) Befriend(a, b *models.User) error {
	edges := []models.FriendEdge{
		{OwnerID: a.ID, FriendID: b.ID, NameSnapshot: b.DisplayName(), AvatarSnapshot: b.Avatar(), Status: models.FriendEdgeAccepted},
		{OwnerID: b.ID, FriendID: a.ID, NameSnapshot: a.DisplayName(), AvatarSnapshot: a.Avatar(), Status: models.FriendEdgeAccepted},
	}
	return f.db.Create(&edges).Error
}

// BuildPost constructs a feed post for the given author without persisting
// it. Roughly a third of generated posts carry an image attachment.
func (f *Factory) BuildPost(author *models.User, overrides ...func(*models.Post)) *models.Post {
	post := &models.Post{
		AuthorID: author.ID,
		Text:     gofakeit.Sentence(f.rng.Intn(12) + 4),
	}

	if f.rng.Intn(3) == 0 {
		post.MediaURL = fmt.Sprintf("https://picsum.photos/seed/%s/800/800", gofakeit.UUID())
		post.MediaKind = models.MediaKindImage
	}

	maxDays := f.opts.MaxDays
	if maxDays <= 0 {
		maxDays = 30
	}
	post.CreatedAt = time.Now().
		Add(-time.Duration(f.rng.Intn(maxDays)) * 24 * time.Hour).
		Add(-time.Duration(f.rng.Intn(24*60)) * time.Minute)

	for _, override := range overrides {
		override(post)
	}
	return post
}

// CreatePostsBatch persists multiple posts in a single DB call.
func (f *Factory) CreatePostsBatch(posts []*models.Post) error {
	if len(posts) == 0 {
		return nil
	}
	return f.db.Create(&posts).Error
}

// CreateComment persists a short generated comment by the given author.
func (f *Factory) CreateComment(author *models.User, post *models.Post) (*models.Comment, error) {
	comment := &models.Comment{
		PostID:   post.ID,
		AuthorID: author.ID,
		Text:     gofakeit.Sentence(f.rng.Intn(8) + 2),
	}
	if err := f.db.Create(comment).Error; err != nil {
		return nil, err
	}
	return comment, nil
}

// CreateLike persists a like by the given user. Duplicate likes for the same
// (user, post) pair violate the unique index and are reported as errors.
func (f *Factory) CreateLike(user *models.User, post *models.Post) error {
	return f.db.Create(&models.Like{UserID: user.ID, PostID: post.ID}).Error
}

// CreateQuizAttempt grades a random answer sheet for the user against the
// category's questions and appends the resulting leaderboard entry.
func (f *Factory) CreateQuizAttempt(user *models.User, category string, questions []models.Question) (*models.LeaderboardEntry, error) {
	if len(questions) == 0 {
		return nil, fmt.Errorf("no questions in category %q", category)
	}

	correct := 0
	for range questions {
		// Seed players answer correctly about 60% of the time.
		if f.rng.Intn(10) < 6 {
			correct++
		}
	}

	duration := time.Duration(f.rng.Intn(240)+30) * time.Second
	end := time.Now().Add(-time.Duration(f.rng.Intn(14*24)) * time.Hour)

	entry := &models.LeaderboardEntry{
		UserID:         user.ID,
		Name:           user.DisplayName(),
		AvatarSnapshot: user.Avatar(),
		Category:       category,
		Score:          float64(correct) / float64(len(questions)) * 100,
		RawScore:       correct,
		TotalQuestions: len(questions),
		StartTime:      end.Add(-duration),
		EndTime:        end,
	}
	if err := f.db.Create(entry).Error; err != nil {
		return nil, err
	}
	return entry, nil
}
