package seed

import (
	"fmt"
	"log"

	"quizmate/internal/models"

	"gorm.io/gorm"
)

// Options configures a seeding run.
type Options struct {
	NumUsers    int
	NumPosts    int
	ShouldClean bool
	SkipBcrypt  bool
	// MaxDays spreads generated post timestamps over this many days back.
	MaxDays int
	// RandomSeed fixes the generator for reproducible runs; 0 means random.
	RandomSeed int64
}

// Seed populates the database with demo users, friendships, posts, quiz
// questions, and leaderboard history.
func Seed(db *gorm.DB, opts Options) error {
	log.Printf("🌱 Starting database seeding with %d users and %d posts...", opts.NumUsers, opts.NumPosts)

	if opts.ShouldClean {
		if err := clearData(db); err != nil {
			log.Println("⚠️  Warning: could not clear all existing data, continuing anyway...")
		}
	}

	f := NewFactory(db, opts)

	users, err := createUsers(f, opts.NumUsers)
	if err != nil {
		return fmt.Errorf("failed to create users: %w", err)
	}
	log.Printf("✓ %d users created", len(users))

	edges, err := createFriendMesh(f, users)
	if err != nil {
		return fmt.Errorf("failed to create friendships: %w", err)
	}
	log.Printf("✓ %d friendships created", edges)

	posts, err := createPosts(f, users, opts.NumPosts)
	if err != nil {
		return fmt.Errorf("failed to create posts: %w", err)
	}
	log.Printf("✓ %d posts created", len(posts))

	if err := createEngagement(f, users, posts); err != nil {
		return fmt.Errorf("failed to create likes and comments: %w", err)
	}
	log.Println("✓ likes and comments created")

	questions, err := EnsureQuestionBank(db)
	if err != nil {
		return fmt.Errorf("failed to load question bank: %w", err)
	}
	log.Printf("✓ question bank ready (%d questions)", questions)

	if err := createQuizHistory(f, db, users); err != nil {
		return fmt.Errorf("failed to create quiz history: %w", err)
	}
	log.Println("✓ leaderboard history created")

	log.Println("🎉 Database seeding completed successfully!")
	log.Println("📧 All seed users have the password: password123")
	return nil
}

func clearData(db *gorm.DB) error {
	log.Println("🗑️  Clearing existing data...")
	sql := `TRUNCATE TABLE comments, likes, posts, friend_edges, friend_requests, leaderboard_entries, users RESTART IDENTITY CASCADE;`
	return db.Exec(sql).Error
}

func createUsers(f *Factory, count int) ([]*models.User, error) {
	if count <= 0 {
		count = 20
	}
	users := make([]*models.User, 0, count)
	for i := 0; i < count; i++ {
		user, err := f.CreateUser()
		if err != nil {
			return nil, err
		}
		users = append(users, user)
	}
	return users, nil
}

// createFriendMesh links each user with a handful of others so every seeded
// feed has something in it.
func createFriendMesh(f *Factory, users []*models.User) (int, error) {
	if len(users) < 2 {
		return 0, nil
	}

	linked := make(map[[2]uint]bool)
	created := 0
	for _, user := range users {
		wanted := f.rng.Intn(4) + 2
		for j := 0; j < wanted; j++ {
			other := users[f.rng.Intn(len(users))]
			if other.ID == user.ID {
				continue
			}
			key := [2]uint{user.ID, other.ID}
			if user.ID > other.ID {
				key = [2]uint{other.ID, user.ID}
			}
			if linked[key] {
				continue
			}
			if err := f.Befriend(user, other); err != nil {
				return created, err
			}
			linked[key] = true
			created++
		}
	}
	return created, nil
}

func createPosts(f *Factory, users []*models.User, count int) ([]*models.Post, error) {
	if count <= 0 {
		count = 100
	}
	posts := make([]*models.Post, 0, count)
	for i := 0; i < count; i++ {
		author := users[f.rng.Intn(len(users))]
		posts = append(posts, f.BuildPost(author))
	}
	if err := f.CreatePostsBatch(posts); err != nil {
		return nil, err
	}
	return posts, nil
}

func createEngagement(f *Factory, users []*models.User, posts []*models.Post) error {
	for _, post := range posts {
		likers := f.rng.Intn(len(users)/2 + 1)
		seen := make(map[uint]bool, likers)
		for i := 0; i < likers; i++ {
			user := users[f.rng.Intn(len(users))]
			if seen[user.ID] {
				continue
			}
			seen[user.ID] = true
			if err := f.CreateLike(user, post); err != nil {
				return err
			}
		}

		for i := 0; i < f.rng.Intn(4); i++ {
			author := users[f.rng.Intn(len(users))]
			if _, err := f.CreateComment(author, post); err != nil {
				return err
			}
		}
	}
	return nil
}

func createQuizHistory(f *Factory, db *gorm.DB, users []*models.User) error {
	var categories []string
	if err := db.Model(&models.Question{}).Distinct("category").Pluck("category", &categories).Error; err != nil {
		return err
	}

	for _, category := range categories {
		var questions []models.Question
		if err := db.Where("category = ?", category).Find(&questions).Error; err != nil {
			return err
		}
		for _, user := range users {
			attempts := f.rng.Intn(3)
			for i := 0; i < attempts; i++ {
				if _, err := f.CreateQuizAttempt(user, category, questions); err != nil {
					return err
				}
			}
		}
	}
	return nil
}
