package service

import (
	"context"
	"math/rand"
	"sort"
	"strings"
	"time"

	"quizmate/internal/models"
	"quizmate/internal/repository"
)

// DefaultQuizSize is how many questions a round serves when the client does
// not ask for a specific count.
const DefaultQuizSize = 10

// QuizQuestion is a question as served to a player: options only, never the
// answer.
type QuizQuestion struct {
	ID       uint     `json:"id"`
	Category string   `json:"category"`
	Text     string   `json:"question"`
	Options  []string `json:"options"`
}

// QuizResult is the graded outcome of a submitted round.
type QuizResult struct {
	Category       string  `json:"category"`
	Score          float64 `json:"score"`
	RawScore       int     `json:"raw_score"`
	TotalQuestions int     `json:"total_questions"`
}

// SubmitQuizInput carries a player's answers keyed by question id.
type SubmitQuizInput struct {
	UserID    uint
	Category  string
	Answers   map[uint]string
	StartTime time.Time
	EndTime   time.Time
}

// QuizService serves quiz rounds and grades submissions. Grading happens
// here, server-side; the correct answers never reach the client.
type QuizService struct {
	questionRepo    repository.QuestionRepository
	leaderboardRepo repository.LeaderboardRepository
	userRepo        repository.UserRepository
	shuffle         func(n int, swap func(i, j int))
}

// NewQuizService creates a new quiz service.
func NewQuizService(
	questionRepo repository.QuestionRepository,
	leaderboardRepo repository.LeaderboardRepository,
	userRepo repository.UserRepository,
) *QuizService {
	return &QuizService{
		questionRepo:    questionRepo,
		leaderboardRepo: leaderboardRepo,
		userRepo:        userRepo,
		shuffle:         rand.Shuffle,
	}
}

// Categories lists the categories with at least one question.
func (s *QuizService) Categories(ctx context.Context) ([]string, error) {
	return s.questionRepo.Categories(ctx)
}

// StartQuiz returns up to count questions from a category in a shuffled
// order, stripped of their answers.
func (s *QuizService) StartQuiz(ctx context.Context, category string, count int) ([]QuizQuestion, error) {
	category = strings.TrimSpace(category)
	if category == "" {
		return nil, models.NewValidationError("Category is required")
	}
	if count <= 0 || count > 50 {
		count = DefaultQuizSize
	}

	questions, err := s.questionRepo.GetByCategory(ctx, category, 100)
	if err != nil {
		return nil, err
	}
	if len(questions) == 0 {
		return nil, models.NewNotFoundError("Category", category)
	}

	s.shuffle(len(questions), func(i, j int) {
		questions[i], questions[j] = questions[j], questions[i]
	})
	if len(questions) > count {
		questions = questions[:count]
	}

	served := make([]QuizQuestion, 0, len(questions))
	for _, q := range questions {
		served = append(served, QuizQuestion{
			ID:       q.ID,
			Category: q.Category,
			Text:     q.Text,
			Options:  q.Options(),
		})
	}
	return served, nil
}

// SubmitQuiz grades a round against the stored answers and appends the
// result to the leaderboard log. Unanswered questions count as wrong;
// answers for questions outside the round are ignored.
func (s *QuizService) SubmitQuiz(ctx context.Context, in SubmitQuizInput) (*QuizResult, error) {
	if in.UserID == 0 {
		return nil, models.NewUnauthorizedError("Authentication required")
	}
	if len(in.Answers) == 0 {
		return nil, models.NewValidationError("No answers submitted")
	}
	if in.EndTime.Before(in.StartTime) {
		return nil, models.NewValidationError("Quiz end time precedes start time")
	}

	ids := make([]uint, 0, len(in.Answers))
	for id := range in.Answers {
		ids = append(ids, id)
	}
	questions, err := s.questionRepo.GetByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	if len(questions) == 0 {
		return nil, models.NewValidationError("Submitted answers match no questions")
	}

	correct := 0
	total := 0
	for _, q := range questions {
		if q.Category != in.Category {
			continue
		}
		total++
		if answer, ok := in.Answers[q.ID]; ok && answer == q.Answer {
			correct++
		}
	}
	if total == 0 {
		return nil, models.NewValidationError("Submitted answers match no questions in this category")
	}

	score := float64(correct) / float64(total) * 100

	user, err := s.userRepo.GetByID(ctx, in.UserID)
	if err != nil {
		return nil, err
	}

	entry := &models.LeaderboardEntry{
		UserID:         in.UserID,
		Name:           user.DisplayName(),
		AvatarSnapshot: user.Avatar(),
		Category:       in.Category,
		Score:          score,
		RawScore:       correct,
		TotalQuestions: total,
		StartTime:      in.StartTime,
		EndTime:        in.EndTime,
	}
	if err := s.leaderboardRepo.Append(ctx, entry); err != nil {
		return nil, err
	}

	return &QuizResult{
		Category:       in.Category,
		Score:          score,
		RawScore:       correct,
		TotalQuestions: total,
	}, nil
}

// Leaderboard reduces a category's result log to each player's best attempt
// and ranks them: higher score first, ties broken by shorter duration.
func (s *QuizService) Leaderboard(ctx context.Context, category string) ([]models.LeaderboardEntry, error) {
	category = strings.TrimSpace(category)
	if category == "" {
		return nil, models.NewValidationError("Category is required")
	}

	entries, err := s.leaderboardRepo.GetByCategory(ctx, category)
	if err != nil {
		return nil, err
	}

	best := make(map[uint]models.LeaderboardEntry, len(entries))
	for _, e := range entries {
		current, ok := best[e.UserID]
		if !ok || betterEntry(e, current) {
			best[e.UserID] = e
		}
	}

	ranked := make([]models.LeaderboardEntry, 0, len(best))
	for _, e := range best {
		ranked = append(ranked, e)
	}
	sort.Slice(ranked, func(i, j int) bool {
		return betterEntry(ranked[i], ranked[j])
	})
	return ranked, nil
}

// betterEntry reports whether a ranks above b: higher score wins, then the
// shorter duration, then the newer attempt for a stable order.
func betterEntry(a, b models.LeaderboardEntry) bool {
	if a.Score != b.Score {
		return a.Score > b.Score
	}
	if a.Duration() != b.Duration() {
		return a.Duration() < b.Duration()
	}
	return a.ID > b.ID
}
