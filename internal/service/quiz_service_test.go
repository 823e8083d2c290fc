package service

import (
	"context"
	"testing"
	"time"

	"quizmate/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func questionBank(t *testing.T, category string, n int) []models.Question {
	t.Helper()
	questions := make([]models.Question, 0, n)
	for i := 1; i <= n; i++ {
		q := models.Question{
			ID:       uint(i),
			Category: category,
			Text:     "question",
			Answer:   "right",
		}
		require.NoError(t, q.SetOptions([]string{"right", "wrong", "also wrong", "nope"}))
		questions = append(questions, q)
	}
	return questions
}

func newQuizService(questionRepo *questionRepoStub, lbRepo *leaderboardRepoStub, userRepo *userRepoStub) *QuizService {
	svc := NewQuizService(questionRepo, lbRepo, userRepo)
	// Deterministic order for tests.
	svc.shuffle = func(_ int, _ func(i, j int)) {}
	return svc
}

func TestQuizService_StartQuiz_StripsAnswers(t *testing.T) {
	questionRepo := noopQuestionRepo()
	questionRepo.getByCategoryFn = func(_ context.Context, category string, _ int) ([]models.Question, error) {
		return questionBank(t, category, 20), nil
	}
	svc := newQuizService(questionRepo, noopLeaderboardRepo(), noopUserRepo())

	served, err := svc.StartQuiz(context.Background(), "science", 10)
	require.NoError(t, err)
	assert.Len(t, served, 10)
	for _, q := range served {
		assert.Len(t, q.Options, 4)
		assert.NotEmpty(t, q.Text)
	}
}

func TestQuizService_StartQuiz_EmptyCategory(t *testing.T) {
	svc := newQuizService(noopQuestionRepo(), noopLeaderboardRepo(), noopUserRepo())

	_, err := svc.StartQuiz(context.Background(), "ghosts", 10)
	requireAppCode(t, err, models.CodeNotFound)

	_, err = svc.StartQuiz(context.Background(), "  ", 10)
	requireAppCode(t, err, models.CodeValidation)
}

func TestQuizService_SubmitQuiz_Grading(t *testing.T) {
	bank := questionBank(t, "science", 10)
	questionRepo := noopQuestionRepo()
	questionRepo.getByIDsFn = func(_ context.Context, _ []uint) ([]models.Question, error) {
		return bank, nil
	}

	var appended *models.LeaderboardEntry
	lbRepo := noopLeaderboardRepo()
	lbRepo.appendFn = func(_ context.Context, e *models.LeaderboardEntry) error {
		appended = e
		return nil
	}
	userRepo := noopUserRepo()
	userRepo.getByIDFn = func(_ context.Context, id uint) (*models.User, error) {
		return &models.User{ID: id, Name: "Ada"}, nil
	}
	svc := newQuizService(questionRepo, lbRepo, userRepo)

	answers := make(map[uint]string, 10)
	for i := uint(1); i <= 10; i++ {
		if i <= 7 {
			answers[i] = "right"
		} else {
			answers[i] = "wrong"
		}
	}

	start := time.Now().Add(-time.Minute)
	result, err := svc.SubmitQuiz(context.Background(), SubmitQuizInput{
		UserID:    1,
		Category:  "science",
		Answers:   answers,
		StartTime: start,
		EndTime:   time.Now(),
	})
	require.NoError(t, err)
	assert.Equal(t, 7, result.RawScore)
	assert.Equal(t, 10, result.TotalQuestions)
	assert.InDelta(t, 70.0, result.Score, 0.001)

	require.NotNil(t, appended)
	assert.Equal(t, "Ada", appended.Name)
	assert.InDelta(t, 70.0, appended.Score, 0.001)
}

func TestQuizService_SubmitQuiz_Rejections(t *testing.T) {
	svc := newQuizService(noopQuestionRepo(), noopLeaderboardRepo(), noopUserRepo())
	now := time.Now()

	_, err := svc.SubmitQuiz(context.Background(), SubmitQuizInput{UserID: 1, Category: "science", StartTime: now, EndTime: now})
	requireAppCode(t, err, models.CodeValidation)

	_, err = svc.SubmitQuiz(context.Background(), SubmitQuizInput{
		UserID: 1, Category: "science",
		Answers:   map[uint]string{1: "right"},
		StartTime: now, EndTime: now.Add(-time.Minute),
	})
	requireAppCode(t, err, models.CodeValidation)

	_, err = svc.SubmitQuiz(context.Background(), SubmitQuizInput{
		UserID: 0, Category: "science",
		Answers:   map[uint]string{1: "right"},
		StartTime: now, EndTime: now,
	})
	requireAppCode(t, err, models.CodeUnauthorized)
}

func TestQuizService_Leaderboard_BestPerUser(t *testing.T) {
	start := time.Now().Add(-time.Hour)
	entry := func(id, userID uint, score float64, duration time.Duration) models.LeaderboardEntry {
		return models.LeaderboardEntry{
			ID: id, UserID: userID, Category: "science",
			Score: score, StartTime: start, EndTime: start.Add(duration),
		}
	}

	lbRepo := noopLeaderboardRepo()
	lbRepo.getByCategoryFn = func(_ context.Context, _ string) ([]models.LeaderboardEntry, error) {
		return []models.LeaderboardEntry{
			entry(1, 1, 60, 40*time.Second),
			entry(2, 1, 90, 50*time.Second), // alice's best
			entry(3, 2, 90, 30*time.Second), // bob ties alice but was faster
			entry(4, 3, 40, 20*time.Second),
		}, nil
	}
	svc := newQuizService(noopQuestionRepo(), lbRepo, noopUserRepo())

	ranked, err := svc.Leaderboard(context.Background(), "science")
	require.NoError(t, err)
	require.Len(t, ranked, 3, "one entry per user")

	assert.Equal(t, uint(2), ranked[0].UserID, "equal score, shorter duration ranks first")
	assert.Equal(t, uint(1), ranked[1].UserID)
	assert.Equal(t, uint(3), ranked[2].UserID)
}

func TestQuizService_Leaderboard_EmptyCategory(t *testing.T) {
	svc := newQuizService(noopQuestionRepo(), noopLeaderboardRepo(), noopUserRepo())

	ranked, err := svc.Leaderboard(context.Background(), "science")
	require.NoError(t, err)
	assert.Empty(t, ranked)

	_, err = svc.Leaderboard(context.Background(), "")
	requireAppCode(t, err, models.CodeValidation)
}
