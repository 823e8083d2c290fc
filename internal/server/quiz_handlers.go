package server

import (
	"time"

	"quizmate/internal/models"
	"quizmate/internal/service"

	"github.com/gofiber/fiber/v2"
)

// GetCategories handles GET /api/quiz/categories
func (s *Server) GetCategories(c *fiber.Ctx) error {
	categories, err := s.quizService.Categories(c.Context())
	if err != nil {
		return respondServiceError(c, err)
	}
	if categories == nil {
		categories = []string{}
	}
	return c.JSON(categories)
}

// StartQuiz handles GET /api/quiz/:category. Questions come shuffled and
// without their answers; grading happens on submit.
func (s *Server) StartQuiz(c *fiber.Ctx) error {
	category := c.Params("category")
	count := c.QueryInt("count", service.DefaultQuizSize)

	questions, err := s.quizService.StartQuiz(c.Context(), category, count)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(questions)
}

// SubmitQuiz handles POST /api/quiz/:category/submit
func (s *Server) SubmitQuiz(c *fiber.Ctx) error {
	userID := requesterID(c)
	category := c.Params("category")

	var req struct {
		Answers   map[uint]string `json:"answers"`
		StartTime time.Time       `json:"start_time"`
		EndTime   time.Time       `json:"end_time"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	result, err := s.quizService.SubmitQuiz(c.Context(), service.SubmitQuizInput{
		UserID:    userID,
		Category:  category,
		Answers:   req.Answers,
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
	})
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(result)
}

// GetLeaderboard handles GET /api/leaderboards/:category. Rankings are
// best-score-per-user with ties broken by shorter duration.
func (s *Server) GetLeaderboard(c *fiber.Ctx) error {
	category := c.Params("category")

	entries, err := s.quizService.Leaderboard(c.Context(), category)
	if err != nil {
		return respondServiceError(c, err)
	}
	if entries == nil {
		entries = []models.LeaderboardEntry{}
	}
	return c.JSON(entries)
}
