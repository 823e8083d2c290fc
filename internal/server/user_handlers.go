package server

import (
	"io"

	"quizmate/internal/models"

	"github.com/gofiber/fiber/v2"
)

// GetMyProfile handles GET /api/users/me
func (s *Server) GetMyProfile(c *fiber.Ctx) error {
	userID := requesterID(c)

	user, err := s.userService.GetUser(c.Context(), userID)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(user)
}

// GetUserProfile handles GET /api/users/:id. It serves the cached profile
// card, not the full account record.
func (s *Server) GetUserProfile(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	card, err := s.feedService.ResolveProfile(c.Context(), id)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(card)
}

// SearchUsers handles GET /api/users/search?q=...
func (s *Server) SearchUsers(c *fiber.Ctx) error {
	q := c.Query("q")
	if q == "" {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Search query is required"))
	}

	page := parsePagination(c, 20)
	users, err := s.userService.SearchUsers(c.Context(), q, page.Limit)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(users)
}

// ChangeName handles PUT /api/users/me/name
func (s *Server) ChangeName(c *fiber.Ctx) error {
	userID := requesterID(c)

	var req struct {
		Name string `json:"name"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	user, err := s.userService.ChangeName(c.Context(), userID, req.Name)
	if err != nil {
		return respondServiceError(c, err)
	}

	s.publishFeedEvent(c.Context(), userID, EventProfileUpdated, map[string]interface{}{
		"user_id": user.ID,
		"name":    user.DisplayName(),
		"avatar":  user.Avatar(),
	})

	return c.JSON(user)
}

// ChangeAvatar handles PUT /api/users/me/avatar (multipart form, field "avatar")
func (s *Server) ChangeAvatar(c *fiber.Ctx) error {
	userID := requesterID(c)

	file, err := c.FormFile("avatar")
	if err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("No file uploaded"))
	}

	src, err := file.Open()
	if err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Unable to read uploaded file"))
	}
	defer func() { _ = src.Close() }()

	content, err := io.ReadAll(src)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Unable to read uploaded file"))
	}

	user, err := s.userService.ChangeAvatar(c.Context(), userID, content)
	if err != nil {
		return respondServiceError(c, err)
	}

	s.publishFeedEvent(c.Context(), userID, EventProfileUpdated, map[string]interface{}{
		"user_id": user.ID,
		"name":    user.DisplayName(),
		"avatar":  user.Avatar(),
	})

	return c.JSON(user)
}

// ChangePassword handles PUT /api/users/me/password
func (s *Server) ChangePassword(c *fiber.Ctx) error {
	userID := requesterID(c)

	var req struct {
		CurrentPassword string `json:"current_password"`
		NewPassword     string `json:"new_password"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	if err := s.userService.ChangePassword(c.Context(), userID, tokenIssuedAt(c), req.CurrentPassword, req.NewPassword); err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(fiber.Map{"status": "password changed"})
}
