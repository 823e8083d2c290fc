package server

import (
	"errors"
	"time"

	"quizmate/internal/models"

	"github.com/gofiber/fiber/v2"
)

// errResponseWritten is a sentinel indicating the HTTP response was already
// committed by a helper.  Handlers must return nil (not this error) to avoid
// Fiber's ErrorHandler overwriting the response.
var errResponseWritten = errors.New("response already written")

// Pagination holds parsed limit/offset query parameters.
type Pagination struct {
	Limit  int
	Offset int
}

const (
	maxPaginationLimit = 100
)

// parsePagination extracts limit and offset query parameters with the given default limit.
func parsePagination(c *fiber.Ctx, defaultLimit int) Pagination {
	limit := c.QueryInt("limit", defaultLimit)
	if limit <= 0 {
		limit = defaultLimit
	}
	if limit > maxPaginationLimit {
		limit = maxPaginationLimit
	}

	offset := c.QueryInt("offset", 0)
	if offset < 0 {
		offset = 0
	}

	return Pagination{
		Limit:  limit,
		Offset: offset,
	}
}

// parseID extracts a route parameter by name as a positive uint.
// On failure it writes a 400 JSON response and returns errResponseWritten.
// Callers should check: if err != nil { return nil }
func (s *Server) parseID(c *fiber.Ctx, param string) (uint, error) {
	id, err := c.ParamsInt(param)
	if err != nil || id <= 0 {
		_ = models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid "+humanizeParam(param)))
		return 0, errResponseWritten
	}
	return uint(id), nil
}

// humanizeParam converts a route param name into a human-readable label.
// Examples: "id" -> "ID", "userId" -> "user ID".
func humanizeParam(param string) string {
	switch param {
	case "id":
		return "ID"
	case "userId":
		return "user ID"
	default:
		return param
	}
}

// requesterID returns the authenticated user id stored by the auth middleware.
func requesterID(c *fiber.Ctx) uint {
	return c.Locals("userID").(uint)
}

// tokenIssuedAt returns the bearer token's issue time stored by the auth
// middleware. Zero when the token carries no iat claim.
func tokenIssuedAt(c *fiber.Ctx) time.Time {
	if ts, ok := c.Locals("tokenIssuedAt").(time.Time); ok {
		return ts
	}
	return time.Time{}
}

// respondServiceError maps a service AppError code to the matching HTTP
// status. Unknown errors become plain 500s.
func respondServiceError(c *fiber.Ctx, err error) error {
	var appErr *models.AppError
	if !errors.As(err, &appErr) {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}

	status := fiber.StatusInternalServerError
	switch appErr.Code {
	case models.CodeNotFound:
		status = fiber.StatusNotFound
	case models.CodeValidation, models.CodeWeakPassword:
		status = fiber.StatusBadRequest
	case models.CodeUnauthorized, models.CodeInvalidCredential, models.CodeRecentLoginNeeded:
		status = fiber.StatusUnauthorized
	case models.CodeEmailInUse, models.CodeNameTaken:
		status = fiber.StatusConflict
	}
	return models.RespondWithError(c, status, appErr)
}
