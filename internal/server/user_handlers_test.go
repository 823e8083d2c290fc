package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"quizmate/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func jsonReq(t *testing.T, app *fiber.App, method, path string, body any) *http.Response {
	t.Helper()

	payload, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(method, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	return resp
}

func newUserApp(s *Server, userID uint) *fiber.App {
	app := fiber.New()
	app.Use(asUser(userID))
	app.Get("/users/me", s.GetMyProfile)
	app.Put("/users/me/name", s.ChangeName)
	app.Put("/users/me/password", s.ChangePassword)
	app.Get("/users/search", s.SearchUsers)
	app.Get("/users/:id", s.GetUserProfile)
	return app
}

func TestGetMyProfile_OmitsPasswordHash(t *testing.T) {
	s := newTestServer(t)
	user := seedTestUser(t, s, "me", "me@example.com", "Me")
	app := newUserApp(s, user.ID)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/users/me", nil))
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var raw map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&raw))
	assert.Equal(t, "me", raw["username"])
	assert.NotContains(t, raw, "password")
}

func TestGetUserProfile_ServesCardNotAccount(t *testing.T) {
	s := newTestServer(t)
	viewer := seedTestUser(t, s, "viewer", "viewer@example.com", "Viewer")
	target := seedTestUser(t, s, "target", "target@example.com", "Target")
	app := newUserApp(s, viewer.ID)

	resp := doReq(t, app, http.MethodGet, "/users/2")
	defer func() { _ = resp.Body.Close() }()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var raw map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&raw))
	assert.Equal(t, float64(target.ID), raw["id"])
	assert.Equal(t, "Target", raw["name"])
	assert.NotContains(t, raw, "email")
}

func TestGetUserProfile_BadIDIs400(t *testing.T) {
	s := newTestServer(t)
	viewer := seedTestUser(t, s, "viewer", "viewer@example.com", "Viewer")
	app := newUserApp(s, viewer.ID)

	resp := doReq(t, app, http.MethodGet, "/users/abc")
	defer func() { _ = resp.Body.Close() }()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestSearchUsers_RequiresQuery(t *testing.T) {
	s := newTestServer(t)
	user := seedTestUser(t, s, "me", "me@example.com", "Me")
	app := newUserApp(s, user.ID)

	resp := doReq(t, app, http.MethodGet, "/users/search")
	defer func() { _ = resp.Body.Close() }()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestSearchUsers_MatchesFragment(t *testing.T) {
	s := newTestServer(t)
	user := seedTestUser(t, s, "me", "me@example.com", "Me")
	seedTestUser(t, s, "quizwhiz", "whiz@example.com", "Quiz Whiz")
	app := newUserApp(s, user.ID)

	resp := doReq(t, app, http.MethodGet, "/users/search?q=whiz")
	defer func() { _ = resp.Body.Close() }()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var users []models.User
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&users))
	require.Len(t, users, 1)
	assert.Equal(t, "quizwhiz", users[0].Username)
}

func TestChangeName_ResyncsFriendEdgeSnapshots(t *testing.T) {
	s := newTestServer(t)
	user := seedTestUser(t, s, "me", "me@example.com", "Me")
	friend := seedTestUser(t, s, "pal", "pal@example.com", "Pal")
	befriend(t, s, user, friend)
	app := newUserApp(s, user.ID)

	resp := jsonReq(t, app, http.MethodPut, "/users/me/name", fiber.Map{"name": "Renamed"})
	defer func() { _ = resp.Body.Close() }()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var edge models.FriendEdge
	require.NoError(t, s.db.Where("owner_id = ? AND friend_id = ?", friend.ID, user.ID).First(&edge).Error)
	assert.Equal(t, "Renamed", edge.NameSnapshot)
}

func TestChangeName_TakenNameIs409(t *testing.T) {
	s := newTestServer(t)
	user := seedTestUser(t, s, "me", "me@example.com", "Me")
	seedTestUser(t, s, "other", "other@example.com", "Taken")
	app := newUserApp(s, user.ID)

	resp := jsonReq(t, app, http.MethodPut, "/users/me/name", fiber.Map{"name": "Taken"})
	defer func() { _ = resp.Body.Close() }()
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
}

func TestChangePassword_WrongCurrentIs401(t *testing.T) {
	s := newTestServer(t)
	user := seedTestUser(t, s, "me", "me@example.com", "Me")
	app := newUserApp(s, user.ID)

	resp := jsonReq(t, app, http.MethodPut, "/users/me/password", fiber.Map{
		"current_password": "not-my-password",
		"new_password":     "NewSecret123",
	})
	defer func() { _ = resp.Body.Close() }()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestChangePassword_StaleTokenIs401(t *testing.T) {
	s := newTestServer(t)
	user := seedTestUser(t, s, "me", "me@example.com", "Me")

	app := fiber.New()
	app.Use(asUserAt(user.ID, time.Now().Add(-2*time.Hour)))
	app.Put("/users/me/password", s.ChangePassword)

	resp := jsonReq(t, app, http.MethodPut, "/users/me/password", fiber.Map{
		"current_password": "password123",
		"new_password":     "NewSecret123",
	})
	defer func() { _ = resp.Body.Close() }()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	var body map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, models.CodeRecentLoginNeeded, body["code"])
}

func TestChangePassword_HappyPath(t *testing.T) {
	s := newTestServer(t)
	user := seedTestUser(t, s, "me", "me@example.com", "Me")
	app := newUserApp(s, user.ID)

	resp := jsonReq(t, app, http.MethodPut, "/users/me/password", fiber.Map{
		"current_password": "password123",
		"new_password":     "NewSecret123",
	})
	defer func() { _ = resp.Body.Close() }()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "password changed", body["status"])
}
