package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"quizmate/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newFriendApp(s *Server, userID uint) *fiber.App {
	app := fiber.New()
	app.Use(asUser(userID))
	app.Get("/friends", s.GetFriends)
	app.Get("/friends/requests", s.GetPendingRequests)
	app.Post("/friends/requests/:userId", s.SendFriendRequest)
	app.Post("/friends/requests/:userId/accept", s.AcceptFriendRequest)
	app.Post("/friends/requests/:userId/reject", s.RejectFriendRequest)
	return app
}

func doReq(t *testing.T, app *fiber.App, method, path string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(method, path, nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	return resp
}

func TestFriendFlow_SendAcceptMaterializesBothEdges(t *testing.T) {
	s := newTestServer(t)
	sender := seedTestUser(t, s, "sender", "sender@example.com", "Sender")
	recipient := seedTestUser(t, s, "recipient", "recipient@example.com", "Recipient")

	senderApp := newFriendApp(s, sender.ID)
	recipientApp := newFriendApp(s, recipient.ID)

	resp := doReq(t, senderApp, http.MethodPost, "/friends/requests/2")
	var request models.FriendRequest
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&request))
	_ = resp.Body.Close()
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, "Sender", request.SenderName)

	// Recipient sees the pending request.
	resp = doReq(t, recipientApp, http.MethodGet, "/friends/requests")
	var pending []models.FriendRequest
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&pending))
	_ = resp.Body.Close()
	require.Len(t, pending, 1)
	assert.Equal(t, sender.ID, pending[0].SenderID)

	// Accept materializes an edge on BOTH sides with snapshots of the other.
	resp = doReq(t, recipientApp, http.MethodPost, "/friends/requests/1/accept")
	_ = resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp = doReq(t, recipientApp, http.MethodGet, "/friends")
	var recipientEdges []models.FriendEdge
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&recipientEdges))
	_ = resp.Body.Close()
	require.Len(t, recipientEdges, 1)
	assert.Equal(t, sender.ID, recipientEdges[0].FriendID)
	assert.Equal(t, "Sender", recipientEdges[0].NameSnapshot)

	resp = doReq(t, senderApp, http.MethodGet, "/friends")
	var senderEdges []models.FriendEdge
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&senderEdges))
	_ = resp.Body.Close()
	require.Len(t, senderEdges, 1)
	assert.Equal(t, recipient.ID, senderEdges[0].FriendID)
	assert.Equal(t, "Recipient", senderEdges[0].NameSnapshot)

	// The request is gone after acceptance.
	resp = doReq(t, recipientApp, http.MethodGet, "/friends/requests")
	var remaining []models.FriendRequest
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&remaining))
	_ = resp.Body.Close()
	assert.Empty(t, remaining)
}

func TestFriendFlow_RejectDeletesRequestOnly(t *testing.T) {
	s := newTestServer(t)
	sender := seedTestUser(t, s, "sender", "sender@example.com", "Sender")
	recipient := seedTestUser(t, s, "recipient", "recipient@example.com", "Recipient")

	senderApp := newFriendApp(s, sender.ID)
	recipientApp := newFriendApp(s, recipient.ID)

	resp := doReq(t, senderApp, http.MethodPost, "/friends/requests/2")
	_ = resp.Body.Close()
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp = doReq(t, recipientApp, http.MethodPost, "/friends/requests/1/reject")
	_ = resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp = doReq(t, recipientApp, http.MethodGet, "/friends")
	var edges []models.FriendEdge
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&edges))
	_ = resp.Body.Close()
	assert.Empty(t, edges)
}

func TestSendFriendRequest_SelfAndUnknown(t *testing.T) {
	s := newTestServer(t)
	user := seedTestUser(t, s, "ada", "ada@example.com", "Ada")
	app := newFriendApp(s, user.ID)

	resp := doReq(t, app, http.MethodPost, "/friends/requests/1")
	_ = resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = doReq(t, app, http.MethodPost, "/friends/requests/99")
	_ = resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestAcceptFriendRequest_NoPendingRequest(t *testing.T) {
	s := newTestServer(t)
	user := seedTestUser(t, s, "ada", "ada@example.com", "Ada")
	seedTestUser(t, s, "bob", "bob@example.com", "Bob")
	app := newFriendApp(s, user.ID)

	resp := doReq(t, app, http.MethodPost, "/friends/requests/2/accept")
	_ = resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}
