package server

import (
	"quizmate/internal/models"

	"github.com/gofiber/fiber/v2"
)

// GetFriends handles GET /api/friends. The response is the caller's edge
// list with the name/avatar snapshots taken at acceptance time.
func (s *Server) GetFriends(c *fiber.Ctx) error {
	userID := requesterID(c)

	edges, err := s.friendService.ListFriends(c.Context(), userID)
	if err != nil {
		return respondServiceError(c, err)
	}
	if edges == nil {
		edges = []models.FriendEdge{}
	}
	return c.JSON(edges)
}

// GetPendingRequests handles GET /api/friends/requests
func (s *Server) GetPendingRequests(c *fiber.Ctx) error {
	userID := requesterID(c)

	requests, err := s.friendService.ListRequests(c.Context(), userID)
	if err != nil {
		return respondServiceError(c, err)
	}
	if requests == nil {
		requests = []models.FriendRequest{}
	}
	return c.JSON(requests)
}

// SendFriendRequest handles POST /api/friends/requests/:userId
func (s *Server) SendFriendRequest(c *fiber.Ctx) error {
	senderID := requesterID(c)
	recipientID, err := s.parseID(c, "userId")
	if err != nil {
		return nil
	}

	request, err := s.friendService.SendRequest(c.Context(), senderID, recipientID)
	if err != nil {
		return respondServiceError(c, err)
	}

	s.publishUserEvent(recipientID, EventFriendRequestReceived, map[string]interface{}{
		"sender_id":     request.SenderID,
		"sender_name":   request.SenderName,
		"sender_avatar": request.SenderAvatar,
	})

	return c.Status(fiber.StatusCreated).JSON(request)
}

// AcceptFriendRequest handles POST /api/friends/requests/:userId/accept,
// where :userId is the sender of the pending request.
func (s *Server) AcceptFriendRequest(c *fiber.Ctx) error {
	recipientID := requesterID(c)
	senderID, err := s.parseID(c, "userId")
	if err != nil {
		return nil
	}

	if err := s.friendService.AcceptRequest(c.Context(), recipientID, senderID); err != nil {
		return respondServiceError(c, err)
	}

	// Both participants learn about the new edge.
	s.publishUserEvent(senderID, EventFriendAdded, map[string]interface{}{
		"friend_id": recipientID,
	})
	s.publishUserEvent(recipientID, EventFriendAdded, map[string]interface{}{
		"friend_id": senderID,
	})

	return c.JSON(fiber.Map{"status": "accepted"})
}

// RejectFriendRequest handles POST /api/friends/requests/:userId/reject
func (s *Server) RejectFriendRequest(c *fiber.Ctx) error {
	recipientID := requesterID(c)
	senderID, err := s.parseID(c, "userId")
	if err != nil {
		return nil
	}

	if err := s.friendService.RejectRequest(c.Context(), recipientID, senderID); err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(fiber.Map{"status": "rejected"})
}
