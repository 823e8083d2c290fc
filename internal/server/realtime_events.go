package server

import (
	"context"
	"encoding/json"
	"log"

	"quizmate/internal/observability"
)

// Event type constants prevent typos in event names.
const (
	EventPostCreated           = "post_created"
	EventPostReactionUpdated   = "post_reaction_updated"
	EventCommentCreated        = "comment_created"
	EventFriendRequestReceived = "friend_request_received"
	EventFriendAdded           = "friend_added"
	EventProfileUpdated        = "profile_updated"
)

func (s *Server) publishUserEvent(userID uint, eventType string, payload map[string]interface{}) {
	event := map[string]interface{}{
		"type":    eventType,
		"payload": payload,
	}
	eventJSON, err := json.Marshal(event)
	if err != nil {
		log.Printf("failed to marshal %s event: %v", eventType, err)
		return
	}
	message := string(eventJSON)
	if s.hub != nil {
		s.hub.Broadcast(userID, message)
	}
	if s.notifier != nil {
		if err := s.notifier.PublishUser(context.Background(), userID, message); err != nil {
			log.Printf("failed to publish %s event to user %d: %v", eventType, userID, err)
		}
	}
}

// publishFeedEvent fans one author's event out to everyone whose feed shows
// that author: their accepted friends plus the author themselves.
func (s *Server) publishFeedEvent(ctx context.Context, authorID uint, eventType string, payload map[string]interface{}) {
	targets := []uint{authorID}
	friendIDs, err := s.friendRepo.AcceptedFriendIDs(ctx, authorID)
	if err != nil {
		log.Printf("failed to load friends for %s fan-out: %v", eventType, err)
	} else {
		targets = append(targets, friendIDs...)
	}

	for _, target := range targets {
		s.publishUserEvent(target, eventType, payload)
	}
	observability.FeedFanoutTotal.WithLabelValues(eventType).Add(float64(len(targets)))
}
