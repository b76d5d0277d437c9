// Package follows implements the follow graph backing the friends feed.
package follows

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"time"

	"github.com/google/uuid"

	"challengeme/events"
	"challengeme/interceptor"
	"challengeme/rpc"
)

type FollowRequest struct {
	UserID uuid.UUID `json:"user_id"`
}

type FollowersRequest struct {
	UserID uuid.UUID `json:"user_id"`
}

type FollowersResponse struct {
	FollowerIDs  []uuid.UUID `json:"follower_ids"`
	FollowingIDs []uuid.UUID `json:"following_ids"`
}

// Publisher pushes service events onto the broker.
type Publisher interface {
	PublishEvent(subject string, event interface{}) error
}

type Handler struct {
	repo      Repository
	publisher Publisher
}

func NewHandler(repo Repository, publisher Publisher) *Handler {
	return &Handler{repo: repo, publisher: publisher}
}

// Follow makes the caller follow the given user.
func (h *Handler) Follow(ctx context.Context, data json.RawMessage) (interface{}, error) {
	userID, ok := interceptor.UserIDFromContext(ctx)
	if !ok {
		return nil, rpc.Errorf(rpc.CodeUnauthenticated, "missing caller identity")
	}

	var req FollowRequest
	if err := json.Unmarshal(data, &req); err != nil {
		return nil, rpc.InvalidArgument("malformed follow request")
	}
	if req.UserID == uuid.Nil {
		return nil, rpc.InvalidArgument("user_id is required")
	}
	if req.UserID == userID {
		return nil, rpc.InvalidArgument("cannot follow yourself")
	}

	if err := h.repo.CreateFollow(ctx, userID, req.UserID); err != nil {
		return nil, rpc.Internal("failed to follow: %v", err)
	}

	if err := h.publisher.PublishEvent(events.SubjectFollowCreated, events.FollowCreatedEvent{
		FollowerID: userID,
		FollowedID: req.UserID,
		Timestamp:  time.Now(),
	}); err != nil {
		log.Printf("failed to publish %s: %v", events.SubjectFollowCreated, err)
	}

	return nil, nil
}

// Unfollow removes the relation.
func (h *Handler) Unfollow(ctx context.Context, data json.RawMessage) (interface{}, error) {
	userID, ok := interceptor.UserIDFromContext(ctx)
	if !ok {
		return nil, rpc.Errorf(rpc.CodeUnauthenticated, "missing caller identity")
	}

	var req FollowRequest
	if err := json.Unmarshal(data, &req); err != nil {
		return nil, rpc.InvalidArgument("malformed unfollow request")
	}
	if req.UserID == uuid.Nil {
		return nil, rpc.InvalidArgument("user_id is required")
	}

	if err := h.repo.DeleteFollow(ctx, userID, req.UserID); err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, rpc.NotFound("not following this user")
		}
		return nil, rpc.Internal("failed to unfollow: %v", err)
	}

	return nil, nil
}

// Followers returns who follows the user and who they follow.
func (h *Handler) Followers(ctx context.Context, data json.RawMessage) (interface{}, error) {
	var req FollowersRequest
	if err := json.Unmarshal(data, &req); err != nil {
		return nil, rpc.InvalidArgument("malformed followers request")
	}
	if req.UserID == uuid.Nil {
		return nil, rpc.InvalidArgument("user_id is required")
	}

	followers, err := h.repo.GetFollowerIDs(ctx, req.UserID)
	if err != nil {
		return nil, rpc.Internal("failed to get followers: %v", err)
	}

	following, err := h.repo.GetFollowingIDs(ctx, req.UserID)
	if err != nil {
		return nil, rpc.Internal("failed to get following: %v", err)
	}

	return &FollowersResponse{FollowerIDs: followers, FollowingIDs: following}, nil
}
