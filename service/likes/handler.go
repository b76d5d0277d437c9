// Package likes implements like persistence. The daily-like and
// own-post rules are enforced here as well as in the client, so a
// misbehaving client cannot spend more than one like per day.
package likes

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"time"

	"github.com/google/uuid"

	"challengeme/events"
	"challengeme/interceptor"
	models "challengeme/model"
	"challengeme/rpc"
)

type CreateLikeRequest struct {
	Like models.Like `json:"like"`
}

type DeleteLikeRequest struct {
	LikeID uuid.UUID `json:"like_id"`
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

// CreateLike persists a like built by the client.
func (h *Handler) CreateLike(ctx context.Context, data json.RawMessage) (interface{}, error) {
	userID, ok := interceptor.UserIDFromContext(ctx)
	if !ok {
		return nil, rpc.Errorf(rpc.CodeUnauthenticated, "missing caller identity")
	}

	var req CreateLikeRequest
	if err := json.Unmarshal(data, &req); err != nil {
		return nil, rpc.InvalidArgument("malformed create like request")
	}

	like := req.Like
	if like.ID == uuid.Nil || like.PostID == uuid.Nil {
		return nil, rpc.InvalidArgument("like id and post_id are required")
	}
	if like.UserID != userID {
		return nil, rpc.InvalidArgument("like user_id must match the caller")
	}
	if like.PostOwnerID == userID {
		return nil, rpc.InvalidArgument("cannot like your own post")
	}
	if _, err := time.ParseInLocation(models.DateLayout, like.CreatedDate, time.Local); err != nil {
		return nil, rpc.InvalidArgument("created_date must be a %s date", models.DateLayout)
	}

	// The unique index catches races; this check turns the common case
	// into a clean error before touching the table.
	existing, err := h.repo.GetLikeByUserAndDate(ctx, userID, like.CreatedDate)
	if err != nil {
		return nil, rpc.Internal("failed to check daily like: %v", err)
	}
	if existing != nil {
		return nil, rpc.AlreadyExists("daily like already spent")
	}

	if err := h.repo.CreateLike(ctx, like); err != nil {
		if errors.Is(err, ErrAlreadyExists) {
			return nil, rpc.AlreadyExists("like already exists")
		}
		return nil, rpc.Internal("failed to create like: %v", err)
	}

	if err := h.publisher.PublishEvent(events.SubjectLikeCreated, events.LikeCreatedEvent{
		LikeID:      like.ID,
		PostID:      like.PostID,
		PostOwnerID: like.PostOwnerID,
		LikedBy:     like.UserID,
		CreatedDate: like.CreatedDate,
		Timestamp:   time.Now(),
	}); err != nil {
		log.Printf("failed to publish %s: %v", events.SubjectLikeCreated, err)
	}

	return &like, nil
}

// DeleteLike withdraws the caller's like.
func (h *Handler) DeleteLike(ctx context.Context, data json.RawMessage) (interface{}, error) {
	userID, ok := interceptor.UserIDFromContext(ctx)
	if !ok {
		return nil, rpc.Errorf(rpc.CodeUnauthenticated, "missing caller identity")
	}

	var req DeleteLikeRequest
	if err := json.Unmarshal(data, &req); err != nil {
		return nil, rpc.InvalidArgument("malformed delete like request")
	}
	if req.LikeID == uuid.Nil {
		return nil, rpc.InvalidArgument("like_id is required")
	}

	like, err := h.repo.DeleteLike(ctx, req.LikeID, userID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, rpc.NotFound("like not found")
		}
		return nil, rpc.Internal("failed to delete like: %v", err)
	}

	if err := h.publisher.PublishEvent(events.SubjectLikeDeleted, events.LikeDeletedEvent{
		LikeID:      like.ID,
		PostID:      like.PostID,
		PostOwnerID: like.PostOwnerID,
		LikedBy:     like.UserID,
		CreatedDate: like.CreatedDate,
		Timestamp:   time.Now(),
	}); err != nil {
		log.Printf("failed to publish %s: %v", events.SubjectLikeDeleted, err)
	}

	return nil, nil
}
