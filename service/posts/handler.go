// Package posts implements challenge posts and the home feed fetch.
package posts

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/google/uuid"

	"challengeme/events"
	"challengeme/interceptor"
	models "challengeme/model"
	"challengeme/rpc"
)

type CreatePostRequest struct {
	Post models.Post `json:"post"`
}

type HomePostsRequest struct {
	Limit int `json:"limit,omitempty"`
}

type HomePostsResponse struct {
	Posts []models.Post `json:"posts"`
	Likes []models.Like `json:"likes"`
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

// CreatePost persists a client-built challenge post.
func (h *Handler) CreatePost(ctx context.Context, data json.RawMessage) (interface{}, error) {
	userID, ok := interceptor.UserIDFromContext(ctx)
	if !ok {
		return nil, rpc.Errorf(rpc.CodeUnauthenticated, "missing caller identity")
	}

	var req CreatePostRequest
	if err := json.Unmarshal(data, &req); err != nil {
		return nil, rpc.InvalidArgument("malformed create post request")
	}

	post := req.Post
	if post.ID == uuid.Nil {
		post.ID = uuid.New()
	}
	if post.UserID != userID {
		return nil, rpc.InvalidArgument("post user_id must match the caller")
	}
	if post.MediaURL == "" {
		return nil, rpc.InvalidArgument("media_url is required")
	}
	if post.MediaKind != models.MediaPhoto && post.MediaKind != models.MediaVideo {
		return nil, rpc.InvalidArgument("media_kind must be photo or video")
	}
	if post.Visibility != models.VisibilityPublic && post.Visibility != models.VisibilityFriends {
		return nil, rpc.InvalidArgument("visibility must be public or friends")
	}
	if _, err := time.ParseInLocation(models.DateLayout, post.CreatedDate, time.Local); err != nil {
		return nil, rpc.InvalidArgument("created_date must be a %s date", models.DateLayout)
	}

	if err := h.repo.CreatePost(ctx, &post); err != nil {
		return nil, rpc.Internal("failed to create post: %v", err)
	}

	// The post is saved either way; a lost event only delays notifications.
	if err := h.publisher.PublishEvent(events.SubjectPostCreated, events.PostCreatedEvent{
		PostID:      post.ID,
		UserID:      post.UserID,
		Caption:     post.Caption,
		CreatedDate: post.CreatedDate,
		Timestamp:   time.Now(),
	}); err != nil {
		log.Printf("failed to publish %s: %v", events.SubjectPostCreated, err)
	}

	return &post, nil
}

// HomePosts returns the caller's feed plus their like records.
func (h *Handler) HomePosts(ctx context.Context, data json.RawMessage) (interface{}, error) {
	userID, ok := interceptor.UserIDFromContext(ctx)
	if !ok {
		return nil, rpc.Errorf(rpc.CodeUnauthenticated, "missing caller identity")
	}

	var req HomePostsRequest
	if len(data) > 0 {
		if err := json.Unmarshal(data, &req); err != nil {
			return nil, rpc.InvalidArgument("malformed home posts request")
		}
	}

	posts, err := h.repo.HomePosts(ctx, userID, req.Limit)
	if err != nil {
		return nil, rpc.Internal("failed to get home posts: %v", err)
	}

	likes, err := h.repo.GetLikesByUser(ctx, userID)
	if err != nil {
		return nil, rpc.Internal("failed to get likes: %v", err)
	}

	return &HomePostsResponse{Posts: posts, Likes: likes}, nil
}
