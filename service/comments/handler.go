// Package comments implements commenting on challenge posts.
package comments

import (
	"context"
	"encoding/json"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"

	"challengeme/events"
	"challengeme/interceptor"
	models "challengeme/model"
	"challengeme/rpc"
)

const maxCommentLength = 1000

type CreateCommentRequest struct {
	PostID  uuid.UUID `json:"post_id"`
	Content string    `json:"content"`
}

type ListCommentsRequest struct {
	PostID uuid.UUID `json:"post_id"`
	Limit  int       `json:"limit,omitempty"`
}

// PostLookup resolves the post being commented on.
type PostLookup interface {
	GetPostByID(ctx context.Context, id uuid.UUID) (*models.Post, error)
}

// Publisher pushes service events onto the broker.
type Publisher interface {
	PublishEvent(subject string, event interface{}) error
}

type Handler struct {
	repo      Repository
	posts     PostLookup
	publisher Publisher
}

func NewHandler(repo Repository, posts PostLookup, publisher Publisher) *Handler {
	return &Handler{repo: repo, posts: posts, publisher: publisher}
}

// CreateComment adds a comment to a post.
func (h *Handler) CreateComment(ctx context.Context, data json.RawMessage) (interface{}, error) {
	userID, ok := interceptor.UserIDFromContext(ctx)
	if !ok {
		return nil, rpc.Errorf(rpc.CodeUnauthenticated, "missing caller identity")
	}

	var req CreateCommentRequest
	if err := json.Unmarshal(data, &req); err != nil {
		return nil, rpc.InvalidArgument("malformed create comment request")
	}
	if req.PostID == uuid.Nil {
		return nil, rpc.InvalidArgument("post_id is required")
	}
	content := strings.TrimSpace(req.Content)
	if content == "" {
		return nil, rpc.InvalidArgument("content is required")
	}
	if len(content) > maxCommentLength {
		return nil, rpc.InvalidArgument("content exceeds %d characters", maxCommentLength)
	}

	post, err := h.posts.GetPostByID(ctx, req.PostID)
	if err != nil {
		return nil, rpc.Internal("failed to get post: %v", err)
	}
	if post == nil {
		return nil, rpc.NotFound("post not found")
	}

	comment := &models.Comment{
		ID:        uuid.New(),
		PostID:    req.PostID,
		UserID:    userID,
		Content:   content,
		CreatedAt: time.Now(),
	}

	if err := h.repo.CreateComment(ctx, comment); err != nil {
		return nil, rpc.Internal("failed to create comment: %v", err)
	}

	if err := h.publisher.PublishEvent(events.SubjectCommentAdded, events.CommentAddedEvent{
		CommentID:   comment.ID,
		PostID:      post.ID,
		PostOwnerID: post.UserID,
		CommentedBy: userID,
		Content:     content,
		Timestamp:   comment.CreatedAt,
	}); err != nil {
		log.Printf("failed to publish %s: %v", events.SubjectCommentAdded, err)
	}

	return comment, nil
}

// ListComments returns the comments on a post, newest first.
func (h *Handler) ListComments(ctx context.Context, data json.RawMessage) (interface{}, error) {
	var req ListCommentsRequest
	if err := json.Unmarshal(data, &req); err != nil {
		return nil, rpc.InvalidArgument("malformed list comments request")
	}
	if req.PostID == uuid.Nil {
		return nil, rpc.InvalidArgument("post_id is required")
	}

	comments, err := h.repo.GetCommentsByPost(ctx, req.PostID, req.Limit)
	if err != nil {
		return nil, rpc.Internal("failed to get comments: %v", err)
	}

	return comments, nil
}
