// Package notifications stores and serves the activity feed: who liked,
// commented, and followed.
package notifications

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"

	"challengeme/interceptor"
	models "challengeme/model"
	"challengeme/rpc"
)

type ListRequest struct {
	Limit int `json:"limit,omitempty"`
}

type ListResponse struct {
	Notifications []models.Notification `json:"notifications"`
	UnreadCount   int64                 `json:"unread_count"`
}

type MarkReadRequest struct {
	NotificationID uuid.UUID `json:"notification_id"`
}

type Handler struct {
	repo Repository
}

func NewHandler(repo Repository) *Handler {
	return &Handler{repo: repo}
}

// List returns the caller's notifications, newest first.
func (h *Handler) List(ctx context.Context, data json.RawMessage) (interface{}, error) {
	userID, ok := interceptor.UserIDFromContext(ctx)
	if !ok {
		return nil, rpc.Errorf(rpc.CodeUnauthenticated, "missing caller identity")
	}

	var req ListRequest
	if len(data) > 0 {
		if err := json.Unmarshal(data, &req); err != nil {
			return nil, rpc.InvalidArgument("malformed list request")
		}
	}

	notifications, err := h.repo.GetByUserID(ctx, userID, req.Limit)
	if err != nil {
		return nil, rpc.Internal("failed to get notifications: %v", err)
	}

	unread, err := h.repo.UnreadCount(ctx, userID)
	if err != nil {
		return nil, rpc.Internal("failed to count unread notifications: %v", err)
	}

	return &ListResponse{Notifications: notifications, UnreadCount: unread}, nil
}

// MarkRead marks one of the caller's notifications as read.
func (h *Handler) MarkRead(ctx context.Context, data json.RawMessage) (interface{}, error) {
	userID, ok := interceptor.UserIDFromContext(ctx)
	if !ok {
		return nil, rpc.Errorf(rpc.CodeUnauthenticated, "missing caller identity")
	}

	var req MarkReadRequest
	if err := json.Unmarshal(data, &req); err != nil {
		return nil, rpc.InvalidArgument("malformed mark read request")
	}
	if req.NotificationID == uuid.Nil {
		return nil, rpc.InvalidArgument("notification_id is required")
	}

	if err := h.repo.MarkRead(ctx, req.NotificationID, userID); err != nil {
		return nil, rpc.NotFound("notification not found")
	}

	return nil, nil
}
