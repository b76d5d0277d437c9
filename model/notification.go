package models

import (
	"time"

	"github.com/google/uuid"
)

type NotificationType string

const (
	NotificationTypeLike    NotificationType = "like"
	NotificationTypeComment NotificationType = "comment"
	NotificationTypeFollow  NotificationType = "follow"
)

type Notification struct {
	ID        uuid.UUID        `json:"id" db:"id"`
	UserID    uuid.UUID        `json:"user_id" db:"user_id"`
	Type      NotificationType `json:"type" db:"type"`
	Message   string           `json:"message" db:"message"`
	ActorID   *uuid.UUID       `json:"actor_id,omitempty" db:"actor_id"`
	RelatedID *uuid.UUID       `json:"related_id,omitempty" db:"related_id"`
	IsRead    bool             `json:"is_read" db:"is_read"`
	CreatedAt time.Time        `json:"created_at" db:"created_at"`
}

// LeaderboardEntry is a scored row from the like leaderboards.
type LeaderboardEntry struct {
	UserID uuid.UUID `json:"user_id"`
	Score  int64     `json:"score"`
	Rank   int32     `json:"rank"`
}
