package models

import (
	"time"

	"github.com/google/uuid"
)

type Comment struct {
	ID        uuid.UUID `json:"id" db:"id"`
	PostID    uuid.UUID `json:"post_id" db:"post_id"`
	UserID    uuid.UUID `json:"user_id" db:"user_id"`
	Content   string    `json:"content" db:"content"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

type Follow struct {
	ID         uuid.UUID `json:"id" db:"id"`
	FollowerID uuid.UUID `json:"follower_id" db:"follower_id"`
	FollowedID uuid.UUID `json:"followed_id" db:"followed_id"`
	CreatedAt  time.Time `json:"created_at" db:"created_at"`
}
