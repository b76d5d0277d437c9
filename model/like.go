package models

import (
	"github.com/google/uuid"
)

// Like is created client-side when a user likes a post and persisted by
// the like service. CreatedDate is a date string (DateLayout).
type Like struct {
	ID          uuid.UUID `json:"id" db:"id"`
	UserID      uuid.UUID `json:"user_id" db:"user_id"`
	PostID      uuid.UUID `json:"post_id" db:"post_id"`
	PostOwnerID uuid.UUID `json:"post_owner_id" db:"post_owner_id"`
	CreatedDate string    `json:"created_date" db:"created_date"`
}

// NewLike builds a like record with a fresh client-generated id.
func NewLike(userID uuid.UUID, post Post, date string) Like {
	return Like{
		ID:          uuid.New(),
		UserID:      userID,
		PostID:      post.ID,
		PostOwnerID: post.UserID,
		CreatedDate: date,
	}
}
