package models

import (
	"time"

	"github.com/google/uuid"
)

// DateLayout is the wire format for calendar dates. Challenge posts and
// likes carry a date only, no time of day.
const DateLayout = "2006-01-02"

// DateOf formats t as a calendar date in the local calendar.
func DateOf(t time.Time) string {
	return t.Format(DateLayout)
}

type Visibility string

const (
	VisibilityPublic  Visibility = "public"
	VisibilityFriends Visibility = "friends"
)

type MediaKind string

const (
	MediaPhoto MediaKind = "photo"
	MediaVideo MediaKind = "video"
)

// Post is a challenge post. CreatedDate is a date string (DateLayout),
// not a timestamp; the like-of-the-day rules compare calendar dates only.
type Post struct {
	ID            uuid.UUID  `json:"id" db:"id"`
	UserID        uuid.UUID  `json:"user_id" db:"user_id"`
	Caption       string     `json:"caption" db:"caption"`
	MediaURL      string     `json:"media_url" db:"media_url"`
	MediaKind     MediaKind  `json:"media_kind" db:"media_kind"`
	Visibility    Visibility `json:"visibility" db:"visibility"`
	CreatedDate   string     `json:"created_date" db:"created_date"`
	LikesCount    int32      `json:"likes_count" db:"likes_count"`
	CommentsCount int32      `json:"comments_count" db:"comments_count"`
}
