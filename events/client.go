package events

import (
	"github.com/google/uuid"
)

// Topics on the client's in-process bus. Screens subscribe to these to
// re-render when the like state or the feed changes underneath them.
const (
	TopicLikeStateChanged = "client.likestate.changed"
	TopicFeedRefreshed    = "client.feed.refreshed"
)

type LikeStateChangedEvent struct {
	PostID           uuid.UUID  `json:"post_id"`
	Liked            bool       `json:"liked"`
	Count            int32      `json:"count"`
	Processing       bool       `json:"processing"`
	TodayLikedPostID *uuid.UUID `json:"today_liked_post_id,omitempty"`
}

type FeedRefreshedEvent struct {
	UserID    uuid.UUID `json:"user_id"`
	PostCount int       `json:"post_count"`
}
