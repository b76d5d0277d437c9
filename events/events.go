// Package events defines the NATS subjects shared by the services and
// the payloads they exchange.
package events

import (
	"time"

	"github.com/google/uuid"
)

const (
	SubjectPostCreated   = "post.created"
	SubjectLikeCreated   = "post.like.created"
	SubjectLikeDeleted   = "post.like.deleted"
	SubjectCommentAdded  = "post.comment.added"
	SubjectFollowCreated = "user.follow.created"
)

// Request-reply subjects served by the backend handlers.
const (
	RPCAuthRegister    = "rpc.auth.register"
	RPCAuthLogin       = "rpc.auth.login"
	RPCUserGet         = "rpc.user.get"
	RPCUserUpdate      = "rpc.user.update"
	RPCPostCreate      = "rpc.post.create"
	RPCPostHome        = "rpc.post.home"
	RPCLikeCreate      = "rpc.like.create"
	RPCLikeDelete      = "rpc.like.delete"
	RPCCommentCreate   = "rpc.comment.create"
	RPCCommentList     = "rpc.comment.list"
	RPCFollowCreate    = "rpc.follow.create"
	RPCFollowDelete    = "rpc.follow.delete"
	RPCFollowFollowers = "rpc.follow.followers"
	RPCLeaderboardTop  = "rpc.leaderboard.top"
	RPCNotifList       = "rpc.notification.list"
	RPCNotifMarkRead   = "rpc.notification.markread"
)

type PostCreatedEvent struct {
	PostID      uuid.UUID `json:"post_id"`
	UserID      uuid.UUID `json:"user_id"`
	Caption     string    `json:"caption"`
	CreatedDate string    `json:"created_date"`
	Timestamp   time.Time `json:"timestamp"`
}

type LikeCreatedEvent struct {
	LikeID      uuid.UUID `json:"like_id"`
	PostID      uuid.UUID `json:"post_id"`
	PostOwnerID uuid.UUID `json:"post_owner_id"`
	LikedBy     uuid.UUID `json:"liked_by"`
	CreatedDate string    `json:"created_date"`
	Timestamp   time.Time `json:"timestamp"`
}

type LikeDeletedEvent struct {
	LikeID      uuid.UUID `json:"like_id"`
	PostID      uuid.UUID `json:"post_id"`
	PostOwnerID uuid.UUID `json:"post_owner_id"`
	LikedBy     uuid.UUID `json:"liked_by"`
	CreatedDate string    `json:"created_date"`
	Timestamp   time.Time `json:"timestamp"`
}

type CommentAddedEvent struct {
	CommentID   uuid.UUID `json:"comment_id"`
	PostID      uuid.UUID `json:"post_id"`
	PostOwnerID uuid.UUID `json:"post_owner_id"`
	CommentedBy uuid.UUID `json:"commented_by"`
	Content     string    `json:"content"`
	Timestamp   time.Time `json:"timestamp"`
}

type FollowCreatedEvent struct {
	FollowerID uuid.UUID `json:"follower_id"`
	FollowedID uuid.UUID `json:"followed_id"`
	Timestamp  time.Time `json:"timestamp"`
}
