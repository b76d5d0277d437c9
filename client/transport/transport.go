// Package transport implements the client-side service interfaces over
// NATS request-reply, attaching the session token to every call.
package transport

import (
	"context"
	"time"

	"github.com/google/uuid"

	"challengeme/client/auth"
	"challengeme/client/feed"
	"challengeme/events"
	models "challengeme/model"
	natsClient "challengeme/nats"
	"challengeme/rpc"
	"challengeme/service/comments"
	"challengeme/service/follows"
	"challengeme/service/leaderboard"
	"challengeme/service/likes"
	"challengeme/service/notifications"
	"challengeme/service/posts"
	"challengeme/service/users"
)

const defaultTimeout = 10 * time.Second

var (
	_ auth.Service     = (*Client)(nil)
	_ feed.PostService = (*Client)(nil)
	_ feed.LikeService = (*Client)(nil)
)

// Client talks to the backend. It satisfies auth.Service,
// feed.PostService, and feed.LikeService.
type Client struct {
	nats    *natsClient.Client
	session *auth.Session
	timeout time.Duration
}

func New(nc *natsClient.Client, session *auth.Session) *Client {
	return &Client{
		nats:    nc,
		session: session,
		timeout: defaultTimeout,
	}
}

func (c *Client) call(ctx context.Context, subject string, in, out interface{}) error {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()
	return rpc.Call(ctx, c.nats, subject, c.session.Token(), in, out)
}

// Register creates an account. Public subject, no token yet.
func (c *Client) Register(ctx context.Context, input auth.RegisterInput) (*auth.Result, error) {
	var res auth.Result
	err := c.call(ctx, events.RPCAuthRegister, users.RegisterRequest{
		Username: input.Username,
		Email:    input.Email,
		Password: input.Password,
		Bio:      input.Bio,
	}, &res)
	if err != nil {
		return nil, err
	}
	return &res, nil
}

func (c *Client) Login(ctx context.Context, email, password string) (*auth.Result, error) {
	var res auth.Result
	err := c.call(ctx, events.RPCAuthLogin, users.LoginRequest{Email: email, Password: password}, &res)
	if err != nil {
		return nil, err
	}
	return &res, nil
}

// HomePosts fetches the feed and the caller's like records.
func (c *Client) HomePosts(ctx context.Context, _ uuid.UUID) ([]models.Post, []models.Like, error) {
	var res posts.HomePostsResponse
	if err := c.call(ctx, events.RPCPostHome, posts.HomePostsRequest{}, &res); err != nil {
		return nil, nil, err
	}
	return res.Posts, res.Likes, nil
}

func (c *Client) CreatePost(ctx context.Context, post models.Post) error {
	return c.call(ctx, events.RPCPostCreate, posts.CreatePostRequest{Post: post}, nil)
}

func (c *Client) CreateLike(ctx context.Context, like models.Like) error {
	return c.call(ctx, events.RPCLikeCreate, likes.CreateLikeRequest{Like: like}, nil)
}

func (c *Client) DeleteLike(ctx context.Context, likeID uuid.UUID) error {
	return c.call(ctx, events.RPCLikeDelete, likes.DeleteLikeRequest{LikeID: likeID}, nil)
}

func (c *Client) AddComment(ctx context.Context, postID uuid.UUID, content string) (*models.Comment, error) {
	var comment models.Comment
	err := c.call(ctx, events.RPCCommentCreate, comments.CreateCommentRequest{
		PostID:  postID,
		Content: content,
	}, &comment)
	if err != nil {
		return nil, err
	}
	return &comment, nil
}

func (c *Client) PostComments(ctx context.Context, postID uuid.UUID) ([]models.Comment, error) {
	var list []models.Comment
	if err := c.call(ctx, events.RPCCommentList, comments.ListCommentsRequest{PostID: postID}, &list); err != nil {
		return nil, err
	}
	return list, nil
}

func (c *Client) Follow(ctx context.Context, userID uuid.UUID) error {
	return c.call(ctx, events.RPCFollowCreate, follows.FollowRequest{UserID: userID}, nil)
}

func (c *Client) Unfollow(ctx context.Context, userID uuid.UUID) error {
	return c.call(ctx, events.RPCFollowDelete, follows.FollowRequest{UserID: userID}, nil)
}

func (c *Client) Followers(ctx context.Context, userID uuid.UUID) (*follows.FollowersResponse, error) {
	var res follows.FollowersResponse
	if err := c.call(ctx, events.RPCFollowFollowers, follows.FollowersRequest{UserID: userID}, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

// Leaderboard returns a board; period is "daily" or "alltime".
func (c *Client) Leaderboard(ctx context.Context, period string, limit int64) ([]models.LeaderboardEntry, error) {
	var res leaderboard.TopResponse
	err := c.call(ctx, events.RPCLeaderboardTop, leaderboard.TopRequest{Period: period, Limit: limit}, &res)
	if err != nil {
		return nil, err
	}
	return res.Entries, nil
}

func (c *Client) Notifications(ctx context.Context) (*notifications.ListResponse, error) {
	var res notifications.ListResponse
	if err := c.call(ctx, events.RPCNotifList, notifications.ListRequest{}, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

func (c *Client) MarkNotificationRead(ctx context.Context, notificationID uuid.UUID) error {
	return c.call(ctx, events.RPCNotifMarkRead, notifications.MarkReadRequest{NotificationID: notificationID}, nil)
}

func (c *Client) Profile(ctx context.Context, userID uuid.UUID) (*models.User, error) {
	var user models.User
	if err := c.call(ctx, events.RPCUserGet, users.GetUserRequest{UserID: userID}, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (c *Client) UpdateProfile(ctx context.Context, input models.UpdateUserInput) (*models.User, error) {
	var user models.User
	if err := c.call(ctx, events.RPCUserUpdate, users.UpdateUserRequest{Input: input}, &user); err != nil {
		return nil, err
	}
	return &user, nil
}
