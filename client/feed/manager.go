// Package feed drives the home feed: loading posts and likes from the
// backend, rebuilding the like state, and running the optimistic
// like/unlike flows against the like service.
package feed

import (
	"context"
	"encoding/json"
	"log"
	"sync"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/google/uuid"

	"challengeme/client/auth"
	"challengeme/client/like"
	"challengeme/events"
	models "challengeme/model"
	"challengeme/pkg/clock"
)

// PostService fetches the feed and creates challenge posts.
type PostService interface {
	// HomePosts returns the posts visible to the user (friends' and
	// public, today's and historical) plus the user's own like records.
	HomePosts(ctx context.Context, userID uuid.UUID) ([]models.Post, []models.Like, error)
	CreatePost(ctx context.Context, post models.Post) error
}

// LikeService persists and withdraws likes.
type LikeService interface {
	CreateLike(ctx context.Context, like models.Like) error
	DeleteLike(ctx context.Context, likeID uuid.UUID) error
}

// Manager owns the home-screen data flow. One instance lives per
// session; LoadHomePosts is the reconciliation point after any refresh.
type Manager struct {
	posts   PostService
	likes   LikeService
	store   *like.Store
	engine  *like.Engine
	session *auth.Session
	clock   clock.Clock
	bus     message.Publisher

	mu       sync.Mutex
	homeFeed []models.Post
}

func NewManager(
	posts PostService,
	likes LikeService,
	store *like.Store,
	engine *like.Engine,
	session *auth.Session,
	clk clock.Clock,
	bus message.Publisher,
) *Manager {
	return &Manager{
		posts:   posts,
		likes:   likes,
		store:   store,
		engine:  engine,
		session: session,
		clock:   clk,
		bus:     bus,
	}
}

// LoadHomePosts fetches the feed and rebuilds the like state from
// server truth. Any optimistic state not yet confirmed is discarded in
// favor of what the server reports.
func (m *Manager) LoadHomePosts(ctx context.Context) ([]models.Post, error) {
	userID := m.session.UserID()
	posts, likes, err := m.posts.HomePosts(ctx, userID)
	if err != nil {
		return nil, err
	}

	m.store.InitializeLikes(likes, posts, userID)

	m.mu.Lock()
	m.homeFeed = posts
	m.mu.Unlock()

	m.publish(events.TopicFeedRefreshed, events.FeedRefreshedEvent{
		UserID:    userID,
		PostCount: len(posts),
	})
	return posts, nil
}

// HomeFeed returns the posts from the last successful load.
func (m *Manager) HomeFeed() []models.Post {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.homeFeed
}

// LikePost runs the full like flow: eligibility check, optimistic
// mutation, network call, reconciliation. Returns false when the action
// was ineligible or the server rejected it; either way the state is
// consistent afterwards and the caller has nothing to handle.
func (m *Manager) LikePost(ctx context.Context, post models.Post) bool {
	userID := m.session.UserID()
	if !m.engine.CanLikePost(post, userID) {
		return false
	}

	lk := models.NewLike(userID, post, models.DateOf(m.clock.Now()))
	m.store.OptimisticLike(post.ID, lk.ID)
	m.publishState(post.ID)

	err := m.likes.CreateLike(ctx, lk)
	if err != nil {
		log.Printf("like %s failed, rolling back: %v", post.ID, err)
	}
	m.store.ConfirmLikeAction(post.ID, err == nil)
	m.publishState(post.ID)

	return err == nil
}

// UnlikePost withdraws today's like from the post, optimistically.
func (m *Manager) UnlikePost(ctx context.Context, post models.Post) bool {
	userID := m.session.UserID()
	if !m.engine.CanUnlikePost(post, userID) {
		return false
	}

	st, ok := m.store.LikeState(post.ID)
	if !ok || st.LikeID == nil {
		return false
	}
	likeID := *st.LikeID

	m.store.OptimisticUnlike(post.ID)
	m.publishState(post.ID)

	err := m.likes.DeleteLike(ctx, likeID)
	if err != nil {
		log.Printf("unlike %s failed, rolling back: %v", post.ID, err)
	}
	m.store.ConfirmLikeAction(post.ID, err == nil)
	m.publishState(post.ID)

	return err == nil
}

// PostChallenge publishes a new challenge post dated today.
func (m *Manager) PostChallenge(ctx context.Context, caption, mediaURL string, kind models.MediaKind, visibility models.Visibility) (*models.Post, error) {
	post := models.Post{
		ID:          uuid.New(),
		UserID:      m.session.UserID(),
		Caption:     caption,
		MediaURL:    mediaURL,
		MediaKind:   kind,
		Visibility:  visibility,
		CreatedDate: models.DateOf(m.clock.Now()),
	}
	if err := m.posts.CreatePost(ctx, post); err != nil {
		return nil, err
	}
	return &post, nil
}

// CanLike exposes the eligibility check for the UI to grey out buttons.
func (m *Manager) CanLike(post models.Post) bool {
	return m.engine.CanLikePost(post, m.session.UserID())
}

func (m *Manager) CanUnlike(post models.Post) bool {
	return m.engine.CanUnlikePost(post, m.session.UserID())
}

func (m *Manager) publishState(postID uuid.UUID) {
	st, ok := m.store.LikeState(postID)
	if !ok {
		return
	}
	m.publish(events.TopicLikeStateChanged, events.LikeStateChangedEvent{
		PostID:           postID,
		Liked:            st.Liked,
		Count:            st.Count,
		Processing:       st.Processing,
		TodayLikedPostID: m.store.TodayLikedPostID(),
	})
}

// publish pushes an event onto the in-process bus. Observation is best
// effort; a failed publish is logged and the flow continues.
func (m *Manager) publish(topic string, payload any) {
	if m.bus == nil {
		return
	}
	data, err := json.Marshal(payload)
	if err != nil {
		log.Printf("failed to marshal %s event: %v", topic, err)
		return
	}
	if err := m.bus.Publish(topic, message.NewMessage(watermill.NewUUID(), data)); err != nil {
		log.Printf("failed to publish %s event: %v", topic, err)
	}
}
