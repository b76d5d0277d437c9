package like

import (
	"time"

	"github.com/google/uuid"

	models "challengeme/model"
	"challengeme/pkg/clock"
)

// Engine answers whether the current user may like or unlike a post
// right now. Pure predicates over the store snapshot and the clock: no
// side effects, binary results only.
type Engine struct {
	store *Store
	clock clock.Clock
}

func NewEngine(store *Store, clk clock.Clock) *Engine {
	return &Engine{store: store, clock: clk}
}

// CanLikePost reports whether currentUserID may like post. Checks, in
// order: not the user's own post, the daily like not yet spent, the
// post created today, and the post not already liked or mid-operation.
// A post with an in-flight network call is ineligible until the call
// reconciles.
func (e *Engine) CanLikePost(post models.Post, currentUserID uuid.UUID) bool {
	if post.UserID == currentUserID {
		return false
	}
	if e.store.TodayLikedPostID() != nil {
		return false
	}
	if !sameCalendarDay(e.clock, post.CreatedDate) {
		return false
	}
	if st, ok := e.store.LikeState(post.ID); ok && (st.Liked || st.Processing) {
		return false
	}
	return true
}

// CanUnlikePost reports whether currentUserID may withdraw a like from
// post: the post must be liked, created today, be the post tracked as
// today's like, and have no operation in flight.
func (e *Engine) CanUnlikePost(post models.Post, currentUserID uuid.UUID) bool {
	st, ok := e.store.LikeState(post.ID)
	if !ok || !st.Liked || st.Processing {
		return false
	}
	if !sameCalendarDay(e.clock, post.CreatedDate) {
		return false
	}
	today := e.store.TodayLikedPostID()
	return today != nil && *today == post.ID
}

// sameCalendarDay reports whether the stored date string names the
// clock's current local calendar day. Malformed dates count as not
// today; a stale or broken record freezes the post rather than crashing
// the interaction.
func sameCalendarDay(clk clock.Clock, date string) bool {
	parsed, err := time.ParseInLocation(models.DateLayout, date, time.Local)
	if err != nil {
		return false
	}
	now := clk.Now()
	y1, m1, d1 := parsed.Date()
	y2, m2, d2 := now.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}
