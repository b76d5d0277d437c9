// Package like holds the client-side like-of-the-day state: the
// optimistic per-post like states and the eligibility rules gating
// like/unlike actions.
package like

import (
	"sync"

	"github.com/google/uuid"

	models "challengeme/model"
	"challengeme/pkg/clock"
)

// State is the per-post like state as shown in the UI. It is derived
// from server truth on every full refresh and never persisted.
type State struct {
	Liked      bool
	Count      int32
	LikeID     *uuid.UUID
	Processing bool
}

// pendingAction records the exact snapshot taken before an optimistic
// mutation so a failed network call can be compensated precisely, not
// by negating whatever the current state happens to be.
type pendingAction struct {
	prev      State
	prevToday *uuid.UUID
}

// Store is the source of truth for per-post like state. The state map
// is replaced wholesale on every write, never mutated in place, so
// snapshots handed to observers stay valid. All mutations are
// serialized with a mutex; callers may touch the store from any
// goroutine.
type Store struct {
	mu      sync.Mutex
	clock   clock.Clock
	states  map[uuid.UUID]State
	today   *uuid.UUID // post liked by the current user today, if any
	pending map[uuid.UUID]pendingAction
}

func NewStore(clk clock.Clock) *Store {
	return &Store{
		clock:   clk,
		states:  make(map[uuid.UUID]State),
		pending: make(map[uuid.UUID]pendingAction),
	}
}

// InitializeLikes rebuilds the whole state map from a fresh server
// fetch. It counts likes per post, marks the posts liked by the current
// user, and derives the today-liked-post pointer from the user's like
// dated today. Prior state, including pending operations, is discarded.
func (s *Store) InitializeLikes(likes []models.Like, posts []models.Post, currentUserID uuid.UUID) {
	s.mu.Lock()
	defer s.mu.Unlock()

	states := make(map[uuid.UUID]State, len(posts))
	for _, post := range posts {
		var st State
		for _, l := range likes {
			if l.PostID != post.ID {
				continue
			}
			st.Count++
			if l.UserID == currentUserID {
				st.Liked = true
				id := l.ID
				st.LikeID = &id
			}
		}
		states[post.ID] = st
	}

	var today *uuid.UUID
	for _, l := range likes {
		if l.UserID == currentUserID && sameCalendarDay(s.clock, l.CreatedDate) {
			id := l.PostID
			today = &id
			break
		}
	}

	s.states = states
	s.today = today
	s.pending = make(map[uuid.UUID]pendingAction)
}

// OptimisticLike marks the post liked before the network call resolves:
// liked flag set, count incremented, like id stored, processing set,
// and the today-liked pointer moved to this post. No-op if the post has
// no state entry or already has an operation in flight.
func (s *Store) OptimisticLike(postID, likeID uuid.UUID) {
	s.mu.Lock()
	defer s.mu.Unlock()

	st, ok := s.states[postID]
	if !ok || st.Processing {
		return
	}
	s.pending[postID] = pendingAction{prev: st, prevToday: s.today}

	id := likeID
	next := st
	next.Liked = true
	next.Count = st.Count + 1
	next.LikeID = &id
	next.Processing = true
	s.replace(postID, next)

	pid := postID
	s.today = &pid
}

// OptimisticUnlike reverses the displayed state before the delete call
// resolves. The count is floored at zero and the today-liked pointer is
// cleared. No-op if the post has no state entry or an operation is
// already in flight.
func (s *Store) OptimisticUnlike(postID uuid.UUID) {
	s.mu.Lock()
	defer s.mu.Unlock()

	st, ok := s.states[postID]
	if !ok || st.Processing {
		return
	}
	s.pending[postID] = pendingAction{prev: st, prevToday: s.today}

	next := st
	next.Liked = false
	if next.Count > 0 {
		next.Count = st.Count - 1
	}
	next.LikeID = nil
	next.Processing = true
	s.replace(postID, next)

	s.today = nil
}

// ConfirmLikeAction reconciles an optimistic mutation with the network
// outcome. On success the optimistic state stands and only the
// processing flag clears. On failure the snapshot taken at optimistic
// time is restored, including the today-liked pointer. No-op for posts
// without a state entry.
func (s *Store) ConfirmLikeAction(postID uuid.UUID, success bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	st, ok := s.states[postID]
	if !ok {
		return
	}
	p, hasPending := s.pending[postID]
	delete(s.pending, postID)

	if success || !hasPending {
		st.Processing = false
		s.replace(postID, st)
		return
	}

	s.replace(postID, p.prev)
	s.today = p.prevToday
}

// LikeState returns the state for a post, if known.
func (s *Store) LikeState(postID uuid.UUID) (State, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	st, ok := s.states[postID]
	return st, ok
}

// TodayLikedPostID returns the post the current user liked today, or
// nil when no like has been spent yet.
func (s *Store) TodayLikedPostID() *uuid.UUID {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.today == nil {
		return nil
	}
	id := *s.today
	return &id
}

// Snapshot returns the current state map. The map is never mutated
// after publication, so the returned value is safe to read from any
// goroutine.
func (s *Store) Snapshot() map[uuid.UUID]State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.states
}

// Reset drops all state, as on logout.
func (s *Store) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.states = make(map[uuid.UUID]State)
	s.today = nil
	s.pending = make(map[uuid.UUID]pendingAction)
}

// replace swaps in a new state map with one entry changed. Callers must
// hold s.mu.
func (s *Store) replace(postID uuid.UUID, st State) {
	next := make(map[uuid.UUID]State, len(s.states))
	for k, v := range s.states {
		next[k] = v
	}
	next[postID] = st
	s.states = next
}
