package like

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	models "challengeme/model"
	"challengeme/pkg/clock"
)

func engineFixture() (*Engine, *Store, *clock.Fake, uuid.UUID) {
	clk := clock.NewFake(testNow)
	store := NewStore(clk)
	return NewEngine(store, clk), store, clk, uuid.New()
}

func todaysPost(owner uuid.UUID) models.Post {
	return models.Post{ID: uuid.New(), UserID: owner, CreatedDate: models.DateOf(testNow)}
}

func TestCanLikePost(t *testing.T) {
	engine, store, _, me := engineFixture()
	post := todaysPost(uuid.New())
	store.InitializeLikes(nil, []models.Post{post}, me)

	assert.True(t, engine.CanLikePost(post, me))
}

func TestCanLikePost_DeniesOwnPost(t *testing.T) {
	engine, store, _, me := engineFixture()
	post := todaysPost(me)
	store.InitializeLikes(nil, []models.Post{post}, me)

	assert.False(t, engine.CanLikePost(post, me))
}

func TestCanLikePost_DeniesWhenDailyLikeSpent(t *testing.T) {
	engine, store, _, me := engineFixture()
	liked := todaysPost(uuid.New())
	other := todaysPost(uuid.New())
	store.InitializeLikes([]models.Like{
		{ID: uuid.New(), UserID: me, PostID: liked.ID, CreatedDate: models.DateOf(testNow)},
	}, []models.Post{liked, other}, me)

	assert.False(t, engine.CanLikePost(other, me))
}

func TestCanLikePost_DateBoundary(t *testing.T) {
	engine, store, _, me := engineFixture()

	yesterday := todaysPost(uuid.New())
	yesterday.CreatedDate = models.DateOf(testNow.AddDate(0, 0, -1))
	today := todaysPost(uuid.New())
	store.InitializeLikes(nil, []models.Post{yesterday, today}, me)

	assert.False(t, engine.CanLikePost(yesterday, me), "stale posts are frozen")
	assert.True(t, engine.CanLikePost(today, me))
}

func TestCanLikePost_MalformedDateIsIneligible(t *testing.T) {
	engine, store, _, me := engineFixture()
	post := todaysPost(uuid.New())
	post.CreatedDate = "14.03.2026"
	store.InitializeLikes(nil, []models.Post{post}, me)

	assert.False(t, engine.CanLikePost(post, me))
}

func TestCanLikePost_DeniesAlreadyLikedPost(t *testing.T) {
	engine, store, _, me := engineFixture()
	post := todaysPost(uuid.New())
	// Liked yesterday: the daily pointer is free but the post itself
	// still shows liked-by-me.
	store.InitializeLikes([]models.Like{
		{ID: uuid.New(), UserID: me, PostID: post.ID, CreatedDate: models.DateOf(testNow.AddDate(0, 0, -1))},
	}, []models.Post{post}, me)

	require.Nil(t, store.TodayLikedPostID())
	assert.False(t, engine.CanLikePost(post, me))
}

// Resolves the double-toggle ambiguity of the source app: a post with a
// network call in flight accepts no further actions until reconciled.
func TestEligibility_BlockedWhileProcessing(t *testing.T) {
	engine, store, _, me := engineFixture()
	post := todaysPost(uuid.New())
	store.InitializeLikes(nil, []models.Post{post}, me)

	store.OptimisticLike(post.ID, uuid.New())
	assert.False(t, engine.CanLikePost(post, me))
	assert.False(t, engine.CanUnlikePost(post, me))

	store.ConfirmLikeAction(post.ID, true)
	assert.True(t, engine.CanUnlikePost(post, me))
}

func TestCanUnlikePost(t *testing.T) {
	engine, store, _, me := engineFixture()
	post := todaysPost(uuid.New())
	store.InitializeLikes([]models.Like{
		{ID: uuid.New(), UserID: me, PostID: post.ID, CreatedDate: models.DateOf(testNow)},
	}, []models.Post{post}, me)

	assert.True(t, engine.CanUnlikePost(post, me))
}

func TestCanUnlikePost_DeniesNotLiked(t *testing.T) {
	engine, store, _, me := engineFixture()
	post := todaysPost(uuid.New())
	store.InitializeLikes(nil, []models.Post{post}, me)

	assert.False(t, engine.CanUnlikePost(post, me))
}

func TestCanUnlikePost_DeniesStalePost(t *testing.T) {
	engine, store, clk, me := engineFixture()
	post := todaysPost(uuid.New())
	store.InitializeLikes([]models.Like{
		{ID: uuid.New(), UserID: me, PostID: post.ID, CreatedDate: models.DateOf(testNow)},
	}, []models.Post{post}, me)

	// Midnight passes; the like is now locked in.
	clk.Advance(24 * time.Hour)
	assert.False(t, engine.CanUnlikePost(post, me))
}

func TestCanUnlikePost_DeniesMismatchedTodayPointer(t *testing.T) {
	engine, store, _, me := engineFixture()
	post := todaysPost(uuid.New())
	// Liked yesterday, so the post shows liked but is not today's like.
	store.InitializeLikes([]models.Like{
		{ID: uuid.New(), UserID: me, PostID: post.ID, CreatedDate: models.DateOf(testNow.AddDate(0, 0, -1))},
	}, []models.Post{post}, me)

	assert.False(t, engine.CanUnlikePost(post, me))
}

func TestCanLikePost_UnknownPostStateStillEligible(t *testing.T) {
	engine, _, _, me := engineFixture()
	post := todaysPost(uuid.New())

	// Eligibility does not require a state entry; the optimistic store
	// treats the missing entry as a no-op on its own.
	assert.True(t, engine.CanLikePost(post, me))
}

// Walks the scenario end to end: one like per day, confirmed rollback.
func TestLikeOfTheDayScenario(t *testing.T) {
	engine, store, _, me := engineFixture()
	p1 := todaysPost(uuid.New())
	p2 := todaysPost(uuid.New())
	store.InitializeLikes(nil, []models.Post{p1, p2}, me)

	require.True(t, engine.CanLikePost(p1, me))

	likeID := uuid.New()
	store.OptimisticLike(p1.ID, likeID)

	today := store.TodayLikedPostID()
	require.NotNil(t, today)
	assert.Equal(t, p1.ID, *today)
	assert.False(t, engine.CanLikePost(p2, me), "daily like already spent")

	store.ConfirmLikeAction(p1.ID, false)
	st, _ := store.LikeState(p1.ID)
	assert.Equal(t, State{}, st)
	assert.Nil(t, store.TodayLikedPostID())
	assert.True(t, engine.CanLikePost(p2, me), "rollback frees the daily like")
}
