package follows

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"challengeme/events"
	"challengeme/interceptor"
	"challengeme/rpc"
)

type relation struct {
	follower uuid.UUID
	followed uuid.UUID
}

type fakeRepo struct {
	relations []relation
}

func (f *fakeRepo) CreateFollow(_ context.Context, followerID, followedID uuid.UUID) error {
	for _, r := range f.relations {
		if r.follower == followerID && r.followed == followedID {
			return nil
		}
	}
	f.relations = append(f.relations, relation{follower: followerID, followed: followedID})
	return nil
}

func (f *fakeRepo) DeleteFollow(_ context.Context, followerID, followedID uuid.UUID) error {
	for i, r := range f.relations {
		if r.follower == followerID && r.followed == followedID {
			f.relations = append(f.relations[:i], f.relations[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}

func (f *fakeRepo) GetFollowerIDs(_ context.Context, userID uuid.UUID) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	for _, r := range f.relations {
		if r.followed == userID {
			ids = append(ids, r.follower)
		}
	}
	return ids, nil
}

func (f *fakeRepo) GetFollowingIDs(_ context.Context, userID uuid.UUID) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	for _, r := range f.relations {
		if r.follower == userID {
			ids = append(ids, r.followed)
		}
	}
	return ids, nil
}

func (f *fakeRepo) IsFollowing(_ context.Context, followerID, followedID uuid.UUID) (bool, error) {
	for _, r := range f.relations {
		if r.follower == followerID && r.followed == followedID {
			return true, nil
		}
	}
	return false, nil
}

type fakePublisher struct {
	subjects []string
}

func (f *fakePublisher) PublishEvent(subject string, _ interface{}) error {
	f.subjects = append(f.subjects, subject)
	return nil
}

func callerCtx(userID uuid.UUID) context.Context {
	return context.WithValue(context.Background(), interceptor.UserIDKey, userID)
}

func rawRequest(t *testing.T, v interface{}) json.RawMessage {
	t.Helper()
	data, err := json.Marshal(v)
	require.NoError(t, err)
	return data
}

func TestFollow(t *testing.T) {
	repo := &fakeRepo{}
	pub := &fakePublisher{}
	handler := NewHandler(repo, pub)

	me := uuid.New()
	other := uuid.New()

	_, err := handler.Follow(callerCtx(me), rawRequest(t, FollowRequest{UserID: other}))
	require.NoError(t, err)

	following, err := repo.IsFollowing(context.Background(), me, other)
	require.NoError(t, err)
	assert.True(t, following)
	assert.Equal(t, []string{events.SubjectFollowCreated}, pub.subjects)
}

func TestFollow_SelfFollowRejected(t *testing.T) {
	handler := NewHandler(&fakeRepo{}, &fakePublisher{})

	me := uuid.New()
	_, err := handler.Follow(callerCtx(me), rawRequest(t, FollowRequest{UserID: me}))

	var rpcErr *rpc.Error
	require.ErrorAs(t, err, &rpcErr)
	assert.Equal(t, rpc.CodeInvalidArgument, rpcErr.Code)
}

func TestUnfollow_NotFollowing(t *testing.T) {
	handler := NewHandler(&fakeRepo{}, &fakePublisher{})

	_, err := handler.Unfollow(callerCtx(uuid.New()), rawRequest(t, FollowRequest{UserID: uuid.New()}))

	var rpcErr *rpc.Error
	require.ErrorAs(t, err, &rpcErr)
	assert.Equal(t, rpc.CodeNotFound, rpcErr.Code)
}

func TestFollow_ThenUnfollow(t *testing.T) {
	repo := &fakeRepo{}
	handler := NewHandler(repo, &fakePublisher{})

	me := uuid.New()
	other := uuid.New()

	_, err := handler.Follow(callerCtx(me), rawRequest(t, FollowRequest{UserID: other}))
	require.NoError(t, err)

	_, err = handler.Unfollow(callerCtx(me), rawRequest(t, FollowRequest{UserID: other}))
	require.NoError(t, err)

	following, err := repo.IsFollowing(context.Background(), me, other)
	require.NoError(t, err)
	assert.False(t, following)
}

func TestFollowers(t *testing.T) {
	repo := &fakeRepo{}
	handler := NewHandler(repo, &fakePublisher{})

	target := uuid.New()
	fans := []uuid.UUID{uuid.New(), uuid.New()}
	for _, fan := range fans {
		require.NoError(t, repo.CreateFollow(context.Background(), fan, target))
	}
	followed := uuid.New()
	require.NoError(t, repo.CreateFollow(context.Background(), target, followed))

	result, err := handler.Followers(context.Background(), rawRequest(t, FollowersRequest{UserID: target}))
	require.NoError(t, err)

	resp, ok := result.(*FollowersResponse)
	require.True(t, ok)
	assert.ElementsMatch(t, fans, resp.FollowerIDs)
	assert.Equal(t, []uuid.UUID{followed}, resp.FollowingIDs)
}
