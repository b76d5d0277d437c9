package likes

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"challengeme/events"
	"challengeme/interceptor"
	models "challengeme/model"
	"challengeme/rpc"
)

type fakeRepo struct {
	likes     map[uuid.UUID]models.Like
	createErr error
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{likes: make(map[uuid.UUID]models.Like)}
}

func (f *fakeRepo) CreateLike(_ context.Context, like models.Like) error {
	if f.createErr != nil {
		return f.createErr
	}
	for _, l := range f.likes {
		if l.PostID == like.PostID && l.UserID == like.UserID {
			return ErrAlreadyExists
		}
	}
	f.likes[like.ID] = like
	return nil
}

func (f *fakeRepo) DeleteLike(_ context.Context, likeID, userID uuid.UUID) (*models.Like, error) {
	like, ok := f.likes[likeID]
	if !ok || like.UserID != userID {
		return nil, ErrNotFound
	}
	delete(f.likes, likeID)
	return &like, nil
}

func (f *fakeRepo) GetLikeByID(_ context.Context, likeID uuid.UUID) (*models.Like, error) {
	if like, ok := f.likes[likeID]; ok {
		return &like, nil
	}
	return nil, nil
}

func (f *fakeRepo) GetLikeCountByPost(_ context.Context, postID uuid.UUID) (int32, error) {
	var count int32
	for _, l := range f.likes {
		if l.PostID == postID {
			count++
		}
	}
	return count, nil
}

func (f *fakeRepo) GetLikeByUserAndDate(_ context.Context, userID uuid.UUID, date string) (*models.Like, error) {
	for _, l := range f.likes {
		if l.UserID == userID && l.CreatedDate == date {
			like := l
			return &like, nil
		}
	}
	return nil, nil
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

func validLike(userID uuid.UUID) models.Like {
	return models.Like{
		ID:          uuid.New(),
		UserID:      userID,
		PostID:      uuid.New(),
		PostOwnerID: uuid.New(),
		CreatedDate: models.DateOf(time.Now()),
	}
}

func TestCreateLike(t *testing.T) {
	repo := newFakeRepo()
	pub := &fakePublisher{}
	handler := NewHandler(repo, pub)

	me := uuid.New()
	like := validLike(me)

	result, err := handler.CreateLike(callerCtx(me), rawRequest(t, CreateLikeRequest{Like: like}))
	require.NoError(t, err)
	require.NotNil(t, result)

	assert.Contains(t, repo.likes, like.ID)
	assert.Equal(t, []string{events.SubjectLikeCreated}, pub.subjects)
}

func TestCreateLike_DailyLikeAlreadySpent(t *testing.T) {
	repo := newFakeRepo()
	handler := NewHandler(repo, &fakePublisher{})

	me := uuid.New()
	first := validLike(me)
	_, err := handler.CreateLike(callerCtx(me), rawRequest(t, CreateLikeRequest{Like: first}))
	require.NoError(t, err)

	second := validLike(me)
	_, err = handler.CreateLike(callerCtx(me), rawRequest(t, CreateLikeRequest{Like: second}))
	require.Error(t, err)

	var rpcErr *rpc.Error
	require.ErrorAs(t, err, &rpcErr)
	assert.Equal(t, rpc.CodeAlreadyExists, rpcErr.Code)
	assert.Len(t, repo.likes, 1)
}

func TestCreateLike_OwnPostRejected(t *testing.T) {
	handler := NewHandler(newFakeRepo(), &fakePublisher{})

	me := uuid.New()
	like := validLike(me)
	like.PostOwnerID = me

	_, err := handler.CreateLike(callerCtx(me), rawRequest(t, CreateLikeRequest{Like: like}))
	var rpcErr *rpc.Error
	require.ErrorAs(t, err, &rpcErr)
	assert.Equal(t, rpc.CodeInvalidArgument, rpcErr.Code)
}

func TestCreateLike_SpoofedUserRejected(t *testing.T) {
	handler := NewHandler(newFakeRepo(), &fakePublisher{})

	like := validLike(uuid.New())
	_, err := handler.CreateLike(callerCtx(uuid.New()), rawRequest(t, CreateLikeRequest{Like: like}))

	var rpcErr *rpc.Error
	require.ErrorAs(t, err, &rpcErr)
	assert.Equal(t, rpc.CodeInvalidArgument, rpcErr.Code)
}

func TestCreateLike_MalformedDateRejected(t *testing.T) {
	handler := NewHandler(newFakeRepo(), &fakePublisher{})

	me := uuid.New()
	like := validLike(me)
	like.CreatedDate = "today"

	_, err := handler.CreateLike(callerCtx(me), rawRequest(t, CreateLikeRequest{Like: like}))
	var rpcErr *rpc.Error
	require.ErrorAs(t, err, &rpcErr)
	assert.Equal(t, rpc.CodeInvalidArgument, rpcErr.Code)
}

func TestDeleteLike(t *testing.T) {
	repo := newFakeRepo()
	pub := &fakePublisher{}
	handler := NewHandler(repo, pub)

	me := uuid.New()
	like := validLike(me)
	repo.likes[like.ID] = like

	_, err := handler.DeleteLike(callerCtx(me), rawRequest(t, DeleteLikeRequest{LikeID: like.ID}))
	require.NoError(t, err)
	assert.NotContains(t, repo.likes, like.ID)
	assert.Equal(t, []string{events.SubjectLikeDeleted}, pub.subjects)
}

func TestDeleteLike_OnlyAuthorMayDelete(t *testing.T) {
	repo := newFakeRepo()
	handler := NewHandler(repo, &fakePublisher{})

	like := validLike(uuid.New())
	repo.likes[like.ID] = like

	_, err := handler.DeleteLike(callerCtx(uuid.New()), rawRequest(t, DeleteLikeRequest{LikeID: like.ID}))
	var rpcErr *rpc.Error
	require.ErrorAs(t, err, &rpcErr)
	assert.Equal(t, rpc.CodeNotFound, rpcErr.Code)
	assert.Contains(t, repo.likes, like.ID)
}
