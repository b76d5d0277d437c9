package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"challengeme/client/like"
	models "challengeme/model"
	"challengeme/pkg/clock"
)

type fakeAuthService struct {
	result *Result
	err    error

	registered []RegisterInput
	logins     []string
}

func (f *fakeAuthService) Register(ctx context.Context, input RegisterInput) (*Result, error) {
	f.registered = append(f.registered, input)
	return f.result, f.err
}

func (f *fakeAuthService) Login(ctx context.Context, email, password string) (*Result, error) {
	f.logins = append(f.logins, email)
	return f.result, f.err
}

func newTestClient(svc Service) (*Client, *Session, *like.Store) {
	session := NewSession()
	store := like.NewStore(clock.NewFake(time.Date(2026, time.March, 14, 15, 0, 0, 0, time.Local)))
	return NewClient(svc, session, store), session, store
}

func TestLogin_BeginsSession(t *testing.T) {
	user := models.User{ID: uuid.New(), Username: "maya", Email: "maya@example.com"}
	svc := &fakeAuthService{result: &Result{User: user, AccessToken: "access", RefreshToken: "refresh"}}
	client, session, _ := newTestClient(svc)

	err := client.Login(context.Background(), "maya@example.com", "hunter2")
	require.NoError(t, err)

	assert.True(t, session.SignedIn())
	assert.Equal(t, user.ID, session.UserID())
	assert.Equal(t, "access", session.Token())
	assert.Equal(t, []string{"maya@example.com"}, svc.logins)
}

func TestLogin_FailureLeavesSessionSignedOut(t *testing.T) {
	svc := &fakeAuthService{err: errors.New("invalid credentials")}
	client, session, _ := newTestClient(svc)

	err := client.Login(context.Background(), "maya@example.com", "wrong")
	require.Error(t, err)

	assert.False(t, session.SignedIn())
	assert.Equal(t, uuid.Nil, session.UserID())
	assert.Empty(t, session.Token())
}

func TestLogin_RequiresEmailAndPassword(t *testing.T) {
	svc := &fakeAuthService{}
	client, _, _ := newTestClient(svc)

	assert.Error(t, client.Login(context.Background(), "", "hunter2"))
	assert.Error(t, client.Login(context.Background(), "maya@example.com", ""))
	assert.Empty(t, svc.logins)
}

func TestRegister_BeginsSession(t *testing.T) {
	user := models.User{ID: uuid.New(), Username: "maya"}
	svc := &fakeAuthService{result: &Result{User: user, AccessToken: "access"}}
	client, session, _ := newTestClient(svc)

	err := client.Register(context.Background(), RegisterInput{
		Username: "maya",
		Email:    "maya@example.com",
		Password: "hunter2",
	})
	require.NoError(t, err)

	require.Len(t, svc.registered, 1)
	assert.Equal(t, "maya", svc.registered[0].Username)
	assert.Equal(t, user.ID, session.UserID())
}

func TestRegister_RequiredFields(t *testing.T) {
	svc := &fakeAuthService{}
	client, _, _ := newTestClient(svc)

	err := client.Register(context.Background(), RegisterInput{Email: "maya@example.com", Password: "hunter2"})
	assert.Error(t, err)
	assert.Empty(t, svc.registered)
}

func TestLogout_ResetsSessionAndLikeState(t *testing.T) {
	user := models.User{ID: uuid.New()}
	svc := &fakeAuthService{result: &Result{User: user, AccessToken: "access"}}
	client, session, store := newTestClient(svc)

	require.NoError(t, client.Login(context.Background(), "maya@example.com", "hunter2"))

	post := models.Post{ID: uuid.New(), UserID: uuid.New(), CreatedDate: "2026-03-14"}
	likeRec := models.Like{ID: uuid.New(), UserID: user.ID, PostID: post.ID, CreatedDate: "2026-03-14"}
	store.InitializeLikes([]models.Like{likeRec}, []models.Post{post}, user.ID)
	require.NotNil(t, store.TodayLikedPostID())

	client.Logout()

	assert.False(t, session.SignedIn())
	assert.Nil(t, store.TodayLikedPostID())
	_, ok := store.LikeState(post.ID)
	assert.False(t, ok)
}

func TestSession_UserReturnsCopy(t *testing.T) {
	user := models.User{ID: uuid.New(), Username: "maya"}
	svc := &fakeAuthService{result: &Result{User: user}}
	client, session, _ := newTestClient(svc)
	require.NoError(t, client.Login(context.Background(), "maya@example.com", "hunter2"))

	got := session.User()
	require.NotNil(t, got)
	got.Username = "mutated"

	assert.Equal(t, "maya", session.User().Username)
}
