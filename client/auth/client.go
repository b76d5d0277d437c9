package auth

import (
	"context"
	"fmt"

	"challengeme/client/like"
	models "challengeme/model"
)

// RegisterInput is the payload for account creation.
type RegisterInput struct {
	Username string  `json:"username"`
	Email    string  `json:"email"`
	Password string  `json:"password"`
	Bio      *string `json:"bio,omitempty"`
}

// Result is what the auth service returns on a successful register or
// login.
type Result struct {
	User         models.User `json:"user"`
	AccessToken  string      `json:"access_token"`
	RefreshToken string      `json:"refresh_token"`
	ExpiresIn    int32       `json:"expires_in"`
}

// Service is the remote account service.
type Service interface {
	Register(ctx context.Context, input RegisterInput) (*Result, error)
	Login(ctx context.Context, email, password string) (*Result, error)
}

// Client drives the register/login/logout flows and keeps the session
// and the like store consistent with them.
type Client struct {
	svc     Service
	session *Session
	store   *like.Store
}

func NewClient(svc Service, session *Session, store *like.Store) *Client {
	return &Client{svc: svc, session: session, store: store}
}

func (c *Client) Register(ctx context.Context, input RegisterInput) error {
	if input.Username == "" || input.Email == "" || input.Password == "" {
		return fmt.Errorf("username, email, and password are required")
	}
	res, err := c.svc.Register(ctx, input)
	if err != nil {
		return fmt.Errorf("failed to register: %w", err)
	}
	c.session.begin(res.User, res.AccessToken, res.RefreshToken)
	c.store.Reset()
	return nil
}

func (c *Client) Login(ctx context.Context, email, password string) error {
	if email == "" || password == "" {
		return fmt.Errorf("email and password are required")
	}
	res, err := c.svc.Login(ctx, email, password)
	if err != nil {
		return fmt.Errorf("failed to log in: %w", err)
	}
	c.session.begin(res.User, res.AccessToken, res.RefreshToken)
	c.store.Reset()
	return nil
}

// Logout clears the session and all derived like state.
func (c *Client) Logout() {
	c.session.Clear()
	c.store.Reset()
}
