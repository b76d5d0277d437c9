// Package users implements accounts: registration, login, and profiles.
package users

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"challengeme/interceptor"
	models "challengeme/model"
	"challengeme/pkg/jwt"
	"challengeme/rpc"
)

type RegisterRequest struct {
	Username string  `json:"username"`
	Email    string  `json:"email"`
	Password string  `json:"password"`
	Bio      *string `json:"bio,omitempty"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type AuthResponse struct {
	User         models.User `json:"user"`
	AccessToken  string      `json:"access_token"`
	RefreshToken string      `json:"refresh_token"`
	ExpiresIn    int32       `json:"expires_in"`
}

type GetUserRequest struct {
	UserID uuid.UUID `json:"user_id"`
}

type UpdateUserRequest struct {
	Input models.UpdateUserInput `json:"input"`
}

type Handler struct {
	repo          Repository
	jwtManager    *jwt.Manager
	accessExpiry  time.Duration
	refreshExpiry time.Duration
}

func NewHandler(repo Repository, jwtManager *jwt.Manager, accessExpiry, refreshExpiry time.Duration) *Handler {
	return &Handler{
		repo:          repo,
		jwtManager:    jwtManager,
		accessExpiry:  accessExpiry,
		refreshExpiry: refreshExpiry,
	}
}

// Register creates an account and signs the user in.
func (h *Handler) Register(ctx context.Context, data json.RawMessage) (interface{}, error) {
	var req RegisterRequest
	if err := json.Unmarshal(data, &req); err != nil {
		return nil, rpc.InvalidArgument("malformed register request")
	}
	if req.Username == "" || req.Email == "" || req.Password == "" {
		return nil, rpc.InvalidArgument("username, email, and password are required")
	}

	existing, _ := h.repo.GetUserByEmail(ctx, req.Email)
	if existing != nil {
		return nil, rpc.AlreadyExists("user with this email already exists")
	}
	existing, _ = h.repo.GetUserByUsername(ctx, req.Username)
	if existing != nil {
		return nil, rpc.AlreadyExists("username already taken")
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, rpc.Internal("failed to hash password")
	}

	now := time.Now()
	user := &models.User{
		ID:        uuid.New(),
		Username:  req.Username,
		Email:     req.Email,
		Bio:       req.Bio,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := h.repo.CreateUser(ctx, user, string(hashedPassword)); err != nil {
		return nil, rpc.Internal("failed to create user")
	}

	return h.issueTokens(ctx, user)
}

// Login verifies credentials and signs the user in.
func (h *Handler) Login(ctx context.Context, data json.RawMessage) (interface{}, error) {
	var req LoginRequest
	if err := json.Unmarshal(data, &req); err != nil {
		return nil, rpc.InvalidArgument("malformed login request")
	}
	if req.Email == "" || req.Password == "" {
		return nil, rpc.InvalidArgument("email and password are required")
	}

	user, err := h.repo.GetUserByEmail(ctx, req.Email)
	if err != nil || user == nil {
		return nil, rpc.NotFound("invalid email or password")
	}

	hash, err := h.repo.GetPasswordHash(ctx, user.ID)
	if err != nil {
		return nil, rpc.Internal("failed to verify credentials")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(req.Password)); err != nil {
		return nil, rpc.Errorf(rpc.CodeUnauthenticated, "invalid email or password")
	}

	return h.issueTokens(ctx, user)
}

func (h *Handler) issueTokens(ctx context.Context, user *models.User) (interface{}, error) {
	accessToken, err := h.jwtManager.Generate(user.ID.String(), h.accessExpiry)
	if err != nil {
		return nil, rpc.Internal("failed to generate access token")
	}

	refreshToken, err := h.jwtManager.Generate(user.ID.String(), h.refreshExpiry)
	if err != nil {
		return nil, rpc.Internal("failed to generate refresh token")
	}
	if err := h.repo.CreateRefreshToken(ctx, user.ID, refreshToken, time.Now().Add(h.refreshExpiry)); err != nil {
		return nil, rpc.Internal("failed to store refresh token")
	}

	// TODO: add rpc.auth.refresh once the mobile client rotates tokens.
	return &AuthResponse{
		User:         *user,
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresIn:    int32(h.accessExpiry.Seconds()),
	}, nil
}

// GetUser returns a profile by id.
func (h *Handler) GetUser(ctx context.Context, data json.RawMessage) (interface{}, error) {
	var req GetUserRequest
	if err := json.Unmarshal(data, &req); err != nil {
		return nil, rpc.InvalidArgument("malformed get user request")
	}
	if req.UserID == uuid.Nil {
		return nil, rpc.InvalidArgument("user_id is required")
	}

	user, err := h.repo.GetUserByID(ctx, req.UserID)
	if err != nil {
		return nil, rpc.Internal("failed to get user: %v", err)
	}
	if user == nil {
		return nil, rpc.NotFound("user not found")
	}

	return user, nil
}

// UpdateUser edits the caller's own profile.
func (h *Handler) UpdateUser(ctx context.Context, data json.RawMessage) (interface{}, error) {
	userID, ok := interceptor.UserIDFromContext(ctx)
	if !ok {
		return nil, rpc.Errorf(rpc.CodeUnauthenticated, "missing caller identity")
	}

	var req UpdateUserRequest
	if err := json.Unmarshal(data, &req); err != nil {
		return nil, rpc.InvalidArgument("malformed update user request")
	}

	user, err := h.repo.UpdateUser(ctx, userID, req.Input)
	if err != nil {
		return nil, rpc.Internal("failed to update user: %v", err)
	}

	return user, nil
}
