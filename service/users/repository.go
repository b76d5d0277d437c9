package users

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	models "challengeme/model"
)

type Repository interface {
	CreateUser(ctx context.Context, user *models.User, passwordHash string) error
	GetUserByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)
	GetPasswordHash(ctx context.Context, id uuid.UUID) (string, error)
	UpdateUser(ctx context.Context, id uuid.UUID, input models.UpdateUserInput) (*models.User, error)
	CreateRefreshToken(ctx context.Context, userID uuid.UUID, token string, expiresAt time.Time) error
}

type userRepository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &userRepository{db: db}
}

// CreateUser inserts a new account row
func (r *userRepository) CreateUser(ctx context.Context, user *models.User, passwordHash string) error {
	query := `
		INSERT INTO users (id, username, email, password_hash, bio, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := r.db.ExecContext(ctx, query,
		user.ID, user.Username, user.Email, passwordHash, user.Bio, user.CreatedAt, user.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}

	return nil
}

const userColumns = `
	u.id, u.username, u.email, u.bio, u.created_at, u.updated_at,
	(SELECT COUNT(*) FROM follows f WHERE f.followed_id = u.id) AS followers_count,
	(SELECT COUNT(*) FROM follows f WHERE f.follower_id = u.id) AS following_count,
	(SELECT COUNT(*) FROM posts p WHERE p.user_id = u.id) AS posts_count
`

func (r *userRepository) GetUserByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	return r.getUser(ctx, "u.id = $1", id)
}

func (r *userRepository) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	return r.getUser(ctx, "u.email = $1", email)
}

func (r *userRepository) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	return r.getUser(ctx, "u.username = $1", username)
}

func (r *userRepository) getUser(ctx context.Context, where string, arg interface{}) (*models.User, error) {
	query := fmt.Sprintf("SELECT %s FROM users u WHERE %s", userColumns, where)

	var user models.User
	err := r.db.GetContext(ctx, &user, query, arg)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	return &user, nil
}

func (r *userRepository) GetPasswordHash(ctx context.Context, id uuid.UUID) (string, error) {
	query := `SELECT password_hash FROM users WHERE id = $1`

	var hash string
	err := r.db.GetContext(ctx, &hash, query, id)
	if err != nil {
		return "", fmt.Errorf("failed to get password hash: %w", err)
	}

	return hash, nil
}

// UpdateUser applies the non-nil fields of input and returns the fresh row
func (r *userRepository) UpdateUser(ctx context.Context, id uuid.UUID, input models.UpdateUserInput) (*models.User, error) {
	query := `
		UPDATE users
		SET username = COALESCE($2, username),
		    bio = COALESCE($3, bio),
		    updated_at = $4
		WHERE id = $1
	`

	result, err := r.db.ExecContext(ctx, query, id, input.Username, input.Bio, time.Now())
	if err != nil {
		return nil, fmt.Errorf("failed to update user: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return nil, errors.New("user not found")
	}

	return r.GetUserByID(ctx, id)
}

func (r *userRepository) CreateRefreshToken(ctx context.Context, userID uuid.UUID, token string, expiresAt time.Time) error {
	query := `
		INSERT INTO refresh_tokens (id, user_id, token, expires_at, created_at, is_revoked)
		VALUES ($1, $2, $3, $4, $5, false)
	`

	_, err := r.db.ExecContext(ctx, query, uuid.New(), userID, token, expiresAt, time.Now())
	if err != nil {
		return fmt.Errorf("failed to store refresh token: %w", err)
	}

	return nil
}
