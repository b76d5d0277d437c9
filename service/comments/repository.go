package comments

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	models "challengeme/model"
)

type Repository interface {
	CreateComment(ctx context.Context, comment *models.Comment) error
	GetCommentsByPost(ctx context.Context, postID uuid.UUID, limit int) ([]models.Comment, error)
	GetCommentCountByPost(ctx context.Context, postID uuid.UUID) (int32, error)
}

type commentRepository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &commentRepository{db: db}
}

func (r *commentRepository) CreateComment(ctx context.Context, comment *models.Comment) error {
	query := `
		INSERT INTO comments (id, post_id, user_id, content, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`

	_, err := r.db.ExecContext(ctx, query,
		comment.ID, comment.PostID, comment.UserID, comment.Content, comment.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create comment: %w", err)
	}

	return nil
}

func (r *commentRepository) GetCommentsByPost(ctx context.Context, postID uuid.UUID, limit int) ([]models.Comment, error) {
	if limit <= 0 {
		limit = 50
	}

	query := `
		SELECT id, post_id, user_id, content, created_at
		FROM comments
		WHERE post_id = $1
		ORDER BY created_at DESC
		LIMIT $2
	`

	var comments []models.Comment
	err := r.db.SelectContext(ctx, &comments, query, postID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get comments: %w", err)
	}

	return comments, nil
}

func (r *commentRepository) GetCommentCountByPost(ctx context.Context, postID uuid.UUID) (int32, error) {
	query := `
		SELECT COUNT(*)
		FROM comments
		WHERE post_id = $1
	`

	var count int32
	err := r.db.GetContext(ctx, &count, query, postID)
	if err != nil {
		return 0, fmt.Errorf("failed to get comment count: %w", err)
	}

	return count, nil
}
