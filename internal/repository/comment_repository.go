package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"snapgram/internal/models"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

type commentRepository struct {
	db *sqlx.DB
}

type CreateCommentRequest struct {
	User string `json:"user" validate:"required"`
	Text string `json:"text" validate:"required"`
}

type UpdateCommentRequest struct {
	ID   string `json:"id" validate:"required"`
	Text string `json:"text"`
}

func NewCommentRepository(db *sqlx.DB) CommentRepository {
	return &commentRepository{db: db}
}

func (r *commentRepository) Create(ctx context.Context, comment *models.Comment) error {
	if comment.CommentID == "" {
		comment.CommentID = uuid.New().String()
	}

	now := time.Now()
	comment.CreatedAt = now
	comment.UpdatedAt = now

	query := `
		INSERT INTO comments (comment_id, user_id, text, created_at, updated_at)
		VALUES (:comment_id, :user_id, :text, :created_at, :updated_at)
	`

	_, err := r.db.NamedExecContext(ctx, query, comment)
	if err != nil {
		return fmt.Errorf("failed to create comment: %w", err)
	}

	return nil
}

func (r *commentRepository) GetByID(ctx context.Context, commentID string) (*models.Comment, error) {
	var comment models.Comment

	query := `SELECT * FROM comments WHERE comment_id = $1`

	err := r.db.GetContext(ctx, &comment, query, commentID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("comment %s: %w", commentID, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get comment: %w", err)
	}

	return &comment, nil
}

func (r *commentRepository) GetAll(ctx context.Context) ([]models.Comment, error) {
	var comments []models.Comment

	query := `SELECT * FROM comments ORDER BY created_at`

	err := r.db.SelectContext(ctx, &comments, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list comments: %w", err)
	}

	return comments, nil
}

// GetByPostID reads through the post's comment link list, matching what
// the post's comments field reports.
func (r *commentRepository) GetByPostID(ctx context.Context, postID string) ([]models.Comment, error) {
	var comments []models.Comment

	query := `
		SELECT c.* FROM comments c
		JOIN post_comments pc ON pc.comment_id = c.comment_id
		WHERE pc.post_id = $1
		ORDER BY pc.added_at
	`

	err := r.db.SelectContext(ctx, &comments, query, postID)
	if err != nil {
		return nil, fmt.Errorf("failed to list post comments: %w", err)
	}

	return comments, nil
}

func (r *commentRepository) Update(ctx context.Context, comment *models.Comment) error {
	query := `
		UPDATE comments SET
			text = :text,
			updated_at = :updated_at
		WHERE comment_id = :comment_id
	`

	comment.UpdatedAt = time.Now()

	result, err := r.db.NamedExecContext(ctx, query, comment)
	if err != nil {
		return fmt.Errorf("failed to update comment: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check updated rows: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("comment %s: %w", comment.CommentID, ErrNotFound)
	}

	return nil
}

func (r *commentRepository) Delete(ctx context.Context, commentID string) error {
	query := `DELETE FROM comments WHERE comment_id = $1`

	result, err := r.db.ExecContext(ctx, query, commentID)
	if err != nil {
		return fmt.Errorf("failed to delete comment: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check deleted rows: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("comment %s: %w", commentID, ErrNotFound)
	}

	query = `DELETE FROM post_comments WHERE comment_id = $1`

	_, err = r.db.ExecContext(ctx, query, commentID)
	if err != nil {
		return fmt.Errorf("failed to unlink comment: %w", err)
	}

	return nil
}
