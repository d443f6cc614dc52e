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

type postRepository struct {
	db *sqlx.DB
}

type CreatePostRequest struct {
	Images  []string `json:"images"`
	Caption string   `json:"caption"`
}

type UpdatePostRequest struct {
	ID      string   `json:"id" validate:"required"`
	Images  []string `json:"images"`
	Caption string   `json:"caption"`
	Like    bool     `json:"like"`
	Comment string   `json:"comment"`
}

func NewPostRepository(db *sqlx.DB) PostRepository {
	return &postRepository{db: db}
}

// Create stores the post and links it into the owner's post list in one
// transaction, so the link cannot be lost between the two writes.
func (r *postRepository) Create(ctx context.Context, post *models.Post) error {
	if post.PostID == "" {
		post.PostID = uuid.New().String()
	}

	now := time.Now()
	post.CreatedAt = now
	post.UpdatedAt = now

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	query := `
		INSERT INTO posts (post_id, user_id, images, caption, created_at, updated_at)
		VALUES (:post_id, :user_id, :images, :caption, :created_at, :updated_at)
	`

	_, err = tx.NamedExecContext(ctx, query, post)
	if err != nil {
		return fmt.Errorf("failed to create post: %w", err)
	}

	query = `INSERT INTO user_posts (user_id, post_id) VALUES ($1, $2)`

	_, err = tx.ExecContext(ctx, query, post.UserID, post.PostID)
	if err != nil {
		return fmt.Errorf("failed to link post to user: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit post creation: %w", err)
	}

	return nil
}

func (r *postRepository) GetByID(ctx context.Context, postID string) (*models.Post, error) {
	var post models.Post

	query := `SELECT * FROM posts WHERE post_id = $1`

	err := r.db.GetContext(ctx, &post, query, postID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("post %s: %w", postID, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get post: %w", err)
	}

	if err := r.loadLists(ctx, &post); err != nil {
		return nil, err
	}

	return &post, nil
}

func (r *postRepository) GetAll(ctx context.Context) ([]models.Post, error) {
	var posts []models.Post

	query := `SELECT * FROM posts ORDER BY created_at DESC`

	err := r.db.SelectContext(ctx, &posts, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list posts: %w", err)
	}

	for i := range posts {
		if err := r.loadLists(ctx, &posts[i]); err != nil {
			return nil, err
		}
	}

	return posts, nil
}

// GetByUserID reads through the owner's link list rather than the posts
// table itself, matching what the user's posts field reports.
func (r *postRepository) GetByUserID(ctx context.Context, userID string) ([]models.Post, error) {
	var posts []models.Post

	query := `
		SELECT p.* FROM posts p
		JOIN user_posts up ON up.post_id = p.post_id
		WHERE up.user_id = $1
		ORDER BY up.added_at
	`

	err := r.db.SelectContext(ctx, &posts, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list user posts: %w", err)
	}

	for i := range posts {
		if err := r.loadLists(ctx, &posts[i]); err != nil {
			return nil, err
		}
	}

	return posts, nil
}

func (r *postRepository) Update(ctx context.Context, post *models.Post) error {
	query := `
		UPDATE posts SET
			images = :images,
			caption = :caption,
			updated_at = :updated_at
		WHERE post_id = :post_id
	`

	post.UpdatedAt = time.Now()

	result, err := r.db.NamedExecContext(ctx, query, post)
	if err != nil {
		return fmt.Errorf("failed to update post: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check updated rows: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("post %s: %w", post.PostID, ErrNotFound)
	}

	return nil
}

// ToggleLike flips the caller's like on the post. The check and the write
// run in one transaction so a user ends up in the list at most once.
func (r *postRepository) ToggleLike(ctx context.Context, postID, userID string) (bool, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return false, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var count int

	query := `SELECT COUNT(*) FROM post_likes WHERE post_id = $1 AND user_id = $2`

	err = tx.GetContext(ctx, &count, query, postID, userID)
	if err != nil {
		return false, fmt.Errorf("failed to check like state: %w", err)
	}

	liked := count == 0
	if liked {
		query = `INSERT INTO post_likes (post_id, user_id) VALUES ($1, $2)`
	} else {
		query = `DELETE FROM post_likes WHERE post_id = $1 AND user_id = $2`
	}

	_, err = tx.ExecContext(ctx, query, postID, userID)
	if err != nil {
		return false, fmt.Errorf("failed to toggle like: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return false, fmt.Errorf("failed to commit like toggle: %w", err)
	}

	return liked, nil
}

func (r *postRepository) AddComment(ctx context.Context, postID, commentID string) error {
	query := `
		INSERT INTO post_comments (post_id, comment_id)
		VALUES ($1, $2)
		ON CONFLICT (post_id, comment_id) DO NOTHING
	`

	_, err := r.db.ExecContext(ctx, query, postID, commentID)
	if err != nil {
		return fmt.Errorf("failed to add comment to post: %w", err)
	}

	return nil
}

// Delete removes the post, every comment it referenced and the owner's
// link in one transaction.
func (r *postRepository) Delete(ctx context.Context, postID string) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	query := `
		DELETE FROM comments
		WHERE comment_id IN (SELECT comment_id FROM post_comments WHERE post_id = $1)
	`

	_, err = tx.ExecContext(ctx, query, postID)
	if err != nil {
		return fmt.Errorf("failed to delete post comments: %w", err)
	}

	if err := deletePostRows(ctx, tx, postID); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit post deletion: %w", err)
	}

	return nil
}

// DeleteShallow drops the post and its links but keeps the comment rows.
// Used by the user-update path, which never cascaded to comments.
func (r *postRepository) DeleteShallow(ctx context.Context, postID string) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := deletePostRows(ctx, tx, postID); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit post deletion: %w", err)
	}

	return nil
}

func deletePostRows(ctx context.Context, tx *sqlx.Tx, postID string) error {
	query := `DELETE FROM post_comments WHERE post_id = $1`
	if _, err := tx.ExecContext(ctx, query, postID); err != nil {
		return fmt.Errorf("failed to delete comment links: %w", err)
	}

	query = `DELETE FROM post_likes WHERE post_id = $1`
	if _, err := tx.ExecContext(ctx, query, postID); err != nil {
		return fmt.Errorf("failed to delete likes: %w", err)
	}

	query = `DELETE FROM posts WHERE post_id = $1`
	result, err := tx.ExecContext(ctx, query, postID)
	if err != nil {
		return fmt.Errorf("failed to delete post: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check deleted rows: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("post %s: %w", postID, ErrNotFound)
	}

	query = `DELETE FROM user_posts WHERE post_id = $1`
	if _, err := tx.ExecContext(ctx, query, postID); err != nil {
		return fmt.Errorf("failed to unlink post from user: %w", err)
	}

	return nil
}

func (r *postRepository) loadLists(ctx context.Context, post *models.Post) error {
	post.Likes = []string{}
	post.Comments = []string{}

	query := `SELECT user_id FROM post_likes WHERE post_id = $1 ORDER BY added_at`
	if err := r.db.SelectContext(ctx, &post.Likes, query, post.PostID); err != nil {
		return fmt.Errorf("failed to load like list: %w", err)
	}

	query = `SELECT comment_id FROM post_comments WHERE post_id = $1 ORDER BY added_at`
	if err := r.db.SelectContext(ctx, &post.Comments, query, post.PostID); err != nil {
		return fmt.Errorf("failed to load comment list: %w", err)
	}

	return nil
}
