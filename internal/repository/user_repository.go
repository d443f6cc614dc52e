package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"snapgram/internal/models"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"golang.org/x/crypto/bcrypt"
)

type userRepository struct {
	db *sqlx.DB
}

type CreateUserRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
	Name     string `json:"name"`
}

type UpdateUserRequest struct {
	ID             string `json:"id" validate:"required"`
	Username       string `json:"username"`
	Password       string `json:"password"`
	Name           string `json:"name"`
	Contact        string `json:"contact"`
	Bio            string `json:"bio"`
	Avatar         string `json:"avatar"`
	PostIDToRemove string `json:"postIdToRemove"`
	PostIDToAdd    string `json:"postIdToAdd"`
}

func NewUserRepository(db *sqlx.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) CreateUser(ctx context.Context, user *models.User, password string) error {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	user.UserID = uuid.New().String()
	user.Password = string(hashedPassword)
	if user.Avatar == "" {
		user.Avatar = "/images/default_avatar.jpg"
	}

	query := `
		INSERT INTO users (user_id, username, password, name, contact, bio, avatar)
		VALUES (:user_id, :username, :password, :name, :contact, :bio, :avatar)
	`

	_, err = r.db.NamedExecContext(ctx, query, user)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("username %s: %w", user.Username, ErrDuplicateUsername)
		}
		return fmt.Errorf("failed to create user: %w", err)
	}

	return nil
}

func (r *userRepository) GetUserByID(ctx context.Context, userID string) (*models.User, error) {
	var user models.User

	query := `SELECT * FROM users WHERE user_id = $1`

	err := r.db.GetContext(ctx, &user, query, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("user %s: %w", userID, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	if err := r.loadLists(ctx, &user); err != nil {
		return nil, err
	}

	return &user, nil
}

func (r *userRepository) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	var user models.User

	query := `SELECT * FROM users WHERE username = $1`

	err := r.db.GetContext(ctx, &user, query, username)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("user %s: %w", username, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get user by username: %w", err)
	}

	if err := r.loadLists(ctx, &user); err != nil {
		return nil, err
	}

	return &user, nil
}

func (r *userRepository) GetAllUsers(ctx context.Context) ([]models.User, error) {
	var users []models.User

	query := `SELECT * FROM users ORDER BY created_at`

	err := r.db.SelectContext(ctx, &users, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}

	for i := range users {
		if err := r.loadLists(ctx, &users[i]); err != nil {
			return nil, err
		}
	}

	return users, nil
}

func (r *userRepository) SearchUsers(ctx context.Context, pattern string) ([]models.User, error) {
	var users []models.User

	query := `SELECT * FROM users WHERE username ~* $1 ORDER BY username`

	err := r.db.SelectContext(ctx, &users, query, pattern)
	if err != nil {
		return nil, fmt.Errorf("failed to search users: %w", err)
	}

	for i := range users {
		if err := r.loadLists(ctx, &users[i]); err != nil {
			return nil, err
		}
	}

	return users, nil
}

func (r *userRepository) UpdateUser(ctx context.Context, user *models.User) error {
	query := `
		UPDATE users
		SET username = :username, name = :name, contact = :contact, bio = :bio, avatar = :avatar
		WHERE user_id = :user_id
	`

	result, err := r.db.NamedExecContext(ctx, query, user)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("username %s: %w", user.Username, ErrDuplicateUsername)
		}
		return fmt.Errorf("failed to update user: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check updated rows: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("user %s: %w", user.UserID, ErrNotFound)
	}

	return nil
}

func (r *userRepository) UpdatePassword(ctx context.Context, userID, password string) error {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	query := `UPDATE users SET password = $1 WHERE user_id = $2`

	_, err = r.db.ExecContext(ctx, query, string(hashedPassword), userID)
	if err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}

	return nil
}

func (r *userRepository) DeleteUser(ctx context.Context, userID string) error {
	query := `DELETE FROM users WHERE user_id = $1`

	result, err := r.db.ExecContext(ctx, query, userID)
	if err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check deleted rows: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("user %s: %w", userID, ErrNotFound)
	}

	return nil
}

func (r *userRepository) VerifyPassword(ctx context.Context, username, password string) (*models.User, error) {
	user, err := r.GetUserByUsername(ctx, username)
	if err != nil {
		return nil, err
	}

	err = bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password))
	if err != nil {
		return nil, fmt.Errorf("user %s: %w", username, ErrWrongPassword)
	}

	return user, nil
}

func (r *userRepository) IsFollowing(ctx context.Context, followerID, followeeID string) (bool, error) {
	var count int

	query := `SELECT COUNT(*) FROM follows WHERE follower_id = $1 AND followee_id = $2`

	err := r.db.GetContext(ctx, &count, query, followerID, followeeID)
	if err != nil {
		return false, fmt.Errorf("failed to check follow state: %w", err)
	}

	return count > 0, nil
}

// AddFollower records the pair once: the same row backs the follower's
// following list and the followee's followers list, so both sides stay
// in step.
func (r *userRepository) AddFollower(ctx context.Context, followerID, followeeID string) error {
	query := `
		INSERT INTO follows (follower_id, followee_id)
		VALUES ($1, $2)
		ON CONFLICT (follower_id, followee_id) DO NOTHING
	`

	_, err := r.db.ExecContext(ctx, query, followerID, followeeID)
	if err != nil {
		return fmt.Errorf("failed to add follower: %w", err)
	}

	return nil
}

func (r *userRepository) RemoveFollower(ctx context.Context, followerID, followeeID string) error {
	query := `DELETE FROM follows WHERE follower_id = $1 AND followee_id = $2`

	_, err := r.db.ExecContext(ctx, query, followerID, followeeID)
	if err != nil {
		return fmt.Errorf("failed to remove follower: %w", err)
	}

	return nil
}

func (r *userRepository) AddPostRef(ctx context.Context, userID, postID string) error {
	query := `
		INSERT INTO user_posts (user_id, post_id)
		VALUES ($1, $2)
		ON CONFLICT (user_id, post_id) DO NOTHING
	`

	_, err := r.db.ExecContext(ctx, query, userID, postID)
	if err != nil {
		return fmt.Errorf("failed to link post to user: %w", err)
	}

	return nil
}

func (r *userRepository) RemovePostRef(ctx context.Context, userID, postID string) error {
	query := `DELETE FROM user_posts WHERE user_id = $1 AND post_id = $2`

	_, err := r.db.ExecContext(ctx, query, userID, postID)
	if err != nil {
		return fmt.Errorf("failed to unlink post from user: %w", err)
	}

	return nil
}

func (r *userRepository) loadLists(ctx context.Context, user *models.User) error {
	user.Posts = []string{}
	user.Following = []string{}
	user.Followers = []string{}

	query := `SELECT post_id FROM user_posts WHERE user_id = $1 ORDER BY added_at`
	if err := r.db.SelectContext(ctx, &user.Posts, query, user.UserID); err != nil {
		return fmt.Errorf("failed to load post list: %w", err)
	}

	query = `SELECT followee_id FROM follows WHERE follower_id = $1 ORDER BY added_at`
	if err := r.db.SelectContext(ctx, &user.Following, query, user.UserID); err != nil {
		return fmt.Errorf("failed to load following list: %w", err)
	}

	query = `SELECT follower_id FROM follows WHERE followee_id = $1 ORDER BY added_at`
	if err := r.db.SelectContext(ctx, &user.Followers, query, user.UserID); err != nil {
		return fmt.Errorf("failed to load followers list: %w", err)
	}

	return nil
}

// 23505 is the Postgres unique_violation code.
func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == "23505"
	}
	return false
}
