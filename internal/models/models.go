package models

import (
	"time"

	"github.com/lib/pq"
)

type User struct {
	UserID    string    `json:"userId" db:"user_id"`
	Username  string    `json:"username" db:"username"`
	Password  string    `json:"-" db:"password"`
	Name      string    `json:"name" db:"name"`
	Contact   string    `json:"contact" db:"contact"`
	Bio       string    `json:"bio" db:"bio"`
	Avatar    string    `json:"avatar" db:"avatar"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	Posts     []string  `json:"posts" db:"-"`
	Following []string  `json:"following" db:"-"`
	Followers []string  `json:"followers" db:"-"`
}

type Post struct {
	PostID    string         `json:"postId" db:"post_id"`
	UserID    string         `json:"userId" db:"user_id"`
	Images    pq.StringArray `json:"images" db:"images"`
	Caption   string         `json:"caption" db:"caption"`
	CreatedAt time.Time      `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time      `json:"updatedAt" db:"updated_at"`
	Likes     []string       `json:"likes" db:"-"`
	Comments  []string       `json:"comments" db:"-"`
}

type Comment struct {
	CommentID string    `json:"commentId" db:"comment_id"`
	UserID    string    `json:"userId" db:"user_id"`
	Text      string    `json:"text" db:"text"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`
}
