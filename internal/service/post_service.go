package service

import (
	"context"
	"snapgram/internal/models"
	"snapgram/internal/repository"
)

type PostService interface {
	CreatePost(ctx context.Context, ownerID string, req repository.CreatePostRequest) (*models.Post, error)
	UpdatePost(ctx context.Context, actorID string, req repository.UpdatePostRequest) (*models.Post, error)
	DeletePost(ctx context.Context, postID string) error
}

type postService struct {
	postRepo repository.PostRepository
	userRepo repository.UserRepository
}

func NewPostService(postRepo repository.PostRepository, userRepo repository.UserRepository) PostService {
	return &postService{
		postRepo: postRepo,
		userRepo: userRepo,
	}
}

// CreatePost resolves the owner from the verified identity, never from
// the request body. The post row and the owner's list entry are written
// as one unit by the repository.
func (s *postService) CreatePost(ctx context.Context, ownerID string, req repository.CreatePostRequest) (*models.Post, error) {
	owner, err := s.userRepo.GetUserByID(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	post := &models.Post{
		UserID:  owner.UserID,
		Images:  req.Images,
		Caption: req.Caption,
	}

	if err := s.postRepo.Create(ctx, post); err != nil {
		return nil, err
	}

	return post, nil
}

// UpdatePost applies partial updates. The like field is a flag: when set,
// the acting user is toggled in the like list. The comment field appends
// a single comment reference without checking it exists.
func (s *postService) UpdatePost(ctx context.Context, actorID string, req repository.UpdatePostRequest) (*models.Post, error) {
	post, err := s.postRepo.GetByID(ctx, req.ID)
	if err != nil {
		return nil, err
	}

	if len(req.Images) > 0 {
		post.Images = req.Images
	}
	if req.Caption != "" {
		post.Caption = req.Caption
	}

	if err := s.postRepo.Update(ctx, post); err != nil {
		return nil, err
	}

	if req.Like {
		if _, err := s.postRepo.ToggleLike(ctx, post.PostID, actorID); err != nil {
			return nil, err
		}
	}

	if req.Comment != "" {
		if err := s.postRepo.AddComment(ctx, post.PostID, req.Comment); err != nil {
			return nil, err
		}
	}

	return post, nil
}

// DeletePost cascades: the post, every comment it referenced and the
// owner's list entry all go in one repository transaction.
func (s *postService) DeletePost(ctx context.Context, postID string) error {
	return s.postRepo.Delete(ctx, postID)
}
