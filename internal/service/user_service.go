package service

import (
	"context"
	"errors"
	"fmt"
	"snapgram/internal/models"
	"snapgram/internal/repository"
)

type UserService interface {
	CreateUser(ctx context.Context, req repository.CreateUserRequest) (*models.User, error)
	UpdateUser(ctx context.Context, req repository.UpdateUserRequest) (*models.User, error)
	DeleteUser(ctx context.Context, userID string) (*models.User, error)
	ToggleFollow(ctx context.Context, actorID, targetID string) (*models.User, *models.User, error)
}

type userService struct {
	userRepo repository.UserRepository
	postRepo repository.PostRepository
}

func NewUserService(userRepo repository.UserRepository, postRepo repository.PostRepository) UserService {
	return &userService{
		userRepo: userRepo,
		postRepo: postRepo,
	}
}

func (s *userService) CreateUser(ctx context.Context, req repository.CreateUserRequest) (*models.User, error) {
	duplicate, err := s.userRepo.GetUserByUsername(ctx, req.Username)
	if err == nil && duplicate != nil {
		return nil, fmt.Errorf("username %s: %w", req.Username, repository.ErrDuplicateUsername)
	}

	user := &models.User{
		Username: req.Username,
		Name:     req.Name,
	}

	err = s.userRepo.CreateUser(ctx, user, req.Password)
	if err != nil {
		return nil, err
	}

	return user, nil
}

// UpdateUser applies partial updates: only fields present in the request
// overwrite stored values. postIdToRemove deletes the referenced post
// outright before unlinking it; postIdToAdd links without checking that
// the post exists.
func (s *userService) UpdateUser(ctx context.Context, req repository.UpdateUserRequest) (*models.User, error) {
	user, err := s.userRepo.GetUserByID(ctx, req.ID)
	if err != nil {
		return nil, err
	}

	if req.Username != "" {
		duplicate, err := s.userRepo.GetUserByUsername(ctx, req.Username)
		if err == nil && duplicate != nil && duplicate.UserID != req.ID {
			return nil, fmt.Errorf("username %s: %w", req.Username, repository.ErrDuplicateUsername)
		}
		user.Username = req.Username
	}
	if req.Name != "" {
		user.Name = req.Name
	}
	if req.Contact != "" {
		user.Contact = req.Contact
	}
	if req.Bio != "" {
		user.Bio = req.Bio
	}
	if req.Avatar != "" {
		user.Avatar = req.Avatar
	}

	if err := s.userRepo.UpdateUser(ctx, user); err != nil {
		return nil, err
	}

	if req.Password != "" {
		if err := s.userRepo.UpdatePassword(ctx, user.UserID, req.Password); err != nil {
			return nil, err
		}
	}

	if req.PostIDToRemove != "" {
		err := s.postRepo.DeleteShallow(ctx, req.PostIDToRemove)
		if err != nil && !errors.Is(err, repository.ErrNotFound) {
			return nil, err
		}
		if err := s.userRepo.RemovePostRef(ctx, user.UserID, req.PostIDToRemove); err != nil {
			return nil, err
		}
	}

	if req.PostIDToAdd != "" {
		if err := s.userRepo.AddPostRef(ctx, user.UserID, req.PostIDToAdd); err != nil {
			return nil, err
		}
	}

	return user, nil
}

// DeleteUser removes the user document only. Posts, comments and other
// users' relationship lists keep their dangling references.
func (s *userService) DeleteUser(ctx context.Context, userID string) (*models.User, error) {
	user, err := s.userRepo.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if err := s.userRepo.DeleteUser(ctx, userID); err != nil {
		return nil, err
	}

	return user, nil
}

// ToggleFollow flips the relationship between actor and target. A single
// stored pair backs both users' lists, so following and followers cannot
// drift apart.
func (s *userService) ToggleFollow(ctx context.Context, actorID, targetID string) (*models.User, *models.User, error) {
	target, err := s.userRepo.GetUserByID(ctx, targetID)
	if err != nil {
		return nil, nil, err
	}

	actor, err := s.userRepo.GetUserByID(ctx, actorID)
	if err != nil {
		return nil, nil, err
	}

	following, err := s.userRepo.IsFollowing(ctx, actorID, targetID)
	if err != nil {
		return nil, nil, err
	}

	if following {
		err = s.userRepo.RemoveFollower(ctx, actorID, targetID)
	} else {
		err = s.userRepo.AddFollower(ctx, actorID, targetID)
	}
	if err != nil {
		return nil, nil, err
	}

	return actor, target, nil
}
