package service

import (
	"snapgram/internal/config"
	"snapgram/internal/repository"
	"snapgram/internal/storage"
)

type Service struct {
	Auth   AuthService
	User   UserService
	Post   PostService
	Upload UploadService
}

func NewService(rep *repository.Repository, cfg *config.Config, storage storage.Storage) *Service {
	return &Service{
		Auth:   NewAuthService(rep.User, cfg),
		User:   NewUserService(rep.User, rep.Post),
		Post:   NewPostService(rep.Post, rep.User),
		Upload: NewUploadService(storage),
	}
}
