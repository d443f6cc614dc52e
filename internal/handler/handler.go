package handlers

import (
	"snapgram/internal/config"
	"snapgram/internal/database"
	"snapgram/internal/repository"
	"snapgram/internal/service"

	"github.com/go-playground/validator/v10"
)

type Handlers struct {
	AuthService   service.AuthService
	UserService   service.UserService
	PostService   service.PostService
	UploadService service.UploadService
	UserRepo      repository.UserRepository
	PostRepo      repository.PostRepository
	CommentRepo   repository.CommentRepository
	DB            *database.DB
	Cfg           *config.Config
	Validate      *validator.Validate
}

func NewHandlers(repo *repository.Repository, service *service.Service, db *database.DB, config *config.Config) *Handlers {
	return &Handlers{
		AuthService:   service.Auth,
		UserService:   service.User,
		PostService:   service.Post,
		UploadService: service.Upload,
		UserRepo:      repo.User,
		PostRepo:      repo.Post,
		CommentRepo:   repo.Comment,
		DB:            db,
		Cfg:           config,
		Validate:      validator.New(),
	}
}
