package main

import (
	"fmt"
	"log"
	"net/http"
	"snapgram/cmd/app"
	"snapgram/internal/config"
	handlers "snapgram/internal/handler"
	"snapgram/internal/middleware"

	"github.com/gorilla/mux"
)

func main() {
	// setting up config
	cfg := config.LoadConfig()

	if cfg.AccessTokenSecret == "" || cfg.RefreshTokenSecret == "" {
		log.Fatal("ACCESS_TOKEN_SECRET and REFRESH_TOKEN_SECRET must be set")
	}

	db, repo, services := app.App(cfg)
	defer db.CloseDB()

	handler := handlers.NewHandlers(repo, services, db, cfg)

	requireAuth := mux.MiddlewareFunc(middleware.RequireAuth(services.Auth))

	router := mux.NewRouter()
	router.NotFoundHandler = http.HandlerFunc(handlers.NotFoundHandler)
	router.MethodNotAllowedHandler = http.HandlerFunc(handlers.NotFoundHandler)

	router.HandleFunc("/", handlers.HomeHandler).Methods(http.MethodGet)
	router.HandleFunc("/health", handler.HealthHandler).Methods(http.MethodGet)

	// auth routes stay public; refresh works off the cookie alone
	router.HandleFunc("/auth", handler.Login).Methods(http.MethodPost)
	router.HandleFunc("/auth/logout", handler.Logout).Methods(http.MethodPost)
	router.HandleFunc("/auth/refresh", handler.Refresh).Methods(http.MethodPost)

	users := router.PathPrefix("/users").Subrouter()
	users.Use(requireAuth)
	users.HandleFunc("", handler.GetUsers).Methods(http.MethodGet)
	users.HandleFunc("", handler.CreateUser).Methods(http.MethodPost)
	users.HandleFunc("", handler.UpdateUser).Methods(http.MethodPatch)
	users.HandleFunc("", handler.DeleteUser).Methods(http.MethodDelete)
	users.HandleFunc("/{query}", handler.SearchUsers).Methods(http.MethodGet)
	users.HandleFunc("/{id}", handler.UpdateFollow).Methods(http.MethodPatch)

	posts := router.PathPrefix("/posts").Subrouter()
	posts.Use(requireAuth)
	posts.HandleFunc("", handler.GetPosts).Methods(http.MethodGet)
	posts.HandleFunc("", handler.CreatePost).Methods(http.MethodPost)
	posts.HandleFunc("", handler.UpdatePost).Methods(http.MethodPatch)
	posts.HandleFunc("", handler.DeletePost).Methods(http.MethodDelete)
	posts.HandleFunc("/{userId}", handler.GetPostsByUserID).Methods(http.MethodGet)

	comments := router.PathPrefix("/comments").Subrouter()
	comments.Use(requireAuth)
	comments.HandleFunc("", handler.GetComments).Methods(http.MethodGet)
	comments.HandleFunc("", handler.CreateComment).Methods(http.MethodPost)
	comments.HandleFunc("", handler.UpdateComment).Methods(http.MethodPatch)
	comments.HandleFunc("", handler.DeleteComment).Methods(http.MethodDelete)
	comments.HandleFunc("/{postId}", handler.GetCommentsByPostID).Methods(http.MethodGet)

	uploads := router.PathPrefix("/uploads").Subrouter()
	uploads.Use(requireAuth)
	uploads.HandleFunc("", handler.UploadImages).Methods(http.MethodPost)

	handlerChain := middleware.Chain(
		router,
		middleware.RecoverMiddleware,
		middleware.CORSMiddleware,
		middleware.LoggingMiddleware,
	)

	// Starting the server
	addr := fmt.Sprintf(":%d", cfg.ServerPort)
	fmt.Printf("Server running on %s\n", addr)
	fmt.Printf("Database: %s\n", cfg.DB.DbNAME)

	if err := http.ListenAndServe(addr, handlerChain); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}
