package storage

import (
	"context"
	"fmt"
	"io"
	"snapgram/internal/config"
)

// Storage persists uploaded images under caller-chosen relative names
// and returns the path clients should reference in posts.
type Storage interface {
	Save(ctx context.Context, objectName string, file io.Reader, size int64, contentType string) (string, error)
	Delete(ctx context.Context, objectName string) error
}

func NewStorage(cfg *config.Config) (Storage, error) {
	switch cfg.StorageDriver {
	case "minio":
		return NewMinIOStorage(cfg)
	case "local", "":
		return NewLocalStorage(cfg.UploadDir)
	default:
		return nil, fmt.Errorf("unknown storage driver: %s", cfg.StorageDriver)
	}
}
