package service

import (
	"context"
	"errors"
	"fmt"
	"mime/multipart"
	"path/filepath"
	"snapgram/internal/storage"
	"strings"
	"time"
)

// ErrNotAnImage is returned for multipart files whose declared type is
// not image/*. Handlers surface it as a 400, not a generic failure.
var ErrNotAnImage = errors.New("only images allowed")

type UploadService interface {
	SaveImages(ctx context.Context, userID string, files []*multipart.FileHeader) ([]string, error)
}

type uploadService struct {
	storage storage.Storage
}

func NewUploadService(storage storage.Storage) UploadService {
	return &uploadService{storage: storage}
}

// ValidateImage is the typed accept/reject check applied to each part
// before anything is written.
func ValidateImage(file *multipart.FileHeader) error {
	contentType := file.Header.Get("Content-Type")
	if !strings.HasPrefix(contentType, "image/") {
		return fmt.Errorf("%w: %s is %s", ErrNotAnImage, file.Filename, contentType)
	}
	return nil
}

// SaveImages stores each file under the user's namespace, prefixing the
// original name with a timestamp to avoid collisions. All files are
// validated before the first write.
func (s *uploadService) SaveImages(ctx context.Context, userID string, files []*multipart.FileHeader) ([]string, error) {
	for _, file := range files {
		if err := ValidateImage(file); err != nil {
			return nil, err
		}
	}

	filenames := make([]string, 0, len(files))

	for _, file := range files {
		src, err := file.Open()
		if err != nil {
			return nil, fmt.Errorf("failed to open uploaded file: %w", err)
		}

		name := fmt.Sprintf("%s/%d-%s", userID, time.Now().UnixMilli(), filepath.Base(file.Filename))

		saved, err := s.storage.Save(ctx, name, src, file.Size, file.Header.Get("Content-Type"))
		src.Close()
		if err != nil {
			return nil, fmt.Errorf("failed to store %s: %w", file.Filename, err)
		}

		filenames = append(filenames, saved)
	}

	return filenames, nil
}
