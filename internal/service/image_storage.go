package service

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"voltride-backoffice/internal/domain"
	"voltride-backoffice/internal/logger"
	"voltride-backoffice/internal/storage"
)

type imageService struct {
	store        storage.ImageStore
	maxBytes     int64
	allowedTypes map[string]bool
}

// NewImageService checks uploads against the size and type limits before
// handing them to the image host.
func NewImageService(store storage.ImageStore, maxBytes int64, allowedTypes []string) ImageService {
	allowed := make(map[string]bool, len(allowedTypes))
	for _, t := range allowedTypes {
		allowed[strings.ToLower(t)] = true
	}
	return &imageService{store: store, maxBytes: maxBytes, allowedTypes: allowed}
}

func (s *imageService) Upload(ctx context.Context, filename, contentType string, size int64, r io.Reader) (string, error) {
	logger.EnterMethod("imageService.Upload", "filename", filename, "contentType", contentType, "size", size)

	verr := &domain.ValidationError{}
	name := filepath.Base(strings.TrimSpace(filename))
	if name == "" || name == "." || name == string(filepath.Separator) {
		verr.Add("file", "filename is required")
	}
	if !s.allowedTypes[strings.ToLower(contentType)] {
		verr.Add("file", "unsupported content type "+contentType)
	}
	if size <= 0 {
		verr.Add("file", "file is empty")
	} else if s.maxBytes > 0 && size > s.maxBytes {
		verr.Add("file", fmt.Sprintf("file exceeds %d bytes", s.maxBytes))
	}
	if err := verr.OrNil(); err != nil {
		logger.ExitMethodWithError("imageService.Upload", err)
		return "", err
	}

	url, err := s.store.Upload(ctx, name, contentType, r)
	if err != nil {
		logger.ExitMethodWithError("imageService.Upload", err)
		return "", fmt.Errorf("upload image: %w: %w", domain.ErrUpstream, err)
	}

	logger.ExitMethod("imageService.Upload", "url", url)
	return url, nil
}
