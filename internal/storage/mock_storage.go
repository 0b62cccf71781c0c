package storage

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"voltride-backoffice/internal/logger"
)

// MockStorageService implements image storage using local filesystem
// This is for development without an image hosting account
type MockStorageService struct {
	baseURL   string // Server URL (e.g., "http://localhost:8080")
	imagesDir string
}

// NewMockStorageService creates a new mock storage service
func NewMockStorageService(baseURL, uploadsDir string) (*MockStorageService, error) {
	imagesDir := filepath.Join(uploadsDir, "images")

	// Create directories if they don't exist
	if err := os.MkdirAll(imagesDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create images directory: %w", err)
	}

	return &MockStorageService{
		baseURL:   strings.TrimRight(baseURL, "/"),
		imagesDir: imagesDir,
	}, nil
}

// Upload stores the file under a fresh key and returns its download URL
func (m *MockStorageService) Upload(ctx context.Context, filename, contentType string, r io.Reader) (string, error) {
	key := uuid.New().String() + strings.ToLower(filepath.Ext(filename))
	logger.ExternalServiceCall("mock-storage", "upload", "key", key, "contentType", contentType)

	if err := m.SaveFile(key, r); err != nil {
		logger.ExternalServiceResult("mock-storage", "upload", err)
		return "", err
	}

	logger.ExternalServiceResult("mock-storage", "upload", nil, "key", key)
	return m.DownloadURL(key), nil
}

// DownloadURL points at the server route that streams the file back
func (m *MockStorageService) DownloadURL(key string) string {
	return fmt.Sprintf("%s/api/v1/download/%s", m.baseURL, url.PathEscape(key))
}

// SaveFile saves uploaded file to local filesystem
func (m *MockStorageService) SaveFile(key string, reader io.Reader) error {
	fullPath, err := m.path(key)
	if err != nil {
		return err
	}

	// Create file
	file, err := os.Create(fullPath)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer file.Close()

	// Copy data
	if _, err := io.Copy(file, reader); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}

	return nil
}

// ReadFile reads file from local filesystem
func (m *MockStorageService) ReadFile(key string) (io.ReadCloser, error) {
	fullPath, err := m.path(key)
	if err != nil {
		return nil, err
	}

	file, err := os.Open(fullPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}

	return file, nil
}

// path keeps keys flat inside the images directory.
func (m *MockStorageService) path(key string) (string, error) {
	if key == "" || key != filepath.Base(key) || key == "." || key == ".." {
		return "", fmt.Errorf("invalid storage key %q", key)
	}
	return filepath.Join(m.imagesDir, key), nil
}
