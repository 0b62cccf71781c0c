package storage

import (
	"fmt"
	"net/http"
	"time"
)

// Config holds storage configuration
type Config struct {
	Type         string // "cloudinary" or "mock"
	UploadURL    string // multipart endpoint of the hosting service
	UploadPreset string // unsigned upload preset
	MockDir      string // Directory for mock storage
	BaseURL      string // Server base URL for generating mock URLs
	Timeout      time.Duration
}

// New builds the ImageStore selected by cfg.Type.
func New(cfg Config) (ImageStore, error) {
	switch cfg.Type {
	case "cloudinary":
		timeout := cfg.Timeout
		if timeout == 0 {
			timeout = 30 * time.Second
		}
		return NewCloudinaryStore(cfg.UploadURL, cfg.UploadPreset, &http.Client{Timeout: timeout}), nil
	case "mock", "":
		m, err := NewMockStorageService(cfg.BaseURL, cfg.MockDir)
		if err != nil {
			return nil, err
		}
		return m, nil
	}
	return nil, fmt.Errorf("unsupported storage type: %s", cfg.Type)
}
