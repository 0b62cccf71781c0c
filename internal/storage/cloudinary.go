package storage

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"

	"voltride-backoffice/internal/logger"
)

// CloudinaryStore posts images to an unsigned upload preset.
type CloudinaryStore struct {
	uploadURL string
	preset    string
	http      *http.Client
}

func NewCloudinaryStore(uploadURL, preset string, hc *http.Client) *CloudinaryStore {
	if hc == nil {
		hc = http.DefaultClient
	}
	return &CloudinaryStore{uploadURL: uploadURL, preset: preset, http: hc}
}

type uploadResponse struct {
	SecureURL string `json:"secure_url"`
	Error     *struct {
		Message string `json:"message"`
	} `json:"error"`
}

// Upload sends the file as multipart form data and returns secure_url.
func (s *CloudinaryStore) Upload(ctx context.Context, filename, contentType string, r io.Reader) (string, error) {
	logger.ExternalServiceCall("cloudinary", "upload", "filename", filename)

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	part, err := mw.CreateFormFile("file", filename)
	if err != nil {
		return "", fmt.Errorf("build upload form: %w", err)
	}
	if _, err := io.Copy(part, r); err != nil {
		return "", fmt.Errorf("read image: %w", err)
	}
	if err := mw.WriteField("upload_preset", s.preset); err != nil {
		return "", fmt.Errorf("build upload form: %w", err)
	}
	if err := mw.Close(); err != nil {
		return "", fmt.Errorf("build upload form: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.uploadURL, &body)
	if err != nil {
		return "", fmt.Errorf("build upload request: %w", err)
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	resp, err := s.http.Do(req)
	if err != nil {
		logger.ExternalServiceResult("cloudinary", "upload", err)
		return "", fmt.Errorf("upload image: %w", err)
	}
	defer resp.Body.Close()

	var out uploadResponse
	decodeErr := json.NewDecoder(resp.Body).Decode(&out)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		err = fmt.Errorf("upload image: status %d", resp.StatusCode)
		if decodeErr == nil && out.Error != nil {
			err = fmt.Errorf("upload image: status %d: %s", resp.StatusCode, out.Error.Message)
		}
		logger.ExternalServiceResult("cloudinary", "upload", err)
		return "", err
	}
	if decodeErr != nil {
		err = fmt.Errorf("decode upload response: %w", decodeErr)
		logger.ExternalServiceResult("cloudinary", "upload", err)
		return "", err
	}
	if out.SecureURL == "" {
		err = fmt.Errorf("upload response has no secure_url")
		logger.ExternalServiceResult("cloudinary", "upload", err)
		return "", err
	}

	logger.ExternalServiceResult("cloudinary", "upload", nil, "url", out.SecureURL)
	return out.SecureURL, nil
}
