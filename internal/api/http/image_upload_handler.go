package http

import (
	"io"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gorilla/mux"

	"voltride-backoffice/internal/logger"
	"voltride-backoffice/internal/service"
	"voltride-backoffice/internal/storage"
)

// maxUploadBytes caps the multipart body; the image service applies the
// configured file size limit.
const maxUploadBytes = 32 << 20

// ImageUploadHandler accepts record images and, in development, serves the
// files kept by the mock store
type ImageUploadHandler struct {
	images      service.ImageService
	mockStorage *storage.MockStorageService
}

// NewImageUploadHandler creates a new upload handler
func NewImageUploadHandler(images service.ImageService, mockStorage *storage.MockStorageService) *ImageUploadHandler {
	return &ImageUploadHandler{
		images:      images,
		mockStorage: mockStorage,
	}
}

type uploadResponse struct {
	URL string `json:"url"`
}

// HandleUpload reads the "file" part of a multipart form and returns the
// hosted URL to store on the record
func (h *ImageUploadHandler) HandleUpload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		writeError(w, http.StatusBadRequest, "invalid multipart form")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "missing file part")
		return
	}
	defer file.Close()

	contentType := header.Header.Get("Content-Type")
	if contentType == "" {
		contentType = contentTypeFor(header.Filename)
	}

	url, err := h.images.Upload(r.Context(), header.Filename, contentType, header.Size, file)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, uploadResponse{URL: url})
}

// HandleMockDownload handles HTTP GET requests to download images
func (h *ImageUploadHandler) HandleMockDownload(w http.ResponseWriter, r *http.Request) {
	key := mux.Vars(r)["key"]
	if key == "" {
		http.Error(w, "Missing key parameter", http.StatusBadRequest)
		return
	}

	// Read file
	file, err := h.mockStorage.ReadFile(key)
	if err != nil {
		http.Error(w, "File not found", http.StatusNotFound)
		return
	}
	defer file.Close()

	// Set headers
	w.Header().Set("Content-Type", contentTypeFor(key))
	w.Header().Set("Cache-Control", "public, max-age=3600")

	// Stream file
	if _, err := io.Copy(w, file); err != nil {
		logger.WarnContext(r.Context(), "Image download interrupted", "key", key, "error", err)
	}
}

func contentTypeFor(name string) string {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".jpg", ".jpeg":
		return "image/jpeg"
	case ".png":
		return "image/png"
	case ".gif":
		return "image/gif"
	case ".webp":
		return "image/webp"
	}
	return "application/octet-stream"
}

// RegisterMockStorageRoutes registers the mock storage download endpoint on
// the /api/v1 subrouter
func RegisterMockStorageRoutes(api *mux.Router, mockStorage *storage.MockStorageService) {
	handler := NewImageUploadHandler(nil, mockStorage)
	api.HandleFunc("/download/{key}", handler.HandleMockDownload).Methods(http.MethodGet)
}
