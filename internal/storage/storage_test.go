package storage

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"path"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCloudinaryStore_Upload(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseMultipartForm(1<<20))
		assert.Equal(t, "voltride", r.FormValue("upload_preset"))

		f, hdr, err := r.FormFile("file")
		require.NoError(t, err)
		defer f.Close()
		data, _ := io.ReadAll(f)
		assert.Equal(t, "scooter.jpg", hdr.Filename)
		assert.Equal(t, "jpeg-bytes", string(data))

		w.Write([]byte(`{"secure_url":"https://res.example.com/v1/scooter.jpg"}`))
	}))
	defer srv.Close()

	store := NewCloudinaryStore(srv.URL, "voltride", srv.Client())
	got, err := store.Upload(context.Background(), "scooter.jpg", "image/jpeg", strings.NewReader("jpeg-bytes"))
	require.NoError(t, err)
	assert.Equal(t, "https://res.example.com/v1/scooter.jpg", got)
}

func TestCloudinaryStore_Errors(t *testing.T) {
	t.Run("Rejected", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadRequest)
			w.Write([]byte(`{"error":{"message":"Upload preset not found"}}`))
		}))
		defer srv.Close()

		_, err := NewCloudinaryStore(srv.URL, "nope", nil).Upload(context.Background(), "a.png", "image/png", strings.NewReader("x"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "Upload preset not found")
	})

	t.Run("MissingURL", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{}`))
		}))
		defer srv.Close()

		_, err := NewCloudinaryStore(srv.URL, "p", nil).Upload(context.Background(), "a.png", "image/png", strings.NewReader("x"))
		assert.Error(t, err)
	})
}

func TestMockStorageService_RoundTrip(t *testing.T) {
	m, err := NewMockStorageService("http://localhost:8080/", t.TempDir())
	require.NoError(t, err)

	url, err := m.Upload(context.Background(), "Helmet.PNG", "image/png", strings.NewReader("png-bytes"))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(url, "http://localhost:8080/api/v1/download/"))

	key := path.Base(url)
	assert.True(t, strings.HasSuffix(key, ".png"))

	rc, err := m.ReadFile(key)
	require.NoError(t, err)
	defer rc.Close()
	data, _ := io.ReadAll(rc)
	assert.Equal(t, "png-bytes", string(data))
}

func TestMockStorageService_RejectsTraversal(t *testing.T) {
	m, err := NewMockStorageService("http://localhost", t.TempDir())
	require.NoError(t, err)

	assert.Error(t, m.SaveFile("../escape.png", strings.NewReader("x")))
	_, err = m.ReadFile("a/b.png")
	assert.Error(t, err)
}

func TestNew(t *testing.T) {
	s, err := New(Config{Type: "mock", MockDir: t.TempDir(), BaseURL: "http://x"})
	require.NoError(t, err)
	assert.IsType(t, &MockStorageService{}, s)

	s, err = New(Config{Type: "cloudinary", UploadURL: "https://img", UploadPreset: "p"})
	require.NoError(t, err)
	assert.IsType(t, &CloudinaryStore{}, s)

	_, err = New(Config{Type: "s3"})
	assert.Error(t, err)
}
