package fs

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newStore(t *testing.T) (*Store, afero.Fs) {
	t.Helper()
	mem := afero.NewMemMapFs()
	s, err := New(mem, "data", "images", "http://localhost:8000")
	require.NoError(t, err)
	return s, mem
}

func TestStore_PutDelete(t *testing.T) {
	s, mem := newStore(t)
	ctx := context.Background()

	url, err := s.Put(ctx, "todo_1_a.png", []byte("png"), "image/png")
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8000/images/todo_1_a.png", url)

	got, err := afero.ReadFile(mem, "data/images/todo_1_a.png")
	require.NoError(t, err)
	assert.Equal(t, []byte("png"), got)

	// Same key overwrites.
	_, err = s.Put(ctx, "todo_1_a.png", []byte("png2"), "image/png")
	require.NoError(t, err)
	got, _ = afero.ReadFile(mem, "data/images/todo_1_a.png")
	assert.Equal(t, []byte("png2"), got)

	require.NoError(t, s.Delete(ctx, "todo_1_a.png"))
	exists, _ := afero.Exists(mem, "data/images/todo_1_a.png")
	assert.False(t, exists)

	assert.Error(t, s.Delete(ctx, "todo_1_a.png"))
}

func TestStore_URLEscapesKey(t *testing.T) {
	s, _ := newStore(t)
	assert.Equal(t, "http://localhost:8000/images/todo_1_my%20cat.png", s.URL("todo_1_my cat.png"))
}

func TestStore_Handler(t *testing.T) {
	s, _ := newStore(t)
	_, err := s.Put(context.Background(), "todo_1_a.gif", []byte("GIF89a"), "image/gif")
	require.NoError(t, err)

	mux := http.NewServeMux()
	mux.Handle(s.Prefix(), s.Handler())

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/images/todo_1_a.gif", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	body, _ := io.ReadAll(rec.Body)
	assert.Equal(t, "GIF89a", string(body))

	rec = httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/images/missing.gif", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestStore_Handler_NoDirectoryListing(t *testing.T) {
	s, _ := newStore(t)
	_, err := s.Put(context.Background(), "todo_1_private-diary.png", []byte("png"), "image/png")
	require.NoError(t, err)

	mux := http.NewServeMux()
	mux.Handle(s.Prefix(), s.Handler())

	for _, target := range []string{"/images/", "/images", "/images/./"} {
		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
		assert.NotEqual(t, http.StatusOK, rec.Code, target)
		assert.NotContains(t, rec.Body.String(), "private-diary", target)
	}

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/images/", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
