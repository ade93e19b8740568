// Package fs keeps blobs on a filesystem under <dir>/<bucket>/<key>.
package fs

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"path"

	"github.com/spf13/afero"
)

type Store struct {
	fs      afero.Fs
	root    string
	bucket  string
	baseURL string
}

// New returns a store rooted at dir. URLs are baseURL/bucket/key.
func New(fs afero.Fs, dir, bucket, baseURL string) (*Store, error) {
	root := path.Join(dir, bucket)
	if err := fs.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("create bucket dir: %w", err)
	}
	return &Store{fs: fs, root: root, bucket: bucket, baseURL: baseURL}, nil
}

func (s *Store) Put(_ context.Context, key string, data []byte, _ string) (string, error) {
	if err := afero.WriteFile(s.fs, path.Join(s.root, key), data, 0o644); err != nil {
		return "", fmt.Errorf("write blob %s: %w", key, err)
	}
	return s.URL(key), nil
}

func (s *Store) Delete(_ context.Context, key string) error {
	if err := s.fs.Remove(path.Join(s.root, key)); err != nil {
		return fmt.Errorf("remove blob %s: %w", key, err)
	}
	return nil
}

func (s *Store) URL(key string) string {
	return s.baseURL + "/" + s.bucket + "/" + url.PathEscape(key)
}

// Prefix is the route the bucket is served under.
func (s *Store) Prefix() string {
	return "/" + s.bucket + "/"
}

// Handler serves single stored blobs read-only; mount it under Prefix.
// Directories are never listed.
func (s *Store) Handler() http.Handler {
	return http.StripPrefix(s.Prefix(), http.FileServer(filesOnly{afero.NewHttpFs(s.fs).Dir(s.root)}))
}

type filesOnly struct {
	http.FileSystem
}

func (f filesOnly) Open(name string) (http.File, error) {
	file, err := f.FileSystem.Open(name)
	if err != nil {
		return nil, err
	}
	info, err := file.Stat()
	if err != nil {
		file.Close()
		return nil, err
	}
	if info.IsDir() {
		file.Close()
		return nil, os.ErrNotExist
	}
	return file, nil
}
