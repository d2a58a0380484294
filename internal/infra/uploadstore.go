package infra

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog/log"
)

// UploadStore persists employee photos submitted as multipart uploads.
type UploadStore struct {
	dir string
}

func NewUploadStore(dir string) (*UploadStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &UploadStore{dir: dir}, nil
}

// Save stores the upload under "{unix-ts}_{original-name}" and returns the
// stored filename.
func (s *UploadStore) Save(fh *multipart.FileHeader) (string, error) {
	src, err := fh.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()

	name := fmt.Sprintf("%d_%s", time.Now().Unix(), filepath.Base(fh.Filename))
	dst, err := os.Create(filepath.Join(s.dir, name))
	if err != nil {
		return "", err
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return "", err
	}
	return name, nil
}

// Remove deletes a stored file. Best effort: failures are logged, never
// propagated, so a stale photo cannot fail an account write.
func (s *UploadStore) Remove(filename string) {
	if filename == "" {
		return
	}
	full := filepath.Join(s.dir, filepath.Base(filename))
	if err := os.Remove(full); err != nil && !os.IsNotExist(err) {
		log.Error().Err(err).Str("file", full).Msg("upload store: delete failed")
	}
}

// Dir exposes the physical directory for the static file route.
func (s *UploadStore) Dir() string { return s.dir }
