// Package storage persists intake attachments on local disk and hands
// back the public path they are served from.
package storage

import (
	"fmt"
	"io"
	"math/rand"
	"mime/multipart"
	"os"
	"path/filepath"
	"time"

	"github.com/sevenboard/board-api/internal/config"
)

// UploadStore writes attachment files under a single directory. Names
// are timestamp plus a random suffix plus the original extension, so
// two uploads in the same millisecond still diverge.
type UploadStore struct {
	dir     string
	maxSize int64
}

// NewUploadStore ensures the upload directory exists.
func NewUploadStore(cfg config.UploadConfig) (*UploadStore, error) {
	if err := os.MkdirAll(cfg.Dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &UploadStore{dir: cfg.Dir, maxSize: cfg.MaxSizeBytes}, nil
}

// Dir returns the directory served as static /uploads content.
func (s *UploadStore) Dir() string {
	return s.dir
}

// Save stores an uploaded file and returns its public URL path.
func (s *UploadStore) Save(fileHeader *multipart.FileHeader) (string, error) {
	if s.maxSize > 0 && fileHeader.Size > s.maxSize {
		return "", fmt.Errorf("file %s exceeds %d bytes", fileHeader.Filename, s.maxSize)
	}

	src, err := fileHeader.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()

	name := UniqueFilename(fileHeader.Filename, time.Now())
	dst, err := os.Create(filepath.Join(s.dir, name))
	if err != nil {
		return "", err
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return "", err
	}
	return "/uploads/" + name, nil
}

// UniqueFilename builds "<unixmilli>-<random9><ext>" from the original
// file name, keeping only its extension.
func UniqueFilename(original string, now time.Time) string {
	suffix := rand.Int63n(1_000_000_000)
	return fmt.Sprintf("%d-%d%s", now.UnixMilli(), suffix, filepath.Ext(original))
}
