package storage

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

var (
	ErrFileTooLarge       = errors.New("file too large")
	ErrUnsupportedFileExt = errors.New("unsupported file extension")
)

var allowedExts = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".webp": true,
	".gif":  true,
}

// PhotoStore writes uploaded game photos under a local directory that the
// API serves at URLPrefix.
type PhotoStore struct {
	dir       string
	urlPrefix string
	maxBytes  int64
}

func NewPhotoStore(dir, urlPrefix string, maxBytes int64) (*PhotoStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("os.MkdirAll -> %w", err)
	}

	return &PhotoStore{
		dir:       dir,
		urlPrefix: urlPrefix,
		maxBytes:  maxBytes,
	}, nil
}

func (s *PhotoStore) Dir() string {
	return s.dir
}

// Save stores the upload under a fresh uuid name and returns its public path.
func (s *PhotoStore) Save(fh *multipart.FileHeader) (string, error) {
	if s.maxBytes > 0 && fh.Size > s.maxBytes {
		return "", ErrFileTooLarge
	}

	ext := strings.ToLower(filepath.Ext(fh.Filename))
	if !allowedExts[ext] {
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFileExt, ext)
	}

	src, err := fh.Open()
	if err != nil {
		return "", fmt.Errorf("fh.Open -> %w", err)
	}
	defer src.Close()

	name := uuid.NewString() + ext

	if err = s.write(filepath.Join(s.dir, name), src); err != nil {
		return "", err
	}

	return path.Join(s.urlPrefix, name), nil
}

// write copies src to target. A partly written file is removed on failure.
func (s *PhotoStore) write(target string, src io.Reader) (err error) {
	dst, err := os.Create(target)
	if err != nil {
		return fmt.Errorf("os.Create -> %w", err)
	}

	defer func() {
		if closeErr := dst.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("dst.Close -> %w", closeErr)
		}
		if err != nil {
			_ = os.Remove(target)
		}
	}()

	if _, err = io.Copy(dst, src); err != nil {
		return fmt.Errorf("io.Copy -> %w", err)
	}

	return nil
}

// Remove deletes a photo previously returned by Save. Unknown paths are ignored.
func (s *PhotoStore) Remove(publicPath string) error {
	if publicPath == "" || !strings.HasPrefix(publicPath, s.urlPrefix) {
		return nil
	}

	err := os.Remove(filepath.Join(s.dir, path.Base(publicPath)))
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("os.Remove -> %w", err)
	}

	return nil
}
