package storage

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// Upload categories, each stored in its own directory.
const (
	ProfilePictures = "profile_pics"
	EventImages     = "events"
	ProductImages   = "products"
)

const MaxUploadSize = 5 << 20

var (
	ErrUnsupportedType = errors.New("unsupported file type")
	ErrFileTooLarge    = errors.New("file too large")
	ErrFileNotFound    = errors.New("file not found")
	ErrInvalidName     = errors.New("invalid file name")
)

var allowedExtensions = map[string]bool{
	".jpg": true, ".jpeg": true, ".png": true, ".gif": true, ".webp": true,
}

// FileStore keeps uploads on local disk under a root directory.
type FileStore struct {
	root string
}

// NewFileStore creates the category directories under root.
func NewFileStore(root string) (*FileStore, error) {
	for _, dir := range []string{ProfilePictures, EventImages, ProductImages} {
		if err := os.MkdirAll(filepath.Join(root, dir), 0o755); err != nil {
			return nil, fmt.Errorf("creating upload directory %s: %w", dir, err)
		}
	}
	return &FileStore{root: root}, nil
}

// Save stores the upload under a server-generated name and returns that name.
func (s *FileStore) Save(category string, fh *multipart.FileHeader) (string, error) {
	if fh.Size > MaxUploadSize {
		return "", ErrFileTooLarge
	}
	ext := strings.ToLower(filepath.Ext(fh.Filename))
	if !allowedExtensions[ext] {
		return "", ErrUnsupportedType
	}

	src, err := fh.Open()
	if err != nil {
		return "", fmt.Errorf("opening upload: %w", err)
	}
	defer src.Close()

	name := uuid.NewString() + ext
	dst, err := os.OpenFile(filepath.Join(s.root, category, name), os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return "", fmt.Errorf("creating file: %w", err)
	}
	defer dst.Close()

	written, err := io.Copy(dst, io.LimitReader(src, MaxUploadSize+1))
	if err == nil && written > MaxUploadSize {
		err = ErrFileTooLarge
	}
	if err != nil {
		dst.Close()
		os.Remove(dst.Name())
		return "", err
	}
	return name, nil
}

// Path resolves a stored file. Only the base name of filename is used.
func (s *FileStore) Path(category, filename string) (string, error) {
	base := filepath.Base(filepath.Clean("/" + filename))
	if base == "/" || base == "." || base == ".." {
		return "", ErrInvalidName
	}
	p := filepath.Join(s.root, category, base)
	info, err := os.Stat(p)
	if err != nil || info.IsDir() {
		return "", ErrFileNotFound
	}
	return p, nil
}

// Remove deletes a stored file. Missing files are not an error.
func (s *FileStore) Remove(category, filename string) error {
	if filename == "" {
		return nil
	}
	p := filepath.Join(s.root, category, filepath.Base(filename))
	if err := os.Remove(p); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}
