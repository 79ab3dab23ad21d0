// Package upload implements the product image upload contract: a declared
// content-type allow-list, stored-name derivation, and writing the file
// under the public uploads directory.
package upload

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// ErrInvalidImageType is returned when a file's declared content type is
// not an accepted image type.
var ErrInvalidImageType = errors.New("invalid image type")

// fileTypes maps accepted declared content types to stored extensions.
var fileTypes = map[string]string{
	"image/png":  "png",
	"image/jpeg": "jpeg",
	"image/jpg":  "jpg",
}

// Extension returns the stored extension for a declared content type, or
// ErrInvalidImageType if the type is not accepted.
func Extension(contentType string) (string, error) {
	ext, ok := fileTypes[contentType]
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrInvalidImageType, contentType)
	}
	return ext, nil
}

// Filename derives the stored name for an uploaded file: the original name
// with spaces replaced by hyphens, suffixed with the upload timestamp in
// milliseconds and the extension for its content type.
func Filename(original, contentType string, now time.Time) (string, error) {
	ext, err := Extension(contentType)
	if err != nil {
		return "", err
	}

	name := strings.ReplaceAll(original, " ", "-")
	return fmt.Sprintf("%s-%d.%s", name, now.UnixMilli(), ext), nil
}

// Saver writes validated image uploads into a directory.
type Saver struct {
	dir string
	now func() time.Time // Injectable for testing
}

// NewSaver creates a Saver writing into dir. The directory is created on
// first save if it does not exist.
func NewSaver(dir string) *Saver {
	return &Saver{dir: dir, now: time.Now}
}

// Save validates the file's declared content type, derives the stored name,
// and copies the contents into the saver's directory. Returns the stored
// filename. Nothing is written for rejected files.
func (s *Saver) Save(fh *multipart.FileHeader) (string, error) {
	contentType := fh.Header.Get("Content-Type")

	name, err := Filename(filepath.Base(fh.Filename), contentType, s.now())
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create upload directory: %w", err)
	}

	src, err := fh.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open uploaded file: %w", err)
	}
	defer func() { _ = src.Close() }()

	dst, err := os.Create(filepath.Join(s.dir, name))
	if err != nil {
		return "", fmt.Errorf("failed to create upload target: %w", err)
	}

	if _, err := io.Copy(dst, src); err != nil {
		_ = dst.Close()
		_ = os.Remove(dst.Name())
		return "", fmt.Errorf("failed to write upload: %w", err)
	}

	if err := dst.Close(); err != nil {
		return "", fmt.Errorf("failed to finish upload: %w", err)
	}

	return name, nil
}

// Remove deletes a previously saved file. Callers use it to undo a save
// when the surrounding operation fails.
func (s *Saver) Remove(name string) error {
	if err := os.Remove(filepath.Join(s.dir, filepath.Base(name))); err != nil {
		return fmt.Errorf("failed to remove upload: %w", err)
	}
	return nil
}
