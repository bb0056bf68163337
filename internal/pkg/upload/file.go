package upload

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// File is a request-scoped upload sitting in the temp area. It is
// consumed by the intake pipeline or the remote uploader and never
// persisted as-is.
type File struct {
	OriginalName string
	TempPath     string
	Size         int64
}

// Ext returns the lowercased filename extension, including the dot.
func (f File) Ext() string {
	return strings.ToLower(filepath.Ext(f.OriginalName))
}

// TempStore writes incoming multipart parts under <root>/tmp/<area> so
// the pipeline can later rename them into place on the same volume.
type TempStore struct {
	root string
}

func NewTempStore(root string) *TempStore {
	return &TempStore{root: root}
}

// Save copies a multipart part to the temp area and returns its File.
func (s *TempStore) Save(area string, fh *multipart.FileHeader) (File, error) {
	dir := filepath.Join(s.root, "tmp", area)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return File{}, fmt.Errorf("failed to create temp dir: %w", err)
	}

	src, err := fh.Open()
	if err != nil {
		return File{}, fmt.Errorf("failed to open uploaded file: %w", err)
	}
	defer src.Close()

	tempPath := filepath.Join(dir, uuid.NewString()+strings.ToLower(filepath.Ext(fh.Filename)))
	dst, err := os.Create(tempPath)
	if err != nil {
		return File{}, fmt.Errorf("failed to create temp file: %w", err)
	}
	defer dst.Close()

	written, err := io.Copy(dst, src)
	if err != nil {
		os.Remove(tempPath)
		return File{}, fmt.Errorf("failed to write temp file: %w", err)
	}

	return File{
		OriginalName: fh.Filename,
		TempPath:     tempPath,
		Size:         written,
	}, nil
}
