package media

import (
	"context"
	"errors"
	"fmt"
	"os"

	"cityportal/internal/pkg/upload"
	"cityportal/internal/storage"
)

var ErrStorageDisabled = errors.New("object storage is not configured")

// ObjectStore is the slice of the storage uploader the service uses.
// *storage.Uploader satisfies it.
type ObjectStore interface {
	UploadFiles(ctx context.Context, files []storage.FileUpload, destination string) ([]storage.UploadResult, error)
	DeleteFile(ctx context.Context, bucket, key string) error
}

type Service struct {
	store ObjectStore
}

// NewService accepts a nil store; operations then fail with
// ErrStorageDisabled so the module can stay mounted without S3.
func NewService(store ObjectStore) *Service {
	return &Service{store: store}
}

// Upload validates the images, renders a medium variant for each and
// pushes original plus optimized to object storage under destination.
func (s *Service) Upload(ctx context.Context, files []*upload.File, destination string) ([]storage.UploadResult, error) {
	if s.store == nil {
		return nil, ErrStorageDisabled
	}
	if destination == "" {
		destination = "media"
	}

	if err := upload.ValidateGroups(upload.Group{
		Name:        "files",
		Files:       files,
		AllowedExts: upload.ImageExtensions,
		MaxBytes:    upload.MaxFileSize,
		MinCount:    1,
	}); err != nil {
		return nil, err
	}

	uploads := make([]storage.FileUpload, 0, len(files))
	for _, f := range files {
		src, err := os.ReadFile(f.TempPath)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", f.OriginalName, err)
		}
		optimized, err := upload.Optimize(src, upload.MediumWidth)
		if err != nil {
			return nil, err
		}
		uploads = append(uploads, storage.FileUpload{
			Original:  *f,
			Optimized: optimized,
		})
	}

	return s.store.UploadFiles(ctx, uploads, destination)
}

// Variants renders the three fixed widths for one image, for callers
// that want all sizes instead of the single optimized rendition.
func (s *Service) Variants(f *upload.File) (*upload.Variants, error) {
	src, err := os.ReadFile(f.TempPath)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", f.OriginalName, err)
	}
	return upload.GenerateVariants(src)
}

func (s *Service) Delete(ctx context.Context, bucket, key string) error {
	if s.store == nil {
		return ErrStorageDisabled
	}
	return s.store.DeleteFile(ctx, bucket, key)
}
