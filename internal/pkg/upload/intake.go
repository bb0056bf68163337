package upload

import (
	"context"
	"fmt"
	"log"
	"os"
	"path"
	"path/filepath"
	"strconv"
	"time"
)

// Intake moves accepted uploads from the temp area into a permanent,
// identifier-namespaced directory under a single configured root and
// computes the public-facing relative paths. The same root backs the
// static /uploads file-serving surface and deletion.
type Intake struct {
	root string
}

func NewIntake(root string) *Intake {
	return &Intake{root: root}
}

// Request describes one intake run. Create must persist the owning row
// with empty file references and return its identifier; Update writes
// the final relative paths back; Rollback removes the row when a later
// step fails.
type Request struct {
	Area     string // e.g. "library", namespaces the storage directory
	Primary  *File
	Cover    *File
	Create   func(ctx context.Context) (string, error)
	Update   func(ctx context.Context, id, primaryPath, coverPath string) error
	Rollback func(ctx context.Context, id string) error
}

// Result carries the identifiers the caller needs to assemble its DTO.
type Result struct {
	ID          string
	PrimaryPath string // /uploads/<area>/<id>/<name>
	CoverPath   string // empty when no cover was supplied
}

// Run executes the pipeline. The row is created before any file moves so
// its identifier can name the storage directory; on failure after that
// point the row and any already-moved files are cleaned up best-effort.
func (in *Intake) Run(ctx context.Context, req Request) (*Result, error) {
	if req.Primary == nil {
		return nil, ErrMissingFile
	}

	id, err := req.Create(ctx)
	if err != nil {
		return nil, err
	}

	res, err := in.place(ctx, id, req)
	if err != nil {
		if req.Rollback != nil {
			if rbErr := req.Rollback(ctx, id); rbErr != nil {
				log.Printf("intake rollback failed area=%s id=%s error=%q", req.Area, id, rbErr)
			}
		}
		return nil, err
	}
	return res, nil
}

func (in *Intake) place(ctx context.Context, id string, req Request) (*Result, error) {
	dir := filepath.Join(in.root, req.Area, id)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create storage dir: %w", err)
	}

	primaryName := strconv.FormatInt(time.Now().UnixMilli(), 10) + req.Primary.Ext()
	if err := os.Rename(req.Primary.TempPath, filepath.Join(dir, primaryName)); err != nil {
		return nil, fmt.Errorf("failed to move file into place: %w", err)
	}
	primaryPath := path.Join("/uploads", req.Area, id, primaryName)

	coverPath := ""
	if req.Cover != nil {
		coverName := "cover" + req.Cover.Ext()
		if err := os.Rename(req.Cover.TempPath, filepath.Join(dir, coverName)); err != nil {
			in.Remove(primaryPath)
			return nil, fmt.Errorf("failed to move cover into place: %w", err)
		}
		coverPath = path.Join("/uploads", req.Area, id, coverName)
	}

	if err := req.Update(ctx, id, primaryPath, coverPath); err != nil {
		in.Remove(primaryPath)
		if coverPath != "" {
			in.Remove(coverPath)
		}
		return nil, err
	}

	return &Result{ID: id, PrimaryPath: primaryPath, CoverPath: coverPath}, nil
}

// Remove unlinks the file behind a stored relative path. A missing file
// is not an error; deletion of the owning record must not be blocked.
func (in *Intake) Remove(relPath string) {
	if relPath == "" {
		return
	}
	abs := in.Resolve(relPath)
	if err := os.Remove(abs); err != nil && !os.IsNotExist(err) {
		log.Printf("failed to remove stored file path=%s error=%q", abs, err)
	}
}

// RemoveDir drops the whole identifier-namespaced directory.
func (in *Intake) RemoveDir(area, id string) {
	dir := filepath.Join(in.root, area, id)
	if err := os.RemoveAll(dir); err != nil {
		log.Printf("failed to remove storage dir path=%s error=%q", dir, err)
	}
}

// Resolve maps a stored /uploads/... path onto the configured root.
func (in *Intake) Resolve(relPath string) string {
	trimmed := relPath
	if len(trimmed) > 0 && trimmed[0] == '/' {
		trimmed = trimmed[1:]
	}
	if len(trimmed) >= len("uploads/") && trimmed[:len("uploads/")] == "uploads/" {
		trimmed = trimmed[len("uploads/"):]
	}
	return filepath.Join(in.root, filepath.FromSlash(trimmed))
}
