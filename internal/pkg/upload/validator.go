package upload

import (
	"fmt"
	"strings"

	"cityportal/internal/pkg/slug"
)

const MaxFileSize = 50 * 1024 * 1024 // 50 MB

// Extension allow-lists shared by the modules that accept uploads.
var (
	ImageExtensions    = []string{".jpg", ".jpeg", ".png", ".webp"}
	DocumentExtensions = []string{".pdf", ".epub", ".mobi", ".docx", ".txt"}
)

// Group is a named set of files validated against shared constraints.
type Group struct {
	Name        string
	Files       []*File
	AllowedExts []string
	MaxBytes    int64
	MinCount    int
}

// ValidateGroups checks every file of every group. A single violation
// fails the whole batch; nothing is partially accepted. On success each
// file's display name is rewritten as slugified base + original extension.
func ValidateGroups(groups ...Group) error {
	for _, g := range groups {
		if len(g.Files) < g.MinCount {
			return fmt.Errorf("%s: at least %d file(s) required: %w", g.Name, g.MinCount, ErrMissingFile)
		}
		for _, f := range g.Files {
			if err := validateFile(f, g); err != nil {
				return err
			}
		}
	}
	for _, g := range groups {
		for _, f := range g.Files {
			renameFile(f)
		}
	}
	return nil
}

func validateFile(f *File, g Group) error {
	ext := f.Ext()
	allowed := false
	for _, a := range g.AllowedExts {
		if ext == a {
			allowed = true
			break
		}
	}
	if !allowed {
		return fmt.Errorf("%s: %s: %w", g.Name, ext, ErrUnsupportedFileType)
	}

	max := g.MaxBytes
	if max <= 0 {
		max = MaxFileSize
	}
	if f.Size > max {
		return fmt.Errorf("%s: %s (%d bytes): %w", g.Name, f.OriginalName, f.Size, ErrFileTooLarge)
	}
	return nil
}

// renameFile gives the file a collision-free display name. Storage key
// generation uses timestamps separately and is unaffected.
func renameFile(f *File) {
	ext := f.Ext()
	base := strings.TrimSuffix(f.OriginalName, ext)
	f.OriginalName = slug.Make(base) + ext
}
