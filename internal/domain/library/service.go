package library

import (
	"context"
	"fmt"
	"mime"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"cityportal/internal/pkg/pagination"
	"cityportal/internal/pkg/upload"
)

type Service struct {
	repo    Repository
	intake  *upload.Intake
	cdnBase string
}

func NewService(repo Repository, intake *upload.Intake, cdnBase string) *Service {
	return &Service{repo: repo, intake: intake, cdnBase: cdnBase}
}

// Create validates the uploaded files and runs them through the intake
// pipeline: row first (its id names the storage dir), then file moves,
// then the path update.
func (s *Service) Create(ctx context.Context, req CreateDocumentRequest, primary, cover *upload.File, uploadedBy string) (*Document, error) {
	if primary == nil {
		return nil, upload.ErrMissingFile
	}

	groups := []upload.Group{{
		Name:        "documents",
		Files:       []*upload.File{primary},
		AllowedExts: upload.DocumentExtensions,
		MaxBytes:    upload.MaxFileSize,
		MinCount:    1,
	}}
	if cover != nil {
		groups = append(groups, upload.Group{
			Name:        "covers",
			Files:       []*upload.File{cover},
			AllowedExts: upload.ImageExtensions,
			MaxBytes:    upload.MaxFileSize,
		})
	}
	if err := upload.ValidateGroups(groups...); err != nil {
		return nil, err
	}

	doc := &Document{
		ID:       uuid.NewString(),
		Title:    req.Title,
		FileType: primary.Ext(),
	}
	if req.Description != "" {
		doc.Description = &req.Description
	}
	if uploadedBy != "" {
		doc.UploadedByID = &uploadedBy
	}

	_, err := s.intake.Run(ctx, upload.Request{
		Area:    "library",
		Primary: primary,
		Cover:   cover,
		Create: func(ctx context.Context) (string, error) {
			if err := s.repo.Create(ctx, doc); err != nil {
				return "", err
			}
			return doc.ID, nil
		},
		Update: func(ctx context.Context, id, primaryPath, coverPath string) error {
			doc.FileURL = primaryPath
			if coverPath != "" {
				doc.CoverImage = &coverPath
			}
			return s.repo.Update(ctx, doc)
		},
		Rollback: func(ctx context.Context, id string) error {
			return s.repo.Delete(ctx, id)
		},
	})
	if err != nil {
		return nil, err
	}
	return doc, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (*Document, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) List(ctx context.Context, q SearchQuery) ([]Document, pagination.Meta, error) {
	q.Normalize()
	docs, total, err := s.repo.List(ctx, Filters{
		Title:  q.Title,
		Limit:  q.Limit,
		Offset: q.Skip(),
	})
	if err != nil {
		return nil, pagination.Meta{}, err
	}
	return docs, q.Meta(total), nil
}

// Download opens the stored file for streaming. The attachment filename
// derives from the title with quote characters stripped; the content
// type from the stored extension.
func (s *Service) Download(ctx context.Context, id string) (*os.File, string, string, error) {
	doc, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, "", "", err
	}
	if doc.FileURL == "" {
		return nil, "", "", ErrNoFileAttached
	}

	f, err := os.Open(s.intake.Resolve(doc.FileURL))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, "", "", ErrNoFileAttached
		}
		return nil, "", "", fmt.Errorf("failed to open stored file: %w", err)
	}

	ext := filepath.Ext(doc.FileURL)
	name := strings.NewReplacer(`"`, "", "'", "").Replace(doc.Title) + ext

	contentType := mime.TypeByExtension(ext)
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	return f, name, contentType, nil
}

func (s *Service) Update(ctx context.Context, id string, req UpdateDocumentRequest) (*Document, error) {
	doc, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		doc.Title = *req.Title
	}
	if req.Description != nil {
		doc.Description = req.Description
	}

	if err := s.repo.Update(ctx, doc); err != nil {
		return nil, err
	}
	return doc, nil
}

// Delete removes the stored files best-effort, then the row. A missing
// file never blocks record deletion.
func (s *Service) Delete(ctx context.Context, id string) error {
	doc, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if doc.FileURL != "" {
		s.intake.RemoveDir("library", doc.ID)
	}

	return s.repo.Delete(ctx, id)
}

func (s *Service) ToResponse(d *Document) DocumentResponse {
	resp := DocumentResponse{
		ID:          d.ID,
		Title:       d.Title,
		Description: d.Description,
		FileType:    d.FileType,
		FileURL:     s.cdnBase + d.FileURL,
		UploadedBy:  d.UploadedByID,
		UploadedAt:  d.UploadedAt.Format("2006-01-02T15:04:05Z07:00"),
	}
	if d.CoverImage != nil && *d.CoverImage != "" {
		url := s.cdnBase + *d.CoverImage
		resp.CoverImage = &url
	}
	return resp
}
