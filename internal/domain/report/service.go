package report

import (
	"context"

	"github.com/google/uuid"

	"cityportal/internal/pkg/pagination"
	"cityportal/internal/pkg/upload"
)

type Service struct {
	repo       Repository
	categories CategoryRepository
	intake     *upload.Intake
	cdnBase    string
}

func NewService(repo Repository, categories CategoryRepository, intake *upload.Intake, cdnBase string) *Service {
	return &Service{repo: repo, categories: categories, intake: intake, cdnBase: cdnBase}
}

// Create files a citizen report. Reports start in StatusNew and
// unvalidated; the optional photo runs through the intake pipeline.
func (s *Service) Create(ctx context.Context, req CreateReportRequest, citizenID string, photo *upload.File) (*Report, error) {
	if _, err := s.categories.GetByID(ctx, req.CategoryID); err != nil {
		return nil, err
	}

	rep := &Report{
		ID:          uuid.NewString(),
		Title:       req.Title,
		Description: req.Description,
		CategoryID:  req.CategoryID,
		Address:     req.Address,
		Latitude:    req.Latitude,
		Longitude:   req.Longitude,
		Status:      StatusNew,
	}
	if citizenID != "" {
		rep.CitizenID = &citizenID
	}

	if photo == nil {
		if err := s.repo.Create(ctx, rep); err != nil {
			return nil, err
		}
		return rep, nil
	}

	if err := upload.ValidateGroups(upload.Group{
		Name:        "photo",
		Files:       []*upload.File{photo},
		AllowedExts: upload.ImageExtensions,
		MaxBytes:    upload.MaxFileSize,
	}); err != nil {
		return nil, err
	}

	res, err := s.intake.Run(ctx, upload.Request{
		Area:    "report",
		Primary: photo,
		Create: func(ctx context.Context) (string, error) {
			if err := s.repo.Create(ctx, rep); err != nil {
				return "", err
			}
			return rep.ID, nil
		},
		Update: func(ctx context.Context, _, primaryPath, _ string) error {
			rep.Photo = &primaryPath
			return s.repo.Update(ctx, rep)
		},
		Rollback: func(ctx context.Context, id string) error {
			return s.repo.Delete(ctx, id)
		},
	})
	if err != nil {
		return nil, err
	}
	rep.Photo = &res.PrimaryPath
	return rep, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (*Report, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) List(ctx context.Context, q SearchQuery) ([]Report, pagination.Meta, error) {
	q.Normalize()

	f := Filters{
		Title:      q.Title,
		CategoryID: q.CategoryID,
		CitizenID:  q.CitizenID,
		Limit:      q.Limit,
		Offset:     q.Skip(),
	}
	if q.Status != "" {
		status, ok := ParseStatus(q.Status)
		if !ok {
			return nil, pagination.Meta{}, ErrInvalidStatus
		}
		f.Status = status
	}

	reports, total, err := s.repo.List(ctx, f)
	if err != nil {
		return nil, pagination.Meta{}, err
	}
	return reports, q.Meta(total), nil
}

// Update applies admin changes. A replacement photo lands in the same
// report directory; the previous one is removed best-effort.
func (s *Service) Update(ctx context.Context, id string, req UpdateReportRequest, photo *upload.File) (*Report, error) {
	rep, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.CategoryID != nil && *req.CategoryID != rep.CategoryID {
		if _, err := s.categories.GetByID(ctx, *req.CategoryID); err != nil {
			return nil, err
		}
		rep.CategoryID = *req.CategoryID
		rep.Category = nil
	}
	if req.Title != nil {
		rep.Title = *req.Title
	}
	if req.Description != nil {
		rep.Description = *req.Description
	}
	if req.Address != nil {
		rep.Address = *req.Address
	}
	if req.Latitude != nil {
		rep.Latitude = *req.Latitude
	}
	if req.Longitude != nil {
		rep.Longitude = *req.Longitude
	}
	if req.Validated != nil {
		rep.Validated = *req.Validated
	}
	if req.Status != nil {
		status, ok := ParseStatus(*req.Status)
		if !ok {
			return nil, ErrInvalidStatus
		}
		rep.Status = status
	}

	if photo != nil {
		if err := upload.ValidateGroups(upload.Group{
			Name:        "photo",
			Files:       []*upload.File{photo},
			AllowedExts: upload.ImageExtensions,
			MaxBytes:    upload.MaxFileSize,
		}); err != nil {
			return nil, err
		}

		oldPath := ""
		if rep.Photo != nil {
			oldPath = *rep.Photo
		}

		res, err := s.intake.Run(ctx, upload.Request{
			Area:    "report",
			Primary: photo,
			Create: func(ctx context.Context) (string, error) {
				return rep.ID, nil
			},
			Update: func(ctx context.Context, _, primaryPath, _ string) error {
				rep.Photo = &primaryPath
				return s.repo.Update(ctx, rep)
			},
		})
		if err != nil {
			return nil, err
		}
		rep.Photo = &res.PrimaryPath
		if oldPath != "" && oldPath != res.PrimaryPath {
			s.intake.Remove(oldPath)
		}
		return rep, nil
	}

	if err := s.repo.Update(ctx, rep); err != nil {
		return nil, err
	}
	return rep, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	rep, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if rep.Photo != nil {
		s.intake.RemoveDir("report", rep.ID)
	}
	return s.repo.Delete(ctx, id)
}

func (s *Service) CreateCategory(ctx context.Context, req CreateCategoryRequest) (*Category, error) {
	cat := &Category{
		ID:   uuid.NewString(),
		Name: req.Name,
	}
	if req.Description != "" {
		cat.Description = &req.Description
	}
	if err := s.categories.Create(ctx, cat); err != nil {
		return nil, err
	}
	return cat, nil
}

func (s *Service) GetCategory(ctx context.Context, id string) (*Category, error) {
	return s.categories.GetByID(ctx, id)
}

func (s *Service) ListCategories(ctx context.Context) ([]Category, error) {
	return s.categories.ListWithCounts(ctx)
}

func (s *Service) UpdateCategory(ctx context.Context, id string, req UpdateCategoryRequest) (*Category, error) {
	cat, err := s.categories.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if req.Name != nil {
		cat.Name = *req.Name
	}
	if req.Description != nil {
		cat.Description = req.Description
	}
	if err := s.categories.Update(ctx, cat); err != nil {
		return nil, err
	}
	return cat, nil
}

// DeleteCategory soft-deletes so reports keep a resolvable reference.
func (s *Service) DeleteCategory(ctx context.Context, id string) error {
	if _, err := s.categories.GetByID(ctx, id); err != nil {
		return err
	}
	return s.categories.SoftDelete(ctx, id)
}

// ToResponse rewrites the stored relative photo path with the CDN base.
func (s *Service) ToResponse(r *Report) ReportResponse {
	resp := ReportResponse{
		ID:          r.ID,
		Title:       r.Title,
		Description: r.Description,
		CategoryID:  r.CategoryID,
		Category:    r.Category,
		Validated:   r.Validated,
		Address:     r.Address,
		Latitude:    r.Latitude,
		Longitude:   r.Longitude,
		Status:      r.Status,
		CitizenID:   r.CitizenID,
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}
	if r.Photo != nil {
		url := s.cdnBase + *r.Photo
		resp.Photo = &url
	}
	return resp
}
