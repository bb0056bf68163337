package news

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"cityportal/internal/pkg/pagination"
	"cityportal/internal/pkg/slug"
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

// Create persists a new article. When an image is supplied it runs
// through the local intake pipeline so the article id names the storage
// directory.
func (s *Service) Create(ctx context.Context, req CreateArticleRequest, image *upload.File) (*Article, error) {
	articleSlug, err := s.uniqueSlug(ctx, req.Title, "")
	if err != nil {
		return nil, err
	}

	article := &Article{
		ID:      uuid.NewString(),
		Slug:    articleSlug,
		Title:   req.Title,
		Excerpt: req.Excerpt,
		Content: req.Content,
		Date:    req.Date,
	}

	if image == nil {
		if err := s.createWithSlugRetry(ctx, article); err != nil {
			return nil, err
		}
		return article, nil
	}

	if err := upload.ValidateGroups(upload.Group{
		Name:        "image",
		Files:       []*upload.File{image},
		AllowedExts: upload.ImageExtensions,
		MaxBytes:    upload.MaxFileSize,
	}); err != nil {
		return nil, err
	}

	res, err := s.intake.Run(ctx, upload.Request{
		Area:    "news",
		Primary: image,
		Create: func(ctx context.Context) (string, error) {
			if err := s.createWithSlugRetry(ctx, article); err != nil {
				return "", err
			}
			return article.ID, nil
		},
		Update: func(ctx context.Context, id, primaryPath, coverPath string) error {
			article.ImageURL = &primaryPath
			return s.repo.Update(ctx, article)
		},
		Rollback: func(ctx context.Context, id string) error {
			return s.repo.Delete(ctx, id)
		},
	})
	if err != nil {
		return nil, err
	}
	article.ImageURL = &res.PrimaryPath
	return article, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (*Article, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) GetBySlug(ctx context.Context, slugStr string) (*Article, error) {
	return s.repo.GetBySlug(ctx, slugStr)
}

func (s *Service) List(ctx context.Context, q SearchQuery) ([]Article, pagination.Meta, error) {
	q.Normalize()

	f := Filters{
		Search:   q.Search,
		HasImage: q.HasImage,
		Limit:    q.Limit,
		Offset:   q.Skip(),
	}
	if q.DateFrom != "" {
		if t, err := time.Parse("2006-01-02", q.DateFrom); err == nil {
			f.DateFrom = t
		}
	}
	if q.DateTo != "" {
		if t, err := time.Parse("2006-01-02", q.DateTo); err == nil {
			f.DateTo = t
		}
	}

	articles, total, err := s.repo.List(ctx, f)
	if err != nil {
		return nil, pagination.Meta{}, err
	}
	return articles, q.Meta(total), nil
}

// Update applies partial changes; a title change re-slugs the article.
// A replacement image lands next to the old one, which is removed
// best-effort.
func (s *Service) Update(ctx context.Context, id string, req UpdateArticleRequest, image *upload.File) (*Article, error) {
	article, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Title != nil && *req.Title != article.Title {
		newSlug, err := s.uniqueSlug(ctx, *req.Title, id)
		if err != nil {
			return nil, err
		}
		article.Title = *req.Title
		article.Slug = newSlug
	}
	if req.Excerpt != nil {
		article.Excerpt = *req.Excerpt
	}
	if req.Content != nil {
		article.Content = *req.Content
	}
	if req.Date != nil {
		article.Date = *req.Date
	}

	if image != nil {
		if err := upload.ValidateGroups(upload.Group{
			Name:        "image",
			Files:       []*upload.File{image},
			AllowedExts: upload.ImageExtensions,
			MaxBytes:    upload.MaxFileSize,
		}); err != nil {
			return nil, err
		}

		oldPath := ""
		if article.HasImage() {
			oldPath = *article.ImageURL
		}

		res, err := s.intake.Run(ctx, upload.Request{
			Area:    "news",
			Primary: image,
			Create: func(ctx context.Context) (string, error) {
				return article.ID, nil
			},
			Update: func(ctx context.Context, _, primaryPath, _ string) error {
				article.ImageURL = &primaryPath
				return s.repo.Update(ctx, article)
			},
		})
		if err != nil {
			return nil, err
		}
		article.ImageURL = &res.PrimaryPath
		if oldPath != "" && oldPath != res.PrimaryPath {
			s.intake.Remove(oldPath)
		}
		return article, nil
	}

	if err := s.repo.Update(ctx, article); err != nil {
		return nil, err
	}
	return article, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	article, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if article.HasImage() {
		s.intake.RemoveDir("news", article.ID)
	}
	return s.repo.Delete(ctx, id)
}

// ToResponse rewrites the stored relative path with the CDN base.
func (s *Service) ToResponse(a *Article) ArticleResponse {
	resp := ArticleResponse{
		ID:        a.ID,
		Slug:      a.Slug,
		Title:     a.Title,
		Excerpt:   a.Excerpt,
		Content:   a.Content,
		Date:      a.Date,
		CreatedAt: a.CreatedAt,
		UpdatedAt: a.UpdatedAt,
	}
	if a.HasImage() {
		url := s.cdnBase + *a.ImageURL
		resp.ImageURL = &url
	}
	return resp
}

func (s *Service) uniqueSlug(ctx context.Context, title, excludeID string) (string, error) {
	return slug.Unique(ctx, title, excludeID, s.repo.ExistsBySlug)
}

// createWithSlugRetry backs the pre-insert uniqueness probe with the
// column's unique constraint: a concurrent insert that slips past the
// probe surfaces as a duplicate-key error and gets one more slug cycle.
func (s *Service) createWithSlugRetry(ctx context.Context, article *Article) error {
	for attempt := 0; ; attempt++ {
		err := s.repo.Create(ctx, article)
		if err == nil {
			return nil
		}
		if !errors.Is(err, gorm.ErrDuplicatedKey) || attempt >= 2 {
			return err
		}
		newSlug, slugErr := s.uniqueSlug(ctx, article.Title, article.ID)
		if slugErr != nil {
			return slugErr
		}
		article.Slug = newSlug
	}
}
