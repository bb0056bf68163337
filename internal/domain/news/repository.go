package news

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
)

// Filters is the assembled list predicate; zero values impose nothing.
type Filters struct {
	Search   string
	DateFrom time.Time
	DateTo   time.Time
	HasImage *bool
	Limit    int
	Offset   int
}

type Repository interface {
	Create(ctx context.Context, a *Article) error
	GetByID(ctx context.Context, id string) (*Article, error)
	GetBySlug(ctx context.Context, slug string) (*Article, error)
	ExistsBySlug(ctx context.Context, slug, excludeID string) (bool, error)
	Update(ctx context.Context, a *Article) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, f Filters) ([]Article, int64, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, a *Article) error {
	return r.db.WithContext(ctx).Create(a).Error
}

func (r *repository) GetByID(ctx context.Context, id string) (*Article, error) {
	var a Article
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&a).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrArticleNotFound
	}
	return &a, err
}

func (r *repository) GetBySlug(ctx context.Context, slug string) (*Article, error) {
	var a Article
	err := r.db.WithContext(ctx).Where("slug = ?", slug).First(&a).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrArticleNotFound
	}
	return &a, err
}

func (r *repository) ExistsBySlug(ctx context.Context, slug, excludeID string) (bool, error) {
	var count int64
	q := r.db.WithContext(ctx).Model(&Article{}).Where("slug = ?", slug)
	if excludeID != "" {
		q = q.Where("id <> ?", excludeID)
	}
	err := q.Count(&count).Error
	return count > 0, err
}

func (r *repository) Update(ctx context.Context, a *Article) error {
	return r.db.WithContext(ctx).Save(a).Error
}

func (r *repository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&Article{}).Error
}

func (r *repository) List(ctx context.Context, f Filters) ([]Article, int64, error) {
	var articles []Article
	var total int64

	q := r.db.WithContext(ctx).Model(&Article{})

	if f.Search != "" {
		like := "%" + f.Search + "%"
		q = q.Where("title LIKE ? OR content LIKE ? OR excerpt LIKE ?", like, like, like)
	}
	if !f.DateFrom.IsZero() {
		q = q.Where("date >= ?", f.DateFrom)
	}
	if !f.DateTo.IsZero() {
		q = q.Where("date <= ?", f.DateTo)
	}
	if f.HasImage != nil {
		if *f.HasImage {
			q = q.Where("image_url IS NOT NULL AND image_url <> ''")
		} else {
			q = q.Where("image_url IS NULL OR image_url = ''")
		}
	}

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := q.Order("date DESC").
		Limit(f.Limit).
		Offset(f.Offset).
		Find(&articles).Error

	return articles, total, err
}
