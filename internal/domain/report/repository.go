package report

import (
	"context"
	"errors"

	"gorm.io/gorm"
)

type Filters struct {
	Title      string
	CategoryID string
	Status     Status
	CitizenID  string
	Limit      int
	Offset     int
}

type Repository interface {
	Create(ctx context.Context, r *Report) error
	GetByID(ctx context.Context, id string) (*Report, error)
	Update(ctx context.Context, r *Report) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, f Filters) ([]Report, int64, error)
}

type CategoryRepository interface {
	Create(ctx context.Context, c *Category) error
	GetByID(ctx context.Context, id string) (*Category, error)
	Update(ctx context.Context, c *Category) error
	SoftDelete(ctx context.Context, id string) error
	ListWithCounts(ctx context.Context) ([]Category, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, rep *Report) error {
	return r.db.WithContext(ctx).Create(rep).Error
}

func (r *repository) GetByID(ctx context.Context, id string) (*Report, error) {
	var rep Report
	err := r.db.WithContext(ctx).
		Preload("Category").
		Where("id = ?", id).
		First(&rep).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrReportNotFound
	}
	return &rep, err
}

func (r *repository) Update(ctx context.Context, rep *Report) error {
	return r.db.WithContext(ctx).Save(rep).Error
}

func (r *repository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&Report{}).Error
}

func (r *repository) List(ctx context.Context, f Filters) ([]Report, int64, error) {
	var reports []Report
	var total int64

	q := r.db.WithContext(ctx).Model(&Report{})

	if f.Title != "" {
		q = q.Where("LOWER(title) LIKE LOWER(?)", "%"+f.Title+"%")
	}
	if f.CategoryID != "" {
		q = q.Where("category_id = ?", f.CategoryID)
	}
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	if f.CitizenID != "" {
		q = q.Where("citizen_id = ?", f.CitizenID)
	}

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := q.Preload("Category").
		Order("created_at DESC").
		Limit(f.Limit).
		Offset(f.Offset).
		Find(&reports).Error

	return reports, total, err
}

type categoryRepository struct {
	db *gorm.DB
}

func NewCategoryRepository(db *gorm.DB) CategoryRepository {
	return &categoryRepository{db: db}
}

func (r *categoryRepository) Create(ctx context.Context, c *Category) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *categoryRepository) GetByID(ctx context.Context, id string) (*Category, error) {
	var c Category
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&c).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrCategoryNotFound
	}
	if err != nil {
		return nil, err
	}

	err = r.db.WithContext(ctx).Model(&Report{}).
		Where("category_id = ?", id).
		Count(&c.ReportCount).Error
	return &c, err
}

func (r *categoryRepository) Update(ctx context.Context, c *Category) error {
	return r.db.WithContext(ctx).Save(c).Error
}

func (r *categoryRepository) SoftDelete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&Category{}).Error
}

func (r *categoryRepository) ListWithCounts(ctx context.Context) ([]Category, error) {
	var categories []Category
	if err := r.db.WithContext(ctx).Order("name ASC").Find(&categories).Error; err != nil {
		return nil, err
	}
	for i := range categories {
		if err := r.db.WithContext(ctx).Model(&Report{}).
			Where("category_id = ?", categories[i].ID).
			Count(&categories[i].ReportCount).Error; err != nil {
			return nil, err
		}
	}
	return categories, nil
}
