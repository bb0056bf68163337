package library

import (
	"context"
	"errors"

	"gorm.io/gorm"
)

type Filters struct {
	Title  string
	Limit  int
	Offset int
}

type Repository interface {
	Create(ctx context.Context, d *Document) error
	GetByID(ctx context.Context, id string) (*Document, error)
	Update(ctx context.Context, d *Document) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, f Filters) ([]Document, int64, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, d *Document) error {
	return r.db.WithContext(ctx).Create(d).Error
}

func (r *repository) GetByID(ctx context.Context, id string) (*Document, error) {
	var d Document
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&d).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrDocumentNotFound
	}
	return &d, err
}

func (r *repository) Update(ctx context.Context, d *Document) error {
	return r.db.WithContext(ctx).Save(d).Error
}

func (r *repository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&Document{}).Error
}

func (r *repository) List(ctx context.Context, f Filters) ([]Document, int64, error) {
	var docs []Document
	var total int64

	q := r.db.WithContext(ctx).Model(&Document{})
	if f.Title != "" {
		q = q.Where("LOWER(title) LIKE LOWER(?)", "%"+f.Title+"%")
	}

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := q.Order("uploaded_at DESC").
		Limit(f.Limit).
		Offset(f.Offset).
		Find(&docs).Error

	return docs, total, err
}
