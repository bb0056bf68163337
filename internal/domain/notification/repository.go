package notification

import (
	"context"
	"errors"

	"gorm.io/gorm"
)

type Repository interface {
	Create(ctx context.Context, d *Device) error
	GetByToken(ctx context.Context, token string) (*Device, error)
	Update(ctx context.Context, d *Device) error
	Delete(ctx context.Context, id string) error
	ListByUser(ctx context.Context, userID string) ([]Device, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, d *Device) error {
	return r.db.WithContext(ctx).Create(d).Error
}

func (r *repository) GetByToken(ctx context.Context, token string) (*Device, error) {
	var d Device
	err := r.db.WithContext(ctx).Where("token = ?", token).First(&d).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrDeviceNotFound
	}
	return &d, err
}

func (r *repository) Update(ctx context.Context, d *Device) error {
	return r.db.WithContext(ctx).Save(d).Error
}

func (r *repository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&Device{}).Error
}

func (r *repository) ListByUser(ctx context.Context, userID string) ([]Device, error) {
	var devices []Device
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&devices).Error
	return devices, err
}
