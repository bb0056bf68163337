package quiz

import (
	"context"
	"errors"

	"gorm.io/gorm"
)

type Filters struct {
	Search    string
	Published *bool
	Limit     int
	Offset    int
}

type Repository interface {
	Create(ctx context.Context, q *Quiz) error
	GetByID(ctx context.Context, id string) (*Quiz, error)
	Update(ctx context.Context, q *Quiz) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, f Filters) ([]Quiz, int64, error)
	CreateAttempt(ctx context.Context, a *Attempt) error
	ListAttemptsByUser(ctx context.Context, userID string) ([]Attempt, error)
	Stats(ctx context.Context, quizID string) (count int64, avg float64, err error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

// Create inserts the quiz graph in one transaction. gorm cascades the
// nested questions and choices from the association tags.
func (r *repository) Create(ctx context.Context, q *Quiz) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Create(q).Error
	})
}

func (r *repository) GetByID(ctx context.Context, id string) (*Quiz, error) {
	var q Quiz
	err := r.db.WithContext(ctx).
		Preload("Questions", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		}).
		Preload("Questions.Choices", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		}).
		Where("id = ?", id).
		First(&q).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrQuizNotFound
	}
	return &q, err
}

func (r *repository) Update(ctx context.Context, q *Quiz) error {
	return r.db.WithContext(ctx).Omit("Questions").Save(q).Error
}

func (r *repository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("question_id IN (?)",
			tx.Model(&Question{}).Select("id").Where("quiz_id = ?", id),
		).Delete(&Choice{}).Error; err != nil {
			return err
		}
		if err := tx.Where("quiz_id = ?", id).Delete(&Question{}).Error; err != nil {
			return err
		}
		return tx.Where("id = ?", id).Delete(&Quiz{}).Error
	})
}

func (r *repository) List(ctx context.Context, f Filters) ([]Quiz, int64, error) {
	var quizzes []Quiz
	var total int64

	q := r.db.WithContext(ctx).Model(&Quiz{})
	if f.Search != "" {
		q = q.Where("LOWER(title) LIKE LOWER(?)", "%"+f.Search+"%")
	}
	if f.Published != nil {
		q = q.Where("published = ?", *f.Published)
	}

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := q.Order("created_at DESC").
		Limit(f.Limit).
		Offset(f.Offset).
		Find(&quizzes).Error

	return quizzes, total, err
}

func (r *repository) CreateAttempt(ctx context.Context, a *Attempt) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Create(a).Error
	})
}

func (r *repository) ListAttemptsByUser(ctx context.Context, userID string) ([]Attempt, error) {
	var attempts []Attempt
	err := r.db.WithContext(ctx).
		Preload("Quiz").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&attempts).Error
	return attempts, err
}

func (r *repository) Stats(ctx context.Context, quizID string) (int64, float64, error) {
	var count int64
	q := r.db.WithContext(ctx).Model(&Attempt{}).Where("quiz_id = ?", quizID)
	if err := q.Count(&count).Error; err != nil {
		return 0, 0, err
	}
	if count == 0 {
		return 0, 0, nil
	}

	var avg float64
	err := r.db.WithContext(ctx).Model(&Attempt{}).
		Where("quiz_id = ?", quizID).
		Select("AVG(score)").
		Scan(&avg).Error
	return count, avg, err
}
