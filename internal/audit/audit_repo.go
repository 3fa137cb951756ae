package audit

import (
	"context"

	"gorm.io/gorm"
)

//go:generate mockgen -source=audit_repo.go -destination=mock/audit_repo_mock.go -package=mock
type Repository interface {
	Create(ctx context.Context, e *Entry) error
	FindPage(ctx context.Context, limit, offset int) ([]Entry, int64, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, e *Entry) error {
	return r.db.WithContext(ctx).Create(e).Error
}

func (r *repository) FindPage(ctx context.Context, limit, offset int) ([]Entry, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&Entry{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []Entry
	err := r.db.WithContext(ctx).
		Order("data DESC").
		Limit(limit).
		Offset(offset).
		Find(&rows).Error
	return rows, total, err
}
