package catalog

import (
	"context"

	"gorm.io/gorm"
)

//go:generate mockgen -source=catalog_repo.go -destination=mock/catalog_repo_mock.go -package=mock
type Repository interface {
	FindDepartamentos(ctx context.Context) ([]Departamento, error)
	FindCargos(ctx context.Context) ([]Cargo, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) FindDepartamentos(ctx context.Context) ([]Departamento, error) {
	var rows []Departamento
	err := r.db.WithContext(ctx).
		Order("nome ASC").
		Find(&rows).Error
	return rows, err
}

func (r *repository) FindCargos(ctx context.Context) ([]Cargo, error) {
	var rows []Cargo
	err := r.db.WithContext(ctx).
		Order("nome ASC").
		Find(&rows).Error
	return rows, err
}
