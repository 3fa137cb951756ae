package counter

import (
	"context"

	"gorm.io/gorm"
)

// Repository gera sequências atômicas por tipo (ex.: numeração de matrícula).
//
//go:generate mockgen -destination=mock/counter_repo_mock.go -package=mock . Repository
type Repository interface {
	GetNextValue(ctx context.Context, counterType string) (int64, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) GetNextValue(ctx context.Context, counterType string) (int64, error) {
	var nextValue int64

	// UPSERT atômico para não haver corrida entre dois cadastros simultâneos
	err := r.db.WithContext(ctx).Raw(`
		INSERT INTO contadores (tipo, ultimo_valor, atualizado_em)
		VALUES (?, 1, now())
		ON CONFLICT (tipo) DO UPDATE
		SET ultimo_valor = contadores.ultimo_valor + 1, atualizado_em = now()
		RETURNING ultimo_valor
	`, counterType).Scan(&nextValue).Error

	if err != nil {
		return 0, err
	}

	return nextValue, nil
}
