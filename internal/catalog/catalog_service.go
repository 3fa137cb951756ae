package catalog

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

const (
	optionsCacheKey = "catalogo:opcoes"
	optionsCacheTTL = 1 * time.Hour
)

//go:generate mockgen -source=catalog_service.go -destination=mock/catalog_service_mock.go -package=mock
type Service interface {
	GetOptions(ctx context.Context) (OptionsResponse, error)
	InvalidateOptions(ctx context.Context)
}

type service struct {
	repo   Repository
	rdb    *redis.Client
	sf     *singleflight.Group
	logger *zap.Logger
}

func NewService(repo Repository, rdb *redis.Client, logger ...*zap.Logger) Service {
	l := zap.L().Named("catalog.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("catalog.service")
	}
	return &service{
		repo:   repo,
		rdb:    rdb,
		sf:     &singleflight.Group{},
		logger: l,
	}
}

// GetOptions serve dados mestres com cache: os selects do formulário de
// cadastro disparam esta consulta a cada abertura de tela.
func (s *service) GetOptions(ctx context.Context) (OptionsResponse, error) {
	if s.rdb != nil {
		if cached, err := s.rdb.Get(ctx, optionsCacheKey).Result(); err == nil {
			var resp OptionsResponse
			if json.Unmarshal([]byte(cached), &resp) == nil {
				return resp, nil
			}
		}
	}

	v, err, _ := s.sf.Do(optionsCacheKey, func() (interface{}, error) {
		departamentos, err := s.repo.FindDepartamentos(ctx)
		if err != nil {
			return OptionsResponse{}, err
		}
		cargos, err := s.repo.FindCargos(ctx)
		if err != nil {
			return OptionsResponse{}, err
		}

		resp := OptionsResponse{
			Departamentos: make([]OptionResponse, len(departamentos)),
			Cargos:        make([]OptionResponse, len(cargos)),
		}
		for i, d := range departamentos {
			resp.Departamentos[i] = OptionResponse{ID: d.ID.String(), Nome: d.Nome}
		}
		for i, c := range cargos {
			resp.Cargos[i] = OptionResponse{ID: c.ID.String(), Nome: c.Nome}
		}

		if s.rdb != nil {
			if jsonData, err := json.Marshal(resp); err == nil {
				s.rdb.Set(ctx, optionsCacheKey, jsonData, optionsCacheTTL)
			}
		}

		return resp, nil
	})
	if err != nil {
		return OptionsResponse{}, err
	}

	return v.(OptionsResponse), nil
}

func (s *service) InvalidateOptions(ctx context.Context) {
	if s.rdb == nil {
		return
	}
	if err := s.rdb.Del(ctx, optionsCacheKey).Err(); err != nil {
		s.logger.Error("failed to invalidate options cache",
			zap.String("key", optionsCacheKey),
			zap.Error(err),
		)
	}
}
