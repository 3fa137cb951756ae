package rbac

import (
	"sync"

	"github.com/ArthurRocumback/Folha-de-Ponto/internal/domain"

	"github.com/casbin/casbin/v2"
	"go.uber.org/zap"
)

//go:generate mockgen -source=rbac_service.go -destination=mock/rbac_service_mock.go -package=mock
type Service interface {
	Reload() error
	Enforce(req domain.EnforceRequest) (bool, error)
}

type service struct {
	repo     Repository
	enforcer *casbin.Enforcer
	logger   *zap.Logger
	mu       sync.Mutex
}

func NewService(repo Repository, enforcer *casbin.Enforcer) Service {
	return &service{
		repo:     repo,
		enforcer: enforcer,
		logger:   zap.L().Named("rbac.service"),
	}
}

func (s *service) Reload() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.reloadUnlocked()
}

func (s *service) reloadUnlocked() error {
	s.enforcer.ClearPolicy()

	inheritance, err := s.repo.GetInheritance()
	if err != nil {
		return err
	}
	for _, h := range inheritance {
		if _, err := s.enforcer.AddGroupingPolicy(h.Nivel, h.HerdaDe); err != nil {
			return err
		}
	}

	perms, err := s.repo.GetPermissions()
	if err != nil {
		return err
	}
	for _, p := range perms {
		if _, err := s.enforcer.AddPolicy(p.NivelAcesso, p.Recurso, p.Acao); err != nil {
			return err
		}
	}

	s.logger.Debug("rbac policy reloaded",
		zap.Int("permissions", len(perms)),
		zap.Int("inheritance", len(inheritance)),
	)

	return nil
}

// Enforce recarrega a política antes de decidir, para que alterações na
// tabela de permissões valham sem reinício do processo.
func (s *service) Enforce(req domain.EnforceRequest) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.reloadUnlocked(); err != nil {
		return false, err
	}

	allowed, err := s.enforcer.Enforce(req.NivelAcesso, req.Resource, req.Action)
	if err != nil {
		s.logger.Error("rbac enforce failed",
			zap.String("nivel_acesso", req.NivelAcesso),
			zap.String("resource", req.Resource),
			zap.String("action", req.Action),
			zap.Error(err),
		)
		return false, err
	}

	s.logger.Debug("rbac enforce",
		zap.String("nivel_acesso", req.NivelAcesso),
		zap.String("resource", req.Resource),
		zap.String("action", req.Action),
		zap.Bool("allowed", allowed),
	)

	return allowed, nil
}
