package user

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/ArthurRocumback/Folha-de-Ponto/internal/audit"
	"github.com/ArthurRocumback/Folha-de-Ponto/internal/domain"
	"github.com/ArthurRocumback/Folha-de-Ponto/internal/shared/contextutil"
	"github.com/ArthurRocumback/Folha-de-Ponto/internal/shared/counter"
	usererrors "github.com/ArthurRocumback/Folha-de-Ponto/internal/user/errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

const (
	matriculaCounterType = "matricula"
	senhaMinLen          = 6
)

//go:generate mockgen -source=user_service.go -destination=mock/user_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, actor domain.Identity, req CreateUserRequest) (UserResponse, error)
	GetAll(ctx context.Context) ([]UserResponse, error)
	GetByID(ctx context.Context, id string) (UserResponse, error)
	Update(ctx context.Context, actor domain.Identity, id string, req UpdateUserRequest) (UserResponse, error)
	ToggleStatus(ctx context.Context, actor domain.Identity, id string) (UserResponse, error)
	ResetPassword(ctx context.Context, actor domain.Identity, id string, req ResetPasswordRequest) error
	Delete(ctx context.Context, actor domain.Identity, id string) error
}

type service struct {
	db      *sql.DB
	repo    Repository
	counter counter.Repository
	auditor audit.Recorder
	logger  *zap.Logger
}

func NewService(
	db *sql.DB,
	repo Repository,
	counterRepo counter.Repository,
	auditor audit.Recorder,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("user.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("user.service")
	}
	return &service{
		db:      db,
		repo:    repo,
		counter: counterRepo,
		auditor: auditor,
		logger:  l,
	}
}

func (s *service) Create(
	ctx context.Context,
	actor domain.Identity,
	req CreateUserRequest,
) (UserResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("create user requested",
		zap.String("request_id", rid),
		zap.String("email", req.Email),
		zap.String("nivel_acesso", req.NivelAcesso),
	)

	if !NivelAcessoValido(req.NivelAcesso) {
		return UserResponse{}, usererrors.ErrNivelAcessoInvalido
	}
	if len(req.Senha) < senhaMinLen {
		return UserResponse{}, usererrors.ErrSenhaCurta
	}

	senhaHash, err := bcrypt.GenerateFromPassword([]byte(req.Senha), bcrypt.DefaultCost)
	if err != nil {
		s.logger.Error("create user hash password failed", zap.Error(err))
		return UserResponse{}, err
	}

	if req.Matricula == "" {
		nextVal, err := s.counter.GetNextValue(ctx, matriculaCounterType)
		if err != nil {
			s.logger.Error("create user generate matricula failed", zap.Error(err))
			return UserResponse{}, err
		}
		req.Matricula = fmt.Sprintf("PD-%06d", nextVal)
	}

	u := &User{
		ID:           uuid.New(),
		Nome:         req.Nome,
		Email:        req.Email,
		Senha:        string(senhaHash),
		Departamento: req.Departamento,
		Cargo:        req.Cargo,
		Unidade:      req.Unidade,
		NivelAcesso:  req.NivelAcesso,
		Matricula:    req.Matricula,
		Status:       domain.StatusAtivo,
		DataCadastro: time.Now().UTC(),
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("create user begin tx failed", zap.String("request_id", rid), zap.Error(err))
		return UserResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	if err := qtx.Create(ctx, u); err != nil {
		s.logger.Error("create user persist failed", zap.Error(err))
		return UserResponse{}, mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("create user commit failed", zap.String("request_id", rid), zap.Error(err))
		return UserResponse{}, err
	}

	if s.auditor != nil {
		s.auditor.Record(ctx, audit.ActionUserCreated, &u.ID, u.Nome, actor.Nome)
	}

	s.logger.Info("create user success",
		zap.String("request_id", rid),
		zap.String("user_id", u.ID.String()),
		zap.String("matricula", u.Matricula),
	)

	return mapToResponse(*u), nil
}

func (s *service) GetAll(ctx context.Context) ([]UserResponse, error) {
	rows, err := s.repo.FindAll(ctx)
	if err != nil {
		s.logger.Error("get all users failed", zap.Error(err))
		return nil, mapRepositoryError(err)
	}

	return mapToListResponse(rows), nil
}

func (s *service) GetByID(ctx context.Context, id string) (UserResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return UserResponse{}, usererrors.ErrInvalidUserID
	}

	u, err := s.repo.FindByID(ctx, id)
	if err != nil {
		s.logger.Error("get user by id failed", zap.String("user_id", id), zap.Error(err))
		return UserResponse{}, mapRepositoryError(err)
	}

	return mapToResponse(*u), nil
}

func (s *service) Update(
	ctx context.Context,
	actor domain.Identity,
	id string,
	req UpdateUserRequest,
) (UserResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return UserResponse{}, usererrors.ErrInvalidUserID
	}
	if !NivelAcessoValido(req.NivelAcesso) {
		return UserResponse{}, usererrors.ErrNivelAcessoInvalido
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("update user begin tx failed", zap.Error(err))
		return UserResponse{}, err
	}
	defer tx.Rollback()

	u, err := s.repo.FindByID(ctx, id)
	if err != nil {
		s.logger.Error("update user fetch existing failed", zap.Error(err))
		return UserResponse{}, mapRepositoryError(err)
	}

	u.Nome = req.Nome
	u.Email = req.Email
	u.Departamento = req.Departamento
	u.Cargo = req.Cargo
	u.Unidade = req.Unidade
	u.NivelAcesso = req.NivelAcesso

	qtx := s.repo.WithTx(tx)
	if err := qtx.Update(ctx, u); err != nil {
		s.logger.Error("update user persist failed", zap.Error(err))
		return UserResponse{}, mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("update user commit failed", zap.Error(err))
		return UserResponse{}, err
	}

	if s.auditor != nil {
		s.auditor.Record(ctx, audit.ActionUserUpdated, &u.ID, u.Nome, actor.Nome)
	}

	s.logger.Info("update user success", zap.String("user_id", id))

	return mapToResponse(*u), nil
}

// ToggleStatus alterna Ativo/Inativo. A própria conta nunca pode ser
// desativada: sem essa trava o último administrador ativo conseguiria se
// trancar para fora do sistema.
func (s *service) ToggleStatus(
	ctx context.Context,
	actor domain.Identity,
	id string,
) (UserResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return UserResponse{}, usererrors.ErrInvalidUserID
	}

	u, err := s.repo.FindByID(ctx, id)
	if err != nil {
		s.logger.Error("toggle status fetch failed", zap.Error(err))
		return UserResponse{}, mapRepositoryError(err)
	}

	novoStatus := domain.StatusAtivo
	acao := audit.ActionUserEnabled
	if u.Status == domain.StatusAtivo {
		novoStatus = domain.StatusInativo
		acao = audit.ActionUserDisabled
	}

	if novoStatus == domain.StatusInativo && actor.UserID == id {
		return UserResponse{}, usererrors.ErrAutoDesativacao
	}

	if err := s.repo.UpdateStatus(ctx, id, novoStatus); err != nil {
		s.logger.Error("toggle status persist failed", zap.Error(err))
		return UserResponse{}, mapRepositoryError(err)
	}
	u.Status = novoStatus

	if s.auditor != nil {
		s.auditor.Record(ctx, acao, &u.ID, u.Nome, actor.Nome)
	}

	s.logger.Info("toggle status success",
		zap.String("user_id", id),
		zap.String("status", novoStatus),
	)

	return mapToResponse(*u), nil
}

func (s *service) ResetPassword(
	ctx context.Context,
	actor domain.Identity,
	id string,
	req ResetPasswordRequest,
) error {
	if _, err := uuid.Parse(id); err != nil {
		return usererrors.ErrInvalidUserID
	}
	if req.NovaSenha == "" {
		return usererrors.ErrSenhaObrigatoria
	}
	if len(req.NovaSenha) < senhaMinLen {
		return usererrors.ErrSenhaCurta
	}

	u, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return mapRepositoryError(err)
	}

	senhaHash, err := bcrypt.GenerateFromPassword([]byte(req.NovaSenha), bcrypt.DefaultCost)
	if err != nil {
		s.logger.Error("reset password hash failed", zap.Error(err))
		return err
	}

	if err := s.repo.UpdatePassword(ctx, id, string(senhaHash)); err != nil {
		s.logger.Error("reset password persist failed", zap.Error(err))
		return mapRepositoryError(err)
	}

	if s.auditor != nil {
		s.auditor.Record(ctx, audit.ActionPassReset, &u.ID, u.Nome, actor.Nome)
	}

	s.logger.Info("reset password success", zap.String("user_id", id))
	return nil
}

func (s *service) Delete(ctx context.Context, actor domain.Identity, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return usererrors.ErrInvalidUserID
	}

	u, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return mapRepositoryError(err)
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		s.logger.Error("delete user failed", zap.Error(err))
		return mapRepositoryError(err)
	}

	if s.auditor != nil {
		s.auditor.Record(ctx, audit.ActionUserDeleted, &u.ID, u.Nome, actor.Nome)
	}

	s.logger.Info("delete user success", zap.String("user_id", id))
	return nil
}

func mapToResponse(u User) UserResponse {
	return UserResponse{
		ID:           u.ID.String(),
		Nome:         u.Nome,
		Email:        u.Email,
		Departamento: u.Departamento,
		Cargo:        u.Cargo,
		Unidade:      u.Unidade,
		NivelAcesso:  u.NivelAcesso,
		Matricula:    u.Matricula,
		Status:       u.Status,
		DataCadastro: u.DataCadastro.Format(time.RFC3339),
	}
}

func mapToListResponse(rows []User) []UserResponse {
	res := make([]UserResponse, len(rows))
	for i, u := range rows {
		res[i] = mapToResponse(u)
	}
	return res
}
