package audit

import (
	"context"
	"time"

	"github.com/ArthurRocumback/Folha-de-Ponto/internal/shared/contextutil"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Recorder é o que os outros módulos enxergam da auditoria. Record nunca
// devolve erro: a trilha é melhor-esforço e não pode derrubar a operação
// principal (login, cadastro, registro de ponto).
type Recorder interface {
	Record(ctx context.Context, acao string, afetadoID *uuid.UUID, afetado, executadoPor string)
}

//go:generate mockgen -source=audit_service.go -destination=mock/audit_service_mock.go -package=mock
type Service interface {
	Recorder
	List(ctx context.Context, page, pageSize int) ([]EntryResponse, int64, error)
}

type service struct {
	repo   Repository
	logger *zap.Logger
}

func NewService(repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("audit.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("audit.service")
	}
	return &service{repo: repo, logger: l}
}

func (s *service) Record(ctx context.Context, acao string, afetadoID *uuid.UUID, afetado, executadoPor string) {
	entry := &Entry{
		ID:               uuid.New(),
		Acao:             acao,
		UsuarioAfetadoID: afetadoID,
		UsuarioAfetado:   afetado,
		ExecutadoPor:     executadoPor,
		Data:             time.Now().UTC(),
	}

	if err := s.repo.Create(ctx, entry); err != nil {
		contextutil.GetLogger(ctx, s.logger).Error("audit record failed",
			zap.String("acao", acao),
			zap.String("usuario_afetado", afetado),
			zap.Error(err),
		)
	}
}

// List pagina direto no banco: a trilha de auditoria só cresce e carregar
// a tabela inteira para fatiar em memória não escala.
func (s *service) List(ctx context.Context, page, pageSize int) ([]EntryResponse, int64, error) {
	offset := (page - 1) * pageSize
	rows, total, err := s.repo.FindPage(ctx, pageSize, offset)
	if err != nil {
		return nil, 0, err
	}

	resp := make([]EntryResponse, len(rows))
	for i, e := range rows {
		resp[i] = mapToResponse(e)
	}
	return resp, total, nil
}

func mapToResponse(e Entry) EntryResponse {
	resp := EntryResponse{
		ID:             e.ID.String(),
		Acao:           e.Acao,
		UsuarioAfetado: e.UsuarioAfetado,
		ExecutadoPor:   e.ExecutadoPor,
		Data:           e.Data.Format(time.RFC3339),
	}
	if e.UsuarioAfetadoID != nil {
		v := e.UsuarioAfetadoID.String()
		resp.UsuarioAfetadoID = &v
	}
	return resp
}
