package timeclock

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"github.com/ArthurRocumback/Folha-de-Ponto/internal/audit"
	"github.com/ArthurRocumback/Folha-de-Ponto/internal/domain"
	"github.com/ArthurRocumback/Folha-de-Ponto/internal/events"
	"github.com/ArthurRocumback/Folha-de-Ponto/internal/geo"
	"github.com/ArthurRocumback/Folha-de-Ponto/internal/messaging/kafka"
	"github.com/ArthurRocumback/Folha-de-Ponto/internal/shared/apperror"
	"github.com/ArthurRocumback/Folha-de-Ponto/internal/shared/contextutil"
	timeclockerrors "github.com/ArthurRocumback/Folha-de-Ponto/internal/timeclock/errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const defaultRecentLimit = 5

//go:generate mockgen -source=timeclock_service.go -destination=mock/timeclock_service_mock.go -package=mock
type Service interface {
	RegisterPunch(ctx context.Context, identity domain.Identity, req PunchRequest, meta ClientMeta) (ClockEventResponse, error)
	ListRecent(ctx context.Context, usuarioID string, limit int) ([]ClockEventResponse, error)
	ListHistory(ctx context.Context, usuarioID string) ([]ClockEventResponse, error)
	ListDaysWithRecords(ctx context.Context, usuarioID string) ([]string, error)
	RecordDailyPresence(ctx context.Context, usuarioID string, horario time.Time) error
}

type service struct {
	db         *sql.DB
	repo       Repository
	classifier geo.Classifier
	outbox     kafka.OutboxRepository
	auditor    audit.Recorder
	logger     *zap.Logger
}

func NewService(
	db *sql.DB,
	repo Repository,
	classifier geo.Classifier,
	outbox kafka.OutboxRepository,
	auditor audit.Recorder,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("timeclock.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("timeclock.service")
	}
	return &service{
		db:         db,
		repo:       repo,
		classifier: classifier,
		outbox:     outbox,
		auditor:    auditor,
		logger:     l,
	}
}

func (s *service) RegisterPunch(
	ctx context.Context,
	identity domain.Identity,
	req PunchRequest,
	meta ClientMeta,
) (ClockEventResponse, error) {
	kind, err := ParseKind(req.Tipo)
	if err != nil {
		return ClockEventResponse{}, err
	}

	usuarioID, err := uuid.Parse(identity.UserID)
	if err != nil {
		return ClockEventResponse{}, apperror.ErrUnauthorized
	}

	if !identity.IsActive() {
		return ClockEventResponse{}, timeclockerrors.ErrUsuarioInativo
	}

	if req.Localizacao != nil &&
		(req.Localizacao.Latitude == nil || req.Localizacao.Longitude == nil) {
		return ClockEventResponse{}, timeclockerrors.ErrLocalizacaoIncompleta
	}

	// A classificação roda antes da transação: a chamada externa de
	// geocodificação nunca estende uma transação aberta no banco.
	endereco := geo.LabelNotProvided
	if req.Localizacao != nil {
		endereco = s.classifier.Classify(ctx, *req.Localizacao.Latitude, *req.Localizacao.Longitude)
	}

	now := time.Now().UTC()
	row := &ClockEvent{
		ID:        uuid.New(),
		UsuarioID: usuarioID,
		Tipo:      string(kind),
		Horario:   now,
		Endereco:  endereco,
	}
	if req.Localizacao != nil {
		row.Latitude = req.Localizacao.Latitude
		row.Longitude = req.Localizacao.Longitude
	}
	if meta.IP != "" {
		row.IP = &meta.IP
	}
	if meta.UserAgent != "" {
		row.UserAgent = &meta.UserAgent
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return ClockEventResponse{}, apperror.Wrap(err, apperror.CodeInternalError,
			timeclockerrors.ErrRegistroFalhou.Message, timeclockerrors.ErrRegistroFalhou.HTTPStatus)
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	if err := qtx.Create(ctx, row); err != nil {
		s.logger.Error("persist clock event failed",
			zap.String("usuario_id", identity.UserID),
			zap.Error(err),
		)
		return ClockEventResponse{}, apperror.Wrap(err, apperror.CodeInternalError,
			timeclockerrors.ErrRegistroFalhou.Message, timeclockerrors.ErrRegistroFalhou.HTTPStatus)
	}

	if s.outbox != nil {
		if err := s.enqueueOutbox(ctx, tx, row); err != nil {
			s.logger.Error("enqueue ponto outbox failed", zap.Error(err))
			return ClockEventResponse{}, apperror.Wrap(err, apperror.CodeInternalError,
				timeclockerrors.ErrRegistroFalhou.Message, timeclockerrors.ErrRegistroFalhou.HTTPStatus)
		}
	}

	if err := tx.Commit(); err != nil {
		return ClockEventResponse{}, apperror.Wrap(err, apperror.CodeInternalError,
			timeclockerrors.ErrRegistroFalhou.Message, timeclockerrors.ErrRegistroFalhou.HTTPStatus)
	}

	// Auditoria pós-commit: nunca bloqueia nem falha a batida.
	if s.auditor != nil {
		s.auditor.Record(ctx, auditAction(kind), &usuarioID, identity.Nome, identity.Nome)
	}

	s.logger.Info("clock event registered",
		zap.String("usuario_id", identity.UserID),
		zap.String("tipo", string(kind)),
		zap.String("endereco", endereco),
	)

	return mapToResponse(*row), nil
}

func (s *service) enqueueOutbox(ctx context.Context, tx *sql.Tx, row *ClockEvent) error {
	payload, err := json.Marshal(events.PontoRegistradoEvent{
		RegistroID: row.ID.String(),
		UsuarioID:  row.UsuarioID.String(),
		Tipo:       row.Tipo,
		Horario:    row.Horario.Format(time.RFC3339),
		Endereco:   row.Endereco,
	})
	if err != nil {
		return err
	}

	return s.outbox.WithTx(tx).Create(ctx, kafka.OutboxEvent{
		ID:            uuid.New().String(),
		RequestID:     contextutil.GetRequestID(ctx),
		AggregateType: "registro_ponto",
		AggregateID:   row.ID.String(),
		EventType:     "ponto.registrado",
		Topic:         events.PontoRegistradoTopic,
		Payload:       payload,
		Status:        kafka.OutboxStatusPending,
	})
}

func (s *service) ListRecent(ctx context.Context, usuarioID string, limit int) ([]ClockEventResponse, error) {
	if limit <= 0 || limit > defaultRecentLimit {
		limit = defaultRecentLimit
	}

	rows, err := s.repo.FindRecentByUser(ctx, usuarioID, limit)
	if err != nil {
		return nil, err
	}

	return mapAllToResponse(rows), nil
}

func (s *service) ListHistory(ctx context.Context, usuarioID string) ([]ClockEventResponse, error) {
	rows, err := s.repo.FindAllByUser(ctx, usuarioID)
	if err != nil {
		return nil, err
	}

	return mapAllToResponse(rows), nil
}

func (s *service) ListDaysWithRecords(ctx context.Context, usuarioID string) ([]string, error) {
	days, err := s.repo.FindDistinctDays(ctx, usuarioID)
	if err != nil {
		return nil, err
	}

	out := make([]string, len(days))
	for i, d := range days {
		out[i] = d.Format("2006-01-02")
	}
	return out, nil
}

// RecordDailyPresence recalcula o agregado do dia a partir de registros_ponto
// em vez de incrementar um contador: com entrega at-least-once a mesma
// mensagem pode ser reprocessada após um commit de offset perdido, e o
// recálculo converge sempre para o mesmo valor.
func (s *service) RecordDailyPresence(ctx context.Context, usuarioID string, horario time.Time) error {
	dia := horario.UTC().Truncate(24 * time.Hour)

	total, err := s.repo.CountEventsOnDay(ctx, usuarioID, dia)
	if err != nil {
		return err
	}
	if total == 0 {
		// O evento sai do outbox só depois do commit do registro; contagem
		// zero indica evento órfão e não deve zerar o agregado.
		return nil
	}

	return s.repo.SetDailyPresence(ctx, usuarioID, dia, total)
}

func auditAction(kind Kind) string {
	if kind == KindSaida {
		return audit.ActionClockOut
	}
	return audit.ActionClockIn
}

func mapAllToResponse(rows []ClockEvent) []ClockEventResponse {
	resp := make([]ClockEventResponse, len(rows))
	for i, r := range rows {
		resp[i] = mapToResponse(r)
	}
	return resp
}

func mapToResponse(e ClockEvent) ClockEventResponse {
	endereco := e.Endereco
	if endereco == "" {
		endereco = geo.LabelNotProvided
	}
	return ClockEventResponse{
		ID:        e.ID.String(),
		Tipo:      e.Tipo,
		Horario:   e.Horario.Format(time.RFC3339),
		Endereco:  endereco,
		Latitude:  e.Latitude,
		Longitude: e.Longitude,
	}
}
