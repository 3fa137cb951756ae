package timeclock

import (
	"context"
	"database/sql"
	"time"

	"gorm.io/gorm"
)

//go:generate mockgen -source=timeclock_repo.go -destination=mock/timeclock_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, e *ClockEvent) error
	FindRecentByUser(ctx context.Context, usuarioID string, limit int) ([]ClockEvent, error)
	FindAllByUser(ctx context.Context, usuarioID string) ([]ClockEvent, error)
	FindDistinctDays(ctx context.Context, usuarioID string) ([]time.Time, error)
	CountEventsOnDay(ctx context.Context, usuarioID string, dia time.Time) (int64, error)
	SetDailyPresence(ctx context.Context, usuarioID string, dia time.Time, registros int64) error
}

type repository struct {
	db *gorm.DB
	tx *sql.Tx
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *sql.Tx) Repository {
	return &repository{db: r.db, tx: tx}
}

// Create grava pelo *sql.Tx quando enlistado, para que o registro e sua linha
// de outbox entrem na mesma transação.
func (r *repository) Create(ctx context.Context, e *ClockEvent) error {
	if r.tx != nil {
		_, err := r.tx.ExecContext(ctx, `
			INSERT INTO registros_ponto
				(id, usuario_id, tipo, horario, latitude, longitude, ip, user_agent, endereco)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		`,
			e.ID, e.UsuarioID, e.Tipo, e.Horario,
			e.Latitude, e.Longitude, e.IP, e.UserAgent, e.Endereco,
		)
		return err
	}

	return r.db.WithContext(ctx).Create(e).Error
}

func (r *repository) FindRecentByUser(ctx context.Context, usuarioID string, limit int) ([]ClockEvent, error) {
	var rows []ClockEvent
	err := r.db.WithContext(ctx).
		Where("usuario_id = ?", usuarioID).
		Order("horario DESC").
		Limit(limit).
		Find(&rows).Error
	return rows, err
}

func (r *repository) FindAllByUser(ctx context.Context, usuarioID string) ([]ClockEvent, error) {
	var rows []ClockEvent
	err := r.db.WithContext(ctx).
		Where("usuario_id = ?", usuarioID).
		Order("horario DESC").
		Find(&rows).Error
	return rows, err
}

func (r *repository) FindDistinctDays(ctx context.Context, usuarioID string) ([]time.Time, error) {
	var days []time.Time
	err := r.db.WithContext(ctx).Raw(`
		SELECT DISTINCT date(horario)
		FROM registros_ponto
		WHERE usuario_id = ?
		ORDER BY 1 DESC
	`, usuarioID).Scan(&days).Error
	return days, err
}

func (r *repository) CountEventsOnDay(ctx context.Context, usuarioID string, dia time.Time) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).Raw(`
		SELECT COUNT(*)
		FROM registros_ponto
		WHERE usuario_id = ? AND date(horario) = ?
	`, usuarioID, dia.Format("2006-01-02")).Scan(&total).Error
	return total, err
}

func (r *repository) SetDailyPresence(ctx context.Context, usuarioID string, dia time.Time, registros int64) error {
	return r.db.WithContext(ctx).Exec(`
		INSERT INTO frequencia_diaria (usuario_id, dia, registros)
		VALUES (?, ?, ?)
		ON CONFLICT (usuario_id, dia) DO UPDATE
		SET registros = EXCLUDED.registros
	`, usuarioID, dia.Format("2006-01-02"), registros).Error
}
