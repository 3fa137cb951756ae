package audit

import (
	"time"

	"github.com/google/uuid"
)

// Ações registradas na trilha de auditoria.
const (
	ActionLogin        = "LOGIN"
	ActionLogout       = "LOGOUT"
	ActionUserCreated  = "CRIACAO"
	ActionUserUpdated  = "EDICAO"
	ActionUserDeleted  = "EXCLUSAO"
	ActionUserEnabled  = "ATIVACAO"
	ActionUserDisabled = "DESATIVACAO"
	ActionPassReset    = "RESET_SENHA"
	ActionClockIn      = "PONTO_ENTRADA"
	ActionClockOut     = "PONTO_SAIDA"
)

type Entry struct {
	ID               uuid.UUID  `gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid()"`
	Acao             string     `gorm:"column:acao;type:varchar(40);not null"`
	UsuarioAfetadoID *uuid.UUID `gorm:"column:usuario_afetado_id;type:uuid"`
	UsuarioAfetado   string     `gorm:"column:usuario_afetado;type:varchar(150);not null"`
	ExecutadoPor     string     `gorm:"column:executado_por;type:varchar(150);not null"`
	Data             time.Time  `gorm:"column:data;type:timestamptz;not null;default:now()"`
}

func (Entry) TableName() string {
	return "auditoria_usuarios"
}
