package timeclock

import (
	"strings"
	"time"

	timeclockerrors "github.com/ArthurRocumback/Folha-de-Ponto/internal/timeclock/errors"

	"github.com/google/uuid"
)

// Kind é o tipo da batida, resolvido uma única vez na borda. O resto do
// código nunca compara strings livres de tipo.
type Kind string

const (
	KindEntrada Kind = "Entrada"
	KindSaida   Kind = "Saída"
)

// ParseKind aceita variações de caixa e acento ("entrada", "SAIDA", "Saída").
// Vazio e valores desconhecidos são rejeitados.
func ParseKind(raw string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "":
		return "", timeclockerrors.ErrTipoObrigatorio
	case "entrada":
		return KindEntrada, nil
	case "saída", "saida":
		return KindSaida, nil
	default:
		return "", timeclockerrors.ErrTipoInvalido
	}
}

// ClockEvent é uma batida de ponto. Imutável depois de persistida: este
// serviço nunca atualiza nem apaga registros.
type ClockEvent struct {
	ID        uuid.UUID `gorm:"column:id;type:uuid;primaryKey"`
	UsuarioID uuid.UUID `gorm:"column:usuario_id;type:uuid;not null;index"`
	Tipo      string    `gorm:"column:tipo;type:varchar(20);not null"`
	Horario   time.Time `gorm:"column:horario;type:timestamptz;not null;default:now()"`
	Latitude  *float64  `gorm:"column:latitude"`
	Longitude *float64  `gorm:"column:longitude"`
	IP        *string   `gorm:"column:ip;type:varchar(45)"`
	UserAgent *string   `gorm:"column:user_agent;type:text"`
	Endereco  string    `gorm:"column:endereco;type:varchar(255);not null"`
}

func (ClockEvent) TableName() string {
	return "registros_ponto"
}

// DailyPresence é o agregado mantido pelo consumer de ponto.registrado.
type DailyPresence struct {
	UsuarioID uuid.UUID `gorm:"column:usuario_id;type:uuid;primaryKey"`
	Dia       time.Time `gorm:"column:dia;type:date;primaryKey"`
	Registros int       `gorm:"column:registros;not null;default:0"`
}

func (DailyPresence) TableName() string {
	return "frequencia_diaria"
}
