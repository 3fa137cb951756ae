package auth

import (
	"time"

	"github.com/google/uuid"
)

// Account é a visão somente-leitura de usuarios que a autenticação precisa.
// O ciclo de vida do cadastro vive no módulo user.
type Account struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	Nome         string
	Email        string
	Senha        string
	NivelAcesso  string
	Matricula    string
	Status       string
	DataCadastro time.Time
}

func (Account) TableName() string {
	return "usuarios"
}
