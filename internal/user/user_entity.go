package user

import (
	"time"

	"github.com/google/uuid"
)

// Níveis de acesso aceitos em usuarios.nivel_acesso. A hierarquia entre eles
// vive na tabela niveis_heranca e é resolvida pelo módulo rbac.
const (
	NivelAdministrador = "Administrador"
	NivelGestor        = "Gestor"
	NivelFuncionario   = "Funcionario"
)

func NivelAcessoValido(nivel string) bool {
	switch nivel {
	case NivelAdministrador, NivelGestor, NivelFuncionario:
		return true
	}
	return false
}

type User struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	Nome         string
	Email        string `gorm:"uniqueIndex:uq_usuario_email"`
	Senha        string
	Departamento string
	Cargo        string
	Unidade      string
	NivelAcesso  string
	Matricula    string `gorm:"uniqueIndex:uq_usuario_matricula"`
	Status       string `gorm:"default:Ativo"`
	DataCadastro time.Time
}

func (User) TableName() string {
	return "usuarios"
}
