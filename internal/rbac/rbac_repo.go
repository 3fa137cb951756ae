package rbac

import (
	"gorm.io/gorm"
)

// Permission é uma linha da tabela de permissões: o nível de acesso pode
// executar a ação sobre o recurso. As regras de autorização são dados, não
// strings espalhadas pelo código.
type Permission struct {
	NivelAcesso string `gorm:"column:nivel_acesso;type:varchar(40);not null"`
	Recurso     string `gorm:"column:recurso;type:varchar(60);not null"`
	Acao        string `gorm:"column:acao;type:varchar(30);not null"`
}

func (Permission) TableName() string {
	return "permissoes"
}

// NivelHeranca permite que um nível herde as permissões de outro
// (ex.: Administrador herda tudo de Funcionário).
type NivelHeranca struct {
	Nivel       string `gorm:"column:nivel;type:varchar(40);not null"`
	HerdaDe     string `gorm:"column:herda_de;type:varchar(40);not null"`
}

func (NivelHeranca) TableName() string {
	return "niveis_heranca"
}

//go:generate mockgen -source=rbac_repo.go -destination=mock/rbac_repo_mock.go -package=mock
type Repository interface {
	GetPermissions() ([]Permission, error)
	GetInheritance() ([]NivelHeranca, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) GetPermissions() ([]Permission, error) {
	var rows []Permission
	err := r.db.Find(&rows).Error
	return rows, err
}

func (r *repository) GetInheritance() ([]NivelHeranca, error) {
	var rows []NivelHeranca
	err := r.db.Find(&rows).Error
	return rows, err
}
