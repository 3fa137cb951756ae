package rbac

import (
	"path/filepath"
	"testing"

	"github.com/ArthurRocumback/Folha-de-Ponto/internal/domain"
	"github.com/ArthurRocumback/Folha-de-Ponto/internal/rbac/infra"

	"github.com/stretchr/testify/assert"
)

type fakeRepo struct {
	perms       []Permission
	inheritance []NivelHeranca
}

func (f *fakeRepo) GetPermissions() ([]Permission, error)   { return f.perms, nil }
func (f *fakeRepo) GetInheritance() ([]NivelHeranca, error) { return f.inheritance, nil }

func newTestService(t *testing.T, repo Repository) Service {
	t.Helper()
	enforcer, err := infra.NewEnforcer(filepath.Join("infra", "model.conf"))
	assert.NoError(t, err)
	return NewService(repo, enforcer)
}

func TestService_Enforce(t *testing.T) {
	repo := &fakeRepo{
		perms: []Permission{
			{NivelAcesso: "Funcionario", Recurso: "ponto", Acao: "create"},
			{NivelAcesso: "Funcionario", Recurso: "ponto", Acao: "read"},
			{NivelAcesso: "Administrador", Recurso: "usuarios", Acao: "create"},
			{NivelAcesso: "Administrador", Recurso: "auditoria", Acao: "read"},
		},
		inheritance: []NivelHeranca{
			{Nivel: "Administrador", HerdaDe: "Funcionario"},
		},
	}

	svc := newTestService(t, repo)

	tests := []struct {
		nivel    string
		resource string
		action   string
		want     bool
	}{
		{"Funcionario", "ponto", "create", true},
		{"Funcionario", "usuarios", "create", false},
		{"Funcionario", "auditoria", "read", false},
		{"Administrador", "usuarios", "create", true},
		{"Administrador", "ponto", "create", true}, // herdado de Funcionario
		{"Desconhecido", "ponto", "create", false},
	}

	for _, tt := range tests {
		allowed, err := svc.Enforce(domain.EnforceRequest{
			NivelAcesso: tt.nivel,
			Resource:    tt.resource,
			Action:      tt.action,
		})
		assert.NoError(t, err)
		assert.Equal(t, tt.want, allowed, "%s %s:%s", tt.nivel, tt.resource, tt.action)
	}
}

func TestService_Enforce_PolicyChangesPickedUp(t *testing.T) {
	repo := &fakeRepo{}
	svc := newTestService(t, repo)

	allowed, err := svc.Enforce(domain.EnforceRequest{
		NivelAcesso: "Funcionario", Resource: "ponto", Action: "create",
	})
	assert.NoError(t, err)
	assert.False(t, allowed)

	// permissão concedida na tabela vale no próximo Enforce, sem restart
	repo.perms = append(repo.perms, Permission{
		NivelAcesso: "Funcionario", Recurso: "ponto", Acao: "create",
	})

	allowed, err = svc.Enforce(domain.EnforceRequest{
		NivelAcesso: "Funcionario", Resource: "ponto", Action: "create",
	})
	assert.NoError(t, err)
	assert.True(t, allowed)
}
