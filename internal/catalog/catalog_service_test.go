package catalog

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

type fakeRepo struct {
	departamentos []Departamento
	cargos        []Cargo
	err           error
	calls         int
}

func (f *fakeRepo) FindDepartamentos(ctx context.Context) ([]Departamento, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.departamentos, nil
}

func (f *fakeRepo) FindCargos(ctx context.Context) ([]Cargo, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.cargos, nil
}

func TestService_GetOptions(t *testing.T) {
	repo := &fakeRepo{
		departamentos: []Departamento{
			{ID: uuid.New(), Nome: "Engenharia"},
			{ID: uuid.New(), Nome: "Recursos Humanos"},
		},
		cargos: []Cargo{
			{ID: uuid.New(), Nome: "Analista"},
		},
	}
	svc := NewService(repo, nil)

	resp, err := svc.GetOptions(context.Background())

	assert.NoError(t, err)
	assert.Len(t, resp.Departamentos, 2)
	assert.Len(t, resp.Cargos, 1)
	assert.Equal(t, "Engenharia", resp.Departamentos[0].Nome)
	assert.Equal(t, "Analista", resp.Cargos[0].Nome)
}

func TestService_GetOptions_Empty(t *testing.T) {
	svc := NewService(&fakeRepo{}, nil)

	resp, err := svc.GetOptions(context.Background())

	assert.NoError(t, err)
	assert.Empty(t, resp.Departamentos)
	assert.Empty(t, resp.Cargos)
}

func TestService_GetOptions_RepoError(t *testing.T) {
	svc := NewService(&fakeRepo{err: errors.New("sem conexão")}, nil)

	_, err := svc.GetOptions(context.Background())
	assert.Error(t, err)
}
