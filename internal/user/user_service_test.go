package user

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/ArthurRocumback/Folha-de-Ponto/internal/audit"
	"github.com/ArthurRocumback/Folha-de-Ponto/internal/domain"
	usererrors "github.com/ArthurRocumback/Folha-de-Ponto/internal/user/errors"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type fakeRepo struct {
	users     map[string]*User
	createErr error
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{users: map[string]*User{}}
}

func (f *fakeRepo) WithTx(tx *sql.Tx) Repository { return f }

func (f *fakeRepo) Create(ctx context.Context, u *User) error {
	if f.createErr != nil {
		return f.createErr
	}
	cp := *u
	f.users[u.ID.String()] = &cp
	return nil
}

func (f *fakeRepo) FindAll(ctx context.Context) ([]User, error) {
	out := make([]User, 0, len(f.users))
	for _, u := range f.users {
		out = append(out, *u)
	}
	return out, nil
}

func (f *fakeRepo) FindByID(ctx context.Context, id string) (*User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *u
	return &cp, nil
}

func (f *fakeRepo) FindByEmail(ctx context.Context, email string) (*User, error) {
	for _, u := range f.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeRepo) Update(ctx context.Context, u *User) error {
	f.users[u.ID.String()] = u
	return nil
}

func (f *fakeRepo) UpdateStatus(ctx context.Context, id, status string) error {
	u, ok := f.users[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	u.Status = status
	return nil
}

func (f *fakeRepo) UpdatePassword(ctx context.Context, id, senhaHash string) error {
	u, ok := f.users[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	u.Senha = senhaHash
	return nil
}

func (f *fakeRepo) Delete(ctx context.Context, id string) error {
	delete(f.users, id)
	return nil
}

type fakeCounter struct {
	next int64
}

func (f *fakeCounter) GetNextValue(ctx context.Context, counterType string) (int64, error) {
	f.next++
	return f.next, nil
}

type auditCall struct {
	acao string
	ator string
}

type fakeAuditor struct {
	calls []auditCall
}

func (f *fakeAuditor) Record(ctx context.Context, acao string, afetadoID *uuid.UUID, afetado, executadoPor string) {
	f.calls = append(f.calls, auditCall{acao: acao, ator: executadoPor})
}

func adminActor() domain.Identity {
	return domain.Identity{
		UserID:      uuid.New().String(),
		Nome:        "Admin Geral",
		NivelAcesso: NivelAdministrador,
		Status:      domain.StatusAtivo,
	}
}

func validCreateRequest() CreateUserRequest {
	return CreateUserRequest{
		Nome:         "Maria Souza",
		Email:        "maria@empresa.com.br",
		Senha:        "s3nh@forte",
		Departamento: "Engenharia",
		Cargo:        "Analista",
		Unidade:      "Matriz",
		NivelAcesso:  NivelFuncionario,
	}
}

func TestService_Create(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer db.Close()

	repo := newFakeRepo()
	auditor := &fakeAuditor{}
	svc := NewService(db, repo, &fakeCounter{}, auditor)

	mock.ExpectBegin()
	mock.ExpectCommit()

	resp, err := svc.Create(context.Background(), adminActor(), validCreateRequest())

	assert.NoError(t, err)
	assert.Equal(t, "Maria Souza", resp.Nome)
	assert.Equal(t, domain.StatusAtivo, resp.Status)
	assert.Equal(t, "PD-000001", resp.Matricula, "matrícula gerada a partir do contador")

	stored := repo.users[resp.ID]
	assert.NotNil(t, stored)
	assert.NotEqual(t, "s3nh@forte", stored.Senha, "senha nunca persiste em claro")
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.Senha), []byte("s3nh@forte")))

	assert.Len(t, auditor.calls, 1)
	assert.Equal(t, audit.ActionUserCreated, auditor.calls[0].acao)
	assert.Equal(t, "Admin Geral", auditor.calls[0].ator)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestService_Create_KeepsProvidedMatricula(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer db.Close()

	repo := newFakeRepo()
	svc := NewService(db, repo, &fakeCounter{}, nil)

	mock.ExpectBegin()
	mock.ExpectCommit()

	req := validCreateRequest()
	req.Matricula = "PD-900001"

	resp, err := svc.Create(context.Background(), adminActor(), req)

	assert.NoError(t, err)
	assert.Equal(t, "PD-900001", resp.Matricula)
}

func TestService_Create_ShortPassword(t *testing.T) {
	db, _, _ := sqlmock.New()
	defer db.Close()

	repo := newFakeRepo()
	svc := NewService(db, repo, &fakeCounter{}, nil)

	req := validCreateRequest()
	req.Senha = "123"

	_, err := svc.Create(context.Background(), adminActor(), req)

	assert.ErrorIs(t, err, usererrors.ErrSenhaCurta)
	assert.Empty(t, repo.users)
}

func TestService_Create_InvalidNivelAcesso(t *testing.T) {
	db, _, _ := sqlmock.New()
	defer db.Close()

	svc := NewService(db, newFakeRepo(), &fakeCounter{}, nil)

	req := validCreateRequest()
	req.NivelAcesso = "SuperUsuário"

	_, err := svc.Create(context.Background(), adminActor(), req)
	assert.ErrorIs(t, err, usererrors.ErrNivelAcessoInvalido)
}

func TestService_Create_DuplicateEmail(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer db.Close()

	repo := newFakeRepo()
	repo.createErr = &pgconn.PgError{Code: "23505", ConstraintName: "uq_usuario_email"}
	svc := NewService(db, repo, &fakeCounter{}, nil)

	mock.ExpectBegin()
	mock.ExpectRollback()

	_, err := svc.Create(context.Background(), adminActor(), validCreateRequest())

	assert.ErrorIs(t, err, usererrors.ErrEmailAlreadyExists)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestService_GetByID_NotFound(t *testing.T) {
	db, _, _ := sqlmock.New()
	defer db.Close()

	svc := NewService(db, newFakeRepo(), &fakeCounter{}, nil)

	_, err := svc.GetByID(context.Background(), uuid.New().String())
	assert.ErrorIs(t, err, usererrors.ErrUserNotFound)
}

func TestService_GetByID_InvalidID(t *testing.T) {
	db, _, _ := sqlmock.New()
	defer db.Close()

	svc := NewService(db, newFakeRepo(), &fakeCounter{}, nil)

	_, err := svc.GetByID(context.Background(), "nao-é-uuid")
	assert.ErrorIs(t, err, usererrors.ErrInvalidUserID)
}

func TestService_Update(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer db.Close()

	repo := newFakeRepo()
	existing := &User{
		ID:           uuid.New(),
		Nome:         "Maria Souza",
		Email:        "maria@empresa.com.br",
		Departamento: "Engenharia",
		Cargo:        "Analista",
		NivelAcesso:  NivelFuncionario,
		Status:       domain.StatusAtivo,
		DataCadastro: time.Now().UTC(),
	}
	repo.users[existing.ID.String()] = existing

	auditor := &fakeAuditor{}
	svc := NewService(db, repo, &fakeCounter{}, auditor)

	mock.ExpectBegin()
	mock.ExpectCommit()

	resp, err := svc.Update(context.Background(), adminActor(), existing.ID.String(), UpdateUserRequest{
		Nome:         "Maria Souza Lima",
		Email:        "maria@empresa.com.br",
		Departamento: "Engenharia",
		Cargo:        "Coordenadora",
		NivelAcesso:  NivelGestor,
	})

	assert.NoError(t, err)
	assert.Equal(t, "Maria Souza Lima", resp.Nome)
	assert.Equal(t, NivelGestor, resp.NivelAcesso)
	assert.Len(t, auditor.calls, 1)
	assert.Equal(t, audit.ActionUserUpdated, auditor.calls[0].acao)
}

func TestService_ToggleStatus(t *testing.T) {
	db, _, _ := sqlmock.New()
	defer db.Close()

	repo := newFakeRepo()
	u := &User{ID: uuid.New(), Nome: "Maria Souza", Status: domain.StatusAtivo}
	repo.users[u.ID.String()] = u

	auditor := &fakeAuditor{}
	svc := NewService(db, repo, &fakeCounter{}, auditor)

	resp, err := svc.ToggleStatus(context.Background(), adminActor(), u.ID.String())
	assert.NoError(t, err)
	assert.Equal(t, domain.StatusInativo, resp.Status)
	assert.Equal(t, audit.ActionUserDisabled, auditor.calls[0].acao)

	resp, err = svc.ToggleStatus(context.Background(), adminActor(), u.ID.String())
	assert.NoError(t, err)
	assert.Equal(t, domain.StatusAtivo, resp.Status)
	assert.Equal(t, audit.ActionUserEnabled, auditor.calls[1].acao)
}

func TestService_ToggleStatus_SelfDisableBlocked(t *testing.T) {
	db, _, _ := sqlmock.New()
	defer db.Close()

	repo := newFakeRepo()
	actor := adminActor()
	u := &User{ID: uuid.MustParse(actor.UserID), Nome: actor.Nome, Status: domain.StatusAtivo}
	repo.users[u.ID.String()] = u

	svc := NewService(db, repo, &fakeCounter{}, nil)

	_, err := svc.ToggleStatus(context.Background(), actor, actor.UserID)

	assert.ErrorIs(t, err, usererrors.ErrAutoDesativacao)
	assert.Equal(t, domain.StatusAtivo, repo.users[actor.UserID].Status)
}

func TestService_ResetPassword(t *testing.T) {
	db, _, _ := sqlmock.New()
	defer db.Close()

	repo := newFakeRepo()
	u := &User{ID: uuid.New(), Nome: "Maria Souza", Senha: "hash-antigo", Status: domain.StatusAtivo}
	repo.users[u.ID.String()] = u

	auditor := &fakeAuditor{}
	svc := NewService(db, repo, &fakeCounter{}, auditor)

	err := svc.ResetPassword(context.Background(), adminActor(), u.ID.String(), ResetPasswordRequest{
		NovaSenha: "novaSenha123",
	})

	assert.NoError(t, err)
	assert.NotEqual(t, "hash-antigo", repo.users[u.ID.String()].Senha)
	assert.NoError(t, bcrypt.CompareHashAndPassword(
		[]byte(repo.users[u.ID.String()].Senha), []byte("novaSenha123")))
	assert.Equal(t, audit.ActionPassReset, auditor.calls[0].acao)
}

func TestService_Delete(t *testing.T) {
	db, _, _ := sqlmock.New()
	defer db.Close()

	repo := newFakeRepo()
	u := &User{ID: uuid.New(), Nome: "Maria Souza"}
	repo.users[u.ID.String()] = u

	auditor := &fakeAuditor{}
	svc := NewService(db, repo, &fakeCounter{}, auditor)

	err := svc.Delete(context.Background(), adminActor(), u.ID.String())

	assert.NoError(t, err)
	assert.Empty(t, repo.users)
	assert.Equal(t, audit.ActionUserDeleted, auditor.calls[0].acao)
}
