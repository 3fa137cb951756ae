package auth

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/ArthurRocumback/Folha-de-Ponto/internal/audit"
	autherrors "github.com/ArthurRocumback/Folha-de-Ponto/internal/auth/errors"
	"github.com/ArthurRocumback/Folha-de-Ponto/internal/domain"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type fakeRepo struct {
	accounts map[string]*Account
}

func newFakeRepo(accs ...*Account) *fakeRepo {
	f := &fakeRepo{accounts: map[string]*Account{}}
	for _, a := range accs {
		f.accounts[a.ID.String()] = a
	}
	return f
}

func (f *fakeRepo) GetByEmail(ctx context.Context, email string) (*Account, error) {
	for _, a := range f.accounts {
		if a.Email == email {
			return a, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeRepo) GetByID(ctx context.Context, id uuid.UUID) (*Account, error) {
	a, ok := f.accounts[id.String()]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return a, nil
}

type fakeAuditor struct {
	acoes []string
}

func (f *fakeAuditor) Record(ctx context.Context, acao string, afetadoID *uuid.UUID, afetado, executadoPor string) {
	f.acoes = append(f.acoes, acao)
}

func activeAccount(t *testing.T, senha string) *Account {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(senha), bcrypt.MinCost)
	assert.NoError(t, err)
	return &Account{
		ID:          uuid.New(),
		Nome:        "Maria Souza",
		Email:       "maria@empresa.com.br",
		Senha:       string(hash),
		NivelAcesso: "Funcionario",
		Matricula:   "PD-000001",
		Status:      domain.StatusAtivo,
	}
}

func TestService_Login(t *testing.T) {
	t.Setenv("JWT_SECRET", "segredo-de-teste")

	acc := activeAccount(t, "s3nh@forte")
	auditor := &fakeAuditor{}
	svc := NewService(newFakeRepo(acc), auditor)

	access, refresh, resp, err := svc.Login(context.Background(), "maria@empresa.com.br", "s3nh@forte")

	assert.NoError(t, err)
	assert.NotEmpty(t, access)
	assert.NotEmpty(t, refresh)
	assert.Equal(t, acc.ID.String(), resp.ID)
	assert.Equal(t, "Funcionario", resp.NivelAcesso)
	assert.Equal(t, []string{audit.ActionLogin}, auditor.acoes)

	// claims do access token alimentam o AuthMiddleware
	token, err := jwt.Parse(access, func(token *jwt.Token) (interface{}, error) {
		return []byte(os.Getenv("JWT_SECRET")), nil
	})
	assert.NoError(t, err)
	claims := token.Claims.(jwt.MapClaims)
	assert.Equal(t, acc.ID.String(), claims["user_id"])
	assert.Equal(t, "Maria Souza", claims["nome"])
	assert.Equal(t, "Funcionario", claims["nivel_acesso"])
	assert.Equal(t, domain.StatusAtivo, claims["status"])
}

func TestService_Login_WrongPassword(t *testing.T) {
	t.Setenv("JWT_SECRET", "segredo-de-teste")

	auditor := &fakeAuditor{}
	svc := NewService(newFakeRepo(activeAccount(t, "s3nh@forte")), auditor)

	_, _, _, err := svc.Login(context.Background(), "maria@empresa.com.br", "senha-errada")

	assert.ErrorIs(t, err, autherrors.ErrInvalidCredentials)
	assert.Empty(t, auditor.acoes, "login falho não entra na auditoria de LOGIN")
}

func TestService_Login_UnknownEmail(t *testing.T) {
	t.Setenv("JWT_SECRET", "segredo-de-teste")

	svc := NewService(newFakeRepo(), nil)

	_, _, _, err := svc.Login(context.Background(), "ninguem@empresa.com.br", "qualquer")
	assert.ErrorIs(t, err, autherrors.ErrInvalidCredentials)
}

func TestService_Login_InactiveAccount(t *testing.T) {
	t.Setenv("JWT_SECRET", "segredo-de-teste")

	acc := activeAccount(t, "s3nh@forte")
	acc.Status = domain.StatusInativo
	svc := NewService(newFakeRepo(acc), nil)

	_, _, _, err := svc.Login(context.Background(), "maria@empresa.com.br", "s3nh@forte")
	assert.ErrorIs(t, err, autherrors.ErrUserInactive)
}

func TestService_RefreshToken(t *testing.T) {
	t.Setenv("JWT_SECRET", "segredo-de-teste")

	acc := activeAccount(t, "s3nh@forte")
	svc := NewService(newFakeRepo(acc), nil)

	_, refresh, _, err := svc.Login(context.Background(), "maria@empresa.com.br", "s3nh@forte")
	assert.NoError(t, err)

	newAccess, newRefresh, resp, err := svc.RefreshToken(context.Background(), refresh)

	assert.NoError(t, err)
	assert.NotEmpty(t, newAccess)
	assert.NotEmpty(t, newRefresh)
	assert.Equal(t, acc.ID.String(), resp.ID)
}

func TestService_RefreshToken_AccountDeactivatedAfterLogin(t *testing.T) {
	t.Setenv("JWT_SECRET", "segredo-de-teste")

	acc := activeAccount(t, "s3nh@forte")
	svc := NewService(newFakeRepo(acc), nil)

	_, refresh, _, err := svc.Login(context.Background(), "maria@empresa.com.br", "s3nh@forte")
	assert.NoError(t, err)

	acc.Status = domain.StatusInativo

	_, _, _, err = svc.RefreshToken(context.Background(), refresh)
	assert.ErrorIs(t, err, autherrors.ErrUserInactive)
}

func TestService_RefreshToken_Garbage(t *testing.T) {
	t.Setenv("JWT_SECRET", "segredo-de-teste")

	svc := NewService(newFakeRepo(), nil)

	_, _, _, err := svc.RefreshToken(context.Background(), "nao-é-um-jwt")
	assert.ErrorIs(t, err, autherrors.ErrTokenExpired)
}

func TestService_RefreshToken_ExpiredToken(t *testing.T) {
	t.Setenv("JWT_SECRET", "segredo-de-teste")

	acc := activeAccount(t, "s3nh@forte")
	svc := NewService(newFakeRepo(acc), nil)

	expired := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": acc.ID.String(),
		"exp":     time.Now().Add(-time.Hour).Unix(),
	})
	signed, err := expired.SignedString([]byte("segredo-de-teste"))
	assert.NoError(t, err)

	_, _, _, err = svc.RefreshToken(context.Background(), signed)
	assert.ErrorIs(t, err, autherrors.ErrTokenExpired)
}

func TestService_GetMe(t *testing.T) {
	acc := activeAccount(t, "s3nh@forte")
	svc := NewService(newFakeRepo(acc), nil)

	resp, err := svc.GetMe(context.Background(), acc.ID.String())

	assert.NoError(t, err)
	assert.Equal(t, "maria@empresa.com.br", resp.Email)
	assert.Equal(t, "PD-000001", resp.Matricula)
}

func TestService_Logout_RecordsAudit(t *testing.T) {
	auditor := &fakeAuditor{}
	svc := NewService(newFakeRepo(), auditor)

	svc.Logout(context.Background(), domain.Identity{
		UserID: uuid.New().String(),
		Nome:   "Maria Souza",
	})

	assert.Equal(t, []string{audit.ActionLogout}, auditor.acoes)
}
