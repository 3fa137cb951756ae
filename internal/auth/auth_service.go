package auth

import (
	"context"
	"os"
	"time"

	"github.com/ArthurRocumback/Folha-de-Ponto/internal/audit"
	autherrors "github.com/ArthurRocumback/Folha-de-Ponto/internal/auth/errors"
	"github.com/ArthurRocumback/Folha-de-Ponto/internal/domain"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

const (
	accessTokenTTL  = 15 * time.Minute
	refreshTokenTTL = 7 * 24 * time.Hour
)

//go:generate mockgen -source=auth_service.go -destination=mock/auth_service_mock.go -package=mock
type Service interface {
	Login(ctx context.Context, email, senha string) (accessToken, refreshToken string, resp AuthResponse, err error)
	RefreshToken(ctx context.Context, refreshToken string) (newAccessToken, newRefreshToken string, resp AuthResponse, err error)
	GetMe(ctx context.Context, userID string) (*AuthResponse, error)
	Logout(ctx context.Context, identity domain.Identity)
}

type service struct {
	repo    Repository
	auditor audit.Recorder
}

func NewService(repo Repository, auditor audit.Recorder) Service {
	return &service{repo: repo, auditor: auditor}
}

func (s *service) Login(ctx context.Context, email, senha string) (string, string, AuthResponse, error) {
	acc, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		return "", "", AuthResponse{}, autherrors.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(acc.Senha), []byte(senha)); err != nil {
		return "", "", AuthResponse{}, autherrors.ErrInvalidCredentials
	}

	// Conta inativa não abre sessão, mesmo com credenciais corretas.
	if acc.Status != domain.StatusAtivo {
		return "", "", AuthResponse{}, autherrors.ErrUserInactive
	}

	accessToken, err := s.generateToken(acc, accessTokenTTL)
	if err != nil {
		return "", "", AuthResponse{}, autherrors.ErrTokenGenerationFailed
	}
	refreshToken, err := s.generateToken(acc, refreshTokenTTL)
	if err != nil {
		return "", "", AuthResponse{}, autherrors.ErrTokenGenerationFailed
	}

	if s.auditor != nil {
		s.auditor.Record(ctx, audit.ActionLogin, &acc.ID, acc.Nome, acc.Nome)
	}

	return accessToken, refreshToken, mapToResponse(acc), nil
}

func (s *service) RefreshToken(ctx context.Context, refreshToken string) (string, string, AuthResponse, error) {
	token, err := jwt.Parse(refreshToken, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, autherrors.ErrInvalidToken
		}
		return []byte(os.Getenv("JWT_SECRET")), nil
	})
	if err != nil || !token.Valid {
		return "", "", AuthResponse{}, autherrors.ErrTokenExpired
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", "", AuthResponse{}, autherrors.ErrInvalidToken
	}

	userIDStr, ok := claims["user_id"].(string)
	if !ok {
		return "", "", AuthResponse{}, autherrors.ErrInvalidToken
	}

	userID, err := uuid.Parse(userIDStr)
	if err != nil {
		return "", "", AuthResponse{}, autherrors.ErrInvalidToken
	}

	acc, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		return "", "", AuthResponse{}, autherrors.ErrInvalidCredentials
	}

	// Conta desativada depois do login perde a sessão no próximo refresh.
	if acc.Status != domain.StatusAtivo {
		return "", "", AuthResponse{}, autherrors.ErrUserInactive
	}

	newAccessToken, err := s.generateToken(acc, accessTokenTTL)
	if err != nil {
		return "", "", AuthResponse{}, autherrors.ErrTokenGenerationFailed
	}
	newRefreshToken, err := s.generateToken(acc, refreshTokenTTL)
	if err != nil {
		return "", "", AuthResponse{}, autherrors.ErrTokenGenerationFailed
	}

	return newAccessToken, newRefreshToken, mapToResponse(acc), nil
}

func (s *service) GetMe(ctx context.Context, userID string) (*AuthResponse, error) {
	id, err := uuid.Parse(userID)
	if err != nil {
		return nil, autherrors.ErrInvalidToken
	}

	acc, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, autherrors.ErrInvalidCredentials
	}

	resp := mapToResponse(acc)
	return &resp, nil
}

func (s *service) Logout(ctx context.Context, identity domain.Identity) {
	if s.auditor == nil {
		return
	}
	if id, err := uuid.Parse(identity.UserID); err == nil {
		s.auditor.Record(ctx, audit.ActionLogout, &id, identity.Nome, identity.Nome)
	}
}

// generateToken assina claims compatíveis com o AuthMiddleware: as mesmas
// chaves viram os valores de contexto user_id/nome/nivel_acesso/status.
func (s *service) generateToken(acc *Account, expiry time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"user_id":      acc.ID.String(),
		"nome":         acc.Nome,
		"nivel_acesso": acc.NivelAcesso,
		"status":       acc.Status,
		"exp":          time.Now().Add(expiry).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(os.Getenv("JWT_SECRET")))
}

func mapToResponse(acc *Account) AuthResponse {
	return AuthResponse{
		ID:          acc.ID.String(),
		Nome:        acc.Nome,
		Email:       acc.Email,
		NivelAcesso: acc.NivelAcesso,
		Matricula:   acc.Matricula,
		Status:      acc.Status,
	}
}
