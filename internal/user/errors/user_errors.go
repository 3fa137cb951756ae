package usererrors

import (
	"net/http"

	"github.com/ArthurRocumback/Folha-de-Ponto/internal/shared/apperror"
)

var (
	ErrUserNotFound = apperror.New(
		apperror.CodeNotFound,
		"Usuário não encontrado",
		http.StatusNotFound,
	)
	ErrEmailAlreadyExists = apperror.New(
		apperror.CodeConflict,
		"Já existe um usuário com este e-mail",
		http.StatusConflict,
	)
	ErrMatriculaAlreadyExists = apperror.New(
		apperror.CodeConflict,
		"Já existe um usuário com esta matrícula",
		http.StatusConflict,
	)
	ErrInvalidUserID = apperror.New(
		apperror.CodeInvalidInput,
		"Identificador de usuário inválido",
		http.StatusBadRequest,
	)
	ErrSenhaObrigatoria = apperror.New(
		apperror.CodeInvalidInput,
		"Senha é obrigatória",
		http.StatusBadRequest,
	)
	ErrSenhaCurta = apperror.New(
		apperror.CodeInvalidInput,
		"Senha deve ter no mínimo 6 caracteres",
		http.StatusBadRequest,
	)
	ErrNivelAcessoInvalido = apperror.New(
		apperror.CodeInvalidInput,
		"Nível de acesso inválido",
		http.StatusBadRequest,
	)
	ErrAutoDesativacao = apperror.New(
		apperror.CodeForbidden,
		"Não é possível desativar a própria conta",
		http.StatusForbidden,
	)
)
