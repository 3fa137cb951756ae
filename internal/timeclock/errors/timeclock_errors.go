package timeclockerrors

import (
	"net/http"

	"github.com/ArthurRocumback/Folha-de-Ponto/internal/shared/apperror"
)

var (
	ErrTipoObrigatorio = apperror.New(
		apperror.CodeInvalidInput,
		"Tipo de registro é obrigatório",
		http.StatusBadRequest,
	)

	ErrTipoInvalido = apperror.New(
		apperror.CodeInvalidInput,
		"Tipo de registro inválido",
		http.StatusBadRequest,
	)

	ErrLocalizacaoIncompleta = apperror.New(
		apperror.CodeInvalidInput,
		"Localização incompleta: latitude e longitude devem vir juntas",
		http.StatusBadRequest,
	)

	ErrUsuarioInativo = apperror.New(
		apperror.CodeForbidden,
		"Usuário inativo não pode registrar ponto",
		http.StatusForbidden,
	)

	ErrRegistroFalhou = apperror.New(
		apperror.CodeInternalError,
		"Não foi possível registrar o ponto",
		http.StatusInternalServerError,
	)
)
