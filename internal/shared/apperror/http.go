package apperror

import (
	"errors"
	"net/http"
)

// HTTPError é a projeção segura de qualquer erro para a camada HTTP.
type HTTPError struct {
	Status  int
	Code    string
	Message string
	Details any
}

// ToHTTP converte qualquer erro em um HTTPError. Erros desconhecidos viram um
// 500 genérico: nenhum detalhe interno (SQL, stack) vaza para o cliente.
func ToHTTP(err error) HTTPError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return HTTPError{
			Status:  appErr.HTTPStatus,
			Code:    appErr.Code,
			Message: appErr.Message,
		}
	}

	return HTTPError{
		Status:  http.StatusInternalServerError,
		Code:    CodeInternalError,
		Message: ErrInternal.Message,
	}
}
