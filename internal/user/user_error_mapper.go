package user

import (
	"errors"
	"strings"

	usererrors "github.com/ArthurRocumback/Folha-de-Ponto/internal/user/errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return usererrors.ErrUserNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if pgErr.Code == "23505" {
			switch pgErr.ConstraintName {
			case "uq_usuario_email":
				return usererrors.ErrEmailAlreadyExists
			case "uq_usuario_matricula":
				return usererrors.ErrMatriculaAlreadyExists
			}
		}
	}

	errMsg := strings.ToLower(err.Error())
	if strings.Contains(errMsg, "duplicate key value") && strings.Contains(errMsg, "uq_usuario_email") {
		return usererrors.ErrEmailAlreadyExists
	}
	if strings.Contains(errMsg, "duplicate key value") && strings.Contains(errMsg, "uq_usuario_matricula") {
		return usererrors.ErrMatriculaAlreadyExists
	}

	return err
}
