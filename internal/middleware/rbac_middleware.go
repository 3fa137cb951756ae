package middleware

import (
	"net/http"

	"github.com/ArthurRocumback/Folha-de-Ponto/internal/domain"
	"github.com/ArthurRocumback/Folha-de-Ponto/internal/shared/response"

	"github.com/gin-gonic/gin"
)

// RBACService é uma interface local: qualquer package com Enforce serve aqui.
type RBACService interface {
	Enforce(req domain.EnforceRequest) (bool, error)
}

func RBACAuthorize(service RBACService, resource, action string) gin.HandlerFunc {
	return func(c *gin.Context) {
		nivel := c.GetString("nivel_acesso")
		if nivel == "" {
			response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Autenticação necessária", nil)
			c.Abort()
			return
		}

		allowed, err := service.Enforce(domain.EnforceRequest{
			NivelAcesso: nivel,
			Resource:    resource,
			Action:      action,
		})
		if err != nil {
			response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Ocorreu um erro inesperado", nil)
			c.Abort()
			return
		}

		if !allowed {
			response.Error(c, http.StatusForbidden, "FORBIDDEN",
				"Você não tem permissão para acessar este recurso",
				map[string]string{"required": resource + ":" + action},
			)
			c.Abort()
			return
		}

		c.Next()
	}
}
