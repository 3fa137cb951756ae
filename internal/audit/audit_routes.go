package audit

import (
	"github.com/ArthurRocumback/Folha-de-Ponto/internal/middleware"
	"github.com/ArthurRocumback/Folha-de-Ponto/internal/rbac"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler, rbacService rbac.Service) {
	auditoria := r.Group("/auditoria")
	auditoria.Use(middleware.AuthMiddleware())
	{
		auditoria.GET("", middleware.RBACAuthorize(rbacService, "auditoria", "read"), h.List)
	}
}
