package user

import (
	"github.com/ArthurRocumback/Folha-de-Ponto/internal/middleware"
	"github.com/ArthurRocumback/Folha-de-Ponto/internal/rbac"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler, rbacService rbac.Service) {
	usuarios := r.Group("/usuarios")
	usuarios.Use(middleware.AuthMiddleware())
	{
		usuarios.POST("", middleware.RBACAuthorize(rbacService, "usuarios", "create"), h.Create)
		usuarios.GET("", middleware.RBACAuthorize(rbacService, "usuarios", "read"), h.GetAll)
		usuarios.GET("/:id", middleware.RBACAuthorize(rbacService, "usuarios", "read"), h.GetByID)
		usuarios.PUT("/:id", middleware.RBACAuthorize(rbacService, "usuarios", "update"), h.Update)
		usuarios.PATCH("/:id/status", middleware.RBACAuthorize(rbacService, "usuarios", "update"), h.ToggleStatus)
		usuarios.PATCH("/:id/senha", middleware.RBACAuthorize(rbacService, "usuarios", "update"), h.ResetPassword)
		usuarios.DELETE("/:id", middleware.RBACAuthorize(rbacService, "usuarios", "delete"), h.Delete)
	}
}
