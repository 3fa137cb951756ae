package timeclock

import (
	"github.com/ArthurRocumback/Folha-de-Ponto/internal/middleware"
	"github.com/ArthurRocumback/Folha-de-Ponto/internal/rbac"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler, rbacService rbac.Service, rdb *redis.Client) {
	ponto := r.Group("/ponto")
	ponto.Use(middleware.AuthMiddleware())
	{
		ponto.GET("", middleware.RBACAuthorize(rbacService, "ponto", "read"), h.ListRecent)
		ponto.POST("",
			middleware.RBACAuthorize(rbacService, "ponto", "create"),
			middleware.Idempotency(rdb),
			h.RegisterPunch,
		)
		ponto.GET("/historico", middleware.RBACAuthorize(rbacService, "ponto", "read"), h.ListHistory)
		ponto.GET("/ausencias", middleware.RBACAuthorize(rbacService, "ponto", "read"), h.ListAbsenceDays)
	}
}
