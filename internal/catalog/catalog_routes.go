package catalog

import (
	"github.com/ArthurRocumback/Folha-de-Ponto/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler) {
	r.GET("/opcoes", middleware.AuthMiddleware(), h.GetOptions)
}
