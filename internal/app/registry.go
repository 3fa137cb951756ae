package app

import (
	"database/sql"
	"path/filepath"

	"github.com/ArthurRocumback/Folha-de-Ponto/internal/audit"
	"github.com/ArthurRocumback/Folha-de-Ponto/internal/auth"
	"github.com/ArthurRocumback/Folha-de-Ponto/internal/catalog"
	"github.com/ArthurRocumback/Folha-de-Ponto/internal/geo"
	"github.com/ArthurRocumback/Folha-de-Ponto/internal/messaging/kafka"
	"github.com/ArthurRocumback/Folha-de-Ponto/internal/rbac"
	"github.com/ArthurRocumback/Folha-de-Ponto/internal/rbac/infra"
	"github.com/ArthurRocumback/Folha-de-Ponto/internal/shared/counter"
	"github.com/ArthurRocumback/Folha-de-Ponto/internal/timeclock"
	"github.com/ArthurRocumback/Folha-de-Ponto/internal/user"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

func registerModules(
	router *gin.Engine,
	db *sql.DB,
	gormDB *gorm.DB,
	rdb *redis.Client,
	classifier geo.Classifier,
) error {
	// --- Repositories ---
	rbacRepo := rbac.NewRepository(gormDB)
	auditRepo := audit.NewRepository(gormDB)
	authRepo := auth.NewRepository(gormDB)
	catalogRepo := catalog.NewRepository(gormDB)
	counterRepo := counter.NewRepository(gormDB)
	outboxRepo := kafka.NewOutboxRepository(db)
	timeclockRepo := timeclock.NewRepository(gormDB)
	userRepo := user.NewRepository(gormDB)

	// --- RBAC Core ---
	enforcer, err := infra.NewEnforcer(filepath.Join("internal", "rbac", "infra", "model.conf"))
	if err != nil {
		return err
	}
	rbacService := rbac.NewService(rbacRepo, enforcer)

	// --- Services ---
	auditService := audit.NewService(auditRepo)
	authService := auth.NewService(authRepo, auditService)
	catalogService := catalog.NewService(catalogRepo, rdb)
	timeclockService := timeclock.NewService(db, timeclockRepo, classifier, outboxRepo, auditService)
	userService := user.NewService(db, userRepo, counterRepo, auditService)

	// --- Handlers ---
	auditHandler := audit.NewHandler(auditService)
	authHandler := auth.NewHandler(authService)
	catalogHandler := catalog.NewHandler(catalogService)
	timeclockHandler := timeclock.NewHandlerWithRedis(timeclockService, rdb)
	userHandler := user.NewHandler(userService)

	// --- Routes Registration ---
	api := router.Group("/api")
	{
		audit.RegisterRoutes(api, auditHandler, rbacService)
		auth.RegisterRoutes(api, authHandler)
		catalog.RegisterRoutes(api, catalogHandler)
		timeclock.RegisterRoutes(api, timeclockHandler, rbacService, rdb)
		user.RegisterRoutes(api, userHandler, rbacService)
	}

	return nil
}
