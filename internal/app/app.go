package app

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/ArthurRocumback/Folha-de-Ponto/internal/geo"
	"github.com/ArthurRocumback/Folha-de-Ponto/internal/middleware"
	"github.com/ArthurRocumback/Folha-de-Ponto/internal/shared/connection"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// Escritório padrão: Av. Paulista, São Paulo. Sobrescrito por OFFICE_LAT,
// OFFICE_LON e OFFICE_RADIUS_M.
const (
	defaultOfficeLat = -23.550520
	defaultOfficeLon = -46.633308
)

func BuildApp(router *gin.Engine) error {
	logger := zap.L().Named("app")

	gormDB, err := connection.ConnectGORMWithRetry(
		os.Getenv("DB_HOST"),
		os.Getenv("DB_USER"),
		os.Getenv("DB_PASSWORD"),
		os.Getenv("DB_NAME"),
		os.Getenv("DB_PORT"),
		os.Getenv("DB_SSLMODE"),
		5,
	)
	if err != nil {
		return err
	}
	logger.Info("database connection established")

	sqlDB, err := gormDB.DB()
	if err != nil {
		return err
	}

	var rdb *redis.Client
	if addr := os.Getenv("REDIS_ADDR"); addr != "" {
		rdb, err = connection.ConnectRedisWithRetry(addr, 5)
		if err != nil {
			return err
		}
		logger.Info("redis connection established")
	} else {
		logger.Warn("REDIS_ADDR not set, caching and idempotency disabled")
	}

	geocoder := geo.NewNominatimClient(os.Getenv("NOMINATIM_BASE_URL"))
	classifier := geo.NewClassifier(officeConfigFromEnv(), geocoder, rdb, zap.L())

	router.Use(middleware.RequestID())
	router.Use(middleware.ContextLogger(zap.L()))
	router.Use(cors.New(corsConfigFromEnv()))

	return registerModules(router, sqlDB, gormDB, rdb, classifier)
}

func officeConfigFromEnv() geo.Config {
	cfg := geo.Config{
		Office: geo.Point{
			Latitude:  defaultOfficeLat,
			Longitude: defaultOfficeLon,
		},
		RadiusMeters: geo.DefaultRadiusMeters,
	}

	if v, err := strconv.ParseFloat(os.Getenv("OFFICE_LAT"), 64); err == nil {
		cfg.Office.Latitude = v
	}
	if v, err := strconv.ParseFloat(os.Getenv("OFFICE_LON"), 64); err == nil {
		cfg.Office.Longitude = v
	}
	if v, err := strconv.ParseFloat(os.Getenv("OFFICE_RADIUS_M"), 64); err == nil && v > 0 {
		cfg.RadiusMeters = v
	}

	return cfg
}

func corsConfigFromEnv() cors.Config {
	cfg := cors.DefaultConfig()
	cfg.AllowCredentials = true
	cfg.AllowHeaders = append(cfg.AllowHeaders, "Authorization", "X-Client-Type", "X-Request-ID", "Idempotency-Key")
	cfg.MaxAge = 12 * time.Hour

	if origins := os.Getenv("CORS_ALLOWED_ORIGINS"); origins != "" {
		cfg.AllowOrigins = strings.Split(origins, ",")
	} else {
		cfg.AllowOrigins = []string{"http://localhost:5173"}
	}

	return cfg
}
