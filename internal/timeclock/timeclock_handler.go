package timeclock

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/ArthurRocumback/Folha-de-Ponto/internal/domain"
	"github.com/ArthurRocumback/Folha-de-Ponto/internal/middleware"
	"github.com/ArthurRocumback/Folha-de-Ponto/internal/shared/apperror"
	"github.com/ArthurRocumback/Folha-de-Ponto/internal/shared/response"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

type Handler struct {
	service Service
	rdb     *redis.Client
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

func NewHandlerWithRedis(service Service, rdb *redis.Client) *Handler {
	return &Handler{service: service, rdb: rdb}
}

func writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}

func identityFromContext(c *gin.Context) (domain.Identity, bool) {
	id := domain.Identity{
		UserID:      c.GetString("user_id"),
		Nome:        c.GetString("nome"),
		NivelAcesso: c.GetString("nivel_acesso"),
		Status:      c.GetString("status"),
	}
	return id, id.UserID != ""
}

func (h *Handler) RegisterPunch(c *gin.Context) {
	lockKey, _ := c.Get("idempotency_lock_key")
	cacheKey, _ := c.Get("idempotency_cache_key")

	if h.rdb != nil {
		if lk, ok := lockKey.(string); ok && lk != "" {
			defer h.rdb.Del(c.Request.Context(), lk)
		}
	}

	identity, ok := identityFromContext(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Autenticação necessária", nil)
		return
	}

	var req PunchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, apperror.CodeInvalidInput, "Dados inválidos", err.Error())
		return
	}

	meta := ClientMeta{
		IP:        c.ClientIP(),
		UserAgent: c.Request.UserAgent(),
	}

	resp, err := h.service.RegisterPunch(c.Request.Context(), identity, req, meta)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	if h.rdb != nil {
		if ck, ok := cacheKey.(string); ok && ck != "" {
			// guarda status e corpo originais para o replay devolver
			// exatamente a mesma resposta da primeira execução
			if body, marshalErr := json.Marshal(response.ApiEnvelope{Ok: true, Data: resp}); marshalErr == nil {
				record, _ := json.Marshal(middleware.IdempotentResponse{
					Status: http.StatusCreated,
					Body:   body,
				})
				_ = h.rdb.Set(c.Request.Context(), ck, record, 24*time.Hour).Err()
			}
		}
	}

	response.Success(c, http.StatusCreated, resp, nil)
}

func (h *Handler) ListRecent(c *gin.Context) {
	identity, ok := identityFromContext(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Autenticação necessária", nil)
		return
	}

	resp, err := h.service.ListRecent(c.Request.Context(), identity.UserID, defaultRecentLimit)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) ListHistory(c *gin.Context) {
	identity, ok := identityFromContext(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Autenticação necessária", nil)
		return
	}

	resp, err := h.service.ListHistory(c.Request.Context(), identity.UserID)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) ListAbsenceDays(c *gin.Context) {
	identity, ok := identityFromContext(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Autenticação necessária", nil)
		return
	}

	days, err := h.service.ListDaysWithRecords(c.Request.Context(), identity.UserID)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"dias_com_registro": days}, nil)
}
