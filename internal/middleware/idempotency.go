package middleware

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

// IdempotentResponse é o que o handler grava no cache após a primeira
// execução: status e corpo exatamente como foram enviados, para que o
// replay devolva a mesma resposta byte a byte.
type IdempotentResponse struct {
	Status int             `json:"status"`
	Body   json.RawMessage `json:"body"`
}

// Idempotency absorve reenvios de POST (ex.: duplo clique no botão de bater
// ponto). O cliente manda um Idempotency-Key; a primeira execução trava a key
// no Redis e as repetições recebem a resposta cacheada ou um 409.
func Idempotency(rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		idempKey := c.GetHeader("Idempotency-Key")
		userID := c.GetString("user_id")

		if rdb == nil || idempKey == "" || c.Request.Method != http.MethodPost {
			c.Next()
			return
		}

		cacheKey := fmt.Sprintf("idemp:%s:%s:%s", c.FullPath(), userID, idempKey)
		lockKey := cacheKey + ":lock"

		val, err := rdb.Get(c.Request.Context(), cacheKey).Result()
		if err == nil && replayCached(c, []byte(val)) {
			return
		}

		// lock curto: se o processo cair, a trava expira sozinha
		isNew, _ := rdb.SetNX(c.Request.Context(), lockKey, "locked", 30*time.Second).Result()

		if !isNew {
			c.AbortWithStatusJSON(http.StatusConflict, gin.H{
				"code":    "PROCESSING",
				"message": "Sua requisição ainda está sendo processada, aguarde um instante.",
			})
			return
		}

		c.Set("idempotency_cache_key", cacheKey)
		c.Set("idempotency_lock_key", lockKey)

		c.Next()
	}
}

// replayCached devolve a resposta original com o mesmo status e corpo.
// Entradas ilegíveis contam como cache miss e a requisição segue adiante.
func replayCached(c *gin.Context, raw []byte) bool {
	var cached IdempotentResponse
	if err := json.Unmarshal(raw, &cached); err != nil || cached.Status == 0 {
		return false
	}
	c.Data(cached.Status, "application/json; charset=utf-8", cached.Body)
	c.Abort()
	return true
}
