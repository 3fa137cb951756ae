package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func replayContext(t *testing.T) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodPost, "/api/ponto", nil)
	return c, rec
}

func TestReplayCached_PreservesOriginalStatusAndBody(t *testing.T) {
	c, rec := replayContext(t)

	body := []byte(`{"ok":true,"data":{"id":"abc","tipo":"Entrada"}}`)
	raw, err := json.Marshal(IdempotentResponse{Status: http.StatusCreated, Body: body})
	assert.NoError(t, err)

	assert.True(t, replayCached(c, raw))
	assert.True(t, c.IsAborted())
	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "application/json; charset=utf-8", rec.Header().Get("Content-Type"))
	assert.Equal(t, string(body), rec.Body.String())
}

func TestReplayCached_MalformedEntryFallsThrough(t *testing.T) {
	c, rec := replayContext(t)

	assert.False(t, replayCached(c, []byte("not-json")))
	assert.False(t, c.IsAborted())
	assert.Empty(t, rec.Body.String())
}

func TestReplayCached_MissingStatusFallsThrough(t *testing.T) {
	c, _ := replayContext(t)

	// entrada antiga sem status gravado conta como cache miss
	assert.False(t, replayCached(c, []byte(`{"id":"abc","tipo":"Entrada"}`)))
	assert.False(t, c.IsAborted())
}
