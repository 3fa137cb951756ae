package timeclock

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/ArthurRocumback/Folha-de-Ponto/internal/domain"
	timeclockerrors "github.com/ArthurRocumback/Folha-de-Ponto/internal/timeclock/errors"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

type fakeService struct {
	registerFn func(ctx context.Context, identity domain.Identity, req PunchRequest, meta ClientMeta) (ClockEventResponse, error)
	recentFn   func(ctx context.Context, usuarioID string, limit int) ([]ClockEventResponse, error)
	historyFn  func(ctx context.Context, usuarioID string) ([]ClockEventResponse, error)
	daysFn     func(ctx context.Context, usuarioID string) ([]string, error)
}

func (f *fakeService) RegisterPunch(ctx context.Context, identity domain.Identity, req PunchRequest, meta ClientMeta) (ClockEventResponse, error) {
	return f.registerFn(ctx, identity, req, meta)
}

func (f *fakeService) ListRecent(ctx context.Context, usuarioID string, limit int) ([]ClockEventResponse, error) {
	return f.recentFn(ctx, usuarioID, limit)
}

func (f *fakeService) ListHistory(ctx context.Context, usuarioID string) ([]ClockEventResponse, error) {
	return f.historyFn(ctx, usuarioID)
}

func (f *fakeService) ListDaysWithRecords(ctx context.Context, usuarioID string) ([]string, error) {
	return f.daysFn(ctx, usuarioID)
}

func (f *fakeService) RecordDailyPresence(ctx context.Context, usuarioID string, horario time.Time) error {
	return nil
}

func testContext(t *testing.T, method, path string, body any) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	var buf bytes.Buffer
	if body != nil {
		assert.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	c.Request = httptest.NewRequest(method, path, &buf)
	c.Request.Header.Set("Content-Type", "application/json")
	return c, w
}

func authenticate(c *gin.Context) string {
	uid := uuid.New().String()
	c.Set("user_id", uid)
	c.Set("nome", "Maria Souza")
	c.Set("nivel_acesso", "Funcionario")
	c.Set("status", domain.StatusAtivo)
	return uid
}

func TestHandler_RegisterPunch_Created(t *testing.T) {
	svc := &fakeService{
		registerFn: func(ctx context.Context, identity domain.Identity, req PunchRequest, meta ClientMeta) (ClockEventResponse, error) {
			return ClockEventResponse{
				ID:       uuid.New().String(),
				Tipo:     req.Tipo,
				Horario:  time.Now().UTC().Format(time.RFC3339),
				Endereco: "Escritório",
			}, nil
		},
	}
	handler := NewHandler(svc)

	c, w := testContext(t, http.MethodPost, "/api/ponto", gin.H{
		"tipo": "Entrada",
		"localizacao": gin.H{
			"latitude":  -23.550600,
			"longitude": -46.633400,
		},
	})
	authenticate(c)

	handler.RegisterPunch(c)

	assert.Equal(t, http.StatusCreated, w.Code)

	var envelope struct {
		Ok   bool               `json:"ok"`
		Data ClockEventResponse `json:"data"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	assert.True(t, envelope.Ok)
	assert.Equal(t, "Entrada", envelope.Data.Tipo)
	assert.Equal(t, "Escritório", envelope.Data.Endereco)
}

func TestHandler_RegisterPunch_MissingIdentity(t *testing.T) {
	called := false
	svc := &fakeService{
		registerFn: func(ctx context.Context, identity domain.Identity, req PunchRequest, meta ClientMeta) (ClockEventResponse, error) {
			called = true
			return ClockEventResponse{}, nil
		},
	}
	handler := NewHandler(svc)

	c, w := testContext(t, http.MethodPost, "/api/ponto", gin.H{"tipo": "Entrada"})

	handler.RegisterPunch(c)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.False(t, called, "serviço não pode ser chamado sem identidade")
}

func TestHandler_RegisterPunch_MalformedBody(t *testing.T) {
	handler := NewHandler(&fakeService{})

	c, w := testContext(t, http.MethodPost, "/api/ponto", nil)
	c.Request = httptest.NewRequest(http.MethodPost, "/api/ponto", bytes.NewBufferString("{tipo:"))
	authenticate(c)

	handler.RegisterPunch(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "INVALID_INPUT")
}

func TestHandler_RegisterPunch_ServiceErrorMapped(t *testing.T) {
	svc := &fakeService{
		registerFn: func(ctx context.Context, identity domain.Identity, req PunchRequest, meta ClientMeta) (ClockEventResponse, error) {
			return ClockEventResponse{}, timeclockerrors.ErrTipoInvalido
		},
	}
	handler := NewHandler(svc)

	c, w := testContext(t, http.MethodPost, "/api/ponto", gin.H{"tipo": "intervalo"})
	authenticate(c)

	handler.RegisterPunch(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "INVALID_INPUT")
}

func TestHandler_RegisterPunch_UnknownErrorIsGeneric(t *testing.T) {
	svc := &fakeService{
		registerFn: func(ctx context.Context, identity domain.Identity, req PunchRequest, meta ClientMeta) (ClockEventResponse, error) {
			return ClockEventResponse{}, errors.New("pq: deadlock detected")
		},
	}
	handler := NewHandler(svc)

	c, w := testContext(t, http.MethodPost, "/api/ponto", gin.H{"tipo": "Entrada"})
	authenticate(c)

	handler.RegisterPunch(c)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.NotContains(t, w.Body.String(), "deadlock", "detalhe interno não pode vazar na resposta")
}

func TestHandler_ListRecent(t *testing.T) {
	var gotLimit int
	svc := &fakeService{
		recentFn: func(ctx context.Context, usuarioID string, limit int) ([]ClockEventResponse, error) {
			gotLimit = limit
			return []ClockEventResponse{{ID: uuid.New().String(), Tipo: "Entrada", Endereco: "Escritório"}}, nil
		},
	}
	handler := NewHandler(svc)

	c, w := testContext(t, http.MethodGet, "/api/ponto", nil)
	authenticate(c)

	handler.ListRecent(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, defaultRecentLimit, gotLimit)
	assert.Contains(t, w.Body.String(), "Escritório")
}

func TestHandler_ListHistory(t *testing.T) {
	svc := &fakeService{
		historyFn: func(ctx context.Context, usuarioID string) ([]ClockEventResponse, error) {
			return []ClockEventResponse{
				{ID: uuid.New().String(), Tipo: "Entrada"},
				{ID: uuid.New().String(), Tipo: "Saída"},
			}, nil
		},
	}
	handler := NewHandler(svc)

	c, w := testContext(t, http.MethodGet, "/api/ponto/historico", nil)
	authenticate(c)

	handler.ListHistory(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Saída")
}

func TestHandler_ListAbsenceDays(t *testing.T) {
	svc := &fakeService{
		daysFn: func(ctx context.Context, usuarioID string) ([]string, error) {
			return []string{"2025-03-10", "2025-03-11"}, nil
		},
	}
	handler := NewHandler(svc)

	c, w := testContext(t, http.MethodGet, "/api/ponto/ausencias", nil)
	authenticate(c)

	handler.ListAbsenceDays(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "dias_com_registro")
	assert.Contains(t, w.Body.String(), "2025-03-11")
}
