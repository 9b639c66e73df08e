package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"tgorders/api/middleware"
	"tgorders/config"
	"tgorders/domain/accesslevel"
	"tgorders/domain/shared"
	"tgorders/domain/user"
	"tgorders/infrastructure/persistence/memory"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	adminID     int64 = 1
	workerID    int64 = 2
	confirmerID int64 = 3
)

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   string          `json:"error"`
	Code    int             `json:"code"`
}

type testServer struct {
	t      *testing.T
	engine *gin.Engine
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)
	ctx := context.Background()

	store := memory.NewStore()
	seed := memory.NewUnitOfWork(store)
	for id, level := range map[int64]accesslevel.AccessLevel{
		adminID:     accesslevel.Administrator,
		workerID:    accesslevel.User,
		confirmerID: accesslevel.Confirmation,
	} {
		u, err := user.New(id, "user "+strconv.FormatInt(id, 10), []accesslevel.AccessLevel{level})
		require.NoError(t, err)
		require.NoError(t, seed.Users().AddUser(ctx, u))
	}
	require.NoError(t, seed.Commit(ctx))

	cfg := &config.Config{
		App:  config.AppConfig{Name: "tgorders", Version: "test", Env: "test"},
		CORS: config.CORSConfig{AllowOrigins: []string{"*"}},
	}
	router := NewRouter(cfg, memory.NewUnitOfWorkFactory(store), shared.NewEventDispatcher(nil), nil)
	router.SetupRoutes()
	return &testServer{t: t, engine: router.GetEngine()}
}

func (s *testServer) do(method, path string, actor int64, body any) (int, envelope) {
	s.t.Helper()
	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(s.t, err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if actor != 0 {
		req.Header.Set(middleware.UserIDHeader, strconv.FormatInt(actor, 10))
	}
	rec := httptest.NewRecorder()
	s.engine.ServeHTTP(rec, req)

	var env envelope
	if rec.Body.Len() > 0 && rec.Header().Get("Content-Type") != "" {
		_ = json.Unmarshal(rec.Body.Bytes(), &env)
	}
	return rec.Code, env
}

func decode[T any](t *testing.T, env envelope) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(env.Data, &v))
	return v
}

type idResponse struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Type      string `json:"type"`
	Confirmed string `json:"confirmed"`
}

func TestHealth(t *testing.T) {
	s := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	s.engine.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"healthy"`)
	assert.NotEmpty(t, rec.Header().Get(middleware.RequestIDHeader))
}

func TestAuth(t *testing.T) {
	s := newTestServer(t)

	code, env := s.do(http.MethodGet, "/api/v1/markets", 0, nil)
	assert.Equal(t, http.StatusUnauthorized, code)
	assert.Equal(t, "UNAUTHORIZED", env.Error)

	code, _ = s.do(http.MethodGet, "/api/v1/markets", 999, nil)
	assert.Equal(t, http.StatusUnauthorized, code)

	code, _ = s.do(http.MethodGet, "/api/v1/markets", workerID, nil)
	assert.Equal(t, http.StatusOK, code)
}

func TestMarkets(t *testing.T) {
	s := newTestServer(t)

	code, env := s.do(http.MethodPost, "/api/v1/markets", workerID, map[string]any{"name": "Central"})
	assert.Equal(t, http.StatusForbidden, code)
	assert.Equal(t, "ACCESS_DENIED", env.Error)

	code, env = s.do(http.MethodPost, "/api/v1/markets", adminID, map[string]any{"name": "Central"})
	require.Equal(t, http.StatusCreated, code)
	created := decode[idResponse](t, env)

	code, env = s.do(http.MethodPost, "/api/v1/markets", adminID, map[string]any{"name": "Central"})
	assert.Equal(t, http.StatusConflict, code)
	assert.Equal(t, "CONFLICT", env.Error)

	code, env = s.do(http.MethodPatch, "/api/v1/markets/"+created.ID, adminID, map[string]any{"name": "North"})
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "North", decode[idResponse](t, env).Name)

	code, env = s.do(http.MethodGet, "/api/v1/markets", workerID, nil)
	require.Equal(t, http.StatusOK, code)
	assert.Len(t, decode[[]idResponse](t, env), 1)

	code, _ = s.do(http.MethodDelete, "/api/v1/markets/"+created.ID, adminID, nil)
	assert.Equal(t, http.StatusNoContent, code)

	code, env = s.do(http.MethodGet, "/api/v1/markets/"+created.ID, adminID, nil)
	assert.Equal(t, http.StatusNotFound, code)
	assert.Equal(t, "NOT_FOUND", env.Error)
}

func TestGoods(t *testing.T) {
	s := newTestServer(t)

	code, env := s.do(http.MethodPost, "/api/v1/goods", adminID, map[string]any{"name": "Drinks", "type": "FOLDER"})
	require.Equal(t, http.StatusCreated, code)
	folder := decode[idResponse](t, env)

	code, env = s.do(http.MethodPost, "/api/v1/goods", adminID, map[string]any{
		"name": "Cola", "type": "GOODS", "sku": "COLA-1", "parent_id": folder.ID,
	})
	require.Equal(t, http.StatusCreated, code)
	cola := decode[idResponse](t, env)

	code, env = s.do(http.MethodPost, "/api/v1/goods", adminID, map[string]any{"name": "Tea", "type": "GOODS"})
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "VALIDATION_ERROR", env.Error)

	code, env = s.do(http.MethodGet, "/api/v1/goods", workerID, nil)
	require.Equal(t, http.StatusOK, code)
	root := decode[[]idResponse](t, env)
	require.Len(t, root, 1)
	assert.Equal(t, folder.ID, root[0].ID)

	code, env = s.do(http.MethodGet, "/api/v1/goods?parent_id="+folder.ID, workerID, nil)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, []idResponse{{ID: cola.ID, Name: "Cola", Type: "GOODS"}}, decode[[]idResponse](t, env))

	code, env = s.do(http.MethodGet, "/api/v1/goods/"+cola.ID+"/parent", workerID, nil)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, folder.ID, decode[idResponse](t, env).ID)

	code, env = s.do(http.MethodDelete, "/api/v1/goods/"+folder.ID, adminID, nil)
	assert.Equal(t, http.StatusConflict, code)
}

func TestOrders(t *testing.T) {
	s := newTestServer(t)

	_, env := s.do(http.MethodPost, "/api/v1/markets", adminID, map[string]any{"name": "Central"})
	m := decode[idResponse](t, env)
	_, env = s.do(http.MethodPost, "/api/v1/goods", adminID, map[string]any{"name": "Cola", "type": "GOODS", "sku": "COLA-1"})
	cola := decode[idResponse](t, env)

	code, env := s.do(http.MethodPost, "/api/v1/orders", workerID, map[string]any{
		"recipient_market_id": m.ID,
		"order_lines":         []map[string]any{{"goods_id": cola.ID, "quantity": 3}},
	})
	require.Equal(t, http.StatusCreated, code)
	o := decode[idResponse](t, env)
	assert.Equal(t, "NOT_PROCESSED", o.Confirmed)

	code, _ = s.do(http.MethodGet, "/api/v1/orders", workerID, nil)
	assert.Equal(t, http.StatusForbidden, code)

	code, env = s.do(http.MethodGet, "/api/v1/orders/users/"+strconv.FormatInt(workerID, 10), workerID, nil)
	require.Equal(t, http.StatusOK, code)
	assert.Len(t, decode[[]idResponse](t, env), 1)

	code, _ = s.do(http.MethodPost, "/api/v1/orders/"+o.ID+"/confirm", workerID, map[string]any{"status": "YES"})
	assert.Equal(t, http.StatusForbidden, code)

	code, env = s.do(http.MethodPost, "/api/v1/orders/"+o.ID+"/confirm", confirmerID, map[string]any{"status": "YES"})
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "YES", decode[idResponse](t, env).Confirmed)

	code, env = s.do(http.MethodPost, "/api/v1/orders/"+o.ID+"/confirm", confirmerID, map[string]any{"status": "NO"})
	assert.Equal(t, http.StatusUnprocessableEntity, code)
	assert.Equal(t, "INVALID_STATE", env.Error)
}

func TestOrders_CreatorIsActingUser(t *testing.T) {
	s := newTestServer(t)

	_, env := s.do(http.MethodPost, "/api/v1/markets", adminID, map[string]any{"name": "Central"})
	m := decode[idResponse](t, env)
	_, env = s.do(http.MethodPost, "/api/v1/goods", adminID, map[string]any{"name": "Cola", "type": "GOODS", "sku": "COLA-1"})
	cola := decode[idResponse](t, env)

	code, env := s.do(http.MethodPost, "/api/v1/orders", workerID, map[string]any{
		"creator_id":          adminID,
		"recipient_market_id": m.ID,
		"order_lines":         []map[string]any{{"goods_id": cola.ID, "quantity": 1}},
	})
	require.Equal(t, http.StatusCreated, code)
	created := decode[struct {
		Creator struct {
			ID int64 `json:"id"`
		} `json:"creator"`
	}](t, env)
	assert.Equal(t, workerID, created.Creator.ID)

	code, env = s.do(http.MethodGet, "/api/v1/orders/users/"+strconv.FormatInt(adminID, 10), adminID, nil)
	require.Equal(t, http.StatusOK, code)
	assert.Empty(t, decode[[]idResponse](t, env))

	code, env = s.do(http.MethodGet, "/api/v1/orders/users/"+strconv.FormatInt(workerID, 10), workerID, nil)
	require.Equal(t, http.StatusOK, code)
	assert.Len(t, decode[[]idResponse](t, env), 1)
}

func TestUsers(t *testing.T) {
	s := newTestServer(t)

	code, env := s.do(http.MethodGet, "/api/v1/users/confirmers", adminID, nil)
	require.Equal(t, http.StatusOK, code)
	confirmers := decode[[]struct {
		ID int64 `json:"id"`
	}](t, env)
	require.Len(t, confirmers, 1)
	assert.Equal(t, confirmerID, confirmers[0].ID)

	code, _ = s.do(http.MethodGet, "/api/v1/users/"+strconv.FormatInt(workerID, 10), workerID, nil)
	assert.Equal(t, http.StatusOK, code)
	code, _ = s.do(http.MethodGet, "/api/v1/users/"+strconv.FormatInt(adminID, 10), workerID, nil)
	assert.Equal(t, http.StatusForbidden, code)

	code, _ = s.do(http.MethodGet, "/api/v1/users/abc", adminID, nil)
	assert.Equal(t, http.StatusBadRequest, code)

	code, env = s.do(http.MethodPost, "/api/v1/users/"+strconv.FormatInt(workerID, 10)+"/block", adminID, nil)
	require.Equal(t, http.StatusOK, code)
	assert.True(t, decode[struct {
		IsBlocked bool `json:"is_blocked"`
	}](t, env).IsBlocked)

	code, _ = s.do(http.MethodGet, "/api/v1/markets", workerID, nil)
	assert.Equal(t, http.StatusForbidden, code)

	code, env = s.do(http.MethodGet, "/api/v1/access-levels", adminID, nil)
	require.Equal(t, http.StatusOK, code)
	assert.Len(t, decode[[]struct {
		ID int `json:"id"`
	}](t, env), 4)
}
