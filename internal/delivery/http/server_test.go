package http

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"pawsync/config"
	"pawsync/internal/delivery/http/middleware"
	"pawsync/internal/delivery/http/router"
	"pawsync/internal/delivery/http/router/handler"
	"pawsync/internal/infra/auth"
	"pawsync/internal/infra/mapper"
	"pawsync/internal/infra/metrics"
	"pawsync/internal/infra/network"
	"pawsync/internal/infra/persistence/local"
	"pawsync/internal/infra/remote/memory"
	"pawsync/internal/infra/task"
	mockSvc "pawsync/internal/mocks/service"
	"pawsync/internal/usecase"
	"pawsync/internal/usecase/impl"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/fx/fxtest"
)

type apiFixture struct {
	echo   *echo.Echo
	remote *memory.Store
	token  string
}

func newAPIFixture(t *testing.T) *apiFixture {
	t.Helper()

	cfg := &config.Config{
		Sync:    &config.SyncConfig{Workers: 2},
		Metrics: &config.MetricsConfig{Enabled: true},
	}
	cfg.Env.ServiceName = "pawsync-test"
	cfg.HTTP.MaxRequestBodySize = "1M"
	cfg.SecretKey.Access = "test_access_secret_key_very_long_for_testing"
	cfg.SecretKey.TokenTTLMinutes = 5

	db, err := local.OpenSQLite(":memory:", nil, false)
	require.NoError(t, err)

	logger := slog.New(slog.DiscardHandler)
	runner := task.New(logger, 16)
	remote := memory.NewStore()
	monitor := network.NewStaticMonitor(true)
	registry := metrics.NewRegistry()

	publisher := mockSvc.NewMockEventPublisher(t)
	publisher.EXPECT().PublishSyncEvent(mock.Anything, mock.Anything).Return(nil).Maybe()

	params := impl.CoordinatorParams{
		Remote:     remote,
		Tombstones: local.NewTombstoneRepository(db),
		Network:    monitor,
		Publisher:  publisher,
		Metrics:    metrics.NewSyncMetrics(registry),
		Config:     cfg,
		Logger:     logger,
	}
	favorites := impl.NewFavoriteService(params, local.NewFavoriteStore(db), mapper.NewFavoriteMapper())
	ownerships := impl.NewOwnershipService(params, local.NewOwnershipStore(db), mapper.NewOwnershipMapper())
	walks := impl.NewWalkService(params, local.NewWalkStore(db), mapper.NewWalkMapper())
	activities := impl.NewActivityService(params, local.NewActivityStore(db), mapper.NewActivityMapper())

	tokens, err := auth.NewJWTService(cfg)
	require.NoError(t, err)
	token, err := tokens.GenerateToken("user-1", nil)
	require.NoError(t, err)

	lc := fxtest.NewLifecycle(t)
	routes := router.RouterParams{
		Config: cfg,
		SystemHandler: handler.NewSystemHandler(handler.SystemHandlerParams{
			Config:   cfg,
			Network:  monitor,
			Registry: registry,
			Runner:   runner,
			Syncers: []usecase.PendingSyncer{
				favorites.Coordinator(), ownerships.Coordinator(), walks.Coordinator(), activities.Coordinator(),
			},
			Logger: logger,
		}),
		FavoriteHandler: handler.NewFavoriteHandler(handler.FavoriteHandlerParams{
			Lc: lc, FavoriteUC: favorites, Runner: runner, Logger: logger,
		}),
		OwnershipHandler: handler.NewOwnershipHandler(handler.OwnershipHandlerParams{
			Lc: lc, OwnershipUC: ownerships, Runner: runner, Logger: logger,
		}),
		WalkHandler: handler.NewWalkHandler(handler.WalkHandlerParams{
			Lc: lc, WalkUC: walks, Runner: runner, Logger: logger,
		}),
		ActivityHandler: handler.NewActivityHandler(handler.ActivityHandlerParams{
			Lc: lc, ActivityUC: activities, Runner: runner, Logger: logger,
		}),
		AuthMiddleware: middleware.NewAuthMiddleware(tokens, logger),
	}

	e := NewEcho(cfg, logger)
	router.NewRouter(routes).RegisterRoutes(e)
	lc.RequireStart()

	t.Cleanup(func() {
		lc.RequireStop()
		require.NoError(t, runner.Shutdown(context.Background()))
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})

	return &apiFixture{echo: e, remote: remote, token: token}
}

func (f *apiFixture) do(t *testing.T, method, path, body string, authorized bool) (int, map[string]any) {
	t.Helper()

	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	if authorized {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+f.token)
	}
	rec := httptest.NewRecorder()
	f.echo.ServeHTTP(rec, req)

	var out map[string]any
	if strings.HasPrefix(rec.Header().Get(echo.HeaderContentType), echo.MIMEApplicationJSON) {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	}

	return rec.Code, out
}

// waitTask polls the task endpoint until the task leaves RUNNING.
func (f *apiFixture) waitTask(t *testing.T, accepted map[string]any) string {
	t.Helper()

	id := accepted["data"].(map[string]any)["task_id"].(string)
	var state string
	require.Eventually(t, func() bool {
		code, body := f.do(t, http.MethodGet, "/v1/tasks/"+id, "", true)
		if code != http.StatusOK {
			return false
		}
		state = body["data"].(map[string]any)["state"].(string)

		return state != string(task.StateRunning)
	}, 2*time.Second, 5*time.Millisecond)

	return state
}

func errorCode(body map[string]any) string {
	return body["error"].(map[string]any)["code"].(string)
}

func TestServer_Health(t *testing.T) {
	f := newAPIFixture(t)

	code, body := f.do(t, http.MethodGet, "/health", "", false)
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "ok", body["status"])
	assert.Equal(t, "pawsync-test", body["service"])
	assert.Equal(t, true, body["online"])
}

func TestServer_Metrics(t *testing.T) {
	f := newAPIFixture(t)

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	rec := httptest.NewRecorder()
	f.echo.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "go_goroutines")
}

func TestServer_RequiresToken(t *testing.T) {
	f := newAPIFixture(t)

	code, body := f.do(t, http.MethodGet, "/v1/favorites", "", false)
	assert.Equal(t, http.StatusUnauthorized, code)
	assert.Equal(t, "UNAUTHORIZED", errorCode(body))
}

func TestServer_FavoriteToggle(t *testing.T) {
	f := newAPIFixture(t)

	code, body := f.do(t, http.MethodPost, "/v1/favorites", `{"animal_id":"a1","animal_name":"Mochi"}`, true)
	require.Equal(t, http.StatusAccepted, code)
	assert.Equal(t, "favorites.toggle", body["data"].(map[string]any)["name"])
	assert.Equal(t, string(task.StateSucceeded), f.waitTask(t, body))

	// The view follows the local store asynchronously.
	var state map[string]any
	var items []any
	require.Eventually(t, func() bool {
		code, body := f.do(t, http.MethodGet, "/v1/favorites", "", true)
		if code != http.StatusOK {
			return false
		}
		state = body["data"].(map[string]any)
		items, _ = state["items"].([]any)

		return len(items) == 1
	}, 2*time.Second, 5*time.Millisecond)
	assert.Equal(t, "user-1", state["owner"])
	assert.Equal(t, "a1", items[0].(map[string]any)["subject_id"])
	assert.Equal(t, 1, f.remote.Count("favorites"))
}

func TestServer_ValidationErrors(t *testing.T) {
	f := newAPIFixture(t)

	tests := []struct {
		name    string
		method  string
		path    string
		body    string
		details string
	}{
		{
			name:    "missing animal",
			method:  http.MethodPost,
			path:    "/v1/favorites",
			body:    `{}`,
			details: "animal_id: required",
		},
		{
			name:    "bad id",
			method:  http.MethodPost,
			path:    "/v1/walks/not-a-uuid/finish",
			details: "invalid id",
		},
		{
			name:    "unknown decision",
			method:  http.MethodPatch,
			path:    "/v1/ownerships/7d8c2f52-7a1b-4c3e-9f0e-1b2c3d4e5f60/status",
			body:    `{"status":"PENDING"}`,
			details: "status: oneof=APPROVED REJECTED",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, body := f.do(t, tt.method, tt.path, tt.body, true)
			assert.Equal(t, http.StatusBadRequest, code)
			assert.Equal(t, "VALIDATION_FAILED", errorCode(body))
			assert.Equal(t, tt.details, body["error"].(map[string]any)["details"])
		})
	}
}

func TestServer_FailedIntentBecomesMessage(t *testing.T) {
	f := newAPIFixture(t)

	code, body := f.do(t, http.MethodDelete, "/v1/activities/7d8c2f52-7a1b-4c3e-9f0e-1b2c3d4e5f60", "", true)
	require.Equal(t, http.StatusAccepted, code)
	assert.Equal(t, string(task.StateFailed), f.waitTask(t, body))

	var message map[string]any
	require.Eventually(t, func() bool {
		_, body := f.do(t, http.MethodGet, "/v1/activities", "", true)
		message, _ = body["data"].(map[string]any)["message"].(map[string]any)

		return message != nil
	}, 2*time.Second, 5*time.Millisecond)
	assert.Equal(t, "RECORD_NOT_FOUND", message["code"])

	code, body = f.do(t, http.MethodDelete, "/v1/activities/message", "", true)
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, true, body["data"].(map[string]any)["cleared"])
}

func TestServer_WalkSummaryAndUnknownTask(t *testing.T) {
	f := newAPIFixture(t)

	code, body := f.do(t, http.MethodGet, "/v1/walks/summary", "", true)
	assert.Equal(t, http.StatusOK, code)
	assert.NotNil(t, body["data"])

	code, body = f.do(t, http.MethodGet, "/v1/tasks/missing", "", true)
	assert.Equal(t, http.StatusNotFound, code)
	assert.Equal(t, "TASK_NOT_FOUND", errorCode(body))
}
