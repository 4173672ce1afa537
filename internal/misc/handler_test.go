package misc

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-redis/redismock/v8"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m,
		// INFO: https://github.com/go-redis/redis/issues/1029
		goleak.IgnoreTopFunction(
			"github.com/go-redis/redis/v8/internal/pool.(*ConnPool).reaper",
		),
	)
}

func TestNewMiscHandler(t *testing.T) {
	mainRouter := mux.NewRouter()
	handler := NewHandler("dummy", nil)
	handler.SetupRoutes(mainRouter)
	require.NotNil(t, handler)

	for caseName, route := range map[string]struct {
		name   string
		path   string
		method string
	}{
		"route-root": {
			name:   "root",
			path:   "/",
			method: "GET",
		},
		"route-health": {
			name:   "health",
			path:   "/health",
			method: "GET",
		},
		"route-version": {
			name:   "version",
			path:   "/version",
			method: "GET",
		},
	} {
		t.Run(caseName, func(t *testing.T) {
			req, err := http.NewRequest(route.method, route.path, nil)
			require.NoError(t, err)

			routeMatch := &mux.RouteMatch{}
			require.True(t, mainRouter.Match(req, routeMatch))
			assert.Equal(t, route.name, routeMatch.Route.GetName())
		})
	}
}

func TestHandleRoot(t *testing.T) {
	r := mux.NewRouter()
	NewHandler("dummy", nil).SetupRoutes(r)

	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))
	require.Equal(t, http.StatusOK, rr.Code)

	var resp rootResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, APIVersion, resp.Version)
	assert.Contains(t, resp.Endpoints, "/generate-workout-plan")
	assert.Contains(t, resp.Endpoints, "/overtraining-risk")
	assert.Len(t, resp.Endpoints, 7)
}

func TestHandleHealth(t *testing.T) {
	fixedNow := time.Date(2024, 6, 10, 8, 30, 0, 0, time.UTC)

	testCases := []struct {
		name          string
		setupRedis    func(mock redismock.ClientMock)
		withRedis     bool
		expectedRedis string
	}{
		{
			name:          "redis disabled",
			expectedRedis: "disabled",
		},
		{
			name:      "redis up",
			withRedis: true,
			setupRedis: func(mock redismock.ClientMock) {
				mock.ExpectPing().SetVal("PONG")
			},
			expectedRedis: "up",
		},
		{
			name:      "redis down",
			withRedis: true,
			setupRedis: func(mock redismock.ClientMock) {
				mock.ExpectPing().SetErr(errors.New("connection refused"))
			},
			expectedRedis: "down",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			handler := NewHandler("dummy", nil)
			if tc.withRedis {
				db, mock := redismock.NewClientMock()
				tc.setupRedis(mock)
				handler = NewHandler("dummy", db)
				defer func() {
					assert.NoError(t, mock.ExpectationsWereMet())
					_ = db.Close()
				}()
			}
			handler.now = func() time.Time { return fixedNow }

			r := mux.NewRouter()
			handler.SetupRoutes(r)
			rr := httptest.NewRecorder()
			r.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/health", nil))
			require.Equal(t, http.StatusOK, rr.Code)

			var resp healthResponse
			require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
			assert.Equal(t, "healthy", resp.Status)
			assert.Equal(t, "2024-06-10T08:30:00Z", resp.Timestamp)
			assert.Equal(t, APIVersion, resp.APIVersion)
			assert.Equal(t, tc.expectedRedis, resp.Redis)
		})
	}
}

func TestHandleVersion(t *testing.T) {
	r := mux.NewRouter()
	NewHandler("abc123", nil).SetupRoutes(r)

	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/version", nil))
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "abc123", rr.Body.String())
}
