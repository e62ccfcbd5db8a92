package middleware_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"tourdesk/config"
	"tourdesk/infras/jwt"
	"tourdesk/infras/otel/mocks"
	"tourdesk/permissions"
	cacheMocks "tourdesk/shared/cache/mocks"
	"tourdesk/shared/constant"
	"tourdesk/transport/http/middleware"
)

func testConfig() *config.Config {
	cfg := &config.Config{}
	cfg.App.Name = "tourdesk"
	cfg.App.APIKey = "internal-key"
	cfg.JWT.AccessSecret = "secret"
	cfg.JWT.AccessExpireMin = 5

	return cfg
}

func protectedRouter(cfg *config.Config) http.Handler {
	auth := middleware.NewAuthRoleMiddleware(jwt.New(cfg), mocks.NewOtel(), &permissions.PermissionData{
		Endpoints: []permissions.Permission{
			{Path: "/v1/pricing/quote", Method: http.MethodPost, Skip: true},
			{Path: "/v1/documents/{id}", Method: http.MethodDelete, Permissions: []string{constant.RoleAdmin}},
		},
	}, cfg)

	ok := func(w http.ResponseWriter, r *http.Request) {
		user, _ := r.Context().Value(constant.ContextKeyUserID).(string)
		_, _ = w.Write([]byte(user))
	}

	router := chi.NewRouter()
	router.Use(auth.APIKey, auth.Auth, auth.RBAC)
	router.Post("/v1/pricing/quote", ok)
	router.Get("/v1/documents/{id}", ok)
	router.Delete("/v1/documents/{id}", ok)

	return router
}

func TestAuthRole(t *testing.T) {
	cfg := testConfig()

	agentToken, err := jwt.New(cfg).GenerateToken("agent-1", "agent@example.com", constant.RoleAgent)
	require.NoError(t, err)

	adminToken, err := jwt.New(cfg).GenerateToken("admin-1", "admin@example.com", constant.RoleAdmin)
	require.NoError(t, err)

	tests := []struct {
		name       string
		method     string
		target     string
		header     map[string]string
		wantStatus int
		wantBody   string
	}{
		{name: "missing token", method: http.MethodGet, target: "/v1/documents/1", wantStatus: http.StatusUnauthorized},
		{
			name:       "malformed header",
			method:     http.MethodGet,
			target:     "/v1/documents/1",
			header:     map[string]string{constant.RequestHeaderAuthorization: "Token abc"},
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "invalid token",
			method:     http.MethodGet,
			target:     "/v1/documents/1",
			header:     map[string]string{constant.RequestHeaderAuthorization: "Bearer not-a-jwt"},
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "agent reads a document",
			method:     http.MethodGet,
			target:     "/v1/documents/1",
			header:     map[string]string{constant.RequestHeaderAuthorization: "Bearer " + agentToken},
			wantStatus: http.StatusOK,
			wantBody:   "agent-1",
		},
		{
			name:       "agent cannot delete",
			method:     http.MethodDelete,
			target:     "/v1/documents/1",
			header:     map[string]string{constant.RequestHeaderAuthorization: "Bearer " + agentToken},
			wantStatus: http.StatusForbidden,
		},
		{
			name:       "admin deletes",
			method:     http.MethodDelete,
			target:     "/v1/documents/1",
			header:     map[string]string{constant.RequestHeaderAuthorization: "Bearer " + adminToken},
			wantStatus: http.StatusOK,
			wantBody:   "admin-1",
		},
		{name: "public route", method: http.MethodPost, target: "/v1/pricing/quote", wantStatus: http.StatusOK},
		{
			name:       "internal caller",
			method:     http.MethodDelete,
			target:     "/v1/documents/1",
			header:     map[string]string{constant.RequestHeaderAPIKey: "internal-key"},
			wantStatus: http.StatusOK,
			wantBody:   "system",
		},
		{
			name:       "wrong api key",
			method:     http.MethodGet,
			target:     "/v1/documents/1",
			header:     map[string]string{constant.RequestHeaderAPIKey: "guess"},
			wantStatus: http.StatusForbidden,
		},
	}

	router := protectedRouter(cfg)

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.target, nil)
			for key, value := range tt.header {
				req.Header.Set(key, value)
			}

			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Contains(t, rec.Body.String(), tt.wantBody)
		})
	}
}

func TestRateLimit(t *testing.T) {
	cfg := testConfig()
	cfg.App.RateLimiter.Enable = true
	cfg.App.RateLimiter.MaxRequests = 2
	cfg.App.RateLimiter.WindowSeconds = 60

	tests := []struct {
		name       string
		count      int
		incrErr    error
		wantStatus int
		wantLeft   string
	}{
		{name: "first request", count: 1, wantStatus: http.StatusOK, wantLeft: "1"},
		{name: "last allowed request", count: 2, wantStatus: http.StatusOK, wantLeft: "0"},
		{name: "over the limit", count: 3, wantStatus: http.StatusTooManyRequests},
		{name: "cache down lets the request through", incrErr: errors.New("connection refused"), wantStatus: http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockCache := cacheMocks.NewMockRedisCache(gomock.NewController(t))

			mockCache.EXPECT().Incr(gomock.Any(), "limiter:10.0.0.1:curl", 60).Return(tt.count, tt.incrErr)

			limiter := middleware.NewAppMiddleware(mocks.NewOtel(), cfg, mockCache).RateLimit()
			handler := limiter(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(http.StatusOK)
			}))

			req := httptest.NewRequest(http.MethodGet, "/v1/documents", nil)
			req.Header.Set(constant.RequestHeaderForwardedFor, "10.0.0.1, 172.16.0.1")
			req.Header.Set(constant.RequestHeaderUserAgent, "curl")

			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, tt.wantLeft, rec.Header().Get(constant.RequestHeaderRateLimitRemaining))
		})
	}
}
