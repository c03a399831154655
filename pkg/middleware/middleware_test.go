package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/vfg2006/crm-api/internal/domain"
	"github.com/vfg2006/crm-api/internal/usecases/authenticating"
	"github.com/vfg2006/crm-api/internal/usecases/authenticating/mocks"
	"github.com/vfg2006/crm-api/pkg/apiErrors"
	"github.com/vfg2006/crm-api/pkg/log"
)

func okHandler(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
}

func TestAuthMiddleware(t *testing.T) {
	ctrl := gomock.NewController(t)
	authService := mocks.NewMockAuthenticator(ctrl)

	var seen *domain.Claims
	handler := AuthMiddleware(authService)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen, _ = ClaimsFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	}))

	tests := []struct {
		name       string
		method     string
		path       string
		header     string
		setup      func()
		wantStatus int
		wantClaims bool
	}{
		{
			name:       "webhook é público",
			method:     http.MethodPost,
			path:       "/crm/webhooks/calcom",
			setup:      func() {},
			wantStatus: http.StatusOK,
		},
		{
			name:       "preflight passa sem token",
			method:     http.MethodOptions,
			path:       "/crm/actions/deals",
			setup:      func() {},
			wantStatus: http.StatusOK,
		},
		{
			name:       "sem cabeçalho Authorization",
			method:     http.MethodGet,
			path:       "/v1/board",
			setup:      func() {},
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "cabeçalho sem Bearer",
			method:     http.MethodGet,
			path:       "/v1/board",
			header:     "Basic abc",
			setup:      func() {},
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:   "token expirado",
			method: http.MethodGet,
			path:   "/v1/board",
			header: "Bearer velho",
			setup: func() {
				authService.EXPECT().ValidateToken("velho").
					Return(nil, authenticating.NewAuthError(authenticating.ErrExpiredToken, apiErrors.ErrExpiredToken, ""))
			},
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:   "token válido grava as claims",
			method: http.MethodGet,
			path:   "/v1/board",
			header: "Bearer bom",
			setup: func() {
				authService.EXPECT().ValidateToken("bom").
					Return(&domain.Claims{Role: domain.RoleAuthenticated}, nil)
			},
			wantStatus: http.StatusOK,
			wantClaims: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			seen = nil
			tt.setup()

			req := httptest.NewRequest(tt.method, tt.path, nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()

			handler.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantClaims {
				require.NotNil(t, seen)
				assert.Equal(t, domain.RoleAuthenticated, seen.Role)
			}
		})
	}
}

func TestRoleMiddleware(t *testing.T) {
	withClaims := func(role string) *http.Request {
		req := httptest.NewRequest(http.MethodPost, "/crm/cron/run", nil)
		if role == "" {
			return req
		}
		ctx := req.Context()
		return req.WithContext(contextWithClaims(ctx, &domain.Claims{Role: role}))
	}

	tests := []struct {
		name       string
		middleware func(http.Handler) http.Handler
		role       string
		wantStatus int
	}{
		{"service role na rota de operação", ServiceRoleOnly(), domain.RoleServiceRole, http.StatusOK},
		{"usuário comum na rota de operação", ServiceRoleOnly(), domain.RoleAuthenticated, http.StatusForbidden},
		{"sem claims", ServiceRoleOnly(), "", http.StatusUnauthorized},
		{"usuário autenticado", AuthenticatedOrService(), domain.RoleAuthenticated, http.StatusOK},
		{"anon bloqueado", AuthenticatedOrService(), "anon", http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			tt.middleware(http.HandlerFunc(okHandler)).ServeHTTP(rec, withClaims(tt.role))
			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}

func TestCors(t *testing.T) {
	handler := Cors([]string{"https://crm.exemplo.com", " "})(http.HandlerFunc(okHandler))

	t.Run("origem permitida", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/v1/board", nil)
		req.Header.Set("Origin", "https://crm.exemplo.com")
		rec := httptest.NewRecorder()

		handler.ServeHTTP(rec, req)

		assert.Equal(t, "https://crm.exemplo.com", rec.Header().Get("Access-Control-Allow-Origin"))
		assert.Contains(t, rec.Header().Get("Access-Control-Allow-Headers"), "Idempotency-Key")
		assert.Equal(t, "true", rec.Header().Get("Access-Control-Allow-Credentials"))
	})

	t.Run("origem desconhecida", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/v1/board", nil)
		req.Header.Set("Origin", "https://outro.com")
		rec := httptest.NewRecorder()

		handler.ServeHTTP(rec, req)

		assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("curinga e preflight", func(t *testing.T) {
		next := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			t.Fatal("preflight não deve chegar ao handler")
		})
		req := httptest.NewRequest(http.MethodOptions, "/crm/actions/deals", nil)
		req.Header.Set("Origin", "https://qualquer.com")
		rec := httptest.NewRecorder()

		Cors([]string{"*"})(next).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "https://qualquer.com", rec.Header().Get("Access-Control-Allow-Origin"))
		assert.Empty(t, rec.Header().Get("Access-Control-Allow-Credentials"))
	})
}

func TestStripPrefix(t *testing.T) {
	var gotPath string
	handler := StripPrefix(FunctionsPrefix)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
	}))

	tests := map[string]string{
		"/functions/v1/crm/webhooks/calcom": "/crm/webhooks/calcom",
		"/functions/v1":                     "/",
		"/functions/v10/x":                  "/functions/v10/x",
		"/crm/actions/deals":                "/crm/actions/deals",
	}

	for in, want := range tests {
		handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, in, nil))
		assert.Equal(t, want, gotPath, in)
	}
}

func TestLoggingMiddleware_PropagaCorrelationID(t *testing.T) {
	log.SetupTestLogger()

	var fromCtx string
	handler := LoggingMiddleware()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fromCtx = log.GetCorrelationID(r.Context())
		w.WriteHeader(http.StatusCreated)
	}))

	req := httptest.NewRequest(http.MethodGet, "/healthcheck", nil)
	req.Header.Set(log.CorrelationIDHeader, "corr-123")
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "corr-123", fromCtx)
	assert.Equal(t, "corr-123", rec.Header().Get(log.CorrelationIDHeader))

	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthcheck", nil))
	assert.NotEmpty(t, rec.Header().Get(log.CorrelationIDHeader))
}

func TestLogPanicMiddleware(t *testing.T) {
	log.SetupTestLogger()

	handler := LogPanicMiddleware()(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	}))
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/board", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"code":"SRV_001","message":"Internal server error"}`, rec.Body.String())
}
