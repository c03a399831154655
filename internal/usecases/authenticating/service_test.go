package authenticating

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/crm-api/internal/config"
	"github.com/vfg2006/crm-api/internal/domain"
	"github.com/vfg2006/crm-api/pkg/apiErrors"
)

func newTestService(secret string) *Service {
	return NewService(&config.Config{Auth: config.Auth{JWTSecret: secret}}).(*Service)
}

func TestService_ValidateToken(t *testing.T) {
	service := newTestService("super-secret")

	valid, err := service.IssueToken("user-1", "ana@acme.com", domain.RoleAuthenticated, time.Hour)
	require.NoError(t, err)

	expired, err := service.IssueToken("user-1", "ana@acme.com", domain.RoleAuthenticated, -time.Minute)
	require.NoError(t, err)

	otherSecret, err := newTestService("outro").IssueToken("user-1", "", domain.RoleAuthenticated, time.Hour)
	require.NoError(t, err)

	noRole, err := jwt.NewWithClaims(jwt.SigningMethodHS256, &domain.Claims{
		RegisteredClaims: jwt.RegisteredClaims{Subject: "user-1"},
	}).SignedString([]byte("super-secret"))
	require.NoError(t, err)

	tests := []struct {
		name     string
		token    string
		wantCode string
	}{
		{name: "token válido", token: valid},
		{name: "token expirado", token: expired, wantCode: apiErrors.ErrExpiredToken},
		{name: "assinado com outro segredo", token: otherSecret, wantCode: apiErrors.ErrInvalidToken},
		{name: "sem role", token: noRole, wantCode: apiErrors.ErrInvalidToken},
		{name: "lixo", token: "abc.def.ghi", wantCode: apiErrors.ErrInvalidToken},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			claims, err := service.ValidateToken(tt.token)
			if tt.wantCode == "" {
				require.NoError(t, err)
				assert.Equal(t, "user-1", claims.UserID())
				assert.Equal(t, "ana@acme.com", claims.Email)
				assert.Equal(t, domain.RoleAuthenticated, claims.Role)
				return
			}

			var authErr *AuthError
			require.ErrorAs(t, err, &authErr)
			assert.Equal(t, tt.wantCode, authErr.Code)
			assert.True(t, IsAuthorizationError(err))
		})
	}
}

func TestService_SemSegredo(t *testing.T) {
	service := newTestService("")

	_, err := service.ValidateToken("qualquer")
	assert.ErrorIs(t, err, ErrSecretNotConfigured)

	_, err = service.IssueToken("svc", "", domain.RoleServiceRole, time.Hour)
	assert.ErrorIs(t, err, ErrSecretNotConfigured)
}
