package middleware

import (
	"net/http"
	"slices"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/crm-api/internal/domain"
	"github.com/vfg2006/crm-api/pkg/apiErrors"
)

// RoleMiddleware restringe o acesso à rota com base na claim role do JWT
func RoleMiddleware(allowedRoles []string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userClaims, ok := ClaimsFromContext(r.Context())
			if !ok {
				logrus.Warning("Tentativa de acesso sem autenticação")
				apiErrors.WriteError(w, apiErrors.ErrInvalidToken, "Usuário não autenticado", nil)
				return
			}

			if !slices.Contains(allowedRoles, userClaims.Role) {
				logrus.Warningf("Acesso negado para usuário %s, role=%s", userClaims.UserID(), userClaims.Role)
				apiErrors.WriteError(w, apiErrors.ErrInsufficientPrivilege, "Você não tem permissão para acessar este recurso", nil)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// AuthenticatedOrService libera usuários logados na UI e chamadas com a service role
func AuthenticatedOrService() func(http.Handler) http.Handler {
	return RoleMiddleware([]string{domain.RoleAuthenticated, domain.RoleServiceRole})
}

// ServiceRoleOnly é usado nas rotas de operação (cron)
func ServiceRoleOnly() func(http.Handler) http.Handler {
	return RoleMiddleware([]string{domain.RoleServiceRole})
}
