package middleware

import (
	"net/http"
	"strings"
)

// FunctionsPrefix é o caminho usado pelas Edge Functions do Supabase; as rotas antigas continuam funcionando
const FunctionsPrefix = "/functions/v1"

func StripPrefix(prefix string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if rest, ok := strings.CutPrefix(r.URL.Path, prefix); ok && (rest == "" || strings.HasPrefix(rest, "/")) {
				if rest == "" {
					rest = "/"
				}
				r2 := r.Clone(r.Context())
				r2.URL.Path = rest
				r2.URL.RawPath = ""
				r = r2
			}
			next.ServeHTTP(w, r)
		})
	}
}
