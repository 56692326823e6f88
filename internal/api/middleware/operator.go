package middleware

import (
	"net/http"
	"strings"

	"github.com/yoBruxo/PTbotKND/internal/api/apierr"
	"github.com/yoBruxo/PTbotKND/internal/services/auth"
)

// OperatorAuth gates administrative endpoints on the operator token,
// presented as a bearer token
func OperatorAuth(authService *auth.Service) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := bearerToken(r)
			if token == "" {
				apierr.WriteError(w, apierr.NewUnauthorized())
				return
			}
			if err := authService.VerifyOperatorToken(token); err != nil {
				apierr.WriteError(w, err)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// IsOperator reports whether the request carries a valid operator token.
// Used where the token elevates privilege instead of gating the endpoint.
func IsOperator(authService *auth.Service, r *http.Request) bool {
	token := bearerToken(r)
	if token == "" {
		return false
	}
	return authService.VerifyOperatorToken(token) == nil
}

func bearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return parts[1]
}
