// ABOUTME: HTTP middleware authenticating requests from bearer tokens
// ABOUTME: Evaluates an ordered rule list and fails closed on invalid tokens

package auth

import (
	"net/http"
	"strings"
)

// Rule declares whether a route requires authentication. Rules are evaluated
// in order before dispatch; the first match wins. A rule with an empty Method
// matches every method, and a Pattern ending in "/" matches by prefix.
type Rule struct {
	Method  string
	Pattern string
	Public  bool
}

// matches reports whether the rule applies to the given request.
func (r Rule) matches(method, path string) bool {
	if r.Method != "" && r.Method != method {
		return false
	}
	if strings.HasSuffix(r.Pattern, "/") {
		return strings.HasPrefix(path, r.Pattern)
	}
	return path == r.Pattern
}

// requiresAuth resolves the rule list for a request. Routes not covered by
// any rule require authentication.
func requiresAuth(rules []Rule, method, path string) bool {
	for _, rule := range rules {
		if rule.matches(method, path) {
			return !rule.Public
		}
	}
	return true
}

// extractBearerToken extracts a bearer token from the Authorization header.
// Returns the token and an error message (empty if successful).
func extractBearerToken(authHeader string) (string, string) {
	if authHeader == "" {
		return "", "missing authorization header"
	}
	if !strings.HasPrefix(authHeader, "Bearer ") {
		return "", "invalid authorization header format"
	}
	token := strings.TrimPrefix(authHeader, "Bearer ")
	if token == "" {
		return "", "empty token"
	}
	return token, ""
}

// Middleware creates an HTTP middleware that authenticates bearer tokens.
// Public routes pass through untouched. Protected routes require a token
// whose subject resolves to a principal in good standing; any failure ends
// the request with 401 immediately (fail closed). On success the Principal
// is attached to the request context and the request is forwarded exactly
// once.
func Middleware(rules []Rule, loader PrincipalLoader, codec *TokenCodec) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !requiresAuth(rules, r.Method, r.URL.Path) {
				next.ServeHTTP(w, r)
				return
			}

			token, errMsg := extractBearerToken(r.Header.Get("Authorization"))
			if errMsg != "" {
				unauthorized(w, "Credenciales inválidas")
				return
			}

			claims, err := codec.Parse(token)
			if err != nil {
				unauthorized(w, "Token inválido o expirado")
				return
			}

			principal, err := loader.LoadPrincipal(r.Context(), claims.Username)
			if err != nil {
				// An unrecognized subject is indistinguishable from a bad token
				unauthorized(w, "Token inválido o expirado")
				return
			}

			if !codec.Validate(token, principal) {
				unauthorized(w, "Token inválido o expirado")
				return
			}

			next.ServeHTTP(w, r.WithContext(WithPrincipal(r.Context(), principal)))
		})
	}
}

// unauthorized writes the 401 error body shared by all authentication
// failures. The message never names the failing check.
func unauthorized(w http.ResponseWriter, mensaje string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	w.Write([]byte(`{"error":"No autorizado","mensaje":"` + mensaje + `"}`))
}
