package middleware

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/qrkeep/qrkeep/internal/auth"
)

// SessionConfig holds configuration for the session auth middleware.
type SessionConfig struct {
	Logger *slog.Logger
	Tokens *auth.TokenService
	// CookieName is the session cookie carrying the token.
	CookieName string
}

// Session returns a middleware that authenticates requests from a signed
// session token. The token is read from the named cookie first, then from
// an "Authorization: Bearer" header; the cookie wins when both are
// present. Verified claims are attached to the request context as the
// caller's identity. Everything downstream trusts that identity.
func Session(cfg SessionConfig) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := extractToken(r, cfg.CookieName)
			if token == "" {
				cfg.Logger.Warn("authentication failed",
					slog.String("reason", "missing_token"),
					slog.String("ip", r.RemoteAddr),
					slog.String("endpoint", r.Method+" "+r.URL.Path),
					slog.String("request_id", GetRequestID(r.Context())),
				)
				writeSessionError(w, "not authenticated")
				return
			}

			claims, err := cfg.Tokens.Verify(token)
			if err != nil {
				cfg.Logger.Warn("authentication failed",
					slog.String("reason", "invalid_token"),
					slog.String("ip", r.RemoteAddr),
					slog.String("endpoint", r.Method+" "+r.URL.Path),
					slog.String("request_id", GetRequestID(r.Context())),
				)
				writeSessionError(w, "invalid or expired token")
				return
			}

			identity := &auth.Identity{
				UserID: claims.UserID,
				Email:  claims.Email,
				Name:   claims.Name,
			}

			ctx := auth.ContextWithIdentity(r.Context(), identity)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// extractToken locates the session token in the request.
// Cookie takes precedence over the bearer header.
func extractToken(r *http.Request, cookieName string) string {
	if cookie, err := r.Cookie(cookieName); err == nil && cookie.Value != "" {
		return cookie.Value
	}

	authHeader := r.Header.Get("Authorization")
	if strings.HasPrefix(authHeader, "Bearer ") {
		return strings.TrimPrefix(authHeader, "Bearer ")
	}

	return ""
}

// writeSessionError writes a 401 Unauthorized response.
func writeSessionError(w http.ResponseWriter, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_, _ = w.Write([]byte(`{"error":"` + message + `","code":"UNAUTHORIZED"}`))
}
