package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"github.com/matterai/timesheet-backend/internal/entity"
	"github.com/matterai/timesheet-backend/internal/pkg/response"
	"github.com/matterai/timesheet-backend/internal/usecase/auth"
	"go.uber.org/zap"
)

type userContextKey struct{}

// TokenVerifier checks bearer tokens and resolves their subject.
type TokenVerifier interface {
	VerifyToken(tokenString string) (*auth.Claims, error)
	CurrentUser(ctx context.Context, userID string) (*entity.UserDTO, error)
}

// Auth rejects requests without a valid bearer token and stores the
// resolved user in the request context.
func Auth(verifier TokenVerifier) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			header := r.Header.Get("Authorization")
			token, ok := strings.CutPrefix(header, "Bearer ")
			if !ok || token == "" {
				response.Error(w, http.StatusUnauthorized, "missing bearer token")
				return
			}

			claims, err := verifier.VerifyToken(token)
			if err != nil {
				ctxzap.Debug(ctx, "token rejected", zap.Error(err))
				response.Error(w, http.StatusUnauthorized, "invalid token")
				return
			}

			user, err := verifier.CurrentUser(ctx, claims.Subject)
			if err != nil {
				ctxzap.Debug(ctx, "token subject rejected", zap.Error(err))
				response.Error(w, http.StatusUnauthorized, "invalid token subject")
				return
			}

			next.ServeHTTP(w, r.WithContext(ContextWithUser(ctx, user)))
		})
	}
}

// RequireRole guards a subtree to the listed roles. Must run after Auth.
func RequireRole(roles ...entity.RoleName) func(next http.Handler) http.Handler {
	allowed := map[entity.RoleName]bool{}
	for _, role := range roles {
		allowed[role] = true
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, ok := UserFromContext(r.Context())
			if !ok || !allowed[user.Role] {
				response.Error(w, http.StatusForbidden, "insufficient role")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// ContextWithUser stores the resolved user for downstream handlers.
func ContextWithUser(ctx context.Context, user *entity.UserDTO) context.Context {
	return context.WithValue(ctx, userContextKey{}, user)
}

// UserFromContext returns the authenticated user stored by Auth.
func UserFromContext(ctx context.Context) (*entity.UserDTO, bool) {
	user, ok := ctx.Value(userContextKey{}).(*entity.UserDTO)
	return user, ok
}
