package http

import (
	"context"
	"net/http"
	"os"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/votehub/api/internal/core/ports"
)

type contextKey string

const (
	UserIDKey contextKey = "userID"
	RoleKey   contextKey = "role"
)

// AuthMiddleware resolves the caller identity from the access_token
// cookie issued by the auth service. Tokens are HS256 with the user
// id in "sub" and an optional "role" claim.
func AuthMiddleware(next http.Handler) http.Handler {
	secret := []byte(os.Getenv("JWT_SECRET"))

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cookie, err := r.Cookie("access_token")
		if err != nil {
			http.Error(w, "Unauthorized: missing access token", http.StatusUnauthorized)
			return
		}

		token, err := jwt.Parse(cookie.Value, func(t *jwt.Token) (any, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrSignatureInvalid
			}
			return secret, nil
		})
		if err != nil || !token.Valid {
			http.Error(w, "Unauthorized: invalid access token", http.StatusUnauthorized)
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			http.Error(w, "Unauthorized: invalid claims", http.StatusUnauthorized)
			return
		}

		sub, err := claims.GetSubject()
		if err != nil {
			http.Error(w, "Unauthorized: missing subject", http.StatusUnauthorized)
			return
		}
		userID, err := uuid.Parse(sub)
		if err != nil {
			http.Error(w, "Unauthorized: invalid subject", http.StatusUnauthorized)
			return
		}

		role, _ := claims["role"].(string)

		ctx := context.WithValue(r.Context(), UserIDKey, userID)
		ctx = context.WithValue(ctx, RoleKey, role)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// actorFromContext returns the caller identity the middleware stored.
func actorFromContext(ctx context.Context) (ports.Actor, bool) {
	userID, ok := ctx.Value(UserIDKey).(uuid.UUID)
	if !ok {
		return ports.Actor{}, false
	}
	role, _ := ctx.Value(RoleKey).(string)
	return ports.Actor{ID: userID, Role: role}, true
}
