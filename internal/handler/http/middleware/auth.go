package middleware

import (
	"net/http"

	"github.com/go-chi/jwtauth/v5"

	"github.com/kita-hr/leave-backend-go/internal/domain/auth"
	"github.com/kita-hr/leave-backend-go/internal/handler/http/response"
)

func AuthRequired(ja *jwtauth.JWTAuth) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		hfn := func(w http.ResponseWriter, r *http.Request) {
			token, _, err := jwtauth.FromContext(r.Context())

			if err != nil {
				response.Unauthorized(w, err.Error())
				return
			}

			if token == nil {
				response.HandleError(w, auth.ErrInvalidToken)
				return
			}

			claims, err := token.AsMap(r.Context())
			if err != nil {
				response.HandleError(w, auth.ErrInvalidToken)
				return
			}
			tokenType, ok := claims["type"].(string)
			if tokenType != "access" || !ok {
				response.HandleError(w, auth.ErrInvalidToken)
				return
			}

			next.ServeHTTP(w, r)
		}
		return http.HandlerFunc(hfn)
	}
}

// UserID extracts the authenticated user's ID from the token claims.
func UserID(r *http.Request) string {
	_, claims, err := jwtauth.FromContext(r.Context())
	if err != nil {
		return ""
	}
	id, _ := claims["user_id"].(string)
	return id
}

// UserRole extracts the authenticated user's role from the token claims.
func UserRole(r *http.Request) string {
	_, claims, err := jwtauth.FromContext(r.Context())
	if err != nil {
		return ""
	}
	role, _ := claims["role"].(string)
	return role
}
