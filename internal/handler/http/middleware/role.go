package middleware

import (
	"fmt"
	"net/http"

	"github.com/go-chi/jwtauth/v5"

	"github.com/kita-hr/leave-backend-go/internal/domain/user"
	"github.com/kita-hr/leave-backend-go/internal/handler/http/response"
)

// RequireHR requires the HR_ADMIN role
func RequireHR(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, claims, err := jwtauth.FromContext(r.Context())
		if err != nil {
			response.HandleError(w, user.ErrHRAccessRequired)
			return
		}

		roleStr, ok := claims["role"].(string)
		if !ok {
			response.HandleError(w, user.ErrHRAccessRequired)
			return
		}

		if user.Role(roleStr) != user.RoleHRAdmin {
			response.HandleError(w, user.ErrHRAccessRequired)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// RequirePermission checks if the user's role grants a specific permission
func RequirePermission(permission user.Permission) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, claims, err := jwtauth.FromContext(r.Context())
			if err != nil {
				response.Forbidden(w, fmt.Sprintf("Insufficient permissions: required '%s'", permission))
				return
			}

			roleStr, ok := claims["role"].(string)
			if !ok {
				response.Forbidden(w, fmt.Sprintf("Insufficient permissions: required '%s'", permission))
				return
			}

			role := user.Role(roleStr)
			if !user.HasPermission(role, permission) {
				response.Forbidden(w, fmt.Sprintf("Insufficient permissions: required '%s', but user role is '%s'", permission, role))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// RequireManager requires the MANAGER or HR_ADMIN role
func RequireManager(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, claims, err := jwtauth.FromContext(r.Context())
		if err != nil {
			response.HandleError(w, user.ErrManagerAccessRequired)
			return
		}

		roleStr, ok := claims["role"].(string)
		if !ok {
			response.HandleError(w, user.ErrManagerAccessRequired)
			return
		}

		role := user.Role(roleStr)
		if role != user.RoleManager && role != user.RoleHRAdmin {
			response.HandleError(w, user.ErrManagerAccessRequired)
			return
		}

		next.ServeHTTP(w, r)
	})
}
