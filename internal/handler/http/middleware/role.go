package middleware

import (
	"net/http"

	"github.com/go-chi/jwtauth/v5"

	"github.com/e-Presensi-Politani/e-presensi-backend/internal/domain/user"
	"github.com/e-Presensi-Politani/e-presensi-backend/internal/handler/http/response"
)

// AdminOnly requires the admin role
func AdminOnly(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, claims, err := jwtauth.FromContext(r.Context())
		if err != nil {
			response.HandleError(w, user.ErrAdminAccessRequired)
			return
		}

		role, ok := claims["role"].(string)
		if !ok {
			response.HandleError(w, user.ErrAdminAccessRequired)
			return
		}

		if role != string(user.RoleAdmin) {
			response.HandleError(w, user.ErrAdminAccessRequired)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// KajurOrAdmin requires the kajur or admin role
func KajurOrAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, claims, err := jwtauth.FromContext(r.Context())
		if err != nil {
			response.HandleError(w, user.ErrKajurAccessRequired)
			return
		}

		roleStr, ok := claims["role"].(string)
		if !ok {
			response.HandleError(w, user.ErrKajurAccessRequired)
			return
		}

		role := user.Role(roleStr)
		if role != user.RoleKajur && role != user.RoleAdmin {
			response.HandleError(w, user.ErrKajurAccessRequired)
			return
		}

		next.ServeHTTP(w, r)
	})
}
