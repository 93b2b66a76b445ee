package middleware

import (
	"context"

	"github.com/go-chi/jwtauth/v5"

	"github.com/e-Presensi-Politani/e-presensi-backend/internal/domain/auth"
	"github.com/e-Presensi-Politani/e-presensi-backend/internal/domain/user"
)

// Identity is the authenticated caller extracted from the access token.
type Identity struct {
	UserID string
	Email  string
	Role   user.Role
}

// IdentityFromContext reads the verified token claims placed on the request
// context by jwtauth.Verifier.
func IdentityFromContext(ctx context.Context) (Identity, error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return Identity{}, auth.ErrInvalidToken
	}

	userID, ok := claims["user_id"].(string)
	if !ok || userID == "" {
		return Identity{}, auth.ErrInvalidToken
	}

	email, _ := claims["email"].(string)
	role, ok := claims["role"].(string)
	if !ok {
		return Identity{}, auth.ErrInvalidToken
	}

	return Identity{
		UserID: userID,
		Email:  email,
		Role:   user.Role(role),
	}, nil
}
