package auth

import (
	"context"

	"github.com/e-Presensi-Politani/e-presensi-backend/internal/domain/user"
)

type AuthService interface {
	Login(ctx context.Context, req LoginRequest) (TokenResponse, user.UserResponse, error)
	Refresh(ctx context.Context, refreshToken string) (AccessTokenResponse, error)
	Logout(ctx context.Context, refreshToken string)
	ChangePassword(ctx context.Context, userID string, req ChangePasswordRequest) error
}
