package auth

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/e-Presensi-Politani/e-presensi-backend/internal/domain/auth"
	"github.com/e-Presensi-Politani/e-presensi-backend/internal/domain/user"
	"github.com/e-Presensi-Politani/e-presensi-backend/internal/pkg/jwt"
)

type fakeUserRepo struct {
	users map[string]user.User
}

func (r *fakeUserRepo) Create(_ context.Context, u user.User) (user.User, error) {
	r.users[u.ID] = u
	return u, nil
}

func (r *fakeUserRepo) GetByID(_ context.Context, id string) (user.User, error) {
	u, ok := r.users[id]
	if !ok {
		return user.User{}, user.ErrUserNotFound
	}
	return u, nil
}

func (r *fakeUserRepo) GetByEmail(_ context.Context, email string) (user.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return u, nil
		}
	}
	return user.User{}, user.ErrUserNotFound
}

func (r *fakeUserRepo) List(_ context.Context, _ bool) ([]user.User, error) { return nil, nil }

func (r *fakeUserRepo) Update(_ context.Context, u user.User) error {
	if _, ok := r.users[u.ID]; !ok {
		return user.ErrUserNotFound
	}
	r.users[u.ID] = u
	return nil
}

func (r *fakeUserRepo) Deactivate(_ context.Context, _ string) error { return nil }

func newAuthTestEnv(t *testing.T) (*AuthServiceImpl, *fakeUserRepo) {
	t.Helper()

	hashed, err := bcrypt.GenerateFromPassword([]byte("str0ngpassword"), bcrypt.MinCost)
	require.NoError(t, err)

	repo := &fakeUserRepo{users: map[string]user.User{
		"user-1": {
			ID:       "user-1",
			Email:    "rina.wulandari@politani.ac.id",
			Password: string(hashed),
			Role:     user.RoleDosen,
			IsActive: true,
		},
		"user-2": {
			ID:       "user-2",
			Email:    "former.staff@politani.ac.id",
			Password: string(hashed),
			Role:     user.RoleDosen,
			IsActive: false,
		},
	}}

	jwtSvc := jwt.NewJWTService("test-secret", "15m", "168h")
	return NewAuthService(repo, jwtSvc), repo
}

func TestLogin(t *testing.T) {
	svc, _ := newAuthTestEnv(t)

	tokens, u, err := svc.Login(context.Background(), auth.LoginRequest{
		Email:    "rina.wulandari@politani.ac.id",
		Password: "str0ngpassword",
	})
	require.NoError(t, err)

	assert.NotEmpty(t, tokens.AccessToken)
	assert.NotEmpty(t, tokens.RefreshToken)
	assert.Greater(t, tokens.AccessTokenExpiresIn, int64(0))
	assert.Equal(t, "user-1", u.ID)
}

func TestLogin_WrongPassword(t *testing.T) {
	svc, _ := newAuthTestEnv(t)

	_, _, err := svc.Login(context.Background(), auth.LoginRequest{
		Email:    "rina.wulandari@politani.ac.id",
		Password: "wrongpassword",
	})
	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
}

func TestLogin_UnknownEmail(t *testing.T) {
	svc, _ := newAuthTestEnv(t)

	_, _, err := svc.Login(context.Background(), auth.LoginRequest{
		Email:    "nobody@politani.ac.id",
		Password: "str0ngpassword",
	})
	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
}

func TestLogin_InactiveAccount(t *testing.T) {
	svc, _ := newAuthTestEnv(t)

	_, _, err := svc.Login(context.Background(), auth.LoginRequest{
		Email:    "former.staff@politani.ac.id",
		Password: "str0ngpassword",
	})
	assert.ErrorIs(t, err, auth.ErrAccountInactive)
}

func TestRefresh(t *testing.T) {
	svc, _ := newAuthTestEnv(t)

	tokens, _, err := svc.Login(context.Background(), auth.LoginRequest{
		Email:    "rina.wulandari@politani.ac.id",
		Password: "str0ngpassword",
	})
	require.NoError(t, err)

	refreshed, err := svc.Refresh(context.Background(), tokens.RefreshToken)
	require.NoError(t, err)
	assert.NotEmpty(t, refreshed.AccessToken)

	// Access tokens must not pass as refresh tokens.
	_, err = svc.Refresh(context.Background(), tokens.AccessToken)
	assert.ErrorIs(t, err, auth.ErrInvalidToken)
}

func TestRefresh_RevokedToken(t *testing.T) {
	svc, _ := newAuthTestEnv(t)

	tokens, _, err := svc.Login(context.Background(), auth.LoginRequest{
		Email:    "rina.wulandari@politani.ac.id",
		Password: "str0ngpassword",
	})
	require.NoError(t, err)

	svc.Logout(context.Background(), tokens.RefreshToken)

	_, err = svc.Refresh(context.Background(), tokens.RefreshToken)
	assert.ErrorIs(t, err, auth.ErrInvalidToken)
}

func TestChangePassword(t *testing.T) {
	svc, repo := newAuthTestEnv(t)

	err := svc.ChangePassword(context.Background(), "user-1", auth.ChangePasswordRequest{
		CurrentPassword: "wrongpassword",
		NewPassword:     "an0thersecret",
		ConfirmPassword: "an0thersecret",
	})
	assert.ErrorIs(t, err, auth.ErrWrongPassword)

	err = svc.ChangePassword(context.Background(), "user-1", auth.ChangePasswordRequest{
		CurrentPassword: "str0ngpassword",
		NewPassword:     "an0thersecret",
		ConfirmPassword: "an0thersecret",
	})
	require.NoError(t, err)

	stored := repo.users["user-1"]
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.Password), []byte("an0thersecret")))
}
