package user

import (
	"context"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/e-Presensi-Politani/e-presensi-backend/internal/domain/file"
	"github.com/e-Presensi-Politani/e-presensi-backend/internal/domain/user"
)

type UserServiceImpl struct {
	user.UserRepository
	file.FileRepository
}

func NewUserService(userRepository user.UserRepository, fileRepository file.FileRepository) *UserServiceImpl {
	return &UserServiceImpl{
		UserRepository: userRepository,
		FileRepository: fileRepository,
	}
}

// Create registers a new user account. Admin only, enforced by the caller.
func (s *UserServiceImpl) Create(ctx context.Context, req user.CreateUserRequest) (user.UserResponse, error) {
	if err := req.Validate(); err != nil {
		return user.UserResponse{}, err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return user.UserResponse{}, err
	}

	u := user.User{
		ID:          uuid.NewString(),
		FullName:    req.FullName,
		Email:       strings.ToLower(req.Email),
		Password:    string(hashed),
		NIP:         req.NIP,
		PhoneNumber: req.PhoneNumber,
		Role:        user.Role(strings.ToLower(req.Role)),
		Position:    req.Position,
		IsActive:    true,
	}

	created, err := s.UserRepository.Create(ctx, u)
	if err != nil {
		return user.UserResponse{}, err
	}

	slog.Info("User created", "user_id", created.ID, "role", created.Role)
	return user.ToResponse(created), nil
}

// Get returns one user's profile.
func (s *UserServiceImpl) Get(ctx context.Context, id string) (user.UserResponse, error) {
	u, err := s.UserRepository.GetByID(ctx, id)
	if err != nil {
		return user.UserResponse{}, err
	}
	return user.ToResponse(u), nil
}

// List returns user profiles, optionally only active accounts.
func (s *UserServiceImpl) List(ctx context.Context, activeOnly bool) ([]user.UserResponse, error) {
	users, err := s.UserRepository.List(ctx, activeOnly)
	if err != nil {
		return nil, err
	}

	responses := make([]user.UserResponse, 0, len(users))
	for _, u := range users {
		responses = append(responses, user.ToResponse(u))
	}

	return responses, nil
}

// Update edits a profile. Role changes are admin-only, enforced here so a
// user editing their own profile cannot escalate.
func (s *UserServiceImpl) Update(ctx context.Context, callerRole user.Role, req user.UpdateUserRequest) (user.UserResponse, error) {
	if err := req.Validate(); err != nil {
		return user.UserResponse{}, err
	}

	u, err := s.UserRepository.GetByID(ctx, req.ID)
	if err != nil {
		return user.UserResponse{}, err
	}

	if req.FullName != nil {
		u.FullName = *req.FullName
	}
	if req.PhoneNumber != nil {
		u.PhoneNumber = req.PhoneNumber
	}
	if req.Position != nil {
		u.Position = req.Position
	}
	if req.Role != nil {
		if callerRole != user.RoleAdmin {
			return user.UserResponse{}, user.ErrAdminAccessRequired
		}
		u.Role = user.Role(strings.ToLower(*req.Role))
	}

	if err := s.UserRepository.Update(ctx, u); err != nil {
		return user.UserResponse{}, err
	}

	return user.ToResponse(u), nil
}

// SetProfilePhoto links an uploaded image to the user's profile.
func (s *UserServiceImpl) SetProfilePhoto(ctx context.Context, userID, fileID string) (user.UserResponse, error) {
	u, err := s.UserRepository.GetByID(ctx, userID)
	if err != nil {
		return user.UserResponse{}, err
	}

	f, err := s.FileRepository.GetByID(ctx, fileID)
	if err != nil {
		return user.UserResponse{}, err
	}
	if f.OwnerID != userID {
		return user.UserResponse{}, file.ErrNotFileOwner
	}

	if err := s.FileRepository.Link(ctx, fileID, file.RelatedUser, userID); err != nil {
		return user.UserResponse{}, err
	}

	u.ProfileImageID = &fileID
	if err := s.UserRepository.Update(ctx, u); err != nil {
		return user.UserResponse{}, err
	}

	return user.ToResponse(u), nil
}

// Deactivate soft-deletes an account. Admin only, enforced by the caller.
func (s *UserServiceImpl) Deactivate(ctx context.Context, id string) error {
	if err := s.UserRepository.Deactivate(ctx, id); err != nil {
		return err
	}
	slog.Info("User deactivated", "user_id", id)
	return nil
}
