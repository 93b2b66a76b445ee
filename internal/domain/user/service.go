package user

import "context"

type UserService interface {
	Create(ctx context.Context, req CreateUserRequest) (UserResponse, error)
	Get(ctx context.Context, id string) (UserResponse, error)
	List(ctx context.Context, activeOnly bool) ([]UserResponse, error)
	Update(ctx context.Context, callerRole Role, req UpdateUserRequest) (UserResponse, error)
	SetProfilePhoto(ctx context.Context, userID, fileID string) (UserResponse, error)
	Deactivate(ctx context.Context, id string) error
}
