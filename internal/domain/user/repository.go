package user

import (
	"context"
)

// UserRepository defines data access methods for user records.
type UserRepository interface {
	Create(ctx context.Context, u User) (User, error)

	GetByID(ctx context.Context, id string) (User, error)

	GetByEmail(ctx context.Context, email string) (User, error)

	// List retrieves users; when activeOnly is true, deactivated accounts
	// are excluded.
	List(ctx context.Context, activeOnly bool) ([]User, error)

	Update(ctx context.Context, u User) error

	// Deactivate soft-deletes a user account.
	Deactivate(ctx context.Context, id string) error
}
