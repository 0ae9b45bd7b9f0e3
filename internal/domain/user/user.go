package user

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

var ErrUserNotFound = errors.New("user not found")

type User struct {
	ID           uuid.UUID  `json:"id"`
	Email        string     `json:"email"`
	Name         *string    `json:"name"`
	PasswordHash string     `json:"-"`
	OnboardedAt  *time.Time `json:"onboarded_at"`
	CreatedAt    time.Time  `json:"created_at"`
}

// Onboarded reports whether the account finished the onboarding wizard.
func (u *User) Onboarded() bool {
	return u.OnboardedAt != nil
}

type Repository interface {
	Create(ctx context.Context, u *User) error
	FindByEmail(ctx context.Context, email string) (*User, error)
	FindByID(ctx context.Context, id uuid.UUID) (*User, error)
}
