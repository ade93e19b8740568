package user

import (
	"context"
)

// Repository is the credential store. FindByEmail returns ErrNotFound for an
// unknown email and Create returns ErrAlreadyExists for a taken one.
type Repository interface {
	Create(ctx context.Context, email, passwordHash string) (string, error)
	FindByEmail(ctx context.Context, email string) (User, error)
}

// Hasher is a one-way salted password hash.
type Hasher interface {
	Hash(password string) (string, error)
	Verify(password, hash string) bool
}
