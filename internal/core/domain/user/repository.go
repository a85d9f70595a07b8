package user

import (
	"context"
	c "pwreset/internal/core/domain/common"
	"time"
)

type CreateUserInput struct {
	Email        c.Email
	PasswordHash PasswordHash
	CreatedAt    time.Time
}

type UserRepository interface {
	Create(ctx context.Context, input CreateUserInput) (User, error)
	GetByID(ctx context.Context, id ID) (User, error)
	GetByEmail(ctx context.Context, email c.Email) (User, error)
	// GetByEmailForUpdate locks the record until the enclosing unit of work
	// is committed or rolled back.
	GetByEmailForUpdate(ctx context.Context, email c.Email) (User, error)
	// Save writes the whole record, inserting it if it does not exist yet.
	Save(ctx context.Context, u User) error
}
