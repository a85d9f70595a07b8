package user

import (
	"context"
	"time"
)

// PasswordResetTTL is the fixed lifetime of a password reset token.
const PasswordResetTTL = 15 * time.Minute

type PasswordResetToken string

type PasswordReset struct {
	Token     PasswordResetToken
	ExpiresAt time.Time
}

type PasswordResetter interface {
	NewPasswordReset() (PasswordReset, error)
	ValidateToken(u User, token PasswordResetToken) bool
}

type PasswordResetTokenSender interface {
	SendPasswordResetToken(ctx context.Context, u User, token PasswordResetToken) error
}

type PasswordHasher interface {
	HashPassword(password RawPassword) (PasswordHash, error)
	ValidatePassword(password RawPassword, hash PasswordHash) bool
}
