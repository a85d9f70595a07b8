package passwordresetter

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"io"
	"pwreset/internal/core/domain/user"
	"time"
)

// TokenBytes is the amount of entropy in a token; the token itself is its
// hex encoding.
const TokenBytes = 32

type Random struct {
	random        io.Reader
	validDuration time.Duration
	now           func() time.Time
}

func NewRandom(validDuration time.Duration, now func() time.Time) *Random {
	return newRandom(rand.Reader, validDuration, now)
}

func newRandom(random io.Reader, validDuration time.Duration, now func() time.Time) *Random {
	return &Random{random: random, validDuration: validDuration, now: now}
}

func (r *Random) NewPasswordReset() (reset user.PasswordReset, err error) {
	b := make([]byte, TokenBytes)
	if _, err := io.ReadFull(r.random, b); err != nil {
		return reset, fmt.Errorf("could not read random bytes: %w", err)
	}
	return user.PasswordReset{
		Token:     user.PasswordResetToken(hex.EncodeToString(b)),
		ExpiresAt: r.now().Add(r.validDuration),
	}, nil
}

func (r *Random) ValidateToken(u user.User, token user.PasswordResetToken) bool {
	return u.IsPasswordResetTokenValid(token, r.now())
}
