package user

import (
	"crypto/subtle"
	c "pwreset/internal/core/domain/common"
	e "pwreset/internal/core/domain/errors"
	"time"
)

type ID string

type PasswordHash string

func (p PasswordHash) String() string {
	return "***"
}

type RawPassword string

func (p RawPassword) String() string {
	return "***"
}

type User struct {
	ID            ID
	Email         c.Email
	PasswordHash  PasswordHash
	PasswordReset c.Optional[PasswordReset]
	CreatedAt     time.Time
}

func (u *User) Validate() error {
	if u.ID == "" {
		return e.NewInvalidStateError("user ID is not set")
	}
	if u.Email == "" {
		return e.NewInvalidStateError("email is not set for user %s", u.ID)
	}
	if u.PasswordHash == "" {
		return e.NewInvalidStateError("password hash is not set for user %s", u.ID)
	}
	if u.PasswordReset.IsPresent {
		if u.PasswordReset.Value.Token == "" {
			return e.NewInvalidStateError("password reset token is empty for user %s", u.ID)
		}
		if u.PasswordReset.Value.ExpiresAt.IsZero() {
			return e.NewInvalidStateError("password reset expiration is not set for user %s", u.ID)
		}
	}
	return nil
}

func (u *User) HasPendingPasswordReset() bool {
	return u.PasswordReset.IsPresent
}

// StartPasswordReset replaces any pending reset, so the previous token
// becomes unusable.
func (u *User) StartPasswordReset(reset PasswordReset) {
	u.PasswordReset = c.NewOptional(reset, true)
}

func (u *User) CompletePasswordReset(newPasswordHash PasswordHash) {
	u.PasswordHash = newPasswordHash
	u.PasswordReset = c.None[PasswordReset]()
}

// IsPasswordResetTokenValid reports whether token matches the pending reset
// and the reset has not expired at the moment now.
func (u *User) IsPasswordResetTokenValid(token PasswordResetToken, now time.Time) bool {
	if !u.PasswordReset.IsPresent || token == "" {
		return false
	}
	reset := u.PasswordReset.Value
	if subtle.ConstantTimeCompare([]byte(reset.Token), []byte(token)) != 1 {
		return false
	}
	return !now.After(reset.ExpiresAt)
}
