package user

import (
	"context"
	"crypto/md5"
	"fmt"
	"io"
	c "pwreset/internal/core/domain/common"
	"sync"
	"time"
)

type FakePasswordHasher struct{}

func NewFakePasswordHasher() *FakePasswordHasher {
	return &FakePasswordHasher{}
}

func (h *FakePasswordHasher) HashPassword(password RawPassword) (PasswordHash, error) {
	hash := md5.New()
	io.WriteString(hash, string(password))
	return PasswordHash(fmt.Sprintf("%x", hash.Sum(nil))), nil
}

func (h *FakePasswordHasher) ValidatePassword(password RawPassword, hash PasswordHash) bool {
	actualHash, err := h.HashPassword(password)
	if err != nil {
		return false
	}
	return actualHash == hash
}

type FakeUserRepository struct {
	Users       []User
	SaveCount   int
	ReturnError bool
	lock        sync.Mutex
}

func NewFakeUserRepository() *FakeUserRepository {
	return &FakeUserRepository{Users: make([]User, 0, 10)}
}

func (r *FakeUserRepository) Create(ctx context.Context, input CreateUserInput) (u User, err error) {
	if r.ReturnError {
		return u, fmt.Errorf("could not create user %v", input)
	}
	r.lock.Lock()
	defer r.lock.Unlock()
	for _, u := range r.Users {
		if u.Email == input.Email {
			return u, ErrEmailAlreadyExists
		}
	}
	u = User{
		ID:           ID(fmt.Sprintf("user-%d", len(r.Users)+1)),
		Email:        input.Email,
		PasswordHash: input.PasswordHash,
		CreatedAt:    input.CreatedAt,
	}
	r.Users = append(r.Users, u)
	return u, nil
}

func (r *FakeUserRepository) GetByID(ctx context.Context, id ID) (u User, err error) {
	if r.ReturnError {
		return u, fmt.Errorf("could not get user by ID %v", id)
	}
	r.lock.Lock()
	defer r.lock.Unlock()
	for _, u := range r.Users {
		if u.ID == id {
			return u, nil
		}
	}
	return u, ErrUserDoesNotExist
}

func (r *FakeUserRepository) GetByEmail(ctx context.Context, email c.Email) (u User, err error) {
	if r.ReturnError {
		return u, fmt.Errorf("could not get user by email %v", email)
	}
	r.lock.Lock()
	defer r.lock.Unlock()
	for _, u := range r.Users {
		if u.Email == email {
			return u, nil
		}
	}
	return u, ErrUserDoesNotExist
}

func (r *FakeUserRepository) GetByEmailForUpdate(ctx context.Context, email c.Email) (User, error) {
	return r.GetByEmail(ctx, email)
}

func (r *FakeUserRepository) Save(ctx context.Context, u User) error {
	if r.ReturnError {
		return fmt.Errorf("could not save user %v", u.ID)
	}
	r.lock.Lock()
	defer r.lock.Unlock()
	r.SaveCount++
	for ix, existing := range r.Users {
		if existing.ID == u.ID {
			r.Users[ix] = u
			return nil
		}
	}
	r.Users = append(r.Users, u)
	return nil
}

// FakePasswordResetter issues predictable tokens "token-1", "token-2", ...
// and validates them against the injected clock.
type FakePasswordResetter struct {
	Now         func() time.Time
	ReturnError bool
	issued      int
}

func NewFakePasswordResetter(now func() time.Time) *FakePasswordResetter {
	return &FakePasswordResetter{Now: now}
}

func (r *FakePasswordResetter) NewPasswordReset() (reset PasswordReset, err error) {
	if r.ReturnError {
		return reset, fmt.Errorf("could not generate password reset token")
	}
	r.issued++
	return PasswordReset{
		Token:     PasswordResetToken(fmt.Sprintf("token-%d", r.issued)),
		ExpiresAt: r.Now().Add(PasswordResetTTL),
	}, nil
}

func (r *FakePasswordResetter) ValidateToken(u User, token PasswordResetToken) bool {
	return u.IsPasswordResetTokenValid(token, r.Now())
}

type FakePasswordResetTokenSender struct {
	Sent        []PasswordResetToken
	SentTo      []User
	ReturnError bool
	lock        sync.Mutex
}

func NewFakePasswordResetTokenSender() *FakePasswordResetTokenSender {
	return &FakePasswordResetTokenSender{}
}

func (s *FakePasswordResetTokenSender) SendPasswordResetToken(
	ctx context.Context,
	u User,
	token PasswordResetToken,
) error {
	if s.ReturnError {
		return fmt.Errorf("could not send password reset token")
	}
	s.lock.Lock()
	defer s.lock.Unlock()
	s.Sent = append(s.Sent, token)
	s.SentTo = append(s.SentTo, u)
	return nil
}

func (s *FakePasswordResetTokenSender) SentCount() int {
	s.lock.Lock()
	defer s.lock.Unlock()
	return len(s.Sent)
}
