package verifypasswordresettoken

import (
	"context"
	c "pwreset/internal/core/domain/common"
	"pwreset/internal/core/domain/logging"
	"pwreset/internal/core/domain/user"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

const (
	EMAIL = c.Email("a@x.com")
	TOKEN = user.PasswordResetToken("T1")
)

var ISSUED_AT time.Time = time.Date(2020, 1, 1, 15, 0, 0, 0, time.UTC)

type suite struct {
	log      *logging.FakeLogger
	userRepo *user.FakeUserRepository
	now      time.Time
}

func setupSuite() *suite {
	userRepo := user.NewFakeUserRepository()
	u := user.User{ID: "user-1", Email: EMAIL, PasswordHash: "hash", CreatedAt: ISSUED_AT}
	u.StartPasswordReset(user.PasswordReset{Token: TOKEN, ExpiresAt: ISSUED_AT.Add(user.PasswordResetTTL)})
	userRepo.Users = []user.User{
		u,
		{ID: "user-2", Email: "no-reset@x.com", PasswordHash: "hash", CreatedAt: ISSUED_AT},
	}
	return &suite{
		log:      logging.NewFakeLogger(),
		userRepo: userRepo,
		now:      ISSUED_AT,
	}
}

func (s *suite) run(email c.Email, token user.PasswordResetToken) error {
	service := New(s.log, s.userRepo, user.NewFakePasswordResetter(func() time.Time { return s.now }))
	_, err := service.Run(context.Background(), Input{Email: email, Token: token})
	return err
}

func TestTokenValid(t *testing.T) {
	cases := []struct {
		id    string
		email c.Email
		now   time.Time
	}{
		{id: "just issued", email: EMAIL, now: ISSUED_AT},
		{id: "email in other case", email: c.NewEmail("A@X.Com"), now: ISSUED_AT.Add(time.Minute)},
		{id: "right before expiration", email: EMAIL, now: ISSUED_AT.Add(user.PasswordResetTTL)},
	}
	for _, testcase := range cases {
		t.Run(testcase.id, func(t *testing.T) {
			suite := setupSuite()
			suite.now = testcase.now

			err := suite.run(testcase.email, TOKEN)

			require.NoError(t, err)
		})
	}
}

func TestTokenInvalid(t *testing.T) {
	cases := []struct {
		id    string
		email c.Email
		token user.PasswordResetToken
		now   time.Time
	}{
		{id: "wrong email", email: "b@x.com", token: TOKEN, now: ISSUED_AT},
		{id: "wrong token", email: EMAIL, token: "T2", now: ISSUED_AT},
		{id: "expired token", email: EMAIL, token: TOKEN, now: ISSUED_AT.Add(16 * time.Minute)},
		{id: "no pending token", email: "no-reset@x.com", token: TOKEN, now: ISSUED_AT},
	}
	for _, testcase := range cases {
		t.Run(testcase.id, func(t *testing.T) {
			suite := setupSuite()
			suite.now = testcase.now

			err := suite.run(testcase.email, testcase.token)

			require.ErrorIs(t, err, user.ErrInvalidPasswordResetToken)
		})
	}
}

func TestVerificationDoesNotConsumeToken(t *testing.T) {
	suite := setupSuite()

	for i := 0; i < 3; i++ {
		require.NoError(t, suite.run(EMAIL, TOKEN))
	}
	require.Equal(t, 0, suite.userRepo.SaveCount)
}

func TestStoreError(t *testing.T) {
	suite := setupSuite()
	suite.userRepo.ReturnError = true

	err := suite.run(EMAIL, TOKEN)

	require.Error(t, err)
	require.NotErrorIs(t, err, user.ErrInvalidPasswordResetToken)
}
