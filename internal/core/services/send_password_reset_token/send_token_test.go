package sendpasswordresettoken

import (
	"context"
	"errors"
	"fmt"
	c "pwreset/internal/core/domain/common"
	"pwreset/internal/core/domain/logging"
	uow "pwreset/internal/core/domain/unit_of_work"
	"pwreset/internal/core/domain/user"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
)

var errTest = fmt.Errorf("test error")

type stubService struct {
	result Result
	err    error
}

func (s *stubService) Run(ctx context.Context, input Input) (Result, error) {
	return s.result, s.err
}

type testSendingSuite struct {
	suite.Suite
	Logger *logging.FakeLogger
	Sender *user.FakePasswordResetTokenSender
}

func (suite *testSendingSuite) SetupTest() {
	suite.Logger = logging.NewFakeLogger()
	suite.Sender = user.NewFakePasswordResetTokenSender()
}

func TestSendTokenService(t *testing.T) {
	suite.Run(t, new(testSendingSuite))
}

func (suite *testSendingSuite) TestTokenSent() {
	u := user.User{ID: USER_ID, Email: EMAIL, PasswordHash: "hash"}
	u.StartPasswordReset(user.PasswordReset{Token: "T1", ExpiresAt: NOW.Add(user.PasswordResetTTL)})
	service := NewWithTokenSending(
		suite.Logger,
		suite.Sender,
		&stubService{result: Result{User: c.NewOptional(u, true)}},
	)

	_, err := service.Run(context.Background(), Input{Email: EMAIL})

	assert := suite.Require()
	assert.Nil(err)
	assert.Equal(1, suite.Sender.SentCount())
	assert.Equal(user.PasswordResetToken("T1"), suite.Sender.Sent[0])
	assert.Equal(EMAIL, suite.Sender.SentTo[0].Email)
}

func (suite *testSendingSuite) TestNothingSentForUnknownEmail() {
	service := NewWithTokenSending(suite.Logger, suite.Sender, &stubService{})

	result, err := service.Run(context.Background(), Input{Email: EMAIL})

	assert := suite.Require()
	assert.Nil(err)
	assert.False(result.User.IsPresent)
	assert.Equal(0, suite.Sender.SentCount())
}

func (suite *testSendingSuite) TestNothingSentIfInnerServiceFails() {
	service := NewWithTokenSending(suite.Logger, suite.Sender, &stubService{err: errTest})

	_, err := service.Run(context.Background(), Input{Email: EMAIL})

	assert := suite.Require()
	assert.True(errors.Is(err, errTest))
	assert.Equal(0, suite.Sender.SentCount())
}

func (suite *testSendingSuite) TestSendingFailureIsSurfacedAndTokenKept() {
	unitOfWork := uow.NewFakeUnitOfWork()
	unitOfWork.Context.UserRepository.Users = []user.User{
		{ID: USER_ID, Email: EMAIL, PasswordHash: user.PasswordHash("hash"), CreatedAt: NOW},
	}
	suite.Sender.ReturnError = true
	service := NewWithTokenSending(
		suite.Logger,
		suite.Sender,
		New(suite.Logger, unitOfWork, user.NewFakePasswordResetter(func() time.Time { return NOW })),
	)

	_, err := service.Run(context.Background(), Input{Email: EMAIL})

	assert := suite.Require()
	assert.ErrorIs(err, user.ErrPasswordResetTokenNotSent)
	stored, getErr := unitOfWork.Context.UserRepository.GetByID(context.Background(), USER_ID)
	assert.Nil(getErr)
	assert.True(stored.IsPasswordResetTokenValid("token-1", NOW))
	assert.Equal(1, suite.Logger.CountByLevel(logging.ERROR))
}
