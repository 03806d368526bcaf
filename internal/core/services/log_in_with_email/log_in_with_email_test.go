package loginwithemail

import (
	"context"
	"errors"
	"testing"
	"time"

	c "accountd/internal/core/domain/common"
	"accountd/internal/core/domain/logging"
	"accountd/internal/core/domain/user"
	"accountd/internal/core/services"

	"github.com/stretchr/testify/suite"
)

const (
	USER_ID       = user.ID(42)
	EMAIL         = c.Email("test@test.test")
	RAW_PASSWORD  = user.RawPassword("test-password")
	SESSION_TOKEN = "test-session-token"
)

type testSuite struct {
	suite.Suite
	Logger             *logging.FakeLogger
	UserRepository     *user.FakeUserRepository
	PasswordHasher     *user.FakePasswordHasher
	SessionTokenIssuer *user.FakeSessionTokenIssuer
	Service            services.Service[Input, Result]
}

func (suite *testSuite) SetupTest() {
	suite.Logger = logging.NewFakeLogger()
	suite.UserRepository = user.NewFakeUserRepository()
	suite.PasswordHasher = user.NewFakePasswordHasher()
	suite.SessionTokenIssuer = user.NewFakeSessionTokenIssuer(SESSION_TOKEN)
	suite.Service = New(
		suite.Logger,
		suite.UserRepository,
		suite.PasswordHasher,
		suite.SessionTokenIssuer,
	)

	passwordHash, err := suite.PasswordHasher.HashPassword(RAW_PASSWORD)
	if err != nil {
		panic(err)
	}
	suite.UserRepository.Users = []user.User{
		{
			ID:           USER_ID,
			Email:        EMAIL,
			Username:     "testuser",
			PasswordHash: passwordHash,
			CreatedAt:    time.Now().UTC(),
		},
	}
}

func TestLogInWithEmailService(t *testing.T) {
	suite.Run(t, new(testSuite))
}

func (suite *testSuite) TestSuccess() {
	result, err := suite.Service.Run(
		context.Background(),
		Input{Email: EMAIL, Password: RAW_PASSWORD},
	)

	assert := suite.Require()
	assert.Nil(err)
	assert.Equal(USER_ID, result.User.ID)
	assert.NotEqual(user.SessionToken(""), result.Token)
}

func (suite *testSuite) TestUnknownEmail() {
	_, err := suite.Service.Run(
		context.Background(),
		Input{Email: "unknown@test.test", Password: RAW_PASSWORD},
	)

	suite.Require().True(errors.Is(err, user.ErrInvalidCredentials))
}

func (suite *testSuite) TestInvalidPassword() {
	_, err := suite.Service.Run(
		context.Background(),
		Input{Email: EMAIL, Password: "invalid-password"},
	)

	suite.Require().True(errors.Is(err, user.ErrInvalidCredentials))
}

func (suite *testSuite) TestTokenIssuerError() {
	suite.SessionTokenIssuer.ReturnError = true

	_, err := suite.Service.Run(
		context.Background(),
		Input{Email: EMAIL, Password: RAW_PASSWORD},
	)

	assert := suite.Require()
	assert.NotNil(err)
	assert.False(errors.Is(err, user.ErrInvalidCredentials))
}
