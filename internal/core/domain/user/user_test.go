package user

import (
	"testing"
	"time"

	c "accountd/internal/core/domain/common"

	"github.com/stretchr/testify/require"
)

var NOW time.Time = time.Date(2022, 6, 15, 12, 30, 0, 0, time.UTC)

func validUser() User {
	return User{
		ID:           ID(1),
		Email:        "test@test.test",
		Username:     "testuser",
		PasswordHash: "test-hash",
		CreatedAt:    NOW,
	}
}

func TestValidate(t *testing.T) {
	assert := require.New(t)

	u := validUser()
	assert.NoError(u.Validate())

	u = validUser()
	u.Email = ""
	assert.Error(u.Validate())

	u = validUser()
	u.Username = ""
	assert.Error(u.Validate())

	u = validUser()
	u.PasswordHash = ""
	assert.Error(u.Validate())
}

func TestValidateResetTokenPair(t *testing.T) {
	assert := require.New(t)

	u := validUser()
	u.PasswordResetTokenHash = c.NewOptional(PasswordResetTokenHash("test"), true)
	assert.Error(u.Validate())

	u = validUser()
	u.PasswordResetTokenExpiresAt = c.NewOptional(NOW, true)
	assert.Error(u.Validate())

	u = validUser()
	u.PasswordResetTokenHash = c.NewOptional(PasswordResetTokenHash("test"), true)
	u.PasswordResetTokenExpiresAt = c.NewOptional(NOW.Add(time.Hour), true)
	assert.NoError(u.Validate())
}

func TestHasActiveResetToken(t *testing.T) {
	assert := require.New(t)

	u := validUser()
	assert.False(u.HasActiveResetToken(NOW))

	u.PasswordResetTokenHash = c.NewOptional(PasswordResetTokenHash("test"), true)
	u.PasswordResetTokenExpiresAt = c.NewOptional(NOW.Add(time.Hour), true)
	assert.True(u.HasActiveResetToken(NOW))
	assert.False(u.HasActiveResetToken(NOW.Add(time.Hour)))
	assert.False(u.HasActiveResetToken(NOW.Add(2*time.Hour)))
}
