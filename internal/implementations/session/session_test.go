package session

import (
	"testing"
	"time"

	"accountd/internal/core/domain/user"

	"github.com/stretchr/testify/require"
)

const SECRET = "test-secret"

var NOW time.Time = time.Date(2022, 6, 15, 12, 30, 0, 0, time.UTC)

func TestIssueAndVerify(t *testing.T) {
	assert := require.New(t)
	issuer := NewJWTIssuer(SECRET, time.Hour, func() time.Time { return NOW })

	token, err := issuer.IssueToken(user.ID(42))
	assert.NoError(err)
	assert.NotEqual(user.SessionToken(""), token)

	userID, err := issuer.VerifyToken(token)
	assert.NoError(err)
	assert.Equal(user.ID(42), userID)
}

func TestVerifyRejectsExpiredToken(t *testing.T) {
	assert := require.New(t)
	issuer := NewJWTIssuer(SECRET, time.Hour, func() time.Time { return NOW })

	token, err := issuer.IssueToken(user.ID(42))
	assert.NoError(err)

	expired := NewJWTIssuer(SECRET, time.Hour, func() time.Time { return NOW.Add(time.Hour + time.Second) })
	_, err = expired.VerifyToken(token)
	assert.Error(err)
}

func TestVerifyRejectsWrongSecret(t *testing.T) {
	assert := require.New(t)
	issuer := NewJWTIssuer(SECRET, time.Hour, func() time.Time { return NOW })

	token, err := issuer.IssueToken(user.ID(42))
	assert.NoError(err)

	other := NewJWTIssuer("other-secret", time.Hour, func() time.Time { return NOW })
	_, err = other.VerifyToken(token)
	assert.Error(err)
}

func TestIssuedTokensDiffer(t *testing.T) {
	assert := require.New(t)
	issuer := NewJWTIssuer(SECRET, time.Hour, func() time.Time { return NOW })

	first, err := issuer.IssueToken(user.ID(42))
	assert.NoError(err)
	second, err := issuer.IssueToken(user.ID(42))
	assert.NoError(err)

	// jti claim makes every token unique
	assert.NotEqual(first, second)
}
