package user

import (
	c "accountd/internal/core/domain/common"
	e "accountd/internal/core/domain/errors"
	"fmt"
	"time"
)

type ID int64

type Username string

type PasswordHash string

func (p PasswordHash) String() string {
	return "***"
}

type RawPassword string

func (p RawPassword) String() string {
	return "***"
}

// User is the account record. PasswordResetTokenHash and
// PasswordResetTokenExpiresAt are set together while a password reset
// request is outstanding and cleared together when the token is consumed.
// An expired pair is never swept by a background process, it is rejected
// lazily at consume time.
type User struct {
	ID                          ID
	Email                       c.Email
	Username                    Username
	PasswordHash                PasswordHash
	PasswordResetTokenHash      c.Optional[PasswordResetTokenHash]
	PasswordResetTokenExpiresAt c.Optional[time.Time]
	CreatedAt                   time.Time
}

func (u *User) Validate() error {
	if u.Email == "" {
		return e.NewInvalidStateError(fmt.Sprintf("email is not set for user %d", u.ID))
	}
	if u.Username == "" {
		return e.NewInvalidStateError(fmt.Sprintf("username is not set for user %d", u.ID))
	}
	if u.PasswordHash == "" {
		return e.NewInvalidStateError(fmt.Sprintf("password hash is not set for user %d", u.ID))
	}
	if u.PasswordResetTokenHash.IsPresent != u.PasswordResetTokenExpiresAt.IsPresent {
		return e.NewInvalidStateError(
			fmt.Sprintf("password reset token hash and expiry must be set together for user %d", u.ID),
		)
	}
	return nil
}

// HasActiveResetToken reports whether an unexpired reset token is
// outstanding for the user.
func (u *User) HasActiveResetToken(now time.Time) bool {
	if !u.PasswordResetTokenHash.IsPresent || !u.PasswordResetTokenExpiresAt.IsPresent {
		return false
	}
	return now.Before(u.PasswordResetTokenExpiresAt.Value)
}

type PasswordHasher interface {
	HashPassword(password RawPassword) (PasswordHash, error)
	ValidatePassword(password RawPassword, hash PasswordHash) bool
}
