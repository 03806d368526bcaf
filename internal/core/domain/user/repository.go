package user

import (
	c "accountd/internal/core/domain/common"
	"context"
	"time"
)

type CreateUserInput struct {
	Email        c.Email
	Username     Username
	PasswordHash PasswordHash
	CreatedAt    time.Time
}

type UserRepository interface {
	Create(ctx context.Context, input CreateUserInput) (User, error)
	GetByID(ctx context.Context, id ID) (User, error)
	GetByEmail(ctx context.Context, email c.Email) (User, error)

	// SetPasswordResetToken stores the token hash and expiry for the user,
	// replacing any previous pair.
	SetPasswordResetToken(
		ctx context.Context,
		id ID,
		tokenHash PasswordResetTokenHash,
		expiresAt time.Time,
	) error

	// ConsumePasswordResetToken atomically sets the new password hash and
	// clears the reset token pair for the user whose stored token hash
	// equals tokenHash and whose expiry is after now. It must be a single
	// conditional update so that two concurrent consume attempts with the
	// same token succeed exactly once. Returns ErrInvalidPasswordResetToken
	// when no user matches.
	ConsumePasswordResetToken(
		ctx context.Context,
		tokenHash PasswordResetTokenHash,
		now time.Time,
		newPasswordHash PasswordHash,
	) (User, error)
}
