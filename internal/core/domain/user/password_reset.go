package user

import "context"

// PasswordResetToken is the raw single-use secret. It is returned to the
// caller exactly once, embedded in the emailed reset link; only its hash
// is ever persisted.
type PasswordResetToken string

func (t PasswordResetToken) String() string {
	return "***"
}

// PasswordResetTokenHash is the deterministic one-way digest of a raw
// token, suitable for storage and equality lookup.
type PasswordResetTokenHash string

type PasswordResetTokenGenerator interface {
	GenerateResetToken() PasswordResetToken
}

type PasswordResetTokenHasher interface {
	HashResetToken(token PasswordResetToken) PasswordResetTokenHash
}

type PasswordResetTokenSender interface {
	SendResetToken(ctx context.Context, u User, token PasswordResetToken) error
}
