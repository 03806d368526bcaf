package passwordresettoken

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	"accountd/internal/core/domain/user"
)

const rawTokenByteLen = 32

// Generator produces raw reset tokens from a cryptographically secure
// random source, hex-encoded.
type Generator struct{}

func NewGenerator() *Generator {
	return &Generator{}
}

func (g *Generator) GenerateResetToken() user.PasswordResetToken {
	b := make([]byte, rawTokenByteLen)
	if _, err := rand.Read(b); err != nil {
		panic(fmt.Sprintf("could not read random bytes: %v", err))
	}
	return user.PasswordResetToken(hex.EncodeToString(b))
}

// SHA256Hasher derives the stored digest of a raw reset token. The digest
// is deterministic so the token can be looked up by hash, and one-way so a
// leaked database row does not reveal the raw token.
type SHA256Hasher struct{}

func NewSHA256Hasher() *SHA256Hasher {
	return &SHA256Hasher{}
}

func (h *SHA256Hasher) HashResetToken(token user.PasswordResetToken) user.PasswordResetTokenHash {
	sum := sha256.Sum256([]byte(token))
	return user.PasswordResetTokenHash(hex.EncodeToString(sum[:]))
}
