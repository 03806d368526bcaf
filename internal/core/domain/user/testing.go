package user

import (
	c "accountd/internal/core/domain/common"
	"context"
	"crypto/md5"
	"fmt"
	"io"
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

type FakePasswordResetTokenGenerator struct {
	Token PasswordResetToken
}

func NewFakePasswordResetTokenGenerator(token string) *FakePasswordResetTokenGenerator {
	return &FakePasswordResetTokenGenerator{Token: PasswordResetToken(token)}
}

func (g *FakePasswordResetTokenGenerator) GenerateResetToken() PasswordResetToken {
	return g.Token
}

type FakePasswordResetTokenHasher struct{}

func NewFakePasswordResetTokenHasher() *FakePasswordResetTokenHasher {
	return &FakePasswordResetTokenHasher{}
}

func (h *FakePasswordResetTokenHasher) HashResetToken(token PasswordResetToken) PasswordResetTokenHash {
	hash := md5.New()
	io.WriteString(hash, string(token))
	return PasswordResetTokenHash(fmt.Sprintf("%x", hash.Sum(nil)))
}

type FakePasswordResetTokenSender struct {
	Sent        []User
	SentTokens  []PasswordResetToken
	ReturnError bool
	lock        sync.Mutex
}

func NewFakePasswordResetTokenSender() *FakePasswordResetTokenSender {
	return &FakePasswordResetTokenSender{}
}

func (s *FakePasswordResetTokenSender) SendResetToken(
	ctx context.Context,
	u User,
	token PasswordResetToken,
) error {
	if s.ReturnError {
		return fmt.Errorf("could not send password reset token for user %d", u.ID)
	}
	s.lock.Lock()
	defer s.lock.Unlock()
	s.Sent = append(s.Sent, u)
	s.SentTokens = append(s.SentTokens, token)
	return nil
}

func (s *FakePasswordResetTokenSender) SentCount() int {
	return len(s.Sent)
}

func (s *FakePasswordResetTokenSender) LastSentTo() User {
	l := len(s.Sent)
	if l == 0 {
		panic("Sent count is 0.")
	}
	return s.Sent[l-1]
}

type FakeSessionTokenIssuer struct {
	Token       string
	ReturnError bool
}

func NewFakeSessionTokenIssuer(token string) *FakeSessionTokenIssuer {
	return &FakeSessionTokenIssuer{Token: token}
}

func (g *FakeSessionTokenIssuer) IssueToken(userID ID) (SessionToken, error) {
	if g.ReturnError {
		return "", fmt.Errorf("could not issue session token for user %d", userID)
	}
	return SessionToken(fmt.Sprintf("%s-%d", g.Token, userID)), nil
}

type FakeUserRepository struct {
	Users       []User
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
	maxID := ID(0)
	for _, u := range r.Users {
		if u.Email == input.Email {
			return u, ErrEmailAlreadyExists
		}
		if u.Username == input.Username {
			return u, ErrUsernameAlreadyExists
		}
		maxID = u.ID
	}
	u = User{
		ID:           maxID + 1,
		Email:        input.Email,
		Username:     input.Username,
		PasswordHash: input.PasswordHash,
		CreatedAt:    input.CreatedAt,
	}
	r.Users = append(r.Users, u)
	return u, nil
}

func (r *FakeUserRepository) GetByID(ctx context.Context, id ID) (u User, err error) {
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
	r.lock.Lock()
	defer r.lock.Unlock()
	for _, u := range r.Users {
		if u.Email == email {
			return u, nil
		}
	}
	return u, ErrUserDoesNotExist
}

func (r *FakeUserRepository) SetPasswordResetToken(
	ctx context.Context,
	id ID,
	tokenHash PasswordResetTokenHash,
	expiresAt time.Time,
) error {
	if r.ReturnError {
		return fmt.Errorf("could not set password reset token for user %d", id)
	}
	r.lock.Lock()
	defer r.lock.Unlock()
	for ix, u := range r.Users {
		if u.ID == id {
			r.Users[ix].PasswordResetTokenHash = c.NewOptional(tokenHash, true)
			r.Users[ix].PasswordResetTokenExpiresAt = c.NewOptional(expiresAt, true)
			return nil
		}
	}
	return ErrUserDoesNotExist
}

func (r *FakeUserRepository) ConsumePasswordResetToken(
	ctx context.Context,
	tokenHash PasswordResetTokenHash,
	now time.Time,
	newPasswordHash PasswordHash,
) (u User, err error) {
	if r.ReturnError {
		return u, fmt.Errorf("could not consume password reset token")
	}
	r.lock.Lock()
	defer r.lock.Unlock()
	for ix, u := range r.Users {
		if !u.PasswordResetTokenHash.IsPresent {
			continue
		}
		if u.PasswordResetTokenHash.Value != tokenHash {
			continue
		}
		if !u.PasswordResetTokenExpiresAt.Value.After(now) {
			continue
		}
		r.Users[ix].PasswordHash = newPasswordHash
		r.Users[ix].PasswordResetTokenHash = c.NewOptional(PasswordResetTokenHash(""), false)
		r.Users[ix].PasswordResetTokenExpiresAt = c.NewOptional(time.Time{}, false)
		return r.Users[ix], nil
	}
	return u, ErrInvalidPasswordResetToken
}
