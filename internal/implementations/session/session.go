package session

import (
	"fmt"
	"strconv"
	"time"

	"accountd/internal/core/domain/user"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// JWTIssuer signs session tokens with a process-wide secret. The subject
// claim carries the user ID, the expiry claim bounds the session lifetime.
type JWTIssuer struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewJWTIssuer(secret string, ttl time.Duration, now func() time.Time) *JWTIssuer {
	return &JWTIssuer{secret: []byte(secret), ttl: ttl, now: now}
}

func (i *JWTIssuer) IssueToken(userID user.ID) (user.SessionToken, error) {
	now := i.now()
	claims := jwt.RegisteredClaims{
		Subject:   strconv.FormatInt(int64(userID), 10),
		ID:        uuid.New().String(),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(i.ttl)),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(i.secret)
	if err != nil {
		return "", err
	}
	return user.SessionToken(signed), nil
}

// VerifyToken checks the signature and expiry and returns the embedded
// user ID. Used by auth middleware, not by the core services.
func (i *JWTIssuer) VerifyToken(token user.SessionToken) (user.ID, error) {
	parsed, err := jwt.ParseWithClaims(
		string(token),
		&jwt.RegisteredClaims{},
		func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
			}
			return i.secret, nil
		},
		jwt.WithTimeFunc(i.now),
	)
	if err != nil {
		return 0, err
	}
	claims, ok := parsed.Claims.(*jwt.RegisteredClaims)
	if !ok || !parsed.Valid {
		return 0, fmt.Errorf("invalid session token")
	}
	rawUserID, err := strconv.ParseInt(claims.Subject, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid subject claim: %w", err)
	}
	return user.ID(rawUserID), nil
}
