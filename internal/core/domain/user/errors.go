package user

import "errors"

var (
	ErrEmailAlreadyExists        = errors.New("email already exists")
	ErrUsernameAlreadyExists     = errors.New("username already exists")
	ErrUserDoesNotExist          = errors.New("user does not exist")
	ErrInvalidCredentials        = errors.New("invalid credentials")
	ErrInvalidPasswordResetToken = errors.New("invalid or expired password reset token")
	ErrResetTokenNotDelivered    = errors.New("password reset token could not be delivered")
)
