package register

import (
	"context"
	"errors"
	"time"

	c "accountd/internal/core/domain/common"
	e "accountd/internal/core/domain/errors"
	"accountd/internal/core/domain/logging"
	"accountd/internal/core/domain/user"
	"accountd/internal/core/services"
)

type Input struct {
	Email    c.Email
	Username user.Username
	Password user.RawPassword
}

type Result struct {
	User user.User
}

type service struct {
	log            logging.Logger
	userRepository user.UserRepository
	passwordHasher user.PasswordHasher
	now            func() time.Time
}

func New(
	log logging.Logger,
	userRepository user.UserRepository,
	passwordHasher user.PasswordHasher,
	now func() time.Time,
) services.Service[Input, Result] {
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	if userRepository == nil {
		panic(e.NewNilArgumentError("userRepository"))
	}
	if passwordHasher == nil {
		panic(e.NewNilArgumentError("passwordHasher"))
	}
	if now == nil {
		panic(e.NewNilArgumentError("now"))
	}
	return &service{
		log:            log,
		userRepository: userRepository,
		passwordHasher: passwordHasher,
		now:            now,
	}
}

func (s *service) Run(ctx context.Context, input Input) (result Result, err error) {
	passwordHash, err := s.passwordHasher.HashPassword(input.Password)
	if err != nil {
		s.log.Error(ctx, "Could not hash password.", logging.Entry("err", err))
		return result, err
	}

	createdUser, err := s.userRepository.Create(ctx, user.CreateUserInput{
		Email:        input.Email,
		Username:     input.Username,
		PasswordHash: passwordHash,
		CreatedAt:    s.now(),
	})
	if errors.Is(err, context.Canceled) {
		return result, err
	}
	if errors.Is(err, user.ErrEmailAlreadyExists) || errors.Is(err, user.ErrUsernameAlreadyExists) {
		s.log.Info(
			ctx,
			"User already registered.",
			logging.Entry("email", input.Email),
			logging.Entry("username", input.Username),
		)
		return result, err
	}
	if err != nil {
		s.log.Error(
			ctx,
			"Could not create new user.",
			logging.Entry("email", input.Email),
			logging.Entry("err", err),
		)
		return result, err
	}

	s.log.Info(ctx, "New user has been created.", logging.Entry("userID", createdUser.ID))
	return Result{User: createdUser}, nil
}
