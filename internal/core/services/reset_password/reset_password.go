package resetpassword

import (
	"context"
	"errors"
	"time"

	e "accountd/internal/core/domain/errors"
	"accountd/internal/core/domain/logging"
	"accountd/internal/core/domain/user"
	"accountd/internal/core/services"
)

type Input struct {
	Token       user.PasswordResetToken
	NewPassword user.RawPassword
}

type Result struct {
	User user.User
}

type service struct {
	log            logging.Logger
	userRepository user.UserRepository
	tokenHasher    user.PasswordResetTokenHasher
	passwordHasher user.PasswordHasher
	now            func() time.Time
}

func New(
	log logging.Logger,
	userRepository user.UserRepository,
	tokenHasher user.PasswordResetTokenHasher,
	passwordHasher user.PasswordHasher,
	now func() time.Time,
) services.Service[Input, Result] {
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	if userRepository == nil {
		panic(e.NewNilArgumentError("userRepository"))
	}
	if tokenHasher == nil {
		panic(e.NewNilArgumentError("tokenHasher"))
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
		tokenHasher:    tokenHasher,
		passwordHasher: passwordHasher,
		now:            now,
	}
}

func (s *service) Run(ctx context.Context, input Input) (result Result, err error) {
	newPasswordHash, err := s.passwordHasher.HashPassword(input.NewPassword)
	if err != nil {
		s.log.Error(ctx, "Could not hash new password.", logging.Entry("err", err))
		return result, err
	}

	// A wrong token, an expired token and an already consumed token are
	// deliberately indistinguishable here.
	u, err := s.userRepository.ConsumePasswordResetToken(
		ctx,
		s.tokenHasher.HashResetToken(input.Token),
		s.now(),
		newPasswordHash,
	)
	if errors.Is(err, context.Canceled) {
		return result, err
	}
	if errors.Is(err, user.ErrInvalidPasswordResetToken) {
		s.log.Info(ctx, "Invalid or expired password reset token.")
		return result, err
	}
	if err != nil {
		s.log.Error(
			ctx,
			"Could not consume password reset token.",
			logging.Entry("err", err),
		)
		return result, err
	}

	s.log.Info(
		ctx,
		"New password has been successfully set.",
		logging.Entry("userID", u.ID),
	)
	return Result{User: u}, nil
}
