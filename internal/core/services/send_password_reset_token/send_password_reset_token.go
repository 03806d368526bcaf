package sendpasswordresettoken

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
	Email c.Email
}

func (i Input) GetRateLimitKey() string {
	return "send-password-reset-token::" + string(i.Email)
}

type Result struct {
	Token user.PasswordResetToken
}

type service struct {
	log            logging.Logger
	userRepository user.UserRepository
	tokenGenerator user.PasswordResetTokenGenerator
	tokenHasher    user.PasswordResetTokenHasher
	tokenSender    user.PasswordResetTokenSender
	validDuration  time.Duration
	now            func() time.Time
}

func New(
	log logging.Logger,
	userRepository user.UserRepository,
	tokenGenerator user.PasswordResetTokenGenerator,
	tokenHasher user.PasswordResetTokenHasher,
	tokenSender user.PasswordResetTokenSender,
	validDuration time.Duration,
	now func() time.Time,
) services.Service[Input, Result] {
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	if userRepository == nil {
		panic(e.NewNilArgumentError("userRepository"))
	}
	if tokenGenerator == nil {
		panic(e.NewNilArgumentError("tokenGenerator"))
	}
	if tokenHasher == nil {
		panic(e.NewNilArgumentError("tokenHasher"))
	}
	if tokenSender == nil {
		panic(e.NewNilArgumentError("tokenSender"))
	}
	if now == nil {
		panic(e.NewNilArgumentError("now"))
	}
	return &service{
		log:            log,
		userRepository: userRepository,
		tokenGenerator: tokenGenerator,
		tokenHasher:    tokenHasher,
		tokenSender:    tokenSender,
		validDuration:  validDuration,
		now:            now,
	}
}

func (s *service) Run(ctx context.Context, input Input) (result Result, err error) {
	u, err := s.userRepository.GetByEmail(ctx, input.Email)
	if errors.Is(err, context.Canceled) {
		return result, err
	}
	if errors.Is(err, user.ErrUserDoesNotExist) {
		s.log.Info(
			ctx,
			"User not found for password reset.",
			logging.Entry("email", input.Email),
		)
		return result, err
	}
	if err != nil {
		s.log.Error(
			ctx,
			"Could not get user for password reset.",
			logging.Entry("email", input.Email),
			logging.Entry("err", err),
		)
		return result, err
	}

	token := s.tokenGenerator.GenerateResetToken()
	expiresAt := s.now().Add(s.validDuration)
	err = s.userRepository.SetPasswordResetToken(ctx, u.ID, s.tokenHasher.HashResetToken(token), expiresAt)
	if errors.Is(err, context.Canceled) {
		return result, err
	}
	if err != nil {
		s.log.Error(
			ctx,
			"Could not store password reset token.",
			logging.Entry("userID", u.ID),
			logging.Entry("err", err),
		)
		return result, err
	}

	// The token stays persisted even if delivery fails below. It is never
	// rolled back, it simply expires unused.
	err = s.tokenSender.SendResetToken(ctx, u, token)
	if errors.Is(err, context.Canceled) {
		return result, err
	}
	if err != nil {
		s.log.Error(
			ctx,
			"Could not send password reset token.",
			logging.Entry("userID", u.ID),
			logging.Entry("err", err),
		)
		return result, user.ErrResetTokenNotDelivered
	}

	s.log.Info(
		ctx,
		"Password reset token has been sent.",
		logging.Entry("userID", u.ID),
		logging.Entry("expiresAt", expiresAt),
	)
	return Result{Token: token}, nil
}
