package services

import (
	"accountd/internal/app/deps"
	drl "accountd/internal/core/domain/rate_limiter"
	"accountd/internal/core/services"
	loginwithemail "accountd/internal/core/services/log_in_with_email"
	ratelimiting "accountd/internal/core/services/rate_limiting"
	"accountd/internal/core/services/register"
	resetpassword "accountd/internal/core/services/reset_password"
	sendpasswordresettoken "accountd/internal/core/services/send_password_reset_token"
)

type Services struct {
	Register               services.Service[register.Input, register.Result]
	LogInWithEmail         services.Service[loginwithemail.Input, loginwithemail.Result]
	SendPasswordResetToken services.Service[sendpasswordresettoken.Input, sendpasswordresettoken.Result]
	ResetPassword          services.Service[resetpassword.Input, resetpassword.Result]
}

func InitServices(deps *deps.Deps) *Services {
	s := &Services{}

	s.Register = register.New(
		deps.Logger,
		deps.UserRepository,
		deps.PasswordHasher,
		deps.Now,
	)
	s.LogInWithEmail = ratelimiting.WithRateLimiting(
		deps.Logger,
		deps.RateLimiter,
		drl.Limit{Value: 10, Interval: drl.Minute},
		loginwithemail.New(
			deps.Logger,
			deps.UserRepository,
			deps.PasswordHasher,
			deps.SessionTokenIssuer,
		),
	)
	s.SendPasswordResetToken = ratelimiting.WithRateLimiting(
		deps.Logger,
		deps.RateLimiter,
		drl.Limit{Value: 3, Interval: drl.Hour},
		sendpasswordresettoken.New(
			deps.Logger,
			deps.UserRepository,
			deps.PasswordResetTokenGenerator,
			deps.PasswordResetTokenHasher,
			deps.PasswordResetTokenSender,
			deps.Config.PasswordResetValidDuration,
			deps.Now,
		),
	)
	s.ResetPassword = resetpassword.New(
		deps.Logger,
		deps.UserRepository,
		deps.PasswordResetTokenHasher,
		deps.PasswordHasher,
		deps.Now,
	)

	return s
}
