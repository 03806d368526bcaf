package email

import (
	"context"
	"fmt"
	"net/url"

	"accountd/internal/core/domain/user"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/ses/types"
)

const passwordResetSubject = "Password Reset Request"

const passwordResetBodyHTML = `
<div style="max-width: 600px; margin: 0 auto; padding: 20px; font-family: Arial, sans-serif;">
    <h2 style="color: #333; text-align: center;">Password Reset Request</h2>
    <p>You requested a password reset for your account. Click the button below to reset your password:</p>
    <div style="text-align: center; margin: 30px 0;">
        <a href="%s"
           style="background-color: #4CAF50; color: white; padding: 12px 24px; text-decoration: none; border-radius: 4px;">
           Reset Password
        </a>
    </div>
    <p>If you didn't request this password reset, please ignore this email.</p>
    <p style="color: #666; font-size: 14px;">This link will expire in 1 hour.</p>
    <hr style="margin: 20px 0; border: none; border-top: 1px solid #eee;">
    <p style="color: #999; font-size: 12px; text-align: center;">
        This is an automated email, please do not reply.
    </p>
</div>
`

type EmailSender struct {
	ses *ses.Client
	// This address must be verified with Amazon SES.
	sender               string
	passwordResetBaseURL url.URL
}

func NewEmailSender(
	awsConfig aws.Config,
	sender string,
	passwordResetBaseURL url.URL,
) *EmailSender {
	return &EmailSender{
		ses:                  ses.NewFromConfig(awsConfig),
		sender:               sender,
		passwordResetBaseURL: passwordResetBaseURL,
	}
}

func (s *EmailSender) SendResetToken(
	ctx context.Context,
	u user.User,
	token user.PasswordResetToken,
) error {
	resetURL := s.passwordResetBaseURL.JoinPath("reset-password", string(token)).String()
	subject := passwordResetSubject
	body := fmt.Sprintf(passwordResetBodyHTML, resetURL)
	email := string(u.Email)

	_, err := s.ses.SendEmail(
		ctx,
		&ses.SendEmailInput{
			Source: &s.sender,
			Destination: &types.Destination{
				CcAddresses: []string{},
				ToAddresses: []string{email},
			},
			Message: &types.Message{
				Subject: &types.Content{Data: &subject},
				Body: &types.Body{
					Html: &types.Content{Data: &body},
				},
			},
		},
	)
	return err
}
