package sendpasswordresettoken

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	ratelimiter "accountd/internal/core/domain/rate_limiter"
	"accountd/internal/core/domain/user"
	service "accountd/internal/core/services/send_password_reset_token"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const RESET_TOKEN = user.PasswordResetToken("test-reset-token")

type stubService struct {
	err error
}

func (s *stubService) Run(ctx context.Context, input service.Input) (result service.Result, err error) {
	if s.err != nil {
		return result, s.err
	}
	result.Token = RESET_TOKEN
	return result, nil
}

func TestSendPasswordResetTokenHandler(t *testing.T) {
	cases := []struct {
		id             string
		body           string
		serviceErr     error
		expectedStatus int
	}{
		{
			id:             "success",
			body:           `{"email": "a@x.com"}`,
			expectedStatus: http.StatusOK,
		},
		{
			id:             "missing email",
			body:           `{}`,
			expectedStatus: http.StatusBadRequest,
		},
		{
			id:             "invalid email",
			body:           `{"email": "not-an-email"}`,
			expectedStatus: http.StatusBadRequest,
		},
		{
			id:             "unknown email",
			body:           `{"email": "a@x.com"}`,
			serviceErr:     user.ErrUserDoesNotExist,
			expectedStatus: http.StatusNotFound,
		},
		{
			id:             "delivery failed",
			body:           `{"email": "a@x.com"}`,
			serviceErr:     user.ErrResetTokenNotDelivered,
			expectedStatus: http.StatusInternalServerError,
		},
		{
			id:             "rate limit exceeded",
			body:           `{"email": "a@x.com"}`,
			serviceErr:     ratelimiter.ErrRateLimitExceeded,
			expectedStatus: http.StatusTooManyRequests,
		},
	}

	for _, testcase := range cases {
		t.Run(testcase.id, func(t *testing.T) {
			stub := &stubService{err: testcase.serviceErr}
			handler := New(stub, false)

			request := httptest.NewRequest(
				http.MethodPost, "/api/forgot-password", strings.NewReader(testcase.body),
			)
			recorder := httptest.NewRecorder()
			handler.ServeHTTP(recorder, request)

			assert.Equal(t, testcase.expectedStatus, recorder.Code)
			assert.NotContains(t, recorder.Body.String(), string(RESET_TOKEN))
		})
	}
}

func TestSendPasswordResetTokenHandlerTestMode(t *testing.T) {
	handler := New(&stubService{}, true)

	request := httptest.NewRequest(
		http.MethodPost, "/api/forgot-password", strings.NewReader(`{"email": "a@x.com"}`),
	)
	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, request)

	require.Equal(t, http.StatusOK, recorder.Code)
	assert.Equal(t, string(RESET_TOKEN), recorder.Header().Get("x-test-password-reset-token"))
}
