package register

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	c "accountd/internal/core/domain/common"
	"accountd/internal/core/domain/user"
	service "accountd/internal/core/services/register"
	"accountd/internal/http/handlers/response"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubService struct {
	err   error
	input *service.Input
}

func (s *stubService) Run(ctx context.Context, input service.Input) (result service.Result, err error) {
	s.input = &input
	if s.err != nil {
		return result, s.err
	}
	result.User = user.User{
		ID:        user.ID(1),
		Email:     input.Email,
		Username:  input.Username,
		CreatedAt: time.Now().UTC(),
	}
	return result, nil
}

func TestRegisterHandler(t *testing.T) {
	cases := []struct {
		id             string
		body           string
		serviceErr     error
		expectedStatus int
	}{
		{
			id:             "success",
			body:           `{"email": "a@x.com", "username": "alice", "password": "Passw0rd!"}`,
			expectedStatus: http.StatusCreated,
		},
		{
			id:             "email is normalized",
			body:           `{"email": "A@X.com", "username": "alice", "password": "Passw0rd!"}`,
			expectedStatus: http.StatusCreated,
		},
		{
			id:             "missing email",
			body:           `{"username": "alice", "password": "Passw0rd!"}`,
			expectedStatus: http.StatusBadRequest,
		},
		{
			id:             "missing username",
			body:           `{"email": "a@x.com", "password": "Passw0rd!"}`,
			expectedStatus: http.StatusBadRequest,
		},
		{
			id:             "missing password",
			body:           `{"email": "a@x.com", "username": "alice"}`,
			expectedStatus: http.StatusBadRequest,
		},
		{
			id:             "invalid email",
			body:           `{"email": "not-an-email", "username": "alice", "password": "Passw0rd!"}`,
			expectedStatus: http.StatusBadRequest,
		},
		{
			id:             "password too short",
			body:           `{"email": "a@x.com", "username": "alice", "password": "abc"}`,
			expectedStatus: http.StatusBadRequest,
		},
		{
			id:             "invalid json",
			body:           `{`,
			expectedStatus: http.StatusBadRequest,
		},
		{
			id:             "duplicate email",
			body:           `{"email": "a@x.com", "username": "alice", "password": "Passw0rd!"}`,
			serviceErr:     user.ErrEmailAlreadyExists,
			expectedStatus: http.StatusBadRequest,
		},
		{
			id:             "duplicate username",
			body:           `{"email": "a@x.com", "username": "alice", "password": "Passw0rd!"}`,
			serviceErr:     user.ErrUsernameAlreadyExists,
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, testcase := range cases {
		t.Run(testcase.id, func(t *testing.T) {
			stub := &stubService{err: testcase.serviceErr}
			handler := New(stub)

			request := httptest.NewRequest(
				http.MethodPost, "/api/register", strings.NewReader(testcase.body),
			)
			recorder := httptest.NewRecorder()
			handler.ServeHTTP(recorder, request)

			assert.Equal(t, testcase.expectedStatus, recorder.Code)
		})
	}
}

func TestRegisterHandlerResponseBody(t *testing.T) {
	stub := &stubService{}
	handler := New(stub)

	request := httptest.NewRequest(
		http.MethodPost,
		"/api/register",
		strings.NewReader(`{"email": "A@X.com", "username": "alice", "password": "Passw0rd!"}`),
	)
	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, request)

	require.Equal(t, http.StatusCreated, recorder.Code)
	require.NotNil(t, stub.input)
	assert.Equal(t, c.Email("a@x.com"), stub.input.Email)

	var body response.User
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
	assert.Equal(t, int64(1), body.ID)
	assert.Equal(t, "alice", body.Username)
	assert.Equal(t, "a@x.com", body.Email)
	assert.NotContains(t, recorder.Body.String(), "password")
}
