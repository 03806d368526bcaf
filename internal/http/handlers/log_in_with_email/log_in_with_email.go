package loginwithemail

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	c "accountd/internal/core/domain/common"
	ratelimiter "accountd/internal/core/domain/rate_limiter"
	"accountd/internal/core/domain/user"
	"accountd/internal/core/services"
	loginwithemail "accountd/internal/core/services/log_in_with_email"
	"accountd/internal/http/handlers/response"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
)

const SessionCookieName = "token"

type Handler struct {
	service      services.Service[loginwithemail.Input, loginwithemail.Result]
	sessionTTL   time.Duration
	isProduction bool
}

func New(
	service services.Service[loginwithemail.Input, loginwithemail.Result],
	sessionTTL time.Duration,
	isProduction bool,
) *Handler {
	return &Handler{service: service, sessionTTL: sessionTTL, isProduction: isProduction}
}

type Input struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (i *Input) FromJSON(r io.Reader) error {
	e := json.NewDecoder(r)
	return e.Decode(i)
}

func (i Input) Validate() error {
	return validation.ValidateStruct(&i,
		validation.Field(&i.Email, validation.Required, is.Email, validation.Length(0, 512)),
		validation.Field(&i.Password, validation.Required, validation.Length(0, 512)),
	)
}

func (h *Handler) ServeHTTP(rw http.ResponseWriter, r *http.Request) {
	input := Input{}
	if err := input.FromJSON(r.Body); err != nil {
		response.RenderError(rw, "invalid request data", http.StatusBadRequest)
		return
	}
	if err := input.Validate(); err != nil {
		response.Render(rw, err, http.StatusBadRequest)
		return
	}

	result, err := h.service.Run(
		r.Context(),
		loginwithemail.Input{
			Email:    c.NewEmail(input.Email),
			Password: user.RawPassword(input.Password),
		},
	)
	if errors.Is(err, ratelimiter.ErrRateLimitExceeded) {
		response.RenderRateLimitExceeded(rw)
		return
	}
	if errors.Is(err, user.ErrInvalidCredentials) {
		response.RenderError(rw, "invalid credentials", http.StatusBadRequest)
		return
	}
	if err != nil {
		response.RenderInternalError(rw)
		return
	}

	http.SetCookie(rw, &http.Cookie{
		Name:     SessionCookieName,
		Value:    string(result.Token),
		Path:     "/",
		MaxAge:   int(h.sessionTTL.Seconds()),
		HttpOnly: true,
		Secure:   h.isProduction,
		SameSite: http.SameSiteLaxMode,
	})

	loggedInUser := response.User{}
	loggedInUser.FromDomainUser(result.User)
	response.Render(rw, loggedInUser, http.StatusOK)
}
