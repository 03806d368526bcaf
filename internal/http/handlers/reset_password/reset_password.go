package resetpassword

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"accountd/internal/core/domain/user"
	"accountd/internal/core/services"
	resetpassword "accountd/internal/core/services/reset_password"
	"accountd/internal/http/handlers/response"

	"github.com/go-chi/chi/v5"
	validation "github.com/go-ozzo/ozzo-validation"
)

type Handler struct {
	service services.Service[resetpassword.Input, resetpassword.Result]
}

func New(
	service services.Service[resetpassword.Input, resetpassword.Result],
) *Handler {
	return &Handler{service: service}
}

type Input struct {
	Token    string `json:"-"`
	Password string `json:"password"`
}

func (i *Input) FromJSON(r io.Reader) error {
	e := json.NewDecoder(r)
	return e.Decode(i)
}

func (i Input) Validate() error {
	return validation.ValidateStruct(&i,
		validation.Field(&i.Token, validation.Required, validation.Length(0, 1024)),
		validation.Field(&i.Password, validation.Required, validation.Length(6, 256)),
	)
}

func (h *Handler) ServeHTTP(rw http.ResponseWriter, r *http.Request) {
	input := Input{}
	if err := input.FromJSON(r.Body); err != nil {
		response.RenderError(rw, "invalid request data", http.StatusBadRequest)
		return
	}
	input.Token = chi.URLParam(r, "token")
	if err := input.Validate(); err != nil {
		response.Render(rw, err, http.StatusBadRequest)
		return
	}

	_, err := h.service.Run(
		r.Context(),
		resetpassword.Input{
			Token:       user.PasswordResetToken(input.Token),
			NewPassword: user.RawPassword(input.Password),
		},
	)
	if errors.Is(err, user.ErrInvalidPasswordResetToken) {
		response.RenderError(rw, "invalid or expired reset token", http.StatusBadRequest)
		return
	}
	if err != nil {
		response.RenderInternalError(rw)
		return
	}

	response.RenderMessage(rw, "password reset successful", http.StatusOK)
}
