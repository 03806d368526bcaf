package register

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	c "accountd/internal/core/domain/common"
	"accountd/internal/core/domain/user"
	"accountd/internal/core/services"
	register "accountd/internal/core/services/register"
	"accountd/internal/http/handlers/response"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
)

type Handler struct {
	service services.Service[register.Input, register.Result]
}

func New(
	service services.Service[register.Input, register.Result],
) *Handler {
	return &Handler{service: service}
}

type Input struct {
	Email    string `json:"email"`
	Username string `json:"username"`
	Password string `json:"password"`
}

func (i *Input) FromJSON(r io.Reader) error {
	e := json.NewDecoder(r)
	return e.Decode(i)
}

func (i Input) Validate() error {
	return validation.ValidateStruct(&i,
		validation.Field(&i.Email, validation.Required, is.Email, validation.Length(0, 512)),
		validation.Field(&i.Username, validation.Required, validation.Length(1, 64)),
		validation.Field(&i.Password, validation.Required, validation.Length(6, 256)),
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
		register.Input{
			Email:    c.NewEmail(input.Email),
			Username: user.Username(input.Username),
			Password: user.RawPassword(input.Password),
		},
	)
	if errors.Is(err, user.ErrEmailAlreadyExists) || errors.Is(err, user.ErrUsernameAlreadyExists) {
		response.RenderError(rw, "user already registered", http.StatusBadRequest)
		return
	}
	if err != nil {
		response.RenderInternalError(rw)
		return
	}

	registeredUser := response.User{}
	registeredUser.FromDomainUser(result.User)
	response.Render(rw, registeredUser, http.StatusCreated)
}
