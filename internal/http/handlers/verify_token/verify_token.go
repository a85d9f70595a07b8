package verifytoken

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	c "pwreset/internal/core/domain/common"
	e "pwreset/internal/core/domain/errors"
	"pwreset/internal/core/domain/user"
	"pwreset/internal/core/services"
	service "pwreset/internal/core/services/verify_password_reset_token"
	"pwreset/internal/http/handlers/response"

	validation "github.com/go-ozzo/ozzo-validation"
)

const (
	MsgValid   = "Token valid"
	MsgInvalid = "Invalid or expired token"
)

type Handler struct {
	service services.Service[service.Input, service.Result]
}

func New(service services.Service[service.Input, service.Result]) *Handler {
	if service == nil {
		panic(e.NewNilArgumentError("service"))
	}
	return &Handler{service: service}
}

type Input struct {
	Email string `json:"email"`
	Token string `json:"token"`
}

func (i *Input) FromJSON(r io.Reader) error {
	e := json.NewDecoder(r)
	return e.Decode(i)
}

func (i Input) Validate() error {
	return validation.ValidateStruct(&i,
		validation.Field(&i.Email, validation.Required, validation.Length(0, 512)),
		validation.Field(&i.Token, validation.Required, validation.Length(0, 1024)),
	)
}

func (h *Handler) ServeHTTP(rw http.ResponseWriter, r *http.Request) {
	input := Input{}
	if err := input.FromJSON(r.Body); err != nil {
		response.RenderMessage(rw, response.MsgInvalidRequest, http.StatusBadRequest)
		return
	}
	if err := input.Validate(); err != nil {
		response.RenderValidationError(rw, MsgInvalid, err)
		return
	}

	_, err := h.service.Run(
		r.Context(),
		service.Input{
			Email: c.NewEmail(input.Email),
			Token: user.PasswordResetToken(input.Token),
		},
	)
	if errors.Is(err, user.ErrInvalidPasswordResetToken) {
		response.RenderMessage(rw, MsgInvalid, http.StatusBadRequest)
		return
	}
	if err != nil {
		response.RenderInternalError(rw)
		return
	}

	response.RenderMessage(rw, MsgValid, http.StatusOK)
}
