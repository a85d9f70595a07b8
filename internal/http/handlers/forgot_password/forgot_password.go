package forgotpassword

import (
	"encoding/json"
	"io"
	"net/http"
	c "pwreset/internal/core/domain/common"
	e "pwreset/internal/core/domain/errors"
	"pwreset/internal/core/services"
	service "pwreset/internal/core/services/send_password_reset_token"
	"pwreset/internal/http/handlers/response"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation"
)

const (
	TestTokenHeader = "x-test-password-reset-token"

	MsgSent         = "If that email exists, a reset link was sent."
	MsgEmailRequired = "Email is required"
	MsgSendFailed   = "Failed to send reset email"
)

type Handler struct {
	service    services.Service[service.Input, service.Result]
	isTestMode bool
}

func New(
	service services.Service[service.Input, service.Result],
	isTestMode bool,
) *Handler {
	if service == nil {
		panic(e.NewNilArgumentError("service"))
	}
	return &Handler{service: service, isTestMode: isTestMode}
}

type Input struct {
	Email string `json:"email"`
}

func (i *Input) FromJSON(r io.Reader) error {
	e := json.NewDecoder(r)
	return e.Decode(i)
}

func (i Input) Validate() error {
	return validation.ValidateStruct(&i,
		validation.Field(&i.Email, validation.Required, validation.Length(0, 512)),
	)
}

func (h *Handler) ServeHTTP(rw http.ResponseWriter, r *http.Request) {
	input := Input{}
	if err := input.FromJSON(r.Body); err != nil {
		response.RenderMessage(rw, response.MsgInvalidRequest, http.StatusBadRequest)
		return
	}
	// Any non-blank address is looked up without format checks, so accounts
	// provisioned with unusual addresses can still be reset.
	input.Email = strings.TrimSpace(input.Email)
	if err := input.Validate(); err != nil {
		response.RenderValidationError(rw, MsgEmailRequired, err)
		return
	}

	result, err := h.service.Run(
		r.Context(),
		service.Input{Email: c.NewEmail(input.Email)},
	)
	// Store failures and delivery failures look the same to the client.
	if err != nil {
		response.RenderMessage(rw, MsgSendFailed, http.StatusInternalServerError)
		return
	}

	if h.isTestMode {
		if token, ok := result.Token(); ok {
			rw.Header().Set(TestTokenHeader, string(token))
		}
	}
	response.RenderMessage(rw, MsgSent, http.StatusOK)
}
