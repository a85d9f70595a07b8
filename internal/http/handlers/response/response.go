package response

import (
	"encoding/json"
	"net/http"
)

const (
	MsgInvalidRequest = "invalid request data"
	MsgInternalError  = "Server error"
)

type messageResponse struct {
	Message string `json:"message"`
}

type validationErrorResponse struct {
	Message string `json:"message"`
	Errors  error  `json:"errors"`
}

func RenderInternalError(rw http.ResponseWriter) {
	RenderMessage(rw, MsgInternalError, http.StatusInternalServerError)
}

// RenderValidationError expects err to be ozzo validation.Errors, which
// marshal to a field -> message object.
func RenderValidationError(rw http.ResponseWriter, msg string, err error) {
	Render(rw, validationErrorResponse{Message: msg, Errors: err}, http.StatusBadRequest)
}

func RenderMessage(rw http.ResponseWriter, msg string, status int) {
	Render(rw, messageResponse{Message: msg}, status)
}

func Render(rw http.ResponseWriter, res interface{}, status int) {
	rw.Header().Set("Content-Type", "application/json")

	content, err := json.Marshal(res)
	if err != nil {
		rw.WriteHeader(http.StatusInternalServerError)
		return
	}

	rw.WriteHeader(status)
	rw.Write(content)
}
