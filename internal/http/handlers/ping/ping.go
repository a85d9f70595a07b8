package ping

import (
	"net/http"
	"pwreset/internal/http/handlers/response"
)

func Handler(rw http.ResponseWriter, r *http.Request) {
	response.RenderMessage(rw, "pong", http.StatusOK)
}
