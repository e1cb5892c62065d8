package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/quillhq/noticesvc/internal/core"
)

// ErrorResponse is the error envelope for every failure.
type ErrorResponse struct {
	Success bool   `json:"success"`
	Code    string `json:"code"`
	Error   string `json:"error"`
}

// WriteError writes an error response, mapping the error's code to an HTTP
// status. Anything that is not an AppError becomes an internal error.
func WriteError(w http.ResponseWriter, err error) {
	var appErr *core.AppError
	if !errors.As(err, &appErr) {
		appErr = core.NewAppError(core.ErrInternal, "internal server error")
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(appErr.Code.HTTPStatus())
	json.NewEncoder(w).Encode(ErrorResponse{
		Code:  string(appErr.Code),
		Error: appErr.Message,
	})
}

// WriteJSON writes a JSON response.
func WriteJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
