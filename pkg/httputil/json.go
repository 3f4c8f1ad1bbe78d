package httputil

import (
	"encoding/json"
	"net/http"

	"github.com/damien-gal/degree-three-spanners-square-lattice/pkg/errors"
)

// ErrorBody is the JSON form of an error response.
type ErrorBody struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail carries the machine-readable code and the user message.
type ErrorDetail struct {
	Code    errors.Code `json:"code"`
	Message string      `json:"message"`
}

// WriteJSON writes v with the given status.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	_ = enc.Encode(v)
}

// WriteError writes err with the status given by [StatusFor].
func WriteError(w http.ResponseWriter, err error) {
	code := errors.GetCode(err)
	if code == "" {
		code = errors.ErrCodeInternal
	}
	WriteJSON(w, StatusFor(err), ErrorBody{Error: ErrorDetail{Code: code, Message: errors.UserMessage(err)}})
}

// StatusFor maps err to an HTTP status. Errors without a code are 500.
func StatusFor(err error) int {
	switch errors.GetCode(err) {
	case errors.ErrCodeInvalidInput, errors.ErrCodeInvalidClaim, errors.ErrCodeInvalidPath, errors.ErrCodeInvalidNotation:
		return http.StatusBadRequest
	case errors.ErrCodeNotFound, errors.ErrCodeClaimNotFound, errors.ErrCodeRunNotFound, errors.ErrCodeFileNotFound:
		return http.StatusNotFound
	case errors.ErrCodeCandidatesExhausted, errors.ErrCodeDilationViolated, errors.ErrCodeLeafCountMismatch:
		return http.StatusUnprocessableEntity
	case errors.ErrCodeTimeout:
		return http.StatusGatewayTimeout
	case errors.ErrCodeNetwork:
		return http.StatusBadGateway
	case errors.ErrCodeUnsupported:
		return http.StatusNotImplemented
	}
	return http.StatusInternalServerError
}
