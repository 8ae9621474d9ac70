package analysis

import (
	"errors"
	"net/http"
)

// Domain errors for analysis operations.
var (
	ErrInvalidRequest = errors.New("invalid analysis request")
	ErrCorpus         = errors.New("corpus unavailable")
)

// MapHTTPStatus maps analysis domain errors to appropriate HTTP status codes.
func MapHTTPStatus(err error) int {
	if errors.Is(err, ErrInvalidRequest) {
		return http.StatusBadRequest
	}
	if errors.Is(err, ErrCorpus) {
		return http.StatusServiceUnavailable
	}
	return http.StatusInternalServerError
}
