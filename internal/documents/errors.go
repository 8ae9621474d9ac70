package documents

import (
	"errors"
	"net/http"
)

// Domain errors for document operations.
var (
	ErrNotFound        = errors.New("document not found")
	ErrInvalidName     = errors.New("invalid document name")
	ErrInvalidCategory = errors.New("invalid document category")
	ErrInvalidRequest  = errors.New("invalid request")
)

// MapHTTPStatus maps document domain errors to appropriate HTTP status codes.
func MapHTTPStatus(err error) int {
	if errors.Is(err, ErrNotFound) {
		return http.StatusNotFound
	}
	if errors.Is(err, ErrInvalidName) ||
		errors.Is(err, ErrInvalidCategory) ||
		errors.Is(err, ErrInvalidRequest) {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}
