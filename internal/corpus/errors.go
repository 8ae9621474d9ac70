package corpus

import (
	"errors"
	"net/http"
)

// Domain errors for corpus operations.
var (
	ErrGenerateFailed   = errors.New("corpus generation failed")
	ErrWatchUnsupported = errors.New("corpus watching requires the filesystem storage provider")
)

// MapHTTPStatus maps corpus domain errors to appropriate HTTP status codes.
func MapHTTPStatus(err error) int {
	if errors.Is(err, ErrWatchUnsupported) {
		return http.StatusNotImplemented
	}
	return http.StatusInternalServerError
}
