package client

import (
	"errors"
	"net/http"

	"github.com/dmitrijs2005/foodlog/internal/common"
)

var (
	ErrUnavailable = errors.New("server unavailable")
	ErrNotLoggedIn = errors.New("not logged in")
)

// APIError is a non-2xx answer of the server. Message is the server's
// human readable explanation.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return http.StatusText(e.Status)
}

// Is lets callers match statuses against the shared sentinel errors.
func (e *APIError) Is(target error) bool {
	switch target {
	case common.ErrorValidation:
		return e.Status == http.StatusBadRequest
	case common.ErrorUnauthorized:
		return e.Status == http.StatusUnauthorized
	case common.ErrorNotFound:
		return e.Status == http.StatusNotFound
	case common.ErrorAlreadyExists:
		return e.Status == http.StatusConflict
	case common.ErrTokenExpired:
		return e.Status == http.StatusUnauthorized && e.Message == common.ErrTokenExpired.Error()
	}
	return false
}
