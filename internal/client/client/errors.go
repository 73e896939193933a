package client

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/dmitrijs2005/taskhub/internal/common"
)

// APIError is a non-2xx answer from the API with its decoded error body.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("api error: status %d", e.Status)
	}
	return fmt.Sprintf("api error: status %d: %s", e.Status, e.Message)
}

func (e *APIError) Unwrap() error {
	switch e.Status {
	case http.StatusBadRequest, http.StatusUnauthorized, http.StatusNotFound:
		return common.ErrorUnauthorized
	}
	return common.ErrorInternal
}

// StatusOf returns the HTTP status carried by err, or 0.
func StatusOf(err error) int {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Status
	}
	return 0
}
