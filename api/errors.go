package api

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/jrsteele09/go-travel-client/internal/apperrors"
)

// errorBody is the server's error envelope.
type errorBody struct {
	Detail string `json:"detail"`
}

// statusError maps a non-2xx response to the client error taxonomy, carrying
// the server's detail message when one was sent.
func statusError(status int, body []byte) error {
	var sentinel error
	switch status {
	case http.StatusUnauthorized:
		sentinel = apperrors.ErrUnauthorized
	case http.StatusNotFound:
		sentinel = apperrors.ErrNotFound
	case http.StatusConflict:
		sentinel = apperrors.ErrConflict
	default:
		sentinel = apperrors.ErrServer
	}

	detail := serverDetail(body)
	if detail == "" {
		return fmt.Errorf("status %d: %w", status, sentinel)
	}
	return fmt.Errorf("status %d (%s): %w", status, detail, sentinel)
}

func serverDetail(body []byte) string {
	if len(body) == 0 {
		return ""
	}
	var eb errorBody
	if err := json.Unmarshal(body, &eb); err != nil {
		return ""
	}
	return eb.Detail
}

func is2xx(status int) bool {
	return status >= 200 && status < 300
}
