package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/ameleshko/booklog-cli/internal/common"
)

// APIError is a non-2xx response decoded into a structured failure. The
// backend reports either a single "detail" message or a map of per-field
// validation errors; both are preserved for display.
type APIError struct {
	Status int
	Detail string
	Fields map[string][]string
}

func (e *APIError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("api: %d: %s", e.Status, e.Detail)
	}
	if len(e.Fields) > 0 {
		parts := make([]string, 0, len(e.Fields))
		for field, msgs := range e.Fields {
			parts = append(parts, field+": "+strings.Join(msgs, "; "))
		}
		return fmt.Sprintf("api: %d: %s", e.Status, strings.Join(parts, ", "))
	}
	return fmt.Sprintf("api: %d: %s", e.Status, http.StatusText(e.Status))
}

// Unwrap maps well-known statuses onto shared sentinels so callers can use
// errors.Is without knowing this package's types.
func (e *APIError) Unwrap() error {
	switch e.Status {
	case http.StatusUnauthorized, http.StatusForbidden:
		return common.ErrUnauthorized
	case http.StatusNotFound:
		return common.ErrNotFound
	default:
		return nil
	}
}

// newAPIError builds an APIError from a response body. Unparseable bodies
// degrade to a status-only error rather than failing.
func newAPIError(status int, body []byte) *APIError {
	e := &APIError{Status: status}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(body, &raw); err != nil {
		return e
	}

	for key, val := range raw {
		if key == "detail" {
			var s string
			if json.Unmarshal(val, &s) == nil {
				e.Detail = s
			}
			continue
		}

		var msgs []string
		if json.Unmarshal(val, &msgs) == nil {
			if e.Fields == nil {
				e.Fields = make(map[string][]string)
			}
			e.Fields[key] = msgs
			continue
		}
		var one string
		if json.Unmarshal(val, &one) == nil {
			if e.Fields == nil {
				e.Fields = make(map[string][]string)
			}
			e.Fields[key] = []string{one}
		}
	}

	return e
}
