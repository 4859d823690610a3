package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")        // 401/403 on login
	ErrEmailTaken         = errors.New("email is already registered") // 409 on register
	ErrProfileNotFound    = errors.New("profile not found")           // 404 on profile lookups
)

// Status classes shared by every operation.
var (
	ErrUnauthorized = errors.New("unauthorized")      // 401, 403
	ErrNotFound     = errors.New("not found")         // 404
	ErrValidation   = errors.New("invalid request")   // 400
	ErrConflict     = errors.New("conflict")          // 409
	ErrServer       = errors.New("backend error")     // everything else
	ErrConnection   = errors.New("connection failed") // transport
)

// maxErrorBody bounds how much of a failed response is kept.
const maxErrorBody = 4 << 10

// Error is a non-success response from the backend.
type Error struct {
	Op         string
	StatusCode int
	// Message is the backend "message" field when the body is JSON.
	Message string
	Body    string
	Kind    error
}

func (e *Error) Error() string {
	detail := e.Message
	if detail == "" {
		detail = e.Body
	}
	if detail == "" {
		detail = http.StatusText(e.StatusCode)
	}
	if e.Kind != nil && !isStatusClass(e.Kind) {
		return fmt.Sprintf("%s: %v (API error %d: %s)", e.Op, e.Kind, e.StatusCode, detail)
	}
	return fmt.Sprintf("%s: API error %d: %s", e.Op, e.StatusCode, detail)
}

func (e *Error) Unwrap() []error {
	class := statusClass(e.StatusCode)
	if e.Kind == nil || e.Kind == class {
		return []error{class}
	}
	return []error{e.Kind, class}
}

type apiErrorBody struct {
	Message string `json:"message"`
	Error   string `json:"error"`
}

func newError(op string, resp *http.Response) *Error {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	text := strings.TrimSpace(string(body))

	e := &Error{
		Op:         op,
		StatusCode: resp.StatusCode,
		Body:       text,
		Kind:       statusClass(resp.StatusCode),
	}

	var parsed apiErrorBody
	if json.Unmarshal(body, &parsed) == nil {
		e.Message = parsed.Message
		if e.Message == "" {
			e.Message = parsed.Error
		}
	}
	return e
}

func statusClass(code int) error {
	switch code {
	case http.StatusUnauthorized, http.StatusForbidden:
		return ErrUnauthorized
	case http.StatusNotFound:
		return ErrNotFound
	case http.StatusBadRequest:
		return ErrValidation
	case http.StatusConflict:
		return ErrConflict
	default:
		return ErrServer
	}
}

func isStatusClass(err error) bool {
	switch err {
	case ErrUnauthorized, ErrNotFound, ErrValidation, ErrConflict, ErrServer:
		return true
	}
	return false
}

// StatusCode returns the HTTP status carried by err, or 0.
func StatusCode(err error) int {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode
	}
	return 0
}

// localError marks failures that happen before the request leaves the
// process. List operations never swallow them.
type localError struct {
	err error
}

func (e *localError) Error() string { return e.err.Error() }
func (e *localError) Unwrap() error { return e.err }

func isLocal(err error) bool {
	var le *localError
	return errors.As(err, &le)
}
