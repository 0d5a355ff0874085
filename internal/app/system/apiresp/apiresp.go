// Package apiresp writes JSON responses and maps engine errors onto HTTP
// status codes.
package apiresp

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/dalemusser/wuwapi/internal/domain/schedule"
	"go.uber.org/zap"
)

// MaxBodyBytes bounds request bodies read by DecodeJSON.
const MaxBodyBytes = 1 << 20

// ErrorBody is the JSON shape of every error response.
type ErrorBody struct {
	Code    string            `json:"code"`
	Message string            `json:"message"`
	Fields  map[string]string `json:"fields,omitempty"`
}

// Error codes.
const (
	CodeValidation = "validation_error"
	CodeBadRequest = "bad_request"
	CodeNotFound   = "not_found"
	CodeInternal   = "internal_error"

	CodeRateLimited = "rate_limited"
)

// ErrBadBody is returned by DecodeJSON for unreadable or malformed bodies.
var ErrBadBody = errors.New("request body is not valid JSON")

// JSON writes v with the given status.
func JSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// OK writes v with status 200.
func OK(w http.ResponseWriter, v any) {
	JSON(w, http.StatusOK, v)
}

// Message writes {"message": msg} merged with extra fields.
func Message(w http.ResponseWriter, status int, msg string, extra map[string]any) {
	body := map[string]any{"message": msg}
	for k, v := range extra {
		body[k] = v
	}
	JSON(w, status, body)
}

// BadRequest writes a 400 with a free-form message.
func BadRequest(w http.ResponseWriter, msg string) {
	JSON(w, http.StatusBadRequest, ErrorBody{Code: CodeBadRequest, Message: msg})
}

// Error renders err. Validation errors list their fields, missing records
// become 404 and everything else is a 500 whose detail is only logged.
func Error(w http.ResponseWriter, r *http.Request, log *zap.Logger, err error) {
	if errors.Is(err, ErrBadBody) {
		BadRequest(w, err.Error())
		return
	}

	switch schedule.ErrorKind(err) {
	case schedule.KindValidation:
		var vErr *schedule.ValidationError
		errors.As(err, &vErr)
		JSON(w, http.StatusBadRequest, ErrorBody{
			Code:    CodeValidation,
			Message: "validation failed",
			Fields:  vErr.FieldErrors,
		})
	case schedule.KindNotFound:
		JSON(w, http.StatusNotFound, ErrorBody{Code: CodeNotFound, Message: "not found"})
	default:
		if log != nil {
			log.Error("request failed",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.String("error_kind", schedule.ErrorKind(err)),
				zap.Error(err))
		}
		JSON(w, http.StatusInternalServerError, ErrorBody{Code: CodeInternal, Message: "internal server error"})
	}
}

// DecodeJSON reads a JSON body into v. An empty body leaves v untouched.
func DecodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	if r.Body == nil {
		return nil
	}
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, MaxBodyBytes))
	if err := dec.Decode(v); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return ErrBadBody
	}
	return nil
}
