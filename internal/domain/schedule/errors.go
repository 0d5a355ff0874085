package schedule

import (
	"errors"
	"sort"
	"strings"
)

// ErrNotFound is returned when a lookup by id has no match. Repositories
// return it (or wrap it) for missing records and for ids they cannot parse.
var ErrNotFound = errors.New("schedule: not found")

// ValidationError lists every input field that failed validation, keyed by
// field name. It never stops at the first failure.
type ValidationError struct {
	FieldErrors map[string]string
}

// Error implements the error interface.
func (v *ValidationError) Error() string {
	if v == nil || len(v.FieldErrors) == 0 {
		return "validation failed"
	}
	parts := make([]string, 0, len(v.FieldErrors))
	for _, f := range v.Fields() {
		parts = append(parts, f+": "+v.FieldErrors[f])
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// HasErrors reports whether any field level issues were recorded.
func (v *ValidationError) HasErrors() bool {
	return v != nil && len(v.FieldErrors) > 0
}

// Fields returns the failing field names in ascending order.
func (v *ValidationError) Fields() []string {
	if v == nil {
		return nil
	}
	out := make([]string, 0, len(v.FieldErrors))
	for f := range v.FieldErrors {
		out = append(out, f)
	}
	sort.Strings(out)
	return out
}

// add records a field level error. The first message for a field wins.
func (v *ValidationError) add(field, message string) {
	if v.FieldErrors == nil {
		v.FieldErrors = make(map[string]string)
	}
	if _, ok := v.FieldErrors[field]; ok {
		return
	}
	v.FieldErrors[field] = message
}

// RepositoryError wraps a failure reported by a repository collaborator.
// The engine surfaces it unchanged; it is never retried or interpreted.
type RepositoryError struct {
	Op  string
	Err error
}

func (e *RepositoryError) Error() string {
	return "schedule: repository " + e.Op + ": " + e.Err.Error()
}

func (e *RepositoryError) Unwrap() error { return e.Err }

// repoErr classifies an error coming back from a repository. ErrNotFound
// passes through untouched so callers can still match it; anything else is
// wrapped as a RepositoryError.
func repoErr(op string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, ErrNotFound) {
		return ErrNotFound
	}
	var re *RepositoryError
	if errors.As(err, &re) {
		return err
	}
	return &RepositoryError{Op: op, Err: err}
}

// Error kinds reported by ErrorKind.
const (
	KindValidation = "validation"
	KindNotFound   = "not_found"
	KindRepository = "repository"
	KindInternal   = "internal"
)

// ErrorKind maps an error onto one of the Kind* labels for logging and
// transport rendering. A nil error yields "".
func ErrorKind(err error) string {
	if err == nil {
		return ""
	}
	var ve *ValidationError
	if errors.As(err, &ve) {
		return KindValidation
	}
	if errors.Is(err, ErrNotFound) {
		return KindNotFound
	}
	var re *RepositoryError
	if errors.As(err, &re) {
		return KindRepository
	}
	return KindInternal
}
