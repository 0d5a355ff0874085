// Package reqtime resolves the instant a time-dependent request is
// evaluated at.
package reqtime

import (
	"net/http"
	"strings"
	"time"

	"github.com/dalemusser/wuwapi/internal/domain/schedule"
)

// Param is the query parameter that overrides the evaluation instant.
const Param = "at"

// Resolve returns the instant named by ?at=, or now() when absent.
// A malformed value is a validation error on the "at" field.
func Resolve(r *http.Request, now func() time.Time) (time.Time, error) {
	raw := r.URL.Query().Get(Param)
	if raw == "" {
		return now().UTC(), nil
	}
	t, ok := schedule.ParseDate(raw)
	if !ok {
		t, ok = parseUnescapedOffset(raw)
	}
	if !ok {
		return time.Time{}, &schedule.ValidationError{FieldErrors: map[string]string{
			Param: "at must be a valid date",
		}}
	}
	return t, nil
}

// parseUnescapedOffset retries a value whose "+hh:mm" offset arrived as
// " hh:mm" because the client sent the plus sign unencoded.
func parseUnescapedOffset(raw string) (time.Time, bool) {
	i := strings.LastIndexByte(raw, ' ')
	if i < 0 {
		return time.Time{}, false
	}
	return schedule.ParseDate(raw[:i] + "+" + raw[i+1:])
}
