package home_test

import (
	"net/http"
	"testing"

	"github.com/dalemusser/wuwapi/internal/app/features/home"
	"github.com/dalemusser/wuwapi/internal/testutil"
	"github.com/go-chi/chi/v5"
)

func TestServeRoot(t *testing.T) {
	r := chi.NewRouter()
	home.Register(r)

	rec := testutil.NewRecorder()
	r.ServeHTTP(rec, testutil.NewRequest(http.MethodGet, "/"))

	rec.AssertStatus(t, http.StatusOK)
	var body map[string]string
	rec.DecodeJSON(t, &body)
	if body["message"] != home.Welcome {
		t.Errorf("message = %q, want %q", body["message"], home.Welcome)
	}
}
