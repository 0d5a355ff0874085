package groups_test

import (
	"errors"
	"net/http"
	"testing"

	"github.com/dalemusser/wuwapi/internal/app/features/groups"
	"github.com/dalemusser/wuwapi/internal/domain/schedule"
	"github.com/dalemusser/wuwapi/internal/testutil"
	"github.com/dalemusser/wuwapi/internal/testutil/memrepo"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func setup(t *testing.T) (chi.Router, *memrepo.Lectures) {
	t.Helper()
	repo := memrepo.NewLectures(
		testutil.Lecture("Networks", testutil.At(9, 30), testutil.At(10, 30), nil, []string{"inf2", "inf1"}),
		testutil.Lecture("Algorithms", testutil.At(9, 0), testutil.At(10, 0), nil, []string{"inf1"}),
		testutil.Lecture("Algorithms", testutil.At(13, 0), testutil.At(14, 0), nil, []string{"inf1"}),
	)
	h := groups.NewHandler(schedule.NewFacade(repo, memrepo.NewDeadlines(), nil), zap.NewNop())

	r := chi.NewRouter()
	groups.Register(r, h)
	return r, repo
}

func TestServeGroups(t *testing.T) {
	r, _ := setup(t)

	rec := testutil.NewRecorder()
	r.ServeHTTP(rec, testutil.NewRequest(http.MethodGet, "/groups"))

	rec.AssertStatus(t, http.StatusOK)
	var got []string
	rec.DecodeJSON(t, &got)
	if len(got) != 2 || got[0] != "inf1" || got[1] != "inf2" {
		t.Errorf("groups = %v, want [inf1 inf2]", got)
	}
}

func TestServeGroupLectures(t *testing.T) {
	r, _ := setup(t)

	rec := testutil.NewRecorder()
	r.ServeHTTP(rec, testutil.NewRequest(http.MethodGet, "/groupLectures"))

	rec.AssertStatus(t, http.StatusOK)
	var got []schedule.GroupLectures
	rec.DecodeJSON(t, &got)
	if len(got) != 2 {
		t.Fatalf("expected 2 groups, got %+v", got)
	}
	if got[0].Group != "inf1" || len(got[0].Lectures) != 2 {
		t.Errorf("inf1 entry = %+v, want Algorithms and Networks once each", got[0])
	}
	if got[1].Group != "inf2" || len(got[1].Lectures) != 1 || got[1].Lectures[0] != "Networks" {
		t.Errorf("inf2 entry = %+v", got[1])
	}
}

func TestServeGroups_RepositoryFailure(t *testing.T) {
	r, repo := setup(t)
	repo.Err = errors.New("timeout")

	rec := testutil.NewRecorder()
	r.ServeHTTP(rec, testutil.NewRequest(http.MethodGet, "/groupLectures"))
	rec.AssertStatus(t, http.StatusInternalServerError)
	rec.AssertContains(t, "internal_error")
}
