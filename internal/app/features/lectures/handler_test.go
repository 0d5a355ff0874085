package lectures_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/dalemusser/wuwapi/internal/app/features/lectures"
	"github.com/dalemusser/wuwapi/internal/app/system/apiresp"
	"github.com/dalemusser/wuwapi/internal/domain/models"
	"github.com/dalemusser/wuwapi/internal/domain/schedule"
	"github.com/dalemusser/wuwapi/internal/testutil"
	"github.com/dalemusser/wuwapi/internal/testutil/memrepo"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func setup(t *testing.T, items ...models.Lecture) (chi.Router, *memrepo.Lectures) {
	t.Helper()
	repo := memrepo.NewLectures(items...)
	h := lectures.NewHandler(schedule.NewFacade(repo, memrepo.NewDeadlines(), nil), zap.NewNop())
	h.Now = testutil.NewClock(testutil.At(10, 15)).Now

	r := chi.NewRouter()
	lectures.Register(r, h)
	return r, repo
}

func timetable() []models.Lecture {
	return []models.Lecture{
		testutil.Lecture("Networks", testutil.At(9, 30), testutil.At(10, 30), []string{"B"}, []string{"inf1", "inf2"}),
		testutil.Lecture("Algorithms", testutil.At(9, 0), testutil.At(10, 0), []string{"A"}, []string{"inf1"}),
		testutil.Lecture("Statistics", testutil.At(14, 0), testutil.At(15, 0), []string{"D"}, []string{"wi1"}),
	}
}

func lectureNames(t *testing.T, rec *testutil.ResponseRecorder) []string {
	t.Helper()
	var got []models.Lecture
	rec.DecodeJSON(t, &got)
	names := make([]string, 0, len(got))
	for _, l := range got {
		names = append(names, l.LectureName)
	}
	return names
}

func equal(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestServeList(t *testing.T) {
	r, _ := setup(t, timetable()...)

	rec := testutil.NewRecorder()
	r.ServeHTTP(rec, testutil.NewRequest(http.MethodGet, "/lectures"))

	rec.AssertStatus(t, http.StatusOK)
	if got, want := lectureNames(t, rec), []string{"Algorithms", "Networks", "Statistics"}; !equal(got, want) {
		t.Errorf("lectures = %v, want %v", got, want)
	}
}

func TestServeList_EmptyIsArray(t *testing.T) {
	r, _ := setup(t)

	rec := testutil.NewRecorder()
	r.ServeHTTP(rec, testutil.NewRequest(http.MethodGet, "/lectures"))

	rec.AssertStatus(t, http.StatusOK)
	if body := rec.Body.String(); body != "[]\n" {
		t.Errorf("body = %q, want []", body)
	}
}

func TestServeGet(t *testing.T) {
	items := timetable()
	r, _ := setup(t, items...)

	rec := testutil.NewRecorder()
	r.ServeHTTP(rec, testutil.NewRequest(http.MethodGet, "/lectures/"+items[1].ID.Hex()))
	rec.AssertStatus(t, http.StatusOK)
	rec.AssertContains(t, `"lectureName":"Algorithms"`)

	rec = testutil.NewRecorder()
	r.ServeHTTP(rec, testutil.NewRequest(http.MethodGet, "/lectures/nope"))
	rec.AssertStatus(t, http.StatusNotFound)
}

func TestServeUpcoming(t *testing.T) {
	r, _ := setup(t, timetable()...)

	rec := testutil.NewRecorder()
	r.ServeHTTP(rec, testutil.NewRequest(http.MethodGet, "/upcomingLectures"))
	rec.AssertStatus(t, http.StatusOK)
	if got, want := lectureNames(t, rec), []string{"Networks", "Statistics"}; !equal(got, want) {
		t.Errorf("upcoming at 10:15 = %v, want %v", got, want)
	}

	rec = testutil.NewRecorder()
	r.ServeHTTP(rec, testutil.NewRequest(http.MethodGet, "/upcomingLectures?at=2024-01-10T08:00:00Z"))
	if got := lectureNames(t, rec); len(got) != 3 {
		t.Errorf("upcoming at 08:00 = %v, want all three", got)
	}

	rec = testutil.NewRecorder()
	r.ServeHTTP(rec, testutil.NewRequest(http.MethodGet, "/upcomingLectures?at=soon"))
	rec.AssertStatus(t, http.StatusBadRequest)
}

func TestServeForGroups(t *testing.T) {
	r, _ := setup(t, timetable()...)

	tests := []struct {
		name string
		req  *http.Request
		want []string
	}{
		{"repeated query", testutil.NewRequest(http.MethodGet, "/lecturesForGroups?groups=inf2&groups=wi1"), []string{"Networks", "Statistics"}},
		{"comma query", testutil.NewRequest(http.MethodGet, "/lecturesForGroups?groups=inf2,wi1"), []string{"Networks", "Statistics"}},
		{"json body", testutil.NewJSONRequest(http.MethodPost, "/lecturesForGroups", map[string]any{"groups": []string{"inf1"}}), []string{"Algorithms", "Networks"}},
		{"upcoming only", testutil.NewRequest(http.MethodGet, "/lecturesForGroups?groups=inf1&upcoming=true"), []string{"Networks"}},
		{"form body", formRequest("/lecturesForGroups", "groups=inf1"), []string{"Algorithms", "Networks"}},
		{"form array keys", formRequest("/lecturesForGroups", "groups%5B%5D=inf2&groups%5B%5D=wi1"), []string{"Networks", "Statistics"}},
		{"form comma value", formRequest("/lecturesForGroups", "groups=inf2%2Cwi1"), []string{"Networks", "Statistics"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := testutil.NewRecorder()
			r.ServeHTTP(rec, tt.req)
			rec.AssertStatus(t, http.StatusOK)
			if got := lectureNames(t, rec); !equal(got, tt.want) {
				t.Errorf("lectures = %v, want %v", got, tt.want)
			}
		})
	}
}

func formRequest(target, body string) *http.Request {
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req
}

func TestServeForGroups_RequiresGroups(t *testing.T) {
	r, _ := setup(t, timetable()...)

	for _, req := range []*http.Request{
		testutil.NewRequest(http.MethodGet, "/lecturesForGroups"),
		testutil.NewJSONRequest(http.MethodPost, "/lecturesForGroups", `{"groups":[]}`),
	} {
		rec := testutil.NewRecorder()
		r.ServeHTTP(rec, req)
		rec.AssertStatus(t, http.StatusBadRequest)

		var body apiresp.ErrorBody
		rec.DecodeJSON(t, &body)
		if _, ok := body.Fields["groups"]; !ok {
			t.Errorf("expected groups field error, got %+v", body)
		}
	}
}

func TestServeForGroups_MalformedBody(t *testing.T) {
	r, _ := setup(t, timetable()...)

	rec := testutil.NewRecorder()
	r.ServeHTTP(rec, testutil.NewJSONRequest(http.MethodPost, "/lecturesForGroups", `{"groups":`))
	rec.AssertStatus(t, http.StatusBadRequest)
}

func TestServeList_RepositoryFailure(t *testing.T) {
	r, repo := setup(t, timetable()...)
	repo.Err = errors.New("no reachable servers")

	rec := testutil.NewRecorder()
	r.ServeHTTP(rec, testutil.NewRequest(http.MethodGet, "/lectures"))
	rec.AssertStatus(t, http.StatusInternalServerError)
}
